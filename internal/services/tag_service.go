package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	apperrors "clubhub/internal/errors"
	"clubhub/internal/models"
	"clubhub/internal/pagination"
	"clubhub/internal/slug"
)

// tagService handles tag-related business logic.
type tagService struct {
	db *gorm.DB
}

// NewTagService creates a new TagServicer.
func NewTagService(db *gorm.DB) TagServicer {
	return &tagService{db: db}
}

func validateTagName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < 2 || n > 50 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "tag name must be between 2 and 50 characters")
	}
	if slug.Segment(name) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "tag name must contain at least one alphanumeric character")
	}
	return nil
}

func (s *tagService) uniqueTagSlug(tx *gorm.DB, name, excludeID string) (string, error) {
	candidate := slug.Segment(name)

	query := tx.Model(&models.Tag{}).
		Where("slug = ? OR slug LIKE ?", candidate, candidate+"-%")
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var slugs []string
	if err := query.Pluck("slug", &slugs).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	taken := make(map[string]struct{}, len(slugs))
	for _, existing := range slugs {
		taken[existing] = struct{}{}
	}
	return slug.ResolveUnique(candidate, taken), nil
}

// CreateTag creates a new tag. Names are unique case-insensitively.
func (s *tagService) CreateTag(name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if err := validateTagName(name); err != nil {
		return nil, err
	}

	var tag *models.Tag
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Tag{}).Where("LOWER(name) = LOWER(?)", name).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.ErrDuplicateTag
		}

		tagSlug, err := s.uniqueTagSlug(tx, name, "")
		if err != nil {
			return err
		}

		tag = &models.Tag{Name: name, Slug: tagSlug}
		if err := tx.Create(tag).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// ListTags retrieves a paginated list of tags ordered by name.
func (s *tagService) ListTags(page pagination.PageRequest) (*pagination.PageResponse[models.Tag], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Tag{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var tags []models.Tag
	if err := base.Order("name").Scopes(pagination.Paginate(page)).Find(&tags).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(tags, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTagByID retrieves a tag by ID.
func (s *tagService) GetTagByID(id string) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.Where("id = ?", id).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTagNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tag, nil
}

// UpdateTag renames a tag, re-deriving its slug.
func (s *tagService) UpdateTag(id, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if err := validateTagName(name); err != nil {
		return nil, err
	}

	var updated *models.Tag
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.Where("id = ?", id).First(&tag).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTagNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if name == tag.Name {
			updated = &tag
			return nil
		}

		var count int64
		if err := tx.Model(&models.Tag{}).Where("LOWER(name) = LOWER(?) AND id <> ?", name, id).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.ErrDuplicateTag
		}

		tagSlug, err := s.uniqueTagSlug(tx, name, id)
		if err != nil {
			return err
		}

		if err := tx.Model(&tag).Updates(map[string]interface{}{"name": name, "slug": tagSlug}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		updated = &tag
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTag soft-deletes a tag. Join rows are left in place; queries through
// the association filter them out.
func (s *tagService) DeleteTag(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.Tag{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTagNotFound
	}
	return nil
}
