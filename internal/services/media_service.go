package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "clubhub/internal/errors"
	"clubhub/internal/models"
	"clubhub/internal/pagination"
)

// mediaService manages media metadata records. File bytes are handled by
// the upload boundary, not here.
type mediaService struct {
	db *gorm.DB
}

// NewMediaService creates a new MediaServicer.
func NewMediaService(db *gorm.DB) MediaServicer {
	return &mediaService{db: db}
}

// CreateMedia registers an uploaded file's metadata.
func (s *mediaService) CreateMedia(uploadedByID string, in CreateMediaInput) (*models.Media, error) {
	in.FileName = strings.TrimSpace(in.FileName)
	if in.FileName == "" || in.StoragePath == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "file name and storage path are required")
	}
	if in.SizeBytes < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "size must not be negative")
	}

	media := &models.Media{
		FileName:     in.FileName,
		StoragePath:  in.StoragePath,
		MimeType:     in.MimeType,
		SizeBytes:    in.SizeBytes,
		AltText:      in.AltText,
		UploadedByID: uploadedByID,
	}
	if err := s.db.Create(media).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return media, nil
}

// ListMedia retrieves a paginated list of media records, newest first.
func (s *mediaService) ListMedia(page pagination.PageRequest) (*pagination.PageResponse[models.Media], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Media{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var media []models.Media
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&media).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(media, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetMediaByID retrieves a media record by ID.
func (s *mediaService) GetMediaByID(id string) (*models.Media, error) {
	var media models.Media
	if err := s.db.Where("id = ?", id).First(&media).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMediaNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &media, nil
}

// UpdateMedia updates the editable metadata of a media record.
func (s *mediaService) UpdateMedia(id string, fileName, altText *string) (*models.Media, error) {
	media, err := s.GetMediaByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fileName != nil {
		trimmed := strings.TrimSpace(*fileName)
		if trimmed == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "file name must not be empty")
		}
		updates["file_name"] = trimmed
	}
	if altText != nil {
		updates["alt_text"] = *altText
	}

	if len(updates) > 0 {
		if err := s.db.Model(media).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return media, nil
}

// DeleteMedia soft-deletes a media record. Removing the stored bytes is the
// upload boundary's concern.
func (s *mediaService) DeleteMedia(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.Media{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrMediaNotFound
	}
	return nil
}
