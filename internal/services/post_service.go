package services

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	apperrors "clubhub/internal/errors"
	"clubhub/internal/models"
	"clubhub/internal/pagination"
	"clubhub/internal/slug"
)

// postService handles post-related business logic.
type postService struct {
	db *gorm.DB
}

// NewPostService creates a new PostServicer.
func NewPostService(db *gorm.DB) PostServicer {
	return &postService{db: db}
}

func validatePostTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < 2 || n > 200 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "post title must be between 2 and 200 characters")
	}
	if slug.Segment(title) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "post title must contain at least one alphanumeric character")
	}
	return nil
}

// uniquePostSlug derives a flat slug from the title and disambiguates it
// against every existing post slug with the same base.
func (s *postService) uniquePostSlug(tx *gorm.DB, title, excludeID string) (string, error) {
	candidate := slug.Segment(title)

	query := tx.Model(&models.Post{}).
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

func (s *postService) fetchTags(tx *gorm.DB, tagIDs []string) ([]models.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(tags) != len(tagIDs) {
		return nil, apperrors.ErrTagNotFound
	}
	return tags, nil
}

// CreatePost creates a new post with a derived unique slug.
func (s *postService) CreatePost(authorID string, in CreatePostInput) (*models.Post, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validatePostTitle(in.Title); err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = models.PostStatusDraft
	}

	var post *models.Post
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if in.CategoryID != nil {
			var count int64
			if err := tx.Model(&models.Category{}).Where("id = ?", *in.CategoryID).Count(&count).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if count == 0 {
				return apperrors.ErrCategoryNotFound
			}
		}

		tags, err := s.fetchTags(tx, in.TagIDs)
		if err != nil {
			return err
		}

		postSlug, err := s.uniquePostSlug(tx, in.Title, "")
		if err != nil {
			return err
		}

		post = &models.Post{
			Title:      in.Title,
			Slug:       postSlug,
			Excerpt:    in.Excerpt,
			Body:       in.Body,
			Status:     in.Status,
			AuthorID:   authorID,
			CategoryID: in.CategoryID,
			Tags:       tags,
		}
		if in.Status == models.PostStatusPublished {
			now := time.Now()
			post.PublishedAt = &now
		}

		if err := tx.Create(post).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts retrieves a paginated, optionally filtered list of posts.
func (s *postService) ListPosts(page pagination.PageRequest, filter PostFilter) (*pagination.PageResponse[models.Post], error) {
	page.Defaults()

	base := s.db.Model(&models.Post{})
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.CategoryID != nil {
		base = base.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.TagID != nil {
		base = base.Where("id IN (?)", s.db.Table("post_tags").Select("post_id").Where("tag_id = ?", *filter.TagID))
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var posts []models.Post
	if err := base.Preload("Tags").Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&posts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(posts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetPostByID retrieves a post with its tags and category.
func (s *postService) GetPostByID(id string) (*models.Post, error) {
	var post models.Post
	if err := s.db.Preload("Tags").Preload("Category").Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &post, nil
}

// GetPostBySlug retrieves a post by its slug.
func (s *postService) GetPostBySlug(slugValue string) (*models.Post, error) {
	var post models.Post
	if err := s.db.Preload("Tags").Preload("Category").Where("slug = ?", slugValue).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &post, nil
}

// UpdatePost applies a partial update. A title change re-derives the slug.
func (s *postService) UpdatePost(id string, in UpdatePostInput) (*models.Post, error) {
	var updated *models.Post
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Where("id = ?", id).First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrPostNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		updates := make(map[string]interface{})

		if in.Title != nil {
			title := strings.TrimSpace(*in.Title)
			if err := validatePostTitle(title); err != nil {
				return err
			}
			if title != post.Title {
				postSlug, err := s.uniquePostSlug(tx, title, post.ID)
				if err != nil {
					return err
				}
				updates["title"] = title
				updates["slug"] = postSlug
			}
		}
		if in.Excerpt != nil {
			updates["excerpt"] = *in.Excerpt
		}
		if in.Body != nil {
			updates["body"] = *in.Body
		}
		if in.CategoryID != nil {
			if *in.CategoryID == "" {
				updates["category_id"] = nil
			} else {
				var count int64
				if err := tx.Model(&models.Category{}).Where("id = ?", *in.CategoryID).Count(&count).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
				if count == 0 {
					return apperrors.ErrCategoryNotFound
				}
				updates["category_id"] = *in.CategoryID
			}
		}
		if in.Status != nil && *in.Status != post.Status {
			updates["status"] = *in.Status
			if *in.Status == models.PostStatusPublished && post.PublishedAt == nil {
				updates["published_at"] = time.Now()
			}
		}

		if len(updates) > 0 {
			if err := tx.Model(&post).Updates(updates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		if in.TagIDs != nil {
			tags, err := s.fetchTags(tx, in.TagIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&post).Association("Tags").Replace(tags); err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		var reloaded models.Post
		if err := tx.Preload("Tags").Where("id = ?", id).First(&reloaded).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		updated = &reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeletePost soft-deletes a post.
func (s *postService) DeletePost(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.Post{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}
