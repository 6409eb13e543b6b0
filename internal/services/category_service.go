package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "clubhub/internal/errors"
	"clubhub/internal/models"
	"clubhub/internal/pagination"
	"clubhub/internal/slug"
)

// maxTreeDepth bounds ancestor walks so a corrupted parent chain can never
// loop forever.
const maxTreeDepth = 64

// categoryService implements hierarchical category management. Every
// structural edit runs inside a single transaction: validation first, then
// slug recomputation for the whole affected subtree, then the writes. No
// other code path writes category slugs.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// lockForUpdate adds a row-level lock on dialects that support it. SQLite
// rejects FOR UPDATE syntax but serializes writers on its own, so concurrent
// structural edits are still ordered there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// scopeParent filters categories to the children of parentID, treating nil
// as the implicit root parent.
func scopeParent(tx *gorm.DB, parentID *string) *gorm.DB {
	if parentID == nil {
		return tx.Where("parent_id IS NULL")
	}
	return tx.Where("parent_id = ?", *parentID)
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func validateCategoryName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < 2 || n > 100 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category name must be between 2 and 100 characters")
	}
	if slug.Segment(name) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category name must contain at least one alphanumeric character")
	}
	return nil
}

func validateCategoryDescription(description string) error {
	if utf8.RuneCountInString(description) > 500 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category description must be at most 500 characters")
	}
	return nil
}

// fetchCategory loads and locks a category by ID within the transaction.
func (s *categoryService) fetchCategory(tx *gorm.DB, id string) (*models.Category, error) {
	var category models.Category
	if err := lockForUpdate(tx).Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// pathFromRoot walks parent links upward from the category with the given ID
// and returns the chain root-first, including that category itself. A broken
// link surfaces as NotFound; exceeding maxTreeDepth means the tree is
// corrupt and is reported as an internal error.
func (s *categoryService) pathFromRoot(tx *gorm.DB, id string) ([]models.Category, error) {
	var chain []models.Category
	next := &id
	for depth := 0; next != nil; depth++ {
		if depth >= maxTreeDepth {
			return nil, apperrors.WithMessage(apperrors.ErrInternalServer, "category ancestor chain exceeds maximum depth")
		}
		node, err := s.fetchCategory(tx, *next)
		if err != nil {
			return nil, err
		}
		chain = append([]models.Category{*node}, chain...)
		next = node.ParentID
	}
	return chain, nil
}

// isDescendantOf walks upward from candidateAncestorID and reports whether
// nodeID appears on that walk, i.e. whether the candidate sits inside
// nodeID's subtree.
func (s *categoryService) isDescendantOf(tx *gorm.DB, candidateAncestorID, nodeID string) (bool, error) {
	next := &candidateAncestorID
	for depth := 0; next != nil; depth++ {
		if depth >= maxTreeDepth {
			return false, apperrors.WithMessage(apperrors.ErrInternalServer, "category ancestor chain exceeds maximum depth")
		}
		if *next == nodeID {
			return true, nil
		}
		node, err := s.fetchCategory(tx, *next)
		if err != nil {
			return false, err
		}
		next = node.ParentID
	}
	return false, nil
}

// siblingNameTaken reports whether another child of parentID already uses
// the name, compared case-insensitively.
func (s *categoryService) siblingNameTaken(tx *gorm.DB, parentID *string, name, excludeID string) (bool, error) {
	query := scopeParent(tx.Model(&models.Category{}), parentID).
		Where("LOWER(name) = LOWER(?)", name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

// siblingSegments returns the final slug segments already in use among the
// children of parentID.
func (s *categoryService) siblingSegments(tx *gorm.DB, parentID *string, excludeID string) (map[string]struct{}, error) {
	query := scopeParent(tx.Model(&models.Category{}), parentID)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var slugs []string
	if err := query.Pluck("slug", &slugs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	taken := make(map[string]struct{}, len(slugs))
	for _, s := range slugs {
		taken[slug.LastSegment(s)] = struct{}{}
	}
	return taken, nil
}

func ancestorSegments(chain []models.Category) []string {
	segments := make([]string, len(chain))
	for i, c := range chain {
		segments[i] = slug.LastSegment(c.Slug)
	}
	return segments
}

// buildCategorySlug derives the full slug for a category named name under
// parentID, disambiguating against sibling segments.
func (s *categoryService) buildCategorySlug(tx *gorm.DB, name string, parentID *string, excludeID string) (string, error) {
	var chain []models.Category
	if parentID != nil {
		var err error
		chain, err = s.pathFromRoot(tx, *parentID)
		if err != nil {
			return "", err
		}
	}

	taken, err := s.siblingSegments(tx, parentID, excludeID)
	if err != nil {
		return "", err
	}
	own := slug.ResolveUnique(slug.Segment(name), taken)

	full, err := slug.JoinPath(ancestorSegments(chain), own)
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidSlug, err.Error())
	}
	return full, nil
}

type slugUpdate struct {
	id   string
	slug string
}

// subtreeSlugUpdates recomputes the slug of every descendant of the node,
// breadth-first, using newSlug as the node's recomputed slug. Descendants
// keep their own final segment; only the prefix changes. The full list is
// validated before anything is written.
func (s *categoryService) subtreeSlugUpdates(tx *gorm.DB, nodeID, newSlug string) ([]slugUpdate, error) {
	var updates []slugUpdate

	type frontier struct {
		id   string
		slug string
	}
	queue := []frontier{{id: nodeID, slug: newSlug}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		var children []models.Category
		if err := lockForUpdate(tx).Where("parent_id = ?", current.id).Find(&children).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for _, child := range children {
			childSlug := current.slug + "/" + slug.LastSegment(child.Slug)
			if len(childSlug) > slug.MaxLength {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidSlug, "recomputed slug for descendant exceeds maximum length")
			}
			updates = append(updates, slugUpdate{id: child.ID, slug: childSlug})
			queue = append(queue, frontier{id: child.ID, slug: childSlug})
		}
	}
	return updates, nil
}

func applySlugUpdates(tx *gorm.DB, updates []slugUpdate) error {
	for _, u := range updates {
		if err := tx.Model(&models.Category{}).Where("id = ?", u.id).Update("slug", u.slug).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}

// CreateCategory creates a new category under parentID (nil for root) with a
// computed initial slug. There is no subtree to cascade over yet.
func (s *categoryService) CreateCategory(name, description string, parentID *string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if err := validateCategoryDescription(description); err != nil {
		return nil, err
	}

	var category *models.Category
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if parentID != nil {
			if _, err := s.fetchCategory(tx, *parentID); err != nil {
				if errors.Is(err, apperrors.ErrCategoryNotFound) {
					return apperrors.WithMessage(apperrors.ErrCategoryNotFound, "parent category not found")
				}
				return err
			}
		}

		taken, err := s.siblingNameTaken(tx, parentID, name, "")
		if err != nil {
			return err
		}
		if taken {
			return apperrors.ErrDuplicateCategory
		}

		fullSlug, err := s.buildCategorySlug(tx, name, parentID, "")
		if err != nil {
			return err
		}

		category = &models.Category{
			Name:        name,
			Slug:        fullSlug,
			Description: description,
			ParentID:    parentID,
		}
		if err := tx.Create(category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories retrieves a paginated list of categories ordered by slug.
func (s *categoryService) ListCategories(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Category{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := base.Order("slug").Scopes(pagination.Paginate(page)).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCategoryTree returns the root categories with their Children populated
// recursively, assembled in memory from a single flat query.
func (s *categoryService) GetCategoryTree() ([]*models.Category, error) {
	var all []models.Category
	if err := s.db.Order("slug").Find(&all).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byID := make(map[string]*models.Category, len(all))
	for i := range all {
		byID[all[i].ID] = &all[i]
	}

	// Children hold pointers into the same backing slice, so a node's own
	// children are visible no matter when it was attached to its parent.
	var roots []*models.Category
	for i := range all {
		node := &all[i]
		if node.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := byID[*node.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		}
	}
	return roots, nil
}

// GetCategoryByID retrieves a category by ID.
func (s *categoryService) GetCategoryByID(id string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// GetCategoryBySlug retrieves a category by its full hierarchical slug. The
// path is treated as an opaque lookup key.
func (s *categoryService) GetCategoryBySlug(path string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("slug = ?", path).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory applies a combined rename/move/description update. When the
// name or parent changes, the node's slug and the slugs of its entire
// subtree are recomputed once from the final state, within one transaction.
// A no-op rename leaves every slug untouched.
func (s *categoryService) UpdateCategory(id string, in UpdateCategoryInput) (*models.Category, error) {
	var updated models.Category
	err := s.db.Transaction(func(tx *gorm.DB) error {
		node, err := s.fetchCategory(tx, id)
		if err != nil {
			return err
		}

		newName := node.Name
		if in.Name != nil {
			newName = strings.TrimSpace(*in.Name)
			if err := validateCategoryName(newName); err != nil {
				return err
			}
		}
		if in.Description != nil {
			if err := validateCategoryDescription(*in.Description); err != nil {
				return err
			}
		}

		newParentID := node.ParentID
		if in.ParentID != nil {
			switch *in.ParentID {
			case "":
				newParentID = nil
			case id:
				return apperrors.ErrSelfParentCategory
			default:
				var parent models.Category
				if err := lockForUpdate(tx).Where("id = ?", *in.ParentID).First(&parent).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return apperrors.WithMessage(apperrors.ErrCategoryNotFound, "parent category not found")
					}
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
				circular, err := s.isDescendantOf(tx, parent.ID, id)
				if err != nil {
					return err
				}
				if circular {
					return apperrors.ErrCircularCategoryMove
				}
				pid := parent.ID
				newParentID = &pid
			}
		}

		nameChanged := newName != node.Name
		parentChanged := !sameParent(node.ParentID, newParentID)

		updates := make(map[string]interface{})
		if in.Description != nil {
			updates["description"] = *in.Description
		}

		if nameChanged || parentChanged {
			taken, err := s.siblingNameTaken(tx, newParentID, newName, node.ID)
			if err != nil {
				return err
			}
			if taken {
				return apperrors.ErrDuplicateCategory
			}

			newSlug, err := s.buildCategorySlug(tx, newName, newParentID, node.ID)
			if err != nil {
				return err
			}

			cascade, err := s.subtreeSlugUpdates(tx, node.ID, newSlug)
			if err != nil {
				return err
			}

			updates["name"] = newName
			updates["parent_id"] = newParentID
			updates["slug"] = newSlug

			if err := tx.Model(node).Updates(updates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if err := applySlugUpdates(tx, cascade); err != nil {
				return err
			}
		} else if len(updates) > 0 {
			if err := tx.Model(node).Updates(updates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		if err := tx.Where("id = ?", id).First(&updated).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCategory removes a category and its entire descendant subtree as one
// atomic operation. Descendants have no valid alternate parent, so cascade
// deletion is the only consistent behavior; a partially deleted subtree is
// never observable.
func (s *categoryService) DeleteCategory(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		node, err := s.fetchCategory(tx, id)
		if err != nil {
			return err
		}

		ids := []string{node.ID}
		queue := []string{node.ID}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			var childIDs []string
			if err := lockForUpdate(tx.Model(&models.Category{})).Where("parent_id = ?", current).Pluck("id", &childIDs).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			ids = append(ids, childIDs...)
			queue = append(queue, childIDs...)
		}

		if err := tx.Where("id IN ?", ids).Delete(&models.Category{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
