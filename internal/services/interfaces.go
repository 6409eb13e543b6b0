package services

import (
	"time"

	"clubhub/internal/models"
	"clubhub/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// UpdateCategoryInput holds the optional fields of a combined category
// update. Name and ParentID may change in the same request; the slugs of the
// whole subtree are recomputed once from the final state. ParentID semantics:
// nil leaves the parent unchanged, a pointer to "" moves the category to the
// root, any other value is the new parent's ID.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	ParentID    *string
}

// CategoryServicer defines the contract for hierarchical category management.
// It is the sole writer of category slugs: every structural edit (create,
// rename, move, delete) keeps the slug of the entire affected subtree
// consistent within one transaction.
type CategoryServicer interface {
	CreateCategory(name, description string, parentID *string) (*models.Category, error)
	ListCategories(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryTree() ([]*models.Category, error)
	GetCategoryByID(id string) (*models.Category, error)
	GetCategoryBySlug(path string) (*models.Category, error)
	UpdateCategory(id string, in UpdateCategoryInput) (*models.Category, error)
	DeleteCategory(id string) error
}

// CreatePostInput holds the fields for creating a post.
type CreatePostInput struct {
	Title      string
	Excerpt    string
	Body       string
	Status     models.PostStatus
	CategoryID *string
	TagIDs     []string
}

// UpdatePostInput holds the optional fields of a post update.
type UpdatePostInput struct {
	Title      *string
	Excerpt    *string
	Body       *string
	Status     *models.PostStatus
	CategoryID *string
	TagIDs     []string
}

// PostFilter holds optional filter parameters for listing posts.
type PostFilter struct {
	Status     *models.PostStatus
	CategoryID *string
	TagID      *string
}

// PostServicer defines the contract for post-related business logic.
type PostServicer interface {
	CreatePost(authorID string, in CreatePostInput) (*models.Post, error)
	ListPosts(page pagination.PageRequest, filter PostFilter) (*pagination.PageResponse[models.Post], error)
	GetPostByID(id string) (*models.Post, error)
	GetPostBySlug(slugValue string) (*models.Post, error)
	UpdatePost(id string, in UpdatePostInput) (*models.Post, error)
	DeletePost(id string) error
}

// TagServicer defines the contract for tag-related business logic.
type TagServicer interface {
	CreateTag(name string) (*models.Tag, error)
	ListTags(page pagination.PageRequest) (*pagination.PageResponse[models.Tag], error)
	GetTagByID(id string) (*models.Tag, error)
	UpdateTag(id, name string) (*models.Tag, error)
	DeleteTag(id string) error
}

// ContactPersonInput holds the fields of a contact person create or update.
type ContactPersonInput struct {
	Name      string
	Role      string
	Email     string
	Phone     string
	SortOrder int
}

// DepartmentServicer defines the contract for departments and their contact
// persons.
type DepartmentServicer interface {
	CreateDepartment(name, description, email string) (*models.Department, error)
	ListDepartments(page pagination.PageRequest) (*pagination.PageResponse[models.Department], error)
	GetDepartmentByID(id string) (*models.Department, error)
	UpdateDepartment(id string, name, description, email *string) (*models.Department, error)
	DeleteDepartment(id string) error

	CreateContactPerson(departmentID string, in ContactPersonInput) (*models.ContactPerson, error)
	ListContactPersons(departmentID string) ([]models.ContactPerson, error)
	UpdateContactPerson(id string, in ContactPersonInput) (*models.ContactPerson, error)
	DeleteContactPerson(id string) error
}

// CreateMediaInput holds the metadata of an uploaded file.
type CreateMediaInput struct {
	FileName    string
	StoragePath string
	MimeType    string
	SizeBytes   int64
	AltText     string
}

// MediaServicer defines the contract for media metadata records.
type MediaServicer interface {
	CreateMedia(uploadedByID string, in CreateMediaInput) (*models.Media, error)
	ListMedia(page pagination.PageRequest) (*pagination.PageResponse[models.Media], error)
	GetMediaByID(id string) (*models.Media, error)
	UpdateMedia(id string, fileName, altText *string) (*models.Media, error)
	DeleteMedia(id string) error
}

// EventInput holds the fields of an event create or update.
type EventInput struct {
	Title        string
	Description  string
	Location     string
	StartsAt     time.Time
	EndsAt       time.Time
	AllDay       bool
	DepartmentID *string
}

// EventFilter holds optional time-range filters for listing events.
type EventFilter struct {
	From *time.Time
	To   *time.Time
}

// EventServicer defines the contract for event-related business logic.
type EventServicer interface {
	CreateEvent(in EventInput) (*models.Event, error)
	ListEvents(page pagination.PageRequest, filter EventFilter) (*pagination.PageResponse[models.Event], error)
	GetEventByID(id string) (*models.Event, error)
	UpdateEvent(id string, in EventInput) (*models.Event, error)
	DeleteEvent(id string) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
