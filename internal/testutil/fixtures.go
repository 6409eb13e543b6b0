package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"clubhub/internal/models"
	"clubhub/internal/slug"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory inserts a category directly, deriving its slug from
// the name and the parent's slug. Tests exercising slug derivation itself
// should go through the category service instead.
func CreateTestCategory(t *testing.T, db *gorm.DB, name string, parent *models.Category) *models.Category {
	t.Helper()

	segment := slug.Segment(name)
	path := segment
	if parent != nil {
		path = parent.Slug + "/" + segment
	}

	category := &models.Category{
		Name: name,
		Slug: path,
	}
	if parent != nil {
		category.ParentID = &parent.ID
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTag creates a tag with a unique name.
func CreateTestTag(t *testing.T, db *gorm.DB) *models.Tag {
	t.Helper()

	name := fmt.Sprintf("Test Tag %d", nextID())
	tag := &models.Tag{
		Name: name,
		Slug: slug.Segment(name),
	}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("failed to create test tag: %v", err)
	}
	return tag
}

// CreateTestPost creates a draft post by the given author. categoryID may be
// nil for an uncategorized post.
func CreateTestPost(t *testing.T, db *gorm.DB, authorID string, categoryID *string) *models.Post {
	t.Helper()

	title := fmt.Sprintf("Test Post %d", nextID())
	post := &models.Post{
		Title:      title,
		Slug:       slug.Segment(title),
		Body:       "Test body",
		Status:     models.PostStatusDraft,
		AuthorID:   authorID,
		CategoryID: categoryID,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to create test post: %v", err)
	}
	return post
}

// CreateTestDepartment creates a department with a unique name.
func CreateTestDepartment(t *testing.T, db *gorm.DB) *models.Department {
	t.Helper()

	department := &models.Department{
		Name:  fmt.Sprintf("Test Department %d", nextID()),
		Email: fmt.Sprintf("dept%d@test.com", nextID()),
	}
	if err := db.Create(department).Error; err != nil {
		t.Fatalf("failed to create test department: %v", err)
	}
	return department
}

// CreateTestContactPerson creates a contact person in the given department.
func CreateTestContactPerson(t *testing.T, db *gorm.DB, departmentID string) *models.ContactPerson {
	t.Helper()

	contact := &models.ContactPerson{
		Name:         fmt.Sprintf("Test Contact %d", nextID()),
		Role:         "Coordinator",
		DepartmentID: departmentID,
	}
	if err := db.Create(contact).Error; err != nil {
		t.Fatalf("failed to create test contact person: %v", err)
	}
	return contact
}

// CreateTestEvent creates a one-hour event starting tomorrow.
func CreateTestEvent(t *testing.T, db *gorm.DB, departmentID *string) *models.Event {
	t.Helper()

	starts := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	event := &models.Event{
		Title:        fmt.Sprintf("Test Event %d", nextID()),
		StartsAt:     starts,
		EndsAt:       starts.Add(time.Hour),
		DepartmentID: departmentID,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create test event: %v", err)
	}
	return event
}

// CreateTestMedia creates a media metadata record uploaded by the given user.
func CreateTestMedia(t *testing.T, db *gorm.DB, uploadedByID string) *models.Media {
	t.Helper()

	n := nextID()
	media := &models.Media{
		FileName:     fmt.Sprintf("test-%d.jpg", n),
		StoragePath:  fmt.Sprintf("uploads/test-%d.jpg", n),
		MimeType:     "image/jpeg",
		SizeBytes:    1024,
		UploadedByID: uploadedByID,
	}
	if err := db.Create(media).Error; err != nil {
		t.Fatalf("failed to create test media: %v", err)
	}
	return media
}
