package models

import "time"

// PostStatus represents the publication state of a post
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Post represents an article on the club website
type Post struct {
	Base
	Title       string     `gorm:"size:200;not null" json:"title"`
	Slug        string     `gorm:"size:255;uniqueIndex:idx_posts_slug,where:deleted_at IS NULL;not null" json:"slug"`
	Excerpt     string     `gorm:"size:500" json:"excerpt"`
	Body        string     `gorm:"type:text" json:"body"`
	Status      PostStatus `gorm:"size:20;not null;default:draft" json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	AuthorID    string     `gorm:"type:uuid;not null" json:"author_id"`
	CategoryID  *string    `gorm:"type:uuid;index" json:"category_id,omitempty"`

	// Relationships
	Author   *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags     []Tag     `gorm:"many2many:post_tags" json:"tags,omitempty"`
}
