package models

// Tag labels posts across categories. Names are unique case-insensitively.
type Tag struct {
	Base
	Name string `gorm:"size:50;not null" json:"name"`
	Slug string `gorm:"size:60;uniqueIndex:idx_tags_slug,where:deleted_at IS NULL;not null" json:"slug"`

	Posts []Post `gorm:"many2many:post_tags" json:"posts,omitempty"`
}
