package models

// Category is a node in the category tree. Slug is derived, never
// user-supplied: the '/'-joined path of name-derived segments from the root
// down to this node. The category service is the only writer of Slug.
type Category struct {
	Base
	Name        string  `gorm:"size:100;not null" json:"name"`
	Slug        string  `gorm:"size:255;uniqueIndex:idx_categories_slug,where:deleted_at IS NULL;not null" json:"slug"`
	Description string  `gorm:"size:500" json:"description"`
	ParentID    *string `gorm:"type:uuid;index" json:"parent_id,omitempty"`

	// Relationships
	Parent   *Category   `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []*Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Posts    []Post      `gorm:"foreignKey:CategoryID" json:"posts,omitempty"`
}
