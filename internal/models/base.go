package models

import (
	"time"

	"clubhub/internal/uuid"

	"gorm.io/gorm"
)

// Base holds the columns shared by every table: a string UUID primary key,
// timestamps, and a soft-delete marker. Soft-deleted rows stay out of normal
// queries, which is what lets a deleted category free up its name for reuse
// without physically removing history.
type Base struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate assigns a time-ordered UUIDv7 when none was set by the caller.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
