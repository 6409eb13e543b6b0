package models

import "time"

// Event represents a single club event. Recurring series are expanded by the
// calendar frontend; the backend stores concrete occurrences only.
type Event struct {
	Base
	Title        string    `gorm:"size:200;not null" json:"title"`
	Description  string    `gorm:"size:2000" json:"description"`
	Location     string    `gorm:"size:255" json:"location"`
	StartsAt     time.Time `gorm:"not null;index" json:"starts_at"`
	EndsAt       time.Time `gorm:"not null" json:"ends_at"`
	AllDay       bool      `gorm:"default:false" json:"all_day"`
	DepartmentID *string   `gorm:"type:uuid;index" json:"department_id,omitempty"`

	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}
