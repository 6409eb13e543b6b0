package models

// Department represents an organizational unit of the club
type Department struct {
	Base
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`
	Email       string `gorm:"size:255" json:"email"`

	// Relationships
	ContactPersons []ContactPerson `gorm:"foreignKey:DepartmentID" json:"contact_persons,omitempty"`
	Events         []Event         `gorm:"foreignKey:DepartmentID" json:"events,omitempty"`
}
