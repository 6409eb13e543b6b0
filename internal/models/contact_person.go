package models

// ContactPerson is a public point of contact for a department
type ContactPerson struct {
	Base
	Name         string `gorm:"size:100;not null" json:"name"`
	Role         string `gorm:"size:100" json:"role"`
	Email        string `gorm:"size:255" json:"email"`
	Phone        string `gorm:"size:50" json:"phone"`
	SortOrder    int    `gorm:"default:0" json:"sort_order"`
	DepartmentID string `gorm:"type:uuid;not null;index" json:"department_id"`

	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}
