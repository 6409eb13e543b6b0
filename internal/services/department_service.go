package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	apperrors "clubhub/internal/errors"
	"clubhub/internal/models"
	"clubhub/internal/pagination"
)

// departmentService handles departments and their contact persons.
type departmentService struct {
	db *gorm.DB
}

// NewDepartmentService creates a new DepartmentServicer.
func NewDepartmentService(db *gorm.DB) DepartmentServicer {
	return &departmentService{db: db}
}

func validateDepartmentName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < 2 || n > 100 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "department name must be between 2 and 100 characters")
	}
	return nil
}

// CreateDepartment creates a new department.
func (s *departmentService) CreateDepartment(name, description, email string) (*models.Department, error) {
	name = strings.TrimSpace(name)
	if err := validateDepartmentName(name); err != nil {
		return nil, err
	}

	department := &models.Department{
		Name:        name,
		Description: description,
		Email:       email,
	}
	if err := s.db.Create(department).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return department, nil
}

// ListDepartments retrieves a paginated list of departments ordered by name.
func (s *departmentService) ListDepartments(page pagination.PageRequest) (*pagination.PageResponse[models.Department], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Department{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var departments []models.Department
	if err := base.Order("name").Scopes(pagination.Paginate(page)).Find(&departments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(departments, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetDepartmentByID retrieves a department with its contact persons.
func (s *departmentService) GetDepartmentByID(id string) (*models.Department, error) {
	var department models.Department
	err := s.db.Preload("ContactPersons", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order, name")
	}).Where("id = ?", id).First(&department).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &department, nil
}

// UpdateDepartment applies a partial department update.
func (s *departmentService) UpdateDepartment(id string, name, description, email *string) (*models.Department, error) {
	var department models.Department
	if err := s.db.Where("id = ?", id).First(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if err := validateDepartmentName(trimmed); err != nil {
			return nil, err
		}
		updates["name"] = trimmed
	}
	if description != nil {
		updates["description"] = *description
	}
	if email != nil {
		updates["email"] = *email
	}

	if len(updates) > 0 {
		if err := s.db.Model(&department).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &department, nil
}

// DeleteDepartment soft-deletes a department and its contact persons.
func (s *departmentService) DeleteDepartment(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&models.Department{})
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrDepartmentNotFound
		}
		if err := tx.Where("department_id = ?", id).Delete(&models.ContactPerson{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// CreateContactPerson adds a contact person to a department.
func (s *departmentService) CreateContactPerson(departmentID string, in ContactPersonInput) (*models.ContactPerson, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "contact person name is required")
	}

	var count int64
	if err := s.db.Model(&models.Department{}).Where("id = ?", departmentID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrDepartmentNotFound
	}

	contact := &models.ContactPerson{
		Name:         in.Name,
		Role:         in.Role,
		Email:        in.Email,
		Phone:        in.Phone,
		SortOrder:    in.SortOrder,
		DepartmentID: departmentID,
	}
	if err := s.db.Create(contact).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return contact, nil
}

// ListContactPersons returns a department's contact persons in display order.
func (s *departmentService) ListContactPersons(departmentID string) ([]models.ContactPerson, error) {
	var count int64
	if err := s.db.Model(&models.Department{}).Where("id = ?", departmentID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrDepartmentNotFound
	}

	var contacts []models.ContactPerson
	if err := s.db.Where("department_id = ?", departmentID).Order("sort_order, name").Find(&contacts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return contacts, nil
}

// UpdateContactPerson replaces a contact person's editable fields.
func (s *departmentService) UpdateContactPerson(id string, in ContactPersonInput) (*models.ContactPerson, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "contact person name is required")
	}

	var contact models.ContactPerson
	if err := s.db.Where("id = ?", id).First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContactPersonNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{
		"name":       in.Name,
		"role":       in.Role,
		"email":      in.Email,
		"phone":      in.Phone,
		"sort_order": in.SortOrder,
	}
	if err := s.db.Model(&contact).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &contact, nil
}

// DeleteContactPerson soft-deletes a contact person.
func (s *departmentService) DeleteContactPerson(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.ContactPerson{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrContactPersonNotFound
	}
	return nil
}
