package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "clubhub/internal/errors"
	"clubhub/internal/pagination"
	"clubhub/internal/services"
)

// DepartmentHandler handles department and contact person requests
type DepartmentHandler struct {
	departmentService services.DepartmentServicer
	auditService      services.AuditServicer
}

// NewDepartmentHandler creates a new DepartmentHandler
func NewDepartmentHandler(departmentService services.DepartmentServicer, auditService services.AuditServicer) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService, auditService: auditService}
}

// CreateDepartmentRequest represents the request payload for creating a department
type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Email       string `json:"email" binding:"omitempty,email"`
}

// UpdateDepartmentRequest represents the request payload for updating a department
type UpdateDepartmentRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Email       *string `json:"email" binding:"omitempty,email"`
}

// ContactPersonRequest represents the request payload for creating or updating
// a contact person
type ContactPersonRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	Role      string `json:"role" binding:"omitempty,max=100"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone" binding:"omitempty,max=30"`
	SortOrder int    `json:"sort_order" binding:"omitempty,min=0"`
}

// CreateDepartment handles the creation of a new department
// @Summary     Create a department
// @Description Create a new department
// @Tags        departments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateDepartmentRequest true "Department details"
// @Success     201 {object} map[string]interface{} "Department created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /departments [post]
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	department, err := h.departmentService.CreateDepartment(req.Name, req.Description, req.Email)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_DEPARTMENT", "department", department.ID, c.ClientIP(),
		map[string]interface{}{"name": department.Name})

	c.JSON(http.StatusCreated, gin.H{"department": department})
}

// ListDepartments handles the paginated retrieval of departments
// @Summary     List departments
// @Description Get a paginated list of departments
// @Tags        departments
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "List of departments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /departments [get]
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.departmentService.ListDepartments(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"departments": result})
}

// GetDepartmentByID handles the retrieval of a specific department
// @Summary     Get department by ID
// @Description Get a specific department with its contact persons
// @Tags        departments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Department ID"
// @Success     200 {object} map[string]interface{} "Department details"
// @Failure     400 {object} ErrorResponse "Invalid department ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Department not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /departments/{id} [get]
func (h *DepartmentHandler) GetDepartmentByID(c *gin.Context) {
	departmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	department, err := h.departmentService.GetDepartmentByID(departmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"department": department})
}

// UpdateDepartment handles updating a department
// @Summary     Update department
// @Description Update a department's details
// @Tags        departments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Department ID"
// @Param       request body UpdateDepartmentRequest true "Updated department details"
// @Success     200 {object} map[string]interface{} "Updated department"
// @Failure     400 {object} ErrorResponse "Invalid input or department ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Department not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /departments/{id} [put]
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	departmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	department, err := h.departmentService.UpdateDepartment(departmentID, req.Name, req.Description, req.Email)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_DEPARTMENT", "department", department.ID, c.ClientIP(),
		map[string]interface{}{"name": department.Name})

	c.JSON(http.StatusOK, gin.H{"department": department})
}

// DeleteDepartment handles deleting a department and its contact persons
// @Summary     Delete department
// @Description Delete a department and all of its contact persons
// @Tags        departments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Department ID"
// @Success     200 {object} MessageResponse "Department deleted"
// @Failure     400 {object} ErrorResponse "Invalid department ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Department not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /departments/{id} [delete]
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	departmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.departmentService.DeleteDepartment(departmentID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_DEPARTMENT", "department", departmentID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Department deleted successfully"})
}

// CreateContactPerson handles adding a contact person to a department
// @Summary     Create contact person
// @Description Add a contact person to a department
// @Tags        departments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Department ID"
// @Param       request body ContactPersonRequest true "Contact person details"
// @Success     201 {object} map[string]interface{} "Contact person created"
// @Failure     400 {object} ErrorResponse "Invalid input or department ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Department not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /departments/{id}/contacts [post]
func (h *DepartmentHandler) CreateContactPerson(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	departmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ContactPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	contact, err := h.departmentService.CreateContactPerson(departmentID, services.ContactPersonInput{
		Name:      req.Name,
		Role:      req.Role,
		Email:     req.Email,
		Phone:     req.Phone,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_CONTACT_PERSON", "contact_person", contact.ID, c.ClientIP(),
		map[string]interface{}{"name": contact.Name, "department_id": departmentID})

	c.JSON(http.StatusCreated, gin.H{"contact_person": contact})
}

// ListContactPersons handles listing the contact persons of a department
// @Summary     List contact persons
// @Description Get the contact persons of a department ordered by sort order
// @Tags        departments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Department ID"
// @Success     200 {object} map[string]interface{} "List of contact persons"
// @Failure     400 {object} ErrorResponse "Invalid department ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Department not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /departments/{id}/contacts [get]
func (h *DepartmentHandler) ListContactPersons(c *gin.Context) {
	departmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	contacts, err := h.departmentService.ListContactPersons(departmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contact_persons": contacts})
}

// UpdateContactPerson handles updating a contact person
// @Summary     Update contact person
// @Description Update a contact person's details
// @Tags        departments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Contact person ID"
// @Param       request body ContactPersonRequest true "Updated contact person details"
// @Success     200 {object} map[string]interface{} "Updated contact person"
// @Failure     400 {object} ErrorResponse "Invalid input or contact person ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Contact person not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contacts/{id} [put]
func (h *DepartmentHandler) UpdateContactPerson(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	contactID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ContactPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	contact, err := h.departmentService.UpdateContactPerson(contactID, services.ContactPersonInput{
		Name:      req.Name,
		Role:      req.Role,
		Email:     req.Email,
		Phone:     req.Phone,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_CONTACT_PERSON", "contact_person", contact.ID, c.ClientIP(),
		map[string]interface{}{"name": contact.Name})

	c.JSON(http.StatusOK, gin.H{"contact_person": contact})
}

// DeleteContactPerson handles deleting a contact person
// @Summary     Delete contact person
// @Description Delete a contact person by ID
// @Tags        departments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Contact person ID"
// @Success     200 {object} MessageResponse "Contact person deleted"
// @Failure     400 {object} ErrorResponse "Invalid contact person ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Contact person not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contacts/{id} [delete]
func (h *DepartmentHandler) DeleteContactPerson(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	contactID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.departmentService.DeleteContactPerson(contactID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_CONTACT_PERSON", "contact_person", contactID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Contact person deleted successfully"})
}
