package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "clubhub/internal/errors"
	"clubhub/internal/pagination"
	"clubhub/internal/services"
)

// TagHandler handles tag-related requests
type TagHandler struct {
	tagService   services.TagServicer
	auditService services.AuditServicer
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagService services.TagServicer, auditService services.AuditServicer) *TagHandler {
	return &TagHandler{tagService: tagService, auditService: auditService}
}

// TagRequest represents the request payload for creating or renaming a tag
type TagRequest struct {
	Name string `json:"name" binding:"required,min=2,max=50"`
}

// TagResponse represents a tag in the response
type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CreateTag handles the creation of a new tag
// @Summary     Create a tag
// @Description Create a new tag with a derived slug
// @Tags        tags
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TagRequest true "Tag details"
// @Success     201 {object} TagResponse "Tag created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Duplicate tag name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tags [post]
func (h *TagHandler) CreateTag(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	tag, err := h.tagService.CreateTag(req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_TAG", "tag", tag.ID, c.ClientIP(),
		map[string]interface{}{"name": tag.Name})

	c.JSON(http.StatusCreated, gin.H{"tag": tag})
}

// ListTags handles the paginated retrieval of tags
// @Summary     List tags
// @Description Get a paginated list of tags ordered by name
// @Tags        tags
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {array} TagResponse "List of tags"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tags [get]
func (h *TagHandler) ListTags(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.tagService.ListTags(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": result})
}

// GetTagByID handles the retrieval of a specific tag
// @Summary     Get tag by ID
// @Description Get a specific tag by ID
// @Tags        tags
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Tag ID"
// @Success     200 {object} TagResponse "Tag details"
// @Failure     400 {object} ErrorResponse "Invalid tag ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Tag not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tags/{id} [get]
func (h *TagHandler) GetTagByID(c *gin.Context) {
	tagID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tag, err := h.tagService.GetTagByID(tagID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tag": tag})
}

// UpdateTag handles renaming a tag
// @Summary     Update tag
// @Description Rename a tag; its slug is re-derived
// @Tags        tags
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Tag ID"
// @Param       request body TagRequest true "Updated tag details"
// @Success     200 {object} TagResponse "Updated tag"
// @Failure     400 {object} ErrorResponse "Invalid input or tag ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Tag not found"
// @Failure     409 {object} ErrorResponse "Duplicate tag name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tags/{id} [put]
func (h *TagHandler) UpdateTag(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tagID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	tag, err := h.tagService.UpdateTag(tagID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_TAG", "tag", tag.ID, c.ClientIP(),
		map[string]interface{}{"name": tag.Name})

	c.JSON(http.StatusOK, gin.H{"tag": tag})
}

// DeleteTag handles deleting a tag
// @Summary     Delete tag
// @Description Delete a tag by ID
// @Tags        tags
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Tag ID"
// @Success     200 {object} MessageResponse "Tag deleted"
// @Failure     400 {object} ErrorResponse "Invalid tag ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Tag not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tags/{id} [delete]
func (h *TagHandler) DeleteTag(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tagID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.tagService.DeleteTag(tagID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_TAG", "tag", tagID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}
