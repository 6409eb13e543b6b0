package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "clubhub/internal/errors"
	"clubhub/internal/pagination"
	"clubhub/internal/services"
)

// MediaHandler handles media metadata requests
type MediaHandler struct {
	mediaService services.MediaServicer
	auditService services.AuditServicer
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaService services.MediaServicer, auditService services.AuditServicer) *MediaHandler {
	return &MediaHandler{mediaService: mediaService, auditService: auditService}
}

// CreateMediaRequest represents the request payload for registering an
// uploaded file's metadata
type CreateMediaRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=255"`
	StoragePath string `json:"storage_path" binding:"required,max=1024"`
	MimeType    string `json:"mime_type" binding:"required,max=100"`
	SizeBytes   int64  `json:"size_bytes" binding:"required,min=1"`
	AltText     string `json:"alt_text" binding:"omitempty,max=500"`
}

// UpdateMediaRequest represents the request payload for updating media metadata
type UpdateMediaRequest struct {
	FileName *string `json:"file_name" binding:"omitempty,min=1,max=255"`
	AltText  *string `json:"alt_text" binding:"omitempty,max=500"`
}

// CreateMedia handles registering a new media record
// @Summary     Create media record
// @Description Register the metadata of an uploaded file
// @Tags        media
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateMediaRequest true "Media metadata"
// @Success     201 {object} map[string]interface{} "Media record created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /media [post]
func (h *MediaHandler) CreateMedia(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	media, err := h.mediaService.CreateMedia(userID, services.CreateMediaInput{
		FileName:    req.FileName,
		StoragePath: req.StoragePath,
		MimeType:    req.MimeType,
		SizeBytes:   req.SizeBytes,
		AltText:     req.AltText,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_MEDIA", "media", media.ID, c.ClientIP(),
		map[string]interface{}{"file_name": media.FileName})

	c.JSON(http.StatusCreated, gin.H{"media": media})
}

// ListMedia handles the paginated retrieval of media records
// @Summary     List media records
// @Description Get a paginated list of media records
// @Tags        media
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "List of media records"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /media [get]
func (h *MediaHandler) ListMedia(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.mediaService.ListMedia(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"media": result})
}

// GetMediaByID handles the retrieval of a specific media record
// @Summary     Get media record by ID
// @Description Get a specific media record by ID
// @Tags        media
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Media ID"
// @Success     200 {object} map[string]interface{} "Media record"
// @Failure     400 {object} ErrorResponse "Invalid media ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Media not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /media/{id} [get]
func (h *MediaHandler) GetMediaByID(c *gin.Context) {
	mediaID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	media, err := h.mediaService.GetMediaByID(mediaID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"media": media})
}

// UpdateMedia handles updating a media record's editable metadata
// @Summary     Update media record
// @Description Update a media record's file name or alt text
// @Tags        media
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Media ID"
// @Param       request body UpdateMediaRequest true "Updated media metadata"
// @Success     200 {object} map[string]interface{} "Updated media record"
// @Failure     400 {object} ErrorResponse "Invalid input or media ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Media not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /media/{id} [put]
func (h *MediaHandler) UpdateMedia(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	mediaID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	media, err := h.mediaService.UpdateMedia(mediaID, req.FileName, req.AltText)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_MEDIA", "media", media.ID, c.ClientIP(),
		map[string]interface{}{"file_name": media.FileName})

	c.JSON(http.StatusOK, gin.H{"media": media})
}

// DeleteMedia handles deleting a media record
// @Summary     Delete media record
// @Description Delete a media record by ID
// @Tags        media
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Media ID"
// @Success     200 {object} MessageResponse "Media record deleted"
// @Failure     400 {object} ErrorResponse "Invalid media ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Media not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /media/{id} [delete]
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	mediaID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.mediaService.DeleteMedia(mediaID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_MEDIA", "media", mediaID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Media record deleted successfully"})
}
