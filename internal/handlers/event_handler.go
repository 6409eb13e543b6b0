package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "clubhub/internal/errors"
	"clubhub/internal/pagination"
	"clubhub/internal/services"
)

// EventHandler handles event-related requests
type EventHandler struct {
	eventService services.EventServicer
	auditService services.AuditServicer
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService services.EventServicer, auditService services.AuditServicer) *EventHandler {
	return &EventHandler{eventService: eventService, auditService: auditService}
}

// EventRequest represents the request payload for creating or updating an event
type EventRequest struct {
	Title        string    `json:"title" binding:"required,min=2,max=200"`
	Description  string    `json:"description" binding:"omitempty,max=2000"`
	Location     string    `json:"location" binding:"omitempty,max=255"`
	StartsAt     time.Time `json:"starts_at" binding:"required"`
	EndsAt       time.Time `json:"ends_at" binding:"required"`
	AllDay       bool      `json:"all_day"`
	DepartmentID *string   `json:"department_id" binding:"omitempty,uuid"`
}

func (r *EventRequest) toInput() services.EventInput {
	return services.EventInput{
		Title:        r.Title,
		Description:  r.Description,
		Location:     r.Location,
		StartsAt:     r.StartsAt,
		EndsAt:       r.EndsAt,
		AllDay:       r.AllDay,
		DepartmentID: r.DepartmentID,
	}
}

// CreateEvent handles the creation of a new event
// @Summary     Create an event
// @Description Create a new calendar event
// @Tags        events
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body EventRequest true "Event details"
// @Success     201 {object} map[string]interface{} "Event created"
// @Failure     400 {object} ErrorResponse "Invalid input or event time"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Department not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	event, err := h.eventService.CreateEvent(req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_EVENT", "event", event.ID, c.ClientIP(),
		map[string]interface{}{"title": event.Title})

	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// ListEvents handles the paginated retrieval of events
// @Summary     List events
// @Description Get a paginated list of events, optionally within a time range
// @Tags        events
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       from query string false "Earliest start time (RFC 3339)"
// @Param       to query string false "Latest start time (RFC 3339)"
// @Success     200 {object} map[string]interface{} "List of events"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.EventFilter
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "from must be an RFC 3339 timestamp"))
			return
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "to must be an RFC 3339 timestamp"))
			return
		}
		filter.To = &to
	}

	result, err := h.eventService.ListEvents(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": result})
}

// GetEventByID handles the retrieval of a specific event
// @Summary     Get event by ID
// @Description Get a specific event by ID
// @Tags        events
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Event ID"
// @Success     200 {object} map[string]interface{} "Event details"
// @Failure     400 {object} ErrorResponse "Invalid event ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Event not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /events/{id} [get]
func (h *EventHandler) GetEventByID(c *gin.Context) {
	eventID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	event, err := h.eventService.GetEventByID(eventID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// UpdateEvent handles updating an event
// @Summary     Update event
// @Description Replace an event's details
// @Tags        events
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Event ID"
// @Param       request body EventRequest true "Updated event details"
// @Success     200 {object} map[string]interface{} "Updated event"
// @Failure     400 {object} ErrorResponse "Invalid input, event ID, or event time"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Event not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /events/{id} [put]
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	eventID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	event, err := h.eventService.UpdateEvent(eventID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_EVENT", "event", event.ID, c.ClientIP(),
		map[string]interface{}{"title": event.Title})

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// DeleteEvent handles deleting an event
// @Summary     Delete event
// @Description Delete an event by ID
// @Tags        events
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Event ID"
// @Success     200 {object} MessageResponse "Event deleted"
// @Failure     400 {object} ErrorResponse "Invalid event ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Event not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	eventID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.eventService.DeleteEvent(eventID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_EVENT", "event", eventID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
