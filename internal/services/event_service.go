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

// eventService handles event-related business logic.
type eventService struct {
	db *gorm.DB
}

// NewEventService creates a new EventServicer.
func NewEventService(db *gorm.DB) EventServicer {
	return &eventService{db: db}
}

func (s *eventService) validateEventInput(in *EventInput) error {
	in.Title = strings.TrimSpace(in.Title)
	n := utf8.RuneCountInString(in.Title)
	if n < 2 || n > 200 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "event title must be between 2 and 200 characters")
	}
	if in.StartsAt.IsZero() || in.EndsAt.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "event start and end times are required")
	}
	if !in.EndsAt.After(in.StartsAt) {
		return apperrors.ErrInvalidEventTime
	}
	if in.DepartmentID != nil {
		var count int64
		if err := s.db.Model(&models.Department{}).Where("id = ?", *in.DepartmentID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return apperrors.ErrDepartmentNotFound
		}
	}
	return nil
}

// CreateEvent creates a new event.
func (s *eventService) CreateEvent(in EventInput) (*models.Event, error) {
	if err := s.validateEventInput(&in); err != nil {
		return nil, err
	}

	event := &models.Event{
		Title:        in.Title,
		Description:  in.Description,
		Location:     in.Location,
		StartsAt:     in.StartsAt,
		EndsAt:       in.EndsAt,
		AllDay:       in.AllDay,
		DepartmentID: in.DepartmentID,
	}
	if err := s.db.Create(event).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return event, nil
}

// ListEvents retrieves a paginated list of events, optionally limited to a
// time range, ordered by start time.
func (s *eventService) ListEvents(page pagination.PageRequest, filter EventFilter) (*pagination.PageResponse[models.Event], error) {
	page.Defaults()

	base := s.db.Model(&models.Event{})
	if filter.From != nil {
		base = base.Where("ends_at >= ?", *filter.From)
	}
	if filter.To != nil {
		base = base.Where("starts_at <= ?", *filter.To)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var events []models.Event
	if err := base.Order("starts_at").Scopes(pagination.Paginate(page)).Find(&events).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(events, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetEventByID retrieves an event by ID.
func (s *eventService) GetEventByID(id string) (*models.Event, error) {
	var event models.Event
	if err := s.db.Where("id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &event, nil
}

// UpdateEvent replaces an event's fields.
func (s *eventService) UpdateEvent(id string, in EventInput) (*models.Event, error) {
	event, err := s.GetEventByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateEventInput(&in); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":         in.Title,
		"description":   in.Description,
		"location":      in.Location,
		"starts_at":     in.StartsAt,
		"ends_at":       in.EndsAt,
		"all_day":       in.AllDay,
		"department_id": in.DepartmentID,
	}
	if err := s.db.Model(event).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return event, nil
}

// DeleteEvent soft-deletes an event.
func (s *eventService) DeleteEvent(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.Event{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}
