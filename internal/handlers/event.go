package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solo-platform/community-api/internal/dto"
	apierrors "github.com/solo-platform/community-api/internal/errors"
	"github.com/solo-platform/community-api/internal/middleware"
	"github.com/solo-platform/community-api/internal/models"
	"github.com/solo-platform/community-api/internal/services"
	"github.com/solo-platform/community-api/internal/utils"
)

// EventHandler coordinates event and participation HTTP handlers.
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// CreateEvent creates a new event under an organization. The creator
// automatically becomes its leader organizer.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateEventRequest struct {
		Name           string            `json:"name" binding:"required,max=64"`
		OrganizationID uint64            `json:"organization_id" binding:"required"`
		Date           time.Time         `json:"date" binding:"required"`
		DateEnd        time.Time         `json:"date_end"`
		Auditorium     string            `json:"auditorium" binding:"max=64"`
		Level          models.EventLevel `json:"level"`
		CategoryIDs    []uint64          `json:"category_ids"`
		TypeIDs        []uint64          `json:"type_ids"`
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	event, err := h.eventService.CreateEvent(actor, services.CreateEventInput{
		Name:           req.Name,
		OrganizationID: req.OrganizationID,
		Date:           req.Date,
		DateEnd:        req.DateEnd,
		Auditorium:     req.Auditorium,
		Level:          req.Level,
		CategoryIDs:    req.CategoryIDs,
		TypeIDs:        req.TypeIDs,
		CreatorID:      actor.ID,
	})
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventDTO(*event))
}

// ListEvents returns events with pagination. Public read.
func (h *EventHandler) ListEvents(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	events, total, err := h.eventService.ListEvents(params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch events")
		return
	}

	eventDTOs := make([]dto.EventDTO, len(events))
	for i, event := range events {
		eventDTOs[i] = dto.ToEventDTO(event)
	}

	c.JSON(http.StatusOK, gin.H{
		"events": eventDTOs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetEvent returns event details with organizers and guests. Public read.
func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}

	event, err := h.eventService.GetEvent(eventID)
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventDetailDTO(*event))
}

// UpdateEvent updates event fields (full or partial)
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateEventRequest struct {
		Name        *string             `json:"name"`
		Date        *time.Time          `json:"date"`
		DateEnd     *time.Time          `json:"date_end"`
		Auditorium  *string             `json:"auditorium"`
		Level       *models.EventLevel  `json:"level"`
		Status      *models.EventStatus `json:"status"`
		CategoryIDs *[]uint64           `json:"category_ids"`
		TypeIDs     *[]uint64           `json:"type_ids"`
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	event, err := h.eventService.UpdateEvent(actor, eventID, services.UpdateEventInput{
		Name:        req.Name,
		Date:        req.Date,
		DateEnd:     req.DateEnd,
		Auditorium:  req.Auditorium,
		Level:       req.Level,
		Status:      req.Status,
		CategoryIDs: req.CategoryIDs,
		TypeIDs:     req.TypeIDs,
	})
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventDTO(*event))
}

// DeleteEvent deletes an event. Staff only (route gate).
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}

	if err := h.eventService.DeleteEvent(eventID); err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted successfully",
	})
}

// AddOrganizer adds an organizer to an event. Caller must resolve as a
// leader of the event.
func (h *EventHandler) AddOrganizer(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type AddOrganizerRequest struct {
		EventID uint64               `json:"event_id" binding:"required"`
		UserID  uint64               `json:"user_id" binding:"required"`
		Role    models.OrganizerRole `json:"role"`
		Grant   uint16               `json:"grant"`
	}

	var req AddOrganizerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	organizer, err := h.eventService.AddOrganizer(actor, services.AddOrganizerInput{
		EventID: req.EventID,
		UserID:  req.UserID,
		Role:    req.Role,
		Grant:   req.Grant,
	})
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventOrganizerDTO(*organizer))
}

// ListOrganizers lists organizers of an event. Public read.
func (h *EventHandler) ListOrganizers(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}

	organizers, err := h.eventService.ListOrganizers(eventID)
	if err != nil {
		respondEventError(c, err)
		return
	}

	organizerDTOs := make([]dto.EventOrganizerDTO, len(organizers))
	for i, o := range organizers {
		organizerDTOs[i] = dto.ToEventOrganizerDTO(o)
	}

	c.JSON(http.StatusOK, gin.H{
		"organizers": organizerDTOs,
	})
}

// UpdateOrganizer updates an organizer row. Same leadership gate as
// AddOrganizer.
func (h *EventHandler) UpdateOrganizer(c *gin.Context) {
	organizerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid organizer ID")
		return
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateOrganizerRequest struct {
		Role  *models.OrganizerRole `json:"role"`
		Grant *uint16               `json:"grant"`
	}

	var req UpdateOrganizerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	organizer, err := h.eventService.UpdateOrganizer(actor, organizerID, services.UpdateOrganizerInput{
		Role:  req.Role,
		Grant: req.Grant,
	})
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventOrganizerDTO(*organizer))
}

// RemoveOrganizer removes an organizer row. Same leadership gate as
// AddOrganizer.
func (h *EventHandler) RemoveOrganizer(c *gin.Context) {
	organizerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid organizer ID")
		return
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.eventService.RemoveOrganizer(actor, organizerID); err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Organizer removed successfully",
	})
}

// RegisterGuest self-registers the caller for an event. No approval step.
func (h *EventHandler) RegisterGuest(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type RegisterGuestRequest struct {
		EventID uint64 `json:"event_id" binding:"required"`
	}

	var req RegisterGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	guest, err := h.eventService.RegisterGuest(actor, req.EventID)
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventGuestDTO(*guest))
}

// ListGuests lists guest rows for an event. Non-staff callers only see
// their own registration.
func (h *EventHandler) ListGuests(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	guests, err := h.eventService.ListGuests(actor, eventID)
	if err != nil {
		respondEventError(c, err)
		return
	}

	guestDTOs := make([]dto.EventGuestDTO, len(guests))
	for i, g := range guests {
		guestDTOs[i] = dto.ToEventGuestDTO(g)
	}

	c.JSON(http.StatusOK, gin.H{
		"guests": guestDTOs,
	})
}

// ListMyRegistrations lists the caller's guest rows across events.
func (h *EventHandler) ListMyRegistrations(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	guests, err := h.eventService.ListRegistrationsForUser(actor)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch registrations")
		return
	}

	guestDTOs := make([]dto.EventGuestDTO, len(guests))
	for i, g := range guests {
		guestDTOs[i] = dto.ToEventGuestDTO(g)
	}

	c.JSON(http.StatusOK, gin.H{
		"guests": guestDTOs,
	})
}

// RemoveGuest removes a guest row. The guest themself or staff.
func (h *EventHandler) RemoveGuest(c *gin.Context) {
	guestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid guest ID")
		return
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.eventService.RemoveGuest(actor, guestID); err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Guest removed successfully",
	})
}

func respondEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrOrganizationNotFound),
		errors.Is(err, services.ErrOrganizerNotFound),
		errors.Is(err, services.ErrGuestNotFound),
		errors.Is(err, services.ErrEventCategoryNotFound),
		errors.Is(err, services.ErrEventTypeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidEventName):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAlreadyOrganizer),
		errors.Is(err, services.ErrAlreadyGuest):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotEventLeader),
		errors.Is(err, services.ErrNotOrganizationMember),
		errors.Is(err, services.ErrNotGuestOwner):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
