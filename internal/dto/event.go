package dto

import (
	"time"

	"github.com/solo-platform/community-api/internal/models"
)

// EventDTO represents an event in API responses
type EventDTO struct {
	ID             uint64             `json:"id"`
	Name           string             `json:"name"`
	OrganizationID uint64             `json:"organization_id"`
	Date           time.Time          `json:"date"`
	DateEnd        time.Time          `json:"date_end"`
	Auditorium     string             `json:"auditorium"`
	Level          models.EventLevel  `json:"level"`
	Status         models.EventStatus `json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
}

// EventOrganizerDTO represents an organizer row in API responses
type EventOrganizerDTO struct {
	ID      uint64               `json:"id"`
	EventID uint64               `json:"event_id"`
	UserID  uint64               `json:"user_id"`
	Role    models.OrganizerRole `json:"role"`
	Grant   uint16               `json:"grant"`
}

// EventGuestDTO represents a guest row in API responses
type EventGuestDTO struct {
	ID           uint64    `json:"id"`
	EventID      uint64    `json:"event_id"`
	UserID       uint64    `json:"user_id"`
	RegisteredAt time.Time `json:"registered_at"`
}

// EventDetailDTO represents an event with its participants and taxonomy
type EventDetailDTO struct {
	EventDTO
	Organization OrganizationDTO     `json:"organization"`
	Organizers   []EventOrganizerDTO `json:"organizers"`
	Guests       []EventGuestDTO     `json:"guests"`
	Categories   []EventCategoryDTO  `json:"categories"`
	Types        []EventTypeDTO      `json:"types"`
}

// ToEventDTO converts an event to DTO
func ToEventDTO(event models.Event) EventDTO {
	return EventDTO{
		ID:             event.ID,
		Name:           event.Name,
		OrganizationID: event.OrganizationID,
		Date:           event.Date,
		DateEnd:        event.DateEnd,
		Auditorium:     event.Auditorium,
		Level:          event.Level,
		Status:         event.Status,
		CreatedAt:      event.CreatedAt,
	}
}

// ToEventOrganizerDTO converts an organizer row to DTO
func ToEventOrganizerDTO(organizer models.EventOrganizer) EventOrganizerDTO {
	return EventOrganizerDTO{
		ID:      organizer.ID,
		EventID: organizer.EventID,
		UserID:  organizer.UserID,
		Role:    organizer.Role,
		Grant:   organizer.Grant,
	}
}

// ToEventGuestDTO converts a guest row to DTO
func ToEventGuestDTO(guest models.EventGuest) EventGuestDTO {
	return EventGuestDTO{
		ID:           guest.ID,
		EventID:      guest.EventID,
		UserID:       guest.UserID,
		RegisteredAt: guest.CreatedAt,
	}
}

// ToEventDetailDTO converts an event with preloaded participants to DTO
func ToEventDetailDTO(event models.Event) EventDetailDTO {
	organizers := make([]EventOrganizerDTO, len(event.Organizers))
	for i, o := range event.Organizers {
		organizers[i] = ToEventOrganizerDTO(o)
	}

	guests := make([]EventGuestDTO, len(event.Guests))
	for i, g := range event.Guests {
		guests[i] = ToEventGuestDTO(g)
	}

	categories := make([]EventCategoryDTO, len(event.Categories))
	for i, cat := range event.Categories {
		categories[i] = ToEventCategoryDTO(cat)
	}

	types := make([]EventTypeDTO, len(event.Types))
	for i, et := range event.Types {
		types[i] = ToEventTypeDTO(et)
	}

	return EventDetailDTO{
		EventDTO:     ToEventDTO(event),
		Organization: ToOrganizationDTO(event.Organization),
		Organizers:   organizers,
		Guests:       guests,
		Categories:   categories,
		Types:        types,
	}
}
