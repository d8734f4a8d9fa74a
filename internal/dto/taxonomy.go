package dto

import "github.com/solo-platform/community-api/internal/models"

// EventCategoryDTO represents an event category in API responses
type EventCategoryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// EventTypeDTO represents an event type in API responses
type EventTypeDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ToEventCategoryDTO converts an event category to DTO
func ToEventCategoryDTO(category models.EventCategory) EventCategoryDTO {
	return EventCategoryDTO{
		ID:   category.ID,
		Name: category.Name,
	}
}

// ToEventTypeDTO converts an event type to DTO
func ToEventTypeDTO(eventType models.EventType) EventTypeDTO {
	return EventTypeDTO{
		ID:   eventType.ID,
		Name: eventType.Name,
	}
}
