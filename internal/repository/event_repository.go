package repository

import (
	"errors"
	"fmt"

	"github.com/solo-platform/community-api/internal/database"
	"github.com/solo-platform/community-api/internal/models"
	"github.com/solo-platform/community-api/internal/utils"
	"gorm.io/gorm"
)

var (
	// ErrCreateEvent is returned when creating the event fails inside the creation transaction.
	ErrCreateEvent = errors.New("event repository: create event failed")
	// ErrCreateEventOrganizer is returned when creating the leader organizer row fails inside the creation transaction.
	ErrCreateEventOrganizer = errors.New("event repository: create event organizer failed")
)

// GormEventRepository is a GORM implementation of EventRepository
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &GormEventRepository{db: db}
}

// CreateWithLeader creates an event and the creator's leader organizer row
// atomically.
func (r *GormEventRepository) CreateWithLeader(event *models.Event, organizer *models.EventOrganizer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateEvent, err)
		}

		organizer.EventID = event.ID

		if err := tx.Create(organizer).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateEventOrganizer, err)
		}

		return nil
	})
}

// FindByID finds an event by ID with optional preloading
func (r *GormEventRepository) FindByID(id uint64, preload ...string) (*models.Event, error) {
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}

	var event models.Event
	if err := query.First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// List retrieves events with pagination
func (r *GormEventRepository) List(params utils.PaginationParams) ([]models.Event, int64, error) {
	var events []models.Event
	var total int64

	if err := r.db.Model(&models.Event{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Scopes(database.Paginate(params)).Order("date ASC").Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// Update updates an event
func (r *GormEventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

// Delete deletes an event and all related data in a transaction
func (r *GormEventRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.EventOrganizer{}).Error; err != nil {
			return err
		}

		if err := tx.Where("event_id = ?", id).Delete(&models.EventGuest{}).Error; err != nil {
			return err
		}

		if err := tx.Exec("DELETE FROM event_category_assignments WHERE event_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM event_type_assignments WHERE event_id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Event{}, id).Error; err != nil {
			return err
		}

		return nil
	})
}

// AddOrganizer adds an organizer row
func (r *GormEventRepository) AddOrganizer(organizer *models.EventOrganizer) error {
	return r.db.Create(organizer).Error
}

// UpdateOrganizer updates an organizer row
func (r *GormEventRepository) UpdateOrganizer(organizer *models.EventOrganizer) error {
	return r.db.Save(organizer).Error
}

// RemoveOrganizer removes an organizer row by ID
func (r *GormEventRepository) RemoveOrganizer(id uint64) error {
	return r.db.Delete(&models.EventOrganizer{}, id).Error
}

// FindOrganizerByID finds an organizer row by ID
func (r *GormEventRepository) FindOrganizerByID(id uint64) (*models.EventOrganizer, error) {
	var organizer models.EventOrganizer
	if err := r.db.First(&organizer, id).Error; err != nil {
		return nil, err
	}
	return &organizer, nil
}

// FindOrganizer finds the organizer row of a user for an event
func (r *GormEventRepository) FindOrganizer(eventID, userID uint64) (*models.EventOrganizer, error) {
	var organizer models.EventOrganizer
	if err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&organizer).Error; err != nil {
		return nil, err
	}
	return &organizer, nil
}

// ListOrganizers lists all organizers of an event
func (r *GormEventRepository) ListOrganizers(eventID uint64) ([]models.EventOrganizer, error) {
	var organizers []models.EventOrganizer
	if err := r.db.Preload("User").
		Where("event_id = ?", eventID).
		Find(&organizers).Error; err != nil {
		return nil, err
	}
	return organizers, nil
}

// AddGuest adds a guest row
func (r *GormEventRepository) AddGuest(guest *models.EventGuest) error {
	return r.db.Create(guest).Error
}

// RemoveGuest removes a guest row by ID
func (r *GormEventRepository) RemoveGuest(id uint64) error {
	return r.db.Delete(&models.EventGuest{}, id).Error
}

// FindGuestByID finds a guest row by ID
func (r *GormEventRepository) FindGuestByID(id uint64) (*models.EventGuest, error) {
	var guest models.EventGuest
	if err := r.db.First(&guest, id).Error; err != nil {
		return nil, err
	}
	return &guest, nil
}

// ListGuests lists guest rows, optionally restricted to one user
func (r *GormEventRepository) ListGuests(eventID uint64, userID *uint64) ([]models.EventGuest, error) {
	query := r.db.Preload("User").Where("event_id = ?", eventID)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var guests []models.EventGuest
	if err := query.Find(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}

// ReplaceCategories replaces the event's category assignments
func (r *GormEventRepository) ReplaceCategories(event *models.Event, categories []models.EventCategory) error {
	return r.db.Model(event).Association("Categories").Replace(categories)
}

// ReplaceTypes replaces the event's type assignments
func (r *GormEventRepository) ReplaceTypes(event *models.Event, types []models.EventType) error {
	return r.db.Model(event).Association("Types").Replace(types)
}

// ListGuestsByUserID lists all guest rows of a user
func (r *GormEventRepository) ListGuestsByUserID(userID uint64) ([]models.EventGuest, error) {
	var guests []models.EventGuest
	if err := r.db.Preload("Event").
		Where("user_id = ?", userID).
		Find(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}
