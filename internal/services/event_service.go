package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/solo-platform/community-api/internal/authz"
	"github.com/solo-platform/community-api/internal/models"
	"github.com/solo-platform/community-api/internal/repository"
	"github.com/solo-platform/community-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound          = errors.New("event not found")
	ErrInvalidEventName       = errors.New("event name cannot be empty")
	ErrNotEventLeader         = errors.New("not a leader of this event")
	ErrNotOrganizationMember  = errors.New("not a member of any organization")
	ErrOrganizerNotFound      = errors.New("event organizer not found")
	ErrAlreadyOrganizer       = errors.New("user is already an organizer of this event")
	ErrGuestNotFound          = errors.New("event guest not found")
	ErrAlreadyGuest           = errors.New("user is already registered for this event")
	ErrNotGuestOwner          = errors.New("guest record belongs to another user")
)

// EventService provides business logic for events and participation.
type EventService struct {
	eventRepo    repository.EventRepository
	orgRepo      repository.OrganizationRepository
	taxonomyRepo repository.TaxonomyRepository
	resolver     *authz.Resolver
}

// NewEventService creates a new EventService.
func NewEventService(eventRepo repository.EventRepository, orgRepo repository.OrganizationRepository, taxonomyRepo repository.TaxonomyRepository, resolver *authz.Resolver) *EventService {
	return &EventService{
		eventRepo:    eventRepo,
		orgRepo:      orgRepo,
		taxonomyRepo: taxonomyRepo,
		resolver:     resolver,
	}
}

// CreateEventInput represents parameters to create a new event.
type CreateEventInput struct {
	Name           string
	OrganizationID uint64
	Date           time.Time
	DateEnd        time.Time
	Auditorium     string
	Level          models.EventLevel
	CategoryIDs    []uint64
	TypeIDs        []uint64
	CreatorID      uint64
}

// CreateEvent creates an event under an organization. The creator must be
// a member of at least one organization (or staff) and is granted the
// leader organizer row in the same transaction, so every event has an
// owner.
func (s *EventService) CreateEvent(actor *models.User, input CreateEventInput) (*models.Event, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidEventName
	}

	if !actor.IsStaff {
		count, err := s.orgRepo.CountMembershipsByUserID(actor.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check memberships: %w", err)
		}
		if count == 0 {
			return nil, ErrNotOrganizationMember
		}
	}

	if _, err := s.orgRepo.FindByID(input.OrganizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	level := input.Level
	if level == "" {
		level = models.EventLevelUniversity
	}

	categories, err := s.resolveCategories(input.CategoryIDs)
	if err != nil {
		return nil, err
	}
	types, err := s.resolveTypes(input.TypeIDs)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Name:           input.Name,
		OrganizationID: input.OrganizationID,
		Date:           input.Date,
		DateEnd:        input.DateEnd,
		Auditorium:     input.Auditorium,
		Level:          level,
		Status:         models.EventStatusNew,
		Categories:     categories,
		Types:          types,
	}

	organizer := &models.EventOrganizer{
		UserID: input.CreatorID,
		Role:   models.OrganizerRoleLeader,
	}

	if err := s.eventRepo.CreateWithLeader(event, organizer); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// ListEvents returns events with pagination.
func (s *EventService) ListEvents(params utils.PaginationParams) ([]models.Event, int64, error) {
	events, total, err := s.eventRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	return events, total, nil
}

// GetEvent returns an event with organizers and guests preloaded.
func (s *EventService) GetEvent(eventID uint64) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(eventID, "Organization", "Organizers", "Organizers.User", "Guests", "Guests.User", "Categories", "Types")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return event, nil
}

// UpdateEventInput holds updatable event fields. Nil fields are left
// unchanged (partial update semantics); a non-nil id slice replaces the
// corresponding assignments wholesale.
type UpdateEventInput struct {
	Name        *string
	Date        *time.Time
	DateEnd     *time.Time
	Auditorium  *string
	Level       *models.EventLevel
	Status      *models.EventStatus
	CategoryIDs *[]uint64
	TypeIDs     *[]uint64
}

// UpdateEvent updates an event. The actor must resolve as a leader of the
// event (event leader, org leader/admin, or staff).
func (s *EventService) UpdateEvent(actor *models.User, eventID uint64, input UpdateEventInput) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	allowed, err := s.resolver.IsLeaderOrAdmin(actor, authz.ForEvent(event))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve permissions: %w", err)
	}
	if !allowed {
		return nil, ErrNotEventLeader
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidEventName
		}
		event.Name = *input.Name
	}
	if input.Date != nil {
		event.Date = *input.Date
	}
	if input.DateEnd != nil {
		event.DateEnd = *input.DateEnd
	}
	if input.Auditorium != nil {
		event.Auditorium = *input.Auditorium
	}
	if input.Level != nil {
		event.Level = *input.Level
	}
	if input.Status != nil {
		event.Status = *input.Status
	}

	if err := s.eventRepo.Update(event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	if input.CategoryIDs != nil {
		categories, err := s.resolveCategories(*input.CategoryIDs)
		if err != nil {
			return nil, err
		}
		if err := s.eventRepo.ReplaceCategories(event, categories); err != nil {
			return nil, fmt.Errorf("failed to replace categories: %w", err)
		}
	}
	if input.TypeIDs != nil {
		types, err := s.resolveTypes(*input.TypeIDs)
		if err != nil {
			return nil, err
		}
		if err := s.eventRepo.ReplaceTypes(event, types); err != nil {
			return nil, fmt.Errorf("failed to replace types: %w", err)
		}
	}

	return event, nil
}

// DeleteEvent removes an event with its participation rows. Reserved for
// staff; the route enforces it.
func (s *EventService) DeleteEvent(eventID uint64) error {
	if _, err := s.eventRepo.FindByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to find event: %w", err)
	}

	if err := s.eventRepo.Delete(eventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}

// AddOrganizerInput holds parameters for adding an event organizer.
type AddOrganizerInput struct {
	EventID uint64
	UserID  uint64
	Role    models.OrganizerRole
	Grant   uint16
}

// AddOrganizer adds an organizer row. Permitted only when the actor
// resolves as a leader of the event (an organizer row with role leader,
// a leader/admin membership in the owning organization, or staff).
func (s *EventService) AddOrganizer(actor *models.User, input AddOrganizerInput) (*models.EventOrganizer, error) {
	event, err := s.eventRepo.FindByID(input.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	allowed, err := s.resolver.IsLeaderOrAdmin(actor, authz.ForEvent(event))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve permissions: %w", err)
	}
	if !allowed {
		return nil, ErrNotEventLeader
	}

	role := input.Role
	if role == "" {
		role = models.OrganizerRoleVolunteer
	}

	organizer := &models.EventOrganizer{
		EventID: input.EventID,
		UserID:  input.UserID,
		Role:    role,
		Grant:   input.Grant,
	}

	if err := s.eventRepo.AddOrganizer(organizer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyOrganizer
		}
		return nil, fmt.Errorf("failed to add organizer: %w", err)
	}

	return organizer, nil
}

// UpdateOrganizerInput holds updatable organizer fields.
type UpdateOrganizerInput struct {
	Role  *models.OrganizerRole
	Grant *uint16
}

// UpdateOrganizer updates an organizer row under the same leadership gate
// as AddOrganizer.
func (s *EventService) UpdateOrganizer(actor *models.User, organizerID uint64, input UpdateOrganizerInput) (*models.EventOrganizer, error) {
	organizer, err := s.findOrganizer(organizerID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.resolver.IsLeaderOrAdmin(actor, authz.ForEventOrganizer(organizer))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve permissions: %w", err)
	}
	if !allowed {
		return nil, ErrNotEventLeader
	}

	if input.Role != nil {
		organizer.Role = *input.Role
	}
	if input.Grant != nil {
		organizer.Grant = *input.Grant
	}

	if err := s.eventRepo.UpdateOrganizer(organizer); err != nil {
		return nil, fmt.Errorf("failed to update organizer: %w", err)
	}

	return organizer, nil
}

// RemoveOrganizer deletes an organizer row under the same leadership gate
// as AddOrganizer.
func (s *EventService) RemoveOrganizer(actor *models.User, organizerID uint64) error {
	organizer, err := s.findOrganizer(organizerID)
	if err != nil {
		return err
	}

	allowed, err := s.resolver.IsLeaderOrAdmin(actor, authz.ForEventOrganizer(organizer))
	if err != nil {
		return fmt.Errorf("failed to resolve permissions: %w", err)
	}
	if !allowed {
		return ErrNotEventLeader
	}

	if err := s.eventRepo.RemoveOrganizer(organizerID); err != nil {
		return fmt.Errorf("failed to remove organizer: %w", err)
	}

	return nil
}

// ListOrganizers lists all organizers of an event.
func (s *EventService) ListOrganizers(eventID uint64) ([]models.EventOrganizer, error) {
	if _, err := s.eventRepo.FindByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	organizers, err := s.eventRepo.ListOrganizers(eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizers: %w", err)
	}
	return organizers, nil
}

// RegisterGuest self-registers the actor for an event. No approval step.
func (s *EventService) RegisterGuest(actor *models.User, eventID uint64) (*models.EventGuest, error) {
	if _, err := s.eventRepo.FindByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	guest := &models.EventGuest{
		EventID: eventID,
		UserID:  actor.ID,
	}

	if err := s.eventRepo.AddGuest(guest); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyGuest
		}
		return nil, fmt.Errorf("failed to register guest: %w", err)
	}

	return guest, nil
}

// RemoveGuest deletes a guest row. Permitted for the guest themself or
// staff.
func (s *EventService) RemoveGuest(actor *models.User, guestID uint64) error {
	guest, err := s.eventRepo.FindGuestByID(guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGuestNotFound
		}
		return fmt.Errorf("failed to find guest: %w", err)
	}

	if guest.UserID != actor.ID && !actor.IsStaff {
		return ErrNotGuestOwner
	}

	if err := s.eventRepo.RemoveGuest(guestID); err != nil {
		return fmt.Errorf("failed to remove guest: %w", err)
	}

	return nil
}

// ListGuests lists guest rows for an event. Non-staff callers only see
// their own registration.
func (s *EventService) ListGuests(actor *models.User, eventID uint64) ([]models.EventGuest, error) {
	if _, err := s.eventRepo.FindByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	var userID *uint64
	if !actor.IsStaff {
		userID = &actor.ID
	}

	guests, err := s.eventRepo.ListGuests(eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	return guests, nil
}

// ListRegistrationsForUser lists the actor's own guest rows across events.
func (s *EventService) ListRegistrationsForUser(actor *models.User) ([]models.EventGuest, error) {
	guests, err := s.eventRepo.ListGuestsByUserID(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return guests, nil
}

func (s *EventService) resolveCategories(ids []uint64) ([]models.EventCategory, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	categories, err := s.taxonomyRepo.FindCategoriesByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	if len(categories) != len(ids) {
		return nil, ErrEventCategoryNotFound
	}
	return categories, nil
}

func (s *EventService) resolveTypes(ids []uint64) ([]models.EventType, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	types, err := s.taxonomyRepo.FindTypesByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to find types: %w", err)
	}
	if len(types) != len(ids) {
		return nil, ErrEventTypeNotFound
	}
	return types, nil
}

func (s *EventService) findOrganizer(id uint64) (*models.EventOrganizer, error) {
	organizer, err := s.eventRepo.FindOrganizerByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizerNotFound
		}
		return nil, fmt.Errorf("failed to find organizer: %w", err)
	}
	return organizer, nil
}
