package repository

import (
	"github.com/solo-platform/community-api/internal/models"
	"github.com/solo-platform/community-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// OrganizationRepository defines the interface for organization and
// membership data access
type OrganizationRepository interface {
	// CreateWithLeader creates an organization and the creator's leader
	// membership within a single transaction
	CreateWithLeader(org *models.Organization, member *models.Membership) error

	// FindByID finds an organization by ID
	FindByID(id uint64) (*models.Organization, error)

	// List retrieves organizations with pagination
	List(params utils.PaginationParams) ([]models.Organization, int64, error)

	// Update updates an organization
	Update(org *models.Organization) error

	// Delete deletes an organization and all related data
	Delete(id uint64) error

	// AddMember adds a membership row
	AddMember(member *models.Membership) error

	// UpdateMember updates a membership row
	UpdateMember(member *models.Membership) error

	// RemoveMember removes a membership row by ID
	RemoveMember(id uint64) error

	// FindMembership finds a membership row by ID
	FindMembership(id uint64) (*models.Membership, error)

	// FindMember finds the membership of a user in an organization
	FindMember(organizationID, userID uint64) (*models.Membership, error)

	// ListMembersByUserID lists all memberships of a user
	ListMembersByUserID(userID uint64) ([]models.Membership, error)

	// ListMembers lists all members of an organization
	ListMembers(organizationID uint64) ([]models.Membership, error)

	// CountMembershipsByUserID counts memberships held by a user
	CountMembershipsByUserID(userID uint64) (int64, error)
}

// EventRepository defines the interface for event and participation data
// access
type EventRepository interface {
	// CreateWithLeader creates an event and the creator's leader organizer
	// row within a single transaction
	CreateWithLeader(event *models.Event, organizer *models.EventOrganizer) error

	// FindByID finds an event by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Event, error)

	// List retrieves events with pagination
	List(params utils.PaginationParams) ([]models.Event, int64, error)

	// Update updates an event
	Update(event *models.Event) error

	// Delete deletes an event and all related data
	Delete(id uint64) error

	// AddOrganizer adds an organizer row
	AddOrganizer(organizer *models.EventOrganizer) error

	// UpdateOrganizer updates an organizer row
	UpdateOrganizer(organizer *models.EventOrganizer) error

	// RemoveOrganizer removes an organizer row by ID
	RemoveOrganizer(id uint64) error

	// FindOrganizerByID finds an organizer row by ID
	FindOrganizerByID(id uint64) (*models.EventOrganizer, error)

	// FindOrganizer finds the organizer row of a user for an event
	FindOrganizer(eventID, userID uint64) (*models.EventOrganizer, error)

	// ListOrganizers lists all organizers of an event
	ListOrganizers(eventID uint64) ([]models.EventOrganizer, error)

	// AddGuest adds a guest row
	AddGuest(guest *models.EventGuest) error

	// RemoveGuest removes a guest row by ID
	RemoveGuest(id uint64) error

	// FindGuestByID finds a guest row by ID
	FindGuestByID(id uint64) (*models.EventGuest, error)

	// ListGuests lists guest rows, optionally restricted to one user
	ListGuests(eventID uint64, userID *uint64) ([]models.EventGuest, error)

	// ListGuestsByUserID lists all guest rows of a user
	ListGuestsByUserID(userID uint64) ([]models.EventGuest, error)

	// ReplaceCategories replaces the event's category assignments
	ReplaceCategories(event *models.Event, categories []models.EventCategory) error

	// ReplaceTypes replaces the event's type assignments
	ReplaceTypes(event *models.Event, types []models.EventType) error
}

// TaxonomyRepository defines the interface for the event category and
// event type lookup catalogs
type TaxonomyRepository interface {
	// CreateCategory creates an event category
	CreateCategory(category *models.EventCategory) error

	// FindCategoryByID finds an event category by ID
	FindCategoryByID(id uint64) (*models.EventCategory, error)

	// FindCategoriesByIDs finds event categories by a set of IDs
	FindCategoriesByIDs(ids []uint64) ([]models.EventCategory, error)

	// ListCategories lists all event categories
	ListCategories() ([]models.EventCategory, error)

	// UpdateCategory updates an event category
	UpdateCategory(category *models.EventCategory) error

	// DeleteCategory deletes an event category and its event assignments
	DeleteCategory(id uint64) error

	// CreateType creates an event type
	CreateType(eventType *models.EventType) error

	// FindTypeByID finds an event type by ID
	FindTypeByID(id uint64) (*models.EventType, error)

	// FindTypesByIDs finds event types by a set of IDs
	FindTypesByIDs(ids []uint64) ([]models.EventType, error)

	// ListTypes lists all event types
	ListTypes() ([]models.EventType, error)

	// UpdateType updates an event type
	UpdateType(eventType *models.EventType) error

	// DeleteType deletes an event type and its event assignments
	DeleteType(id uint64) error
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// Create creates a notification
	Create(notification *models.Notification) error

	// FindByID finds a notification by ID
	FindByID(id uint64) (*models.Notification, error)

	// ListByUserID lists notifications for one user
	ListByUserID(userID uint64) ([]models.Notification, error)

	// ListAll lists all notifications
	ListAll() ([]models.Notification, error)

	// Update updates a notification
	Update(notification *models.Notification) error

	// Delete deletes a notification
	Delete(id uint64) error
}
