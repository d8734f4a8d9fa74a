// Package authz answers whether a user holds elevated (leader/admin)
// privilege over a target object. A membership confers role-based
// privilege from the moment the row exists; the confirmation handshake
// flags are recorded data and are deliberately not consulted here.
package authz

import (
	"errors"

	"github.com/solo-platform/community-api/internal/models"
	"github.com/solo-platform/community-api/internal/repository"
	"gorm.io/gorm"
)

// TargetKind discriminates the shape of a resolution target.
type TargetKind int

const (
	KindUnknown TargetKind = iota
	KindOrganization
	KindMembership
	KindEvent
	KindEventOrganizer
	KindEventGuest
)

// Target is a tagged union over the objects the resolver understands.
// Organization-scoped kinds carry OrganizationID; event-scoped kinds carry
// EventID (and OrganizationID when it is already known, saving a lookup).
type Target struct {
	Kind           TargetKind
	OrganizationID uint64
	EventID        uint64
}

// ForOrganization builds a target for an organization.
func ForOrganization(org *models.Organization) Target {
	return Target{Kind: KindOrganization, OrganizationID: org.ID}
}

// ForMembership builds a target for a membership row. Privilege is derived
// from the referenced organization.
func ForMembership(member *models.Membership) Target {
	return Target{Kind: KindMembership, OrganizationID: member.OrganizationID}
}

// ForEvent builds a target for an event.
func ForEvent(event *models.Event) Target {
	return Target{Kind: KindEvent, EventID: event.ID, OrganizationID: event.OrganizationID}
}

// ForEventOrganizer builds a target for an organizer row. Privilege is
// derived from the referenced event.
func ForEventOrganizer(organizer *models.EventOrganizer) Target {
	return Target{Kind: KindEventOrganizer, EventID: organizer.EventID}
}

// ForEventGuest builds a target for a guest row.
func ForEventGuest(guest *models.EventGuest) Target {
	return Target{Kind: KindEventGuest, EventID: guest.EventID}
}

// Resolver decides leader/admin privilege from membership and organizer
// rows. It performs reads only and never mutates state.
type Resolver struct {
	orgRepo   repository.OrganizationRepository
	eventRepo repository.EventRepository
}

// NewResolver creates a new Resolver.
func NewResolver(orgRepo repository.OrganizationRepository, eventRepo repository.EventRepository) *Resolver {
	return &Resolver{
		orgRepo:   orgRepo,
		eventRepo: eventRepo,
	}
}

// IsLeaderOrAdmin reports whether the user holds elevated privilege over
// the target.
//
// Resolution order: unauthenticated callers resolve to false; staff
// accounts resolve to true before anything else; organization-scoped
// targets check the user's membership role; event-scoped targets check the
// user's organizer row first and fall back to the owning organization's
// membership role only when no organizer row exists at all. An organizer
// row with a non-leader role therefore shadows any organization role for
// that event.
func (r *Resolver) IsLeaderOrAdmin(user *models.User, target Target) (bool, error) {
	if user == nil {
		return false, nil
	}
	if user.IsStaff {
		return true, nil
	}

	switch target.Kind {
	case KindOrganization, KindMembership:
		return r.organizationPrivilege(user.ID, target.OrganizationID)

	case KindEvent, KindEventOrganizer, KindEventGuest:
		organizer, err := r.eventRepo.FindOrganizer(target.EventID, user.ID)
		if err == nil {
			return organizer.Role.IsPrivileged(), nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}

		orgID := target.OrganizationID
		if orgID == 0 {
			event, err := r.eventRepo.FindByID(target.EventID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return false, nil
				}
				return false, err
			}
			orgID = event.OrganizationID
		}
		return r.organizationPrivilege(user.ID, orgID)

	default:
		return false, nil
	}
}

func (r *Resolver) organizationPrivilege(userID, organizationID uint64) (bool, error) {
	member, err := r.orgRepo.FindMember(organizationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return member.Role.IsPrivileged(), nil
}
