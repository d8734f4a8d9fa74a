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
	// ErrCreateOrganization is returned when creating the organization fails inside the creation transaction.
	ErrCreateOrganization = errors.New("organization repository: create organization failed")
	// ErrCreateMembership is returned when creating the leader membership fails inside the creation transaction.
	ErrCreateMembership = errors.New("organization repository: create membership failed")
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// CreateWithLeader creates an organization and the creator's leader
// membership atomically.
func (r *GormOrganizationRepository) CreateWithLeader(org *models.Organization, member *models.Membership) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateOrganization, err)
		}

		member.OrganizationID = org.ID

		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateMembership, err)
		}

		return nil
	})
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(id uint64) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// List retrieves organizations with pagination
func (r *GormOrganizationRepository) List(params utils.PaginationParams) ([]models.Organization, int64, error) {
	var orgs []models.Organization
	var total int64

	if err := r.db.Model(&models.Organization{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Scopes(database.Paginate(params)).Find(&orgs).Error; err != nil {
		return nil, 0, err
	}

	return orgs, total, nil
}

// Update updates an organization
func (r *GormOrganizationRepository) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

// Delete deletes an organization and all related data in a transaction
func (r *GormOrganizationRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Delete participation rows of the organization's events first
		var eventIDs []uint64
		if err := tx.Model(&models.Event{}).Where("organization_id = ?", id).
			Pluck("id", &eventIDs).Error; err != nil {
			return err
		}

		if len(eventIDs) > 0 {
			if err := tx.Where("event_id IN ?", eventIDs).Delete(&models.EventOrganizer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("event_id IN ?", eventIDs).Delete(&models.EventGuest{}).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM event_category_assignments WHERE event_id IN ?", eventIDs).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM event_type_assignments WHERE event_id IN ?", eventIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("organization_id = ?", id).Delete(&models.Event{}).Error; err != nil {
				return err
			}
		}

		// Delete all memberships
		if err := tx.Where("organization_id = ?", id).Delete(&models.Membership{}).Error; err != nil {
			return err
		}

		// Delete organization
		if err := tx.Delete(&models.Organization{}, id).Error; err != nil {
			return err
		}

		return nil
	})
}

// AddMember adds a membership row
func (r *GormOrganizationRepository) AddMember(member *models.Membership) error {
	return r.db.Create(member).Error
}

// UpdateMember updates a membership row
func (r *GormOrganizationRepository) UpdateMember(member *models.Membership) error {
	return r.db.Save(member).Error
}

// RemoveMember removes a membership row by ID
func (r *GormOrganizationRepository) RemoveMember(id uint64) error {
	return r.db.Delete(&models.Membership{}, id).Error
}

// FindMembership finds a membership row by ID
func (r *GormOrganizationRepository) FindMembership(id uint64) (*models.Membership, error) {
	var member models.Membership
	if err := r.db.First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindMember finds the membership of a user in an organization
func (r *GormOrganizationRepository) FindMember(organizationID, userID uint64) (*models.Membership, error) {
	var member models.Membership
	if err := r.db.Where("organization_id = ? AND user_id = ?", organizationID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembersByUserID lists all memberships of a user
func (r *GormOrganizationRepository) ListMembersByUserID(userID uint64) ([]models.Membership, error) {
	var memberships []models.Membership
	if err := r.db.Preload("Organization").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListMembers lists all members of an organization
func (r *GormOrganizationRepository) ListMembers(organizationID uint64) ([]models.Membership, error) {
	var members []models.Membership
	if err := r.db.Preload("User").
		Where("organization_id = ?", organizationID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// CountMembershipsByUserID counts memberships held by a user
func (r *GormOrganizationRepository) CountMembershipsByUserID(userID uint64) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Membership{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
