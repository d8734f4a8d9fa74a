package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/solo-platform/community-api/internal/models"
	"github.com/solo-platform/community-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEventCategoryNotFound = errors.New("event category not found")
	ErrEventTypeNotFound     = errors.New("event type not found")
	ErrInvalidTaxonomyName   = errors.New("name cannot be empty")
	ErrDuplicateTaxonomyName = errors.New("name is already in use")
)

// TaxonomyService maintains the event category and event type catalogs.
// Reads are public; writes are reserved for staff (the routes enforce
// it).
type TaxonomyService struct {
	taxonomyRepo repository.TaxonomyRepository
}

// NewTaxonomyService creates a new TaxonomyService.
func NewTaxonomyService(taxonomyRepo repository.TaxonomyRepository) *TaxonomyService {
	return &TaxonomyService{
		taxonomyRepo: taxonomyRepo,
	}
}

// CreateCategory adds a category to the catalog.
func (s *TaxonomyService) CreateCategory(name string) (*models.EventCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidTaxonomyName
	}

	category := &models.EventCategory{Name: name}
	if err := s.taxonomyRepo.CreateCategory(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTaxonomyName
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// ListCategories lists the category catalog.
func (s *TaxonomyService) ListCategories() ([]models.EventCategory, error) {
	categories, err := s.taxonomyRepo.ListCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetCategory returns a single category.
func (s *TaxonomyService) GetCategory(id uint64) (*models.EventCategory, error) {
	category, err := s.taxonomyRepo.FindCategoryByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}

// UpdateCategory renames a category.
func (s *TaxonomyService) UpdateCategory(id uint64, name string) (*models.EventCategory, error) {
	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidTaxonomyName
	}

	category.Name = name
	if err := s.taxonomyRepo.UpdateCategory(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTaxonomyName
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category and detaches it from events.
func (s *TaxonomyService) DeleteCategory(id uint64) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}
	if err := s.taxonomyRepo.DeleteCategory(id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// CreateType adds a type to the catalog.
func (s *TaxonomyService) CreateType(name string) (*models.EventType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidTaxonomyName
	}

	eventType := &models.EventType{Name: name}
	if err := s.taxonomyRepo.CreateType(eventType); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTaxonomyName
		}
		return nil, fmt.Errorf("failed to create type: %w", err)
	}
	return eventType, nil
}

// ListTypes lists the type catalog.
func (s *TaxonomyService) ListTypes() ([]models.EventType, error) {
	types, err := s.taxonomyRepo.ListTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to list types: %w", err)
	}
	return types, nil
}

// GetType returns a single type.
func (s *TaxonomyService) GetType(id uint64) (*models.EventType, error) {
	eventType, err := s.taxonomyRepo.FindTypeByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventTypeNotFound
		}
		return nil, fmt.Errorf("failed to find type: %w", err)
	}
	return eventType, nil
}

// UpdateType renames a type.
func (s *TaxonomyService) UpdateType(id uint64, name string) (*models.EventType, error) {
	eventType, err := s.GetType(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidTaxonomyName
	}

	eventType.Name = name
	if err := s.taxonomyRepo.UpdateType(eventType); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTaxonomyName
		}
		return nil, fmt.Errorf("failed to update type: %w", err)
	}
	return eventType, nil
}

// DeleteType removes a type and detaches it from events.
func (s *TaxonomyService) DeleteType(id uint64) error {
	if _, err := s.GetType(id); err != nil {
		return err
	}
	if err := s.taxonomyRepo.DeleteType(id); err != nil {
		return fmt.Errorf("failed to delete type: %w", err)
	}
	return nil
}
