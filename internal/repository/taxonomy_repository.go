package repository

import (
	"github.com/solo-platform/community-api/internal/models"
	"gorm.io/gorm"
)

// GormTaxonomyRepository is a GORM implementation of TaxonomyRepository
type GormTaxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository creates a new TaxonomyRepository
func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &GormTaxonomyRepository{db: db}
}

// CreateCategory creates an event category
func (r *GormTaxonomyRepository) CreateCategory(category *models.EventCategory) error {
	return r.db.Create(category).Error
}

// FindCategoryByID finds an event category by ID
func (r *GormTaxonomyRepository) FindCategoryByID(id uint64) (*models.EventCategory, error) {
	var category models.EventCategory
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindCategoriesByIDs finds event categories by a set of IDs
func (r *GormTaxonomyRepository) FindCategoriesByIDs(ids []uint64) ([]models.EventCategory, error) {
	var categories []models.EventCategory
	if err := r.db.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListCategories lists all event categories
func (r *GormTaxonomyRepository) ListCategories() ([]models.EventCategory, error) {
	var categories []models.EventCategory
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// UpdateCategory updates an event category
func (r *GormTaxonomyRepository) UpdateCategory(category *models.EventCategory) error {
	return r.db.Save(category).Error
}

// DeleteCategory deletes an event category and its event assignments
func (r *GormTaxonomyRepository) DeleteCategory(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM event_category_assignments WHERE event_category_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.EventCategory{}, id).Error
	})
}

// CreateType creates an event type
func (r *GormTaxonomyRepository) CreateType(eventType *models.EventType) error {
	return r.db.Create(eventType).Error
}

// FindTypeByID finds an event type by ID
func (r *GormTaxonomyRepository) FindTypeByID(id uint64) (*models.EventType, error) {
	var eventType models.EventType
	if err := r.db.First(&eventType, id).Error; err != nil {
		return nil, err
	}
	return &eventType, nil
}

// FindTypesByIDs finds event types by a set of IDs
func (r *GormTaxonomyRepository) FindTypesByIDs(ids []uint64) ([]models.EventType, error) {
	var types []models.EventType
	if err := r.db.Where("id IN ?", ids).Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// ListTypes lists all event types
func (r *GormTaxonomyRepository) ListTypes() ([]models.EventType, error) {
	var types []models.EventType
	if err := r.db.Order("name ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// UpdateType updates an event type
func (r *GormTaxonomyRepository) UpdateType(eventType *models.EventType) error {
	return r.db.Save(eventType).Error
}

// DeleteType deletes an event type and its event assignments
func (r *GormTaxonomyRepository) DeleteType(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM event_type_assignments WHERE event_type_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.EventType{}, id).Error
	})
}
