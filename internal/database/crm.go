package database

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"northshore/server/internal/models"
)

// CreateProperty inserts a new CRM property with its image, feature and tag
// rows. A missing id is assigned a fresh UUID.
func (s *Store) CreateProperty(property *models.CrmProperty) error {
	if property.ID == "" {
		property.ID = uuid.NewString()
	}

	if err := s.CRM.Create(property).Error; err != nil {
		return fmt.Errorf("creating property: %w", err)
	}
	return nil
}

// UpdateProperty saves changed fields for an existing CRM property.
// Last-writer-wins; there is no conflict detection beyond that.
func (s *Store) UpdateProperty(property *models.CrmProperty) error {
	result := s.CRM.Model(&models.CrmProperty{}).
		Where("id = ?", property.ID).
		Updates(property)
	if result.Error != nil {
		return fmt.Errorf("updating property %s: %w", property.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProperty removes a CRM property and its dependent rows.
func (s *Store) DeleteProperty(id string) error {
	return s.CRM.Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []interface{}{
			&models.PropertyImage{},
			&models.PropertyFeature{},
			&models.PropertyTag{},
		} {
			if err := tx.Where("property_id = ?", id).Delete(dependent).Error; err != nil {
				return fmt.Errorf("deleting dependent rows for %s: %w", id, err)
			}
		}

		result := tx.Delete(&models.CrmProperty{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("deleting property %s: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// GetCrmProperty loads one CRM row with its images ordered primary-first.
func (s *Store) GetCrmProperty(id string) (*models.CrmProperty, error) {
	var property models.CrmProperty
	err := s.CRM.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Features").
		Preload("Tags").
		First(&property, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting property %s: %w", id, err)
	}
	return &property, nil
}

// ListCrmProperties returns CRM rows for the admin panel, newest first.
func (s *Store) ListCrmProperties(includeArchived bool) ([]models.CrmProperty, error) {
	query := s.CRM.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Order("created_at DESC")
	if !includeArchived {
		query = query.Where("archived = ?", false)
	}

	var properties []models.CrmProperty
	if err := query.Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}
	return properties, nil
}

// ListActiveCrmProperties returns all non-archived rows for slug scans.
func (s *Store) ListActiveCrmProperties() ([]models.CrmProperty, error) {
	var properties []models.CrmProperty
	err := s.CRM.Where("archived = ?", false).Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("listing active properties: %w", err)
	}
	return properties, nil
}
