package database

import (
	"fmt"

	"northshore/server/internal/models"
)

// RunMigrations creates the CRM tables. The MLS mirror schema is owned by
// the external sync process in production; migrating it here is a no-op
// there and a convenience for local sqlite databases and tests.
func (s *Store) RunMigrations() error {
	if err := s.CRM.AutoMigrate(
		&models.CrmProperty{},
		&models.PropertyImage{},
		&models.PropertyFeature{},
		&models.PropertyTag{},
	); err != nil {
		return fmt.Errorf("migrating CRM tables: %w", err)
	}

	if err := s.MLS.AutoMigrate(
		&models.MlsListing{},
		&models.MlsMedia{},
	); err != nil {
		return fmt.Errorf("migrating MLS mirror tables: %w", err)
	}

	return nil
}
