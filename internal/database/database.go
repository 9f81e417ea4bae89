package database

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrNotFound is returned when a lookup matched no record. Callers treat it
// as a distinct outcome, not a store failure.
var ErrNotFound = errors.New("record not found")

// Store holds the two relational handles this system reads from: the
// admin-owned CRM database and the syndicated MLS mirror.
type Store struct {
	CRM    *gorm.DB
	MLS    *gorm.DB
	logger *logrus.Logger
}

// Options describes one store connection.
type Options struct {
	Driver string // "sqlite" or "mysql"
	DSN    string
}

// NewStore opens both store connections. Connection pooling is left to the
// drivers; every request works against these shared read handles.
func NewStore(crm, mls Options, logger *logrus.Logger) (*Store, error) {
	crmDB, err := open(crm)
	if err != nil {
		return nil, fmt.Errorf("opening CRM store: %w", err)
	}

	mlsDB, err := open(mls)
	if err != nil {
		return nil, fmt.Errorf("opening MLS mirror: %w", err)
	}

	return &Store{CRM: crmDB, MLS: mlsDB, logger: logger}, nil
}

func open(opts Options) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	switch opts.Driver {
	case "mysql":
		return gorm.Open(mysql.Open(opts.DSN), cfg)
	case "sqlite", "":
		return gorm.Open(sqlite.Open(opts.DSN), cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", opts.Driver)
	}
}

// Close releases both underlying connections.
func (s *Store) Close() error {
	for _, handle := range []*gorm.DB{s.CRM, s.MLS} {
		if handle == nil {
			continue
		}
		sqlDB, err := handle.DB()
		if err != nil {
			return fmt.Errorf("retrieving underlying connection: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("closing connection: %w", err)
		}
	}
	return nil
}
