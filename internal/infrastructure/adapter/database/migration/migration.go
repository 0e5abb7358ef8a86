package migration

import (
	"gorm.io/gorm"

	coreport "github.com/rakapradana/member-gateway/internal/domain/port/core"
	"github.com/rakapradana/member-gateway/internal/infrastructure/adapter/model"
)

// Migrator manages database schema migrations
type Migrator struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(db *gorm.DB, logger coreport.Logger) *Migrator {
	return &Migrator{
		db:     db,
		logger: logger,
	}
}

// MigrateAll brings the schema up to date
func (m *Migrator) MigrateAll() error {
	m.logger.Info("Starting database migrations", nil)

	if err := m.db.AutoMigrate(
		&model.User{},
		&model.Member{},
	); err != nil {
		m.logger.Error("Failed to auto-migrate models", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if err := m.createIndexes(); err != nil {
		m.logger.Error("Failed to create indexes", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	m.logger.Info("Database migrations completed successfully", nil)
	return nil
}

// createIndexes creates indexes AutoMigrate cannot express
func (m *Migrator) createIndexes() error {
	return m.db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_members_active ON members (id) WHERE is_active = true",
	).Error
}
