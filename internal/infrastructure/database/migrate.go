package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Nicksok2413/Kronon/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := db.AutoMigrate(
		&model.Department{},
		&model.User{},
		&model.Profile{},
		&model.Client{},
		&model.AuditEvent{},
	); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return fmt.Errorf("failed to create custom indexes: %w", err)
	}

	logger.Info("Database migrations completed")
	return nil
}

// createCustomIndexes adds constraints AutoMigrate cannot express.
func createCustomIndexes(db *gorm.DB) error {
	indexes := []string{
		// UNP is unique among live clients only; a soft-deleted holder
		// does not block reuse.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_clients_unp_live
		   ON clients (unp) WHERE deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_live
		   ON users (email) WHERE deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_departments_name_live
		   ON departments (name) WHERE deleted_at IS NULL`,
		// History reads are per entity, newest first.
		`CREATE INDEX IF NOT EXISTS idx_audit_events_entity
		   ON audit_events (entity_type, entity_id, id DESC)`,
		// departments and users reference each other, so the head FK is
		// created here once both tables exist.
		`ALTER TABLE departments DROP CONSTRAINT IF EXISTS fk_departments_head`,
		`ALTER TABLE departments ADD CONSTRAINT fk_departments_head
		   FOREIGN KEY (head_id) REFERENCES users (id) ON DELETE SET NULL`,
	}
	for _, idx := range indexes {
		if err := db.Exec(idx).Error; err != nil {
			return err
		}
	}
	return nil
}
