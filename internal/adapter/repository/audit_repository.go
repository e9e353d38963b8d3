package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Nicksok2413/Kronon/internal/domain/dto"
	"github.com/Nicksok2413/Kronon/internal/domain/model"
	"github.com/Nicksok2413/Kronon/internal/domain/repository"
)

type auditEventRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAuditEventRepository creates a new audit event repository. The log is
// append-only; writes happen inside the capture plugin, never here.
func NewAuditEventRepository(db *gorm.DB, logger *zap.Logger) repository.AuditEventRepository {
	return &auditEventRepository{db: db, logger: logger}
}

// ListForEntity returns one entity's history, newest first.
func (r *auditEventRepository) ListForEntity(ctx context.Context, entityType string, entityID uuid.UUID, query dto.HistoryQuery) ([]model.AuditEvent, int64, error) {
	query.PaginationParams.Validate()

	tx := r.db.WithContext(ctx).
		Model(&model.AuditEvent{}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID)
	if query.From != nil {
		tx = tx.Where("created_at >= ?", *query.From)
	}
	if query.To != nil {
		tx = tx.Where("created_at <= ?", *query.To)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		r.logger.Error("Failed to count audit events", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count audit events: %w", err)
	}

	var events []model.AuditEvent
	err := tx.Preload("Actor").
		Order("id DESC").
		Limit(query.PageSize).
		Offset(query.Offset()).
		Find(&events).Error
	if err != nil {
		r.logger.Error("Failed to list audit events",
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID.String()),
			zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list audit events: %w", err)
	}

	return events, total, nil
}

// applyAuditFilter narrows the admin audit query. Actor search is a
// case-insensitive substring match, same as the entity list searches.
func applyAuditFilter(tx *gorm.DB, filter dto.AuditFilter) *gorm.DB {
	if filter.Label != nil {
		tx = tx.Where("label = ?", *filter.Label)
	}
	if filter.AppSource != nil {
		tx = tx.Where("app_source = ?", *filter.AppSource)
	}
	if filter.EntityType != "" {
		tx = tx.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != nil {
		tx = tx.Where("entity_id = ?", *filter.EntityID)
	}
	if filter.ActorEmail != "" {
		tx = tx.Where("actor_email ILIKE ?", "%"+filter.ActorEmail+"%")
	}
	if filter.From != nil {
		tx = tx.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		tx = tx.Where("created_at <= ?", *filter.To)
	}
	return tx
}

// List returns audit events across all entities, filtered for the admin
// surface.
func (r *auditEventRepository) List(ctx context.Context, filter dto.AuditFilter) ([]model.AuditEvent, int64, error) {
	filter.PaginationParams.Validate()

	tx := applyAuditFilter(r.db.WithContext(ctx).Model(&model.AuditEvent{}), filter)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		r.logger.Error("Failed to count audit events", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count audit events: %w", err)
	}

	var events []model.AuditEvent
	err := tx.Preload("Actor").
		Order("id DESC").
		Limit(filter.PageSize).
		Offset(filter.Offset()).
		Find(&events).Error
	if err != nil {
		r.logger.Error("Failed to list audit events", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list audit events: %w", err)
	}

	return events, total, nil
}
