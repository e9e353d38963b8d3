package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Nicksok2413/Kronon/internal/domain/dto"
	"github.com/Nicksok2413/Kronon/internal/domain/model"
)

// AuditEventRepository reads the append-only event log. It is deliberately
// read-only: events are written exclusively by the capture plugin inside
// mutating transactions, and nothing updates or deletes them.
type AuditEventRepository interface {
	// ListForEntity returns the entity's trail, newest first.
	ListForEntity(ctx context.Context, entityType string, entityID uuid.UUID, query dto.HistoryQuery) ([]model.AuditEvent, int64, error)
	// List returns events across all tracked entities, newest first.
	List(ctx context.Context, filter dto.AuditFilter) ([]model.AuditEvent, int64, error)
}
