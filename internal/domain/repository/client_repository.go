// Package repository defines persistence interfaces implemented by the
// adapter layer.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Nicksok2413/Kronon/internal/domain/dto"
	"github.com/Nicksok2413/Kronon/internal/domain/model"
)

// ClientRepository persists clients. Read methods exclude soft-deleted rows
// unless the filter explicitly opts in; GetByID returns (nil, nil) for
// missing or soft-deleted rows.
type ClientRepository interface {
	List(ctx context.Context, filter dto.ClientFilter) ([]model.Client, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	// GetByUNP looks the identifier up among live rows only, so a
	// soft-deleted client does not block identifier reuse.
	GetByUNP(ctx context.Context, unp string) (*model.Client, error)
	Create(ctx context.Context, client *model.Client) error
	Update(ctx context.Context, client *model.Client) error
	SoftDelete(ctx context.Context, client *model.Client) error

	// Administrative escape hatches; neither produces an audit event.
	GetAnyByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	Restore(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
}
