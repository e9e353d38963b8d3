package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/Nicksok2413/Kronon/internal/domain/dto"
	domainRepo "github.com/Nicksok2413/Kronon/internal/domain/repository"
)

// AuditUsecase exposes the append-only change log to the admin surface.
// Read-only: events are written by the capture plugin, never here.
type AuditUsecase struct {
	auditRepo domainRepo.AuditEventRepository
	logger    *zap.Logger
}

// NewAuditUsecase creates a new audit usecase
func NewAuditUsecase(auditRepo domainRepo.AuditEventRepository, logger *zap.Logger) *AuditUsecase {
	return &AuditUsecase{auditRepo: auditRepo, logger: logger}
}

// List returns one page of audit events across all tracked entities.
func (u *AuditUsecase) List(ctx context.Context, filter dto.AuditFilter) (*dto.ListResponse[dto.HistoryItem], error) {
	filter.PaginationParams.Validate()
	events, total, err := u.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.HistoryItem]{
		Items:    dto.NewHistoryItemList(events),
		Count:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
