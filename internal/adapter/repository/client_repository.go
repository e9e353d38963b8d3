package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Nicksok2413/Kronon/internal/domain/apperrors"
	"github.com/Nicksok2413/Kronon/internal/domain/dto"
	"github.com/Nicksok2413/Kronon/internal/domain/model"
	"github.com/Nicksok2413/Kronon/internal/domain/repository"
)

// clientPreloads are the relations needed by the canonical read shape;
// preloading them keeps list rendering at a fixed number of queries.
var clientPreloads = []string{
	"Department",
	"Accountant",
	"PrimaryAccountant",
	"PayrollAccountant",
	"HRSpecialist",
}

type clientRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB, logger *zap.Logger) repository.ClientRepository {
	return &clientRepository{db: db, logger: logger}
}

func (r *clientRepository) withPreloads(tx *gorm.DB) *gorm.DB {
	for _, preload := range clientPreloads {
		tx = tx.Preload(preload)
	}
	return tx
}

// applyFilter composes the list predicate. Soft-deleted rows are excluded
// by default; the admin listing opts in through filter.Deleted.
func (r *clientRepository) applyFilter(tx *gorm.DB, filter dto.ClientFilter) *gorm.DB {
	switch filter.Deleted {
	case "all":
		tx = tx.Unscoped()
	case "only":
		tx = tx.Unscoped().Where("deleted_at IS NOT NULL")
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		tx = tx.Where("name ILIKE ? OR full_legal_name ILIKE ? OR unp ILIKE ?", pattern, pattern, pattern)
	}
	if filter.Status != nil {
		tx = tx.Where("status = ?", *filter.Status)
	}
	if filter.OrgType != nil {
		tx = tx.Where("org_type = ?", *filter.OrgType)
	}
	if filter.TaxSystem != nil {
		tx = tx.Where("tax_system = ?", *filter.TaxSystem)
	}
	if filter.DepartmentID != nil {
		tx = tx.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.AccountantID != nil {
		tx = tx.Where("accountant_id = ?", *filter.AccountantID)
	}
	if filter.PrimaryAccountantID != nil {
		tx = tx.Where("primary_accountant_id = ?", *filter.PrimaryAccountantID)
	}
	if filter.PayrollAccountantID != nil {
		tx = tx.Where("payroll_accountant_id = ?", *filter.PayrollAccountantID)
	}
	if filter.HRSpecialistID != nil {
		tx = tx.Where("hr_specialist_id = ?", *filter.HRSpecialistID)
	}
	return tx
}

// List returns one page of clients plus the total match count.
func (r *clientRepository) List(ctx context.Context, filter dto.ClientFilter) ([]model.Client, int64, error) {
	filter.PaginationParams.Validate()

	var total int64
	countQuery := r.applyFilter(r.db.WithContext(ctx).Model(&model.Client{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		r.logger.Error("Failed to count clients", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	var clients []model.Client
	query := r.applyFilter(r.db.WithContext(ctx).Model(&model.Client{}), filter)
	err := r.withPreloads(query).
		Order("id DESC").
		Limit(filter.PageSize).
		Offset(filter.Offset()).
		Find(&clients).Error
	if err != nil {
		r.logger.Error("Failed to list clients", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}

	return clients, total, nil
}

// GetByID retrieves a live client with relations; (nil, nil) when absent or
// soft-deleted.
func (r *clientRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var client model.Client
	err := r.withPreloads(r.db.WithContext(ctx)).First(&client, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get client", zap.String("client_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &client, nil
}

// GetByUNP looks up a live client by tax identifier.
func (r *clientRepository) GetByUNP(ctx context.Context, unp string) (*model.Client, error) {
	var client model.Client
	err := r.db.WithContext(ctx).First(&client, "unp = ?", unp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get client by UNP", zap.String("unp", unp), zap.Error(err))
		return nil, fmt.Errorf("failed to get client by UNP: %w", err)
	}
	return &client, nil
}

// Create inserts a new client; the capture plugin appends the insert event
// in the same transaction.
func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.DuplicateUNP()
		}
		r.logger.Error("Failed to create client", zap.String("unp", client.UNP), zap.Error(err))
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// Update saves the full row state; the capture plugin records the update
// event with a diff against the prior snapshot.
func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.DuplicateUNP()
		}
		r.logger.Error("Failed to update client", zap.String("client_id", client.ID.String()), zap.Error(err))
		return fmt.Errorf("failed to update client: %w", err)
	}
	return nil
}

// SoftDelete marks the row deleted; recorded as a delete event.
func (r *clientRepository) SoftDelete(ctx context.Context, client *model.Client) error {
	err := r.db.WithContext(ctx).Delete(client).Error
	if err != nil {
		r.logger.Error("Failed to delete client", zap.String("client_id", client.ID.String()), zap.Error(err))
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

// GetAnyByID retrieves a client regardless of soft deletion.
func (r *clientRepository) GetAnyByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var client model.Client
	err := r.withPreloads(r.db.WithContext(ctx).Unscoped()).First(&client, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get client unscoped", zap.String("client_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &client, nil
}

// Restore clears the deletion timestamp. Administrative action, not audited.
func (r *clientRepository) Restore(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Unscoped().
		Model(&model.Client{}).
		Where("id = ?", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			// A live client took over the UNP while this one sat deleted.
			return apperrors.DuplicateUNP()
		}
		r.logger.Error("Failed to restore client", zap.String("client_id", id.String()), zap.Error(result.Error))
		return fmt.Errorf("failed to restore client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("client")
	}
	return nil
}

// HardDelete physically removes the row. The escape hatch: prior history
// stays in audit_events (no FK), and no terminal event is written.
func (r *clientRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Unscoped().Where("id = ?", id).Delete(&model.Client{})
	if result.Error != nil {
		r.logger.Error("Failed to hard-delete client", zap.String("client_id", id.String()), zap.Error(result.Error))
		return fmt.Errorf("failed to hard-delete client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("client")
	}
	return nil
}
