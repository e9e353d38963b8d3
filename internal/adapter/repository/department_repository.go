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

type departmentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *gorm.DB, logger *zap.Logger) repository.DepartmentRepository {
	return &departmentRepository{db: db, logger: logger}
}

// List returns one page of departments plus the total match count.
func (r *departmentRepository) List(ctx context.Context, filter dto.DepartmentFilter) ([]model.Department, int64, error) {
	filter.PaginationParams.Validate()

	tx := r.db.WithContext(ctx).Model(&model.Department{})
	if filter.Search != "" {
		tx = tx.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		r.logger.Error("Failed to count departments", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count departments: %w", err)
	}

	var departments []model.Department
	err := tx.Preload("Parent").Preload("Head").
		Order("name, id").
		Limit(filter.PageSize).
		Offset(filter.Offset()).
		Find(&departments).Error
	if err != nil {
		r.logger.Error("Failed to list departments", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list departments: %w", err)
	}

	return departments, total, nil
}

// GetByID retrieves a live department with parent and head; (nil, nil)
// when absent or soft-deleted.
func (r *departmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	var department model.Department
	err := r.db.WithContext(ctx).
		Preload("Parent").Preload("Head").
		First(&department, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get department", zap.String("department_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return &department, nil
}

// Create inserts a new department.
func (r *departmentRepository) Create(ctx context.Context, department *model.Department) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(department).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.New(apperrors.CodeIntegrity, "department with this name already exists")
		}
		r.logger.Error("Failed to create department", zap.String("name", department.Name), zap.Error(err))
		return fmt.Errorf("failed to create department: %w", err)
	}
	return nil
}

// Update saves the full row state.
func (r *departmentRepository) Update(ctx context.Context, department *model.Department) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(department).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.New(apperrors.CodeIntegrity, "department with this name already exists")
		}
		r.logger.Error("Failed to update department", zap.String("department_id", department.ID.String()), zap.Error(err))
		return fmt.Errorf("failed to update department: %w", err)
	}
	return nil
}

// SoftDelete marks the department deleted; recorded as a delete event.
func (r *departmentRepository) SoftDelete(ctx context.Context, department *model.Department) error {
	err := r.db.WithContext(ctx).Delete(department).Error
	if err != nil {
		r.logger.Error("Failed to delete department", zap.String("department_id", department.ID.String()), zap.Error(err))
		return fmt.Errorf("failed to delete department: %w", err)
	}
	return nil
}
