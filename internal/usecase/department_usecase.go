package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Nicksok2413/Kronon/internal/domain/apperrors"
	"github.com/Nicksok2413/Kronon/internal/domain/dto"
	"github.com/Nicksok2413/Kronon/internal/domain/model"
	domainRepo "github.com/Nicksok2413/Kronon/internal/domain/repository"
)

// DepartmentUsecase manages organizational units.
type DepartmentUsecase struct {
	departmentRepo domainRepo.DepartmentRepository
	logger         *zap.Logger
}

// NewDepartmentUsecase creates a new department usecase
func NewDepartmentUsecase(departmentRepo domainRepo.DepartmentRepository, logger *zap.Logger) *DepartmentUsecase {
	return &DepartmentUsecase{departmentRepo: departmentRepo, logger: logger}
}

// List returns one page of departments matching the filter.
func (u *DepartmentUsecase) List(ctx context.Context, filter dto.DepartmentFilter) (*dto.ListResponse[dto.DepartmentOut], error) {
	filter.PaginationParams.Validate()
	departments, total, err := u.departmentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.DepartmentOut]{
		Items:    dto.NewDepartmentOutList(departments),
		Count:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Get returns one live department with parent and head.
func (u *DepartmentUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.DepartmentOut, error) {
	department, err := u.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, apperrors.NotFound("department")
	}
	out := dto.NewDepartmentOut(department)
	return &out, nil
}

// Create registers a department. Name is unique among live departments.
func (u *DepartmentUsecase) Create(ctx context.Context, in dto.DepartmentCreate) (*dto.DepartmentOut, error) {
	department := &model.Department{
		Name:     in.Name,
		ParentID: in.ParentID,
		HeadID:   in.HeadID,
	}
	if err := u.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}

	u.logger.Info("Department created",
		zap.String("department_id", department.ID.String()),
		zap.String("name", department.Name))

	return u.Get(ctx, department.ID)
}

// Update applies a partial update.
func (u *DepartmentUsecase) Update(ctx context.Context, id uuid.UUID, in dto.DepartmentUpdate) (*dto.DepartmentOut, error) {
	department, err := u.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, apperrors.NotFound("department")
	}

	if in.Name != nil {
		department.Name = *in.Name
	}
	if in.ParentID != nil {
		if *in.ParentID == department.ID {
			return nil, apperrors.Validation("department cannot be its own parent")
		}
		department.ParentID = in.ParentID
	}
	if in.HeadID != nil {
		department.HeadID = in.HeadID
	}

	if err := u.departmentRepo.Update(ctx, department); err != nil {
		return nil, err
	}

	u.logger.Info("Department updated", zap.String("department_id", department.ID.String()))

	return u.Get(ctx, department.ID)
}

// Delete soft-deletes a department.
func (u *DepartmentUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	department, err := u.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if department == nil {
		return apperrors.NotFound("department")
	}
	if err := u.departmentRepo.SoftDelete(ctx, department); err != nil {
		return err
	}
	u.logger.Info("Department deleted", zap.String("department_id", id.String()))
	return nil
}
