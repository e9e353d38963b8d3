package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Nicksok2413/Kronon/internal/domain/dto"
	"github.com/Nicksok2413/Kronon/internal/domain/model"
)

// UserRepository persists employees and their profiles.
type UserRepository interface {
	List(ctx context.Context, filter dto.UserFilter) ([]model.User, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	SoftDelete(ctx context.Context, user *model.User) error
}

// DepartmentRepository persists organizational units.
type DepartmentRepository interface {
	List(ctx context.Context, filter dto.DepartmentFilter) ([]model.Department, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Department, error)
	Create(ctx context.Context, department *model.Department) error
	Update(ctx context.Context, department *model.Department) error
	SoftDelete(ctx context.Context, department *model.Department) error
}
