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

type userRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB, logger *zap.Logger) repository.UserRepository {
	return &userRepository{db: db, logger: logger}
}

// List returns one page of users plus the total match count.
func (r *userRepository) List(ctx context.Context, filter dto.UserFilter) ([]model.User, int64, error) {
	filter.PaginationParams.Validate()

	tx := r.db.WithContext(ctx).Model(&model.User{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		tx = tx.Where("email ILIKE ? OR last_name ILIKE ? OR first_name ILIKE ?", pattern, pattern, pattern)
	}
	if filter.Role != nil {
		tx = tx.Where("role = ?", *filter.Role)
	}
	if filter.DepartmentID != nil {
		tx = tx.Where("department_id = ?", *filter.DepartmentID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		r.logger.Error("Failed to count users", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var users []model.User
	err := tx.Preload("Department").Preload("Profile").
		Order("last_name, first_name, id").
		Limit(filter.PageSize).
		Offset(filter.Offset()).
		Find(&users).Error
	if err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

// GetByID retrieves a live user with department and profile; (nil, nil)
// when absent or soft-deleted.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Department").Preload("Profile").
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get user", zap.String("user_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByEmail looks up a live user by email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get user by email", zap.Error(err))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// Create inserts a user and, when set, its profile in one transaction so
// both rows land in the audit log together.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile := user.Profile
		user.Profile = nil
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return err
		}
		if profile != nil {
			profile.UserID = user.ID
			if err := tx.Omit(clause.Associations).Create(profile).Error; err != nil {
				return err
			}
			user.Profile = profile
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.New(apperrors.CodeIntegrity, "user with this email already exists")
		}
		r.logger.Error("Failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update saves the user row and its profile, creating the profile row on
// first use.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile := user.Profile
		user.Profile = nil
		if err := tx.Omit(clause.Associations).Save(user).Error; err != nil {
			return err
		}
		user.Profile = profile
		if profile != nil {
			profile.UserID = user.ID
			// Profile keys on user_id, so Save alone cannot tell insert
			// from update.
			var existing int64
			if err := tx.Model(&model.Profile{}).Where("user_id = ?", user.ID).Count(&existing).Error; err != nil {
				return err
			}
			if existing == 0 {
				if err := tx.Omit(clause.Associations).Create(profile).Error; err != nil {
					return err
				}
			} else if err := tx.Omit(clause.Associations).Save(profile).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.New(apperrors.CodeIntegrity, "user with this email already exists")
		}
		r.logger.Error("Failed to update user", zap.String("user_id", user.ID.String()), zap.Error(err))
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// SoftDelete marks the user deleted; recorded as a delete event.
func (r *userRepository) SoftDelete(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Delete(user).Error
	if err != nil {
		r.logger.Error("Failed to delete user", zap.String("user_id", user.ID.String()), zap.Error(err))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
