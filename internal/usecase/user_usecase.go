package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nicksok2413/Kronon/internal/domain/apperrors"
	"github.com/Nicksok2413/Kronon/internal/domain/dto"
	"github.com/Nicksok2413/Kronon/internal/domain/model"
	domainRepo "github.com/Nicksok2413/Kronon/internal/domain/repository"
)

// UserUsecase manages employee accounts and their profiles.
type UserUsecase struct {
	userRepo domainRepo.UserRepository
	logger   *zap.Logger
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo domainRepo.UserRepository, logger *zap.Logger) *UserUsecase {
	return &UserUsecase{userRepo: userRepo, logger: logger}
}

// List returns one page of users matching the filter.
func (u *UserUsecase) List(ctx context.Context, filter dto.UserFilter) (*dto.ListResponse[dto.UserDetailOut], error) {
	filter.PaginationParams.Validate()
	users, total, err := u.userRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.UserDetailOut]{
		Items:    dto.NewUserDetailOutList(users),
		Count:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Get returns one live user with department and profile.
func (u *UserUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.UserDetailOut, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user")
	}
	out := dto.NewUserDetailOut(user)
	return &out, nil
}

// Create registers an employee account. Email is the login identifier and
// must be unique among live users.
func (u *UserUsecase) Create(ctx context.Context, in dto.UserCreate) (*dto.UserDetailOut, error) {
	existing, err := u.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.New(apperrors.CodeIntegrity, "user with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		MiddleName:   in.MiddleName,
		IsStaff:      in.IsStaff,
		IsActive:     true,
		DepartmentID: in.DepartmentID,
	}
	if user.Role == "" {
		user.Role = model.RoleAccountant
	}
	if in.Phone != "" || in.BirthDate != nil || in.Bio != "" {
		user.Profile = &model.Profile{
			Phone:     in.Phone,
			BirthDate: in.BirthDate,
			Bio:       in.Bio,
		}
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	u.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return u.Get(ctx, user.ID)
}

// Update applies a partial update to the user and its profile.
func (u *UserUsecase) Update(ctx context.Context, id uuid.UUID, in dto.UserUpdate) (*dto.UserDetailOut, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user")
	}

	if in.Email != nil && *in.Email != user.Email {
		existing, err := u.userRepo.GetByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.New(apperrors.CodeIntegrity, "user with this email already exists")
		}
		user.Email = *in.Email
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.MiddleName != nil {
		user.MiddleName = *in.MiddleName
	}
	if in.IsStaff != nil {
		user.IsStaff = *in.IsStaff
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.DepartmentID != nil {
		user.DepartmentID = in.DepartmentID
	}

	if in.Phone != nil || in.BirthDate != nil || in.Bio != nil {
		if user.Profile == nil {
			user.Profile = &model.Profile{UserID: user.ID}
		}
		if in.Phone != nil {
			user.Profile.Phone = *in.Phone
		}
		if in.BirthDate != nil {
			user.Profile.BirthDate = in.BirthDate
		}
		if in.Bio != nil {
			user.Profile.Bio = *in.Bio
		}
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	u.logger.Info("User updated", zap.String("user_id", user.ID.String()))

	return u.Get(ctx, user.ID)
}

// Delete soft-deletes a user. Clients referencing the user keep the FK;
// live reads simply stop resolving it.
func (u *UserUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NotFound("user")
	}
	if err := u.userRepo.SoftDelete(ctx, user); err != nil {
		return err
	}
	u.logger.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}

// Authenticate verifies credentials and returns the account for token
// issuance. Inactive and deleted accounts are rejected.
func (u *UserUsecase) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "invalid credentials")
	}
	return user, nil
}
