package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nicksok2413/Kronon/internal/domain/apperrors"
	"github.com/Nicksok2413/Kronon/internal/domain/dto"
	"github.com/Nicksok2413/Kronon/internal/domain/model"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context, filter dto.UserFilter) ([]model.User, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SoftDelete(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newUserUsecaseForTest() (*UserUsecase, *MockUserRepository) {
	userRepo := new(MockUserRepository)
	return NewUserUsecase(userRepo, zap.NewNop()), userRepo
}

func TestUserCreate_HashesPasswordAndAttachesProfile(t *testing.T) {
	uc, userRepo := newUserUsecaseForTest()
	ctx := context.Background()
	id := uuid.New()

	userRepo.On("GetByEmail", ctx, "ivanov@kronon.by").Return(nil, nil)
	userRepo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")) != nil {
			return false
		}
		return u.IsActive && u.Profile != nil && u.Profile.Phone == "+375291234567"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = id
	}).Return(nil)
	userRepo.On("GetByID", ctx, id).Return(&model.User{
		BaseModel: model.BaseModel{ID: id},
		Email:     "ivanov@kronon.by",
		Role:      model.RoleAccountant,
		IsActive:  true,
	}, nil)

	out, err := uc.Create(ctx, dto.UserCreate{
		Email:    "ivanov@kronon.by",
		Password: "s3cret-pass",
		Phone:    "+375291234567",
	})

	assert.NoError(t, err)
	assert.Equal(t, id, out.ID)
	userRepo.AssertExpectations(t)
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	uc, userRepo := newUserUsecaseForTest()
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "ivanov@kronon.by").Return(&model.User{Email: "ivanov@kronon.by"}, nil)

	_, err := uc.Create(ctx, dto.UserCreate{Email: "ivanov@kronon.by", Password: "s3cret-pass"})

	assert.Equal(t, apperrors.CodeIntegrity, apperrors.CodeOf(err))
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserUpdate_CreatesProfileOnFirstPatch(t *testing.T) {
	uc, userRepo := newUserUsecaseForTest()
	ctx := context.Background()
	id := uuid.New()

	existing := &model.User{
		BaseModel: model.BaseModel{ID: id},
		Email:     "ivanov@kronon.by",
		IsActive:  true,
	}

	userRepo.On("GetByID", ctx, id).Return(existing, nil)
	userRepo.On("Update", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Profile != nil && u.Profile.Bio == "Lead accountant"
	})).Return(nil)

	bio := "Lead accountant"
	_, err := uc.Update(ctx, id, dto.UserUpdate{Bio: &bio})

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestUserAuthenticate(t *testing.T) {
	uc, userRepo := newUserUsecaseForTest()
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	account := &model.User{Email: "ivanov@kronon.by", PasswordHash: string(hash), IsActive: true}

	userRepo.On("GetByEmail", ctx, "ivanov@kronon.by").Return(account, nil)

	got, err := uc.Authenticate(ctx, "ivanov@kronon.by", "s3cret-pass")
	assert.NoError(t, err)
	assert.Equal(t, "ivanov@kronon.by", got.Email)

	_, err = uc.Authenticate(ctx, "ivanov@kronon.by", "wrong-pass")
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.CodeOf(err))
}

func TestUserAuthenticate_InactiveRejected(t *testing.T) {
	uc, userRepo := newUserUsecaseForTest()
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	userRepo.On("GetByEmail", ctx, "gone@kronon.by").Return(&model.User{
		Email:        "gone@kronon.by",
		PasswordHash: string(hash),
		IsActive:     false,
	}, nil)

	_, err := uc.Authenticate(ctx, "gone@kronon.by", "s3cret-pass")
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.CodeOf(err))
}

func TestUserList_NormalizesPaginationInResponse(t *testing.T) {
	uc, userRepo := newUserUsecaseForTest()
	ctx := context.Background()

	userRepo.On("List", ctx, mock.MatchedBy(func(f dto.UserFilter) bool {
		return f.Page == 1 && f.PageSize == 20
	})).Return([]model.User{}, int64(0), nil)

	out, err := uc.List(ctx, dto.UserFilter{})

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 20, out.PageSize)
	userRepo.AssertExpectations(t)
}
