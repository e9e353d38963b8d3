package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Nicksok2413/Kronon/internal/domain/apperrors"
	"github.com/Nicksok2413/Kronon/internal/domain/dto"
	"github.com/Nicksok2413/Kronon/internal/domain/model"
	"github.com/Nicksok2413/Kronon/internal/usecase"
	"github.com/Nicksok2413/Kronon/internal/validation"
)

// MockClientRepository is a mock implementation of ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) List(ctx context.Context, filter dto.ClientFilter) ([]model.Client, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.Client), args.Get(1).(int64), args.Error(2)
}

func (m *MockClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientRepository) GetByUNP(ctx context.Context, unp string) (*model.Client, error) {
	args := m.Called(ctx, unp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientRepository) Create(ctx context.Context, client *model.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, client *model.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) SoftDelete(ctx context.Context, client *model.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) GetAnyByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientRepository) Restore(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

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

// MockAuditEventRepository is a mock implementation of AuditEventRepository
type MockAuditEventRepository struct {
	mock.Mock
}

func (m *MockAuditEventRepository) ListForEntity(ctx context.Context, entityType string, entityID uuid.UUID, query dto.HistoryQuery) ([]model.AuditEvent, int64, error) {
	args := m.Called(ctx, entityType, entityID, query)
	return args.Get(0).([]model.AuditEvent), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditEventRepository) List(ctx context.Context, filter dto.AuditFilter) ([]model.AuditEvent, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.AuditEvent), args.Get(1).(int64), args.Error(2)
}

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newHandlerForTest(t *testing.T) (*ClientHandler, *MockClientRepository, *echo.Echo) {
	t.Helper()
	clientRepo := new(MockClientRepository)
	userRepo := new(MockUserRepository)
	auditRepo := new(MockAuditEventRepository)
	uc := usecase.NewClientUsecase(clientRepo, userRepo, auditRepo, zap.NewNop())

	e := echo.New()
	e.Validator = &testValidator{validate: validation.MustNew()}
	return NewClientHandler(zap.NewNop(), uc), clientRepo, e
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestClientHandlerCreate_DuplicateUNPIs409(t *testing.T) {
	handler, clientRepo, e := newHandlerForTest(t)

	clientRepo.On("GetByUNP", mock.Anything, "100000007").
		Return(&model.Client{UNP: "100000007"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients",
		strings.NewReader(`{"name":"Alfa","unp":"100000007"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, handler.Create(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apperrors.CodeDuplicateUNP, decodeError(t, rec).Code)
}

func TestClientHandlerCreate_BadChecksumIs400(t *testing.T) {
	handler, clientRepo, e := newHandlerForTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients",
		strings.NewReader(`{"name":"Alfa","unp":"100000001"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, handler.Create(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, apperrors.CodeValidation, body.Code)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "UNP", body.Errors[0].Field)
	clientRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestClientHandlerGet_InvalidIDIs400(t *testing.T) {
	handler, _, e := newHandlerForTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, handler.Get(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClientHandlerGet_MissingIs404(t *testing.T) {
	handler, clientRepo, e := newHandlerForTest(t)
	id := uuid.New()

	clientRepo.On("GetByID", mock.Anything, id).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients/"+id.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, handler.Get(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apperrors.CodeNotFound, decodeError(t, rec).Code)
}

func TestClientHandlerDelete_SoftDeleteIs204(t *testing.T) {
	handler, clientRepo, e := newHandlerForTest(t)
	id := uuid.New()
	existing := &model.Client{BaseModel: model.BaseModel{ID: id}, UNP: "100000007"}

	clientRepo.On("GetByID", mock.Anything, id).Return(existing, nil)
	clientRepo.On("SoftDelete", mock.Anything, existing).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/clients/"+id.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, handler.Delete(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	clientRepo.AssertExpectations(t)
}
