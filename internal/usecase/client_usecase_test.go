package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Nicksok2413/Kronon/internal/domain/apperrors"
	"github.com/Nicksok2413/Kronon/internal/domain/dto"
	"github.com/Nicksok2413/Kronon/internal/domain/model"
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

func newClientUsecaseForTest() (*ClientUsecase, *MockClientRepository, *MockUserRepository, *MockAuditEventRepository) {
	clientRepo := new(MockClientRepository)
	userRepo := new(MockUserRepository)
	auditRepo := new(MockAuditEventRepository)
	return NewClientUsecase(clientRepo, userRepo, auditRepo, zap.NewNop()), clientRepo, userRepo, auditRepo
}

func liveClient(id uuid.UUID, unp string) *model.Client {
	return &model.Client{
		BaseModel: model.BaseModel{ID: id},
		Name:      "Alfa",
		UNP:       unp,
		OrgType:   model.OrgTypeOOO,
		TaxSystem: model.TaxUSNNoNDS,
		Status:    model.ClientStatusActive,
	}
}

func TestClientCreate_DuplicateUNP(t *testing.T) {
	uc, clientRepo, _, _ := newClientUsecaseForTest()
	ctx := context.Background()

	clientRepo.On("GetByUNP", ctx, "100000007").Return(liveClient(uuid.New(), "100000007"), nil)

	_, err := uc.Create(ctx, dto.ClientCreate{Name: "Beta", UNP: "100000007"})

	assert.Error(t, err)
	assert.Equal(t, apperrors.CodeDuplicateUNP, apperrors.CodeOf(err))
	clientRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestClientCreate_Success(t *testing.T) {
	uc, clientRepo, _, _ := newClientUsecaseForTest()
	ctx := context.Background()
	id := uuid.New()

	clientRepo.On("GetByUNP", ctx, "100000007").Return(nil, nil)
	clientRepo.On("Create", ctx, mock.MatchedBy(func(c *model.Client) bool {
		// Defaults applied when absent from the request.
		return c.UNP == "100000007" &&
			c.OrgType == model.OrgTypeOOO &&
			c.TaxSystem == model.TaxUSNNoNDS &&
			c.Status == model.ClientStatusOnboarding
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Client).ID = id
	}).Return(nil)
	clientRepo.On("GetByID", ctx, id).Return(liveClient(id, "100000007"), nil)

	out, err := uc.Create(ctx, dto.ClientCreate{Name: "Alfa", UNP: "100000007"})

	assert.NoError(t, err)
	assert.Equal(t, id, out.ID)
	assert.Equal(t, "100000007", out.UNP)
	clientRepo.AssertExpectations(t)
}

func TestClientUpdate_ContactInfoMerges(t *testing.T) {
	uc, clientRepo, _, _ := newClientUsecaseForTest()
	ctx := context.Background()
	id := uuid.New()

	existing := liveClient(id, "100000007")
	existing.ContactInfo = datatypes.NewJSONType(model.ContactInfo{
		GeneralEmail: "office@alfa.by",
		GeneralPhone: "+375291111111",
		Contacts:     []model.ContactPerson{{Role: "director", FullName: "Иванов Иван"}},
	})

	clientRepo.On("GetByID", ctx, id).Return(existing, nil)
	clientRepo.On("Update", ctx, mock.MatchedBy(func(c *model.Client) bool {
		contact := c.ContactInfo.Data()
		return contact.GeneralPhone == "+375293333333" &&
			contact.GeneralEmail == "office@alfa.by" &&
			len(contact.Contacts) == 1
	})).Return(nil)

	phone := "+375293333333"
	_, err := uc.Update(ctx, id, dto.ClientUpdate{
		ContactInfo: &model.ContactInfoPatch{GeneralPhone: &phone},
	})

	assert.NoError(t, err)
	clientRepo.AssertExpectations(t)
}

func TestClientUpdate_UNPTakenByAnotherLiveClient(t *testing.T) {
	uc, clientRepo, _, _ := newClientUsecaseForTest()
	ctx := context.Background()
	id := uuid.New()

	clientRepo.On("GetByID", ctx, id).Return(liveClient(id, "100000007"), nil)
	clientRepo.On("GetByUNP", ctx, "200000003").Return(liveClient(uuid.New(), "200000003"), nil)

	unp := "200000003"
	_, err := uc.Update(ctx, id, dto.ClientUpdate{UNP: &unp})

	assert.Equal(t, apperrors.CodeDuplicateUNP, apperrors.CodeOf(err))
	clientRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestClientGet_NotFound(t *testing.T) {
	uc, clientRepo, _, _ := newClientUsecaseForTest()
	ctx := context.Background()
	id := uuid.New()

	clientRepo.On("GetByID", ctx, id).Return(nil, nil)

	_, err := uc.Get(ctx, id)

	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestClientDelete_SoftDeletesLiveRow(t *testing.T) {
	uc, clientRepo, _, _ := newClientUsecaseForTest()
	ctx := context.Background()
	id := uuid.New()
	existing := liveClient(id, "100000007")

	clientRepo.On("GetByID", ctx, id).Return(existing, nil)
	clientRepo.On("SoftDelete", ctx, existing).Return(nil)

	assert.NoError(t, uc.Delete(ctx, id))
	clientRepo.AssertExpectations(t)
}

func TestClientHistory_SoftDeletedClientStillHasHistory(t *testing.T) {
	uc, clientRepo, _, auditRepo := newClientUsecaseForTest()
	ctx := context.Background()
	id := uuid.New()

	deleted := liveClient(id, "100000007")
	deleted.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}

	events := []model.AuditEvent{{ID: 2, Label: model.AuditUpdate, EntityType: "clients", EntityID: id, Snapshot: model.JSONB{"name": "Alfa"}}}

	clientRepo.On("GetAnyByID", ctx, id).Return(deleted, nil)
	auditRepo.On("ListForEntity", ctx, "clients", id, mock.Anything).Return(events, int64(1), nil)

	out, err := uc.History(ctx, id, dto.HistoryQuery{})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Count)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(2), out.Items[0].EventID)
}

func TestClientRestore_UNPReclaimedMeanwhile(t *testing.T) {
	uc, clientRepo, _, _ := newClientUsecaseForTest()
	ctx := context.Background()
	id := uuid.New()

	deleted := liveClient(id, "100000007")
	deleted.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}

	clientRepo.On("GetAnyByID", ctx, id).Return(deleted, nil)
	clientRepo.On("GetByUNP", ctx, "100000007").Return(liveClient(uuid.New(), "100000007"), nil)

	_, err := uc.Restore(ctx, id)

	assert.Equal(t, apperrors.CodeDuplicateUNP, apperrors.CodeOf(err))
	clientRepo.AssertNotCalled(t, "Restore", mock.Anything, mock.Anything)
}

func TestClientPurge_RefusesLiveRow(t *testing.T) {
	uc, clientRepo, _, _ := newClientUsecaseForTest()
	ctx := context.Background()
	id := uuid.New()

	clientRepo.On("GetAnyByID", ctx, id).Return(liveClient(id, "100000007"), nil)

	err := uc.Purge(ctx, id)

	assert.Equal(t, apperrors.CodeIntegrity, apperrors.CodeOf(err))
	clientRepo.AssertNotCalled(t, "HardDelete", mock.Anything, mock.Anything)
}

func TestClientList_NormalizesPaginationInResponse(t *testing.T) {
	uc, clientRepo, _, _ := newClientUsecaseForTest()
	ctx := context.Background()

	clientRepo.On("List", ctx, mock.MatchedBy(func(f dto.ClientFilter) bool {
		return f.Page == 1 && f.PageSize == 20
	})).Return([]model.Client{}, int64(0), nil)

	// No pagination in the request: the response must still report the
	// page that was actually served.
	out, err := uc.List(ctx, dto.ClientFilter{})

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 20, out.PageSize)
	clientRepo.AssertExpectations(t)
}

func TestClientHistory_NormalizesPaginationInResponse(t *testing.T) {
	uc, clientRepo, _, auditRepo := newClientUsecaseForTest()
	ctx := context.Background()
	id := uuid.New()

	clientRepo.On("GetAnyByID", ctx, id).Return(liveClient(id, "100000007"), nil)
	auditRepo.On("ListForEntity", ctx, "clients", id, mock.MatchedBy(func(q dto.HistoryQuery) bool {
		return q.Page == 1 && q.PageSize == 20
	})).Return([]model.AuditEvent{}, int64(0), nil)

	out, err := uc.History(ctx, id, dto.HistoryQuery{})

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 20, out.PageSize)
	auditRepo.AssertExpectations(t)
}

func TestClientCreate_RejectsNonAccountantAssignment(t *testing.T) {
	uc, clientRepo, userRepo, _ := newClientUsecaseForTest()
	ctx := context.Background()
	accountantID := uuid.New()

	clientRepo.On("GetByUNP", ctx, "100000007").Return(nil, nil)
	userRepo.On("GetByID", ctx, accountantID).Return(&model.User{
		BaseModel: model.BaseModel{ID: accountantID},
		Role:      model.RoleIT,
	}, nil)

	_, err := uc.Create(ctx, dto.ClientCreate{Name: "Alfa", UNP: "100000007", AccountantID: &accountantID})

	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Len(t, appErr.Fields(), 1)
	assert.Equal(t, "accountant_id", appErr.Fields()[0].Field)
	clientRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestClientCreate_RejectsUnknownAssignedUser(t *testing.T) {
	uc, clientRepo, userRepo, _ := newClientUsecaseForTest()
	ctx := context.Background()
	hrID := uuid.New()

	clientRepo.On("GetByUNP", ctx, "100000007").Return(nil, nil)
	userRepo.On("GetByID", ctx, hrID).Return(nil, nil)

	_, err := uc.Create(ctx, dto.ClientCreate{Name: "Alfa", UNP: "100000007", HRSpecialistID: &hrID})

	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Len(t, appErr.Fields(), 1)
	assert.Equal(t, "hr_specialist_id", appErr.Fields()[0].Field)
	clientRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestClientUpdate_HRSpecialistMustHoldHRRole(t *testing.T) {
	uc, clientRepo, userRepo, _ := newClientUsecaseForTest()
	ctx := context.Background()
	id := uuid.New()
	hrID := uuid.New()

	clientRepo.On("GetByID", ctx, id).Return(liveClient(id, "100000007"), nil)
	userRepo.On("GetByID", ctx, hrID).Return(&model.User{
		BaseModel: model.BaseModel{ID: hrID},
		Role:      model.RoleAccountant,
	}, nil)

	_, err := uc.Update(ctx, id, dto.ClientUpdate{HRSpecialistID: &hrID})

	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
	clientRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestClientCreate_AcceptsLeadAccountantAssignment(t *testing.T) {
	uc, clientRepo, userRepo, _ := newClientUsecaseForTest()
	ctx := context.Background()
	id := uuid.New()
	accountantID := uuid.New()

	clientRepo.On("GetByUNP", ctx, "100000007").Return(nil, nil)
	userRepo.On("GetByID", ctx, accountantID).Return(&model.User{
		BaseModel: model.BaseModel{ID: accountantID},
		Role:      model.RoleLeadAccountant,
	}, nil)
	clientRepo.On("Create", ctx, mock.MatchedBy(func(c *model.Client) bool {
		return c.AccountantID != nil && *c.AccountantID == accountantID
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Client).ID = id
	}).Return(nil)
	clientRepo.On("GetByID", ctx, id).Return(liveClient(id, "100000007"), nil)

	_, err := uc.Create(ctx, dto.ClientCreate{Name: "Alfa", UNP: "100000007", AccountantID: &accountantID})

	assert.NoError(t, err)
	clientRepo.AssertExpectations(t)
}

func TestClientList_StripsAdminVisibility(t *testing.T) {
	uc, clientRepo, _, _ := newClientUsecaseForTest()
	ctx := context.Background()

	clientRepo.On("List", ctx, mock.MatchedBy(func(f dto.ClientFilter) bool {
		return f.Deleted == ""
	})).Return([]model.Client{}, int64(0), nil)

	_, err := uc.List(ctx, dto.ClientFilter{Deleted: "all"})

	assert.NoError(t, err)
	clientRepo.AssertExpectations(t)
}
