package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/Nicksok2413/Kronon/internal/domain/apperrors"
	"github.com/Nicksok2413/Kronon/internal/domain/dto"
	"github.com/Nicksok2413/Kronon/internal/domain/model"
	domainRepo "github.com/Nicksok2413/Kronon/internal/domain/repository"
)

// ClientUsecase implements the client lifecycle: CRUD over live rows plus
// the administrative recovery paths.
type ClientUsecase struct {
	clientRepo domainRepo.ClientRepository
	userRepo   domainRepo.UserRepository
	auditRepo  domainRepo.AuditEventRepository
	logger     *zap.Logger
}

// NewClientUsecase creates a new client usecase
func NewClientUsecase(
	clientRepo domainRepo.ClientRepository,
	userRepo domainRepo.UserRepository,
	auditRepo domainRepo.AuditEventRepository,
	logger *zap.Logger,
) *ClientUsecase {
	return &ClientUsecase{
		clientRepo: clientRepo,
		userRepo:   userRepo,
		auditRepo:  auditRepo,
		logger:     logger,
	}
}

// checkAssignment verifies a responsible-party reference: the user must be
// live and hold one of the allowed roles.
func (u *ClientUsecase) checkAssignment(ctx context.Context, field string, id *uuid.UUID, allowed ...model.UserRole) error {
	if id == nil {
		return nil
	}
	user, err := u.userRepo.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.ValidationFields("invalid assignment",
			[]apperrors.FieldError{{Field: field, Reason: "user not found"}})
	}
	for _, role := range allowed {
		if user.Role == role {
			return nil
		}
	}
	return apperrors.ValidationFields("invalid assignment",
		[]apperrors.FieldError{{Field: field, Reason: fmt.Sprintf("role %s is not allowed for this assignment", user.Role)}})
}

func (u *ClientUsecase) checkAssignments(ctx context.Context, client *model.Client) error {
	for _, a := range []struct {
		field   string
		id      *uuid.UUID
		allowed []model.UserRole
	}{
		{"accountant_id", client.AccountantID, model.AccountantRoles},
		{"primary_accountant_id", client.PrimaryAccountantID, model.AccountantRoles},
		{"payroll_accountant_id", client.PayrollAccountantID, model.AccountantRoles},
		{"hr_specialist_id", client.HRSpecialistID, []model.UserRole{model.RoleHR}},
	} {
		if err := u.checkAssignment(ctx, a.field, a.id, a.allowed...); err != nil {
			return err
		}
	}
	return nil
}

// List returns one page of clients matching the filter.
func (u *ClientUsecase) List(ctx context.Context, filter dto.ClientFilter) (*dto.ListResponse[dto.ClientOut], error) {
	// The soft-delete opt-out belongs to the admin surface only.
	filter.Deleted = ""
	return u.list(ctx, filter)
}

// ListAdmin is List with soft-deleted visibility control.
func (u *ClientUsecase) ListAdmin(ctx context.Context, filter dto.ClientFilter) (*dto.ListResponse[dto.ClientOut], error) {
	return u.list(ctx, filter)
}

func (u *ClientUsecase) list(ctx context.Context, filter dto.ClientFilter) (*dto.ListResponse[dto.ClientOut], error) {
	filter.PaginationParams.Validate()
	clients, total, err := u.clientRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.ClientOut]{
		Items:    dto.NewClientOutList(clients),
		Count:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Get returns one live client in canonical shape.
func (u *ClientUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.ClientOut, error) {
	client, err := u.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperrors.NotFound("client")
	}
	out := dto.NewClientOut(client)
	return &out, nil
}

// Create registers a new client. The UNP must not collide with a live
// client; a soft-deleted holder of the same UNP does not block creation.
func (u *ClientUsecase) Create(ctx context.Context, in dto.ClientCreate) (*dto.ClientOut, error) {
	existing, err := u.clientRepo.GetByUNP(ctx, in.UNP)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.DuplicateUNP()
	}

	client := &model.Client{
		Name:                in.Name,
		FullLegalName:       in.FullLegalName,
		UNP:                 in.UNP,
		OrgType:             in.OrgType,
		TaxSystem:           in.TaxSystem,
		Status:              in.Status,
		DepartmentID:        in.DepartmentID,
		AccountantID:        in.AccountantID,
		PrimaryAccountantID: in.PrimaryAccountantID,
		PayrollAccountantID: in.PayrollAccountantID,
		HRSpecialistID:      in.HRSpecialistID,
		GoogleFolderID:      in.GoogleFolderID,
	}
	if client.OrgType == "" {
		client.OrgType = model.OrgTypeOOO
	}
	if client.TaxSystem == "" {
		client.TaxSystem = model.TaxUSNNoNDS
	}
	if client.Status == "" {
		client.Status = model.ClientStatusOnboarding
	}
	if in.ContactInfo != nil {
		client.ContactInfo = datatypes.NewJSONType(*in.ContactInfo)
	}

	if err := u.checkAssignments(ctx, client); err != nil {
		return nil, err
	}

	if err := u.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	u.logger.Info("Client created",
		zap.String("client_id", client.ID.String()),
		zap.String("unp", client.UNP))

	// Re-read so the response carries the same preloaded shape as GET.
	return u.Get(ctx, client.ID)
}

// Update applies a partial update. Top-level contact_info keys merge; the
// contacts list inside it is replaced wholesale when provided.
func (u *ClientUsecase) Update(ctx context.Context, id uuid.UUID, in dto.ClientUpdate) (*dto.ClientOut, error) {
	client, err := u.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperrors.NotFound("client")
	}

	if in.UNP != nil && *in.UNP != client.UNP {
		existing, err := u.clientRepo.GetByUNP(ctx, *in.UNP)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.DuplicateUNP()
		}
		client.UNP = *in.UNP
	}

	if in.Name != nil {
		client.Name = *in.Name
	}
	if in.FullLegalName != nil {
		client.FullLegalName = *in.FullLegalName
	}
	if in.OrgType != nil {
		client.OrgType = *in.OrgType
	}
	if in.TaxSystem != nil {
		client.TaxSystem = *in.TaxSystem
	}
	if in.Status != nil {
		client.Status = *in.Status
	}
	if in.DepartmentID != nil {
		client.DepartmentID = in.DepartmentID
	}
	if in.AccountantID != nil {
		client.AccountantID = in.AccountantID
	}
	if in.PrimaryAccountantID != nil {
		client.PrimaryAccountantID = in.PrimaryAccountantID
	}
	if in.PayrollAccountantID != nil {
		client.PayrollAccountantID = in.PayrollAccountantID
	}
	if in.HRSpecialistID != nil {
		client.HRSpecialistID = in.HRSpecialistID
	}
	if in.GoogleFolderID != nil {
		client.GoogleFolderID = *in.GoogleFolderID
	}
	if in.ContactInfo != nil {
		contact := client.ContactInfo.Data()
		contact.Merge(*in.ContactInfo)
		client.ContactInfo = datatypes.NewJSONType(contact)
	}

	if err := u.checkAssignments(ctx, client); err != nil {
		return nil, err
	}

	if err := u.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	u.logger.Info("Client updated", zap.String("client_id", client.ID.String()))

	return u.Get(ctx, client.ID)
}

// Delete soft-deletes a client. The row and its history remain reachable
// through the admin surface.
func (u *ClientUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	client, err := u.clientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return apperrors.NotFound("client")
	}
	if err := u.clientRepo.SoftDelete(ctx, client); err != nil {
		return err
	}
	u.logger.Info("Client deleted", zap.String("client_id", id.String()))
	return nil
}

// History returns the client's change log, newest first. Soft-deleted
// clients still expose history.
func (u *ClientUsecase) History(ctx context.Context, id uuid.UUID, query dto.HistoryQuery) (*dto.ListResponse[dto.HistoryItem], error) {
	client, err := u.clientRepo.GetAnyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperrors.NotFound("client")
	}

	query.PaginationParams.Validate()
	events, total, err := u.auditRepo.ListForEntity(ctx, model.Client{}.AuditEntityType(), id, query)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.HistoryItem]{
		Items:    dto.NewHistoryItemList(events),
		Count:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}

// Restore brings a soft-deleted client back to live reads.
func (u *ClientUsecase) Restore(ctx context.Context, id uuid.UUID) (*dto.ClientOut, error) {
	client, err := u.clientRepo.GetAnyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperrors.NotFound("client")
	}
	if !client.IsDeleted() {
		out := dto.NewClientOut(client)
		return &out, nil
	}

	// A live client may have taken the UNP while this one was deleted.
	holder, err := u.clientRepo.GetByUNP(ctx, client.UNP)
	if err != nil {
		return nil, err
	}
	if holder != nil && holder.ID != client.ID {
		return nil, apperrors.DuplicateUNP()
	}

	if err := u.clientRepo.Restore(ctx, id); err != nil {
		return nil, err
	}
	u.logger.Info("Client restored", zap.String("client_id", id.String()))
	return u.Get(ctx, id)
}

// Purge physically removes a soft-deleted client. Refused for live rows;
// audit history survives the purge.
func (u *ClientUsecase) Purge(ctx context.Context, id uuid.UUID) error {
	client, err := u.clientRepo.GetAnyByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return apperrors.NotFound("client")
	}
	if !client.IsDeleted() {
		return apperrors.New(apperrors.CodeIntegrity, fmt.Sprintf("client %s is not deleted; soft-delete it first", id))
	}
	if err := u.clientRepo.HardDelete(ctx, id); err != nil {
		return err
	}
	u.logger.Info("Client purged", zap.String("client_id", id.String()))
	return nil
}
