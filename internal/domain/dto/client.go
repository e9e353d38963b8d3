package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Nicksok2413/Kronon/internal/domain/entity"
	"github.com/Nicksok2413/Kronon/internal/domain/model"
)

// ClientCreate is the POST /clients request body.
type ClientCreate struct {
	Name          string `json:"name" validate:"required,min=1,max=150"`
	FullLegalName string `json:"full_legal_name" validate:"max=255"`
	UNP           string `json:"unp" validate:"required,unp"`

	OrgType   model.OrganizationType `json:"org_type" validate:"omitempty,oneof=ip ooo odo oao zao chup fond other"`
	TaxSystem model.TaxSystem        `json:"tax_system" validate:"omitempty,oneof=usn_no_nds usn_nds osn ip_ediny ip_podohodny npd pvt"`
	Status    model.ClientStatus     `json:"status" validate:"omitempty,oneof=active onboarding archived lead"`

	DepartmentID        *uuid.UUID `json:"department_id"`
	AccountantID        *uuid.UUID `json:"accountant_id"`
	PrimaryAccountantID *uuid.UUID `json:"primary_accountant_id"`
	PayrollAccountantID *uuid.UUID `json:"payroll_accountant_id"`
	HRSpecialistID      *uuid.UUID `json:"hr_specialist_id"`

	ContactInfo *model.ContactInfo `json:"contact_info" validate:"omitempty"`

	GoogleFolderID string `json:"google_folder_id" validate:"max=100"`
}

// ClientUpdate is the PATCH /clients/:id request body. Absent fields are
// left unchanged; contact_info follows merge semantics.
type ClientUpdate struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=150"`
	FullLegalName *string `json:"full_legal_name" validate:"omitempty,max=255"`
	UNP           *string `json:"unp" validate:"omitempty,unp"`

	OrgType   *model.OrganizationType `json:"org_type" validate:"omitempty,oneof=ip ooo odo oao zao chup fond other"`
	TaxSystem *model.TaxSystem        `json:"tax_system" validate:"omitempty,oneof=usn_no_nds usn_nds osn ip_ediny ip_podohodny npd pvt"`
	Status    *model.ClientStatus     `json:"status" validate:"omitempty,oneof=active onboarding archived lead"`

	DepartmentID        *uuid.UUID `json:"department_id"`
	AccountantID        *uuid.UUID `json:"accountant_id"`
	PrimaryAccountantID *uuid.UUID `json:"primary_accountant_id"`
	PayrollAccountantID *uuid.UUID `json:"payroll_accountant_id"`
	HRSpecialistID      *uuid.UUID `json:"hr_specialist_id"`

	ContactInfo *model.ContactInfoPatch `json:"contact_info" validate:"omitempty"`

	GoogleFolderID *string `json:"google_folder_id" validate:"omitempty,max=100"`
}

// ClientFilter carries the query parameters of the client list endpoints.
// Search matches name, full legal name and UNP as a case-insensitive
// substring.
type ClientFilter struct {
	entity.PaginationParams
	Search    string                  `query:"search"`
	Status    *model.ClientStatus     `query:"status"`
	OrgType   *model.OrganizationType `query:"org_type"`
	TaxSystem *model.TaxSystem        `query:"tax_system"`

	DepartmentID        *uuid.UUID `query:"department_id"`
	AccountantID        *uuid.UUID `query:"accountant_id"`
	PrimaryAccountantID *uuid.UUID `query:"primary_accountant_id"`
	PayrollAccountantID *uuid.UUID `query:"payroll_accountant_id"`
	HRSpecialistID      *uuid.UUID `query:"hr_specialist_id"`

	// Deleted selects soft-deleted visibility on the admin listing:
	// live (default), only, or all.
	Deleted string `query:"deleted"`
}

// ClientOut is the canonical read shape of a client.
type ClientOut struct {
	ID uuid.UUID `json:"id"`

	Status    model.ClientStatus     `json:"status"`
	OrgType   model.OrganizationType `json:"org_type"`
	TaxSystem model.TaxSystem        `json:"tax_system"`

	Name          string `json:"name"`
	FullLegalName string `json:"full_legal_name,omitempty"`
	UNP           string `json:"unp"`

	Department        *DepartmentRef `json:"department,omitempty"`
	Accountant        *UserOut       `json:"accountant,omitempty"`
	PrimaryAccountant *UserOut       `json:"primary_accountant,omitempty"`
	PayrollAccountant *UserOut       `json:"payroll_accountant,omitempty"`
	HRSpecialist      *UserOut       `json:"hr_specialist,omitempty"`

	ContactInfo    model.ContactInfo `json:"contact_info"`
	GoogleFolderID string            `json:"google_folder_id,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// NewClientOut maps a loaded client (relations preloaded) to its read shape.
func NewClientOut(c *model.Client) ClientOut {
	out := ClientOut{
		ID:             c.ID,
		Status:         c.Status,
		OrgType:        c.OrgType,
		TaxSystem:      c.TaxSystem,
		Name:           c.Name,
		FullLegalName:  c.FullLegalName,
		UNP:            c.UNP,
		ContactInfo:    c.ContactInfo.Data(),
		GoogleFolderID: c.GoogleFolderID,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}

	if c.DeletedAt.Valid {
		deletedAt := c.DeletedAt.Time
		out.DeletedAt = &deletedAt
	}
	if c.Department != nil {
		out.Department = &DepartmentRef{ID: c.Department.ID, Name: c.Department.Name}
	}
	if c.Accountant != nil {
		out.Accountant = newUserOutPtr(c.Accountant)
	}
	if c.PrimaryAccountant != nil {
		out.PrimaryAccountant = newUserOutPtr(c.PrimaryAccountant)
	}
	if c.PayrollAccountant != nil {
		out.PayrollAccountant = newUserOutPtr(c.PayrollAccountant)
	}
	if c.HRSpecialist != nil {
		out.HRSpecialist = newUserOutPtr(c.HRSpecialist)
	}
	return out
}

// NewClientOutList maps a page of clients to read shapes.
func NewClientOutList(clients []model.Client) []ClientOut {
	items := make([]ClientOut, len(clients))
	for i := range clients {
		items[i] = NewClientOut(&clients[i])
	}
	return items
}
