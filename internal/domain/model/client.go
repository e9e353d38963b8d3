package model

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrganizationType enumerates legal forms of a client organization.
type OrganizationType string

const (
	OrgTypeIP    OrganizationType = "ip"
	OrgTypeOOO   OrganizationType = "ooo"
	OrgTypeODO   OrganizationType = "odo"
	OrgTypeOAO   OrganizationType = "oao"
	OrgTypeZAO   OrganizationType = "zao"
	OrgTypeCHUP  OrganizationType = "chup"
	OrgTypeFond  OrganizationType = "fond"
	OrgTypeOther OrganizationType = "other"
)

// TaxSystem enumerates taxation schemes. The scheme drives reporting
// schedules downstream.
type TaxSystem string

const (
	TaxUSNNoNDS    TaxSystem = "usn_no_nds"
	TaxUSNNDS      TaxSystem = "usn_nds"
	TaxOSN         TaxSystem = "osn"
	TaxIPEdiny     TaxSystem = "ip_ediny"
	TaxIPPodohodny TaxSystem = "ip_podohodny"
	TaxNPD         TaxSystem = "npd"
	TaxPVT         TaxSystem = "pvt"
)

// ClientStatus enumerates the service lifecycle state of a client.
type ClientStatus string

const (
	ClientStatusActive     ClientStatus = "active"
	ClientStatusOnboarding ClientStatus = "onboarding"
	ClientStatusArchived   ClientStatus = "archived"
	ClientStatusLead       ClientStatus = "lead"
)

// Client is a tracked business entity: a legal entity or sole proprietor
// under accounting service. UNP (the 9-digit tax identifier) is unique among
// non-deleted rows; uniqueness is enforced by a partial index created during
// migration so a soft-deleted client does not block identifier reuse.
type Client struct {
	BaseModel
	Name          string           `gorm:"size:150;not null;index" json:"name"`
	FullLegalName string           `gorm:"size:255" json:"full_legal_name"`
	UNP           string           `gorm:"size:9;not null;index" json:"unp"`
	OrgType       OrganizationType `gorm:"size:10;not null;default:'ooo'" json:"org_type"`
	TaxSystem     TaxSystem        `gorm:"size:20;not null;default:'usn_no_nds'" json:"tax_system"`
	Status        ClientStatus     `gorm:"size:20;not null;default:'onboarding';index" json:"status"`

	DepartmentID *uuid.UUID `gorm:"type:uuid;index" json:"department_id,omitempty"`

	// Responsible parties
	AccountantID        *uuid.UUID `gorm:"type:uuid;index" json:"accountant_id,omitempty"`
	PrimaryAccountantID *uuid.UUID `gorm:"type:uuid;index" json:"primary_accountant_id,omitempty"`
	PayrollAccountantID *uuid.UUID `gorm:"type:uuid;index" json:"payroll_accountant_id,omitempty"`
	HRSpecialistID      *uuid.UUID `gorm:"type:uuid;index" json:"hr_specialist_id,omitempty"`

	// Structured contacts stored as JSONB to avoid a table per phone/email.
	ContactInfo datatypes.JSONType[ContactInfo] `gorm:"type:jsonb" json:"contact_info"`

	// Integrations
	GoogleFolderID string `gorm:"size:100" json:"google_folder_id"`

	// Relations. Responsible parties detach when the referenced row is
	// physically removed; the client itself stays.
	Department        *Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL" json:"department,omitempty"`
	Accountant        *User       `gorm:"foreignKey:AccountantID;constraint:OnDelete:SET NULL" json:"accountant,omitempty"`
	PrimaryAccountant *User       `gorm:"foreignKey:PrimaryAccountantID;constraint:OnDelete:SET NULL" json:"primary_accountant,omitempty"`
	PayrollAccountant *User       `gorm:"foreignKey:PayrollAccountantID;constraint:OnDelete:SET NULL" json:"payroll_accountant,omitempty"`
	HRSpecialist      *User       `gorm:"foreignKey:HRSpecialistID;constraint:OnDelete:SET NULL" json:"hr_specialist,omitempty"`
}

// TableName specifies the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// AuditEntityType implements audit.Trackable.
func (Client) AuditEntityType() string {
	return "clients"
}

func (c *Client) String() string {
	return fmt.Sprintf("%s (UNP: %s)", c.Name, c.UNP)
}
