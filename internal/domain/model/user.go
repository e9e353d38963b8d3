package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserRole enumerates employee roles. Roles drive access rules and which
// employees may be assigned as a client's responsible parties.
type UserRole string

const (
	RoleDirector        UserRole = "director"
	RoleChiefAccountant UserRole = "chief_acc"
	RoleLeadAccountant  UserRole = "lead_acc"
	RoleAccountant      UserRole = "accountant"
	RoleLawyer          UserRole = "lawyer"
	RoleHR              UserRole = "hr"
	RoleIntern          UserRole = "intern"
	RoleIT              UserRole = "it"
)

// AccountantRoles are the roles allowed in accounting assignments on a client.
var AccountantRoles = []UserRole{RoleAccountant, RoleLeadAccountant, RoleChiefAccountant}

// Department is an organizational unit. It may have a parent department and
// a head employee.
type Department struct {
	BaseModel
	Name     string     `gorm:"size:150;not null;index" json:"name"`
	ParentID *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	HeadID   *uuid.UUID `gorm:"type:uuid" json:"head_id,omitempty"`

	// Relations. Head carries no migrator constraint: departments and users
	// reference each other, so the head FK is added by a raw migration
	// statement after both tables exist.
	Parent *Department `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"parent,omitempty"`
	Head   *User       `gorm:"foreignKey:HeadID;constraint:-" json:"head,omitempty"`
}

// TableName specifies the table name for GORM
func (Department) TableName() string {
	return "departments"
}

// AuditEntityType implements audit.Trackable.
func (Department) AuditEntityType() string {
	return "departments"
}

// User is an employee account. Email is the login identifier; personal data
// beyond name and role lives in Profile.
type User struct {
	BaseModel
	Email        string     `gorm:"size:254;not null;index" json:"email"`
	PasswordHash string     `gorm:"size:128;not null" json:"-"`
	Role         UserRole   `gorm:"size:50;not null;default:'accountant'" json:"role"`
	FirstName    string     `gorm:"size:150" json:"first_name"`
	LastName     string     `gorm:"size:150" json:"last_name"`
	MiddleName   string     `gorm:"size:150" json:"middle_name"`
	IsStaff      bool       `gorm:"not null;default:false" json:"is_staff"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index" json:"department_id,omitempty"`

	// Relations
	Department *Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL" json:"department,omitempty"`
	Profile    *Profile    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// AuditEntityType implements audit.Trackable.
func (User) AuditEntityType() string {
	return "users"
}

// AuditExcludedColumns keeps credentials out of audit snapshots.
func (User) AuditExcludedColumns() []string {
	return []string{"password_hash"}
}

// FullName returns "LastName FirstName MiddleName" with empty parts skipped.
func (u *User) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{u.LastName, u.FirstName, u.MiddleName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Profile extends a User with personal details.
type Profile struct {
	UserID    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	Phone     string     `gorm:"size:30" json:"phone"`
	BirthDate *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Bio       string     `json:"bio"`
	PhotoPath string     `gorm:"size:255" json:"photo_path"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// AuditEntityType implements audit.Trackable.
func (Profile) AuditEntityType() string {
	return "profiles"
}

// AuditEntityID identifies the profile by its owning user (audit.Trackable).
func (p *Profile) AuditEntityID() uuid.UUID {
	return p.UserID
}
