package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Nicksok2413/Kronon/internal/domain/entity"
	"github.com/Nicksok2413/Kronon/internal/domain/model"
)

// DepartmentRef is the short department shape embedded in other responses.
type DepartmentRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// UserOut is the short employee shape used for responsible parties and as
// the base of the detailed user response.
type UserOut struct {
	ID         uuid.UUID      `json:"id"`
	Email      string         `json:"email"`
	LastName   string         `json:"last_name,omitempty"`
	FirstName  string         `json:"first_name,omitempty"`
	MiddleName string         `json:"middle_name,omitempty"`
	Role       model.UserRole `json:"role"`
	FullName   string         `json:"full_name,omitempty"`
}

// NewUserOut maps a user row to its short read shape.
func NewUserOut(u *model.User) UserOut {
	return UserOut{
		ID:         u.ID,
		Email:      u.Email,
		LastName:   u.LastName,
		FirstName:  u.FirstName,
		MiddleName: u.MiddleName,
		Role:       u.Role,
		FullName:   u.FullName(),
	}
}

func newUserOutPtr(u *model.User) *UserOut {
	out := NewUserOut(u)
	return &out
}

// ProfileOut is the nested profile shape of the detailed user response.
type ProfileOut struct {
	Phone     string     `json:"phone,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Bio       string     `json:"bio,omitempty"`
}

// UserDetailOut is the GET /users/:id response.
type UserDetailOut struct {
	UserOut
	IsStaff    bool           `json:"is_staff"`
	IsActive   bool           `json:"is_active"`
	Department *DepartmentRef `json:"department,omitempty"`
	Profile    *ProfileOut    `json:"profile,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// NewUserDetailOut maps a user row with preloaded department and profile.
func NewUserDetailOut(u *model.User) UserDetailOut {
	out := UserDetailOut{
		UserOut:   NewUserOut(u),
		IsStaff:   u.IsStaff,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Department != nil {
		out.Department = &DepartmentRef{ID: u.Department.ID, Name: u.Department.Name}
	}
	if u.Profile != nil {
		out.Profile = &ProfileOut{
			Phone:     u.Profile.Phone,
			BirthDate: u.Profile.BirthDate,
			Bio:       u.Profile.Bio,
		}
	}
	return out
}

// NewUserDetailOutList maps a page of users to detailed read shapes.
func NewUserDetailOutList(users []model.User) []UserDetailOut {
	items := make([]UserDetailOut, len(users))
	for i := range users {
		items[i] = NewUserDetailOut(&users[i])
	}
	return items
}

// UserCreate is the POST /users request body (staff only).
type UserCreate struct {
	Email      string         `json:"email" validate:"required,email,max=254"`
	Password   string         `json:"password" validate:"required,min=8,max=128"`
	Role       model.UserRole `json:"role" validate:"omitempty,oneof=director chief_acc lead_acc accountant lawyer hr intern it"`
	FirstName  string         `json:"first_name" validate:"max=150"`
	LastName   string         `json:"last_name" validate:"max=150"`
	MiddleName string         `json:"middle_name" validate:"max=150"`
	IsStaff    bool           `json:"is_staff"`

	DepartmentID *uuid.UUID `json:"department_id"`

	Phone     string     `json:"phone" validate:"omitempty,intl_phone"`
	BirthDate *time.Time `json:"birth_date"`
	Bio       string     `json:"bio"`
}

// UserUpdate is the PATCH /users/:id request body.
type UserUpdate struct {
	Email      *string         `json:"email" validate:"omitempty,email,max=254"`
	Role       *model.UserRole `json:"role" validate:"omitempty,oneof=director chief_acc lead_acc accountant lawyer hr intern it"`
	FirstName  *string         `json:"first_name" validate:"omitempty,max=150"`
	LastName   *string         `json:"last_name" validate:"omitempty,max=150"`
	MiddleName *string         `json:"middle_name" validate:"omitempty,max=150"`
	IsStaff    *bool           `json:"is_staff"`
	IsActive   *bool           `json:"is_active"`

	DepartmentID *uuid.UUID `json:"department_id"`

	Phone     *string    `json:"phone" validate:"omitempty,intl_phone"`
	BirthDate *time.Time `json:"birth_date"`
	Bio       *string    `json:"bio"`
}

// UserFilter carries the query parameters of GET /users.
type UserFilter struct {
	entity.PaginationParams
	Search       string          `query:"search"`
	Role         *model.UserRole `query:"role"`
	DepartmentID *uuid.UUID      `query:"department_id"`
}

// DepartmentCreate is the POST /departments request body.
type DepartmentCreate struct {
	Name     string     `json:"name" validate:"required,min=1,max=150"`
	ParentID *uuid.UUID `json:"parent_id"`
	HeadID   *uuid.UUID `json:"head_id"`
}

// DepartmentUpdate is the PATCH /departments/:id request body.
type DepartmentUpdate struct {
	Name     *string    `json:"name" validate:"omitempty,min=1,max=150"`
	ParentID *uuid.UUID `json:"parent_id"`
	HeadID   *uuid.UUID `json:"head_id"`
}

// DepartmentOut is the full department read shape.
type DepartmentOut struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Parent    *DepartmentRef `json:"parent,omitempty"`
	Head      *UserOut       `json:"head,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewDepartmentOut maps a department with preloaded parent and head.
func NewDepartmentOut(d *model.Department) DepartmentOut {
	out := DepartmentOut{
		ID:        d.ID,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.Parent != nil {
		out.Parent = &DepartmentRef{ID: d.Parent.ID, Name: d.Parent.Name}
	}
	if d.Head != nil {
		out.Head = newUserOutPtr(d.Head)
	}
	return out
}

// NewDepartmentOutList maps a page of departments to read shapes.
func NewDepartmentOutList(departments []model.Department) []DepartmentOut {
	items := make([]DepartmentOut, len(departments))
	for i := range departments {
		items[i] = NewDepartmentOut(&departments[i])
	}
	return items
}

// DepartmentFilter carries the query parameters of GET /departments.
type DepartmentFilter struct {
	entity.PaginationParams
	Search string `query:"search"`
}
