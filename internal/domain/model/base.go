package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel is embedded by every business entity. It provides a
// time-sortable UUIDv7 primary key, timestamps and soft deletion.
//
// gorm.DeletedAt makes soft deletion the default: reads exclude rows with a
// deletion timestamp unless the query opts out via Unscoped, and Delete
// issues an UPDATE of deleted_at instead of removing the row.
type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate assigns a UUIDv7 so primary keys sort by creation time.
func (b *BaseModel) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		b.ID = id
	}
	return nil
}

// IsDeleted reports whether the row has been soft-deleted.
func (b *BaseModel) IsDeleted() bool {
	return b.DeletedAt.Valid
}

// AuditEntityID identifies the row in audit events (audit.Trackable).
func (b *BaseModel) AuditEntityID() uuid.UUID {
	return b.ID
}
