package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditEventLabel classifies the mutation an event records.
type AuditEventLabel string

const (
	AuditInsert AuditEventLabel = "insert"
	AuditUpdate AuditEventLabel = "update"
	AuditDelete AuditEventLabel = "delete"
)

// AppSource identifies the channel a mutation originated from.
type AppSource string

const (
	SourceAPI    AppSource = "api"
	SourceWorker AppSource = "worker"
	SourceCLI    AppSource = "cli"
)

// AuditEvent is one immutable record of an insert/update/delete against a
// tracked entity. Events are append-only: nothing in the codebase updates or
// deletes rows of this table.
//
// EntityID deliberately carries no foreign-key constraint so history
// survives administrative hard deletion of the parent row. ActorEmail is a
// denormalized fallback for when the acting user is later removed.
type AuditEvent struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt  time.Time       `gorm:"default:now();index" json:"created_at"`
	Label      AuditEventLabel `gorm:"size:10;not null;index" json:"label"`
	EntityType string          `gorm:"size:100;not null" json:"entity_type"`
	EntityID   uuid.UUID       `gorm:"type:uuid;not null" json:"entity_id"`

	// Snapshot holds the full field-level state right after the mutation.
	// Diff holds {field: [old, new]} between consecutive snapshots and is
	// only populated for update events.
	Snapshot JSONB `gorm:"type:jsonb;not null" json:"snapshot"`
	Diff     JSONB `gorm:"type:jsonb" json:"diff,omitempty"`

	// Request-scoped context; all fields null when the write happened
	// outside a tracked unit of work.
	ActorID    *uuid.UUID `gorm:"type:uuid;index" json:"actor_id,omitempty"`
	ActorEmail *string    `gorm:"size:254" json:"actor_email,omitempty"`
	AppSource  *AppSource `gorm:"size:20;index" json:"app_source,omitempty"`
	IP         *string    `gorm:"size:45" json:"ip,omitempty"`
	Method     *string    `gorm:"size:10" json:"method,omitempty"`
	URL        *string    `gorm:"size:500" json:"url,omitempty"`
	Task       *string    `gorm:"size:200" json:"task,omitempty"`
	Command    *string    `gorm:"size:200" json:"command,omitempty"`

	// Actor resolves against the live users table; nil once the user row is
	// gone, in which case ActorEmail is the remaining attribution. No FK:
	// events must survive physical removal of the actor.
	Actor *User `gorm:"foreignKey:ActorID;constraint:-" json:"actor,omitempty"`
}

// TableName specifies the table name for GORM
func (AuditEvent) TableName() string {
	return "audit_events"
}
