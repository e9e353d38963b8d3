package audit

import (
	"encoding/json"
	"errors"
	"reflect"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Nicksok2413/Kronon/internal/domain/model"
)

// Trackable marks a model whose mutations are captured as audit events.
// BaseModel supplies AuditEntityID; models declare AuditEntityType.
type Trackable interface {
	AuditEntityType() string
	AuditEntityID() uuid.UUID
}

// columnExcluder lets a tracked model keep sensitive columns (password
// hashes) out of snapshots.
type columnExcluder interface {
	AuditExcludedColumns() []string
}

// Plugin registers GORM callbacks that append one AuditEvent per committed
// insert/update/delete of a Trackable model. The event insert shares the
// mutation's transaction: a mutation cannot commit without its event.
//
// Soft deletion flows through the delete callback and is recorded with the
// delete label; Unscoped operations (administrative hard delete, restore)
// are intentionally not recorded.
type Plugin struct {
	log *zap.Logger
}

// NewPlugin creates the audit capture plugin.
func NewPlugin(log *zap.Logger) *Plugin {
	return &Plugin{log: log}
}

// Name implements gorm.Plugin.
func (p *Plugin) Name() string {
	return "kronon:audit"
}

// Initialize implements gorm.Plugin.
func (p *Plugin) Initialize(db *gorm.DB) error {
	if err := db.Callback().Create().After("gorm:create").Register("kronon:audit_insert", func(db *gorm.DB) {
		p.record(db, model.AuditInsert)
	}); err != nil {
		return err
	}

	if err := db.Callback().Update().After("gorm:update").Register("kronon:audit_update", func(db *gorm.DB) {
		p.record(db, model.AuditUpdate)
	}); err != nil {
		return err
	}

	return db.Callback().Delete().After("gorm:delete").Register("kronon:audit_delete", func(db *gorm.DB) {
		p.record(db, model.AuditDelete)
	})
}

func (p *Plugin) record(db *gorm.DB, label model.AuditEventLabel) {
	stmt := db.Statement
	if db.Error != nil || stmt == nil || stmt.Schema == nil {
		return
	}
	// Unscoped writes are the administrative escape hatch (hard delete,
	// restore); they bypass the audit trail.
	if stmt.Unscoped {
		return
	}
	if db.RowsAffected == 0 {
		return
	}

	rv := stmt.ReflectValue
	if rv.Kind() != reflect.Struct || !rv.CanAddr() {
		return
	}

	tracked, ok := rv.Addr().Interface().(Trackable)
	if !ok {
		return
	}

	entityID := tracked.AuditEntityID()
	if entityID == uuid.Nil {
		return
	}

	snapshot, err := p.snapshot(db, tracked)
	if err != nil {
		p.log.Error("Failed to build audit snapshot",
			zap.String("entity_type", tracked.AuditEntityType()),
			zap.String("entity_id", entityID.String()),
			zap.Error(err))
		_ = db.AddError(err)
		return
	}

	event := model.AuditEvent{
		Label:      label,
		EntityType: tracked.AuditEntityType(),
		EntityID:   entityID,
		Snapshot:   snapshot,
	}

	if ac, found := FromContext(stmt.Context); found {
		ac.apply(&event)
	}

	if label == model.AuditUpdate {
		prior, err := p.priorSnapshot(db, event.EntityType, event.EntityID)
		if err != nil {
			_ = db.AddError(err)
			return
		}
		if prior != nil {
			event.Diff = Diff(prior, snapshot)
		}
	}

	if err := db.Session(&gorm.Session{NewDB: true}).Create(&event).Error; err != nil {
		p.log.Error("Failed to append audit event",
			zap.String("entity_type", event.EntityType),
			zap.String("entity_id", entityID.String()),
			zap.String("label", string(label)),
			zap.Error(err))
		_ = db.AddError(err)
	}
}

// snapshot captures column-level state of the mutated row, normalized to
// plain JSON values so stored snapshots diff cleanly against loaded ones.
// Serialization goes through the schema, so relation fields never appear.
func (p *Plugin) snapshot(db *gorm.DB, tracked Trackable) (model.JSONB, error) {
	stmt := db.Statement

	excluded := map[string]struct{}{}
	if ex, ok := tracked.(columnExcluder); ok {
		for _, column := range ex.AuditExcludedColumns() {
			excluded[column] = struct{}{}
		}
	}

	raw := make(map[string]interface{}, len(stmt.Schema.Fields))
	for _, field := range stmt.Schema.Fields {
		if field.DBName == "" {
			continue
		}
		if _, skip := excluded[field.DBName]; skip {
			continue
		}
		value, _ := field.ValueOf(stmt.Context, stmt.ReflectValue)
		raw[field.DBName] = truncateTimestamp(value)
	}

	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var snapshot model.JSONB
	if err := json.Unmarshal(buf, &snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// truncateTimestamp clips time values to microseconds. Postgres timestamptz
// columns round-trip at microsecond precision, so an in-memory snapshot must
// match what the next snapshot of a re-loaded row will carry or unchanged
// timestamps would show up in diffs.
func truncateTimestamp(value interface{}) interface{} {
	switch v := value.(type) {
	case time.Time:
		return v.Truncate(time.Microsecond)
	case *time.Time:
		if v == nil {
			return v
		}
		truncated := v.Truncate(time.Microsecond)
		return &truncated
	case gorm.DeletedAt:
		v.Time = v.Time.Truncate(time.Microsecond)
		return v
	case *gorm.DeletedAt:
		if v == nil {
			return v
		}
		truncated := *v
		truncated.Time = truncated.Time.Truncate(time.Microsecond)
		return &truncated
	}
	return value
}

// priorSnapshot loads the latest event snapshot for the entity within the
// same transaction; nil when the entity has no history yet.
func (p *Plugin) priorSnapshot(db *gorm.DB, entityType string, entityID uuid.UUID) (model.JSONB, error) {
	var prior model.AuditEvent
	err := db.Session(&gorm.Session{NewDB: true}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("id DESC").
		First(&prior).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return prior.Snapshot, nil
}
