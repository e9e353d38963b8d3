package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Nicksok2413/Kronon/internal/domain/entity"
	"github.com/Nicksok2413/Kronon/internal/domain/model"
)

// HistoryContext summarizes the unit of work that produced an event. Actor
// email is resolved from the live user row when it still exists, falling
// back to the email denormalized at write time.
type HistoryContext struct {
	Actor     *uuid.UUID       `json:"actor,omitempty"`
	Email     string           `json:"email,omitempty"`
	AppSource *model.AppSource `json:"app_source,omitempty"`
	IP        string           `json:"ip,omitempty"`
	Method    string           `json:"method,omitempty"`
	URL       string           `json:"url,omitempty"`
	Task      string           `json:"task,omitempty"`
	Command   string           `json:"command,omitempty"`
}

// HistoryItem is one audit trail entry as exposed by the API.
type HistoryItem struct {
	EventID   int64                 `json:"event_id"`
	CreatedAt time.Time             `json:"created_at"`
	Label     model.AuditEventLabel `json:"label"`
	Diff      model.JSONB           `json:"diff"`
	Context   HistoryContext        `json:"context"`
	Snapshot  model.JSONB           `json:"snapshot"`
}

// NewHistoryItem maps an audit event (Actor preloaded when resolvable).
func NewHistoryItem(ev *model.AuditEvent) HistoryItem {
	item := HistoryItem{
		EventID:   ev.ID,
		CreatedAt: ev.CreatedAt,
		Label:     ev.Label,
		Diff:      ev.Diff,
		Snapshot:  ev.Snapshot,
		Context: HistoryContext{
			Actor:     ev.ActorID,
			AppSource: ev.AppSource,
		},
	}

	// Prefer the live user record; the snapshot email is the fallback for
	// actors removed after the event was written.
	switch {
	case ev.Actor != nil:
		item.Context.Email = ev.Actor.Email
	case ev.ActorEmail != nil:
		item.Context.Email = *ev.ActorEmail
	}

	if ev.IP != nil {
		item.Context.IP = *ev.IP
	}
	if ev.Method != nil {
		item.Context.Method = *ev.Method
	}
	if ev.URL != nil {
		item.Context.URL = *ev.URL
	}
	if ev.Task != nil {
		item.Context.Task = *ev.Task
	}
	if ev.Command != nil {
		item.Context.Command = *ev.Command
	}
	return item
}

// NewHistoryItemList maps a page of audit events.
func NewHistoryItemList(events []model.AuditEvent) []HistoryItem {
	items := make([]HistoryItem, len(events))
	for i := range events {
		items[i] = NewHistoryItem(&events[i])
	}
	return items
}

// HistoryQuery bounds an entity history listing.
type HistoryQuery struct {
	entity.PaginationParams
	From *time.Time `query:"from"`
	To   *time.Time `query:"to"`
}

// AuditFilter carries the query parameters of the admin-wide audit listing.
type AuditFilter struct {
	entity.PaginationParams
	Label      *model.AuditEventLabel `query:"label"`
	AppSource  *model.AppSource       `query:"app_source"`
	EntityType string                 `query:"entity_type"`
	EntityID   *uuid.UUID             `query:"entity_id"`
	ActorEmail string                 `query:"actor_email"`
	From       *time.Time             `query:"from"`
	To         *time.Time             `query:"to"`
}
