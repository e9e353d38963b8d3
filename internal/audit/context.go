// Package audit captures every committed mutation of a tracked entity as an
// immutable AuditEvent row, written inside the same transaction as the
// mutation itself.
//
// Request metadata travels as an explicit Context value bound into the
// context.Context at each unit-of-work boundary (HTTP middleware, CLI
// entrypoint, worker wrapper). context.Context scoping guarantees that
// concurrent units of work never see each other's audit context.
package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/Nicksok2413/Kronon/internal/domain/model"
)

// Context is the ambient metadata attached to every audit event produced
// within one unit of work. Zero-value string fields are stored as NULL.
type Context struct {
	ActorID    *uuid.UUID
	ActorEmail string
	AppSource  model.AppSource
	IP         string
	Method     string
	URL        string
	Task       string
	Command    string
}

type contextKey struct{}

// NewContext binds ac to the returned context. Writes performed with that
// context (or any context derived from it) will carry ac in their events.
func NewContext(parent context.Context, ac Context) context.Context {
	return context.WithValue(parent, contextKey{}, ac)
}

// FromContext extracts the audit context established for this unit of work.
// A missing context is not an error: the caller writes NULL context fields.
func FromContext(ctx context.Context) (Context, bool) {
	ac, ok := ctx.Value(contextKey{}).(Context)
	return ac, ok
}

// apply copies the context into the event's nullable columns.
func (ac Context) apply(ev *model.AuditEvent) {
	ev.ActorID = ac.ActorID
	if ac.ActorEmail != "" {
		ev.ActorEmail = &ac.ActorEmail
	}
	if ac.AppSource != "" {
		source := ac.AppSource
		ev.AppSource = &source
	}
	if ac.IP != "" {
		ev.IP = &ac.IP
	}
	if ac.Method != "" {
		ev.Method = &ac.Method
	}
	if ac.URL != "" {
		ev.URL = &ac.URL
	}
	if ac.Task != "" {
		ev.Task = &ac.Task
	}
	if ac.Command != "" {
		ev.Command = &ac.Command
	}
}
