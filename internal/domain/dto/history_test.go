package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Nicksok2413/Kronon/internal/domain/model"
)

func TestNewHistoryItem_PrefersLiveActorEmail(t *testing.T) {
	actorID := uuid.New()
	stale := "old@kronon.by"
	source := model.SourceAPI

	item := NewHistoryItem(&model.AuditEvent{
		ID:         7,
		Label:      model.AuditUpdate,
		ActorID:    &actorID,
		ActorEmail: &stale,
		AppSource:  &source,
		Actor:      &model.User{Email: "current@kronon.by"},
	})

	assert.Equal(t, int64(7), item.EventID)
	assert.Equal(t, "current@kronon.by", item.Context.Email)
	assert.Equal(t, &actorID, item.Context.Actor)
	assert.Equal(t, model.SourceAPI, *item.Context.AppSource)
}

func TestNewHistoryItem_FallsBackToDenormalizedEmail(t *testing.T) {
	actorID := uuid.New()
	email := "departed@kronon.by"

	item := NewHistoryItem(&model.AuditEvent{
		ID:         8,
		Label:      model.AuditDelete,
		ActorID:    &actorID,
		ActorEmail: &email,
	})

	assert.Equal(t, "departed@kronon.by", item.Context.Email)
}

func TestNewHistoryItem_ActorlessEvent(t *testing.T) {
	item := NewHistoryItem(&model.AuditEvent{ID: 9, Label: model.AuditInsert})

	assert.Nil(t, item.Context.Actor)
	assert.Empty(t, item.Context.Email)
}
