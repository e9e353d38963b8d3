package audit

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Nicksok2413/Kronon/internal/domain/model"
)

func TestContextRoundTrip(t *testing.T) {
	actorID := uuid.New()
	ac := Context{
		ActorID:    &actorID,
		ActorEmail: "ivanov@kronon.by",
		AppSource:  model.SourceAPI,
		IP:         "10.0.0.1",
		Method:     "PATCH",
		URL:        "/api/v1/clients/123",
	}

	ctx := NewContext(context.Background(), ac)
	got, ok := FromContext(ctx)

	assert.True(t, ok)
	assert.Equal(t, ac, got)
}

func TestContextMissing(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
}

func TestContextApply(t *testing.T) {
	actorID := uuid.New()
	ac := Context{
		ActorID:    &actorID,
		ActorEmail: "ivanov@kronon.by",
		AppSource:  model.SourceCLI,
		Command:    "initadmin",
	}

	var ev model.AuditEvent
	ac.apply(&ev)

	assert.Equal(t, &actorID, ev.ActorID)
	assert.Equal(t, "ivanov@kronon.by", *ev.ActorEmail)
	assert.Equal(t, model.SourceCLI, *ev.AppSource)
	assert.Equal(t, "initadmin", *ev.Command)
	// Unset fields stay NULL.
	assert.Nil(t, ev.IP)
	assert.Nil(t, ev.Method)
	assert.Nil(t, ev.URL)
	assert.Nil(t, ev.Task)
}

func TestContextIsolationBetweenUnitsOfWork(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			actorID := uuid.New()
			ctx := NewContext(context.Background(), Context{
				ActorID:   &actorID,
				AppSource: model.SourceAPI,
			})
			got, ok := FromContext(ctx)
			assert.True(t, ok)
			assert.Equal(t, &actorID, got.ActorID)
		}(i)
	}
	wg.Wait()
}
