package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nicksok2413/Kronon/internal/domain/model"
)

func TestDiff(t *testing.T) {
	prev := model.JSONB{
		"name":   "Alfa",
		"status": "onboarding",
		"unp":    "100000007",
	}
	next := model.JSONB{
		"name":   "Alfa",
		"status": "active",
		"unp":    "100000007",
	}

	diff := Diff(prev, next)

	assert.Equal(t, model.JSONB{
		"status": []interface{}{"onboarding", "active"},
	}, diff)
}

func TestDiff_NoChanges(t *testing.T) {
	snapshot := model.JSONB{"name": "Alfa", "status": "active"}

	assert.Nil(t, Diff(snapshot, snapshot))
}

func TestDiff_FieldAppearsAndDisappears(t *testing.T) {
	prev := model.JSONB{"name": "Alfa", "google_folder_id": "f-1"}
	next := model.JSONB{"name": "Alfa", "department_id": "d-1"}

	diff := Diff(prev, next)

	assert.Equal(t, []interface{}{"f-1", nil}, diff["google_folder_id"])
	assert.Equal(t, []interface{}{nil, "d-1"}, diff["department_id"])
	assert.NotContains(t, diff, "name")
}

func TestDiff_NestedValues(t *testing.T) {
	prev := model.JSONB{
		"contact_info": map[string]interface{}{"general_email": "a@b.by"},
	}
	next := model.JSONB{
		"contact_info": map[string]interface{}{"general_email": "c@d.by"},
	}

	diff := Diff(prev, next)

	assert.Len(t, diff, 1)
	assert.Equal(t, []interface{}{
		map[string]interface{}{"general_email": "a@b.by"},
		map[string]interface{}{"general_email": "c@d.by"},
	}, diff["contact_info"])
}
