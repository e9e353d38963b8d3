package audit

import (
	"reflect"

	"github.com/Nicksok2413/Kronon/internal/domain/model"
)

// Diff computes per-field {field: [old, new]} pairs between two consecutive
// snapshots of the same entity. Only fields whose value actually changed are
// included; fields appearing in exactly one snapshot diff against nil.
// Returns nil when nothing changed.
func Diff(prev, next model.JSONB) model.JSONB {
	diff := make(model.JSONB)

	for field, oldValue := range prev {
		newValue, ok := next[field]
		if !ok {
			diff[field] = []interface{}{oldValue, nil}
			continue
		}
		if !reflect.DeepEqual(oldValue, newValue) {
			diff[field] = []interface{}{oldValue, newValue}
		}
	}

	for field, newValue := range next {
		if _, ok := prev[field]; !ok {
			diff[field] = []interface{}{nil, newValue}
		}
	}

	if len(diff) == 0 {
		return nil
	}
	return diff
}
