package table

import (
	"strings"

	"github.com/freya-systems/freya-dashboard/internal/model"
)

// ComputeChanges diffs edited field values against the original record, field
// by field. A field counts as changed when its trimmed new value differs from
// the original display value. The returned list follows fieldOrder so history
// entries stay deterministic.
func ComputeChanges(original model.Record, edited map[string]string, fieldOrder []string) []model.Change {
	changes := make([]model.Change, 0, len(edited))
	for _, fieldName := range fieldOrder {
		newValue, present := edited[fieldName]
		if !present {
			continue
		}
		trimmedNewValue := strings.TrimSpace(newValue)
		oldValue := original.DisplayValue(fieldName)
		if trimmedNewValue != oldValue {
			changes = append(changes, model.Change{
				Field:    fieldName,
				OldValue: oldValue,
				NewValue: trimmedNewValue,
			})
		}
	}
	return changes
}

// BuildUpdate trims every edited value into the full update payload the
// backend expects alongside the changes list.
func BuildUpdate(edited map[string]string) map[string]string {
	update := make(map[string]string, len(edited))
	for fieldName, value := range edited {
		update[fieldName] = strings.TrimSpace(value)
	}
	return update
}
