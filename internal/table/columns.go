// Package table holds the page-agnostic data-table orchestration logic:
// column discovery over schema-less rows, field-level diffing, pagination
// clamping, sort-state management, and backend filter construction.
package table

import (
	"sort"

	"github.com/freya-systems/freya-dashboard/internal/model"
)

var (
	// MasterExcludedKeys never render as master table columns.
	MasterExcludedKeys = []string{model.RecordKeyID, model.RecordKeyImageURL, model.RecordKeyChangeHistory}
	// MasterPreferredOrder fixes the leading master table columns.
	MasterPreferredOrder = []string{"品番"}
	// LogExcludedKeys never render as submitted-log columns.
	LogExcludedKeys = []string{model.RecordKeyID}
	// LogPreferredOrder fixes the leading submitted-log columns.
	LogPreferredOrder = []string{"品番", "date", "time", "Action", "device name", "uniqueID", "Comments", "班長"}
)

// DiscoverColumns computes the display column set for a fetched page of rows:
// the union of keys present in any row, minus excludedKeys, with
// preferredOrder keys first in their configured order and every remaining key
// following in sorted order. Re-discovery happens on every fetch so backend
// schema drift is tolerated without a deploy.
func DiscoverColumns(rows []model.Record, excludedKeys []string, preferredOrder []string) []string {
	excluded := make(map[string]struct{}, len(excludedKeys))
	for _, key := range excludedKeys {
		excluded[key] = struct{}{}
	}

	present := make(map[string]struct{})
	for _, row := range rows {
		for key := range row {
			if _, skip := excluded[key]; skip {
				continue
			}
			present[key] = struct{}{}
		}
	}

	columns := make([]string, 0, len(present))
	for _, key := range preferredOrder {
		if _, ok := present[key]; ok {
			columns = append(columns, key)
			delete(present, key)
		}
	}

	remainder := make([]string, 0, len(present))
	for key := range present {
		remainder = append(remainder, key)
	}
	sort.Strings(remainder)

	return append(columns, remainder...)
}
