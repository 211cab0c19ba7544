package table

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBackendFiltersTwoSidedDateRange(t *testing.T) {
	filters := LogFilters{FromDate: "2026-08-01", ToDate: "2026-08-31"}

	backendFilters := filters.BackendFilters()

	require.Equal(t, map[string]any{
		"date": map[string]any{"$gte": "2026-08-01", "$lte": "2026-08-31"},
	}, backendFilters)
}

func TestBackendFiltersOneSidedDateRange(t *testing.T) {
	fromOnly := LogFilters{FromDate: "2026-08-01"}.BackendFilters()
	require.Equal(t, map[string]any{"date": map[string]any{"$gte": "2026-08-01"}}, fromOnly)

	toOnly := LogFilters{ToDate: "2026-08-31"}.BackendFilters()
	require.Equal(t, map[string]any{"date": map[string]any{"$lte": "2026-08-31"}}, toOnly)
}

func TestBackendFiltersExactActionMatch(t *testing.T) {
	backendFilters := LogFilters{Action: "scan"}.BackendFilters()

	require.Equal(t, map[string]any{"Action": "scan"}, backendFilters)
}

func TestBackendFiltersProductNumberIsCaseInsensitiveRegex(t *testing.T) {
	backendFilters := LogFilters{ProductNumber: "a-10"}.BackendFilters()

	require.Equal(t, map[string]any{
		"品番": map[string]any{"$regex": "a-10", "$options": "i"},
	}, backendFilters)
}

func TestBackendFiltersEmptyInputsProduceEmptyQuery(t *testing.T) {
	backendFilters := LogFilters{FromDate: "  ", Action: ""}.BackendFilters()

	require.Empty(t, backendFilters)
	require.True(t, LogFilters{FromDate: " "}.Empty())
	require.False(t, LogFilters{Action: "scan"}.Empty())
}
