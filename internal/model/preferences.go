package model

import "strings"

const (
	// SummaryPercentageBreakdown renders a per-category percentage list.
	SummaryPercentageBreakdown = "percentageBreakdown"
	// SummarySum renders the numeric sum of the source field.
	SummarySum = "sum"
	// SummaryAverage renders the numeric mean of the source field.
	SummaryAverage = "average"
	// SummaryMin renders the numeric minimum of the source field.
	SummaryMin = "min"
	// SummaryMax renders the numeric maximum of the source field.
	SummaryMax = "max"
	// SummaryCount renders the number of matching rows.
	SummaryCount = "count"
	// SummaryCountUnique renders the number of distinct source-field values.
	SummaryCountUnique = "countUnique"
)

// WidgetConfig binds one named dashboard widget to a source field and a
// summary operation.
type WidgetConfig struct {
	WidgetID    string `json:"widgetId"`
	Title       string `json:"title"`
	SourceField string `json:"sourceField"`
	SummaryType string `json:"summaryType"`
	// ErrorCategory names the source-field value counted as a failure. A
	// percentage-breakdown widget with this set carries an error-rate badge.
	ErrorCategory     string            `json:"errorCategory,omitempty"`
	AdditionalFilters map[string]string `json:"additionalFilters,omitempty"`
}

// ContextFields names the two record fields the dashboard needs to scope
// per-device daily widget queries.
type ContextFields struct {
	DeviceIDField string `json:"deviceIdField"`
	DateField     string `json:"dateField"`
}

// Configured reports whether both context fields are mapped.
func (fields ContextFields) Configured() bool {
	return strings.TrimSpace(fields.DeviceIDField) != "" && strings.TrimSpace(fields.DateField) != ""
}

// DashboardPreferences is the full user-configurable dashboard schema.
type DashboardPreferences struct {
	SelectedWidgets []WidgetConfig `json:"selectedWidgets"`
	ContextFields   ContextFields  `json:"contextFields"`
}

// EmptyDashboardPreferences is the default used when no stored preferences
// exist or the stored payload fails to parse.
func EmptyDashboardPreferences() DashboardPreferences {
	return DashboardPreferences{SelectedWidgets: []WidgetConfig{}}
}

// KnownSummaryTypes lists every supported summary operation in display order.
func KnownSummaryTypes() []string {
	return []string{
		SummaryPercentageBreakdown,
		SummarySum,
		SummaryAverage,
		SummaryMin,
		SummaryMax,
		SummaryCount,
		SummaryCountUnique,
	}
}

// ValidSummaryType reports whether summaryType names a supported operation.
func ValidSummaryType(summaryType string) bool {
	for _, known := range KnownSummaryTypes() {
		if summaryType == known {
			return true
		}
	}
	return false
}
