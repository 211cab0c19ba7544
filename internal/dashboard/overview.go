package dashboard

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/freya-systems/freya-dashboard/internal/backend"
	"github.com/freya-systems/freya-dashboard/internal/model"
)

const (
	// BadgeHigh marks devices whose daily error rate exceeds the high threshold.
	BadgeHigh = "high"
	// BadgeWarning marks devices whose daily error rate reaches the warning threshold.
	BadgeWarning = "warning"

	errorRateHighThreshold    = 2.0
	errorRateWarningThreshold = 1.8

	overviewDateLayout = "2006-01-02"

	logMessageDeviceStatsFailed       = "device_stats_failed"
	logMessageWidgetAggregationFailed = "widget_aggregation_failed"
	logFieldDeviceID                  = "device_id"
	logFieldWidgetID                  = "widget_id"

	percentageRoundFactor = 10.0
)

// jstZone pins the dashboard's "today" to Japan Standard Time regardless of
// where the service runs.
var jstZone = time.FixedZone("JST", 9*60*60)

// BreakdownSlice is one category of a percentage-breakdown widget.
type BreakdownSlice struct {
	Value      string  `json:"value"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// WidgetView is the computed display state of one configured widget.
type WidgetView struct {
	WidgetID    string           `json:"widgetId"`
	Title       string           `json:"title"`
	SourceField string           `json:"sourceField"`
	SummaryType string           `json:"summaryType"`
	Breakdown   []BreakdownSlice `json:"breakdown,omitempty"`
	Value       *float64         `json:"value,omitempty"`
	Badge       string           `json:"badge,omitempty"`
	Failed      bool             `json:"failed,omitempty"`
}

// DeviceView is the computed display state of one device card, including the
// configured widgets evaluated against that device's rows.
type DeviceView struct {
	UniqueID   string       `json:"uniqueId"`
	Title      string       `json:"title"`
	TotalCount int64        `json:"totalCount"`
	ErrorCount int64        `json:"errorCount"`
	ErrorRate  float64      `json:"errorRate"`
	Badge      string       `json:"badge,omitempty"`
	Widgets    []WidgetView `json:"widgets"`
	Failed     bool         `json:"failed,omitempty"`
}

// Overview is the full dashboard payload for one tenant user.
type Overview struct {
	Date                  string       `json:"date"`
	Devices               []DeviceView `json:"devices"`
	ContextFieldsRequired bool         `json:"contextFieldsRequired"`
}

// OverviewService computes the dashboard overview by fanning out device and
// widget queries to the upstream backend.
type OverviewService struct {
	client *backend.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewOverviewService builds an overview service over the backend client.
func NewOverviewService(client *backend.Client, logger *zap.Logger) *OverviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverviewService{client: client, logger: logger, now: time.Now}
}

// CurrentDate returns today's date in Japan Standard Time.
func (service *OverviewService) CurrentDate() string {
	return service.now().In(jstZone).Format(overviewDateLayout)
}

// Build assembles the overview for the given session. Device stat calls and
// the per-device widget aggregations all run concurrently and are joined
// before returning; individual failures degrade to a flagged card instead of
// failing the page.
func (service *OverviewService) Build(ctx context.Context, session model.Session, devices []model.Device, preferences model.DashboardPreferences) Overview {
	overviewDate := service.CurrentDate()

	overview := Overview{
		Date:                  overviewDate,
		Devices:               make([]DeviceView, len(devices)),
		ContextFieldsRequired: len(preferences.SelectedWidgets) > 0 && !preferences.ContextFields.Configured(),
	}

	var waitGroup sync.WaitGroup

	for deviceIndex, device := range devices {
		overview.Devices[deviceIndex] = DeviceView{
			UniqueID: device.UniqueID,
			Title:    device.Title(),
			Widgets:  make([]WidgetView, len(preferences.SelectedWidgets)),
		}

		waitGroup.Add(1)
		go func(index int, device model.Device) {
			defer waitGroup.Done()
			service.fillDeviceStats(ctx, session.DBName, device, overviewDate, &overview.Devices[index])
		}(deviceIndex, device)

		if overview.ContextFieldsRequired {
			continue
		}
		for widgetIndex, widget := range preferences.SelectedWidgets {
			waitGroup.Add(1)
			go func(deviceSlot int, widgetSlot int, device model.Device, widget model.WidgetConfig) {
				defer waitGroup.Done()
				overview.Devices[deviceSlot].Widgets[widgetSlot] = service.buildWidgetView(
					ctx, session.DBName, device.UniqueID, widget, preferences.ContextFields, overviewDate)
			}(deviceIndex, widgetIndex, device, widget)
		}
	}

	waitGroup.Wait()
	return overview
}

func (service *OverviewService) fillDeviceStats(ctx context.Context, dbName string, device model.Device, date string, view *DeviceView) {
	stats, statsErr := service.client.GetDeviceStats(ctx, dbName, device.UniqueID, date)
	if statsErr != nil {
		service.logger.Warn(logMessageDeviceStatsFailed,
			zap.String(logFieldDeviceID, device.UniqueID),
			zap.Error(statsErr))
		view.Failed = true
		return
	}

	view.TotalCount = stats.TotalCount
	view.ErrorCount = stats.ErrorCount
	view.ErrorRate = stats.ErrorRate
	view.Badge = ErrorRateBadge(stats.ErrorRate)
}

func (service *OverviewService) buildWidgetView(ctx context.Context, dbName string, deviceID string, widget model.WidgetConfig, contextFields model.ContextFields, date string) WidgetView {
	view := WidgetView{
		WidgetID:    widget.WidgetID,
		Title:       widget.Title,
		SourceField: widget.SourceField,
		SummaryType: widget.SummaryType,
	}

	aggregation := backend.WidgetAggregation{
		DBName:            dbName,
		SourceField:       widget.SourceField,
		SummaryType:       widget.SummaryType,
		AdditionalFilters: widget.AdditionalFilters,
	}
	if contextFields.Configured() {
		aggregation.DateField = contextFields.DateField
		aggregation.Date = date
		aggregation.DeviceIDField = contextFields.DeviceIDField
		aggregation.DeviceID = deviceID
	}

	data, aggregateErr := service.client.AggregateWidgetData(ctx, aggregation)
	if aggregateErr != nil {
		service.logger.Warn(logMessageWidgetAggregationFailed,
			zap.String(logFieldWidgetID, widget.WidgetID),
			zap.Error(aggregateErr))
		view.Failed = true
		return view
	}

	if widget.SummaryType == model.SummaryPercentageBreakdown {
		view.Breakdown = PercentageBreakdown(data.Breakdown)
		view.Badge = errorCategoryBadge(view.Breakdown, widget.ErrorCategory)
	} else {
		view.Value = data.Value
	}
	return view
}

// errorCategoryBadge badges a breakdown by the share of the widget's
// designated error category.
func errorCategoryBadge(breakdown []BreakdownSlice, errorCategory string) string {
	if errorCategory == "" {
		return ""
	}
	for _, slice := range breakdown {
		if slice.Value == errorCategory {
			return ErrorRateBadge(slice.Percentage)
		}
	}
	return ""
}

// ErrorRateBadge classifies a daily error rate into a card badge. Rates above
// the high threshold take precedence over the warning threshold.
func ErrorRateBadge(errorRate float64) string {
	if errorRate > errorRateHighThreshold {
		return BadgeHigh
	}
	if errorRate >= errorRateWarningThreshold {
		return BadgeWarning
	}
	return ""
}

// PercentageBreakdown converts raw category counts into percentage slices
// rounded to one decimal place, ordered largest first.
func PercentageBreakdown(buckets []backend.BreakdownBucket) []BreakdownSlice {
	var totalCount int64
	for _, bucket := range buckets {
		totalCount += bucket.Count
	}

	slices := make([]BreakdownSlice, 0, len(buckets))
	for _, bucket := range buckets {
		slice := BreakdownSlice{Value: bucket.Value, Count: bucket.Count}
		if totalCount > 0 {
			slice.Percentage = math.Round(float64(bucket.Count)/float64(totalCount)*100*percentageRoundFactor) / percentageRoundFactor
		}
		slices = append(slices, slice)
	}

	sort.SliceStable(slices, func(firstIndex int, secondIndex int) bool {
		return slices[firstIndex].Count > slices[secondIndex].Count
	})
	return slices
}
