package backend

import (
	"context"
)

const (
	endpointAggregateWidgetData = "aggregateCustomerDashboardWidgetData"
	endpointGetDeviceStats      = "getDeviceStats"
)

// BreakdownBucket is one category count produced by a grouped aggregation.
type BreakdownBucket struct {
	Value string `json:"_id"`
	Count int64  `json:"count"`
}

// WidgetData is the aggregation result for one dashboard widget. Exactly one
// of Breakdown or Value is populated depending on the summary type.
type WidgetData struct {
	Breakdown []BreakdownBucket `json:"breakdown,omitempty"`
	Value     *float64          `json:"value,omitempty"`
}

// WidgetAggregation describes one widget aggregation to run upstream.
type WidgetAggregation struct {
	DBName            string            `json:"dbName"`
	CollectionName    string            `json:"collectionName"`
	SourceField       string            `json:"sourceField"`
	SummaryType       string            `json:"summaryType"`
	DeviceID          string            `json:"deviceId,omitempty"`
	DeviceIDField     string            `json:"deviceIdField,omitempty"`
	Date              string            `json:"date,omitempty"`
	DateField         string            `json:"dateField,omitempty"`
	AdditionalFilters map[string]string `json:"additionalFilters,omitempty"`
}

// AggregateWidgetData runs one widget aggregation against the submitted logs.
func (client *Client) AggregateWidgetData(ctx context.Context, aggregation WidgetAggregation) (WidgetData, error) {
	if aggregation.CollectionName == "" {
		aggregation.CollectionName = collectionSubmittedDB
	}
	var data WidgetData
	if callErr := client.postJSON(ctx, endpointAggregateWidgetData, aggregation, &data); callErr != nil {
		return WidgetData{}, callErr
	}
	return data, nil
}

type deviceStatsRequest struct {
	DBName   string `json:"dbName"`
	DeviceID string `json:"deviceId"`
	Date     string `json:"date"`
}

// DeviceStats summarizes one device's activity for a single day.
type DeviceStats struct {
	TotalCount int64   `json:"totalCount"`
	ErrorCount int64   `json:"errorCount"`
	ErrorRate  float64 `json:"errorRate"`
}

// GetDeviceStats fetches the per-device daily counters shown on the dashboard.
func (client *Client) GetDeviceStats(ctx context.Context, dbName string, deviceID string, date string) (DeviceStats, error) {
	var stats DeviceStats
	payload := deviceStatsRequest{DBName: dbName, DeviceID: deviceID, Date: date}
	if callErr := client.postJSON(ctx, endpointGetDeviceStats, payload, &stats); callErr != nil {
		return DeviceStats{}, callErr
	}
	return stats, nil
}
