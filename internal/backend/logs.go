package backend

import (
	"context"

	"github.com/freya-systems/freya-dashboard/internal/model"
)

const (
	endpointFetchSubmittedLogs = "fetchCustomerSubmittedLogs"
	endpointQueries            = "queries"
	collectionSubmittedDB      = "submittedDB"
	logActionField             = "Action"
)

// LogQuery describes one submitted-log fetch: either a paginated page
// (GetTotalCount true, Limit/Skip set) or an unpaginated export fetch by
// explicit ids or by filters.
type LogQuery struct {
	DBName        string         `json:"dbName"`
	Filters       map[string]any `json:"filters"`
	Sort          map[string]int `json:"sort"`
	Limit         int            `json:"limit,omitempty"`
	Skip          int            `json:"skip,omitempty"`
	IDsToFetch    []string       `json:"idsToFetch,omitempty"`
	GetTotalCount bool           `json:"getTotalCount"`
}

type logPageResponse struct {
	Data       []model.Record `json:"data"`
	TotalCount int            `json:"totalCount"`
}

// FetchSubmittedLogPage fetches one server-side page plus the total count of
// matching records.
func (client *Client) FetchSubmittedLogPage(ctx context.Context, query LogQuery) ([]model.Record, int, error) {
	query.GetTotalCount = true
	var response logPageResponse
	if callErr := client.postJSON(ctx, endpointFetchSubmittedLogs, query, &response); callErr != nil {
		return nil, 0, callErr
	}
	return response.Data, response.TotalCount, nil
}

// FetchSubmittedLogsForExport fetches every matching record unbounded by
// pagination. The backend responds with a bare array for this shape.
func (client *Client) FetchSubmittedLogsForExport(ctx context.Context, query LogQuery) ([]model.Record, error) {
	query.GetTotalCount = false
	query.Limit = 0
	query.Skip = 0
	var records []model.Record
	if callErr := client.postJSON(ctx, endpointFetchSubmittedLogs, query, &records); callErr != nil {
		return nil, callErr
	}
	return records, nil
}

type queryRequest struct {
	DBName         string           `json:"dbName"`
	CollectionName string           `json:"collectionName"`
	Query          map[string]any   `json:"query,omitempty"`
	Aggregation    []map[string]any `json:"aggregation,omitempty"`
	Limit          int              `json:"limit,omitempty"`
	Sort           map[string]int   `json:"sort,omitempty"`
}

// Query runs a generic find against a tenant collection.
func (client *Client) Query(ctx context.Context, dbName string, collectionName string, query map[string]any, sort map[string]int, limit int) ([]model.Record, error) {
	payload := queryRequest{
		DBName:         dbName,
		CollectionName: collectionName,
		Query:          query,
		Sort:           sort,
		Limit:          limit,
	}
	var records []model.Record
	if callErr := client.postJSON(ctx, endpointQueries, payload, &records); callErr != nil {
		return nil, callErr
	}
	return records, nil
}

type distinctActionRow struct {
	ID string `json:"_id"`
}

// DistinctLogActions lists the distinct Action values present in the tenant's
// submitted logs, sorted ascending, for the action filter dropdown.
func (client *Client) DistinctLogActions(ctx context.Context, dbName string) ([]string, error) {
	payload := queryRequest{
		DBName:         dbName,
		CollectionName: collectionSubmittedDB,
		Aggregation: []map[string]any{
			{"$group": map[string]any{"_id": "$" + logActionField}},
			{"$sort": map[string]any{"_id": 1}},
		},
	}
	var rows []distinctActionRow
	if callErr := client.postJSON(ctx, endpointQueries, payload, &rows); callErr != nil {
		return nil, callErr
	}
	actions := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.ID != "" {
			actions = append(actions, row.ID)
		}
	}
	return actions, nil
}
