package backend

import (
	"context"

	"github.com/freya-systems/freya-dashboard/internal/model"
)

const (
	endpointGetMasterDB         = "customerGetMasterDB"
	endpointInsertMaster        = "customerInsertMasterDBWithHistory"
	endpointUpdateMaster        = "customerUpdateMasterDBWithHistory"
	endpointUploadMasterImage   = "customerUploadMasterImageWithHistory"
	endpointBulkDeleteMaster    = "customerBulkDeleteWithHistory"
	endpointGetMasterDBHistory  = "customerGetMasterDBHistory"
	endpointGetRecordHistory    = "customerGetMasterHistory"
	collectionMasterDB          = "masterDB"
	imageUploadDefaultLabel     = "main"
	errorValueNothingModified   = "nothing modified"
	errorValueNothingDeleted    = "nothing deleted"
	errorValueMissingInsertedID = "missing inserted id"
)

type tenantScopedRequest struct {
	DBName string `json:"dbName"`
}

// GetMasterRecords fetches every master record for the tenant.
func (client *Client) GetMasterRecords(ctx context.Context, dbName string) ([]model.Record, error) {
	var records []model.Record
	if callErr := client.postJSON(ctx, endpointGetMasterDB, tenantScopedRequest{DBName: dbName}, &records); callErr != nil {
		return nil, callErr
	}
	return records, nil
}

type insertMasterRequest struct {
	Data     map[string]string `json:"data"`
	Role     string            `json:"role"`
	DBName   string            `json:"dbName"`
	Username string            `json:"username"`
}

type insertMasterResponse struct {
	InsertedID string `json:"insertedId"`
	Error      string `json:"error"`
}

// InsertMasterRecord creates one master record with a creation history entry
// and returns the backend-assigned identifier.
func (client *Client) InsertMasterRecord(ctx context.Context, data map[string]string, dbName string, role string, username string) (string, error) {
	payload := insertMasterRequest{Data: data, Role: role, DBName: dbName, Username: username}
	var response insertMasterResponse
	if callErr := client.postJSON(ctx, endpointInsertMaster, payload, &response); callErr != nil {
		return "", callErr
	}
	if response.InsertedID == "" {
		return "", &APIError{StatusCode: 0, Message: errorValueMissingInsertedID}
	}
	return response.InsertedID, nil
}

// MasterUpdate carries one master record update together with its computed
// field-level changes for history logging.
type MasterUpdate struct {
	DBName     string            `json:"dbName"`
	RecordID   string            `json:"recordId"`
	UpdateData map[string]string `json:"updateData"`
	Changes    []model.Change    `json:"changes"`
	Role       string            `json:"role"`
	Username   string            `json:"username"`
}

type modifiedCountResponse struct {
	ModifiedCount int    `json:"modifiedCount"`
	Error         string `json:"error"`
}

// UpdateMasterRecord applies a diffed update with history logging.
func (client *Client) UpdateMasterRecord(ctx context.Context, update MasterUpdate) error {
	var response modifiedCountResponse
	if callErr := client.postJSON(ctx, endpointUpdateMaster, update, &response); callErr != nil {
		return callErr
	}
	if response.ModifiedCount == 0 {
		return &APIError{StatusCode: 0, Message: errorValueNothingModified}
	}
	return nil
}

// ImageUpload carries one base64-encoded product image replacement.
type ImageUpload struct {
	Base64      string `json:"base64"`
	Label       string `json:"label"`
	RecordID    string `json:"recordId"`
	Username    string `json:"username"`
	DBName      string `json:"dbName"`
	OldImageURL string `json:"oldImageURL"`
}

type imageUploadResponse struct {
	ImageURL string `json:"imageURL"`
	Error    string `json:"error"`
}

// UploadMasterImage replaces a record's product image and returns the new
// stored image URL.
func (client *Client) UploadMasterImage(ctx context.Context, upload ImageUpload) (string, error) {
	if upload.Label == "" {
		upload.Label = imageUploadDefaultLabel
	}
	var response imageUploadResponse
	if callErr := client.postJSON(ctx, endpointUploadMasterImage, upload, &response); callErr != nil {
		return "", callErr
	}
	return response.ImageURL, nil
}

// BulkDelete carries the selected record identifiers plus their full
// last-known row data so the backend can log what was deleted.
type BulkDelete struct {
	RecordIDs      []string       `json:"recordIds"`
	RecordsData    []model.Record `json:"recordsData"`
	DBName         string         `json:"dbName"`
	CollectionName string         `json:"collectionName"`
	Role           string         `json:"role"`
	Username       string         `json:"username"`
}

type deletedCountResponse struct {
	DeletedCount int    `json:"deletedCount"`
	Error        string `json:"error"`
}

// BulkDeleteMasterRecords deletes the selected master records with deletion
// history entries and returns how many records the backend removed.
func (client *Client) BulkDeleteMasterRecords(ctx context.Context, request BulkDelete) (int, error) {
	if request.CollectionName == "" {
		request.CollectionName = collectionMasterDB
	}
	var response deletedCountResponse
	if callErr := client.postJSON(ctx, endpointBulkDeleteMaster, request, &response); callErr != nil {
		return 0, callErr
	}
	if response.DeletedCount == 0 {
		return 0, &APIError{StatusCode: 0, Message: errorValueNothingDeleted}
	}
	return response.DeletedCount, nil
}

// GetMasterHistory fetches the tenant-wide creation/deletion history.
func (client *Client) GetMasterHistory(ctx context.Context, dbName string) ([]model.HistoryEntry, error) {
	var entries []model.HistoryEntry
	if callErr := client.postJSON(ctx, endpointGetMasterDBHistory, tenantScopedRequest{DBName: dbName}, &entries); callErr != nil {
		return nil, callErr
	}
	return entries, nil
}

type recordHistoryRequest struct {
	RecordID string `json:"recordId"`
	DBName   string `json:"dbName"`
}

// GetRecordHistory fetches the per-record change history.
func (client *Client) GetRecordHistory(ctx context.Context, recordID string, dbName string) ([]model.HistoryEntry, error) {
	var entries []model.HistoryEntry
	if callErr := client.postJSON(ctx, endpointGetRecordHistory, recordHistoryRequest{RecordID: recordID, DBName: dbName}, &entries); callErr != nil {
		return nil, callErr
	}
	return entries, nil
}
