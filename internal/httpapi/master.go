package httpapi

import (
	"bytes"
	"encoding/base64"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/freya-systems/freya-dashboard/internal/backend"
	"github.com/freya-systems/freya-dashboard/internal/export"
	"github.com/freya-systems/freya-dashboard/internal/model"
	"github.com/freya-systems/freya-dashboard/internal/table"
)

const (
	errorValueBackendFailed    = "backend_failed"
	errorValueNoChanges        = "no_changes"
	errorValueMissingProduct   = "missing_product_number"
	errorValueMissingRecordID  = "missing_record_id"
	errorValueEmptySelection   = "empty_selection"
	errorValueMissingImage     = "missing_image"
	errorValueInvalidImage     = "invalid_image"
	errorValueMissingCSVFile   = "missing_csv_file"
	errorValueUnreadableCSV    = "unreadable_csv"
	fieldNameProductNumber     = "品番"
	importFileFormField        = "file"
	imageMaxDimensionPixels    = 1280
	imageJPEGQuality           = 85
	logMessageMasterOperation  = "master_operation_failed"
	logFieldMasterOperation    = "operation"
	masterOperationList        = "list"
	masterOperationInsert      = "insert"
	masterOperationUpdate      = "update"
	masterOperationBulkDelete  = "bulk_delete"
	masterOperationImport      = "import"
	masterOperationImage       = "image"
	masterOperationHistory     = "history"
	masterOperationItemHistory = "record_history"
)

// MasterHandlers serves the master database page operations.
type MasterHandlers struct {
	client *backend.Client
	logger *zap.Logger
}

// NewMasterHandlers builds the master record handler set.
func NewMasterHandlers(client *backend.Client, logger *zap.Logger) *MasterHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MasterHandlers{client: client, logger: logger}
}

func (h *MasterHandlers) failBackend(context *gin.Context, operation string, callErr error) {
	h.logger.Warn(logMessageMasterOperation,
		zap.String(logFieldMasterOperation, operation),
		zap.Error(callErr))
	context.JSON(502, gin.H{"error": errorValueBackendFailed})
}

type masterRowMeta struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageURL,omitempty"`
}

// List responds with the tenant's master records and their discovered columns.
// Identifier and image location are excluded from column discovery, so they
// ride alongside each row as metadata for the detail panel.
func (h *MasterHandlers) List(context *gin.Context) {
	currentSession := CurrentSession(context)

	rows, fetchErr := h.client.GetMasterRecords(context.Request.Context(), currentSession.DBName)
	if fetchErr != nil {
		h.failBackend(context, masterOperationList, fetchErr)
		return
	}

	columns := table.DiscoverColumns(rows, table.MasterExcludedKeys, table.MasterPreferredOrder)
	meta := make([]masterRowMeta, len(rows))
	for rowIndex, row := range rows {
		meta[rowIndex] = masterRowMeta{ID: row.ID(), ImageURL: row.ImageURL()}
	}
	context.JSON(200, gin.H{"columns": columns, "rows": rows, "rowMeta": meta})
}

type masterInsertRequest struct {
	Data map[string]string `json:"data"`
}

// Insert creates one master record. The product number field is mandatory.
func (h *MasterHandlers) Insert(context *gin.Context) {
	var payload masterInsertRequest
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(400, gin.H{"error": errorValueInvalidJSON})
		return
	}
	if strings.TrimSpace(payload.Data[fieldNameProductNumber]) == "" {
		context.JSON(400, gin.H{"error": errorValueMissingProduct})
		return
	}

	currentSession := CurrentSession(context)
	insertedID, insertErr := h.client.InsertMasterRecord(
		context.Request.Context(),
		table.BuildUpdate(payload.Data),
		currentSession.DBName,
		currentSession.Role,
		currentSession.Username,
	)
	if insertErr != nil {
		h.failBackend(context, masterOperationInsert, insertErr)
		return
	}
	context.JSON(200, gin.H{"insertedId": insertedID})
}

type masterUpdateRequest struct {
	RecordID string            `json:"recordId"`
	Original model.Record      `json:"original"`
	Edited   map[string]string `json:"edited"`
	Fields   []string          `json:"fields"`
}

// Update computes the field-level diff between the original snapshot and the
// edited values. An empty diff is rejected before any upstream call.
func (h *MasterHandlers) Update(context *gin.Context) {
	var payload masterUpdateRequest
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(400, gin.H{"error": errorValueInvalidJSON})
		return
	}
	if strings.TrimSpace(payload.RecordID) == "" {
		context.JSON(400, gin.H{"error": errorValueMissingRecordID})
		return
	}

	changes := table.ComputeChanges(payload.Original, payload.Edited, payload.Fields)
	if len(changes) == 0 {
		context.JSON(400, gin.H{"error": errorValueNoChanges})
		return
	}

	currentSession := CurrentSession(context)
	update := backend.MasterUpdate{
		DBName:     currentSession.DBName,
		RecordID:   payload.RecordID,
		UpdateData: table.BuildUpdate(payload.Edited),
		Changes:    changes,
		Role:       currentSession.Role,
		Username:   currentSession.Username,
	}
	if updateErr := h.client.UpdateMasterRecord(context.Request.Context(), update); updateErr != nil {
		h.failBackend(context, masterOperationUpdate, updateErr)
		return
	}
	context.JSON(200, gin.H{"changes": changes})
}

type masterBulkDeleteRequest struct {
	RecordIDs []string       `json:"recordIds"`
	Records   []model.Record `json:"records"`
}

// BulkDelete removes the selected records, forwarding their last-known row
// data so the upstream can snapshot what was deleted.
func (h *MasterHandlers) BulkDelete(context *gin.Context) {
	var payload masterBulkDeleteRequest
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(400, gin.H{"error": errorValueInvalidJSON})
		return
	}
	if len(payload.RecordIDs) == 0 {
		context.JSON(400, gin.H{"error": errorValueEmptySelection})
		return
	}

	currentSession := CurrentSession(context)
	request := backend.BulkDelete{
		RecordIDs:   payload.RecordIDs,
		RecordsData: payload.Records,
		DBName:      currentSession.DBName,
		Role:        currentSession.Role,
		Username:    currentSession.Username,
	}
	deletedCount, deleteErr := h.client.BulkDeleteMasterRecords(context.Request.Context(), request)
	if deleteErr != nil {
		h.failBackend(context, masterOperationBulkDelete, deleteErr)
		return
	}
	context.JSON(200, gin.H{"deletedCount": deletedCount})
}

type importRowResult struct {
	RowNumber int    `json:"rowNumber"`
	Inserted  bool   `json:"inserted"`
	Error     string `json:"error,omitempty"`
}

// ImportCSV inserts one master record per row of the uploaded CSV file.
// The file is decoded from Shift-JIS; the header row names the fields.
func (h *MasterHandlers) ImportCSV(context *gin.Context) {
	uploadedFile, fileErr := context.FormFile(importFileFormField)
	if fileErr != nil {
		context.JSON(400, gin.H{"error": errorValueMissingCSVFile})
		return
	}
	openedFile, openErr := uploadedFile.Open()
	if openErr != nil {
		context.JSON(400, gin.H{"error": errorValueUnreadableCSV})
		return
	}
	defer openedFile.Close()

	rows, parseErr := h.readImportRows(openedFile)
	if parseErr != nil {
		context.JSON(400, gin.H{"error": errorValueUnreadableCSV})
		return
	}

	currentSession := CurrentSession(context)
	results := make([]importRowResult, 0, len(rows))
	insertedCount := 0
	for rowIndex, row := range rows {
		result := importRowResult{RowNumber: rowIndex + 1}
		if strings.TrimSpace(row[fieldNameProductNumber]) == "" {
			result.Error = errorValueMissingProduct
			results = append(results, result)
			continue
		}
		_, insertErr := h.client.InsertMasterRecord(
			context.Request.Context(),
			table.BuildUpdate(row),
			currentSession.DBName,
			currentSession.Role,
			currentSession.Username,
		)
		if insertErr != nil {
			h.logger.Warn(logMessageMasterOperation,
				zap.String(logFieldMasterOperation, masterOperationImport),
				zap.Int("row", rowIndex+1),
				zap.Error(insertErr))
			result.Error = errorValueBackendFailed
			results = append(results, result)
			continue
		}
		result.Inserted = true
		insertedCount++
		results = append(results, result)
	}

	context.JSON(200, gin.H{"insertedCount": insertedCount, "results": results})
}

type masterImageRequest struct {
	RecordID    string `json:"recordId"`
	ImageBase64 string `json:"imageBase64"`
	OldImageURL string `json:"oldImageUrl"`
}

// UploadImage decodes the base64 payload, bounds the image dimensions, and
// forwards the re-encoded JPEG to the upstream image store.
func (h *MasterHandlers) UploadImage(context *gin.Context) {
	var payload masterImageRequest
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(400, gin.H{"error": errorValueInvalidJSON})
		return
	}
	if strings.TrimSpace(payload.RecordID) == "" {
		context.JSON(400, gin.H{"error": errorValueMissingRecordID})
		return
	}
	if strings.TrimSpace(payload.ImageBase64) == "" {
		context.JSON(400, gin.H{"error": errorValueMissingImage})
		return
	}

	normalizedImage, normalizeErr := normalizeImagePayload(payload.ImageBase64)
	if normalizeErr != nil {
		context.JSON(400, gin.H{"error": errorValueInvalidImage})
		return
	}

	currentSession := CurrentSession(context)
	upload := backend.ImageUpload{
		Base64:      normalizedImage,
		RecordID:    payload.RecordID,
		Username:    currentSession.Username,
		DBName:      currentSession.DBName,
		OldImageURL: payload.OldImageURL,
	}
	imageURL, uploadErr := h.client.UploadMasterImage(context.Request.Context(), upload)
	if uploadErr != nil {
		h.failBackend(context, masterOperationImage, uploadErr)
		return
	}
	context.JSON(200, gin.H{"imageURL": imageURL})
}

// History responds with the tenant-wide creation and deletion history.
func (h *MasterHandlers) History(context *gin.Context) {
	currentSession := CurrentSession(context)
	entries, fetchErr := h.client.GetMasterHistory(context.Request.Context(), currentSession.DBName)
	if fetchErr != nil {
		h.failBackend(context, masterOperationHistory, fetchErr)
		return
	}
	context.JSON(200, gin.H{"entries": entries})
}

type recordHistoryRequest struct {
	RecordID string `json:"recordId"`
}

// RecordHistory responds with the per-record change history.
func (h *MasterHandlers) RecordHistory(context *gin.Context) {
	var payload recordHistoryRequest
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(400, gin.H{"error": errorValueInvalidJSON})
		return
	}
	if strings.TrimSpace(payload.RecordID) == "" {
		context.JSON(400, gin.H{"error": errorValueMissingRecordID})
		return
	}

	currentSession := CurrentSession(context)
	entries, fetchErr := h.client.GetRecordHistory(context.Request.Context(), payload.RecordID, currentSession.DBName)
	if fetchErr != nil {
		h.failBackend(context, masterOperationItemHistory, fetchErr)
		return
	}
	context.JSON(200, gin.H{"entries": entries})
}

// normalizeImagePayload decodes a base64 image (optionally carrying a data-URI
// prefix), caps its dimensions, and re-encodes it as base64 JPEG.
func normalizeImagePayload(encoded string) (string, error) {
	trimmed := encoded
	if commaIndex := strings.Index(trimmed, ","); strings.HasPrefix(trimmed, "data:") && commaIndex >= 0 {
		trimmed = trimmed[commaIndex+1:]
	}

	decoded, decodeErr := base64.StdEncoding.DecodeString(trimmed)
	if decodeErr != nil {
		return "", decodeErr
	}

	sourceImage, imageErr := imaging.Decode(bytes.NewReader(decoded), imaging.AutoOrientation(true))
	if imageErr != nil {
		return "", imageErr
	}

	bounds := sourceImage.Bounds()
	if bounds.Dx() > imageMaxDimensionPixels || bounds.Dy() > imageMaxDimensionPixels {
		sourceImage = imaging.Fit(sourceImage, imageMaxDimensionPixels, imageMaxDimensionPixels, imaging.Lanczos)
	}

	var reencoded bytes.Buffer
	if encodeErr := imaging.Encode(&reencoded, sourceImage, imaging.JPEG, imaging.JPEGQuality(imageJPEGQuality)); encodeErr != nil {
		return "", encodeErr
	}
	return base64.StdEncoding.EncodeToString(reencoded.Bytes()), nil
}

func (h *MasterHandlers) readImportRows(source io.Reader) ([]map[string]string, error) {
	return export.ReadCSV(source)
}
