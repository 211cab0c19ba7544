package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/freya-systems/freya-dashboard/internal/backend"
	"github.com/freya-systems/freya-dashboard/internal/export"
	"github.com/freya-systems/freya-dashboard/internal/model"
	"github.com/freya-systems/freya-dashboard/internal/table"
)

const (
	errorValueNoColumns     = "no_columns"
	errorValueUnknownFormat = "unknown_format"
	errorValueExportFailed  = "export_failed"

	exportFormatCSV = "csv"
	exportFormatPDF = "pdf"

	exportFileTimeLayout = "20060102-150405"

	logMessageLogsOperation = "logs_operation_failed"
	logFieldLogsOperation   = "operation"
	logsOperationList       = "list"
	logsOperationActions    = "actions"
	logsOperationExport     = "export"
)

// LogHandlers serves the submitted-logs page operations.
type LogHandlers struct {
	client    *backend.Client
	pdfWriter *export.PDFWriter
	logger    *zap.Logger
}

// NewLogHandlers builds the submitted-log handler set.
func NewLogHandlers(client *backend.Client, pdfWriter *export.PDFWriter, logger *zap.Logger) *LogHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogHandlers{client: client, pdfWriter: pdfWriter, logger: logger}
}

func (h *LogHandlers) failBackend(context *gin.Context, operation string, callErr error) {
	h.logger.Warn(logMessageLogsOperation,
		zap.String(logFieldLogsOperation, operation),
		zap.Error(callErr))
	context.JSON(502, gin.H{"error": errorValueBackendFailed})
}

type logListRequest struct {
	Filters  table.LogFilters `json:"filters"`
	Sort     *table.SortState `json:"sort"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

func (request logListRequest) sortState() table.SortState {
	if request.Sort == nil || strings.TrimSpace(request.Sort.Column) == "" {
		return table.DefaultLogSort()
	}
	return *request.Sort
}

// List responds with one page of submitted logs. The requested page is
// clamped to the range of available pages before rows are fetched.
func (h *LogHandlers) List(context *gin.Context) {
	var payload logListRequest
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(400, gin.H{"error": errorValueInvalidJSON})
		return
	}

	currentSession := CurrentSession(context)
	pagination := table.Pagination{Page: payload.Page, PageSize: payload.PageSize}.Normalized()
	sortState := payload.sortState()

	query := backend.LogQuery{
		DBName:  currentSession.DBName,
		Filters: payload.Filters.BackendFilters(),
		Sort:    sortState.BackendSort(),
		Limit:   pagination.PageSize,
		Skip:    pagination.Skip(),
	}
	rows, totalCount, fetchErr := h.client.FetchSubmittedLogPage(context.Request.Context(), query)
	if fetchErr != nil {
		h.failBackend(context, logsOperationList, fetchErr)
		return
	}

	clamped := pagination.Clamp(totalCount)
	if clamped.Page != pagination.Page {
		query.Skip = clamped.Skip()
		rows, totalCount, fetchErr = h.client.FetchSubmittedLogPage(context.Request.Context(), query)
		if fetchErr != nil {
			h.failBackend(context, logsOperationList, fetchErr)
			return
		}
		pagination = clamped
	}

	columns := table.DiscoverColumns(rows, table.LogExcludedKeys, table.LogPreferredOrder)
	context.JSON(200, gin.H{
		"columns":    columns,
		"rows":       rows,
		"totalCount": totalCount,
		"page":       pagination.Page,
		"totalPages": pagination.TotalPages(totalCount),
	})
}

// Actions responds with the distinct Action values present in the logs.
func (h *LogHandlers) Actions(context *gin.Context) {
	currentSession := CurrentSession(context)
	actions, fetchErr := h.client.DistinctLogActions(context.Request.Context(), currentSession.DBName)
	if fetchErr != nil {
		h.failBackend(context, logsOperationActions, fetchErr)
		return
	}
	context.JSON(200, gin.H{"actions": actions})
}

type logExportRequest struct {
	Format      string           `json:"format"`
	Columns     []string         `json:"columns"`
	SelectedIDs []string         `json:"selectedIds"`
	Filters     table.LogFilters `json:"filters"`
	Sort        *table.SortState `json:"sort"`
}

// Export streams the matching logs as a CSV or PDF download. Selected ids
// take precedence over filters; zero chosen columns is rejected before any
// upstream fetch.
func (h *LogHandlers) Export(context *gin.Context) {
	var payload logExportRequest
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(400, gin.H{"error": errorValueInvalidJSON})
		return
	}
	if len(payload.Columns) == 0 {
		context.JSON(400, gin.H{"error": errorValueNoColumns})
		return
	}
	if payload.Format != exportFormatCSV && payload.Format != exportFormatPDF {
		context.JSON(400, gin.H{"error": errorValueUnknownFormat})
		return
	}

	currentSession := CurrentSession(context)
	sortState := table.DefaultLogSort()
	if payload.Sort != nil && strings.TrimSpace(payload.Sort.Column) != "" {
		sortState = *payload.Sort
	}

	query := backend.LogQuery{
		DBName: currentSession.DBName,
		Sort:   sortState.BackendSort(),
	}
	if len(payload.SelectedIDs) > 0 {
		query.IDsToFetch = payload.SelectedIDs
	} else {
		query.Filters = payload.Filters.BackendFilters()
	}

	rows, fetchErr := h.client.FetchSubmittedLogsForExport(context.Request.Context(), query)
	if fetchErr != nil {
		h.failBackend(context, logsOperationExport, fetchErr)
		return
	}

	fileStem := fmt.Sprintf("submitted-logs-%s", time.Now().Format(exportFileTimeLayout))
	switch payload.Format {
	case exportFormatCSV:
		h.exportCSV(context, fileStem, payload.Columns, rows)
	case exportFormatPDF:
		h.exportPDF(context, fileStem, payload.Columns, rows)
	}
}

func (h *LogHandlers) exportCSV(context *gin.Context, fileStem string, columns []string, rows []model.Record) {
	var buffer bytes.Buffer
	if writeErr := export.WriteCSV(&buffer, columns, rows); writeErr != nil {
		h.logger.Warn(logMessageLogsOperation,
			zap.String(logFieldLogsOperation, logsOperationExport),
			zap.Error(writeErr))
		context.JSON(500, gin.H{"error": errorValueExportFailed})
		return
	}
	context.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", fileStem))
	context.Data(http.StatusOK, export.MIMETypeCSV, buffer.Bytes())
}

func (h *LogHandlers) exportPDF(context *gin.Context, fileStem string, columns []string, rows []model.Record) {
	var buffer bytes.Buffer
	if writeErr := h.pdfWriter.WritePDF(&buffer, fileStem, columns, rows); writeErr != nil {
		h.logger.Warn(logMessageLogsOperation,
			zap.String(logFieldLogsOperation, logsOperationExport),
			zap.Error(writeErr))
		context.JSON(500, gin.H{"error": errorValueExportFailed})
		return
	}
	context.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", fileStem))
	context.Data(http.StatusOK, export.MIMETypePDF, buffer.Bytes())
}
