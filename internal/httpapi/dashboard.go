package httpapi

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/freya-systems/freya-dashboard/internal/backend"
	"github.com/freya-systems/freya-dashboard/internal/dashboard"
	"github.com/freya-systems/freya-dashboard/internal/i18n"
	"github.com/freya-systems/freya-dashboard/internal/model"
)

const (
	errorValueInvalidPreferences = "invalid_preferences"
	errorValuePreferencesFailed  = "preferences_failed"

	translationKeyContextFieldsMissing = "contextFieldsMissing"

	logMessageDashboardOperation = "dashboard_operation_failed"
	logFieldDashboardOperation   = "operation"
	dashboardOperationLoad       = "load_preferences"
	dashboardOperationSave       = "save_preferences"
	dashboardOperationFields     = "fields"
	dashboardOperationOverview   = "overview"
)

// DashboardHandlers serves the landing-page widget operations.
type DashboardHandlers struct {
	client      *backend.Client
	preferences *dashboard.PreferenceService
	overview    *dashboard.OverviewService
	fields      *dashboard.FieldService
	sessions    *SessionManager
	logger      *zap.Logger
}

// NewDashboardHandlers builds the dashboard handler set.
func NewDashboardHandlers(
	client *backend.Client,
	preferences *dashboard.PreferenceService,
	overview *dashboard.OverviewService,
	fields *dashboard.FieldService,
	sessions *SessionManager,
	logger *zap.Logger,
) *DashboardHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandlers{
		client:      client,
		preferences: preferences,
		overview:    overview,
		fields:      fields,
		sessions:    sessions,
		logger:      logger,
	}
}

// GetPreferences responds with the session user's stored widget preferences.
// Missing or unreadable stored payloads yield the empty preference set.
func (h *DashboardHandlers) GetPreferences(context *gin.Context) {
	currentSession := CurrentSession(context)
	preferences, loadErr := h.preferences.Load(context.Request.Context(), currentSession.DBName, currentSession.Username)
	if loadErr != nil {
		h.logger.Warn(logMessageDashboardOperation,
			zap.String(logFieldDashboardOperation, dashboardOperationLoad),
			zap.Error(loadErr))
		context.JSON(500, gin.H{"error": errorValuePreferencesFailed})
		return
	}
	context.JSON(200, preferences)
}

// PutPreferences validates and stores the session user's widget preferences.
func (h *DashboardHandlers) PutPreferences(context *gin.Context) {
	var payload model.DashboardPreferences
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(400, gin.H{"error": errorValueInvalidJSON})
		return
	}

	currentSession := CurrentSession(context)
	saveErr := h.preferences.Save(context.Request.Context(), currentSession.DBName, currentSession.Username, payload)
	if errors.Is(saveErr, dashboard.ErrUnknownSummaryType) || errors.Is(saveErr, dashboard.ErrMissingSourceField) {
		context.JSON(400, gin.H{"error": errorValueInvalidPreferences})
		return
	}
	if saveErr != nil {
		h.logger.Warn(logMessageDashboardOperation,
			zap.String(logFieldDashboardOperation, dashboardOperationSave),
			zap.Error(saveErr))
		context.JSON(500, gin.H{"error": errorValuePreferencesFailed})
		return
	}
	context.JSON(200, payload)
}

// Fields responds with the log fields widgets can summarize, classified as
// numeric or categorical from a sample of recent rows.
func (h *DashboardHandlers) Fields(context *gin.Context) {
	currentSession := CurrentSession(context)
	descriptors, discoverErr := h.fields.DiscoverFields(context.Request.Context(), currentSession.DBName)
	if discoverErr != nil {
		h.logger.Warn(logMessageDashboardOperation,
			zap.String(logFieldDashboardOperation, dashboardOperationFields),
			zap.Error(discoverErr))
		context.JSON(502, gin.H{"error": errorValueBackendFailed})
		return
	}
	context.JSON(200, gin.H{"fields": descriptors})
}

// Overview assembles the landing page payload. When widgets are configured
// but their context fields are not, the response short-circuits with an
// instructional message and no upstream aggregation is issued.
func (h *DashboardHandlers) Overview(context *gin.Context) {
	currentSession := CurrentSession(context)
	translator := i18n.NewTranslator(h.sessions.Locale(context))

	preferences, loadErr := h.preferences.Load(context.Request.Context(), currentSession.DBName, currentSession.Username)
	if loadErr != nil {
		h.logger.Warn(logMessageDashboardOperation,
			zap.String(logFieldDashboardOperation, dashboardOperationOverview),
			zap.Error(loadErr))
		context.JSON(500, gin.H{"error": errorValuePreferencesFailed})
		return
	}

	if len(preferences.SelectedWidgets) > 0 && !preferences.ContextFields.Configured() {
		context.JSON(200, gin.H{
			"date":                  h.overview.CurrentDate(),
			"devices":               []dashboard.DeviceView{},
			"contextFieldsRequired": true,
			"message":               translator.T(translationKeyContextFieldsMissing),
		})
		return
	}

	devices, devicesErr := h.client.MasterUserDevices(context.Request.Context(), currentSession.DBName)
	if devicesErr != nil {
		h.logger.Warn(logMessageDashboardOperation,
			zap.String(logFieldDashboardOperation, dashboardOperationOverview),
			zap.Error(devicesErr))
		context.JSON(502, gin.H{"error": errorValueBackendFailed})
		return
	}

	overview := h.overview.Build(context.Request.Context(), currentSession, devices, preferences)
	context.JSON(200, overview)
}
