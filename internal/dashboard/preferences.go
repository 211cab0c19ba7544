// Package dashboard assembles the landing-page overview: per-device daily
// counters with error-rate badges and the user's configured summary widgets.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/freya-systems/freya-dashboard/internal/model"
	"github.com/freya-systems/freya-dashboard/internal/storage"
)

const (
	errorMessageUnknownSummaryType = "dashboard: unknown summary type"
	errorMessageMissingSourceField = "dashboard: widget missing source field"

	logMessagePreferencesUnreadable = "widget_preferences_unreadable"
	logFieldPreferenceUsername      = "username"
	logFieldPreferenceDatabase      = "db_name"
)

var (
	// ErrUnknownSummaryType indicates a widget referenced a summary type the dashboard cannot compute.
	ErrUnknownSummaryType = errors.New(errorMessageUnknownSummaryType)
	// ErrMissingSourceField indicates a widget omitted the log field it summarizes.
	ErrMissingSourceField = errors.New(errorMessageMissingSourceField)
)

// PreferenceService loads and stores per-user dashboard widget preferences.
type PreferenceService struct {
	store  *storage.WidgetPreferenceStore
	logger *zap.Logger
}

// NewPreferenceService builds a preference service over the given store.
func NewPreferenceService(store *storage.WidgetPreferenceStore, logger *zap.Logger) *PreferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferenceService{store: store, logger: logger}
}

// Load returns the user's stored preferences. Missing or unreadable payloads
// yield the empty preference set so the dashboard always renders.
func (service *PreferenceService) Load(ctx context.Context, dbName string, username string) (model.DashboardPreferences, error) {
	payload, loadErr := service.store.Load(ctx, dbName, username)
	if errors.Is(loadErr, storage.ErrPreferencesNotFound) {
		return model.EmptyDashboardPreferences(), nil
	}
	if loadErr != nil {
		return model.DashboardPreferences{}, loadErr
	}

	var preferences model.DashboardPreferences
	if unmarshalErr := json.Unmarshal([]byte(payload), &preferences); unmarshalErr != nil {
		service.logger.Warn(logMessagePreferencesUnreadable,
			zap.String(logFieldPreferenceDatabase, dbName),
			zap.String(logFieldPreferenceUsername, username),
			zap.Error(unmarshalErr))
		return model.EmptyDashboardPreferences(), nil
	}
	if preferences.SelectedWidgets == nil {
		preferences.SelectedWidgets = []model.WidgetConfig{}
	}
	return preferences, nil
}

// Save validates and persists the user's preferences.
func (service *PreferenceService) Save(ctx context.Context, dbName string, username string, preferences model.DashboardPreferences) error {
	for _, widget := range preferences.SelectedWidgets {
		if widget.SourceField == "" {
			return fmt.Errorf("%w: %s", ErrMissingSourceField, widget.WidgetID)
		}
		if !model.ValidSummaryType(widget.SummaryType) {
			return fmt.Errorf("%w: %s", ErrUnknownSummaryType, widget.SummaryType)
		}
	}

	payload, marshalErr := json.Marshal(preferences)
	if marshalErr != nil {
		return marshalErr
	}
	return service.store.Save(ctx, dbName, username, string(payload))
}
