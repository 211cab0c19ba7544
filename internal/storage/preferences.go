package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/freya-systems/freya-dashboard/internal/model"
)

// ErrPreferencesNotFound indicates no stored widget preferences exist for the scope.
var ErrPreferencesNotFound = errors.New("storage: widget preferences not found")

// WidgetPreferenceStore persists per-user dashboard widget preferences.
type WidgetPreferenceStore struct {
	database *gorm.DB
}

// NewWidgetPreferenceStore builds a preference store backed by the primary database.
func NewWidgetPreferenceStore(database *gorm.DB) *WidgetPreferenceStore {
	return &WidgetPreferenceStore{database: database}
}

// Load returns the stored preference payload for one tenant user.
func (store *WidgetPreferenceStore) Load(ctx context.Context, dbName string, username string) (string, error) {
	var record model.WidgetPreferenceRecord
	err := store.database.WithContext(ctx).
		Where("db_name = ? AND username = ?", dbName, username).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrPreferencesNotFound
	}
	if err != nil {
		return "", err
	}
	return record.Payload, nil
}

// Save upserts the preference payload for one tenant user.
func (store *WidgetPreferenceStore) Save(ctx context.Context, dbName string, username string, payload string) error {
	record := model.WidgetPreferenceRecord{
		ID:       NewID(),
		DBName:   dbName,
		Username: username,
		Payload:  payload,
	}
	return store.database.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "db_name"}, {Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&record).Error
}

// Delete removes the stored preferences for one tenant user.
func (store *WidgetPreferenceStore) Delete(ctx context.Context, dbName string, username string) error {
	return store.database.WithContext(ctx).
		Where("db_name = ? AND username = ?", dbName, username).
		Delete(&model.WidgetPreferenceRecord{}).Error
}
