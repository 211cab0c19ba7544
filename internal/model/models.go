package model

import "time"

// WidgetPreferenceRecord stores one user's dashboard preferences locally,
// keyed by tenant database and username. Preferences never travel to the
// upstream backend except as query parameters on widget data fetches.
type WidgetPreferenceRecord struct {
	ID        string    `gorm:"primaryKey;size:36"`
	DBName    string    `gorm:"uniqueIndex:idx_widget_preference_scope;not null;size:200"`
	Username  string    `gorm:"uniqueIndex:idx_widget_preference_scope;not null;size:200"`
	Payload   string    `gorm:"not null;size:16000"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// User is a tenant user record as returned by the upstream backend. Passwords
// are never echoed back; resets go through a separate write-only operation.
type User struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

// Change records one field-level edit inside a master record update.
type Change struct {
	Field    string `json:"field"`
	OldValue string `json:"oldValue"`
	NewValue string `json:"newValue"`
}

// HistoryEntry is one append-only audit event attached to a master record or
// to the tenant-wide creation/deletion log.
type HistoryEntry struct {
	Timestamp   string   `json:"timestamp"`
	ChangedBy   string   `json:"changedBy,omitempty"`
	CreatedBy   string   `json:"createdBy,omitempty"`
	DeletedBy   string   `json:"deletedBy,omitempty"`
	Action      string   `json:"action,omitempty"`
	Description string   `json:"description,omitempty"`
	Changes     []Change `json:"changes,omitempty"`
	RecordData  Record   `json:"recordData,omitempty"`
}

// Device is one registered production device for a tenant.
type Device struct {
	UniqueID string `json:"uniqueId"`
	Name     string `json:"name"`
	PCName   string `json:"pcName"`
}

// Title prefers the operator-facing PC name over the raw device name.
func (device Device) Title() string {
	if device.PCName != "" {
		return device.PCName
	}
	return device.Name
}
