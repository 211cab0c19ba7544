package model

import "fmt"

const (
	// RecordKeyID is the backend-assigned identifier key on dynamic records.
	RecordKeyID = "_id"
	// RecordKeyImageURL is the stored product image location key.
	RecordKeyImageURL = "imageURL"
	// RecordKeyChangeHistory is the embedded change-history blob key.
	RecordKeyChangeHistory = "changeHistory"

	extendedJSONObjectIDKey = "$oid"
)

// Record is a schema-less backend document mapping field names to values. The
// field set is discovered at render time from fetched rows, so the backend can
// grow columns without a client deploy.
type Record map[string]any

// ID extracts the backend identifier, unwrapping the extended-JSON
// {"$oid": "..."} form produced by some backend routes.
func (record Record) ID() string {
	switch identifier := record[RecordKeyID].(type) {
	case string:
		return identifier
	case map[string]any:
		if wrapped, ok := identifier[extendedJSONObjectIDKey].(string); ok {
			return wrapped
		}
	}
	return ""
}

// ImageURL returns the stored image location or an empty string.
func (record Record) ImageURL() string {
	imageURL, _ := record[RecordKeyImageURL].(string)
	return imageURL
}

// DisplayValue renders the value for fieldName as a display string. Missing
// fields and nil values render as the empty string.
func (record Record) DisplayValue(fieldName string) string {
	value, present := record[fieldName]
	if !present || value == nil {
		return ""
	}
	if text, ok := value.(string); ok {
		return text
	}
	return fmt.Sprintf("%v", value)
}
