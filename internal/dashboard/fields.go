package dashboard

import (
	"context"
	"strconv"
	"strings"

	"github.com/freya-systems/freya-dashboard/internal/backend"
	"github.com/freya-systems/freya-dashboard/internal/model"
	"github.com/freya-systems/freya-dashboard/internal/table"
)

const (
	// FieldKindNumeric marks fields whose sampled values all parse as numbers.
	FieldKindNumeric = "numeric"
	// FieldKindCategorical marks fields treated as discrete labels.
	FieldKindCategorical = "categorical"

	fieldSampleSize = 100
)

// FieldDescriptor describes one log field available for widget configuration.
type FieldDescriptor struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// FieldService discovers the log fields a tenant's widgets can summarize.
type FieldService struct {
	client *backend.Client
}

// NewFieldService builds a field service over the backend client.
func NewFieldService(client *backend.Client) *FieldService {
	return &FieldService{client: client}
}

// DiscoverFields samples recent submitted logs and classifies each discovered
// field as numeric or categorical. An empty collection yields no fields.
func (service *FieldService) DiscoverFields(ctx context.Context, dbName string) ([]FieldDescriptor, error) {
	query := backend.LogQuery{
		DBName: dbName,
		Sort:   table.DefaultLogSort().BackendSort(),
		Limit:  fieldSampleSize,
	}
	sample, _, fetchErr := service.client.FetchSubmittedLogPage(ctx, query)
	if fetchErr != nil {
		return nil, fetchErr
	}

	columns := table.DiscoverColumns(sample, table.LogExcludedKeys, table.LogPreferredOrder)

	descriptors := make([]FieldDescriptor, 0, len(columns))
	for _, columnName := range columns {
		descriptor := FieldDescriptor{Name: columnName, Kind: FieldKindCategorical}
		if fieldIsNumeric(sample, columnName) {
			descriptor.Kind = FieldKindNumeric
		}
		descriptors = append(descriptors, descriptor)
	}
	return descriptors, nil
}

func fieldIsNumeric(sample []model.Record, fieldName string) bool {
	sawValue := false
	for _, row := range sample {
		displayValue := strings.TrimSpace(row.DisplayValue(fieldName))
		if displayValue == "" {
			continue
		}
		if _, parseErr := strconv.ParseFloat(displayValue, 64); parseErr != nil {
			return false
		}
		sawValue = true
	}
	return sawValue
}
