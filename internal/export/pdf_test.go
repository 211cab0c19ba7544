package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/freya-systems/freya-dashboard/internal/model"
)

func TestWritePDFRejectsZeroColumns(t *testing.T) {
	writer := NewPDFWriter("", zap.NewNop())
	var buffer bytes.Buffer

	writeErr := writer.WritePDF(&buffer, "logs", nil, []model.Record{{"品番": "A-100"}})

	require.ErrorIs(t, writeErr, ErrNoColumns)
	require.Zero(t, buffer.Len())
}

func TestWritePDFProducesDocumentWithFallbackFont(t *testing.T) {
	writer := NewPDFWriter("", zap.NewNop())
	var buffer bytes.Buffer
	rows := []model.Record{
		{"id": "1", "Action": "scan"},
		{"id": "2", "Action": "print"},
	}

	writeErr := writer.WritePDF(&buffer, "logs", []string{"id", "Action"}, rows)

	require.NoError(t, writeErr)
	require.True(t, bytes.HasPrefix(buffer.Bytes(), []byte("%PDF")))
}

func TestWritePDFMissingFontFileDegradesToFallback(t *testing.T) {
	writer := NewPDFWriter("/nonexistent/font.ttf", zap.NewNop())
	var buffer bytes.Buffer

	writeErr := writer.WritePDF(&buffer, "logs", []string{"id"}, []model.Record{{"id": "1"}})

	require.NoError(t, writeErr)
	require.True(t, bytes.HasPrefix(buffer.Bytes(), []byte("%PDF")))
}

func TestWritePDFWideTablesUseLandscape(t *testing.T) {
	writer := NewPDFWriter("", zap.NewNop())
	columns := []string{"a", "b", "c", "d", "e", "f"}

	var wide bytes.Buffer
	require.NoError(t, writer.WritePDF(&wide, "logs", columns, nil))

	var narrow bytes.Buffer
	require.NoError(t, writer.WritePDF(&narrow, "logs", columns[:3], nil))

	// A4 landscape swaps the MediaBox dimensions.
	require.Contains(t, wide.String(), "841.89 595.28")
	require.Contains(t, narrow.String(), "595.28 841.89")
}
