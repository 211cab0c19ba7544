// Package export renders table snapshots as downloadable CSV and PDF
// documents. CSV output is encoded as Shift-JIS so files open correctly in
// Japanese spreadsheet tools.
package export

import (
	"encoding/csv"
	"errors"
	"io"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/freya-systems/freya-dashboard/internal/model"
)

const (
	errorMessageNoColumns = "export: no columns selected"

	// MIMETypeCSV is the content type served for CSV downloads.
	MIMETypeCSV = "text/csv; charset=Shift_JIS"
)

// ErrNoColumns indicates an export was requested without any visible columns.
var ErrNoColumns = errors.New(errorMessageNoColumns)

// WriteCSV writes the given rows as a Shift-JIS encoded CSV document with a
// header row. Row values are rendered the same way the table displays them.
func WriteCSV(destination io.Writer, columns []string, rows []model.Record) error {
	if len(columns) == 0 {
		return ErrNoColumns
	}

	encodingWriter := transform.NewWriter(destination, japanese.ShiftJIS.NewEncoder())
	csvWriter := csv.NewWriter(encodingWriter)

	if writeErr := csvWriter.Write(columns); writeErr != nil {
		return writeErr
	}

	rowValues := make([]string, len(columns))
	for _, row := range rows {
		for columnIndex, columnName := range columns {
			rowValues[columnIndex] = row.DisplayValue(columnName)
		}
		if writeErr := csvWriter.Write(rowValues); writeErr != nil {
			return writeErr
		}
	}

	csvWriter.Flush()
	if flushErr := csvWriter.Error(); flushErr != nil {
		return flushErr
	}
	return encodingWriter.Close()
}

// ReadCSV parses an uploaded CSV document into row maps keyed by the header
// columns. Shift-JIS input is transparently decoded; plain UTF-8 also works
// because the decoder passes ASCII through unchanged.
func ReadCSV(source io.Reader) ([]map[string]string, error) {
	decodingReader := transform.NewReader(source, japanese.ShiftJIS.NewDecoder())
	csvReader := csv.NewReader(decodingReader)
	csvReader.TrimLeadingSpace = true
	// Exported files get edited by hand; rows narrower or wider than the
	// header must still parse. Missing cells stay absent from the row map.
	csvReader.FieldsPerRecord = -1

	header, headerErr := csvReader.Read()
	if headerErr != nil {
		return nil, headerErr
	}

	var rows []map[string]string
	for {
		recordValues, readErr := csvReader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, readErr
		}
		row := make(map[string]string, len(header))
		for columnIndex, columnName := range header {
			if columnIndex < len(recordValues) {
				row[columnName] = recordValues[columnIndex]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
