package export

import (
	"io"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/freya-systems/freya-dashboard/internal/model"
)

const (
	// MIMETypePDF is the content type served for PDF downloads.
	MIMETypePDF = "application/pdf"

	pdfOrientationPortrait  = "P"
	pdfOrientationLandscape = "L"
	pdfUnitMillimeter       = "mm"
	pdfPageSizeA4           = "A4"
	pdfFontFamilyJapanese   = "notosans"
	pdfFontFamilyFallback   = "Helvetica"
	pdfFontStyleRegular     = ""
	pdfTitleFontSize        = 14.0
	pdfHeaderFontSize       = 9.0
	pdfBodyFontSize         = 8.0
	pdfCellHeight           = 7.0
	pdfPageMargin           = 10.0
	pdfTitleSpacing         = 4.0

	landscapeColumnThreshold = 5

	logMessagePDFFontUnavailable = "pdf_font_unavailable"
	logFieldFontPath             = "font_path"
)

// PDFWriter renders table snapshots as PDF documents. A Unicode font file is
// required for Japanese text; without one the writer falls back to a built-in
// Latin font and non-ASCII characters will not render.
type PDFWriter struct {
	fontPath string
	logger   *zap.Logger
}

// NewPDFWriter builds a PDF writer. The font path may be empty.
func NewPDFWriter(fontPath string, logger *zap.Logger) *PDFWriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDFWriter{fontPath: fontPath, logger: logger}
}

// WritePDF writes the given rows as a paginated PDF table with a title line
// and repeated header row. Tables wider than five columns are rendered in
// landscape orientation.
func (writer *PDFWriter) WritePDF(destination io.Writer, title string, columns []string, rows []model.Record) error {
	if len(columns) == 0 {
		return ErrNoColumns
	}

	orientation := pdfOrientationPortrait
	if len(columns) > landscapeColumnThreshold {
		orientation = pdfOrientationLandscape
	}

	document := fpdf.New(orientation, pdfUnitMillimeter, pdfPageSizeA4, "")
	document.SetMargins(pdfPageMargin, pdfPageMargin, pdfPageMargin)
	document.SetAutoPageBreak(true, pdfPageMargin)

	fontFamily := writer.configureFont(document)

	pageWidth, _ := document.GetPageSize()
	columnWidth := (pageWidth - 2*pdfPageMargin) / float64(len(columns))

	writeHeaderRow := func() {
		document.SetFont(fontFamily, pdfFontStyleRegular, pdfHeaderFontSize)
		document.SetFillColor(230, 230, 230)
		for _, columnName := range columns {
			document.CellFormat(columnWidth, pdfCellHeight, columnName, "1", 0, "C", true, 0, "")
		}
		document.Ln(-1)
		document.SetFont(fontFamily, pdfFontStyleRegular, pdfBodyFontSize)
	}

	document.SetHeaderFunc(func() {
		document.SetFont(fontFamily, pdfFontStyleRegular, pdfTitleFontSize)
		document.CellFormat(0, pdfCellHeight, title, "", 1, "L", false, 0, "")
		document.Ln(pdfTitleSpacing)
		writeHeaderRow()
	})

	document.AddPage()

	for _, row := range rows {
		for _, columnName := range columns {
			document.CellFormat(columnWidth, pdfCellHeight, row.DisplayValue(columnName), "1", 0, "L", false, 0, "")
		}
		document.Ln(-1)
	}

	return document.Output(destination)
}

func (writer *PDFWriter) configureFont(document *fpdf.Fpdf) string {
	if writer.fontPath == "" {
		return pdfFontFamilyFallback
	}
	document.AddUTF8Font(pdfFontFamilyJapanese, pdfFontStyleRegular, writer.fontPath)
	if document.Err() {
		writer.logger.Warn(logMessagePDFFontUnavailable,
			zap.String(logFieldFontPath, writer.fontPath),
			zap.String("error", document.Error().Error()))
		document.ClearError()
		return pdfFontFamilyFallback
	}
	return pdfFontFamilyJapanese
}
