package reports

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"constituency_site/models"
)

// Landscape letter is 792x612pt. With 20pt side margins the table has
// 752pt to fill, and the column budget must sum to exactly that.
const (
	pdfSideMargin   = 20.0
	pdfTopMargin    = 20.0
	pdfBottomMargin = 20.0
	pdfUsableWidth  = 752.0

	pdfLineHeight = 12.0
	pdfCellPadX   = 8.0
	pdfCellPadY   = 8.0
)

var pdfColWidths = []float64{130, 130, 130, 122, 90, 150}

// BuildPDF renders the records as a paginated landscape-letter table with
// a repeated header row, zebra striping, and word-wrapped cells. Empty
// field values render as a dash.
func BuildPDF(records []models.Record, title string) ([]byte, error) {
	pdf := gofpdf.New("L", "pt", "Letter", "")
	pdf.SetTitle(title, true)
	pdf.SetMargins(pdfSideMargin, pdfTopMargin, pdfSideMargin)
	pdf.SetAutoPageBreak(false, 0)

	_, pageHeight := pdf.GetPageSize()
	maxY := pageHeight - pdfBottomMargin

	pdf.AddPage()
	writePDFTitle(pdf, title)
	writePDFHeader(pdf)

	for i, rec := range records {
		cells := []string{
			orDash(rec.Name),
			orDash(rec.Block),
			orDash(rec.Panchayat),
			orDash(rec.Designation),
			orDash(rec.MobileNumber),
			orDash(rec.Address),
		}

		pdf.SetFont("Helvetica", "", 10)
		lines, rowHeight := wrapRow(pdf, cells)

		if pdf.GetY()+rowHeight > maxY {
			pdf.AddPage()
			writePDFHeader(pdf)
			pdf.SetFont("Helvetica", "", 10)
		}

		shaded := i%2 == 1
		drawPDFRow(pdf, lines, rowHeight, shaded)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writePDFTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(pdfUsableWidth, 24, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)
}

func writePDFHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(245, 245, 245)
	pdf.SetDrawColor(0, 0, 0)

	headerHeight := pdfLineHeight + 2*pdfCellPadY
	x := pdfSideMargin
	y := pdf.GetY()
	for i, name := range ExportHeader {
		pdf.Rect(x, y, pdfColWidths[i], headerHeight, "FD")
		pdf.SetXY(x+pdfCellPadX, y+pdfCellPadY)
		pdf.CellFormat(pdfColWidths[i]-2*pdfCellPadX, pdfLineHeight, name, "", 0, "L", false, 0, "")
		x += pdfColWidths[i]
	}
	pdf.SetXY(pdfSideMargin, y+headerHeight)
	pdf.SetTextColor(0, 0, 0)
}

// wrapRow splits each cell into lines that fit its column and returns the
// row height needed for the tallest cell.
func wrapRow(pdf *gofpdf.Fpdf, cells []string) ([][]string, float64) {
	lines := make([][]string, len(cells))
	maxLines := 1
	for i, cell := range cells {
		split := pdf.SplitText(cell, pdfColWidths[i]-2*pdfCellPadX)
		if len(split) == 0 {
			split = []string{""}
		}
		lines[i] = split
		if len(split) > maxLines {
			maxLines = len(split)
		}
	}
	return lines, float64(maxLines)*pdfLineHeight + 2*pdfCellPadY
}

func drawPDFRow(pdf *gofpdf.Fpdf, lines [][]string, rowHeight float64, shaded bool) {
	x := pdfSideMargin
	y := pdf.GetY()
	for i, cellLines := range lines {
		if shaded {
			pdf.SetFillColor(235, 235, 235)
			pdf.Rect(x, y, pdfColWidths[i], rowHeight, "FD")
		} else {
			pdf.Rect(x, y, pdfColWidths[i], rowHeight, "D")
		}
		for j, line := range cellLines {
			pdf.SetXY(x+pdfCellPadX, y+pdfCellPadY+float64(j)*pdfLineHeight)
			pdf.CellFormat(pdfColWidths[i]-2*pdfCellPadX, pdfLineHeight, line, "", 0, "L", false, 0, "")
		}
		x += pdfColWidths[i]
	}
	pdf.SetXY(pdfSideMargin, y+rowHeight)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
