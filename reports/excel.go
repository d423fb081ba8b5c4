package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"constituency_site/models"
)

const excelSheetName = "Constituency Data"

var excelColWidths = []float64{25, 22, 22, 20, 15, 35}

// BuildExcel renders the records as a single-sheet .xlsx workbook with a
// styled header row. Empty field values render as a dash, matching the PDF.
func BuildExcel(records []models.Record) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(excelSheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#808080"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for col, name := range ExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("convert coordinates: %w", err)
		}
		if err := f.SetCellValue(excelSheetName, cell, name); err != nil {
			f.Close()
			return nil, fmt.Errorf("set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(excelSheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("set header style: %w", err)
		}

		colName, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(excelSheetName, colName, colName, excelColWidths[col]); err != nil {
			f.Close()
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	for i, rec := range records {
		row := []string{
			orDash(rec.Name),
			orDash(rec.Block),
			orDash(rec.Panchayat),
			orDash(rec.Designation),
			orDash(rec.MobileNumber),
			orDash(rec.Address),
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("convert coordinates: %w", err)
			}
			if err := f.SetCellValue(excelSheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close workbook: %w", err)
	}
	return buf.Bytes(), nil
}
