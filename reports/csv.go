// Package reports renders query results into downloadable documents. The
// renderers reproduce the record slice they are given: no filtering, no
// re-sorting. Ordering is the caller's job.
package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"constituency_site/models"
)

// ExportHeader is the column order shared by every export format.
var ExportHeader = []string{"Name", "Block", "Panchayat", "Designation", "Mobile", "Address"}

// WriteCSV writes a UTF-8, RFC 4180 delimited table: one header row, one
// row per record. Field values are written verbatim so the file round-trips
// through any standard CSV parser.
func WriteCSV(w io.Writer, records []models.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Name,
			rec.Block,
			rec.Panchayat,
			rec.Designation,
			rec.MobileNumber,
			rec.Address,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// BuildCSV renders the records into an in-memory CSV file.
func BuildCSV(records []models.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
