package handlers

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"constituency_site/reports"
	"constituency_site/store"
)

const exportTitle = "Mohiuddin Nagar Constituency (137)"

// filterFromQuery reads the same filter fields the search endpoint takes
// from its body, so the download buttons can reuse the current view filter.
func filterFromQuery(r *http.Request) store.Filter {
	q := r.URL.Query()
	return store.Filter{
		Block:       q.Get("block"),
		Panchayat:   q.Get("panchayat"),
		Name:        q.Get("name"),
		Designation: q.Get("designation"),
	}
}

// ExportCSV streams the filtered records as a CSV attachment.
func ExportCSV(w http.ResponseWriter, r *http.Request) {
	records, err := queryWithCache(r.Context(), filterFromQuery(r))
	if err != nil {
		logger.Error("csv export query failed", zap.Error(err))
		sendStoreError(w, err)
		return
	}

	data, err := reports.BuildCSV(records)
	if err != nil {
		logger.Error("csv export render failed", zap.Error(err))
		sendErrorResponse(w, "Error generating CSV", http.StatusInternalServerError)
		return
	}

	sendAttachment(w, data, "text/csv; charset=utf-8", "constituency_data.csv")
}

// ExportPDF streams the filtered records as a printable PDF attachment.
func ExportPDF(w http.ResponseWriter, r *http.Request) {
	records, err := queryWithCache(r.Context(), filterFromQuery(r))
	if err != nil {
		logger.Error("pdf export query failed", zap.Error(err))
		sendStoreError(w, err)
		return
	}

	data, err := reports.BuildPDF(records, exportTitle)
	if err != nil {
		logger.Error("pdf export render failed", zap.Error(err))
		sendErrorResponse(w, "Error generating PDF", http.StatusInternalServerError)
		return
	}

	sendAttachment(w, data, "application/pdf", "constituency_data.pdf")
}

// ExportExcel streams the filtered records as an .xlsx attachment.
func ExportExcel(w http.ResponseWriter, r *http.Request) {
	records, err := queryWithCache(r.Context(), filterFromQuery(r))
	if err != nil {
		logger.Error("excel export query failed", zap.Error(err))
		sendStoreError(w, err)
		return
	}

	data, err := reports.BuildExcel(records)
	if err != nil {
		logger.Error("excel export render failed", zap.Error(err))
		sendErrorResponse(w, "Error generating Excel file", http.StatusInternalServerError)
		return
	}

	sendAttachment(w, data,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"constituency_data.xlsx")
}

func sendAttachment(w http.ResponseWriter, data []byte, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.Write(data)
}
