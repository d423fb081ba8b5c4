package handlers

import (
	"net/http"
	"strings"

	"constituency_site/locations"
)

// GetBlocks returns the block names in display order.
func GetBlocks(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"blocks": locations.Blocks(),
	})
}

// GetPanchayats returns the panchayats of ?block=, or the flattened sorted
// list across all blocks when no block is given.
func GetPanchayats(w http.ResponseWriter, r *http.Request) {
	block := r.URL.Query().Get("block")
	if block == "" {
		sendJSON(w, http.StatusOK, map[string]interface{}{
			"panchayats": locations.AllPanchayats(),
		})
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"block":      block,
		"panchayats": locations.Panchayats(block),
	})
}

// GetPanchayatSuggestions returns panchayats whose name starts with ?q=,
// case-insensitively, for the form's autocomplete.
func GetPanchayatSuggestions(w http.ResponseWriter, r *http.Request) {
	searchTerm := r.URL.Query().Get("q")
	if searchTerm == "" {
		sendErrorResponse(w, "Search term is required", http.StatusBadRequest)
		return
	}

	prefix := strings.ToLower(searchTerm)
	suggestions := []string{}
	for _, name := range locations.AllPanchayats() {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			suggestions = append(suggestions, name)
			if len(suggestions) == 10 {
				break
			}
		}
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
	})
}
