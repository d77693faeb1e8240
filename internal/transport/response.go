package transport

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// Page is the envelope for every paginated list endpoint.
type Page struct {
	Items      interface{} `json:"items"`
	Page       int64       `json:"page"`
	TotalPages int64       `json:"totalPages"`
	Total      int64       `json:"total"`
}

func NewPage(items interface{}, page, limit, total int64) Page {
	totalPages := int64(0)
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Page{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string, details map[string]string) {
	WriteJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
