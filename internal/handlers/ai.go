package handlers

import (
	"net/http"

	"github.com/lats-hub/repairgo/internal/models"
)

// suggestRepair asks the AI assistant for a repair approach based on the
// device record and its staff remarks. Returns 503 when no AI client is
// configured so callers can hide the feature.
func (r *Router) suggestRepair(w http.ResponseWriter, req *http.Request) {
	if r.ai == nil {
		respondError(w, http.StatusServiceUnavailable, "AI assistant is not configured")
		return
	}

	device, ok := r.findDevice(w, req)
	if !ok {
		return
	}

	var remarks []models.Remark
	r.db.Where("device_id = ?", device.ID).Order("created_at ASC").Find(&remarks)
	notes := make([]string, 0, len(remarks))
	for _, remark := range remarks {
		notes = append(notes, remark.Text)
	}

	suggestion, err := r.ai.SuggestRepair(req.Context(),
		device.Brand, device.Model, device.IssueDescription, notes)
	if err != nil {
		respondError(w, http.StatusBadGateway, "AI suggestion failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"suggestion": suggestion,
	})
}
