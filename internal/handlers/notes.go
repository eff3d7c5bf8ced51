package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lats-hub/repairgo/internal/middleware"
	"github.com/lats-hub/repairgo/internal/models"
)

// listRemarks returns a device's staff notes, newest first
func (r *Router) listRemarks(w http.ResponseWriter, req *http.Request) {
	device, ok := r.findDevice(w, req)
	if !ok {
		return
	}

	var remarks []models.Remark
	if err := r.db.Where("device_id = ?", device.ID).Order("created_at DESC").Find(&remarks).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch remarks")
		return
	}
	respondJSON(w, http.StatusOK, remarks)
}

// addRemark attaches a free-text note to a device
func (r *Router) addRemark(w http.ResponseWriter, req *http.Request) {
	device, ok := r.findDevice(w, req)
	if !ok {
		return
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(payload.Text) == "" {
		respondError(w, http.StatusBadRequest, "Remark text is required")
		return
	}

	remark := models.Remark{
		DeviceID:  device.ID,
		Text:      strings.TrimSpace(payload.Text),
		CreatedBy: middleware.UserID(req.Context()),
	}
	if err := r.db.Create(&remark).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save remark")
		return
	}
	respondJSON(w, http.StatusCreated, remark)
}

// listRatings returns a device's ratings
func (r *Router) listRatings(w http.ResponseWriter, req *http.Request) {
	device, ok := r.findDevice(w, req)
	if !ok {
		return
	}

	var ratings []models.Rating
	if err := r.db.Where("device_id = ?", device.ID).Order("created_at DESC").Find(&ratings).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch ratings")
		return
	}
	respondJSON(w, http.StatusOK, ratings)
}

// addRating records a customer's score for the technician who worked on
// the device. Scores outside 1-5 are rejected.
func (r *Router) addRating(w http.ResponseWriter, req *http.Request) {
	device, ok := r.findDevice(w, req)
	if !ok {
		return
	}

	var payload struct {
		Score   int    `json:"score"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Score < 1 || payload.Score > 5 {
		respondError(w, http.StatusBadRequest, "Score must be between 1 and 5")
		return
	}
	if device.AssignedTo == "" {
		respondError(w, http.StatusConflict, "Device has no assigned technician to rate")
		return
	}

	rating := models.Rating{
		DeviceID:     device.ID,
		TechnicianID: device.AssignedTo,
		Score:        payload.Score,
		Comment:      payload.Comment,
		CreatedBy:    middleware.UserID(req.Context()),
	}
	if err := r.db.Create(&rating).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save rating")
		return
	}

	r.audit(req, "rating_added", "device", device.ID, map[string]interface{}{
		"score": payload.Score,
	})
	respondJSON(w, http.StatusCreated, rating)
}
