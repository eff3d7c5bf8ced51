package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lats-hub/repairgo/internal/lifecycle"
	"github.com/lats-hub/repairgo/internal/middleware"
	"github.com/lats-hub/repairgo/internal/models"
)

// startWorkSession opens a timed work session on a device for the calling
// technician. Only one open session per technician per device is allowed.
func (r *Router) startWorkSession(w http.ResponseWriter, req *http.Request) {
	device, ok := r.findDevice(w, req)
	if !ok {
		return
	}
	userID := middleware.UserID(req.Context())

	if lifecycle.IsTerminal(device.Status) {
		respondError(w, http.StatusConflict, "Device is no longer in repair")
		return
	}

	var open models.WorkSession
	err := r.db.Where("device_id = ? AND technician_id = ? AND ended_at IS NULL",
		device.ID, userID).First(&open).Error
	if err == nil {
		respondError(w, http.StatusConflict, "A work session is already running for this device")
		return
	}

	session := models.WorkSession{
		DeviceID:     device.ID,
		TechnicianID: userID,
		StartedAt:    time.Now(),
	}
	if err := r.db.Create(&session).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to start work session")
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

// stopWorkSession closes the caller's open session on a device and reports
// the elapsed time in the session's label format
func (r *Router) stopWorkSession(w http.ResponseWriter, req *http.Request) {
	device, ok := r.findDevice(w, req)
	if !ok {
		return
	}
	userID := middleware.UserID(req.Context())

	var payload struct {
		Notes string `json:"notes"`
	}
	// body is optional
	json.NewDecoder(req.Body).Decode(&payload)

	var session models.WorkSession
	err := r.db.Where("device_id = ? AND technician_id = ? AND ended_at IS NULL",
		device.ID, userID).First(&session).Error
	if err != nil {
		respondError(w, http.StatusNotFound, "No open work session for this device")
		return
	}

	now := time.Now()
	session.EndedAt = &now
	if payload.Notes != "" {
		session.Notes = payload.Notes
	}
	if err := r.db.Save(&session).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to stop work session")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"session": session,
		"elapsed": lifecycle.ElapsedLabel(session.StartedAt, now),
	})
}
