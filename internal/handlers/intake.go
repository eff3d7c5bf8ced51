package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/lats-hub/repairgo/internal/intake"
	"github.com/lats-hub/repairgo/internal/lifecycle"
	"github.com/lats-hub/repairgo/internal/middleware"
	"github.com/lats-hub/repairgo/internal/models"
	"github.com/lats-hub/repairgo/internal/websocket"
	"gorm.io/gorm"
)

// getDraft returns the saved intake draft for a customer, if any
func (r *Router) getDraft(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	form, found, err := r.drafts.Get(req.Context(), vars["customerId"])
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load draft")
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "No draft for this customer")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"draft": form,
		"gate":  intake.GateFor(form),
	})
}

// saveDraft stores an in-progress intake form keyed by customer. The draft
// is persisted as-is; validation only runs on submission.
func (r *Router) saveDraft(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	var form intake.Form
	if err := json.NewDecoder(req.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	form.CustomerID = vars["customerId"]

	if err := r.drafts.Save(req.Context(), form.CustomerID, form); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save draft")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Draft saved",
		"gate":    intake.GateFor(form),
	})
}

// clearDraft discards a customer's intake draft
func (r *Router) clearDraft(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	if err := r.drafts.Clear(req.Context(), vars["customerId"]); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to clear draft")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Draft cleared"})
}

// submitIntake validates the intake form, applies the completion gate, and
// creates the device with its initial status transition. A successful
// submission also clears the customer's draft.
func (r *Router) submitIntake(w http.ResponseWriter, req *http.Request) {
	var form intake.Form
	if err := json.NewDecoder(req.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := intake.Validate(form, time.Now())
	if !result.Valid {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  "Intake form is incomplete",
			"fields": result.Errors,
		})
		return
	}

	gate := intake.GateFor(form)
	if !gate.Allowed {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":      "Intake form is below the completion threshold",
			"completion": gate.Completion,
		})
		return
	}

	var customer models.Customer
	if err := r.db.First(&customer, "id = ?", form.CustomerID).Error; err != nil {
		respondError(w, http.StatusNotFound, "Customer not found")
		return
	}

	userID := middleware.UserID(req.Context())
	device := models.Device{
		CustomerID:         form.CustomerID,
		Brand:              form.Brand,
		Model:              form.Model,
		SerialNumber:       form.SerialNumber,
		IssueDescription:   form.IssueDescription,
		Status:             lifecycle.StatusAssigned,
		AssignedTo:         form.AssignedTo,
		RepairCost:         parseAmount(form.RepairCost),
		DeviceCost:         parseAmount(form.DeviceCost),
		DepositAmount:      parseAmount(form.DepositAmount),
		DiagnosisRequired:  form.DiagnosisRequired,
		DepositRequested:   form.DepositRequested,
		ExpectedReturnDate: form.ExpectedReturnDate,
	}
	if len(form.ConditionFlags) > 0 {
		if data, err := json.Marshal(form.ConditionFlags); err == nil {
			device.ConditionFlags = data
		}
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&device).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.StatusTransition{
			DeviceID:    device.ID,
			FromStatus:  nil,
			ToStatus:    lifecycle.StatusAssigned,
			PerformedBy: userID,
		}).Error; err != nil {
			return err
		}
		if form.ConditionNotes != "" {
			return tx.Create(&models.Remark{
				DeviceID:  device.ID,
				Text:      "Condition at intake: " + form.ConditionNotes,
				CreatedBy: userID,
			}).Error
		}
		return nil
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create device")
		return
	}

	r.audit(req, "device_intake", "device", device.ID, map[string]interface{}{
		"customerId": form.CustomerID,
		"model":      form.Model,
		"completion": gate.Completion,
	})
	r.hub.Notify(websocket.Notification{
		Type:     "device.created",
		DeviceID: device.ID,
		Payload: map[string]interface{}{
			"status": device.Status,
		},
	})

	if err := r.drafts.Clear(req.Context(), form.CustomerID); err != nil {
		// the draft will age out via TTL either way
		respondJSON(w, http.StatusCreated, map[string]interface{}{
			"device":  device,
			"gate":    gate,
			"warning": "Draft could not be cleared",
		})
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"device": device,
		"gate":   gate,
	})
}

// parseAmount converts an already-validated cost field; empty means zero.
func parseAmount(value string) float64 {
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}
