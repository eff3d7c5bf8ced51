package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/lats-hub/repairgo/internal/middleware"
	"github.com/lats-hub/repairgo/internal/models"
	"github.com/lats-hub/repairgo/internal/services/sms"
)

// SendSMSRequest asks for a message to a customer
type SendSMSRequest struct {
	Recipient  string  `json:"recipient"`
	Body       string  `json:"body"`
	DeviceID   *string `json:"deviceId,omitempty"`
	CustomerID *string `json:"customerId,omitempty"`
}

// sendSMS delivers a message through the gateway. When the gateway is
// unreachable the message is captured into the outbox and acknowledged as
// deferred, not reported as an error: nothing was lost.
func (r *Router) sendSMS(w http.ResponseWriter, req *http.Request) {
	var payload SendSMSRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Recipient == "" || payload.Body == "" {
		respondError(w, http.StatusBadRequest, "Recipient and body are required")
		return
	}

	logRow := models.SMSLog{
		Recipient:  payload.Recipient,
		Body:       payload.Body,
		Status:     models.SMSStatusSent,
		DeviceID:   payload.DeviceID,
		CustomerID: payload.CustomerID,
		SentBy:     middleware.UserID(req.Context()),
	}
	if err := r.db.Create(&logRow).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to record SMS")
		return
	}

	if err := r.sms.Send(req.Context(), payload.Recipient, payload.Body); err != nil {
		if qErr := r.outbox.Enqueue(logRow.ID, err); qErr != nil {
			log.Printf("❌ SMS enqueue failed: %v (send error: %v)", qErr, err)
			r.db.Model(&logRow).Updates(map[string]interface{}{
				"status": models.SMSStatusFailed,
				"error":  err.Error(),
			})
			respondError(w, http.StatusBadGateway, "SMS could not be sent or queued")
			return
		}
		respondJSON(w, http.StatusAccepted, map[string]interface{}{
			"status":  models.SMSStatusQueued,
			"message": "Gateway unavailable; message queued for delivery",
			"smsId":   logRow.ID,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": models.SMSStatusSent,
		"smsId":  logRow.ID,
	})
}

// notifyCustomer sends the status-change SMS for a device, falling back to
// the outbox like any other send. Failures never fail the status update.
func (r *Router) notifyCustomer(req *http.Request, device *models.Device) {
	body := sms.StatusMessage(r.cfg.Shop, device.Customer.Name, device.Model, string(device.Status))

	logRow := models.SMSLog{
		Recipient:  device.Customer.Phone,
		Body:       body,
		Status:     models.SMSStatusSent,
		DeviceID:   &device.ID,
		CustomerID: &device.CustomerID,
		SentBy:     middleware.UserID(req.Context()),
	}
	if err := r.db.Create(&logRow).Error; err != nil {
		log.Printf("⚠️ SMS log insert failed: %v", err)
		return
	}

	if err := r.sms.Send(req.Context(), logRow.Recipient, logRow.Body); err != nil {
		if qErr := r.outbox.Enqueue(logRow.ID, err); qErr != nil {
			log.Printf("❌ Status SMS enqueue failed: %v", qErr)
		}
	}
}
