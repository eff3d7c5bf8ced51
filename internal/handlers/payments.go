package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lats-hub/repairgo/internal/middleware"
	"github.com/lats-hub/repairgo/internal/models"
	"gorm.io/gorm"
)

// CreatePaymentRequest records money received against a repair
type CreatePaymentRequest struct {
	DeviceID         *string `json:"deviceId,omitempty"`
	CustomerID       string  `json:"customerId"`
	FinanceAccountID uint    `json:"financeAccountId"`
	Amount           float64 `json:"amount"`
	Method           string  `json:"method"`
	Type             string  `json:"type"`
	Reference        string  `json:"reference"`
}

// createPayment inserts the payment and adjusts the finance account
// balance in one DB transaction; a refund carries a negative delta.
func (r *Router) createPayment(w http.ResponseWriter, req *http.Request) {
	var payload CreatePaymentRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.CustomerID == "" || payload.FinanceAccountID == 0 {
		respondError(w, http.StatusBadRequest, "Customer and finance account are required")
		return
	}
	if payload.Amount <= 0 {
		respondError(w, http.StatusBadRequest, "Amount must be positive")
		return
	}

	method := payload.Method
	if method == "" {
		method = "cash"
	}
	paymentType := payload.Type
	if paymentType == "" {
		paymentType = "payment"
	}

	payment := models.Payment{
		DeviceID:         payload.DeviceID,
		CustomerID:       payload.CustomerID,
		FinanceAccountID: payload.FinanceAccountID,
		Amount:           payload.Amount,
		Method:           method,
		Type:             paymentType,
		Status:           "completed",
		Reference:        payload.Reference,
		CreatedBy:        middleware.UserID(req.Context()),
	}

	delta := payment.Amount
	if paymentType == "refund" {
		delta = -delta
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var account models.FinanceAccount
		if err := tx.First(&account, payload.FinanceAccountID).Error; err != nil {
			return err
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		return tx.Model(&account).
			Update("balance", gorm.Expr("balance + ?", delta)).Error
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to record payment")
		return
	}

	r.audit(req, "payment_recorded", "payment", payload.CustomerID, map[string]interface{}{
		"amount": payment.Amount,
		"type":   payment.Type,
	})

	respondJSON(w, http.StatusCreated, payment)
}

// listDevicePayments returns all payments for a device
func (r *Router) listDevicePayments(w http.ResponseWriter, req *http.Request) {
	device, ok := r.findDevice(w, req)
	if !ok {
		return
	}

	var payments []models.Payment
	if err := r.db.Where("device_id = ?", device.ID).Order("created_at DESC").Find(&payments).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch payments")
		return
	}
	respondJSON(w, http.StatusOK, payments)
}
