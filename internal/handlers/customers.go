package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/lats-hub/repairgo/internal/middleware"
	"github.com/lats-hub/repairgo/internal/models"
	"gorm.io/gorm"
)

// listCustomers returns all customers, optionally filtered by a search term
// matched against name and phone
func (r *Router) listCustomers(w http.ResponseWriter, req *http.Request) {
	q := r.db.Order("created_at DESC")
	if search := strings.TrimSpace(req.URL.Query().Get("q")); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR phone LIKE ?", like, like)
	}

	var customers []models.Customer
	if err := q.Find(&customers).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch customers")
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

// createCustomer registers a new customer
func (r *Router) createCustomer(w http.ResponseWriter, req *http.Request) {
	var payload struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		respondError(w, http.StatusBadRequest, "Name is required")
		return
	}

	customer := models.Customer{
		Name:  strings.TrimSpace(payload.Name),
		Phone: strings.TrimSpace(payload.Phone),
		Email: strings.TrimSpace(payload.Email),
		Notes: payload.Notes,
	}
	if err := r.db.Create(&customer).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	r.audit(req, "customer_created", "customer", customer.ID, map[string]interface{}{
		"name": customer.Name,
	})
	respondJSON(w, http.StatusCreated, customer)
}

// getCustomer returns one customer with their devices
func (r *Router) getCustomer(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	var customer models.Customer
	if err := r.db.First(&customer, "id = ?", vars["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "Customer not found")
		return
	}

	var devices []models.Device
	r.db.Where("customer_id = ?", customer.ID).Order("created_at DESC").Find(&devices)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"customer": customer,
		"devices":  devices,
	})
}

// addPoints records a loyalty points transaction and moves the customer's
// running total in the same database transaction
func (r *Router) addPoints(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	var payload struct {
		Delta    int    `json:"delta"`
		Reason   string `json:"reason"`
		DeviceID string `json:"deviceId"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Delta == 0 {
		respondError(w, http.StatusBadRequest, "Delta must be non-zero")
		return
	}

	var customer models.Customer
	if err := r.db.First(&customer, "id = ?", vars["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "Customer not found")
		return
	}
	if payload.Delta < 0 && customer.LoyaltyPoints+payload.Delta < 0 {
		respondError(w, http.StatusConflict, "Insufficient points balance")
		return
	}

	tx := models.PointsTransaction{
		CustomerID: customer.ID,
		DeviceID:   payload.DeviceID,
		Delta:      payload.Delta,
		Reason:     payload.Reason,
		CreatedBy:  middleware.UserID(req.Context()),
	}
	err := r.db.Transaction(func(db *gorm.DB) error {
		if err := db.Create(&tx).Error; err != nil {
			return err
		}
		return db.Model(&customer).
			Update("loyalty_points", gorm.Expr("loyalty_points + ?", payload.Delta)).Error
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to record points")
		return
	}

	r.audit(req, "points_recorded", "customer", customer.ID, map[string]interface{}{
		"delta":  payload.Delta,
		"reason": payload.Reason,
	})
	respondJSON(w, http.StatusCreated, tx)
}
