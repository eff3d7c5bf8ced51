package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/lats-hub/repairgo/internal/lifecycle"
	"github.com/lats-hub/repairgo/internal/middleware"
	"github.com/lats-hub/repairgo/internal/models"
	"github.com/lats-hub/repairgo/internal/timeline"
	"github.com/lats-hub/repairgo/internal/websocket"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// canAccessDevice enforces assignment scoping: technicians only see
// devices assigned to them, other staff roles see everything.
func canAccessDevice(req *http.Request, device *models.Device) bool {
	if middleware.Role(req.Context()) != models.RoleTechnician {
		return true
	}
	return device.AssignedTo == middleware.UserID(req.Context())
}

func (r *Router) findDevice(w http.ResponseWriter, req *http.Request) (*models.Device, bool) {
	vars := mux.Vars(req)

	var device models.Device
	if err := r.db.Preload("Customer").First(&device, "id = ?", vars["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "Device not found")
		return nil, false
	}

	if !canAccessDevice(req, &device) {
		respondForbidden(w, "This device is not assigned to you")
		return nil, false
	}
	return &device, true
}

// listDevices returns devices, optionally filtered by status or technician
func (r *Router) listDevices(w http.ResponseWriter, req *http.Request) {
	q := r.db.Preload("Customer").Order("created_at DESC")

	if status := req.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if tech := req.URL.Query().Get("assignedTo"); tech != "" {
		q = q.Where("assigned_to = ?", tech)
	}
	// Technicians only ever see their own queue.
	if middleware.Role(req.Context()) == models.RoleTechnician {
		q = q.Where("assigned_to = ?", middleware.UserID(req.Context()))
	}

	var devices []models.Device
	if err := q.Find(&devices).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch devices")
		return
	}
	respondJSON(w, http.StatusOK, devices)
}

// getDevice returns a single device by ID
func (r *Router) getDevice(w http.ResponseWriter, req *http.Request) {
	device, ok := r.findDevice(w, req)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, device)
}

// updateDevice updates editable intake fields on a device
func (r *Router) updateDevice(w http.ResponseWriter, req *http.Request) {
	device, ok := r.findDevice(w, req)
	if !ok {
		return
	}

	var payload struct {
		Brand              *string    `json:"brand"`
		Model              *string    `json:"model"`
		SerialNumber       *string    `json:"serialNumber"`
		IssueDescription   *string    `json:"issueDescription"`
		AssignedTo         *string    `json:"assignedTo"`
		RepairCost         *float64   `json:"repairCost"`
		DeviceCost         *float64   `json:"deviceCost"`
		DepositAmount      *float64   `json:"depositAmount"`
		ExpectedReturnDate *time.Time `json:"expectedReturnDate"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updates := map[string]interface{}{}
	if payload.Brand != nil {
		updates["brand"] = *payload.Brand
	}
	if payload.Model != nil {
		updates["model"] = *payload.Model
	}
	if payload.SerialNumber != nil {
		updates["serial_number"] = *payload.SerialNumber
	}
	if payload.IssueDescription != nil {
		updates["issue_description"] = *payload.IssueDescription
	}
	if payload.AssignedTo != nil {
		updates["assigned_to"] = *payload.AssignedTo
	}
	if payload.RepairCost != nil {
		updates["repair_cost"] = *payload.RepairCost
	}
	if payload.DeviceCost != nil {
		updates["device_cost"] = *payload.DeviceCost
	}
	if payload.DepositAmount != nil {
		updates["deposit_amount"] = *payload.DepositAmount
	}
	if payload.ExpectedReturnDate != nil {
		updates["expected_return_date"] = *payload.ExpectedReturnDate
	}

	if len(updates) > 0 {
		if err := r.db.Model(device).Updates(updates).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to update device")
			return
		}
		r.audit(req, "device_updated", "device", device.ID, updates)
	}

	respondJSON(w, http.StatusOK, device)
}

// deleteDevice soft-deletes a device record (admin only)
func (r *Router) deleteDevice(w http.ResponseWriter, req *http.Request) {
	if middleware.Role(req.Context()) != models.RoleAdmin {
		respondForbidden(w, "Only admins can delete devices")
		return
	}

	vars := mux.Vars(req)
	if err := r.db.Delete(&models.Device{}, "id = ?", vars["id"]).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete device")
		return
	}
	r.audit(req, "device_deleted", "device", vars["id"], nil)

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Device deleted successfully",
	})
}

// StatusUpdateRequest asks for a lifecycle transition
type StatusUpdateRequest struct {
	Status    lifecycle.DeviceStatus `json:"status"`
	NotifySMS bool                   `json:"notifySms"`
}

// updateDeviceStatus appends a status transition and updates the device
// row in one transaction, then responds with the refreshed timeline. The
// refresh is read strictly after the write commits.
func (r *Router) updateDeviceStatus(w http.ResponseWriter, req *http.Request) {
	device, ok := r.findDevice(w, req)
	if !ok {
		return
	}

	var payload StatusUpdateRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if !lifecycle.IsKnown(payload.Status) {
		respondError(w, http.StatusBadRequest, "Unknown device status")
		return
	}
	if payload.Status == device.Status {
		respondError(w, http.StatusConflict, "Device is already in this status")
		return
	}
	if lifecycle.IsTerminal(device.Status) {
		respondError(w, http.StatusConflict, "Device lifecycle is already closed")
		return
	}

	actor := middleware.UserID(req.Context())
	from := device.Status

	err := r.db.Transaction(func(tx *gorm.DB) error {
		transition := models.StatusTransition{
			DeviceID:    device.ID,
			FromStatus:  &from,
			ToStatus:    payload.Status,
			PerformedBy: actor,
		}
		if err := tx.Create(&transition).Error; err != nil {
			return err
		}
		return tx.Model(&models.Device{}).Where("id = ?", device.ID).
			Update("status", payload.Status).Error
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update status")
		return
	}

	device.Status = payload.Status
	r.audit(req, "status_changed", "device", device.ID, map[string]interface{}{
		"from": from,
		"to":   payload.Status,
	})

	r.hub.Notify(websocket.Notification{
		Type:     "device.status",
		DeviceID: device.ID,
		Payload: map[string]interface{}{
			"status":   payload.Status,
			"progress": lifecycle.ProgressForStatus(payload.Status),
		},
	})

	if payload.NotifySMS && device.Customer != nil && device.Customer.Phone != "" {
		r.notifyCustomer(req, device)
	}

	// Timeline is rebuilt only after the transaction has committed.
	events := r.buildTimeline(device.ID, timeline.Descending)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"device":   device,
		"progress": lifecycle.ProgressForStatus(device.Status),
		"timeline": events,
	})
}

// getDeviceProgress reports progress percentage, time in current status and
// the expected-return countdown. Clients poll this while the detail view
// is open.
func (r *Router) getDeviceProgress(w http.ResponseWriter, req *http.Request) {
	device, ok := r.findDevice(w, req)
	if !ok {
		return
	}

	now := time.Now()
	response := map[string]interface{}{
		"status":   device.Status,
		"progress": lifecycle.ProgressForStatus(device.Status),
	}

	// Elapsed time in the current status, measured from the transition
	// that entered it.
	var entered models.StatusTransition
	err := r.db.Where("device_id = ? AND to_status = ?", device.ID, device.Status).
		Order("created_at ASC").First(&entered).Error
	if err == nil {
		response["inStatusFor"] = lifecycle.ElapsedLabel(entered.CreatedAt, now)
	}

	if device.ExpectedReturnDate != nil {
		response["countdown"] = lifecycle.CountdownTo(*device.ExpectedReturnDate, now)
	}

	respondJSON(w, http.StatusOK, response)
}

// audit writes an append-only audit row; failures are logged via the DB
// layer but never fail the user action.
func (r *Router) audit(req *http.Request, action, entityType, entityID string, details map[string]interface{}) {
	entry := models.AuditLog{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		ActorID:    middleware.UserID(req.Context()),
	}
	if details != nil {
		if raw, err := json.Marshal(details); err == nil {
			entry.Details = datatypes.JSON(raw)
		}
	}
	r.db.Create(&entry)
}
