package handlers

import (
	"fmt"
	"net/http"

	"github.com/lats-hub/repairgo/internal/models"
	"github.com/lats-hub/repairgo/internal/services/printer"
	"github.com/lats-hub/repairgo/internal/timeline"
)

// deviceReceipt renders the printable repair receipt as a PDF download
func (r *Router) deviceReceipt(w http.ResponseWriter, req *http.Request) {
	device, ok := r.findDevice(w, req)
	if !ok {
		return
	}
	if device.Customer == nil {
		respondError(w, http.StatusConflict, "Device has no customer record")
		return
	}

	var payments []models.Payment
	r.db.Where("device_id = ?", device.ID).Order("created_at ASC").Find(&payments)

	pdf, err := printer.GenerateReceiptPDF(printer.ReceiptData{
		Shop:     r.cfg.Shop,
		Device:   *device,
		Customer: *device.Customer,
		Payments: payments,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to render receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="receipt-%s.pdf"`, device.ID))
	w.Write(pdf)
}

// deviceExport returns the full device dossier as a JSON download: the
// record itself plus its complete event timeline and payment history
func (r *Router) deviceExport(w http.ResponseWriter, req *http.Request) {
	device, ok := r.findDevice(w, req)
	if !ok {
		return
	}

	var payments []models.Payment
	r.db.Where("device_id = ?", device.ID).Order("created_at ASC").Find(&payments)

	var remarks []models.Remark
	r.db.Where("device_id = ?", device.ID).Order("created_at ASC").Find(&remarks)

	dossier := map[string]interface{}{
		"device":   device,
		"payments": payments,
		"remarks":  remarks,
		"timeline": r.buildTimeline(device.ID, timeline.Ascending),
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="device-%s.json"`, device.ID))
	respondJSON(w, http.StatusOK, dossier)
}
