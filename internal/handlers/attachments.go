package handlers

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lats-hub/repairgo/internal/middleware"
	"github.com/lats-hub/repairgo/internal/models"
	"gorm.io/gorm"
)

const maxUploadBytes = 25 << 20 // 25 MB

// listAttachments returns attachment metadata for a device
func (r *Router) listAttachments(w http.ResponseWriter, req *http.Request) {
	device, ok := r.findDevice(w, req)
	if !ok {
		return
	}

	var attachments []models.Attachment
	if err := r.db.Where("device_id = ?", device.ID).Order("created_at DESC").Find(&attachments).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch attachments")
		return
	}
	respondJSON(w, http.StatusOK, attachments)
}

// uploadAttachment stores the binary and its metadata row. If the metadata
// insert fails the stored file is removed again, so no orphan binaries.
func (r *Router) uploadAttachment(w http.ResponseWriter, req *http.Request) {
	device, ok := r.findDevice(w, req)
	if !ok {
		return
	}

	req.Body = http.MaxBytesReader(w, req.Body, maxUploadBytes)
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart upload")
		return
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	rel, size, err := r.files.Save(device.ID, header.Filename, file)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	attachment := models.Attachment{
		DeviceID:    device.ID,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		SizeBytes:   size,
		StoragePath: rel,
		UploadedBy:  middleware.UserID(req.Context()),
	}
	if err := r.db.Create(&attachment).Error; err != nil {
		_ = r.files.Remove(rel)
		respondError(w, http.StatusInternalServerError, "Failed to record attachment")
		return
	}

	r.audit(req, "attachment_uploaded", "device", device.ID, map[string]interface{}{
		"fileName": attachment.FileName,
	})
	respondJSON(w, http.StatusCreated, attachment)
}

// downloadAttachment streams a stored attachment back to the client
func (r *Router) downloadAttachment(w http.ResponseWriter, req *http.Request) {
	device, ok := r.findDevice(w, req)
	if !ok {
		return
	}
	vars := mux.Vars(req)

	var attachment models.Attachment
	if err := r.db.Where("id = ? AND device_id = ?", vars["attachmentId"], device.ID).
		First(&attachment).Error; err != nil {
		respondError(w, http.StatusNotFound, "Attachment not found")
		return
	}

	f, err := r.files.Open(attachment.StoragePath)
	if err != nil {
		respondError(w, http.StatusNotFound, "Attachment file missing")
		return
	}
	defer f.Close()

	if attachment.ContentType != "" {
		w.Header().Set("Content-Type", attachment.ContentType)
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+attachment.FileName+`"`)
	io.Copy(w, f)
}

// deleteAttachment removes the metadata row and the binary together
func (r *Router) deleteAttachment(w http.ResponseWriter, req *http.Request) {
	device, ok := r.findDevice(w, req)
	if !ok {
		return
	}
	vars := mux.Vars(req)

	var attachment models.Attachment
	if err := r.db.Where("id = ? AND device_id = ?", vars["attachmentId"], device.ID).
		First(&attachment).Error; err != nil {
		respondError(w, http.StatusNotFound, "Attachment not found")
		return
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&attachment).Error; err != nil {
			return err
		}
		return r.files.Remove(attachment.StoragePath)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete attachment")
		return
	}

	r.audit(req, "attachment_deleted", "device", device.ID, map[string]interface{}{
		"fileName": attachment.FileName,
	})
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Attachment deleted successfully",
	})
}
