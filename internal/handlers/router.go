package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lats-hub/repairgo/internal/buildinfo"
	"github.com/lats-hub/repairgo/internal/config"
	"github.com/lats-hub/repairgo/internal/database"
	"github.com/lats-hub/repairgo/internal/drafts"
	"github.com/lats-hub/repairgo/internal/middleware"
	"github.com/lats-hub/repairgo/internal/services/ai"
	"github.com/lats-hub/repairgo/internal/services/sms"
	"github.com/lats-hub/repairgo/internal/storage"
	"github.com/lats-hub/repairgo/internal/websocket"
)

// Router wraps the mux router and the service dependencies the handlers use
type Router struct {
	*mux.Router
	db     *database.DB
	cfg    *config.Config
	hub    *websocket.Hub
	drafts *drafts.Store
	files  *storage.Store
	sms    *sms.Client
	outbox *sms.Outbox
	ai     *ai.Client
}

// Deps carries everything the router needs beyond the database.
type Deps struct {
	Config *config.Config
	Hub    *websocket.Hub
	Drafts *drafts.Store
	Files  *storage.Store
	SMS    *sms.Client
	Outbox *sms.Outbox
	AI     *ai.Client // nil when no API key is configured
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, deps Deps) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		db:     db,
		cfg:    deps.Config,
		hub:    deps.Hub,
		drafts: deps.Drafts,
		files:  deps.Files,
		sms:    deps.SMS,
		outbox: deps.Outbox,
		ai:     deps.AI,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/register", r.register).Methods("POST")
	auth.HandleFunc("/logout", r.logout).Methods("POST")

	// Dashboard notifications
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		websocket.ServeWS(r.hub, w, req)
	})

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(deps.Config.JWTSecret))

	api.HandleFunc("/status", r.getStatus).Methods("GET")

	// Customers
	api.HandleFunc("/customers", r.listCustomers).Methods("GET")
	api.HandleFunc("/customers", r.createCustomer).Methods("POST")
	api.HandleFunc("/customers/{id}", r.getCustomer).Methods("GET")
	api.HandleFunc("/customers/{id}/points", r.addPoints).Methods("POST")

	// Devices
	api.HandleFunc("/devices", r.listDevices).Methods("GET")
	api.HandleFunc("/devices/{id}", r.getDevice).Methods("GET")
	api.HandleFunc("/devices/{id}", r.updateDevice).Methods("PUT")
	api.HandleFunc("/devices/{id}", r.deleteDevice).Methods("DELETE")
	api.HandleFunc("/devices/{id}/status", r.updateDeviceStatus).Methods("POST")
	api.HandleFunc("/devices/{id}/progress", r.getDeviceProgress).Methods("GET")
	api.HandleFunc("/devices/{id}/timeline", r.getDeviceTimeline).Methods("GET")

	// Device sub-resources
	api.HandleFunc("/devices/{id}/remarks", r.listRemarks).Methods("GET")
	api.HandleFunc("/devices/{id}/remarks", r.addRemark).Methods("POST")
	api.HandleFunc("/devices/{id}/ratings", r.listRatings).Methods("GET")
	api.HandleFunc("/devices/{id}/ratings", r.addRating).Methods("POST")
	api.HandleFunc("/devices/{id}/attachments", r.listAttachments).Methods("GET")
	api.HandleFunc("/devices/{id}/attachments", r.uploadAttachment).Methods("POST")
	api.HandleFunc("/devices/{id}/attachments/{attachmentId}", r.downloadAttachment).Methods("GET")
	api.HandleFunc("/devices/{id}/attachments/{attachmentId}", r.deleteAttachment).Methods("DELETE")
	api.HandleFunc("/devices/{id}/work-sessions/start", r.startWorkSession).Methods("POST")
	api.HandleFunc("/devices/{id}/work-sessions/stop", r.stopWorkSession).Methods("POST")
	api.HandleFunc("/devices/{id}/receipt.pdf", r.deviceReceipt).Methods("GET")
	api.HandleFunc("/devices/{id}/export.json", r.deviceExport).Methods("GET")
	api.HandleFunc("/devices/{id}/suggest-repair", r.suggestRepair).Methods("POST")

	// Payments
	api.HandleFunc("/payments", r.createPayment).Methods("POST")
	api.HandleFunc("/devices/{id}/payments", r.listDevicePayments).Methods("GET")

	// SMS
	api.HandleFunc("/sms/send", r.sendSMS).Methods("POST")

	// Intake
	api.HandleFunc("/intake", r.submitIntake).Methods("POST")
	api.HandleFunc("/intake/drafts/{customerId}", r.getDraft).Methods("GET")
	api.HandleFunc("/intake/drafts/{customerId}", r.saveDraft).Methods("PUT")
	api.HandleFunc("/intake/drafts/{customerId}", r.clearDraft).Methods("DELETE")

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"server": "local",
	})
}

// getStatus returns the current status and build information
func (r *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "running",
		"env":       r.cfg.Env,
		"commit":    buildinfo.CommitHash,
		"buildTime": buildinfo.BuildTime,
		"startTime": buildinfo.StartTime,
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondForbidden sends a permission error with a redirect hint so the
// client navigates away instead of rendering a dead screen.
func respondForbidden(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusForbidden, map[string]string{
		"error":    message,
		"redirect": "/devices",
	})
}
