package handlers

import (
	"net/http"

	"github.com/lats-hub/repairgo/internal/models"
	"github.com/lats-hub/repairgo/internal/timeline"
)

// buildTimeline loads every raw event stream for a device and runs the
// normalizer over it. Reads happen here; timeline.Build itself is pure.
func (r *Router) buildTimeline(deviceID string, order timeline.Order) []timeline.Event {
	var src timeline.Sources
	r.db.Where("device_id = ?", deviceID).Order("created_at ASC").Find(&src.Transitions)
	r.db.Where("device_id = ?", deviceID).Find(&src.Payments)
	r.db.Where("device_id = ?", deviceID).Find(&src.Attachments)
	r.db.Where("device_id = ?", deviceID).Find(&src.Ratings)
	r.db.Where("entity_type = ? AND entity_id = ?", "device", deviceID).Find(&src.AuditLogs)
	r.db.Where("device_id = ?", deviceID).Find(&src.PointsTx)
	r.db.Where("device_id = ?", deviceID).Find(&src.SMSLogs)

	return timeline.Build(src, r.actorResolver(), order)
}

// actorResolver maps staff ids to display names for the timeline.
func (r *Router) actorResolver() timeline.ActorResolver {
	names := map[string]string{}

	var users []models.UserAuth
	if err := r.db.Select("id", "name", "username").Find(&users).Error; err == nil {
		for _, u := range users {
			if u.Name != "" {
				names[u.ID] = u.Name
			} else {
				names[u.ID] = u.Username
			}
		}
	}
	return timeline.ResolverFromMap(names)
}

// getDeviceTimeline returns the merged chronological event list
func (r *Router) getDeviceTimeline(w http.ResponseWriter, req *http.Request) {
	device, ok := r.findDevice(w, req)
	if !ok {
		return
	}

	order := timeline.Ascending
	if req.URL.Query().Get("order") == "desc" {
		order = timeline.Descending
	}

	respondJSON(w, http.StatusOK, r.buildTimeline(device.ID, order))
}
