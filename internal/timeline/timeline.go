// Package timeline merges the heterogeneous per-device record streams
// (status transitions, payments, attachments, ratings, audit entries,
// loyalty points, SMS logs) into one chronological event list for display.
// It is a pure projection: callers fetch the raw rows, Build never does I/O.
package timeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/lats-hub/repairgo/internal/lifecycle"
	"github.com/lats-hub/repairgo/internal/models"
)

// Kind identifies which source stream an event came from.
type Kind string

const (
	KindStatus     Kind = "status"
	KindPayment    Kind = "payment"
	KindAttachment Kind = "attachment"
	KindRating     Kind = "rating"
	KindAudit      Kind = "audit"
	KindPoints     Kind = "points"
	KindSMS        Kind = "sms"
)

// Event is the unified display shape. It is rebuilt on every request and
// has no identity of its own.
type Event struct {
	Kind        Kind      `json:"kind"`
	Timestamp   time.Time `json:"timestamp"`
	ActorID     string    `json:"actorId"`
	Actor       string    `json:"actor"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
	Duration    string    `json:"duration,omitempty"`
}

// Sources carries the raw per-device rows feeding the timeline.
type Sources struct {
	Transitions []models.StatusTransition
	Payments    []models.Payment
	Attachments []models.Attachment
	Ratings     []models.Rating
	AuditLogs   []models.AuditLog
	PointsTx    []models.PointsTransaction
	SMSLogs     []models.SMSLog
}

// Order selects the display direction.
type Order int

const (
	Ascending Order = iota
	Descending
)

// ActorResolver maps actor ids to display names.
type ActorResolver func(id string) (string, bool)

// ResolverFromMap builds an ActorResolver over a plain name lookup.
func ResolverFromMap(names map[string]string) ActorResolver {
	return func(id string) (string, bool) {
		name, ok := names[id]
		return name, ok
	}
}

// resolveActor turns an actor id into a display name. The literal id
// "system" renders as "System", an empty id as "Unknown", and an id the
// lookup does not know is truncated rather than rejected.
func resolveActor(id string, resolve ActorResolver) string {
	if id == "" {
		return "Unknown"
	}
	if id == "system" {
		return "System"
	}
	if resolve != nil {
		if name, ok := resolve(id); ok && name != "" {
			return name
		}
	}
	if len(id) > 8 {
		return id[:8] + "…"
	}
	return id
}

// Build merges all sources into a single event list sorted by timestamp.
// The sort is stable, so events sharing a timestamp keep insertion order.
func Build(src Sources, resolve ActorResolver, order Order) []Event {
	events := make([]Event, 0,
		len(src.Transitions)+len(src.Payments)+len(src.Attachments)+
			len(src.Ratings)+len(src.AuditLogs)+len(src.PointsTx)+len(src.SMSLogs))

	// Index transitions by destination status once. A transition's elapsed
	// duration is measured against the predecessor whose ToStatus equals
	// its FromStatus, wherever that row sits in the slice. When a status
	// is revisited the first occurrence wins; the shop's flow never
	// revisits statuses in practice.
	byToStatus := make(map[lifecycle.DeviceStatus]models.StatusTransition, len(src.Transitions))
	for _, tr := range src.Transitions {
		if _, ok := byToStatus[tr.ToStatus]; !ok {
			byToStatus[tr.ToStatus] = tr
		}
	}

	for _, tr := range src.Transitions {
		ev := Event{
			Kind:      KindStatus,
			Timestamp: tr.CreatedAt,
			ActorID:   tr.PerformedBy,
			Actor:     resolveActor(tr.PerformedBy, resolve),
			Label:     "Status changed",
		}
		if tr.FromStatus != nil {
			ev.Description = fmt.Sprintf("%s → %s", *tr.FromStatus, tr.ToStatus)
			if prev, ok := byToStatus[*tr.FromStatus]; ok {
				if label := lifecycle.ElapsedLabel(prev.CreatedAt, tr.CreatedAt); label != lifecycle.ElapsedSentinel {
					ev.Duration = label
				}
			}
		} else {
			ev.Description = fmt.Sprintf("Device intake · %s", tr.ToStatus)
		}
		events = append(events, ev)
	}

	for _, p := range src.Payments {
		events = append(events, Event{
			Kind:        KindPayment,
			Timestamp:   p.CreatedAt,
			ActorID:     p.CreatedBy,
			Actor:       resolveActor(p.CreatedBy, resolve),
			Label:       "Payment recorded",
			Description: fmt.Sprintf("%s %.2f via %s", p.Type, p.Amount, p.Method),
		})
	}

	for _, a := range src.Attachments {
		events = append(events, Event{
			Kind:        KindAttachment,
			Timestamp:   a.CreatedAt,
			ActorID:     a.UploadedBy,
			Actor:       resolveActor(a.UploadedBy, resolve),
			Label:       "Attachment uploaded",
			Description: a.FileName,
		})
	}

	for _, r := range src.Ratings {
		events = append(events, Event{
			Kind:        KindRating,
			Timestamp:   r.CreatedAt,
			ActorID:     r.CreatedBy,
			Actor:       resolveActor(r.CreatedBy, resolve),
			Label:       "Rating added",
			Description: fmt.Sprintf("%d/5 %s", r.Score, r.Comment),
		})
	}

	for _, entry := range src.AuditLogs {
		events = append(events, Event{
			Kind:        KindAudit,
			Timestamp:   entry.CreatedAt,
			ActorID:     entry.ActorID,
			Actor:       resolveActor(entry.ActorID, resolve),
			Label:       "Activity",
			Description: entry.Action,
		})
	}

	for _, tx := range src.PointsTx {
		label := "Points awarded"
		if tx.Delta < 0 {
			label = "Points redeemed"
		}
		events = append(events, Event{
			Kind:        KindPoints,
			Timestamp:   tx.CreatedAt,
			ActorID:     tx.CreatedBy,
			Actor:       resolveActor(tx.CreatedBy, resolve),
			Label:       label,
			Description: fmt.Sprintf("%+d points · %s", tx.Delta, tx.Reason),
		})
	}

	for _, s := range src.SMSLogs {
		events = append(events, Event{
			Kind:        KindSMS,
			Timestamp:   s.CreatedAt,
			ActorID:     s.SentBy,
			Actor:       resolveActor(s.SentBy, resolve),
			Label:       "SMS " + s.Status,
			Description: fmt.Sprintf("To %s: %s", s.Recipient, s.Body),
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		if order == Descending {
			return events[j].Timestamp.Before(events[i].Timestamp)
		}
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	return events
}
