package timeline

import (
	"testing"
	"time"

	"github.com/lats-hub/repairgo/internal/lifecycle"
	"github.com/lats-hub/repairgo/internal/models"
	"github.com/stretchr/testify/require"
)

func statusPtr(s lifecycle.DeviceStatus) *lifecycle.DeviceStatus { return &s }

func TestStatusDurationMatchesPredecessorByStatus(t *testing.T) {
	t0 := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	t1 := t0.Add(2 * time.Hour)
	t2 := t1.Add(90 * time.Minute)

	src := Sources{
		Transitions: []models.StatusTransition{
			{DeviceID: "d1", ToStatus: lifecycle.StatusAssigned, CreatedAt: t0},
			{DeviceID: "d1", FromStatus: statusPtr(lifecycle.StatusAssigned), ToStatus: lifecycle.StatusInRepair, CreatedAt: t1},
			{DeviceID: "d1", FromStatus: statusPtr(lifecycle.StatusInRepair), ToStatus: lifecycle.StatusDone, CreatedAt: t2},
		},
	}

	events := Build(src, nil, Ascending)
	require.Len(t, events, 3)

	// in-repair -> done must be measured from the transition INTO
	// in-repair (t1), not from intake (t0).
	last := events[2]
	require.Equal(t, KindStatus, last.Kind)
	require.Equal(t, "1h 30m", last.Duration)

	// assigned -> in-repair measured from intake.
	require.Equal(t, "2h 0m", events[1].Duration)

	// The intake transition has no predecessor and no duration.
	require.Empty(t, events[0].Duration)
}

func TestNoPredecessorOmitsDuration(t *testing.T) {
	t1 := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	src := Sources{
		Transitions: []models.StatusTransition{
			// Sparse history: the transition into awaiting-parts was never recorded.
			{DeviceID: "d1", FromStatus: statusPtr(lifecycle.StatusAwaitingParts), ToStatus: lifecycle.StatusInRepair, CreatedAt: t1},
		},
	}

	events := Build(src, nil, Ascending)
	require.Len(t, events, 1)
	require.Empty(t, events[0].Duration)
}

func TestActorResolution(t *testing.T) {
	ts := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	resolver := ResolverFromMap(map[string]string{
		"u-100": "Asha Mushi",
	})

	events := Build(Sources{
		SMSLogs: []models.SMSLog{
			{Recipient: "+255700000001", Body: "Ready", Status: models.SMSStatusSent, SentBy: "u-100", CreatedAt: ts},
			{Recipient: "+255700000002", Body: "Ready", Status: models.SMSStatusSent, SentBy: "system", CreatedAt: ts},
			{Recipient: "+255700000003", Body: "Ready", Status: models.SMSStatusSent, SentBy: "", CreatedAt: ts},
			{Recipient: "+255700000004", Body: "Ready", Status: models.SMSStatusSent, SentBy: "3f2a9c71-dead-beef", CreatedAt: ts},
		},
	}, resolver, Ascending)

	require.Equal(t, "Asha Mushi", events[0].Actor)
	require.Equal(t, "System", events[1].Actor)
	require.Equal(t, "Unknown", events[2].Actor)
	require.Equal(t, "3f2a9c71…", events[3].Actor)
}

func TestStableSortAndOrder(t *testing.T) {
	ts := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	later := ts.Add(time.Hour)

	src := Sources{
		Payments: []models.Payment{
			{Amount: 100, Type: "deposit", Method: "cash", CreatedAt: ts},
			{Amount: 200, Type: "payment", Method: "cash", CreatedAt: ts},
		},
		Ratings: []models.Rating{
			{Score: 5, CreatedAt: later},
		},
	}

	asc := Build(src, nil, Ascending)
	require.Len(t, asc, 3)
	// Equal timestamps keep insertion order.
	require.Contains(t, asc[0].Description, "100")
	require.Contains(t, asc[1].Description, "200")
	require.Equal(t, KindRating, asc[2].Kind)

	desc := Build(src, nil, Descending)
	require.Equal(t, KindRating, desc[0].Kind)
	require.Contains(t, desc[1].Description, "100")
	require.Contains(t, desc[2].Description, "200")
}

func TestAllSourceKindsRepresented(t *testing.T) {
	ts := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	src := Sources{
		Transitions: []models.StatusTransition{{ToStatus: lifecycle.StatusAssigned, CreatedAt: ts}},
		Payments:    []models.Payment{{Amount: 5, CreatedAt: ts}},
		Attachments: []models.Attachment{{FileName: "screen.jpg", CreatedAt: ts}},
		Ratings:     []models.Rating{{Score: 4, CreatedAt: ts}},
		AuditLogs:   []models.AuditLog{{Action: "device_updated", CreatedAt: ts}},
		PointsTx:    []models.PointsTransaction{{Delta: 10, Reason: "repair completed", CreatedAt: ts}},
		SMSLogs:     []models.SMSLog{{Recipient: "+255", Body: "hi", Status: "sent", CreatedAt: ts}},
	}

	events := Build(src, nil, Ascending)
	require.Len(t, events, 7)

	seen := map[Kind]bool{}
	for _, ev := range events {
		seen[ev.Kind] = true
	}
	for _, k := range []Kind{KindStatus, KindPayment, KindAttachment, KindRating, KindAudit, KindPoints, KindSMS} {
		require.True(t, seen[k], "missing kind %s", k)
	}
}
