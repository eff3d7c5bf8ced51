package lifecycle

import (
	"fmt"
	"time"
)

// ElapsedSentinel is returned when an elapsed duration cannot be computed
// (reversed timestamps, zero span, missing data).
const ElapsedSentinel = "-"

// ElapsedLabel renders the wall-clock span between two timestamps as a
// compact "Xd Yh Zm" style string. Units are truncated, never rounded up.
// A non-positive span yields the sentinel, a sub-minute positive span "0m".
func ElapsedLabel(start, end time.Time) string {
	if start.IsZero() || end.IsZero() {
		return ElapsedSentinel
	}
	diff := end.Sub(start)
	if diff < 0 {
		return ElapsedSentinel
	}

	totalSeconds := int64(diff / time.Second)
	days := totalSeconds / 86400
	hours := (totalSeconds % 86400) / 3600
	minutes := (totalSeconds % 3600) / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// CountdownTier classifies how close a deadline is.
type CountdownTier string

const (
	TierOverdue CountdownTier = "overdue"
	TierUrgent  CountdownTier = "urgent"
	TierNormal  CountdownTier = "normal"
)

// Countdown is a live "time remaining" display value. Callers recompute it
// on a polling cadence (the UI ticks every second); it is never persisted.
type Countdown struct {
	Text string        `json:"text"`
	Tier CountdownTier `json:"tier"`
}

// CountdownTo computes the remaining time until target, truncated to the
// two largest applicable units. Exactly 24h remaining is still "normal";
// "urgent" requires strictly less than 24h.
func CountdownTo(target, now time.Time) Countdown {
	diff := target.Sub(now)
	if diff <= 0 {
		return Countdown{Text: "Overdue", Tier: TierOverdue}
	}

	tier := TierNormal
	if diff < 24*time.Hour {
		tier = TierUrgent
	}

	totalSeconds := int64(diff / time.Second)
	days := totalSeconds / 86400
	hours := (totalSeconds % 86400) / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	// At most two units, largest first. Hours ride along with days even
	// when zero, so "2d 0h" reads consistently; minutes are dropped once
	// days are shown and seconds only appear under the one hour mark.
	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 && days == 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if days == 0 && hours == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	if len(parts) > 2 {
		parts = parts[:2]
	}

	text := parts[0]
	if len(parts) == 2 {
		text = parts[0] + " " + parts[1]
	}
	return Countdown{Text: text, Tier: tier}
}
