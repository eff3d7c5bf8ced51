package lifecycle

import (
	"testing"
	"time"
)

var base = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func TestElapsedLabel(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  string
	}{
		{"minutes only", base, base.Add(42 * time.Minute), "42m"},
		{"hours and minutes", base, base.Add(3*time.Hour + 5*time.Minute), "3h 5m"},
		{"days carry hours and minutes", base, base.Add(49*time.Hour + 30*time.Minute), "2d 1h 30m"},
		{"exact day", base, base.Add(24 * time.Hour), "1d 0h 0m"},
		{"sub-minute", base, base.Add(59 * time.Second), "0m"},
		{"zero span", base, base, "0m"},
		{"reversed", base.Add(time.Hour), base, ElapsedSentinel},
		{"missing start", time.Time{}, base, ElapsedSentinel},
	}

	for _, tc := range cases {
		if got := ElapsedLabel(tc.start, tc.end); got != tc.want {
			t.Errorf("%s: ElapsedLabel = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestCountdownTiers(t *testing.T) {
	now := base

	c := CountdownTo(now.Add(24*time.Hour), now)
	if c.Tier != TierNormal {
		t.Errorf("exactly 24h out should be normal, got %q", c.Tier)
	}

	c = CountdownTo(now.Add(24*time.Hour-time.Millisecond), now)
	if c.Tier != TierUrgent {
		t.Errorf("just under 24h should be urgent, got %q", c.Tier)
	}

	c = CountdownTo(now.Add(-time.Millisecond), now)
	if c.Tier != TierOverdue {
		t.Errorf("past deadline should be overdue, got %q", c.Tier)
	}
	if c.Text != "Overdue" {
		t.Errorf("overdue text = %q, want Overdue", c.Text)
	}

	c = CountdownTo(now, now)
	if c.Tier != TierOverdue {
		t.Errorf("zero diff should be overdue, got %q", c.Tier)
	}
}

func TestCountdownTwoUnitTruncation(t *testing.T) {
	now := base
	cases := []struct {
		name   string
		remain time.Duration
		want   string
	}{
		{"days pair with hours", 49*time.Hour + 30*time.Minute, "2d 1h"},
		{"days pair with zero hours", 48*time.Hour + 30*time.Minute, "2d 0h"},
		{"hours and minutes", 3*time.Hour + 7*time.Minute, "3h 7m"},
		{"minutes and seconds", 5*time.Minute + 12*time.Second, "5m 12s"},
		{"seconds only", 42 * time.Second, "42s"},
		{"under a second", 400 * time.Millisecond, "0s"},
	}

	for _, tc := range cases {
		got := CountdownTo(now.Add(tc.remain), now)
		if got.Text != tc.want {
			t.Errorf("%s: text = %q, want %q", tc.name, got.Text, tc.want)
		}
	}
}
