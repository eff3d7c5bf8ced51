package lifecycle

import "testing"

func TestProgressTable(t *testing.T) {
	cases := []struct {
		status DeviceStatus
		want   int
	}{
		{StatusAssigned, 0},
		{StatusDiagnosisStarted, 20},
		{StatusAwaitingParts, 30},
		{StatusInRepair, 60},
		{StatusTesting, 80},
		{StatusRepairComplete, 90},
		{StatusCustomerCare, 95},
		{StatusDone, 100},
		{StatusFailed, 0},
	}

	for _, tc := range cases {
		if got := ProgressForStatus(tc.status); got != tc.want {
			t.Errorf("ProgressForStatus(%q) = %d, want %d", tc.status, got, tc.want)
		}
	}
}

func TestProgressMonotonicAlongFlow(t *testing.T) {
	prev := -1
	for _, status := range RepairFlow {
		pct := ProgressForStatus(status)
		if pct < prev {
			t.Errorf("progress decreased at %q: %d -> %d", status, prev, pct)
		}
		prev = pct
	}
}

func TestProgressUnknownStatus(t *testing.T) {
	for _, status := range []DeviceStatus{"", "shipped", "ASSIGNED", "in_repair"} {
		if got := ProgressForStatus(status); got != 0 {
			t.Errorf("ProgressForStatus(%q) = %d, want 0", status, got)
		}
	}
}

func TestFailedAlwaysZero(t *testing.T) {
	if got := ProgressForStatus(StatusFailed); got != 0 {
		t.Errorf("failed status should map to 0, got %d", got)
	}
	if IsKnown("shipped") {
		t.Error("unknown status reported as known")
	}
	if !IsTerminal(StatusDone) || !IsTerminal(StatusFailed) {
		t.Error("done and failed should be terminal")
	}
	if IsTerminal(StatusInRepair) {
		t.Error("in-repair should not be terminal")
	}
}
