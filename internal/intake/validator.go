package intake

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Result reports every violated field at once so the caller can render all
// errors in a single pass. Validation never panics and never stops early.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// Submission gating thresholds over the completion percentage.
const (
	GateBlockBelow = 70
	GateFullScore  = 100
)

// Gate describes whether the intake form may be submitted.
type Gate struct {
	Completion int    `json:"completion"`
	Allowed    bool   `json:"allowed"`
	Warning    string `json:"warning,omitempty"`
}

// Validate checks the whole intake form. now anchors the "expected return
// date not in the past" rule so the check stays deterministic in tests.
func Validate(form Form, now time.Time) Result {
	errs := map[string]string{}

	if form.CustomerID == "" {
		errs["customer"] = "Customer is required"
	}
	if form.Brand == "" && form.Model == "" {
		errs["brand"] = "Brand or model is required"
	}
	if len(strings.TrimSpace(form.Model)) < 2 {
		errs["model"] = "Model must be at least 2 characters"
	}
	if ok, msg := ValidateSerial(form.SerialNumber); !ok {
		errs["serialNumber"] = msg
	}
	if form.AssignedTo == "" {
		errs["assignedTo"] = "A technician must be assigned"
	}
	if len(strings.Fields(form.IssueDescription)) < 5 {
		errs["issueDescription"] = "Issue description must be at least 5 words"
	}
	if form.ExpectedReturnDate == nil {
		errs["expectedReturnDate"] = "Expected return date is required"
	} else if form.ExpectedReturnDate.Before(now.Truncate(24 * time.Hour)) {
		errs["expectedReturnDate"] = "Expected return date cannot be in the past"
	}

	checkAmount(errs, "repairCost", form.RepairCost)
	checkAmount(errs, "deviceCost", form.DeviceCost)
	checkAmount(errs, "depositAmount", form.DepositAmount)

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// checkAmount validates an optional money field: empty is fine, anything
// else must parse as a non-negative number.
func checkAmount(errs map[string]string, field, value string) {
	if value == "" {
		return
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		errs[field] = "Must be a valid number"
		return
	}
	if n < 0 {
		errs[field] = "Cannot be negative"
	}
}

// CompletionPercentage scores the form against the fixed 7-item checklist
// that gates submission: customer, brand/model, model, serial, technician,
// issue description, and at least one condition flag or note.
func CompletionPercentage(form Form) int {
	checks := []bool{
		form.CustomerID != "",
		form.Brand != "" || form.Model != "",
		form.Model != "",
		strings.TrimSpace(form.SerialNumber) != "",
		form.AssignedTo != "",
		strings.TrimSpace(form.IssueDescription) != "",
		len(form.ConditionFlags) > 0 || strings.TrimSpace(form.ConditionNotes) != "",
	}

	satisfied := 0
	for _, ok := range checks {
		if ok {
			satisfied++
		}
	}
	return int(math.Round(100 * float64(satisfied) / float64(len(checks))))
}

// GateFor computes the submission gate: below 70% submission is blocked,
// 70-99% is allowed with a warning, 100% is allowed silently.
func GateFor(form Form) Gate {
	pct := CompletionPercentage(form)
	switch {
	case pct < GateBlockBelow:
		return Gate{Completion: pct, Allowed: false}
	case pct < GateFullScore:
		return Gate{
			Completion: pct,
			Allowed:    true,
			Warning:    "Some intake details are missing; the device can still be registered.",
		}
	default:
		return Gate{Completion: pct, Allowed: true}
	}
}
