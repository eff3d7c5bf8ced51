package intake

import (
	"reflect"
	"testing"
	"time"
)

var now = time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

func completeForm() Form {
	ret := now.Add(72 * time.Hour)
	return Form{
		CustomerID:         "cust-1",
		Brand:              "Samsung",
		Model:              "SM-A155F",
		SerialNumber:       "123456789012345",
		IssueDescription:   "Screen cracked after a fall yesterday",
		AssignedTo:         "tech-1",
		RepairCost:         "45000",
		ExpectedReturnDate: &ret,
		ConditionFlags:     []string{"screen-cracked"},
	}
}

func TestValidateCompleteForm(t *testing.T) {
	res := Validate(completeForm(), now)
	if !res.Valid {
		t.Fatalf("complete form should validate, got errors: %v", res.Errors)
	}
	if len(res.Errors) != 0 {
		t.Errorf("expected empty error map, got %v", res.Errors)
	}
}

func TestValidateReportsAllViolations(t *testing.T) {
	past := now.Add(-48 * time.Hour)
	form := Form{
		Model:              "X",
		SerialNumber:       "iPhone 15",
		IssueDescription:   "broken",
		RepairCost:         "-5",
		DeviceCost:         "abc",
		ExpectedReturnDate: &past,
	}

	res := Validate(form, now)
	if res.Valid {
		t.Fatal("form with violations should be invalid")
	}

	for _, field := range []string{
		"customer", "model", "serialNumber", "assignedTo",
		"issueDescription", "expectedReturnDate", "repairCost", "deviceCost",
	} {
		if _, ok := res.Errors[field]; !ok {
			t.Errorf("expected error for field %q, got %v", field, res.Errors)
		}
	}
}

func TestValidateOptionalAmounts(t *testing.T) {
	form := completeForm()
	form.RepairCost = ""
	form.DeviceCost = ""
	form.DepositAmount = "0"

	res := Validate(form, now)
	if !res.Valid {
		t.Errorf("empty optional amounts should pass, got %v", res.Errors)
	}
}

func TestValidateIdempotent(t *testing.T) {
	form := Form{Model: "X", SerialNumber: "N/A"}

	first := Validate(form, now)
	second := Validate(form, now)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("validation is not idempotent:\n%v\n%v", first, second)
	}
}

func TestCompletionPercentage(t *testing.T) {
	// 5 of 7 checks satisfied: round(500/7) = 71.
	form := Form{
		CustomerID:       "cust-1",
		Brand:            "Samsung",
		Model:            "SM-A155F",
		SerialNumber:     "123456789012345",
		IssueDescription: "Screen cracked after a fall",
	}
	// customer, brand/model, model, serial, issue = 5; technician and
	// condition checklist unsatisfied.
	if got := CompletionPercentage(form); got != 71 {
		t.Errorf("5/7 completion = %d, want 71", got)
	}

	gate := GateFor(form)
	if !gate.Allowed {
		t.Error("71%% completion should allow submission")
	}
	if gate.Warning == "" {
		t.Error("71%% completion should carry a warning")
	}

	// Drop to 4 of 7: round(400/7) = 57, submission blocked.
	form.IssueDescription = ""
	if got := CompletionPercentage(form); got != 57 {
		t.Errorf("4/7 completion = %d, want 57", got)
	}
	gate = GateFor(form)
	if gate.Allowed {
		t.Error("57%% completion must block submission")
	}

	full := completeForm()
	if got := CompletionPercentage(full); got != 100 {
		t.Errorf("full form completion = %d, want 100", got)
	}
	gate = GateFor(full)
	if !gate.Allowed || gate.Warning != "" {
		t.Errorf("full form should submit without warning, got %+v", gate)
	}
}

func TestReturnDateToday(t *testing.T) {
	form := completeForm()
	today := now.Truncate(24 * time.Hour)
	form.ExpectedReturnDate = &today

	res := Validate(form, now)
	if _, ok := res.Errors["expectedReturnDate"]; ok {
		t.Errorf("a return date of today should not count as past: %v", res.Errors)
	}
}
