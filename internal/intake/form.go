package intake

import "time"

// Form is the device-intake draft as edited by customer-care staff. Numeric
// inputs stay strings until validation because the draft mirrors raw form
// fields; empty means "not filled in yet".
type Form struct {
	CustomerID         string     `json:"customerId"`
	Brand              string     `json:"brand"`
	Model              string     `json:"model"`
	SerialNumber       string     `json:"serialNumber"`
	IssueDescription   string     `json:"issueDescription"`
	AssignedTo         string     `json:"assignedTo"`
	RepairCost         string     `json:"repairCost"`
	DeviceCost         string     `json:"deviceCost"`
	DepositAmount      string     `json:"depositAmount"`
	ExpectedReturnDate *time.Time `json:"expectedReturnDate,omitempty"`
	DiagnosisRequired  bool       `json:"diagnosisRequired"`
	DepositRequested   bool       `json:"depositRequested"`
	ConditionFlags     []string   `json:"conditionFlags"`
	ConditionNotes     string     `json:"conditionNotes"`
}
