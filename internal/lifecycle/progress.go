package lifecycle

// DeviceStatus is a step in the repair lifecycle of an intake device
type DeviceStatus string

const (
	StatusAssigned         DeviceStatus = "assigned"
	StatusDiagnosisStarted DeviceStatus = "diagnosis-started"
	StatusAwaitingParts    DeviceStatus = "awaiting-parts"
	StatusInRepair         DeviceStatus = "in-repair"
	StatusTesting          DeviceStatus = "reassembled-testing"
	StatusRepairComplete   DeviceStatus = "repair-complete"
	StatusCustomerCare     DeviceStatus = "returned-to-customer-care"
	StatusDone             DeviceStatus = "done"
	StatusFailed           DeviceStatus = "failed"
)

// statusProgress maps each lifecycle status to a completion percentage
// shown on the device progress bar.
var statusProgress = map[DeviceStatus]int{
	StatusAssigned:         0,
	StatusDiagnosisStarted: 20,
	StatusAwaitingParts:    30,
	StatusInRepair:         60,
	StatusTesting:          80,
	StatusRepairComplete:   90,
	StatusCustomerCare:     95,
	StatusDone:             100,
	StatusFailed:           0,
}

// RepairFlow is the normal forward ordering of statuses. Used for
// transition validation and progress display.
var RepairFlow = []DeviceStatus{
	StatusAssigned,
	StatusDiagnosisStarted,
	StatusAwaitingParts,
	StatusInRepair,
	StatusTesting,
	StatusRepairComplete,
	StatusCustomerCare,
	StatusDone,
}

// ProgressForStatus returns the completion percentage for a status.
// Unknown or empty statuses map to 0, never an error.
func ProgressForStatus(status DeviceStatus) int {
	if pct, ok := statusProgress[status]; ok {
		return pct
	}
	return 0
}

// IsKnown reports whether the status belongs to the lifecycle set.
func IsKnown(status DeviceStatus) bool {
	_, ok := statusProgress[status]
	return ok
}

// IsTerminal reports whether a device in this status has left the shop flow.
func IsTerminal(status DeviceStatus) bool {
	return status == StatusDone || status == StatusFailed
}
