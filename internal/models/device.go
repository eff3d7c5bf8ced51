package models

import (
	"time"

	"github.com/lats-hub/repairgo/internal/lifecycle"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Device represents a physical intake record tracked through the repair
// lifecycle. The Status column always reflects the latest transition;
// history lives in status_transitions and is never rewritten.
type Device struct {
	ID                 string                 `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CustomerID         string                 `gorm:"not null;index" json:"customerId"`
	Brand              string                 `json:"brand"`
	Model              string                 `gorm:"not null" json:"model"`
	SerialNumber       string                 `gorm:"index" json:"serialNumber"`
	IssueDescription   string                 `gorm:"type:text" json:"issueDescription"`
	Status             lifecycle.DeviceStatus `gorm:"default:'assigned';index" json:"status"`
	AssignedTo         string                 `gorm:"index" json:"assignedTo"`
	RepairCost         float64                `json:"repairCost"`
	DeviceCost         float64                `json:"deviceCost"`
	DepositAmount      float64                `json:"depositAmount"`
	DiagnosisRequired  bool                   `gorm:"default:false" json:"diagnosisRequired"`
	DepositRequested   bool                   `gorm:"default:false" json:"depositRequested"`
	ConditionFlags     datatypes.JSON         `json:"conditionFlags"`
	ExpectedReturnDate *time.Time             `json:"expectedReturnDate,omitempty"`
	CreatedAt          time.Time              `json:"createdAt"`
	UpdatedAt          time.Time              `json:"updatedAt"`
	DeletedAt          gorm.DeletedAt         `gorm:"index" json:"-"`

	// Relations
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// TableName specifies the table name for Device
func (Device) TableName() string {
	return "devices"
}

// StatusTransition is an immutable record of a device moving between
// lifecycle statuses. Rows are appended on every change and never mutated;
// consumers search by status value, not array position.
type StatusTransition struct {
	ID          uint                    `gorm:"primaryKey" json:"id"`
	DeviceID    string                  `gorm:"not null;index" json:"deviceId"`
	FromStatus  *lifecycle.DeviceStatus `json:"fromStatus,omitempty"`
	ToStatus    lifecycle.DeviceStatus  `gorm:"not null;index" json:"toStatus"`
	PerformedBy string                  `json:"performedBy"`
	CreatedAt   time.Time               `json:"createdAt"`
}

// TableName specifies the table name for StatusTransition
func (StatusTransition) TableName() string {
	return "status_transitions"
}

// WorkSession tracks a technician's timed work on a device (start/stop timer)
type WorkSession struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	DeviceID     string     `gorm:"not null;index" json:"deviceId"`
	TechnicianID string     `gorm:"not null;index" json:"technicianId"`
	StartedAt    time.Time  `gorm:"not null" json:"startedAt"`
	EndedAt      *time.Time `json:"endedAt,omitempty"`
	Notes        string     `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for WorkSession
func (WorkSession) TableName() string {
	return "work_sessions"
}
