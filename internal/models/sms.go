package models

import "time"

// SMS delivery states as stored in sms_logs
const (
	SMSStatusSent   = "sent"
	SMSStatusQueued = "queued"
	SMSStatusFailed = "failed"
)

// SMSLog records every message handed to the SMS gateway, including ones
// captured into the outbox while the gateway was unreachable.
type SMSLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Recipient  string    `gorm:"not null;index" json:"recipient"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	Status     string    `gorm:"default:'sent';index" json:"status"`
	DeviceID   *string   `gorm:"index" json:"deviceId,omitempty"`
	CustomerID *string   `gorm:"index" json:"customerId,omitempty"`
	SentBy     string    `json:"sentBy"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName specifies the table name for SMSLog
func (SMSLog) TableName() string {
	return "sms_logs"
}

// SMSOutbox holds messages that could not be delivered when submitted.
// A background worker retries them until MaxAttempts is reached; the
// original submission is acknowledged as deferred, not failed.
type SMSOutbox struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	SMSLogID    uint       `gorm:"not null;index" json:"smsLogId"`
	Attempts    int        `gorm:"default:0" json:"attempts"`
	NextAttempt time.Time  `gorm:"index" json:"nextAttempt"`
	LastError   string     `json:"lastError,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for SMSOutbox
func (SMSOutbox) TableName() string {
	return "sms_outbox"
}
