package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records a staff or system action against an entity. Rows are
// append-only and feed the device activity timeline.
type AuditLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Action     string         `gorm:"not null;index" json:"action"`
	EntityType string         `gorm:"index" json:"entityType"`
	EntityID   string         `gorm:"index" json:"entityId"`
	ActorID    string         `gorm:"index" json:"actorId"`
	Details    datatypes.JSON `json:"details"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}
