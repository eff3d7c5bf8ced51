package models

import "time"

// Rating is a customer's score for a technician's work on a device
type Rating struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	DeviceID     string    `gorm:"not null;index" json:"deviceId"`
	TechnicianID string    `gorm:"not null;index" json:"technicianId"`
	Score        int       `gorm:"not null" json:"score"` // 1-5
	Comment      string    `gorm:"type:text" json:"comment"`
	CreatedBy    string    `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TableName specifies the table name for Rating
func (Rating) TableName() string {
	return "ratings"
}

// Remark is a free-text note attached to a device by staff
type Remark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DeviceID  string    `gorm:"not null;index" json:"deviceId"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for Remark
func (Remark) TableName() string {
	return "remarks"
}
