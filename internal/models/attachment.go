package models

import (
	"time"

	"gorm.io/gorm"
)

// Attachment is metadata for a file stored against a device (photos,
// diagnostic reports, invoices). The binary lives in the attachment store;
// deleting an attachment removes both the row and the file.
type Attachment struct {
	ID          string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	DeviceID    string         `gorm:"not null;index" json:"deviceId"`
	FileName    string         `gorm:"not null" json:"fileName"`
	ContentType string         `json:"contentType"`
	SizeBytes   int64          `json:"sizeBytes"`
	StoragePath string         `gorm:"not null" json:"-"`
	UploadedBy  string         `json:"uploadedBy"`
	CreatedAt   time.Time      `json:"createdAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Attachment
func (Attachment) TableName() string {
	return "attachments"
}
