package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer represents a repair shop customer
type Customer struct {
	ID            string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Phone         string         `gorm:"index" json:"phone"`
	Email         string         `json:"email"`
	LoyaltyPoints int            `gorm:"default:0" json:"loyaltyPoints"`
	Notes         string         `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Customer
func (Customer) TableName() string {
	return "customers"
}

// PointsTransaction records a loyalty point award or redemption. The
// customer's LoyaltyPoints column is the running total; these rows are
// the ledger behind it.
type PointsTransaction struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID string    `gorm:"not null;index" json:"customerId"`
	DeviceID   string    `gorm:"index" json:"deviceId,omitempty"`
	Delta      int       `gorm:"not null" json:"delta"`
	Reason     string    `json:"reason"`
	CreatedBy  string    `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName specifies the table name for PointsTransaction
func (PointsTransaction) TableName() string {
	return "points_transactions"
}
