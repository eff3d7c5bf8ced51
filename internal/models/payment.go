package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment represents money received against a device repair (deposit,
// partial, final) or a refund. Inserting a payment also adjusts the
// receiving finance account's balance inside the same DB transaction.
type Payment struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	DeviceID         *string        `gorm:"index" json:"deviceId,omitempty"`
	CustomerID       string         `gorm:"not null;index" json:"customerId"`
	FinanceAccountID uint           `gorm:"not null;index" json:"financeAccountId"`
	Amount           float64        `gorm:"not null" json:"amount"`
	Method           string         `gorm:"default:'cash'" json:"method"`
	Type             string         `gorm:"default:'payment'" json:"type"` // payment, deposit, refund
	Status           string         `gorm:"default:'completed'" json:"status"`
	Reference        string         `json:"reference,omitempty"`
	CreatedBy        string         `json:"createdBy"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// FinanceAccount is a named cash/bank account with a running balance
type FinanceAccount struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	Balance   float64   `gorm:"default:0" json:"balance"`
	Currency  string    `gorm:"default:'TZS'" json:"currency"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for FinanceAccount
func (FinanceAccount) TableName() string {
	return "finance_accounts"
}
