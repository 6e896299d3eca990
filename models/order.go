package models

import (
	"time"

	"gorm.io/datatypes"
)

type OrderStatus string
type PaymentType string

const (
	// Order lifecycle: placed orders start in progress, a courier claim
	// moves them to accepted, the courier hands off to pending and the
	// client confirms completion. Cancelled is terminal.
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusAccepted   OrderStatus = "accepted"
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"

	PaymentTypeCash   PaymentType = "cash"
	PaymentTypeCredit PaymentType = "credit_card"
	PaymentTypeDebit  PaymentType = "debit_card"
)

// ParsePaymentType validates a payment type coming from a request.
func ParsePaymentType(s string) (PaymentType, bool) {
	switch PaymentType(s) {
	case PaymentTypeCash, PaymentTypeCredit, PaymentTypeDebit:
		return PaymentType(s), true
	default:
		return "", false
	}
}

type Order struct {
	ID              uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Ref             string         `gorm:"uniqueIndex" json:"ref"`
	ClientID        uint           `gorm:"not null;index" json:"client_id"`
	ClientName      string         `json:"client_name"`
	Phone           string         `json:"phone"`
	AddressID       uint           `gorm:"not null" json:"address_id"`
	Address         Address        `gorm:"foreignKey:AddressID" json:"address"`
	PaymentMethodID *uint          `json:"payment_method_id"`
	PaymentMethod   *PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"payment_method,omitempty"`
	Total           float64        `json:"total"`
	Status          OrderStatus    `gorm:"type:VARCHAR(20);index" json:"status"`
	Detail          string         `json:"detail"`
	CourierID       *uint          `gorm:"index" json:"courier_id"`
	CourierName     string         `json:"courier_name"`
	StartedAt       time.Time      `json:"started_at"`
	EndedAt         *time.Time     `json:"ended_at"`
}

// Address rows are written once per order submission and never reused.
type Address struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Country    string `json:"country"`
	State      string `json:"state"`
	City       string `json:"city"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	Reference  string `json:"reference"`
}

// PaymentMethod is deduplicated by card number: placing an order with a
// card number that already exists overwrites that row in place. Cash is
// never stored here.
type PaymentMethod struct {
	ID         uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	CardNumber string      `gorm:"uniqueIndex;not null" json:"card_number"`
	HolderName string      `json:"holder_name"`
	CVV        string      `json:"-"`
	Expiry     string      `json:"expiry"`
	Type       PaymentType `gorm:"type:VARCHAR(20)" json:"type"`
}

// OrderLog snapshots what was ordered at placement time, so later menu
// edits do not rewrite order history.
type OrderLog struct {
	ID      uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID uint           `gorm:"uniqueIndex;not null" json:"order_id"`
	Items   datatypes.JSON `json:"items"`
}
