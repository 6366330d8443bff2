package models

import (
	"time"
)

// Message sender types
const (
	SenderCustomer = "customer"
	SenderAdmin    = "admin"
)

// OrderMessage represents one entry in an order's chat thread. Messages
// are append-only and always keyed by the internal order id.
type OrderMessage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	Order      Order     `gorm:"foreignKey:OrderID" json:"-"` // don't include full order in JSON
	SenderType string    `gorm:"not null" json:"sender"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for the OrderMessage model
func (OrderMessage) TableName() string {
	return "order_messages"
}
