package models

import (
	"time"
)

// Order statuses form a closed set, validated when an admin updates an
// order. Reads never validate so rows predating the closed set stay
// visible.
const (
	StatusNew        = "new"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

const (
	DeliveryPickup      = "pickup"
	DeliveryCourier     = "delivery"
	PaymentCash         = "cash"
	PaymentCard         = "card"
	PaymentOnline       = "online"
	DeliveryCompanyNone = "none"
)

// OrderStatuses is the set of values accepted by a status update
var OrderStatuses = map[string]bool{
	StatusNew:        true,
	StatusProcessing: true,
	StatusShipped:    true,
	StatusCompleted:  true,
	StatusCancelled:  true,
}

// DeliveryMethods is the set of accepted delivery methods
var DeliveryMethods = map[string]bool{
	DeliveryPickup:  true,
	DeliveryCourier: true,
}

// DeliveryCompanies is the set of accepted carrier codes
var DeliveryCompanies = map[string]bool{
	"cdek":              true,
	"boxberry":          true,
	"pochta":            true,
	"dpd":               true,
	"yandex":            true,
	DeliveryCompanyNone: true,
}

// PaymentMethods is the set of accepted payment methods
var PaymentMethods = map[string]bool{
	PaymentCash:   true,
	PaymentCard:   true,
	PaymentOnline: true,
}

// Order represents a customer purchase. The product fields are a snapshot
// taken at order time, not a live catalog reference. OrderNumber is the
// public identifier handed to the customer; the numeric ID never leaves
// the admin surface.
type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null" json:"order_number"`

	ProductID    int64   `json:"product_id"`
	ProductName  string  `gorm:"not null" json:"product_name"`
	ProductPrice float64 `json:"product_price"`

	CustomerName  string `gorm:"not null" json:"customer_name"`
	CustomerPhone string `gorm:"not null" json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`

	DeliveryMethod  string `gorm:"not null;default:'pickup'" json:"delivery_method"`
	DeliveryCompany string `gorm:"not null;default:'none'" json:"delivery_company"`
	DeliveryAddress string `json:"delivery_address"`
	PaymentMethod   string `gorm:"not null;default:'cash'" json:"payment_method"`

	TotalPrice float64 `gorm:"not null" json:"total_price"`
	Comment    string  `json:"comment"`
	Status     string  `gorm:"not null;default:'new'" json:"status"`

	// MessageCount is recomputed on read (count of all messages on the
	// order); it is never stored.
	MessageCount int64 `gorm:"->;-:migration" json:"message_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
