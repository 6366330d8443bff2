package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/pr-poehali-dev/admin-only-store/models"
	"gorm.io/gorm"
)

const (
	orderNumberPrefix = "ORD-"
	orderNumberBytes  = 6

	// attempts at generating a unique order number before giving up;
	// with 48 random bits a second collision in a row is effectively
	// impossible, the bound exists so a broken unique index cannot
	// spin forever
	maxOrderNumberAttempts = 5
)

// OrderService orchestrates the order lifecycle: creation with seller
// notification, admin listing, lookup and status updates.
type OrderService struct {
	db          *gorm.DB
	notifier    Notifier
	sellerEmail string

	// newOrderNumber is swappable in tests to force collisions
	newOrderNumber func() (string, error)
}

// NewOrderService creates an order service backed by the given database.
// sellerEmail is where new-order notifications go; empty disables them
// (the email channel no-ops without a configured mailbox anyway).
func NewOrderService(db *gorm.DB, notifier Notifier, sellerEmail string) *OrderService {
	return &OrderService{
		db:             db,
		notifier:       notifier,
		sellerEmail:    sellerEmail,
		newOrderNumber: generateOrderNumber,
	}
}

// generateOrderNumber builds the public order identifier: a fixed prefix
// plus an uppercase hex token from 6 cryptographically random bytes.
func generateOrderNumber() (string, error) {
	buf := make([]byte, orderNumberBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}
	return orderNumberPrefix + strings.ToUpper(hex.EncodeToString(buf)), nil
}

// SubmitOrder persists a new order and returns its public order number.
// The number is regenerated and the insert retried on a unique-constraint
// violation, bounded at maxOrderNumberAttempts. On success a seller email
// is fired on a detached goroutine; its failure never reaches the caller.
func (s *OrderService) SubmitOrder(order *models.Order) (string, error) {
	if order.CustomerName == "" || order.CustomerPhone == "" {
		return "", &ValidationError{Message: "customer name and phone are required"}
	}
	if order.ProductName == "" {
		return "", &ValidationError{Message: "product name is required"}
	}

	order.Status = models.StatusNew

	var lastErr error
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		number, err := s.newOrderNumber()
		if err != nil {
			return "", err
		}
		order.OrderNumber = number

		err = s.db.Create(order).Error
		if err == nil {
			notified := *order
			go s.notifySeller(&notified)
			return number, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// collision with an existing number, try a fresh one
			order.ID = 0
			lastErr = err
			continue
		}
		return "", &StorageError{Op: "create order", Err: err}
	}
	return "", &StorageError{Op: "create order", Err: fmt.Errorf("order number attempts exhausted: %w", lastErr)}
}

// notifySeller renders and fires the new-order email. Best effort: render
// or send failures are logged and absorbed.
func (s *OrderService) notifySeller(order *models.Order) {
	if s.sellerEmail == "" {
		return
	}
	subject, body, err := renderNewOrderEmail(order)
	if err != nil {
		dispatch("email", func() error { return err })
		return
	}
	dispatch("email", func() error {
		return s.notifier.SendEmail(s.sellerEmail, subject, body)
	})
}

// ListOrders returns all orders newest-first with the derived message
// count (count of all messages on the order).
func (s *OrderService) ListOrders() ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Model(&models.Order{}).
		Select("orders.*, (SELECT COUNT(*) FROM order_messages WHERE order_messages.order_id = orders.id) AS message_count").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, &StorageError{Op: "list orders", Err: err}
	}
	return orders, nil
}

// GetOrderByNumber resolves an order by its public order number
func (s *OrderService) GetOrderByNumber(orderNumber string) (*models.Order, error) {
	if orderNumber == "" {
		return nil, &ValidationError{Message: "order number is required"}
	}

	var order models.Order
	err := s.db.Where("order_number = ?", orderNumber).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "order", Key: orderNumber}
	}
	if err != nil {
		return nil, &StorageError{Op: "get order", Err: err}
	}
	return &order, nil
}

// SetStatus overwrites the status of the order with the given internal id.
// The status must belong to the closed set; an unknown order id is an
// error, not a silent no-op.
func (s *OrderService) SetStatus(orderID uint, status string) error {
	if !models.OrderStatuses[status] {
		return &ValidationError{Message: fmt.Sprintf("invalid status %q", status)}
	}

	result := s.db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status)
	if result.Error != nil {
		return &StorageError{Op: "update status", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: "order", Key: fmt.Sprintf("%d", orderID)}
	}
	return nil
}
