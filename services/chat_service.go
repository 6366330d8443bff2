package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/pr-poehali-dev/admin-only-store/models"
	"github.com/pr-poehali-dev/admin-only-store/utils"
	"gorm.io/gorm"
)

// smsTextLimit caps the message text interpolated into an SMS
const smsTextLimit = 100

// ThreadOrder is the order summary attached to a chat thread
type ThreadOrder struct {
	Number       string    `json:"number"`
	ProductName  string    `json:"product_name"`
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Thread is one order's chat: a summary of the order plus its messages in
// chronological order.
type Thread struct {
	Order    ThreadOrder           `json:"order"`
	Messages []models.OrderMessage `json:"messages"`
}

// ChatService orchestrates the per-order chat between customer and admin,
// including the outbound notifications fired on admin replies.
type ChatService struct {
	db       *gorm.DB
	notifier Notifier
}

// NewChatService creates a chat service backed by the given database
func NewChatService(db *gorm.DB, notifier Notifier) *ChatService {
	return &ChatService{db: db, notifier: notifier}
}

// GetThread returns the chat thread for the order with the given public
// number. Messages come back ascending by creation time.
func (s *ChatService) GetThread(orderNumber string) (*Thread, error) {
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

	var messages []models.OrderMessage
	if err := s.db.Where("order_id = ?", order.ID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, &StorageError{Op: "list messages", Err: err}
	}

	return &Thread{
		Order: ThreadOrder{
			Number:       order.OrderNumber,
			ProductName:  order.ProductName,
			CustomerName: order.CustomerName,
			Status:       order.Status,
			CreatedAt:    order.CreatedAt,
		},
		Messages: messages,
	}, nil
}

// PostMessage appends a message to the order's thread. Admin messages
// additionally trigger best-effort email and SMS notifications to the
// customer, each only when the corresponding contact detail is on file.
// Customer messages trigger nothing; the admin polls the order list.
func (s *ChatService) PostMessage(orderNumber, senderType, text string) error {
	if orderNumber == "" || text == "" {
		return &ValidationError{Message: "order number and message text are required"}
	}
	if senderType != models.SenderCustomer && senderType != models.SenderAdmin {
		return &ValidationError{Message: fmt.Sprintf("invalid sender type %q", senderType)}
	}

	var order models.Order
	err := s.db.Where("order_number = ?", orderNumber).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Resource: "order", Key: orderNumber}
	}
	if err != nil {
		return &StorageError{Op: "get order", Err: err}
	}

	message := models.OrderMessage{
		OrderID:    order.ID,
		SenderType: senderType,
		Text:       text,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return &StorageError{Op: "create message", Err: err}
	}

	if senderType == models.SenderAdmin {
		go s.notifyCustomer(&order, text)
	}
	return nil
}

// notifyCustomer fires the admin-reply notifications. Runs detached from
// the request; every failure is logged and absorbed.
func (s *ChatService) notifyCustomer(order *models.Order, text string) {
	if order.CustomerEmail != "" {
		subject, body, err := renderChatReplyEmail(order, text)
		if err != nil {
			dispatch("email", func() error { return err })
		} else {
			dispatch("email", func() error {
				return s.notifier.SendEmail(order.CustomerEmail, subject, body)
			})
		}
	}

	if order.CustomerPhone != "" {
		smsText := fmt.Sprintf("New message on order #%s: %s",
			order.OrderNumber, utils.TruncateRunes(text, smsTextLimit))
		dispatch("sms", func() error {
			return s.notifier.SendSMS(order.CustomerPhone, smsText)
		})
	}
}

// SendSiteMessage relays a storefront chat-widget message to the seller's
// chat bot. Unlike the order notifications the relay is this operation's
// whole purpose, so its failure is surfaced.
func (s *ChatService) SendSiteMessage(text string) error {
	if text == "" {
		return &ValidationError{Message: "message text is required"}
	}

	message := fmt.Sprintf("New message from the storefront chat:\n\n%s", text)
	if err := s.notifier.SendChatBotMessage(message); err != nil {
		return &NotificationError{Channel: "chat-bot", Err: err}
	}
	return nil
}
