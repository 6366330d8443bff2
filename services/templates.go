package services

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/pr-poehali-dev/admin-only-store/models"
)

// Human-readable labels for the enum codes stored on an order
var (
	deliveryMethodLabels = map[string]string{
		models.DeliveryPickup:  "Pickup",
		models.DeliveryCourier: "Delivery",
	}

	deliveryCompanyLabels = map[string]string{
		"cdek":                     "CDEK",
		"boxberry":                 "Boxberry",
		"pochta":                   "Russian Post",
		"dpd":                      "DPD",
		"yandex":                   "Yandex Delivery",
		models.DeliveryCompanyNone: "Own delivery service",
	}

	paymentMethodLabels = map[string]string{
		models.PaymentCash:   "Cash on delivery",
		models.PaymentCard:   "Card on delivery",
		models.PaymentOnline: "Online payment",
	}
)

func labelOr(labels map[string]string, code, fallback string) string {
	if label, ok := labels[code]; ok {
		return label
	}
	return fallback
}

// newOrderEmail is the seller notification rendered when an order is
// submitted. Customer-controlled fields go through html/template escaping.
var newOrderEmail = template.Must(template.New("newOrder").Parse(`
<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h2 style="color: #4F46E5;">New order #{{.OrderNumber}}</h2>

    <h3>Product:</h3>
    <p>
      <strong>{{.ProductName}}</strong><br>
      Price: <strong>{{.ProductPrice}} ₽</strong>
    </p>

    <h3>Customer:</h3>
    <p>
      Name: <strong>{{.CustomerName}}</strong><br>
      Phone: <strong>{{.CustomerPhone}}</strong><br>
      Email: {{if .CustomerEmail}}{{.CustomerEmail}}{{else}}not provided{{end}}
    </p>

    <h3>Delivery:</h3>
    <p><strong>{{.DeliveryMethod}}</strong></p>
    {{if .DeliveryCompany}}<p>Carrier: <strong>{{.DeliveryCompany}}</strong></p>{{end}}
    {{if .DeliveryAddress}}<p>Address: {{.DeliveryAddress}}</p>{{end}}

    <h3>Payment:</h3>
    <p><strong>{{.PaymentMethod}}</strong></p>

    {{if .Comment}}<h3>Comment:</h3><p>{{.Comment}}</p>{{end}}

    <hr style="margin: 20px 0; border: none; border-top: 1px solid #ddd;">
    <h3>Total: <span style="color: #4F46E5;">{{.TotalPrice}} ₽</span></h3>
  </body>
</html>
`))

// chatReplyEmail is the customer notification rendered when the admin
// posts a chat message on their order.
var chatReplyEmail = template.Must(template.New("chatReply").Parse(`
<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h2 style="color: #4F46E5;">New message on order #{{.OrderNumber}}</h2>
    <p>Hello, {{.CustomerName}}!</p>
    <p>You have a new message about your order <strong>{{.ProductName}}</strong>:</p>
    <blockquote style="background: #f5f5f5; padding: 15px; border-left: 4px solid #4F46E5; margin: 20px 0;">
      {{.Text}}
    </blockquote>
  </body>
</html>
`))

type newOrderEmailData struct {
	OrderNumber     string
	ProductName     string
	ProductPrice    float64
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	DeliveryMethod  string
	DeliveryCompany string
	DeliveryAddress string
	PaymentMethod   string
	Comment         string
	TotalPrice      float64
}

// renderNewOrderEmail builds the seller notification subject and body
func renderNewOrderEmail(order *models.Order) (subject, body string, err error) {
	data := newOrderEmailData{
		OrderNumber:     order.OrderNumber,
		ProductName:     order.ProductName,
		ProductPrice:    order.ProductPrice,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		CustomerEmail:   order.CustomerEmail,
		DeliveryMethod:  labelOr(deliveryMethodLabels, order.DeliveryMethod, "Pickup"),
		PaymentMethod:   labelOr(paymentMethodLabels, order.PaymentMethod, "Cash on delivery"),
		DeliveryAddress: order.DeliveryAddress,
		Comment:         order.Comment,
		TotalPrice:      order.TotalPrice,
	}
	// the carrier line only makes sense for courier delivery
	if order.DeliveryMethod == models.DeliveryCourier {
		data.DeliveryCompany = labelOr(deliveryCompanyLabels, order.DeliveryCompany, "Not selected")
	}

	var b strings.Builder
	if err := newOrderEmail.Execute(&b, data); err != nil {
		return "", "", fmt.Errorf("failed to render order email: %w", err)
	}
	subject = fmt.Sprintf("New order #%s: %s", order.OrderNumber, order.ProductName)
	return subject, b.String(), nil
}

type chatReplyEmailData struct {
	OrderNumber  string
	CustomerName string
	ProductName  string
	Text         string
}

// renderChatReplyEmail builds the customer notification subject and body
func renderChatReplyEmail(order *models.Order, text string) (subject, body string, err error) {
	data := chatReplyEmailData{
		OrderNumber:  order.OrderNumber,
		CustomerName: order.CustomerName,
		ProductName:  order.ProductName,
		Text:         text,
	}

	var b strings.Builder
	if err := chatReplyEmail.Execute(&b, data); err != nil {
		return "", "", fmt.Errorf("failed to render chat email: %w", err)
	}
	subject = fmt.Sprintf("New message on order #%s", order.OrderNumber)
	return subject, b.String(), nil
}
