package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pr-poehali-dev/admin-only-store/models"
	"github.com/pr-poehali-dev/admin-only-store/services"
)

// ProductPayload is the catalog snapshot sent by the storefront
type ProductPayload struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price"`
}

// CustomerPayload carries customer contact and fulfilment choices. Field
// names match the storefront order form.
type CustomerPayload struct {
	Name            string `json:"name" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
	Email           string `json:"email"`
	DeliveryMethod  string `json:"deliveryMethod"`
	DeliveryCompany string `json:"deliveryCompany"`
	Address         string `json:"address"`
	PaymentMethod   string `json:"paymentMethod"`
	Comment         string `json:"comment"`
}

// CreateOrderRequest represents the request body for submitting an order
type CreateOrderRequest struct {
	Product    ProductPayload  `json:"product" binding:"required"`
	Customer   CustomerPayload `json:"customer" binding:"required"`
	TotalPrice float64         `json:"totalPrice"`
}

// UpdateStatusRequest represents the request body for an admin status
// update
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderController exposes the order lifecycle over HTTP
type OrderController struct {
	orders *services.OrderService
}

// NewOrderController creates an order controller
func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// enumOrDefault validates an enum field from the request body. Empty
// falls back to the default; an unknown value is rejected.
func enumOrDefault(value, fallback string, allowed map[string]bool, field string) (string, error) {
	if value == "" {
		return fallback, nil
	}
	if !allowed[value] {
		return "", &services.ValidationError{Message: fmt.Sprintf("invalid %s %q", field, value)}
	}
	return value, nil
}

// Create handles POST /api/v1/orders - submits a new customer order
func (ct *OrderController) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("VALIDATION_ERROR", "Invalid request data"))
		return
	}

	deliveryMethod, err := enumOrDefault(req.Customer.DeliveryMethod, models.DeliveryPickup,
		models.DeliveryMethods, "delivery method")
	if err != nil {
		respondError(c, err)
		return
	}
	deliveryCompany, err := enumOrDefault(req.Customer.DeliveryCompany, models.DeliveryCompanyNone,
		models.DeliveryCompanies, "delivery company")
	if err != nil {
		respondError(c, err)
		return
	}
	paymentMethod, err := enumOrDefault(req.Customer.PaymentMethod, models.PaymentCash,
		models.PaymentMethods, "payment method")
	if err != nil {
		respondError(c, err)
		return
	}

	order := models.Order{
		ProductID:       req.Product.ID,
		ProductName:     req.Product.Name,
		ProductPrice:    req.Product.Price,
		CustomerName:    req.Customer.Name,
		CustomerPhone:   req.Customer.Phone,
		CustomerEmail:   req.Customer.Email,
		DeliveryMethod:  deliveryMethod,
		DeliveryCompany: deliveryCompany,
		DeliveryAddress: req.Customer.Address,
		PaymentMethod:   paymentMethod,
		TotalPrice:      req.TotalPrice,
		Comment:         req.Customer.Comment,
	}

	orderNumber, err := ct.orders.SubmitOrder(&order)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"orderNumber": orderNumber,
	})
}

// AdminList handles GET /api/v1/admin/orders - full order list with
// derived message counts, newest first
func (ct *OrderController) AdminList(c *gin.Context) {
	orders, err := ct.orders.ListOrders()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
	})
}

// UpdateStatus handles PUT /api/v1/admin/orders/:id/status
func (ct *OrderController) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("VALIDATION_ERROR", "Invalid order id"))
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("VALIDATION_ERROR", "Invalid request data"))
		return
	}

	if err := ct.orders.SetStatus(uint(orderID), req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
