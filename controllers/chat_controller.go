package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pr-poehali-dev/admin-only-store/models"
	"github.com/pr-poehali-dev/admin-only-store/services"
)

// PostMessageRequest represents the request body for posting a chat
// message on an order
type PostMessageRequest struct {
	Message string `json:"message" binding:"required"`
	Sender  string `json:"sender"`
}

// SiteMessageRequest represents the request body of the storefront chat
// widget
type SiteMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatController exposes the per-order chat and the site chat widget
type ChatController struct {
	chat *services.ChatService
}

// NewChatController creates a chat controller
func NewChatController(chat *services.ChatService) *ChatController {
	return &ChatController{chat: chat}
}

// Thread handles GET /api/v1/orders/:orderNumber/chat - returns the order
// summary plus its messages in chronological order
func (ct *ChatController) Thread(c *gin.Context) {
	thread, err := ct.chat.GetThread(c.Param("orderNumber"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"order":    thread.Order,
		"messages": thread.Messages,
	})
}

// PostMessage handles POST /api/v1/orders/:orderNumber/chat - appends a
// message to the order's thread. Sender defaults to customer; admin
// messages trigger the customer notifications.
func (ct *ChatController) PostMessage(c *gin.Context) {
	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("VALIDATION_ERROR", "Order number and message required"))
		return
	}

	sender := req.Sender
	if sender == "" {
		sender = models.SenderCustomer
	}

	if err := ct.chat.PostMessage(c.Param("orderNumber"), sender, req.Message); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// SiteMessage handles POST /api/v1/contact - relays a chat-widget message
// to the seller's chat bot
func (ct *ChatController) SiteMessage(c *gin.Context) {
	var req SiteMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("VALIDATION_ERROR", "Message is required"))
		return
	}

	if err := ct.chat.SendSiteMessage(req.Message); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Message sent",
	})
}
