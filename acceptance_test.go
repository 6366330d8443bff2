package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pr-poehali-dev/admin-only-store/config"
	"github.com/pr-poehali-dev/admin-only-store/models"
	"github.com/pr-poehali-dev/admin-only-store/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestOrderAndChatFlow drives the full router through the storefront's
// happy path: submit an order, chat on it from both sides, manage it as
// admin.
func TestOrderAndChatFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.OrderMessage{}))

	cfg := &config.Config{
		AdminPassword: "s3cret",
		MailFrom:      "seller@example.com",
	}
	notifier := services.NewMockNotifier()
	router := setupRouter(cfg, db, notifier)

	send := func(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decode := func(w *httptest.ResponseRecorder) map[string]interface{} {
		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		return response
	}

	admin := map[string]string{"X-Admin-Password": "s3cret"}

	// health
	w := send(http.MethodGet, "/api/v1/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// customer submits an order
	w = send(http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"product": map[string]interface{}{
			"id": 17, "name": "Handmade ceramic mug", "price": 1200,
		},
		"customer": map[string]interface{}{
			"name":  "Anna",
			"phone": "+7 (912) 345-67-89",
			"email": "anna@example.com",
		},
		"totalPrice": 1200,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	orderNumber := decode(w)["orderNumber"].(string)
	require.Regexp(t, `^ORD-[0-9A-F]{12}$`, orderNumber)

	// the seller gets exactly one email about it
	assert.Eventually(t, func() bool {
		return len(notifier.Emails()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "seller@example.com", notifier.Emails()[0].To)
	notifier.Clear()

	// admin endpoints demand the shared secret
	w = send(http.MethodGet, "/api/v1/admin/orders", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// the admin login screen can validate the password
	w = send(http.MethodPost, "/api/v1/auth/check", map[string]interface{}{"password": "s3cret"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(w)["valid"])

	// admin sees the fresh order first, with no messages yet
	w = send(http.MethodGet, "/api/v1/admin/orders", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	orders := decode(w)["orders"].([]interface{})
	require.Len(t, orders, 1)
	listed := orders[0].(map[string]interface{})
	assert.Equal(t, orderNumber, listed["order_number"])
	assert.Equal(t, "new", listed["status"])
	assert.Equal(t, float64(0), listed["message_count"])

	// customer asks a question, admin replies
	chatPath := fmt.Sprintf("/api/v1/orders/%s/chat", orderNumber)
	w = send(http.MethodPost, chatPath, map[string]interface{}{
		"message": "When will it ship?",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = send(http.MethodPost, chatPath, map[string]interface{}{
		"message": "Tomorrow morning", "sender": "admin",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// the admin reply notifies the customer over both channels
	assert.Eventually(t, func() bool {
		return len(notifier.Emails()) == 1 && len(notifier.SMS()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "anna@example.com", notifier.Emails()[0].To)

	// the thread reads back in order
	w = send(http.MethodGet, chatPath, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	thread := decode(w)
	messages := thread["messages"].([]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, "When will it ship?", messages[0].(map[string]interface{})["text"])
	assert.Equal(t, "Tomorrow morning", messages[1].(map[string]interface{})["text"])

	// admin moves the order along; the count and status show up in the list
	orderID := int(listed["id"].(float64))
	w = send(http.MethodPut, fmt.Sprintf("/api/v1/admin/orders/%d/status", orderID),
		map[string]interface{}{"status": "shipped"}, admin)
	require.Equal(t, http.StatusOK, w.Code)

	w = send(http.MethodGet, "/api/v1/admin/orders", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	listed = decode(w)["orders"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "shipped", listed["status"])
	assert.Equal(t, float64(2), listed["message_count"])

	// the customer sees the new status on the tracking view
	w = send(http.MethodGet, chatPath, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "shipped", decode(w)["order"].(map[string]interface{})["status"])
}

// TestCORSPreflight checks the fixed preflight contract the storefront
// frontend depends on.
func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.OrderMessage{}))

	router := setupRouter(&config.Config{}, db, services.NewMockNotifier())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/orders", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
}

// TestMethodNotAllowed checks that unsupported methods answer 405
func TestMethodNotAllowed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.OrderMessage{}))

	router := setupRouter(&config.Config{}, db, services.NewMockNotifier())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/contact", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
