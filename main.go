package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pr-poehali-dev/admin-only-store/config"
	"github.com/pr-poehali-dev/admin-only-store/controllers"
	"github.com/pr-poehali-dev/admin-only-store/middleware"
	"github.com/pr-poehali-dev/admin-only-store/models"
	"github.com/pr-poehali-dev/admin-only-store/services"
	"gorm.io/gorm"
)

func main() {
	log.Println("Starting storefront API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := db.AutoMigrate(&models.Order{}, &models.OrderMessage{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	notifier := services.NewChannelNotifier(cfg)
	router := setupRouter(cfg, db, notifier)

	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires services, controllers and middleware into the Gin
// engine. Split out of main so tests can drive the full router in
// process.
func setupRouter(cfg *config.Config, db *gorm.DB, notifier services.Notifier) *gin.Engine {
	orderService := services.NewOrderService(db, notifier, cfg.MailFrom)
	chatService := services.NewChatService(db, notifier)

	orderController := controllers.NewOrderController(orderService)
	chatController := controllers.NewChatController(chatService)
	authController := controllers.NewAuthController(cfg)

	router := gin.Default()
	router.HandleMethodNotAllowed = true

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", middleware.AdminPasswordHeader},
		MaxAge:          24 * time.Hour,
	}))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)

		v1.POST("/orders", orderController.Create)
		v1.GET("/orders/:orderNumber/chat", chatController.Thread)
		v1.POST("/orders/:orderNumber/chat", chatController.PostMessage)

		v1.POST("/contact", chatController.SiteMessage)
		v1.POST("/auth/check", authController.Check)

		admin := v1.Group("/admin", middleware.RequireAdmin(cfg))
		{
			admin.GET("/orders", orderController.AdminList)
			admin.PUT("/orders/:id/status", orderController.UpdateStatus)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Storefront API is running",
	})
}
