package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/mkowalik/copydesk/internal/server/http/handlers"
	"github.com/mkowalik/copydesk/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.CopydeskFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	accountHandler := handlers.NewAccountHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade)

	api := engine.Group("/api")
	api.POST("/webhooks/checkout", webhookHandler.Checkout)

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.GET("/profile", accountHandler.Profile)
	userAuth.PUT("/profile/billing", accountHandler.UpdateBilling)
	userAuth.PUT("/profile/notifications", accountHandler.UpdateNotifications)
	userAuth.GET("/balance", accountHandler.Balance)
	userAuth.POST("/orders", orderHandler.Create)
	userAuth.GET("/orders", orderHandler.List)
	userAuth.GET("/orders/:number", orderHandler.Get)
	userAuth.DELETE("/orders/:number", orderHandler.Cancel)
	userAuth.POST("/orders/:number/uploads", orderHandler.Upload)
	userAuth.GET("/orders/:number/attachments", orderHandler.Attachments)
	userAuth.POST("/payments", paymentHandler.Start)
	userAuth.GET("/payments", paymentHandler.List)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(facade), middleware.AdminRequired(facade))
	admin.GET("/orders", adminHandler.List)
	admin.GET("/orders/:number", adminHandler.Get)
	admin.POST("/orders/:number/progress", adminHandler.MarkInProgress)
	admin.POST("/orders/:number/complete", adminHandler.Complete)
	admin.DELETE("/orders/:number", adminHandler.Cancel)
	admin.POST("/orders/:number/deliveries", adminHandler.Deliver)

	return engine
}
