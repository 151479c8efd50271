// server/internal/api/routes/routes.go
package routes

import (
	"context"
	"log/slog"

	"parcelio-api-server/config"
	"parcelio-api-server/internal/api/handlers"
	"parcelio-api-server/internal/api/middleware"
	"parcelio-api-server/internal/lib/validate"
	"parcelio-api-server/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the components the router hands to its handlers.
type Dependencies struct {
	Cfg      config.Config
	Log      *slog.Logger
	Users    handlers.UserRepository
	Parcels  handlers.ParcelRepository
	Payments handlers.PaymentRepository
	Gateway  handlers.IntentCreator
	Photos   handlers.PhotoUploader // leave nil to disable photo uploads
	Hub      *socket.Hub
	Ping     func(ctx context.Context) error
}

// SetupRouter wires middleware and routes around the given dependencies.
func SetupRouter(deps Dependencies) *gin.Engine {
	validate.UseJSONNames()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Observability(deps.Log))
	router.Use(middleware.BodyLimit(deps.Cfg.Server.MaxBodyBytes))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:   []string{middleware.RequestIDHeader},
		AllowWebSockets: true,
	}))

	healthHandler := &handlers.HealthHandler{Ping: deps.Ping}
	userHandler := &handlers.UserHandler{Users: deps.Users, Log: deps.Log}
	parcelHandler := &handlers.ParcelHandler{Parcels: deps.Parcels, Hub: deps.Hub, Photos: deps.Photos, Log: deps.Log}
	paymentHandler := &handlers.PaymentHandler{Payments: deps.Payments, Hub: deps.Hub, Log: deps.Log}
	intentHandler := &handlers.PaymentIntentHandler{Gateway: deps.Gateway, Log: deps.Log}
	webSocketHandler := &handlers.WebSocketHandler{Hub: deps.Hub, Log: deps.Log}

	router.GET("/", healthHandler.Root)
	router.GET("/healthz", healthHandler.Healthz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws", webSocketHandler.ServeWs)

	router.GET("/users", userHandler.GetAllUsers)

	parcels := router.Group("/parcels")
	{
		parcels.GET("", parcelHandler.GetParcels)
		parcels.POST("", parcelHandler.CreateParcel)
		parcels.GET("/:id", parcelHandler.GetParcelByID)
		parcels.DELETE("/:id", parcelHandler.DeleteParcel)
		parcels.POST("/:id/photos", parcelHandler.UploadPhoto)
	}

	payments := router.Group("/payments")
	{
		payments.GET("", paymentHandler.GetPayments)
		payments.POST("", paymentHandler.RecordPayment)
	}

	router.POST("/create-payment-intent", intentHandler.CreatePaymentIntent)

	return router
}
