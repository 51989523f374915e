package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/Lonewolf123457499/CarWashApp/internal/adapter/lock"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
	"github.com/Lonewolf123457499/CarWashApp/internal/server/http/handlers"
	"github.com/Lonewolf123457499/CarWashApp/internal/server/http/middleware"
)

const idempotencyTTL = 24 * time.Hour

// Params lists everything the router needs from the container.
type Params struct {
	fx.In

	Facade handlers.CarWashFacade
	Health handlers.HealthChecker
	Store  lock.Store
	Locker lock.Locker
	Logger *slog.Logger
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(p.Facade)
	catalogHandler := handlers.NewCatalogHandler(p.Facade)
	vehicleHandler := handlers.NewVehicleHandler(p.Facade)
	orderHandler := handlers.NewOrderHandler(p.Facade)
	paymentHandler := handlers.NewPaymentHandler(p.Facade)
	ratingHandler := handlers.NewRatingHandler(p.Facade)
	adminHandler := handlers.NewAdminHandler(p.Facade)

	engine.GET("/healthz", handlers.NewHealthHandler(p.Health).Check)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	catalog := api.Group("/catalog")
	catalog.GET("/packages", catalogHandler.Packages)
	catalog.GET("/addons", catalogHandler.Addons)

	api.POST("/payments/verify", paymentHandler.Verify)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(p.Facade))
	authed.GET("/me", authHandler.Me)
	authed.GET("/orders/:id", orderHandler.Get)

	admin := authed.Group("/admin", middleware.RequireRole(model.RoleAdmin))
	admin.GET("/packages", catalogHandler.AllPackages)
	admin.POST("/packages", catalogHandler.CreatePackage)
	admin.PATCH("/packages/:id", catalogHandler.UpdatePackage)
	admin.DELETE("/packages/:id", catalogHandler.DeletePackage)
	admin.GET("/addons", catalogHandler.AllAddons)
	admin.POST("/addons", catalogHandler.CreateAddon)
	admin.PATCH("/addons/:id", catalogHandler.UpdateAddon)
	admin.DELETE("/addons/:id", catalogHandler.DeleteAddon)
	admin.GET("/orders", orderHandler.ListAll)
	admin.GET("/users", adminHandler.Accounts)
	admin.PATCH("/washers/:id/status", adminHandler.SetWasherStatus)
	admin.GET("/stats", adminHandler.Stats)

	customer := authed.Group("/customer", middleware.RequireRole(model.RoleCustomer))
	customer.GET("/vehicles", vehicleHandler.List)
	customer.POST("/vehicles", vehicleHandler.Add)
	customer.DELETE("/vehicles/:id", vehicleHandler.Delete)
	customer.POST("/orders", middleware.Idempotency(p.Store, p.Locker, idempotencyTTL, p.Logger), orderHandler.Place)
	customer.GET("/orders", orderHandler.ListCustomer)
	customer.POST("/orders/:id/cancel", orderHandler.Cancel)
	customer.GET("/orders/:id/receipt", orderHandler.Receipt)
	customer.POST("/orders/:id/payment-intent", paymentHandler.CreateIntent)
	customer.POST("/ratings", ratingHandler.Submit)
	customer.GET("/ratings", ratingHandler.List)

	washer := authed.Group("/washer", middleware.RequireRole(model.RoleWasher))
	washer.GET("/orders/pending", orderHandler.ListPending)
	washer.GET("/orders", orderHandler.ListWasher)
	washer.POST("/orders/:id/claim", orderHandler.Claim)
	washer.POST("/orders/:id/start", orderHandler.Start)
	washer.POST("/orders/:id/complete", orderHandler.Complete)
	washer.GET("/ratings", ratingHandler.List)

	return engine
}
