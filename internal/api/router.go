package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/parcelhub/dpd-gateway/docs"
	"github.com/parcelhub/dpd-gateway/internal/api/handler"
	"github.com/parcelhub/dpd-gateway/internal/core/ports"
)

// Deps groups everything the router needs. Services are constructed in main
// so the same instances can back the HTTP surface and the background sync.
type Deps struct {
	Mongo *mongo.Database
	Redis *redis.Client
	Log   zerolog.Logger

	Shipments ports.ShipmentService
	Shipping  ports.ShippingService
	Tracking  ports.TrackingService
	Rates     ports.RateService
	Login     ports.LoginService
	Shops     ports.ShopFinderService
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("dpd_gateway"))

	// --- Handlers ---
	shipmentHandler := handler.NewShipmentHandler(d.Shipments, d.Shipping, d.Tracking)
	rateHandler := handler.NewRateHandler(d.Rates)
	carrierHandler := handler.NewCarrierHandler(d.Login)
	shopsHandler := handler.NewShopsHandler(d.Shops)

	// --- Shipment routes ---
	v1 := e.Group("/v1")
	v1.POST("/shipments", shipmentHandler.Create)
	v1.POST("/shipments/submit", shipmentHandler.Submit)
	v1.GET("/shipments/:reference", shipmentHandler.Get)
	v1.DELETE("/shipments/:reference", shipmentHandler.Cancel)
	v1.PUT("/shipments/:reference/packages", shipmentHandler.SetPackages)
	v1.GET("/shipments/:reference/label", shipmentHandler.Label)
	v1.GET("/shipments/:reference/tracking-link", shipmentHandler.TrackingLink)
	v1.POST("/shipments/:reference/refresh-tracking", shipmentHandler.RefreshTracking)

	// --- Rates, carrier, parcel shops ---
	v1.POST("/rates", rateHandler.Quote)
	v1.POST("/carrier/login", carrierHandler.Login)
	v1.GET("/parcelshops", shopsHandler.Find)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
