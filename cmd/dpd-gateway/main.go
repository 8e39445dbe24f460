package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/parcelhub/dpd-gateway/internal/api"
	"github.com/parcelhub/dpd-gateway/internal/core/domain"
	"github.com/parcelhub/dpd-gateway/internal/core/service"
	"github.com/parcelhub/dpd-gateway/internal/infrastructure/broker/kafka"
	"github.com/parcelhub/dpd-gateway/internal/infrastructure/config"
	mongodb "github.com/parcelhub/dpd-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/parcelhub/dpd-gateway/internal/infrastructure/db/redis"
	"github.com/parcelhub/dpd-gateway/internal/infrastructure/queue"
	"github.com/parcelhub/dpd-gateway/internal/integrations/dpd"
	"github.com/parcelhub/dpd-gateway/internal/poller"
	"github.com/parcelhub/dpd-gateway/pkg/logger"
)

// @title        DPD Gateway API
// @version      1.0
// @description  Carrier integration service for DPD shipping, labels, rates and tracking.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.Env == "development", os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	shipmentRepo := mongodb.NewShipmentRepository(db)
	if err := shipmentRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure shipment indexes")
	}
	cfgRepo := mongodb.NewCarrierConfigRepository(db)
	seedCarrierConfig(ctx, cfgRepo, cfg.DPD, log)

	// --- Carrier and messaging ---
	carrier := dpd.New(log)
	authGuard := redisdb.NewAuthGuard(rdb)

	var publisher service.TransitionPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() {
			_ = producer.Close()
		}()
		publisher = producer
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).
			Msg("state-transition producer enabled")
	}

	// --- Services ---
	loginSvc := service.NewLoginManager(cfgRepo, carrier, authGuard, log)
	shippingSvc := service.NewShippingService(loginSvc, shipmentRepo, carrier, log)
	trackingSvc := service.NewTrackingReconciler(loginSvc, shipmentRepo, carrier, publisher, log)
	shipmentSvc := service.NewShipmentManager(shipmentRepo, cfgRepo, log)
	rateSvc := service.NewRateCalculator(cfgRepo, log)
	shopSvc := service.NewShopFinder(loginSvc, carrier, log)

	// --- Background tracking sync ---
	dispatcher := queue.NewDispatcher(cfg.Sync.Workers, trackingSvc, log)
	dispatcher.Start(ctx)

	syncGuard := redisdb.NewSyncGuard(rdb, cfg.Sync.Cooldown)
	runner := poller.NewRunner(cfg.Sync.Interval, shipmentRepo, dispatcher, syncGuard, log)
	go runner.Run(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Mongo:     db,
		Redis:     rdb,
		Log:       log,
		Shipments: shipmentSvc,
		Shipping:  shippingSvc,
		Tracking:  trackingSvc,
		Rates:     rateSvc,
		Login:     loginSvc,
		Shops:     shopSvc,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("dpd-gateway started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}

// seedCarrierConfig writes an initial carrier configuration record from the
// environment when none exists yet. The operator owns the record afterwards;
// existing records are never touched.
func seedCarrierConfig(ctx context.Context, repo *mongodb.CarrierConfigRepository, dcfg config.DPD, log zerolog.Logger) {
	_, err := repo.Get(ctx)
	if err == nil {
		return
	}
	if !errors.Is(err, domain.ErrCarrierNotConfigured) {
		log.Warn().Err(err).Msg("could not read carrier configuration")
		return
	}
	if dcfg.DelisID == "" {
		log.Warn().Msg("no carrier configuration stored and DPD_DELIS_ID unset; carrier calls will fail until configured")
		return
	}

	seed := &domain.CarrierConfig{
		ID:          "dpd",
		DelisID:     dcfg.DelisID,
		Password:    dcfg.Password,
		Language:    dcfg.Language,
		Staging:     dcfg.Staging,
		LabelSize:   domain.LabelSize(dcfg.LabelSize),
		Product:     domain.ShippingProduct(dcfg.Product),
		PricingMode: domain.PricingProduct,
		UpdatedAt:   time.Now(),
	}
	if err := repo.Save(ctx, seed); err != nil {
		log.Error().Err(err).Msg("failed to seed carrier configuration")
		return
	}
	log.Info().Str("delis_id", dcfg.DelisID).Bool("staging", dcfg.Staging).
		Msg("seeded carrier configuration from environment")
}
