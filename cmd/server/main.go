package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/invofin/settlement-engine/internal/config"
	"github.com/invofin/settlement-engine/internal/handler"
	"github.com/invofin/settlement-engine/internal/logger"
	"github.com/invofin/settlement-engine/internal/repository"
	"github.com/invofin/settlement-engine/internal/service"
	"github.com/invofin/settlement-engine/pkg/response"
)

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := logger.Setup(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	invoiceRepo := repository.NewInvoiceRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	settlementRepo := repository.NewSettlementRepository(db)

	// Initialize service and handlers
	settlementService := service.NewSettlementService(invoiceRepo, offerRepo, paymentRepo, settlementRepo, redisClient, cfg)
	settlementHandler := handler.NewSettlementHandler(settlementService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	router := setupRoutes(settlementHandler, healthHandler)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(settlementHandler *handler.SettlementHandler, healthHandler *handler.HealthHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware)
	router.Use(response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/invoices", settlementHandler.CreateInvoice).Methods("POST")
	api.HandleFunc("/invoices/available", settlementHandler.GetAvailableInvoices).Methods("GET")
	api.HandleFunc("/invoices/seller/{sellerId}", settlementHandler.GetSellerInvoices).Methods("GET")
	api.HandleFunc("/invoices/{invoiceId}", settlementHandler.GetInvoice).Methods("GET")

	api.HandleFunc("/payments", settlementHandler.RecordPayment).Methods("POST")

	api.HandleFunc("/offers", settlementHandler.CreateOffer).Methods("POST")
	api.HandleFunc("/offers/financier/{financierId}", settlementHandler.GetFinancierOffers).Methods("GET")
	api.HandleFunc("/offers/{offerId}/accept", settlementHandler.AcceptOffer).Methods("PUT")
	api.HandleFunc("/offers/{offerId}/reject", settlementHandler.RejectOffer).Methods("PUT")

	api.HandleFunc("/settlements/{invoiceId}/generate", settlementHandler.GenerateSettlements).Methods("POST")
	api.HandleFunc("/settlements/{invoiceId}", settlementHandler.GetSettlements).Methods("GET")

	api.HandleFunc("/portfolio/{financierId}/summary", settlementHandler.GetPortfolioSummary).Methods("GET")

	return router
}
