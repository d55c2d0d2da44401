// File: harborview/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"harborview/config"
	croninit "harborview/cron"
	"harborview/database"
	bookingRepo "harborview/database/repository/booking"
	reconRepo "harborview/database/repository/reconciliation"
	roomRepo "harborview/database/repository/room"
	"harborview/handlers"
	"harborview/middleware"
	"harborview/routes"
	"harborview/services/booking"
	"harborview/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitDraftCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	rooms := roomRepo.NewMongoRoomRepo()
	bookings := bookingRepo.NewMongoBookingRepo(config.AppConfig.Currency)
	reconciliations := reconRepo.NewMongoReconRepo()

	// services.
	prober := booking.NewHTTPProber(
		config.AppConfig.AvailabilityBaseURL,
		time.Duration(config.AppConfig.ProbeTimeoutSeconds)*time.Second,
	)
	resolver := booking.NewAvailabilityResolver(prober, logger)

	gateway := booking.NewStripeGateway(logger)
	orchestrator := booking.NewPaymentOrchestrator(
		gateway, bookings, reconciliations, config.AppConfig.Currency, logger,
	)

	draftStore := booking.NewRedisDraftStore(
		utils.GetDraftCacheClient(),
		time.Duration(config.AppConfig.DraftTTLMinutes)*time.Minute,
	)

	wizardService := &booking.DefaultWizardService{
		Store:        draftStore,
		Rooms:        rooms,
		Resolver:     resolver,
		Orchestrator: orchestrator,
		Logger:       logger,
	}

	wizardHandler := handlers.NewWizardHandler(wizardService, logger)
	availabilityHandler := handlers.NewAvailabilityHandler(rooms, resolver)

	routes.RegisterRoutes(router, wizardHandler, availabilityHandler)

	// Background reconciliation sweep.
	sweeper := croninit.InitReconciliationSweep(config.AppConfig.ReconciliationCron, reconciliations)
	defer sweeper.Stop()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
