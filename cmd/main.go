package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/meridianpay/fx-payment-service/internal/api"
	"github.com/meridianpay/fx-payment-service/internal/config"
	"github.com/meridianpay/fx-payment-service/internal/fxclient"
	"github.com/meridianpay/fx-payment-service/internal/service"
	"github.com/meridianpay/fx-payment-service/internal/store"
	"github.com/meridianpay/fx-payment-service/internal/telemetry"
)

func main() {
	cfg := config.Load()

	if err := telemetry.Init("fx-payment-service"); err != nil {
		panic(fmt.Sprintf("Failed to initialize telemetry: %v", err))
	}
	defer telemetry.Shutdown(context.Background())

	telemetry.Logger.Info("Starting FX Payment Service")

	// Collaborators are constructed once here and passed down
	// explicitly; nothing resolves them through package globals.
	paymentStore := store.NewPaymentStore()
	quoteClient := fxclient.New(
		cfg.FxBaseURL,
		cfg.FxTimeout,
		cfg.FxMaxRetries,
		cfg.FxRetryBaseDelay,
		telemetry.Logger,
	)
	orchestrator := service.NewOrchestrator(paymentStore, quoteClient, telemetry.Logger)

	r := api.NewRouter(orchestrator)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		telemetry.Logger.Info("FX Payment Service starting",
			zap.String("port", cfg.Port),
			zap.String("fx_base_url", cfg.FxBaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			telemetry.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	telemetry.Logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		telemetry.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	telemetry.Logger.Info("Server exited")
}
