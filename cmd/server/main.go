// @title        vatledger API
// @version      1.0
// @description  VAT computation and reporting for restaurant orders.
// @BasePath     /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"vatledger/internal/auth"
	"vatledger/internal/config"
	"vatledger/internal/email/noop"
	"vatledger/internal/email/ses"
	"vatledger/internal/handler"
	"vatledger/internal/port"
	"vatledger/internal/repository/postgres"
	"vatledger/internal/router"
	"vatledger/internal/service"
	s3storage "vatledger/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Log.Level == "debug" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	orderRepo := postgres.NewOrderRepo(db)
	menuItemRepo := postgres.NewMenuItemRepo(db)
	settingsRepo := postgres.NewTenantSettingsRepo(db)
	greetingRepo := postgres.NewGreetingCounterRepo(db)

	// Initialize storage; archiving is disabled without a bucket.
	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	} else {
		log.Println("S3 bucket not configured, report archiving disabled")
	}

	// Initialize email sender
	var sender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		sender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		log.Printf("email provider %q: confirmation emails will be logged, not sent", cfg.Email.Provider)
		sender = noop.NewNoopSender()
	}

	// Initialize services
	settingsSvc := service.NewTenantSettingsService(settingsRepo, service.SettingsDefaults{
		CurrencySymbol: cfg.Report.CurrencySymbol,
		Timezone:       cfg.Report.Timezone,
	})
	reportSvc := service.NewReportService(orderRepo, settingsSvc, storage, service.ReportOptions{
		TopN:          cfg.Report.TopN,
		CSVBOM:        cfg.Report.CSVBOM,
		Bucket:        cfg.S3.Bucket,
		ArchivePrefix: cfg.Report.ArchivePrefix,
		PresignExpiry: cfg.S3.PresignExpiry,
	})
	menuItemSvc := service.NewMenuItemService(menuItemRepo)
	orderSvc := service.NewOrderService(orderRepo)
	greetingSvc := service.NewGreetingService(greetingRepo)
	confirmationSvc := service.NewConfirmationService(orderRepo, settingsSvc, greetingSvc, sender)

	// Setup router
	r := router.Setup(auth.NewVerifier(&cfg.JWT), router.Handlers{
		Health:   handler.NewHealthHandler(db),
		Report:   handler.NewReportHandler(reportSvc),
		MenuItem: handler.NewMenuItemHandler(menuItemSvc),
		Order:    handler.NewOrderHandler(orderSvc, confirmationSvc),
		Settings: handler.NewSettingsHandler(settingsSvc),
	}, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
		log.Println("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Println("Server stopped")
	return nil
}
