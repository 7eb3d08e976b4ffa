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

	"recibo/internal/config"
	"recibo/internal/crypto"
	noopemail "recibo/internal/email/noop"
	sesemail "recibo/internal/email/ses"
	"recibo/internal/handler"
	"recibo/internal/pdf"
	"recibo/internal/port"
	"recibo/internal/qr"
	"recibo/internal/repository/postgres"
	"recibo/internal/router"
	"recibo/internal/service"
	s3storage "recibo/internal/storage/s3"
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

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	cipher, err := crypto.NewFromBase64(cfg.Crypto.Key)
	if err != nil {
		return fmt.Errorf("failed to initialize cipher: %w", err)
	}

	// Initialize repositories
	adminRepo := postgres.NewAdminRepo(db)
	receiptRepo := postgres.NewReceiptRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	clientRepo := postgres.NewClientRepo(db)
	templateRepo := postgres.NewTemplateRepo(db)
	emailTemplateRepo := postgres.NewEmailTemplateRepo(db)
	emailLogRepo := postgres.NewEmailLogRepo(db)
	currencyRepo := postgres.NewCurrencyRepo(db)
	taxRepo := postgres.NewTaxSettingRepo(db)
	configRepo := postgres.NewConfigRepo(db)

	// Initialize adapters
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	var sender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		sender, err = sesemail.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		sender = noopemail.NewNoopSender()
	}

	qrEncoder := qr.NewEncoder()
	pdfRenderer := pdf.NewRenderer()

	// Initialize services
	authSvc := service.NewAuthService(adminRepo, cfg.JWT)
	configSvc := service.NewConfigService(configRepo)
	emailSvc := service.NewEmailService(sender, emailTemplateRepo, emailLogRepo, cfg.Email)
	receiptSvc := service.NewReceiptService(receiptRepo, configSvc, emailSvc, cipher, qrEncoder, s3Client, pdfRenderer, cfg.S3, cfg.App)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, configSvc, emailSvc, cipher, qrEncoder, s3Client, pdfRenderer, cfg.S3, cfg.App)
	clientSvc := service.NewClientService(clientRepo)
	templateSvc := service.NewTemplateService(templateRepo)
	emailTemplateSvc := service.NewEmailTemplateService(emailTemplateRepo)
	currencySvc := service.NewCurrencyService(currencyRepo)
	taxSvc := service.NewTaxService(taxRepo)
	exportSvc := service.NewExportService(receiptRepo, invoiceRepo, configSvc, cipher)
	analyticsSvc := service.NewAnalyticsService(receiptRepo, invoiceRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	receiptH := handler.NewReceiptHandler(receiptSvc, clientSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc, clientSvc)
	clientH := handler.NewClientHandler(clientSvc)
	templateH := handler.NewTemplateHandler(templateSvc)
	emailTemplateH := handler.NewEmailTemplateHandler(emailTemplateSvc)
	taxH := handler.NewTaxHandler(taxSvc)
	currencyH := handler.NewCurrencyHandler(currencySvc)
	configH := handler.NewConfigHandler(configSvc)
	emailH := handler.NewEmailHandler(emailSvc)
	exportH := handler.NewExportHandler(exportSvc)
	analyticsH := handler.NewAnalyticsHandler(analyticsSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(
		cfg.App.PublicBaseURL,
		authSvc,
		authH,
		receiptH,
		invoiceH,
		clientH,
		templateH,
		emailTemplateH,
		taxH,
		currencyH,
		configH,
		emailH,
		exportH,
		analyticsH,
		healthH,
	)

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
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Printf("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}
