package router

import (
	"github.com/gin-gonic/gin"

	"recibo/internal/handler"
	"recibo/internal/middleware"
	"recibo/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	publicOrigin string,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	receiptH *handler.ReceiptHandler,
	invoiceH *handler.InvoiceHandler,
	clientH *handler.ClientHandler,
	templateH *handler.TemplateHandler,
	emailTemplateH *handler.EmailTemplateHandler,
	taxH *handler.TaxHandler,
	currencyH *handler.CurrencyHandler,
	configH *handler.ConfigHandler,
	emailH *handler.EmailHandler,
	exportH *handler.ExportHandler,
	analyticsH *handler.AnalyticsHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(publicOrigin))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)

	// Public document lookups - these back the QR code landing pages
	public := v1.Group("/public")
	public.GET("/receipts/:receiptId", receiptH.Get)
	public.GET("/invoices/:invoiceId", invoiceH.Get)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	receipts := protected.Group("/receipts")
	receipts.POST("", receiptH.Create)
	receipts.GET("", receiptH.List)
	receipts.GET("/:receiptId", receiptH.Get)
	receipts.PUT("/:receiptId", receiptH.Update)
	receipts.DELETE("/:receiptId", receiptH.Delete)
	receipts.GET("/:receiptId/pdf", receiptH.DownloadPDF)

	invoices := protected.Group("/invoices")
	invoices.POST("", invoiceH.Create)
	invoices.GET("", invoiceH.List)
	invoices.GET("/:invoiceId", invoiceH.Get)
	invoices.PUT("/:invoiceId", invoiceH.Update)
	invoices.DELETE("/:invoiceId", invoiceH.Delete)
	invoices.GET("/:invoiceId/pdf", invoiceH.DownloadPDF)

	clients := protected.Group("/clients")
	clients.POST("", clientH.Create)
	clients.GET("", clientH.List)
	clients.GET("/:clientId", clientH.Get)
	clients.PUT("/:clientId", clientH.Update)
	clients.DELETE("/:clientId", clientH.Delete)

	templates := protected.Group("/templates")
	templates.POST("", templateH.Create)
	templates.GET("", templateH.List)
	templates.GET("/:id", templateH.Get)
	templates.PUT("/:id", templateH.Update)
	templates.PUT("/:id/default", templateH.SetDefault)
	templates.POST("/:id/preview", templateH.Preview)
	templates.DELETE("/:id", templateH.Delete)

	emailTemplates := protected.Group("/email-templates")
	emailTemplates.POST("", emailTemplateH.Create)
	emailTemplates.GET("", emailTemplateH.List)
	emailTemplates.GET("/:id", emailTemplateH.Get)
	emailTemplates.PUT("/:id", emailTemplateH.Update)
	emailTemplates.PUT("/:id/default", emailTemplateH.SetDefault)
	emailTemplates.DELETE("/:id", emailTemplateH.Delete)

	taxSettings := protected.Group("/tax-settings")
	taxSettings.POST("", taxH.Create)
	taxSettings.GET("", taxH.List)
	taxSettings.GET("/:id", taxH.Get)
	taxSettings.PUT("/:id", taxH.Update)
	taxSettings.PUT("/:id/default", taxH.SetDefault)
	taxSettings.DELETE("/:id", taxH.Delete)

	currencies := protected.Group("/currencies")
	currencies.POST("", currencyH.Create)
	currencies.GET("", currencyH.List)
	currencies.GET("/:code", currencyH.Get)
	currencies.PUT("/:code", currencyH.Update)
	currencies.PUT("/:code/rate", currencyH.UpdateRate)

	cfg := protected.Group("/config")
	cfg.GET("/freelancer-info", configH.GetFreelancerInfo)
	cfg.PUT("/freelancer-info", configH.SetFreelancerInfo)
	cfg.GET("/:key", configH.Get)
	cfg.PUT("/:key", configH.Set)

	emails := protected.Group("/emails")
	emails.POST("", emailH.Send)
	emails.GET("/logs", emailH.ListLogs)

	protected.GET("/export", exportH.Export)
	protected.GET("/analytics/summary", analyticsH.Summary)

	return r
}
