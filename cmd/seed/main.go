// Command seed bootstraps a fresh database: the admin account, the stock
// currencies, the default document and email templates, and the operator's
// freelancer identity.
// Usage: RECIBO_SEED_ADMIN_EMAIL=... RECIBO_SEED_ADMIN_PASSWORD=... go run ./cmd/seed
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"recibo/internal/config"
	"recibo/internal/domain"
	"recibo/internal/repository/postgres"
	"recibo/internal/template"
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

	ctx := context.Background()

	if err := seedAdmin(ctx, db); err != nil {
		return err
	}
	if err := seedCurrencies(ctx, db); err != nil {
		return err
	}
	if err := seedTemplates(ctx, db); err != nil {
		return err
	}
	if err := seedEmailTemplates(ctx, db); err != nil {
		return err
	}
	if err := seedFreelancerInfo(ctx, db); err != nil {
		return err
	}

	log.Println("seed completed")
	return nil
}

func seedAdmin(ctx context.Context, db *sqlx.DB) error {
	email := os.Getenv("RECIBO_SEED_ADMIN_EMAIL")
	password := os.Getenv("RECIBO_SEED_ADMIN_PASSWORD")
	name := os.Getenv("RECIBO_SEED_ADMIN_NAME")
	if email == "" || password == "" {
		log.Println("RECIBO_SEED_ADMIN_EMAIL or RECIBO_SEED_ADMIN_PASSWORD not set, skipping admin")
		return nil
	}
	if len(password) < 8 {
		return fmt.Errorf("admin password must be at least 8 characters")
	}
	if name == "" {
		name = "Admin"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	adminRepo := postgres.NewAdminRepo(db)
	err = adminRepo.Create(ctx, &domain.Admin{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		IsActive:     true,
	})
	if errors.Is(err, domain.ErrDuplicateEmail) {
		log.Printf("admin %s already exists", email)
		return nil
	}
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	log.Printf("created admin %s", email)
	return nil
}

func seedCurrencies(ctx context.Context, db *sqlx.DB) error {
	currencyRepo := postgres.NewCurrencyRepo(db)
	currencies := []domain.Currency{
		{Code: "USD", Name: "US Dollar", Symbol: "$", ExchangeRate: 1},
		{Code: "EUR", Name: "Euro", Symbol: "€", ExchangeRate: 0.92},
		{Code: "GBP", Name: "British Pound", Symbol: "£", ExchangeRate: 0.79},
		{Code: "INR", Name: "Indian Rupee", Symbol: "₹", ExchangeRate: 83.5},
		{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$", ExchangeRate: 1.36},
		{Code: "AUD", Name: "Australian Dollar", Symbol: "A$", ExchangeRate: 1.52},
	}
	for i := range currencies {
		currencies[i].IsActive = true
		err := currencyRepo.Create(ctx, &currencies[i])
		if errors.Is(err, domain.ErrDuplicateCurrency) {
			continue
		}
		if err != nil {
			return fmt.Errorf("create currency %s: %w", currencies[i].Code, err)
		}
		log.Printf("created currency %s", currencies[i].Code)
	}
	return nil
}

func seedTemplates(ctx context.Context, db *sqlx.DB) error {
	templateRepo := postgres.NewTemplateRepo(db)

	existing, err := templateRepo.List(ctx, "", false)
	if err != nil {
		return fmt.Errorf("list templates: %w", err)
	}
	if len(existing) > 0 {
		log.Println("document templates already present, skipping")
		return nil
	}

	templates := []domain.Template{
		{
			Name:        "Classic Receipt",
			Type:        domain.TemplateTypeReceipt,
			Description: "Single-column receipt with payment summary",
			HTMLTemplate: `<div class="receipt">
  <h1>Receipt {{receipt_id}}</h1>
  <p>{{date}}</p>
  <p>From: {{freelancer_name}} ({{freelancer_email}})</p>
  <p>To: {{client_name}} ({{client_email}})</p>
  <h2>{{project_title}}</h2>
  <p>{{project_description}}</p>
  <p class="total">{{currency}} {{amount}} — {{status}}</p>
</div>`,
			CSSStyles: ".receipt { font-family: sans-serif; } .total { font-weight: bold; }",
			Fields: domain.FieldList{
				{Name: "receipt_id", Label: "Receipt ID", Type: "string", Required: true},
				{Name: "date", Label: "Date", Type: "date", Required: true},
				{Name: "client_name", Label: "Client Name", Type: "string", Required: true},
				{Name: "amount", Label: "Amount", Type: "number", Required: true},
			},
			IsDefault: true,
			CreatedBy: "seed",
		},
		{
			Name:        "Classic Invoice",
			Type:        domain.TemplateTypeInvoice,
			Description: "Line-item invoice with totals block",
			HTMLTemplate: `<div class="invoice">
  <h1>Invoice {{invoice_id}}</h1>
  <p>Issued {{date}}, due {{due_date}}</p>
  <p>From: {{freelancer_name}}</p>
  <p>To: {{client_name}}</p>
  <div class="items">{{items}}</div>
  <p>Subtotal: {{currency}} {{subtotal}}</p>
  <p>Tax: {{currency}} {{tax_total}}</p>
  <p class="total">Total: {{currency}} {{total}}</p>
</div>`,
			CSSStyles: ".invoice { font-family: sans-serif; } .total { font-weight: bold; }",
			Fields: domain.FieldList{
				{Name: "invoice_id", Label: "Invoice ID", Type: "string", Required: true},
				{Name: "due_date", Label: "Due Date", Type: "date", Required: true},
				{Name: "total", Label: "Total", Type: "number", Required: true},
			},
			IsDefault: true,
			CreatedBy: "seed",
		},
	}
	for i := range templates {
		templates[i].IsActive = true
		if err := templateRepo.Create(ctx, &templates[i]); err != nil {
			return fmt.Errorf("create template %s: %w", templates[i].Name, err)
		}
		log.Printf("created template %s", templates[i].Name)
	}
	return nil
}

func seedFreelancerInfo(ctx context.Context, db *sqlx.DB) error {
	name := os.Getenv("RECIBO_SEED_FREELANCER_NAME")
	email := os.Getenv("RECIBO_SEED_FREELANCER_EMAIL")
	if name == "" || email == "" {
		log.Println("RECIBO_SEED_FREELANCER_NAME or RECIBO_SEED_FREELANCER_EMAIL not set, skipping freelancer info")
		return nil
	}

	configRepo := postgres.NewConfigRepo(db)
	if _, err := configRepo.Get(ctx, domain.ConfigKeyFreelancerInfo); err == nil {
		log.Println("freelancer info already present, skipping")
		return nil
	}

	value, err := json.Marshal(domain.FreelancerInfo{
		Name:    name,
		Email:   email,
		Phone:   os.Getenv("RECIBO_SEED_FREELANCER_PHONE"),
		Address: os.Getenv("RECIBO_SEED_FREELANCER_ADDRESS"),
		Website: os.Getenv("RECIBO_SEED_FREELANCER_WEBSITE"),
	})
	if err != nil {
		return fmt.Errorf("marshal freelancer info: %w", err)
	}
	if _, err := configRepo.Upsert(ctx, domain.ConfigKeyFreelancerInfo, value); err != nil {
		return fmt.Errorf("store freelancer info: %w", err)
	}
	log.Printf("stored freelancer info for %s", name)
	return nil
}

func seedEmailTemplates(ctx context.Context, db *sqlx.DB) error {
	templateRepo := postgres.NewEmailTemplateRepo(db)

	existing, err := templateRepo.List(ctx, "", false)
	if err != nil {
		return fmt.Errorf("list email templates: %w", err)
	}
	if len(existing) > 0 {
		log.Println("email templates already present, skipping")
		return nil
	}

	templates := []domain.EmailTemplate{
		{
			Name:    "Receipt Sent",
			Type:    domain.EmailTemplateReceiptSent,
			Subject: "Receipt {{receipt_id}} from {{freelancer_name}}",
			HTMLContent: `<p>Hi {{client_name}},</p>
<p>Thank you for your business. Your receipt for <strong>{{project_title}}</strong> is ready.</p>
<p>Amount: {{currency}} {{amount}} ({{status}})</p>
<p><a href="{{receipt_url}}">View your receipt</a></p>
<p>{{freelancer_name}}</p>`,
			TextContent: "Hi {{client_name}}, your receipt {{receipt_id}} for {{project_title}} is ready: {{receipt_url}}",
			IsDefault:   true,
		},
		{
			Name:    "Invoice Sent",
			Type:    domain.EmailTemplateInvoiceSent,
			Subject: "Invoice {{invoice_id}} from {{freelancer_name}}",
			HTMLContent: `<p>Hi {{client_name}},</p>
<p>Please find invoice <strong>{{invoice_id}}</strong> attached.</p>
<p>Total due: {{currency}} {{amount}} by {{due_date}}</p>
<p><a href="{{invoice_url}}">View your invoice</a></p>
<p>{{freelancer_name}}</p>`,
			TextContent: "Hi {{client_name}}, invoice {{invoice_id}} for {{currency}} {{amount}} is due {{due_date}}: {{invoice_url}}",
			IsDefault:   true,
		},
		{
			Name:    "Payment Reminder",
			Type:    domain.EmailTemplatePaymentReminder,
			Subject: "Reminder: invoice {{invoice_id}} is due",
			HTMLContent: `<p>Hi {{client_name}},</p>
<p>This is a friendly reminder that invoice {{invoice_id}} ({{currency}} {{amount}}) is due on {{due_date}}.</p>
<p>{{freelancer_name}}</p>`,
			IsDefault: true,
		},
	}
	for i := range templates {
		templates[i].IsActive = true
		templates[i].Variables = emailVariables(templates[i].Subject, templates[i].HTMLContent, templates[i].TextContent)
		if err := templateRepo.Create(ctx, &templates[i]); err != nil {
			return fmt.Errorf("create email template %s: %w", templates[i].Name, err)
		}
		log.Printf("created email template %s", templates[i].Name)
	}
	return nil
}

func emailVariables(parts ...string) domain.StringList {
	seen := map[string]bool{}
	vars := domain.StringList{}
	for _, part := range parts {
		for _, name := range template.Variables(part) {
			if !seen[name] {
				seen[name] = true
				vars = append(vars, name)
			}
		}
	}
	return vars
}
