package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recibo/internal/domain"
	"recibo/internal/port"
)

// CreateClientInput is the DTO for client creation.
type CreateClientInput struct {
	Name              string `json:"name" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	Phone             string `json:"phone" binding:"required"`
	Address           string `json:"address" binding:"required"`
	CompanyName       string `json:"company_name"`
	TaxID             string `json:"tax_id"`
	PreferredCurrency string `json:"preferred_currency"`
	PaymentTerms      string `json:"payment_terms"`
}

// UpdateClientInput is the DTO for client updates.
type UpdateClientInput struct {
	Name              *string `json:"name"`
	Email             *string `json:"email"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	CompanyName       *string `json:"company_name"`
	TaxID             *string `json:"tax_id"`
	PreferredCurrency *string `json:"preferred_currency"`
	PaymentTerms      *string `json:"payment_terms"`
}

// ListClientsInput narrows and paginates client listings.
type ListClientsInput struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ClientService manages client records and their receipt/invoice
// aggregates.
type ClientService interface {
	Create(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	Get(ctx context.Context, clientID string) (*domain.Client, error)
	List(ctx context.Context, input ListClientsInput) ([]domain.Client, int, error)
	Update(ctx context.Context, clientID string, input UpdateClientInput) (*domain.Client, error)
	Delete(ctx context.Context, clientID string) error
	RecordReceipt(ctx context.Context, email, receiptID string, amount float64, status domain.PaymentStatus) error
	RecordInvoice(ctx context.Context, email, invoiceID string, total float64, status domain.InvoiceStatus) error
}

type clientService struct {
	clientRepo port.ClientRepository
}

// NewClientService creates a new ClientService implementation.
func NewClientService(clientRepo port.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func (s *clientService) Create(ctx context.Context, input CreateClientInput) (*domain.Client, error) {
	currency := strings.ToUpper(input.PreferredCurrency)
	if currency == "" {
		currency = "USD"
	}

	client := &domain.Client{
		ClientID:          domain.NewClientID(),
		Name:              input.Name,
		Email:             input.Email,
		Phone:             input.Phone,
		Address:           input.Address,
		CompanyName:       input.CompanyName,
		TaxID:             input.TaxID,
		PreferredCurrency: currency,
		PaymentTerms:      input.PaymentTerms,
		Receipts:          domain.StringList{},
		Invoices:          domain.StringList{},
		IsActive:          true,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Get(ctx context.Context, clientID string) (*domain.Client, error) {
	return s.clientRepo.GetByClientID(ctx, clientID)
}

func (s *clientService) List(ctx context.Context, input ListClientsInput) ([]domain.Client, int, error) {
	offset, limit := paginate(input.Page, input.PageSize)
	filter := port.ClientFilter{Search: input.Search, ActiveOnly: true}
	return s.clientRepo.List(ctx, filter, offset, limit)
}

func (s *clientService) Update(ctx context.Context, clientID string, input UpdateClientInput) (*domain.Client, error) {
	client, err := s.clientRepo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
		}
		client.Name = *input.Name
	}
	if input.Email != nil {
		if *input.Email == "" {
			return nil, fmt.Errorf("%w: email must not be empty", domain.ErrValidation)
		}
		client.Email = *input.Email
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}
	if input.Address != nil {
		client.Address = *input.Address
	}
	if input.CompanyName != nil {
		client.CompanyName = *input.CompanyName
	}
	if input.TaxID != nil {
		client.TaxID = *input.TaxID
	}
	if input.PreferredCurrency != nil {
		client.PreferredCurrency = strings.ToUpper(*input.PreferredCurrency)
	}
	if input.PaymentTerms != nil {
		client.PaymentTerms = *input.PaymentTerms
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Delete(ctx context.Context, clientID string) error {
	return s.clientRepo.SoftDelete(ctx, clientID)
}

// RecordReceipt links a newly created receipt to the client matching the
// given email and rolls the amount into the paid/pending aggregates. Unknown
// emails are ignored: receipts do not require a stored client record.
func (s *clientService) RecordReceipt(ctx context.Context, email, receiptID string, amount float64, status domain.PaymentStatus) error {
	client, err := s.clientRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	client.Receipts = append(client.Receipts, receiptID)
	if status == domain.PaymentStatusPaid {
		client.TotalPaid += amount
	} else {
		client.TotalPending += amount
	}
	client.LastContact = time.Now().UTC()
	return s.clientRepo.Update(ctx, client)
}

// RecordInvoice is the invoice counterpart of RecordReceipt.
func (s *clientService) RecordInvoice(ctx context.Context, email, invoiceID string, total float64, status domain.InvoiceStatus) error {
	client, err := s.clientRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	client.Invoices = append(client.Invoices, invoiceID)
	if status == domain.InvoiceStatusPaid {
		client.TotalPaid += total
	} else {
		client.TotalPending += total
	}
	client.LastContact = time.Now().UTC()
	return s.clientRepo.Update(ctx, client)
}
