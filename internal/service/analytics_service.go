package service

import (
	"context"
	"fmt"

	"recibo/internal/domain"
	"recibo/internal/port"
)

// AnalyticsSummary aggregates revenue and document status counts for the
// dashboard.
type AnalyticsSummary struct {
	ReceiptsByStatus  map[domain.PaymentStatus]int `json:"receipts_by_status"`
	InvoicesByStatus  map[domain.InvoiceStatus]int `json:"invoices_by_status"`
	RevenueByCurrency []domain.CurrencyRevenue     `json:"revenue_by_currency"`
	MonthlyRevenue    []domain.MonthlyRevenue      `json:"monthly_revenue"`
}

// AnalyticsService produces read-only aggregates over receipts and invoices.
type AnalyticsService interface {
	Summary(ctx context.Context, months int) (*AnalyticsSummary, error)
}

type analyticsService struct {
	receiptRepo port.ReceiptRepository
	invoiceRepo port.InvoiceRepository
}

// NewAnalyticsService creates a new AnalyticsService implementation.
func NewAnalyticsService(receiptRepo port.ReceiptRepository, invoiceRepo port.InvoiceRepository) AnalyticsService {
	return &analyticsService{receiptRepo: receiptRepo, invoiceRepo: invoiceRepo}
}

func (s *analyticsService) Summary(ctx context.Context, months int) (*AnalyticsSummary, error) {
	if months < 1 || months > 60 {
		months = 12
	}

	receiptCounts, err := s.receiptRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics.Summary: %w", err)
	}
	invoiceCounts, err := s.invoiceRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics.Summary: %w", err)
	}
	revenue, err := s.receiptRepo.RevenueByCurrency(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics.Summary: %w", err)
	}
	monthly, err := s.receiptRepo.MonthlyRevenue(ctx, months)
	if err != nil {
		return nil, fmt.Errorf("analytics.Summary: %w", err)
	}

	if revenue == nil {
		revenue = []domain.CurrencyRevenue{}
	}
	if monthly == nil {
		monthly = []domain.MonthlyRevenue{}
	}

	return &AnalyticsSummary{
		ReceiptsByStatus:  receiptCounts,
		InvoicesByStatus:  invoiceCounts,
		RevenueByCurrency: revenue,
		MonthlyRevenue:    monthly,
	}, nil
}
