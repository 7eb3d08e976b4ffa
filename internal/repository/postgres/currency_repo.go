package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"recibo/internal/domain"
	"recibo/internal/port"
)

type currencyRepo struct {
	db *sqlx.DB
}

// NewCurrencyRepo creates a new PostgreSQL-backed CurrencyRepository.
func NewCurrencyRepo(db *sqlx.DB) port.CurrencyRepository {
	return &currencyRepo{db: db}
}

func (r *currencyRepo) Create(ctx context.Context, currency *domain.Currency) error {
	currency.ID = uuid.New()
	now := time.Now().UTC()
	currency.CreatedAt = now
	currency.LastUpdated = now

	query := `INSERT INTO currencies
		(id, code, name, symbol, exchange_rate, is_active, last_updated, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		currency.ID, currency.Code, currency.Name, currency.Symbol,
		currency.ExchangeRate, currency.IsActive, currency.LastUpdated,
		currency.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateCurrency
		}
		return fmt.Errorf("currencyRepo.Create: %w", err)
	}
	return nil
}

func (r *currencyRepo) GetByCode(ctx context.Context, code string) (*domain.Currency, error) {
	var currency domain.Currency
	err := r.db.GetContext(ctx, &currency,
		"SELECT * FROM currencies WHERE code = $1", code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("currencyRepo.GetByCode: %w", err)
	}
	return &currency, nil
}

func (r *currencyRepo) List(ctx context.Context, activeOnly bool) ([]domain.Currency, error) {
	query := "SELECT * FROM currencies"
	if activeOnly {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY code"

	var currencies []domain.Currency
	if err := r.db.SelectContext(ctx, &currencies, query); err != nil {
		return nil, fmt.Errorf("currencyRepo.List: %w", err)
	}
	return currencies, nil
}

func (r *currencyRepo) Update(ctx context.Context, currency *domain.Currency) error {
	currency.LastUpdated = time.Now().UTC()
	query := `UPDATE currencies SET
		name = $1, symbol = $2, exchange_rate = $3, is_active = $4, last_updated = $5
		WHERE code = $6`

	result, err := r.db.ExecContext(ctx, query,
		currency.Name, currency.Symbol, currency.ExchangeRate,
		currency.IsActive, currency.LastUpdated, currency.Code)
	if err != nil {
		return fmt.Errorf("currencyRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *currencyRepo) UpdateRate(ctx context.Context, code string, rate float64) (*domain.Currency, error) {
	var currency domain.Currency
	err := r.db.GetContext(ctx, &currency,
		`UPDATE currencies SET exchange_rate = $1, last_updated = $2
		 WHERE code = $3
		 RETURNING *`,
		rate, time.Now().UTC(), code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("currencyRepo.UpdateRate: %w", err)
	}
	return &currency, nil
}
