package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"recibo/internal/domain"
	"recibo/internal/port"
)

type configRepo struct {
	db *sqlx.DB
}

// NewConfigRepo creates a new PostgreSQL-backed ConfigRepository.
func NewConfigRepo(db *sqlx.DB) port.ConfigRepository {
	return &configRepo{db: db}
}

func (r *configRepo) Get(ctx context.Context, key string) (*domain.ConfigEntry, error) {
	var entry domain.ConfigEntry
	err := r.db.GetContext(ctx, &entry,
		"SELECT * FROM config_entries WHERE key = $1", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConfigKeyNotFound
		}
		return nil, fmt.Errorf("configRepo.Get: %w", err)
	}
	return &entry, nil
}

func (r *configRepo) Upsert(ctx context.Context, key string, value json.RawMessage) (*domain.ConfigEntry, error) {
	var entry domain.ConfigEntry
	err := r.db.GetContext(ctx, &entry,
		`INSERT INTO config_entries (id, key, value, updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
		 RETURNING *`,
		uuid.New(), key, string(value), time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("configRepo.Upsert: %w", err)
	}
	return &entry, nil
}
