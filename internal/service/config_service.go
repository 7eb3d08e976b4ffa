package service

import (
	"context"
	"encoding/json"
	"fmt"

	"recibo/internal/domain"
	"recibo/internal/port"
)

// ConfigService exposes the key/value configuration store and the typed
// accessors for the keys the application reads.
type ConfigService interface {
	Get(ctx context.Context, key string) (*domain.ConfigEntry, error)
	Set(ctx context.Context, key string, value json.RawMessage) (*domain.ConfigEntry, error)
	GetFreelancerInfo(ctx context.Context) (*domain.FreelancerInfo, error)
	SetFreelancerInfo(ctx context.Context, info domain.FreelancerInfo) error
}

type configService struct {
	configRepo port.ConfigRepository
}

// NewConfigService creates a new ConfigService implementation.
func NewConfigService(configRepo port.ConfigRepository) ConfigService {
	return &configService{configRepo: configRepo}
}

func (s *configService) Get(ctx context.Context, key string) (*domain.ConfigEntry, error) {
	return s.configRepo.Get(ctx, key)
}

func (s *configService) Set(ctx context.Context, key string, value json.RawMessage) (*domain.ConfigEntry, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: key is required", domain.ErrValidation)
	}
	if !json.Valid(value) {
		return nil, fmt.Errorf("%w: value must be valid JSON", domain.ErrValidation)
	}
	return s.configRepo.Upsert(ctx, key, value)
}

// GetFreelancerInfo returns the stored operator contact block used as the
// default issuing identity on new receipts and invoices.
func (s *configService) GetFreelancerInfo(ctx context.Context) (*domain.FreelancerInfo, error) {
	entry, err := s.configRepo.Get(ctx, domain.ConfigKeyFreelancerInfo)
	if err != nil {
		return nil, err
	}
	var info domain.FreelancerInfo
	if err := json.Unmarshal(entry.Value, &info); err != nil {
		return nil, fmt.Errorf("config.GetFreelancerInfo: %w", err)
	}
	return &info, nil
}

func (s *configService) SetFreelancerInfo(ctx context.Context, info domain.FreelancerInfo) error {
	if info.Name == "" || info.Email == "" {
		return fmt.Errorf("%w: freelancer name and email are required", domain.ErrValidation)
	}
	value, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("config.SetFreelancerInfo: %w", err)
	}
	_, err = s.configRepo.Upsert(ctx, domain.ConfigKeyFreelancerInfo, value)
	return err
}
