package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"vatledger/internal/domain"
	"vatledger/internal/port"
)

// SettingsDefaults apply to tenants that have not saved their own display settings.
type SettingsDefaults struct {
	CurrencySymbol string
	Timezone       string
}

// UpdateSettingsInput is the DTO for updating tenant display settings.
type UpdateSettingsInput struct {
	CurrencySymbol *string `json:"currency_symbol"`
	Timezone       *string `json:"timezone"`
}

// TenantSettingsService resolves and updates per-tenant display settings.
type TenantSettingsService interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*domain.TenantSettings, error)
	Update(ctx context.Context, tenantID uuid.UUID, input UpdateSettingsInput) (*domain.TenantSettings, error)
}

type tenantSettingsService struct {
	repo     port.TenantSettingsRepository
	defaults SettingsDefaults
}

// NewTenantSettingsService creates a new TenantSettingsService.
func NewTenantSettingsService(repo port.TenantSettingsRepository, defaults SettingsDefaults) TenantSettingsService {
	return &tenantSettingsService{repo: repo, defaults: defaults}
}

// Get returns the tenant's settings with any blank field filled from the defaults.
func (s *tenantSettingsService) Get(ctx context.Context, tenantID uuid.UUID) (*domain.TenantSettings, error) {
	settings, err := s.repo.Get(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		settings = &domain.TenantSettings{TenantID: tenantID}
	}
	if settings.CurrencySymbol == "" {
		settings.CurrencySymbol = s.defaults.CurrencySymbol
	}
	if settings.Timezone == "" {
		settings.Timezone = s.defaults.Timezone
	}
	return settings, nil
}

func (s *tenantSettingsService) Update(ctx context.Context, tenantID uuid.UUID, input UpdateSettingsInput) (*domain.TenantSettings, error) {
	settings, err := s.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if input.CurrencySymbol != nil {
		sym := strings.TrimSpace(*input.CurrencySymbol)
		if n := utf8.RuneCountInString(sym); n == 0 || n > 8 {
			return nil, domain.ErrInvalidCurrency
		}
		settings.CurrencySymbol = sym
	}
	if input.Timezone != nil {
		tz := strings.TrimSpace(*input.Timezone)
		if tz == "" {
			return nil, domain.ErrInvalidTimezone
		}
		if _, err := time.LoadLocation(tz); err != nil {
			return nil, domain.ErrInvalidTimezone
		}
		settings.Timezone = tz
	}

	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
