package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"vatledger/internal/domain"
	"vatledger/internal/port"
)

type tenantSettingsRepo struct {
	db *sqlx.DB
}

// NewTenantSettingsRepo creates a new PostgreSQL-backed TenantSettingsRepository.
func NewTenantSettingsRepo(db *sqlx.DB) port.TenantSettingsRepository {
	return &tenantSettingsRepo{db: db}
}

func (r *tenantSettingsRepo) Get(ctx context.Context, tenantID uuid.UUID) (*domain.TenantSettings, error) {
	var s domain.TenantSettings
	err := r.db.GetContext(ctx, &s,
		"SELECT tenant_id, currency_symbol, timezone, updated_at FROM tenant_settings WHERE tenant_id = $1",
		tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("tenantSettingsRepo.Get: %w", err)
	}
	return &s, nil
}

func (r *tenantSettingsRepo) Upsert(ctx context.Context, s *domain.TenantSettings) error {
	s.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tenant_settings (tenant_id, currency_symbol, timezone, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tenant_id) DO UPDATE
		SET currency_symbol = EXCLUDED.currency_symbol,
			timezone = EXCLUDED.timezone,
			updated_at = EXCLUDED.updated_at`,
		s.TenantID, s.CurrencySymbol, s.Timezone, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("tenantSettingsRepo.Upsert: %w", err)
	}
	return nil
}
