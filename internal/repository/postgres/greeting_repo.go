package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"vatledger/internal/port"
)

type greetingCounterRepo struct {
	db *sqlx.DB
}

// NewGreetingCounterRepo creates a new PostgreSQL-backed GreetingCounterRepository.
func NewGreetingCounterRepo(db *sqlx.DB) port.GreetingCounterRepository {
	return &greetingCounterRepo{db: db}
}

// Next increments and reads the counter in a single statement, so concurrent
// confirmations for one tenant never observe the same value.
func (r *greetingCounterRepo) Next(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var value int64
	err := r.db.GetContext(ctx, &value, `
		INSERT INTO greeting_counters (tenant_id, value, updated_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (tenant_id) DO UPDATE
		SET value = greeting_counters.value + 1,
			updated_at = NOW()
		RETURNING value`,
		tenantID)
	if err != nil {
		return 0, fmt.Errorf("greetingCounterRepo.Next: %w", err)
	}
	return value, nil
}
