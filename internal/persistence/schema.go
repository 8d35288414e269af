package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// schema is the idempotent bootstrap for the tickets table. This service
// carries no versioned migration tooling; the statements below must stay safe
// to re-run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS tickets (
    id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    ticket_id     TEXT NOT NULL UNIQUE,
    employee_name TEXT NOT NULL DEFAULT '',
    department    TEXT NOT NULL DEFAULT '',
    issue_type    TEXT NOT NULL DEFAULT '',
    description   TEXT NOT NULL DEFAULT '',
    status        TEXT NOT NULL DEFAULT 'Open',
    notified_at   TIMESTAMPTZ,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_tickets_created_at ON tickets (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_tickets_unnotified ON tickets (created_at) WHERE notified_at IS NULL;
`

// EnsureSchema applies the embedded schema bootstrap.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping schema bootstrap")
		return nil
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	logger.Info("schema bootstrap applied")
	return nil
}
