package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is the ordered list of idempotent DDL statements applied at startup.
// The partial unique index backs the conditional insert used by ingestion:
// the same (from_addr, subject, date) triple can only land in the inbox once.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS emails (
		id         BIGSERIAL PRIMARY KEY,
		to_addr    TEXT NOT NULL DEFAULT '',
		from_addr  TEXT NOT NULL DEFAULT '',
		subject    TEXT NOT NULL DEFAULT '',
		body       TEXT NOT NULL DEFAULT '',
		date       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		name       TEXT NOT NULL DEFAULT '',
		starred    BOOLEAN NOT NULL DEFAULT FALSE,
		bin        BOOLEAN NOT NULL DEFAULT FALSE,
		type       TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_emails_ingest_dedup
		ON emails (from_addr, subject, date)
		WHERE type = 'inbox'`,
	`CREATE INDEX IF NOT EXISTS idx_emails_type ON emails (type)`,
	`CREATE INDEX IF NOT EXISTS idx_emails_starred ON emails (starred) WHERE starred`,
}

// EnsureSchema applies the schema statements in order.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
