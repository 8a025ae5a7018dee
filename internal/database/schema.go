package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is the full database schema. The unique index on transfer_code backs
// the collision retry in the store's code generator.
const schema = `
CREATE TABLE IF NOT EXISTS transfers (
    id               BIGSERIAL PRIMARY KEY,
    transfer_code    TEXT NOT NULL,
    transfer_type    TEXT NOT NULL,
    from_branch_id   BIGINT NOT NULL,
    to_branch_id     BIGINT NOT NULL,
    from_location_id BIGINT,
    to_location_id   BIGINT,
    reason           TEXT,
    status           TEXT NOT NULL DEFAULT 'PENDING'
        CHECK (status IN ('PENDING', 'APPROVED', 'IN_TRANSIT', 'RECEIVED', 'REJECTED', 'CANCELLED')),
    requested_by     BIGINT NOT NULL,
    requested_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    approved_by      BIGINT,
    approved_at      TIMESTAMPTZ,
    dispatched_by    BIGINT,
    dispatched_at    TIMESTAMPTZ,
    received_by      BIGINT,
    received_at      TIMESTAMPTZ,
    is_active        BOOLEAN NOT NULL DEFAULT TRUE,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    created_by       BIGINT NOT NULL,
    updated_at       TIMESTAMPTZ,
    updated_by       BIGINT
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_transfers_code ON transfers(transfer_code);
CREATE INDEX IF NOT EXISTS idx_transfers_branches ON transfers(from_branch_id, to_branch_id);

CREATE TABLE IF NOT EXISTS transfer_logs (
    id          BIGSERIAL PRIMARY KEY,
    transfer_id BIGINT NOT NULL REFERENCES transfers(id),
    action      TEXT NOT NULL,
    from_status TEXT,
    to_status   TEXT,
    remarks     TEXT,
    action_by   BIGINT NOT NULL,
    action_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_transfer_logs_transfer ON transfer_logs(transfer_id);

CREATE TABLE IF NOT EXISTS transfer_jobs (
    id          BIGSERIAL PRIMARY KEY,
    transfer_id BIGINT NOT NULL REFERENCES transfers(id),
    job_id      BIGINT NOT NULL,
    notes       TEXT
);

CREATE TABLE IF NOT EXISTS transfer_inventories (
    id          BIGSERIAL PRIMARY KEY,
    transfer_id BIGINT NOT NULL REFERENCES transfers(id),
    notes       TEXT
);

CREATE TABLE IF NOT EXISTS transfer_inventory_items (
    id           BIGSERIAL PRIMARY KEY,
    inventory_id BIGINT NOT NULL REFERENCES transfer_inventories(id),
    item_name    TEXT NOT NULL,
    sku          TEXT,
    quantity     INTEGER NOT NULL CHECK (quantity > 0),
    unit         TEXT
);

CREATE TABLE IF NOT EXISTS transfer_assets (
    id          BIGSERIAL PRIMARY KEY,
    transfer_id BIGINT NOT NULL REFERENCES transfers(id),
    asset_id    BIGINT NOT NULL,
    notes       TEXT
);

CREATE TABLE IF NOT EXISTS transfer_users (
    id          BIGSERIAL PRIMARY KEY,
    transfer_id BIGINT NOT NULL REFERENCES transfers(id),
    user_id     BIGINT NOT NULL,
    new_role_id BIGINT,
    notes       TEXT
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}
