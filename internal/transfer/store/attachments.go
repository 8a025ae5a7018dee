package store

import (
	"context"
	"fmt"

	"github.com/pmiguelc/transita/internal/transfer"
)

// Attachment inserts are append-only: referenced job/asset/user/role ids are
// not validated here, the schema's foreign keys hold the line.

func (s *Store) AddJobs(ctx context.Context, transferID int64, jobs []transfer.JobParams) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO transfer_jobs (transfer_id, job_id, notes)
		VALUES ($1, $2, NULLIF($3, ''))
	`

	for _, j := range jobs {
		if _, err := dbTx.ExecContext(ctx, query, transferID, j.JobID, j.Notes); err != nil {
			return fmt.Errorf("adding transfer job: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transfer jobs: %w", err)
	}

	return nil
}

func (s *Store) AddInventory(ctx context.Context, transferID int64, notes string, items []transfer.ItemParams) (int64, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var headerID int64

	headerQuery := `
		INSERT INTO transfer_inventories (transfer_id, notes)
		VALUES ($1, NULLIF($2, ''))
		RETURNING id
	`

	if err := dbTx.QueryRowContext(ctx, headerQuery, transferID, notes).Scan(&headerID); err != nil {
		return 0, fmt.Errorf("creating inventory header: %w", err)
	}

	itemQuery := `
		INSERT INTO transfer_inventory_items (inventory_id, item_name, sku, quantity, unit)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''))
	`

	for _, item := range items {
		if _, err := dbTx.ExecContext(ctx, itemQuery,
			headerID, item.ItemName, item.SKU, item.Quantity, item.Unit,
		); err != nil {
			return 0, fmt.Errorf("adding inventory item: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transfer inventory: %w", err)
	}

	return headerID, nil
}

func (s *Store) AddAssets(ctx context.Context, transferID int64, assets []transfer.AssetParams) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO transfer_assets (transfer_id, asset_id, notes)
		VALUES ($1, $2, NULLIF($3, ''))
	`

	for _, a := range assets {
		if _, err := dbTx.ExecContext(ctx, query, transferID, a.AssetID, a.Notes); err != nil {
			return fmt.Errorf("adding transfer asset: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transfer assets: %w", err)
	}

	return nil
}

func (s *Store) AddUsers(ctx context.Context, transferID int64, users []transfer.UserParams) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO transfer_users (transfer_id, user_id, new_role_id, notes)
		VALUES ($1, $2, $3, NULLIF($4, ''))
	`

	for _, u := range users {
		if _, err := dbTx.ExecContext(ctx, query, transferID, u.UserID, u.NewRoleID, u.Notes); err != nil {
			return fmt.Errorf("adding transfer user: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transfer users: %w", err)
	}

	return nil
}
