package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pmiguelc/transita/internal/transfer"
)

// actorColumns maps a transition role to the actor/timestamp column pair it
// writes. Role values come from the service, never from request input.
func actorColumns(role transfer.ActorRole) (byCol, atCol string, err error) {
	switch role {
	case transfer.RoleApprover:
		return "approved_by", "approved_at", nil
	case transfer.RoleDispatcher:
		return "dispatched_by", "dispatched_at", nil
	case transfer.RoleReceiver:
		return "received_by", "received_at", nil
	}

	return "", "", fmt.Errorf("unknown actor role %q", role)
}

// Transition applies one status change. The update is guarded on the expected
// source status; the status write and its audit log row commit together or
// not at all.
func (s *Store) Transition(ctx context.Context, id int64, params transfer.TransitionParams) error {
	byCol, atCol, err := actorColumns(params.Role)
	if err != nil {
		return err
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	updateQuery := fmt.Sprintf(`
		UPDATE transfers
		SET status = $1, %s = $2, %s = NOW(), updated_at = NOW(), updated_by = $2
		WHERE id = $3 AND status = $4 AND is_active
	`, byCol, atCol)

	res, err := dbTx.ExecContext(ctx, updateQuery, params.To, params.ActorID, id, params.From)
	if err != nil {
		return fmt.Errorf("updating transfer status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating transfer status: %w", err)
	}

	if affected == 0 {
		return s.transitionConflict(ctx, dbTx, id, params)
	}

	logQuery := `
		INSERT INTO transfer_logs (transfer_id, action, from_status, to_status, remarks, action_by, action_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, NOW())
	`

	if _, err := dbTx.ExecContext(ctx, logQuery,
		id, transfer.LogActionStatusChange, params.From, params.To, params.Remarks, params.ActorID,
	); err != nil {
		return fmt.Errorf("recording status change: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transition: %w", err)
	}

	return nil
}

// transitionConflict distinguishes a missing transfer from one whose status
// moved between the caller's read and this update.
func (s *Store) transitionConflict(ctx context.Context, dbTx *sql.Tx, id int64, params transfer.TransitionParams) error {
	var current string

	err := dbTx.QueryRowContext(ctx,
		`SELECT status FROM transfers WHERE id = $1 AND is_active`, id,
	).Scan(&current)
	if err == sql.ErrNoRows {
		return transfer.ErrNotFound
	}

	if err != nil {
		return fmt.Errorf("checking transfer status: %w", err)
	}

	return fmt.Errorf("%w: expected %s, found %s", transfer.ErrInvalidTransition, params.From, current)
}
