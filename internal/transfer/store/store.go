package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pmiguelc/transita/internal/transfer"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransferColumns = `
	id, transfer_code, transfer_type, from_branch_id, to_branch_id,
	from_location_id, to_location_id, reason, status,
	requested_by, requested_at, approved_by, approved_at,
	dispatched_by, dispatched_at, received_by, received_at,
	is_active, created_at, created_by, updated_at, updated_by
`

// scanTransfer reads one transfer row in selectTransferColumns order.
func scanTransfer(s scanner) (*transfer.Transfer, error) {
	var t transfer.Transfer

	var statusStr string

	var reason sql.NullString

	if err := s.Scan(
		&t.ID, &t.TransferCode, &t.TransferType, &t.FromBranchID, &t.ToBranchID,
		&t.FromLocationID, &t.ToLocationID, &reason, &statusStr,
		&t.RequestedBy, &t.RequestedAt, &t.ApprovedBy, &t.ApprovedAt,
		&t.DispatchedBy, &t.DispatchedAt, &t.ReceivedBy, &t.ReceivedAt,
		&t.IsActive, &t.CreatedAt, &t.CreatedBy, &t.UpdatedAt, &t.UpdatedBy,
	); err != nil {
		return nil, err
	}

	t.Status = transfer.Status(statusStr)
	t.Reason = reason.String

	return &t, nil
}

// The transfer_code column carries a unique index; the daily sequence is a
// count-then-insert, so concurrent creations on the same day can collide and
// are retried with a fresh count.
const maxCodeAttempts = 5

func (s *Store) CreateTransfer(ctx context.Context, t *transfer.Transfer, remarks string) error {
	var err error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		err = s.createOnce(ctx, t, remarks)
		if err == nil {
			return nil
		}

		if !isUniqueViolation(err) {
			return err
		}
	}

	return fmt.Errorf("allocating transfer code: %w", err)
}

// createOnce runs one creation attempt: code allocation, transfer insert and
// creation log row, all in a single database transaction.
func (s *Store) createOnce(ctx context.Context, t *transfer.Transfer, remarks string) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	day := time.Now()

	var count int
	if err := dbTx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transfers WHERE transfer_code LIKE $1 || '%'`,
		transfer.CodeDayPrefix(day),
	).Scan(&count); err != nil {
		return fmt.Errorf("counting daily transfers: %w", err)
	}

	code := transfer.BuildCode(day, count+1)

	insertQuery := `
		INSERT INTO transfers (
			transfer_code, transfer_type, from_branch_id, to_branch_id,
			from_location_id, to_location_id, reason, status,
			requested_by, requested_at, is_active, created_at, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, NOW(), TRUE, NOW(), $9)
		RETURNING id, requested_at, created_at
	`

	err = dbTx.QueryRowContext(ctx, insertQuery,
		code,
		t.TransferType,
		t.FromBranchID,
		t.ToBranchID,
		t.FromLocationID,
		t.ToLocationID,
		t.Reason,
		t.Status,
		t.RequestedBy,
	).Scan(&t.ID, &t.RequestedAt, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transfer: %w", err)
	}

	logQuery := `
		INSERT INTO transfer_logs (transfer_id, action, from_status, to_status, remarks, action_by, action_at)
		VALUES ($1, $2, NULL, $3, NULLIF($4, ''), $5, NOW())
	`

	if _, err := dbTx.ExecContext(ctx, logQuery,
		t.ID, transfer.LogActionStatusChange, t.Status, remarks, t.RequestedBy,
	); err != nil {
		return fmt.Errorf("recording creation log: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transfer creation: %w", err)
	}

	t.TransferCode = code

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *Store) GetTransfer(ctx context.Context, id int64) (*transfer.Transfer, error) {
	query := `SELECT ` + selectTransferColumns + `
		FROM transfers
		WHERE id = $1 AND is_active`

	t, err := scanTransfer(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transfer.ErrNotFound
		}

		return nil, fmt.Errorf("getting transfer: %w", err)
	}

	return t, nil
}

func (s *Store) ListTransfers(ctx context.Context, filter transfer.ListFilter) ([]*transfer.Transfer, error) {
	query := `SELECT ` + selectTransferColumns + `
		FROM transfers
		WHERE is_active`

	var args []any

	argIdx := 1

	if filter.BranchID != nil {
		query += fmt.Sprintf(" AND (from_branch_id = $%d OR to_branch_id = $%d)", argIdx, argIdx)

		args = append(args, *filter.BranchID)
		argIdx++
	}

	if filter.Type != nil {
		query += fmt.Sprintf(" AND transfer_type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	query += " ORDER BY requested_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transfers: %w", err)
	}
	defer rows.Close()

	var ts []*transfer.Transfer

	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transfer: %w", err)
		}

		ts = append(ts, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transfer rows: %w", err)
	}

	return ts, nil
}

func (s *Store) ListLogs(ctx context.Context, transferID int64) ([]*transfer.LogEntry, error) {
	query := `
		SELECT id, transfer_id, action, from_status, to_status, remarks, action_by, action_at
		FROM transfer_logs
		WHERE transfer_id = $1
		ORDER BY action_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, transferID)
	if err != nil {
		return nil, fmt.Errorf("listing transfer logs: %w", err)
	}
	defer rows.Close()

	var entries []*transfer.LogEntry

	for rows.Next() {
		var e transfer.LogEntry

		var fromStatus, toStatus, remarks sql.NullString

		if err := rows.Scan(
			&e.ID, &e.TransferID, &e.Action,
			&fromStatus, &toStatus, &remarks,
			&e.ActionBy, &e.ActionAt,
		); err != nil {
			return nil, fmt.Errorf("scanning transfer log: %w", err)
		}

		if fromStatus.Valid {
			s := transfer.Status(fromStatus.String)
			e.FromStatus = &s
		}

		if toStatus.Valid {
			s := transfer.Status(toStatus.String)
			e.ToStatus = &s
		}

		e.Remarks = remarks.String

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating log rows: %w", err)
	}

	return entries, nil
}

func (s *Store) DeactivateTransfer(ctx context.Context, id, actorID int64) error {
	query := `
		UPDATE transfers
		SET is_active = FALSE, updated_at = NOW(), updated_by = $1
		WHERE id = $2 AND is_active
	`

	res, err := s.db.ExecContext(ctx, query, actorID, id)
	if err != nil {
		return fmt.Errorf("deactivating transfer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivating transfer: %w", err)
	}

	if affected == 0 {
		return transfer.ErrNotFound
	}

	return nil
}
