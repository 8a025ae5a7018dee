package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pmiguelc/transita/internal/transfer"
)

// Service renders transfer data as CSV reports for the finance and audit
// teams.
type Service struct {
	transfers *transfer.Service
}

func NewService(transfers *transfer.Service) *Service {
	return &Service{transfers: transfers}
}

// Transfer resolves a single transfer, typically to name a report after its
// code before streaming it.
func (s *Service) Transfer(ctx context.Context, id int64) (*transfer.Transfer, error) {
	return s.transfers.Get(ctx, id)
}

var transferHeader = []string{
	"transfer_code", "type", "status", "from_branch", "to_branch",
	"requested_by", "requested_at", "reason",
}

// WriteTransfers writes all transfers matching the filter as CSV.
func (s *Service) WriteTransfers(ctx context.Context, filter transfer.ListFilter, w io.Writer) error {
	transfers, err := s.transfers.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("listing transfers: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(transferHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, t := range transfers {
		row := []string{
			t.TransferCode,
			t.TransferType,
			string(t.Status),
			strconv.FormatInt(t.FromBranchID, 10),
			strconv.FormatInt(t.ToBranchID, 10),
			strconv.FormatInt(t.RequestedBy, 10),
			t.RequestedAt.Format(time.RFC3339),
			t.Reason,
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing transfer %s: %w", t.TransferCode, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

var auditHeader = []string{
	"transfer_id", "action", "from_status", "to_status", "remarks",
	"action_by", "action_at",
}

// WriteAuditTrail writes one transfer's log entries as CSV, oldest first.
func (s *Service) WriteAuditTrail(ctx context.Context, transferID int64, w io.Writer) error {
	logs, err := s.transfers.Logs(ctx, transferID)
	if err != nil {
		return fmt.Errorf("listing logs: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(auditHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, e := range logs {
		row := []string{
			strconv.FormatInt(e.TransferID, 10),
			e.Action,
			statusCell(e.FromStatus),
			statusCell(e.ToStatus),
			e.Remarks,
			strconv.FormatInt(e.ActionBy, 10),
			e.ActionAt.Format(time.RFC3339),
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing log entry: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func statusCell(s *transfer.Status) string {
	if s == nil {
		return ""
	}

	return string(*s)
}
