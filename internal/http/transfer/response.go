package transfer

import (
	"time"

	"github.com/pmiguelc/transita/internal/transfer"
)

type transferResponse struct {
	ID           int64           `json:"id"`
	TransferCode string          `json:"transfer_code"`
	TransferType string          `json:"transfer_type"`
	Status       transfer.Status `json:"status"`

	FromBranchID   int64  `json:"from_branch_id"`
	ToBranchID     int64  `json:"to_branch_id"`
	FromLocationID *int64 `json:"from_location_id,omitempty"`
	ToLocationID   *int64 `json:"to_location_id,omitempty"`

	Reason string `json:"reason,omitempty"`

	RequestedBy  int64      `json:"requested_by"`
	RequestedAt  time.Time  `json:"requested_at"`
	ApprovedBy   *int64     `json:"approved_by,omitempty"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	DispatchedBy *int64     `json:"dispatched_by,omitempty"`
	DispatchedAt *time.Time `json:"dispatched_at,omitempty"`
	ReceivedBy   *int64     `json:"received_by,omitempty"`
	ReceivedAt   *time.Time `json:"received_at,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toResponse(t *transfer.Transfer) transferResponse {
	return transferResponse{
		ID:             t.ID,
		TransferCode:   t.TransferCode,
		TransferType:   t.TransferType,
		Status:         t.Status,
		FromBranchID:   t.FromBranchID,
		ToBranchID:     t.ToBranchID,
		FromLocationID: t.FromLocationID,
		ToLocationID:   t.ToLocationID,
		Reason:         t.Reason,
		RequestedBy:    t.RequestedBy,
		RequestedAt:    t.RequestedAt,
		ApprovedBy:     t.ApprovedBy,
		ApprovedAt:     t.ApprovedAt,
		DispatchedBy:   t.DispatchedBy,
		DispatchedAt:   t.DispatchedAt,
		ReceivedBy:     t.ReceivedBy,
		ReceivedAt:     t.ReceivedAt,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func toResponseList(transfers []*transfer.Transfer) []transferResponse {
	resp := make([]transferResponse, len(transfers))
	for i, t := range transfers {
		resp[i] = toResponse(t)
	}

	return resp
}

type logResponse struct {
	ID         int64            `json:"id"`
	TransferID int64            `json:"transfer_id"`
	Action     string           `json:"action"`
	FromStatus *transfer.Status `json:"from_status,omitempty"`
	ToStatus   *transfer.Status `json:"to_status,omitempty"`
	Remarks    string           `json:"remarks,omitempty"`
	ActionBy   int64            `json:"action_by"`
	ActionAt   time.Time        `json:"action_at"`
}

func toLogResponse(e *transfer.LogEntry) logResponse {
	return logResponse{
		ID:         e.ID,
		TransferID: e.TransferID,
		Action:     e.Action,
		FromStatus: e.FromStatus,
		ToStatus:   e.ToStatus,
		Remarks:    e.Remarks,
		ActionBy:   e.ActionBy,
		ActionAt:   e.ActionAt,
	}
}

func toLogResponseList(entries []*transfer.LogEntry) []logResponse {
	resp := make([]logResponse, len(entries))
	for i, e := range entries {
		resp[i] = toLogResponse(e)
	}

	return resp
}
