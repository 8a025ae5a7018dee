package transfer

import (
	"errors"
	"fmt"
	"time"
)

// Status represents the lifecycle state of a transfer.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusInTransit Status = "IN_TRANSIT"
	StatusReceived  Status = "RECEIVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// transitions maps each status to the set of statuses it may move to.
// RECEIVED, REJECTED and CANCELLED are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:  {StatusInTransit, StatusRejected, StatusCancelled},
	StatusInTransit: {StatusReceived},
}

// CanTransition reports whether a transfer in status from may move to status to.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}

	return false
}

// LogActionStatusChange is the action recorded for every status transition,
// including the creation event.
const LogActionStatusChange = "STATUS_CHANGE"

var (
	ErrNotFound          = errors.New("transfer not found")
	ErrSameBranch        = errors.New("source and destination branch must differ")
	ErrBranchRequired    = errors.New("source and destination branch are required")
	ErrReasonTooLong     = errors.New("reason exceeds 500 characters")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Transfer is a tracked request to move resources between two branches.
type Transfer struct {
	ID           int64
	TransferCode string
	TransferType string

	FromBranchID   int64
	ToBranchID     int64
	FromLocationID *int64
	ToLocationID   *int64

	Reason string
	Status Status

	RequestedBy  int64
	RequestedAt  time.Time
	ApprovedBy   *int64
	ApprovedAt   *time.Time
	DispatchedBy *int64
	DispatchedAt *time.Time
	ReceivedBy   *int64
	ReceivedAt   *time.Time

	IsActive  bool
	CreatedAt time.Time
	CreatedBy int64
	UpdatedAt *time.Time
	UpdatedBy *int64
}

// LogEntry is one immutable row of a transfer's audit trail. FromStatus is nil
// for the creation event.
type LogEntry struct {
	ID         int64
	TransferID int64
	Action     string
	FromStatus *Status
	ToStatus   *Status
	Remarks    string
	ActionBy   int64
	ActionAt   time.Time
}

// Job links a job reference to a transfer.
type Job struct {
	ID         int64
	TransferID int64
	JobID      int64
	Notes      string
}

// Inventory is the header row for a set of inventory items moved by a transfer.
type Inventory struct {
	ID         int64
	TransferID int64
	Notes      string
	Items      []InventoryItem
}

type InventoryItem struct {
	ID          int64
	InventoryID int64
	ItemName    string
	SKU         string
	Quantity    int
	Unit        string
}

// Asset links an asset reference to a transfer.
type Asset struct {
	ID         int64
	TransferID int64
	AssetID    int64
	Notes      string
}

// User links a person to a transfer, optionally with the role they assume at
// the destination.
type User struct {
	ID         int64
	TransferID int64
	UserID     int64
	NewRoleID  *int64
	Notes      string
}

const codePrefix = "TRF"

// BuildCode formats a transfer code as TRF-YYYYMMDD-NNN.
func BuildCode(day time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%03d", codePrefix, day.Format("20060102"), seq)
}

// CodeDayPrefix returns the prefix shared by all codes generated on the given
// day, used to count the day's existing transfers.
func CodeDayPrefix(day time.Time) string {
	return fmt.Sprintf("%s-%s-", codePrefix, day.Format("20060102"))
}
