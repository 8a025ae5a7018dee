package transfer

import (
	"context"
	"fmt"
)

// ActorRole selects which actor/timestamp column pair a transition writes.
// Reject and cancel record the deciding actor in the approver columns.
type ActorRole string

const (
	RoleApprover   ActorRole = "approver"
	RoleDispatcher ActorRole = "dispatcher"
	RoleReceiver   ActorRole = "receiver"
)

// TransitionParams describes one status change to be persisted atomically with
// its audit log row.
type TransitionParams struct {
	From    Status
	To      Status
	Role    ActorRole
	ActorID int64
	Remarks string
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transfer
type Repository interface {
	// CreateTransfer inserts the transfer and its creation log row in one
	// unit of work, assigning ID, TransferCode, RequestedAt and CreatedAt.
	CreateTransfer(ctx context.Context, t *Transfer, remarks string) error
	GetTransfer(ctx context.Context, id int64) (*Transfer, error)
	ListTransfers(ctx context.Context, filter ListFilter) ([]*Transfer, error)
	ListLogs(ctx context.Context, transferID int64) ([]*LogEntry, error)

	// Transition updates status and the role's actor/timestamp pair and
	// appends the log row, both in one unit of work. The update is guarded
	// on params.From so a concurrent change surfaces as ErrInvalidTransition
	// rather than a silent override.
	Transition(ctx context.Context, id int64, params TransitionParams) error
	DeactivateTransfer(ctx context.Context, id, actorID int64) error

	AddJobs(ctx context.Context, transferID int64, jobs []JobParams) error
	AddInventory(ctx context.Context, transferID int64, notes string, items []ItemParams) (int64, error)
	AddAssets(ctx context.Context, transferID int64, assets []AssetParams) error
	AddUsers(ctx context.Context, transferID int64, users []UserParams) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	TransferType   string
	FromBranchID   int64
	ToBranchID     int64
	FromLocationID *int64
	ToLocationID   *int64
	Reason         string
}

type ListFilter struct {
	// BranchID matches transfers where the branch is either the source or
	// the destination.
	BranchID *int64
	Type     *string
	Status   *Status
}

type JobParams struct {
	JobID int64
	Notes string
}

type ItemParams struct {
	ItemName string
	SKU      string
	Quantity int
	Unit     string
}

type AssetParams struct {
	AssetID int64
	Notes   string
}

type UserParams struct {
	UserID    int64
	NewRoleID *int64
	Notes     string
}

const maxReasonLen = 500

// Create validates the request and persists a new PENDING transfer together
// with its creation log entry.
func (s *Service) Create(ctx context.Context, params CreateParams, actorID int64) (*Transfer, error) {
	if params.FromBranchID == 0 || params.ToBranchID == 0 {
		return nil, ErrBranchRequired
	}

	if params.FromBranchID == params.ToBranchID {
		return nil, ErrSameBranch
	}

	if len(params.Reason) > maxReasonLen {
		return nil, ErrReasonTooLong
	}

	t := &Transfer{
		TransferType:   params.TransferType,
		FromBranchID:   params.FromBranchID,
		ToBranchID:     params.ToBranchID,
		FromLocationID: params.FromLocationID,
		ToLocationID:   params.ToLocationID,
		Reason:         params.Reason,
		Status:         StatusPending,
		RequestedBy:    actorID,
		IsActive:       true,
		CreatedBy:      actorID,
	}

	if err := s.repo.CreateTransfer(ctx, t, "Transfer created"); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Transfer, error) {
	return s.repo.GetTransfer(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transfer, error) {
	return s.repo.ListTransfers(ctx, filter)
}

func (s *Service) Logs(ctx context.Context, transferID int64) ([]*LogEntry, error) {
	if _, err := s.repo.GetTransfer(ctx, transferID); err != nil {
		return nil, err
	}

	return s.repo.ListLogs(ctx, transferID)
}

func (s *Service) Approve(ctx context.Context, id, actorID int64, remarks string) error {
	return s.transition(ctx, id, StatusApproved, RoleApprover, actorID, remarks)
}

func (s *Service) Dispatch(ctx context.Context, id, actorID int64, remarks string) error {
	return s.transition(ctx, id, StatusInTransit, RoleDispatcher, actorID, remarks)
}

func (s *Service) Receive(ctx context.Context, id, actorID int64, remarks string) error {
	return s.transition(ctx, id, StatusReceived, RoleReceiver, actorID, remarks)
}

func (s *Service) Reject(ctx context.Context, id, actorID int64, remarks string) error {
	return s.transition(ctx, id, StatusRejected, RoleApprover, actorID, remarks)
}

func (s *Service) Cancel(ctx context.Context, id, actorID int64, remarks string) error {
	return s.transition(ctx, id, StatusCancelled, RoleApprover, actorID, remarks)
}

// transition loads the current status, enforces the state machine and hands
// the guarded update plus log append to the repository as one unit of work.
func (s *Service) transition(ctx context.Context, id int64, target Status, role ActorRole, actorID int64, remarks string) error {
	t, err := s.repo.GetTransfer(ctx, id)
	if err != nil {
		return err
	}

	if !CanTransition(t.Status, target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.Status, target)
	}

	return s.repo.Transition(ctx, id, TransitionParams{
		From:    t.Status,
		To:      target,
		Role:    role,
		ActorID: actorID,
		Remarks: remarks,
	})
}

// Deactivate soft-deletes a transfer. The row and its logs are retained.
func (s *Service) Deactivate(ctx context.Context, id, actorID int64) error {
	return s.repo.DeactivateTransfer(ctx, id, actorID)
}

func (s *Service) AddJobs(ctx context.Context, transferID int64, jobs []JobParams) error {
	if _, err := s.repo.GetTransfer(ctx, transferID); err != nil {
		return err
	}

	return s.repo.AddJobs(ctx, transferID, jobs)
}

// AddInventory creates one inventory header plus one detail row per item and
// returns the header id.
func (s *Service) AddInventory(ctx context.Context, transferID int64, notes string, items []ItemParams) (int64, error) {
	if _, err := s.repo.GetTransfer(ctx, transferID); err != nil {
		return 0, err
	}

	return s.repo.AddInventory(ctx, transferID, notes, items)
}

func (s *Service) AddAssets(ctx context.Context, transferID int64, assets []AssetParams) error {
	if _, err := s.repo.GetTransfer(ctx, transferID); err != nil {
		return err
	}

	return s.repo.AddAssets(ctx, transferID, assets)
}

func (s *Service) AddUsers(ctx context.Context, transferID int64, users []UserParams) error {
	if _, err := s.repo.GetTransfer(ctx, transferID); err != nil {
		return err
	}

	return s.repo.AddUsers(ctx, transferID, users)
}
