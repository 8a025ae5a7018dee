package transfer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pmiguelc/transita/internal/transfer"
)

func TestService_Create(t *testing.T) {
	type args struct {
		params  transfer.CreateParams
		actorID int64
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *transfer.MockRepository)
		wantErr   error
		wantFail  bool
	}

	longReason := make([]byte, 501)
	for i := range longReason {
		longReason[i] = 'x'
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: transfer.CreateParams{
					TransferType: "ASSET",
					FromBranchID: 1,
					ToBranchID:   2,
					Reason:       "new office setup",
				},
				actorID: 5,
			},
			setupMock: func(m *transfer.MockRepository) {
				m.EXPECT().
					CreateTransfer(gomock.Any(), gomock.Any(), "Transfer created").
					DoAndReturn(func(_ context.Context, tr *transfer.Transfer, _ string) error {
						tr.ID = 1
						tr.TransferCode = "TRF-20250307-001"
						tr.RequestedAt = time.Now()
						tr.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "MissingFromBranch",
			args: args{
				params:  transfer.CreateParams{ToBranchID: 2},
				actorID: 5,
			},
			wantErr: transfer.ErrBranchRequired,
		},
		{
			name: "MissingToBranch",
			args: args{
				params:  transfer.CreateParams{FromBranchID: 1},
				actorID: 5,
			},
			wantErr: transfer.ErrBranchRequired,
		},
		{
			name: "SameBranch",
			args: args{
				params:  transfer.CreateParams{FromBranchID: 3, ToBranchID: 3},
				actorID: 5,
			},
			wantErr: transfer.ErrSameBranch,
		},
		{
			name: "ReasonTooLong",
			args: args{
				params: transfer.CreateParams{
					FromBranchID: 1,
					ToBranchID:   2,
					Reason:       string(longReason),
				},
				actorID: 5,
			},
			wantErr: transfer.ErrReasonTooLong,
		},
		{
			name: "RepoError",
			args: args{
				params:  transfer.CreateParams{FromBranchID: 1, ToBranchID: 2},
				actorID: 5,
			},
			setupMock: func(m *transfer.MockRepository) {
				m.EXPECT().
					CreateTransfer(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantFail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transfer.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transfer.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params, tt.args.actorID)

			if tt.wantErr != nil || tt.wantFail {
				require.Error(t, err)
				assert.Nil(t, got)

				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, transfer.StatusPending, got.Status)
			assert.Equal(t, int64(5), got.RequestedBy)
			assert.Equal(t, int64(5), got.CreatedBy)
			assert.True(t, got.IsActive)
			assert.NotEmpty(t, got.TransferCode)
		})
	}
}

func TestService_Transitions(t *testing.T) {
	type testCase struct {
		name     string
		current  transfer.Status
		invoke   func(svc *transfer.Service, ctx context.Context, id, actor int64, remarks string) error
		wantTo   transfer.Status
		wantRole transfer.ActorRole
	}

	tests := []testCase{
		{
			name:     "ApproveFromPending",
			current:  transfer.StatusPending,
			invoke:   (*transfer.Service).Approve,
			wantTo:   transfer.StatusApproved,
			wantRole: transfer.RoleApprover,
		},
		{
			name:     "DispatchFromApproved",
			current:  transfer.StatusApproved,
			invoke:   (*transfer.Service).Dispatch,
			wantTo:   transfer.StatusInTransit,
			wantRole: transfer.RoleDispatcher,
		},
		{
			name:     "ReceiveFromInTransit",
			current:  transfer.StatusInTransit,
			invoke:   (*transfer.Service).Receive,
			wantTo:   transfer.StatusReceived,
			wantRole: transfer.RoleReceiver,
		},
		{
			name:     "RejectFromPending",
			current:  transfer.StatusPending,
			invoke:   (*transfer.Service).Reject,
			wantTo:   transfer.StatusRejected,
			wantRole: transfer.RoleApprover,
		},
		{
			name:     "RejectFromApproved",
			current:  transfer.StatusApproved,
			invoke:   (*transfer.Service).Reject,
			wantTo:   transfer.StatusRejected,
			wantRole: transfer.RoleApprover,
		},
		{
			name:     "CancelFromPending",
			current:  transfer.StatusPending,
			invoke:   (*transfer.Service).Cancel,
			wantTo:   transfer.StatusCancelled,
			wantRole: transfer.RoleApprover,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transfer.NewMockRepository(ctrl)
			repo.EXPECT().
				GetTransfer(gomock.Any(), int64(10)).
				Return(&transfer.Transfer{ID: 10, Status: tt.current}, nil)
			repo.EXPECT().
				Transition(gomock.Any(), int64(10), transfer.TransitionParams{
					From:    tt.current,
					To:      tt.wantTo,
					Role:    tt.wantRole,
					ActorID: 7,
					Remarks: "ok",
				}).
				Return(nil)

			svc := transfer.NewService(repo)
			err := tt.invoke(svc, context.Background(), 10, 7, "ok")
			assert.NoError(t, err)
		})
	}
}

func TestService_Transitions_Guarded(t *testing.T) {
	type testCase struct {
		name    string
		current transfer.Status
		invoke  func(svc *transfer.Service, ctx context.Context, id, actor int64, remarks string) error
	}

	tests := []testCase{
		{"DispatchAfterReject", transfer.StatusRejected, (*transfer.Service).Dispatch},
		{"ApproveAfterReceive", transfer.StatusReceived, (*transfer.Service).Approve},
		{"ReceiveFromPending", transfer.StatusPending, (*transfer.Service).Receive},
		{"CancelAfterDispatch", transfer.StatusInTransit, (*transfer.Service).Cancel},
		{"ApproveTwice", transfer.StatusApproved, (*transfer.Service).Approve},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// No Transition expectation: a guarded failure must not write.
			repo := transfer.NewMockRepository(ctrl)
			repo.EXPECT().
				GetTransfer(gomock.Any(), int64(10)).
				Return(&transfer.Transfer{ID: 10, Status: tt.current}, nil)

			svc := transfer.NewService(repo)
			err := tt.invoke(svc, context.Background(), 10, 7, "")
			assert.ErrorIs(t, err, transfer.ErrInvalidTransition)
		})
	}
}

func TestService_Transition_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transfer.NewMockRepository(ctrl)
	repo.EXPECT().
		GetTransfer(gomock.Any(), int64(99)).
		Return(nil, transfer.ErrNotFound)

	svc := transfer.NewService(repo)
	err := svc.Approve(context.Background(), 99, 7, "ok")
	assert.ErrorIs(t, err, transfer.ErrNotFound)
}

// fakeRepo keeps a transfer and its log rows in memory so the full lifecycle
// can be exercised through the service without a database.
type fakeRepo struct {
	transfer.Repository

	t    *transfer.Transfer
	logs []*transfer.LogEntry
}

func (f *fakeRepo) CreateTransfer(_ context.Context, t *transfer.Transfer, remarks string) error {
	t.ID = 1
	t.TransferCode = "TRF-20250307-001"
	t.RequestedAt = time.Now()
	t.CreatedAt = t.RequestedAt
	f.t = t

	to := t.Status
	f.logs = append(f.logs, &transfer.LogEntry{
		TransferID: t.ID,
		Action:     transfer.LogActionStatusChange,
		ToStatus:   &to,
		Remarks:    remarks,
		ActionBy:   t.RequestedBy,
		ActionAt:   time.Now(),
	})

	return nil
}

func (f *fakeRepo) GetTransfer(_ context.Context, id int64) (*transfer.Transfer, error) {
	if f.t == nil || f.t.ID != id {
		return nil, transfer.ErrNotFound
	}

	cp := *f.t

	return &cp, nil
}

func (f *fakeRepo) Transition(_ context.Context, id int64, params transfer.TransitionParams) error {
	if f.t == nil || f.t.ID != id {
		return transfer.ErrNotFound
	}

	if f.t.Status != params.From {
		return transfer.ErrInvalidTransition
	}

	now := time.Now()
	f.t.Status = params.To

	switch params.Role {
	case transfer.RoleApprover:
		f.t.ApprovedBy, f.t.ApprovedAt = &params.ActorID, &now
	case transfer.RoleDispatcher:
		f.t.DispatchedBy, f.t.DispatchedAt = &params.ActorID, &now
	case transfer.RoleReceiver:
		f.t.ReceivedBy, f.t.ReceivedAt = &params.ActorID, &now
	}

	from, to := params.From, params.To
	f.logs = append(f.logs, &transfer.LogEntry{
		TransferID: id,
		Action:     transfer.LogActionStatusChange,
		FromStatus: &from,
		ToStatus:   &to,
		Remarks:    params.Remarks,
		ActionBy:   params.ActorID,
		ActionAt:   now,
	})

	return nil
}

func (f *fakeRepo) ListLogs(_ context.Context, transferID int64) ([]*transfer.LogEntry, error) {
	return f.logs, nil
}

func TestService_FullLifecycle(t *testing.T) {
	repo := &fakeRepo{}
	svc := transfer.NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, transfer.CreateParams{
		TransferType: "ASSET",
		FromBranchID: 1,
		ToBranchID:   2,
	}, 3)
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusPending, created.Status)

	require.NoError(t, svc.Approve(ctx, created.ID, 5, "ok"))
	require.NoError(t, svc.Dispatch(ctx, created.ID, 7, ""))
	require.NoError(t, svc.Receive(ctx, created.ID, 9, ""))

	assert.Equal(t, transfer.StatusReceived, repo.t.Status)
	require.NotNil(t, repo.t.ApprovedBy)
	assert.Equal(t, int64(5), *repo.t.ApprovedBy)
	require.NotNil(t, repo.t.DispatchedBy)
	assert.Equal(t, int64(7), *repo.t.DispatchedBy)
	require.NotNil(t, repo.t.ReceivedBy)
	assert.Equal(t, int64(9), *repo.t.ReceivedBy)

	logs, err := svc.Logs(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, logs, 4)

	assert.Nil(t, logs[0].FromStatus)
	assert.Equal(t, transfer.StatusPending, *logs[0].ToStatus)
	assert.Equal(t, "Transfer created", logs[0].Remarks)

	wantChain := []struct {
		from transfer.Status
		to   transfer.Status
	}{
		{transfer.StatusPending, transfer.StatusApproved},
		{transfer.StatusApproved, transfer.StatusInTransit},
		{transfer.StatusInTransit, transfer.StatusReceived},
	}

	for i, want := range wantChain {
		entry := logs[i+1]
		require.NotNil(t, entry.FromStatus)
		assert.Equal(t, want.from, *entry.FromStatus)
		assert.Equal(t, want.to, *entry.ToStatus)
	}
}

func TestService_RejectedTransferStaysRejected(t *testing.T) {
	repo := &fakeRepo{}
	svc := transfer.NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, transfer.CreateParams{FromBranchID: 1, ToBranchID: 2}, 3)
	require.NoError(t, err)

	require.NoError(t, svc.Reject(ctx, created.ID, 3, "wrong branch"))
	assert.Equal(t, transfer.StatusRejected, repo.t.Status)

	err = svc.Dispatch(ctx, created.ID, 7, "")
	assert.ErrorIs(t, err, transfer.ErrInvalidTransition)

	// Still rejected, still only the two log rows.
	assert.Equal(t, transfer.StatusRejected, repo.t.Status)
	assert.Len(t, repo.logs, 2)
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	branch := int64(2)
	filter := transfer.ListFilter{BranchID: &branch}

	repo := transfer.NewMockRepository(ctrl)
	repo.EXPECT().
		ListTransfers(gomock.Any(), filter).
		Return([]*transfer.Transfer{
			{ID: 1, FromBranchID: 2, ToBranchID: 3},
			{ID: 2, FromBranchID: 1, ToBranchID: 2},
		}, nil)

	svc := transfer.NewService(repo)
	got, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_Logs_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transfer.NewMockRepository(ctrl)
	repo.EXPECT().
		GetTransfer(gomock.Any(), int64(42)).
		Return(nil, transfer.ErrNotFound)

	svc := transfer.NewService(repo)
	_, err := svc.Logs(context.Background(), 42)
	assert.ErrorIs(t, err, transfer.ErrNotFound)
}

func TestService_AddInventory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	items := []transfer.ItemParams{
		{ItemName: "Monitor", SKU: "MON-24", Quantity: 4, Unit: "pcs"},
		{ItemName: "Dock", Quantity: 2},
	}

	repo := transfer.NewMockRepository(ctrl)
	repo.EXPECT().
		GetTransfer(gomock.Any(), int64(10)).
		Return(&transfer.Transfer{ID: 10, Status: transfer.StatusPending}, nil)
	repo.EXPECT().
		AddInventory(gomock.Any(), int64(10), "desk move", items).
		Return(int64(77), nil)

	svc := transfer.NewService(repo)
	headerID, err := svc.AddInventory(context.Background(), 10, "desk move", items)
	require.NoError(t, err)
	assert.Equal(t, int64(77), headerID)
}

func TestService_AddAssets_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transfer.NewMockRepository(ctrl)
	repo.EXPECT().
		GetTransfer(gomock.Any(), int64(99)).
		Return(nil, transfer.ErrNotFound)

	svc := transfer.NewService(repo)
	err := svc.AddAssets(context.Background(), 99, []transfer.AssetParams{{AssetID: 1}})
	assert.ErrorIs(t, err, transfer.ErrNotFound)
}
