package export_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pmiguelc/transita/internal/export"
	"github.com/pmiguelc/transita/internal/transfer"
)

func TestService_WriteTransfers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	requestedAt := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)

	repo := transfer.NewMockRepository(ctrl)
	repo.EXPECT().
		ListTransfers(gomock.Any(), transfer.ListFilter{}).
		Return([]*transfer.Transfer{
			{
				TransferCode: "TRF-20250307-001",
				TransferType: "ASSET",
				Status:       transfer.StatusApproved,
				FromBranchID: 1,
				ToBranchID:   2,
				RequestedBy:  5,
				RequestedAt:  requestedAt,
				Reason:       "office move",
			},
		}, nil)

	svc := export.NewService(transfer.NewService(repo))

	var buf bytes.Buffer
	err := svc.WriteTransfers(context.Background(), transfer.ListFilter{}, &buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "transfer_code,type,status,from_branch,to_branch,requested_by,requested_at,reason", lines[0])
	assert.Equal(t, "TRF-20250307-001,ASSET,APPROVED,1,2,5,2025-03-07T10:00:00Z,office move", lines[1])
}

func TestService_WriteAuditTrail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	actionAt := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	pending := transfer.StatusPending
	approved := transfer.StatusApproved

	repo := transfer.NewMockRepository(ctrl)
	repo.EXPECT().
		GetTransfer(gomock.Any(), int64(1)).
		Return(&transfer.Transfer{ID: 1, Status: transfer.StatusApproved}, nil)
	repo.EXPECT().
		ListLogs(gomock.Any(), int64(1)).
		Return([]*transfer.LogEntry{
			{
				TransferID: 1,
				Action:     transfer.LogActionStatusChange,
				ToStatus:   &pending,
				Remarks:    "Transfer created",
				ActionBy:   3,
				ActionAt:   actionAt,
			},
			{
				TransferID: 1,
				Action:     transfer.LogActionStatusChange,
				FromStatus: &pending,
				ToStatus:   &approved,
				Remarks:    "ok",
				ActionBy:   5,
				ActionAt:   actionAt.Add(time.Hour),
			},
		}, nil)

	svc := export.NewService(transfer.NewService(repo))

	var buf bytes.Buffer
	err := svc.WriteAuditTrail(context.Background(), 1, &buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1,STATUS_CHANGE,,PENDING,Transfer created,3,2025-03-07T10:00:00Z", lines[1])
	assert.Equal(t, "1,STATUS_CHANGE,PENDING,APPROVED,ok,5,2025-03-07T11:00:00Z", lines[2])
}

func TestService_WriteAuditTrail_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transfer.NewMockRepository(ctrl)
	repo.EXPECT().
		GetTransfer(gomock.Any(), int64(99)).
		Return(nil, transfer.ErrNotFound)

	svc := export.NewService(transfer.NewService(repo))

	var buf bytes.Buffer
	err := svc.WriteAuditTrail(context.Background(), 99, &buf)
	assert.ErrorIs(t, err, transfer.ErrNotFound)
}
