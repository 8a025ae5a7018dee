package transfer_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pmiguelc/transita/internal/auth"
	transferHandler "github.com/pmiguelc/transita/internal/http/transfer"
	"github.com/pmiguelc/transita/internal/transfer"
)

func newTestRouter(t *testing.T) (*chi.Mux, *transfer.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := transfer.NewMockRepository(ctrl)
	h := transferHandler.NewHandler(transfer.NewService(repo))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithUserID(req.Context(), 42)))
		})
	})
	r.Route("/transfers", h.Routes)

	return r, repo
}

func TestHandler_Create(t *testing.T) {
	router, repo := newTestRouter(t)

	repo.EXPECT().
		CreateTransfer(gomock.Any(), gomock.Any(), "Transfer created").
		DoAndReturn(func(_ any, tr *transfer.Transfer, _ string) error {
			tr.ID = 7
			tr.TransferCode = "TRF-20260830-001"
			return nil
		})

	body := `{"transfer_type":"inventory","from_branch_id":1,"to_branch_id":2,"reason":"restock"}`
	req := httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"transfer_code":"TRF-20260830-001"`)
	assert.Contains(t, rec.Body.String(), `"requested_by":42`)
}

func TestHandler_Create_SameBranch(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"transfer_type":"inventory","from_branch_id":3,"to_branch_id":3}`
	req := httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Get_NotFound(t *testing.T) {
	router, repo := newTestRouter(t)

	repo.EXPECT().GetTransfer(gomock.Any(), int64(99)).Return(nil, transfer.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/transfers/99", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Get_InvalidID(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/transfers/abc", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Dispatch_Conflict(t *testing.T) {
	router, repo := newTestRouter(t)

	repo.EXPECT().GetTransfer(gomock.Any(), int64(4)).Return(&transfer.Transfer{
		ID:     4,
		Status: transfer.StatusRejected,
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/transfers/4/dispatch", strings.NewReader(`{"remarks":"go"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_Approve(t *testing.T) {
	router, repo := newTestRouter(t)

	pending := &transfer.Transfer{ID: 4, Status: transfer.StatusPending}
	approved := &transfer.Transfer{ID: 4, Status: transfer.StatusApproved}

	gomock.InOrder(
		repo.EXPECT().GetTransfer(gomock.Any(), int64(4)).Return(pending, nil),
		repo.EXPECT().Transition(gomock.Any(), int64(4), transfer.TransitionParams{
			From:    transfer.StatusPending,
			To:      transfer.StatusApproved,
			Role:    transfer.RoleApprover,
			ActorID: 42,
			Remarks: "ok",
		}).Return(nil),
		repo.EXPECT().GetTransfer(gomock.Any(), int64(4)).Return(approved, nil),
	)

	req := httptest.NewRequest(http.MethodPost, "/transfers/4/approve", strings.NewReader(`{"remarks":"ok"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"APPROVED"`)
}

func TestHandler_Deactivate(t *testing.T) {
	router, repo := newTestRouter(t)

	repo.EXPECT().DeactivateTransfer(gomock.Any(), int64(6), int64(42)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/transfers/6", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
