package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pmiguelc/transita/internal/auth"
	"github.com/pmiguelc/transita/internal/transfer"
)

type Handler struct {
	svc *transfer.Service
}

func NewHandler(svc *transfer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Get("/{id}/logs", h.logs)
	r.Delete("/{id}", h.deactivate)

	r.Post("/{id}/approve", h.transition(h.svc.Approve))
	r.Post("/{id}/dispatch", h.transition(h.svc.Dispatch))
	r.Post("/{id}/receive", h.transition(h.svc.Receive))
	r.Post("/{id}/reject", h.transition(h.svc.Reject))
	r.Post("/{id}/cancel", h.transition(h.svc.Cancel))

	r.Post("/{id}/jobs", h.addJobs)
	r.Post("/{id}/inventory", h.addInventory)
	r.Post("/{id}/assets", h.addAssets)
	r.Post("/{id}/users", h.addUsers)
}

type createTransferRequest struct {
	TransferType   string `json:"transfer_type"`
	FromBranchID   int64  `json:"from_branch_id"`
	ToBranchID     int64  `json:"to_branch_id"`
	FromLocationID *int64 `json:"from_location_id,omitempty"`
	ToLocationID   *int64 `json:"to_location_id,omitempty"`
	Reason         string `json:"reason"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.svc.Create(r.Context(), transfer.CreateParams{
		TransferType:   req.TransferType,
		FromBranchID:   req.FromBranchID,
		ToBranchID:     req.ToBranchID,
		FromLocationID: req.FromLocationID,
		ToLocationID:   req.ToLocationID,
		Reason:         req.Reason,
	}, auth.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(t)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := transfer.ListFilter{}

	if s := r.URL.Query().Get("branch_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			http.Error(w, "invalid branch_id", http.StatusBadRequest)
			return
		}

		filter.BranchID = &id
	}

	if s := r.URL.Query().Get("type"); s != "" {
		filter.Type = &s
	}

	if s := r.URL.Query().Get("status"); s != "" {
		status := transfer.Status(s)
		filter.Status = &status
	}

	transfers, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(transfers)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(t)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) logs(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entries, err := h.svc.Logs(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toLogResponseList(entries)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Deactivate(r.Context(), id, auth.UserID(r.Context())); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type transitionRequest struct {
	Remarks string `json:"remarks"`
}

// transition adapts one service lifecycle method into a handler. The request
// body is optional; an empty body means no remarks.
func (h *Handler) transition(fn func(ctx context.Context, id, actorID int64, remarks string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req transitionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := fn(r.Context(), id, auth.UserID(r.Context()), req.Remarks); err != nil {
			writeError(w, err)
			return
		}

		t, err := h.svc.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(toResponse(t)); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

type jobAttachment struct {
	JobID int64  `json:"job_id"`
	Notes string `json:"notes,omitempty"`
}

type addJobsRequest struct {
	Jobs []jobAttachment `json:"jobs"`
}

func (h *Handler) addJobs(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req addJobsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(req.Jobs) == 0 {
		http.Error(w, "at least one job is required", http.StatusBadRequest)
		return
	}

	jobs := make([]transfer.JobParams, len(req.Jobs))
	for i, j := range req.Jobs {
		jobs[i] = transfer.JobParams{JobID: j.JobID, Notes: j.Notes}
	}

	if err := h.svc.AddJobs(r.Context(), id, jobs); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

type inventoryItemAttachment struct {
	ItemName string `json:"item_name"`
	SKU      string `json:"sku,omitempty"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
}

type addInventoryRequest struct {
	Notes string                    `json:"notes,omitempty"`
	Items []inventoryItemAttachment `json:"items"`
}

type addInventoryResponse struct {
	InventoryID int64 `json:"inventory_id"`
	ItemCount   int   `json:"item_count"`
}

func (h *Handler) addInventory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req addInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(req.Items) == 0 {
		http.Error(w, "at least one item is required", http.StatusBadRequest)
		return
	}

	items := make([]transfer.ItemParams, len(req.Items))
	for i, it := range req.Items {
		items[i] = transfer.ItemParams{
			ItemName: it.ItemName,
			SKU:      it.SKU,
			Quantity: it.Quantity,
			Unit:     it.Unit,
		}
	}

	inventoryID, err := h.svc.AddInventory(r.Context(), id, req.Notes, items)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	resp := addInventoryResponse{InventoryID: inventoryID, ItemCount: len(items)}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type assetAttachment struct {
	AssetID int64  `json:"asset_id"`
	Notes   string `json:"notes,omitempty"`
}

type addAssetsRequest struct {
	Assets []assetAttachment `json:"assets"`
}

func (h *Handler) addAssets(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req addAssetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(req.Assets) == 0 {
		http.Error(w, "at least one asset is required", http.StatusBadRequest)
		return
	}

	assets := make([]transfer.AssetParams, len(req.Assets))
	for i, a := range req.Assets {
		assets[i] = transfer.AssetParams{AssetID: a.AssetID, Notes: a.Notes}
	}

	if err := h.svc.AddAssets(r.Context(), id, assets); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

type userAttachment struct {
	UserID    int64  `json:"user_id"`
	NewRoleID *int64 `json:"new_role_id,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type addUsersRequest struct {
	Users []userAttachment `json:"users"`
}

func (h *Handler) addUsers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req addUsersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(req.Users) == 0 {
		http.Error(w, "at least one user is required", http.StatusBadRequest)
		return
	}

	users := make([]transfer.UserParams, len(req.Users))
	for i, u := range req.Users {
		users[i] = transfer.UserParams{UserID: u.UserID, NewRoleID: u.NewRoleID, Notes: u.Notes}
	}

	if err := h.svc.AddUsers(r.Context(), id, users); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}

	return id, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, transfer.ErrNotFound):
		http.Error(w, "transfer not found", http.StatusNotFound)
	case errors.Is(err, transfer.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, transfer.ErrSameBranch),
		errors.Is(err, transfer.ErrBranchRequired),
		errors.Is(err, transfer.ErrReasonTooLong):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
