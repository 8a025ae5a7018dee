package export

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pmiguelc/transita/internal/export"
	"github.com/pmiguelc/transita/internal/transfer"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/transfers", h.transfers)
	r.Get("/transfers/{id}/audit", h.audit)
}

func (h *Handler) transfers(w http.ResponseWriter, r *http.Request) {
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

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"transfers_%s.csv\"", time.Now().Format("20060102")))

	if err := h.svc.WriteTransfers(r.Context(), filter, w); err != nil {
		slog.Error("failed to write transfers export", "error", err)
	}
}

func (h *Handler) audit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	// Resolve the transfer before any CSV bytes go out so a missing id is a
	// clean 404 instead of a truncated download.
	t, err := h.svc.Transfer(r.Context(), id)
	if err != nil {
		if errors.Is(err, transfer.ErrNotFound) {
			http.Error(w, "transfer not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"%s_audit.csv\"", t.TransferCode))

	if err := h.svc.WriteAuditTrail(r.Context(), id, w); err != nil {
		slog.Error("failed to write audit export", "error", err)
	}
}
