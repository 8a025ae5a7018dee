package manifest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pmiguelc/transita/internal/importer"
	"github.com/pmiguelc/transita/internal/transfer"
)

type Handler struct {
	importSvc   *importer.Service
	transferSvc *transfer.Service
}

func NewHandler(importSvc *importer.Service, transferSvc *transfer.Service) *Handler {
	return &Handler{
		importSvc:   importSvc,
		transferSvc: transferSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importManifest)
}

type importSuccessResponse struct {
	InventoryID int64 `json:"inventory_id"`
	Imported    int   `json:"imported"`
}

func (h *Handler) importManifest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	source := importer.Source(r.FormValue("source"))
	if source == "" {
		source = importer.SourceManifest
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	items, err := h.importSvc.Import(source, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(items) == 0 {
		http.Error(w, "manifest contains no items", http.StatusBadRequest)
		return
	}

	inventoryID, err := h.transferSvc.AddInventory(r.Context(), id, r.FormValue("notes"), items)
	if err != nil {
		if errors.Is(err, transfer.ErrNotFound) {
			http.Error(w, "transfer not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	resp := importSuccessResponse{InventoryID: inventoryID, Imported: len(items)}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
