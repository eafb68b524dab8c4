package triage

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockpot-app/stockpot/internal/http/middleware"
	"github.com/stockpot-app/stockpot/internal/triage"
)

type Handler struct {
	svc *triage.Service
}

func NewHandler(svc *triage.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.listPending)
	r.Patch("/{id}/resolve", h.resolve)
	r.Patch("/{id}/dismiss", h.dismiss)
}

type itemResponse struct {
	ID                 uuid.UUID       `json:"id"`
	VendorID           uuid.UUID       `json:"vendor_id"`
	ItemCode           string          `json:"item_code"`
	Description        string          `json:"description"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	UnitOfMeasure      string          `json:"unit_of_measure,omitempty"`
	Status             string          `json:"status"`
	OriginatingBatchID uuid.UUID       `json:"originating_batch_id"`
	CreatedAt          time.Time       `json:"created_at"`
}

func (h *Handler) listPending(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListPending(r.Context(), middleware.OrganizationID(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]itemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, itemResponse{
			ID:                 item.ID,
			VendorID:           item.VendorID,
			ItemCode:           item.ItemCode,
			Description:        item.Description,
			UnitPrice:          item.UnitPrice,
			UnitOfMeasure:      item.UnitOfMeasure,
			Status:             string(item.Status),
			OriginatingBatchID: item.OriginatingBatchID,
			CreatedAt:          item.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type resolveRequest struct {
	CatalogItemID uuid.UUID `json:"catalog_item_id"`
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid triage item id", http.StatusBadRequest)
		return
	}

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.CatalogItemID == uuid.Nil {
		http.Error(w, "catalog_item_id is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.Resolve(r.Context(), id, req.CatalogItemID); err != nil {
		if errors.Is(err, triage.ErrNotFound) {
			http.Error(w, "triage item not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusConflict)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) dismiss(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid triage item id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Dismiss(r.Context(), id); err != nil {
		if errors.Is(err, triage.ErrNotFound) {
			http.Error(w, "triage item not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusConflict)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
