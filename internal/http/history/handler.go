package history

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockpot-app/stockpot/internal/catalog"
	"github.com/stockpot-app/stockpot/internal/http/middleware"
	"github.com/stockpot-app/stockpot/internal/ingest"
)

// Handler serves the read-only projections over the import pipeline's
// output: version lineages per vendor and the price ledger per item.
type Handler struct {
	ingestSvc  *ingest.Service
	catalogSvc *catalog.Service
}

func NewHandler(ingestSvc *ingest.Service, catalogSvc *catalog.Service) *Handler {
	return &Handler{ingestSvc: ingestSvc, catalogSvc: catalogSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/vendors/{vendorID}/batches", h.listVendorBatches)
	r.Get("/catalog/{itemID}/prices", h.listPriceHistory)
}

type batchResponse struct {
	ID            uuid.UUID  `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	InvoiceDate   time.Time  `json:"invoice_date"`
	FileName      string     `json:"file_name"`
	Version       int        `json:"version"`
	Status        string     `json:"status"`
	SupersedesID  *uuid.UUID `json:"supersedes_id,omitempty"`
	SupersededAt  *time.Time `json:"superseded_at,omitempty"`
	ItemCount     int        `json:"item_count"`
	PriceChanges  int        `json:"price_change_count"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (h *Handler) listVendorBatches(w http.ResponseWriter, r *http.Request) {
	vendorID, err := uuid.Parse(chi.URLParam(r, "vendorID"))
	if err != nil {
		http.Error(w, "invalid vendor id", http.StatusBadRequest)
		return
	}

	batches, err := h.ingestSvc.ListBatches(r.Context(),
		middleware.OrganizationID(r.Context()),
		ingest.ListFilter{VendorID: &vendorID},
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]batchResponse, 0, len(batches))
	for _, b := range batches {
		resp = append(resp, batchResponse{
			ID:            b.ID,
			InvoiceNumber: b.InvoiceNumber,
			InvoiceDate:   b.InvoiceDate,
			FileName:      b.FileName,
			Version:       b.Version,
			Status:        string(b.Status),
			SupersedesID:  b.SupersedesID,
			SupersededAt:  b.SupersededAt,
			ItemCount:     b.ItemCount,
			PriceChanges:  b.PriceChanges,
			CreatedAt:     b.CreatedAt,
		})
	}

	writeJSON(w, resp)
}

type priceRecordResponse struct {
	ID            uuid.UUID        `json:"id"`
	VendorID      uuid.UUID        `json:"vendor_id"`
	Price         decimal.Decimal  `json:"price"`
	PreviousPrice *decimal.Decimal `json:"previous_price,omitempty"`
	EffectiveDate time.Time        `json:"effective_date"`
	SourceKind    string           `json:"source_kind"`
	ImportBatchID *uuid.UUID       `json:"import_batch_id,omitempty"`
}

func (h *Handler) listPriceHistory(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		http.Error(w, "invalid catalog item id", http.StatusBadRequest)
		return
	}

	filter, err := historyFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := h.catalogSvc.History(r.Context(), itemID, filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]priceRecordResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, priceRecordResponse{
			ID:            rec.ID,
			VendorID:      rec.VendorID,
			Price:         rec.Price,
			PreviousPrice: rec.PreviousPrice,
			EffectiveDate: rec.EffectiveDate,
			SourceKind:    rec.SourceKind,
			ImportBatchID: rec.ImportBatchID,
		})
	}

	writeJSON(w, resp)
}

func historyFilter(r *http.Request) (catalog.HistoryFilter, error) {
	var filter catalog.HistoryFilter

	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse(time.DateOnly, from)
		if err != nil {
			return filter, err
		}

		filter.From = &t
	}

	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse(time.DateOnly, to)
		if err != nil {
			return filter, err
		}

		filter.To = &t
	}

	return filter, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
