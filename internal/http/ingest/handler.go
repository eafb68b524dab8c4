package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockpot-app/stockpot/internal/http/middleware"
	"github.com/stockpot-app/stockpot/internal/ingest"
	"github.com/stockpot-app/stockpot/internal/invoicefile"
)

type Handler struct {
	ingestSvc *ingest.Service
	fileSvc   *invoicefile.Service
	maxUpload int64
}

func NewHandler(ingestSvc *ingest.Service, fileSvc *invoicefile.Service, maxUpload int64) *Handler {
	return &Handler{
		ingestSvc: ingestSvc,
		fileSvc:   fileSvc,
		maxUpload: maxUpload,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.ingest)
	r.Get("/{batchID}", h.getBatch)
}

type candidateDTO struct {
	ItemCode         string          `json:"item_code,omitempty"`
	Description      string          `json:"description"`
	QuantityOrdered  decimal.Decimal `json:"quantity_ordered"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	UnitOfMeasure    string          `json:"unit_of_measure,omitempty"`
	MatchedCatalogID *uuid.UUID      `json:"matched_catalog_id,omitempty"`
	MatchConfidence  float64         `json:"match_confidence,omitempty"`
	DiscrepancyNotes string          `json:"discrepancy_notes,omitempty"`
}

type metadataDTO struct {
	VendorID      uuid.UUID      `json:"vendor_id"`
	VendorName    string         `json:"vendor_name"`
	SourceKind    string         `json:"source_kind"`
	FileRef       string         `json:"file_ref,omitempty"`
	InvoiceNumber string         `json:"invoice_number,omitempty"`
	InvoiceDate   time.Time      `json:"invoice_date"`
	Candidates    []candidateDTO `json:"candidate_line_items"`
}

type resultResponse struct {
	ImportBatchID     uuid.UUID       `json:"import_batch_id"`
	Version           int             `json:"version"`
	IsCorrection      bool            `json:"is_correction"`
	MatchedCount      int             `json:"matched_count"`
	UnmatchedCount    int             `json:"unmatched_count"`
	PriceChangeCount  int             `json:"price_change_count"`
	ShortageItemCount int             `json:"shortage_item_count"`
	ShortageValue     decimal.Decimal `json:"shortage_value"`
	Status            string          `json:"status"`
	ErrorMessage      string          `json:"error_message,omitempty"`
}

// ingest accepts a multipart form with a `file` part (the vendor document)
// and a `metadata` JSON part. Structured files with no pre-extracted
// candidates are parsed server-side; scanned documents must arrive with
// candidates extracted upstream.
func (h *Handler) ingest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	var meta metadataDTO
	if err := json.Unmarshal([]byte(r.FormValue("metadata")), &meta); err != nil {
		http.Error(w, "invalid metadata: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	doc, err := io.ReadAll(io.LimitReader(file, h.maxUpload+1))
	if err != nil {
		http.Error(w, "failed to read file", http.StatusBadRequest)
		return
	}

	if int64(len(doc)) > h.maxUpload {
		http.Error(w, "document too large", http.StatusRequestEntityTooLarge)
		return
	}

	req := ingest.Request{
		OrganizationID: middleware.OrganizationID(r.Context()),
		UserID:         middleware.UserID(r.Context()),
		VendorID:       meta.VendorID,
		VendorName:     meta.VendorName,
		SourceKind:     ingest.SourceKind(meta.SourceKind),
		DocumentBytes:  doc,
		FileName:       fileHeader.Filename,
		FileRef:        meta.FileRef,
		InvoiceNumber:  meta.InvoiceNumber,
		InvoiceDate:    meta.InvoiceDate,
		Candidates:     toCandidates(meta.Candidates),
	}

	if len(req.Candidates) == 0 && req.SourceKind == ingest.SourceStructuredFile {
		parsed, err := h.fileSvc.Parse(bytes.NewReader(doc))
		if err != nil {
			http.Error(w, "failed to parse invoice file: "+err.Error(), http.StatusBadRequest)
			return
		}

		req.Candidates = parsed
	}

	result, err := h.ingestSvc.Ingest(r.Context(), req)
	if err != nil {
		var verr *ingest.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Error(), http.StatusBadRequest)
			return
		}

		if result != nil {
			// The batch exists and is marked failed; report it.
			writeJSON(w, http.StatusUnprocessableEntity, toResultResponse(result))
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusCreated, toResultResponse(result))
}

func (h *Handler) getBatch(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "batchID"))
	if err != nil {
		http.Error(w, "invalid batch id", http.StatusBadRequest)
		return
	}

	batch, err := h.ingestSvc.GetBatch(r.Context(), id)
	if err != nil {
		if errors.Is(err, ingest.ErrNotFound) {
			http.Error(w, "batch not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	if batch.OrganizationID != middleware.OrganizationID(r.Context()) {
		http.Error(w, "batch not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, toBatchResponse(batch))
}

type batchResponse struct {
	ID            uuid.UUID  `json:"id"`
	VendorID      uuid.UUID  `json:"vendor_id"`
	SourceKind    string     `json:"source_kind"`
	FileName      string     `json:"file_name"`
	InvoiceNumber string     `json:"invoice_number"`
	InvoiceDate   time.Time  `json:"invoice_date"`
	Version       int        `json:"version"`
	SupersedesID  *uuid.UUID `json:"supersedes_id,omitempty"`
	SupersededAt  *time.Time `json:"superseded_at,omitempty"`
	Status        string     `json:"status"`
	ItemCount     int        `json:"item_count"`
	PriceChanges  int        `json:"price_change_count"`
	NewItemCount  int        `json:"new_item_count"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toBatchResponse(b *ingest.Batch) batchResponse {
	return batchResponse{
		ID:            b.ID,
		VendorID:      b.VendorID,
		SourceKind:    string(b.SourceKind),
		FileName:      b.FileName,
		InvoiceNumber: b.InvoiceNumber,
		InvoiceDate:   b.InvoiceDate,
		Version:       b.Version,
		SupersedesID:  b.SupersedesID,
		SupersededAt:  b.SupersededAt,
		Status:        string(b.Status),
		ItemCount:     b.ItemCount,
		PriceChanges:  b.PriceChanges,
		NewItemCount:  b.NewItemCount,
		CreatedAt:     b.CreatedAt,
	}
}

func toCandidates(dtos []candidateDTO) []ingest.CandidateItem {
	candidates := make([]ingest.CandidateItem, 0, len(dtos))
	for _, d := range dtos {
		candidates = append(candidates, ingest.CandidateItem{
			ItemCode:         d.ItemCode,
			Description:      d.Description,
			QuantityOrdered:  d.QuantityOrdered,
			QuantityReceived: d.QuantityReceived,
			UnitPrice:        d.UnitPrice,
			UnitOfMeasure:    d.UnitOfMeasure,
			MatchedCatalogID: d.MatchedCatalogID,
			MatchConfidence:  d.MatchConfidence,
			DiscrepancyNotes: d.DiscrepancyNotes,
		})
	}

	return candidates
}

func toResultResponse(res *ingest.Result) resultResponse {
	return resultResponse{
		ImportBatchID:     res.ImportBatchID,
		Version:           res.Version,
		IsCorrection:      res.IsCorrection,
		MatchedCount:      res.MatchedCount,
		UnmatchedCount:    res.UnmatchedCount,
		PriceChangeCount:  res.PriceChangeCount,
		ShortageItemCount: res.ShortageItemCount,
		ShortageValue:     res.ShortageValue,
		Status:            string(res.Status),
		ErrorMessage:      res.ErrorMessage,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
