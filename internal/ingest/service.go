package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockpot-app/stockpot/internal/audit"
	"github.com/stockpot-app/stockpot/internal/catalog"
	"github.com/stockpot-app/stockpot/internal/triage"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ingest
type Repository interface {
	GetBatch(ctx context.Context, id uuid.UUID) (*Batch, error)
	ListBatches(ctx context.Context, organizationID uuid.UUID, filter ListFilter) ([]*Batch, error)
	CreateLineItems(ctx context.Context, items []*LineItem) error
	FinalizeBatch(ctx context.Context, batchID, headerID uuid.UUID, stats BatchStats) error
	MarkBatchFailed(ctx context.Context, batchID uuid.UUID, message string) error

	BeginIngest(ctx context.Context, organizationID, vendorID uuid.UUID, matchKey string) (Tx, error)
}

// Tx covers the window where supersession and creation of the replacement
// batch must be atomic: committing one without the other would either leave
// two authoritative versions or none.
type Tx interface {
	ListActiveBatches(ctx context.Context, organizationID, vendorID uuid.UUID, matchKey string) ([]*Batch, error)
	SupersedeBatches(ctx context.Context, ids []uuid.UUID, supersededBy uuid.UUID, at time.Time) error
	CreateBatch(ctx context.Context, b *Batch) error
	CreateHeader(ctx context.Context, h *InvoiceHeader) error
	Commit() error
	Rollback() error
}

// PriceApplier records one observed price against the catalog.
type PriceApplier interface {
	ApplyPrice(ctx context.Context, params catalog.ApplyPriceParams) (*catalog.PriceChange, error)
}

// TriageUpserter queues unmatched candidates for human matching.
type TriageUpserter interface {
	Upsert(ctx context.Context, params []triage.UpsertParams) error
}

// Auditor publishes activity events. Emission never fails the pipeline.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event)
}

type Service struct {
	repo    Repository
	prices  PriceApplier
	triage  TriageUpserter
	auditor Auditor
	now     func() time.Time
}

func NewService(repo Repository, prices PriceApplier, triage TriageUpserter, auditor Auditor) *Service {
	return &Service{
		repo:    repo,
		prices:  prices,
		triage:  triage,
		auditor: auditor,
		now:     time.Now,
	}
}

// Ingest runs one vendor document through the full pipeline: hash, resolve
// the version lineage, supersede stale versions, persist batch and header,
// reconcile candidates, write line items, queue unmatched rows, record
// prices, finalize. Triage and audit failures degrade to warnings; every
// other failure aborts and leaves the batch marked failed.
func (s *Service) Ingest(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m := newMachine()
	now := s.now().UTC()

	hash, err := HashDocument(req.DocumentBytes)
	if err != nil {
		return nil, err
	}

	if err := m.advance(StateResolving); err != nil {
		return nil, err
	}

	matchKey := MatchKey(req.InvoiceNumber, req.FileName)

	invoiceNumber := strings.TrimSpace(req.InvoiceNumber)
	if invoiceNumber == "" {
		invoiceNumber = SynthesizeReference(hash, req.InvoiceDate)
	}

	itx, err := s.repo.BeginIngest(ctx, req.OrganizationID, req.VendorID, matchKey)
	if err != nil {
		return nil, fmt.Errorf("begin ingest: %w", err)
	}
	defer itx.Rollback()

	// Re-read under the lock; batches listed before it was held could be
	// superseded by a concurrent import.
	prior, err := itx.ListActiveBatches(ctx, req.OrganizationID, req.VendorID, matchKey)
	if err != nil {
		return nil, fmt.Errorf("list active batches: %w", err)
	}

	resolution := ResolveVersion(matchKey, prior)

	if err := m.advance(StateSuperseding); err != nil {
		return nil, err
	}

	batchID := uuid.New()

	if len(resolution.Prior) > 0 {
		ids := make([]uuid.UUID, len(resolution.Prior))
		for i, b := range resolution.Prior {
			ids[i] = b.ID
		}

		if err := itx.SupersedeBatches(ctx, ids, batchID, now); err != nil {
			return nil, fmt.Errorf("supersede batches: %w", err)
		}
	}

	if err := m.advance(StateCreatingBatch); err != nil {
		return nil, err
	}

	batch := &Batch{
		ID:             batchID,
		OrganizationID: req.OrganizationID,
		VendorID:       req.VendorID,
		SourceKind:     req.SourceKind,
		FileName:       req.FileName,
		FileRef:        req.FileRef,
		DocumentHash:   hash,
		InvoiceNumber:  invoiceNumber,
		InvoiceDate:    req.InvoiceDate,
		MatchKey:       matchKey,
		Version:        resolution.NextVersion,
		SupersedesID:   resolution.SupersedesID,
		Status:         BatchProcessing,
	}

	if err := itx.CreateBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}

	if err := m.advance(StateCreatingHeader); err != nil {
		return nil, err
	}

	header := &InvoiceHeader{
		ID:            uuid.New(),
		ImportBatchID: batchID,
		VendorID:      req.VendorID,
		InvoiceDate:   req.InvoiceDate,
		InvoiceNumber: invoiceNumber,
		DocumentHash:  hash,
		Status:        HeaderPending,
	}

	if err := itx.CreateHeader(ctx, header); err != nil {
		return nil, fmt.Errorf("create invoice header: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit ingest: %w", err)
	}

	// The batch is durable from here on: any abort must leave it marked
	// failed, never stuck in processing.
	if len(resolution.Prior) > 0 {
		s.auditor.Emit(ctx, audit.Event{
			OrganizationID: req.OrganizationID,
			UserID:         req.UserID,
			Kind:           audit.KindVersionCreated,
			Detail: map[string]any{
				"import_batch_id": batchID.String(),
				"match_key":       matchKey,
				"version":         resolution.NextVersion,
				"superseded":      len(resolution.Prior),
			},
		})
	}

	if err := m.advance(StateReconciling); err != nil {
		return s.failBatch(ctx, batch, err)
	}

	reconciled := Reconcile(req.Candidates, now)

	if err := m.advance(StateWritingLineItems); err != nil {
		return s.failBatch(ctx, batch, err)
	}

	for _, item := range reconciled.Matched {
		item.InvoiceHeaderID = header.ID
	}

	if len(reconciled.Matched) > 0 {
		if err := s.repo.CreateLineItems(ctx, reconciled.Matched); err != nil {
			return s.failBatch(ctx, batch, fmt.Errorf("write line items: %w", err))
		}
	}

	if err := m.advance(StateUpsertingTriage); err != nil {
		return s.failBatch(ctx, batch, err)
	}

	s.queueUnmatched(ctx, req, batchID, reconciled.Unmatched)

	if err := m.advance(StateUpdatingPrices); err != nil {
		return s.failBatch(ctx, batch, err)
	}

	priceChanges, newItems, err := s.recordPrices(ctx, req, batch, reconciled.Matched)
	if err != nil {
		return s.failBatch(ctx, batch, err)
	}

	if err := m.advance(StateFinalizing); err != nil {
		return s.failBatch(ctx, batch, err)
	}

	total := decimal.Zero
	for _, item := range reconciled.Matched {
		total = total.Add(item.TotalPrice)
	}

	stats := BatchStats{
		ItemCount:    len(reconciled.Matched),
		PriceChanges: priceChanges,
		NewItemCount: newItems,
		TotalAmount:  total,
	}

	if err := s.repo.FinalizeBatch(ctx, batchID, header.ID, stats); err != nil {
		return s.failBatch(ctx, batch, fmt.Errorf("finalize batch: %w", err))
	}

	if err := m.advance(StateCompleted); err != nil {
		return s.failBatch(ctx, batch, err)
	}

	result := &Result{
		ImportBatchID:     batchID,
		Version:           resolution.NextVersion,
		IsCorrection:      resolution.NextVersion > 1,
		MatchedCount:      len(reconciled.Matched),
		UnmatchedCount:    len(reconciled.Unmatched),
		PriceChangeCount:  priceChanges,
		ShortageItemCount: reconciled.ShortageItems,
		ShortageValue:     reconciled.ShortageValue,
		Status:            BatchCompleted,
	}

	s.emitSummary(ctx, req, batch, result)

	return result, nil
}

// queueUnmatched routes unmatched candidates to triage. A failure here is
// bookkeeping, not financial record: it is logged and the pipeline
// proceeds.
func (s *Service) queueUnmatched(ctx context.Context, req Request, batchID uuid.UUID, unmatched []CandidateItem) {
	if len(unmatched) == 0 {
		return
	}

	params := make([]triage.UpsertParams, 0, len(unmatched))
	for _, c := range unmatched {
		params = append(params, triage.UpsertParams{
			OrganizationID:     req.OrganizationID,
			VendorID:           req.VendorID,
			ItemCode:           c.ItemCode,
			Description:        c.Description,
			UnitPrice:          c.UnitPrice,
			UnitOfMeasure:      c.UnitOfMeasure,
			OriginatingBatchID: batchID,
		})
	}

	if err := s.triage.Upsert(ctx, params); err != nil {
		slog.Warn("triage upsert failed, continuing import",
			"import_batch_id", batchID,
			"unmatched", len(unmatched),
			"error", err,
		)
	}
}

// recordPrices applies each matched item's price to the catalog and counts
// changed and first-seen items for the batch aggregates.
func (s *Service) recordPrices(ctx context.Context, req Request, batch *Batch, items []*LineItem) (priceChanges, newItems int, err error) {
	for _, item := range items {
		change, err := s.prices.ApplyPrice(ctx, catalog.ApplyPriceParams{
			CatalogItemID: item.CatalogItemID,
			VendorID:      req.VendorID,
			NewPrice:      item.UnitPrice,
			EffectiveDate: req.InvoiceDate,
			SourceKind:    string(req.SourceKind),
			LineItemID:    item.ID,
			ImportBatchID: batch.ID,
		})
		if err != nil {
			return 0, 0, fmt.Errorf("apply price for item %s: %w", item.CatalogItemID, err)
		}

		if change.Previous == nil {
			newItems++
		}

		if change.Changed {
			priceChanges++
		}

		if change.Significant {
			s.auditor.Emit(ctx, audit.Event{
				OrganizationID: req.OrganizationID,
				UserID:         req.UserID,
				Kind:           audit.KindPriceChange,
				Severity:       string(change.Severity),
				Detail: map[string]any{
					"catalog_item_id": item.CatalogItemID.String(),
					"import_batch_id": batch.ID.String(),
					"previous_price":  change.Previous.String(),
					"new_price":       change.New.String(),
					"percent_change":  change.PercentChange.StringFixed(2),
				},
			})
		}
	}

	return priceChanges, newItems, nil
}

func (s *Service) emitSummary(ctx context.Context, req Request, batch *Batch, result *Result) {
	s.auditor.Emit(ctx, audit.Event{
		OrganizationID: req.OrganizationID,
		UserID:         req.UserID,
		Kind:           audit.KindInvoiceImported,
		Detail: map[string]any{
			"import_batch_id":    batch.ID.String(),
			"vendor_id":          req.VendorID.String(),
			"vendor_name":        req.VendorName,
			"invoice_number":     batch.InvoiceNumber,
			"version":            result.Version,
			"matched_count":      result.MatchedCount,
			"unmatched_count":    result.UnmatchedCount,
			"price_change_count": result.PriceChangeCount,
		},
	})

	if result.ShortageItemCount > 0 {
		s.auditor.Emit(ctx, audit.Event{
			OrganizationID: req.OrganizationID,
			UserID:         req.UserID,
			Kind:           audit.KindDiscrepancyRecorded,
			Severity:       "warning",
			Detail: map[string]any{
				"import_batch_id":     batch.ID.String(),
				"invoice_number":      batch.InvoiceNumber,
				"shortage_item_count": result.ShortageItemCount,
				"shortage_value":      result.ShortageValue.String(),
			},
		})
	}
}

// failBatch marks a durably-created batch as failed. The write uses a
// context detached from the request so an aborted caller cannot strand the
// batch in processing.
func (s *Service) failBatch(ctx context.Context, batch *Batch, cause error) (*Result, error) {
	markCtx := context.WithoutCancel(ctx)

	if err := s.repo.MarkBatchFailed(markCtx, batch.ID, cause.Error()); err != nil {
		slog.Error("failed to mark batch as failed",
			"import_batch_id", batch.ID,
			"cause", cause,
			"error", err,
		)
	}

	result := &Result{
		ImportBatchID: batch.ID,
		Version:       batch.Version,
		IsCorrection:  batch.Version > 1,
		Status:        BatchFailed,
		ErrorMessage:  cause.Error(),
	}

	return result, cause
}

// GetBatch returns a single batch by id.
func (s *Service) GetBatch(ctx context.Context, id uuid.UUID) (*Batch, error) {
	return s.repo.GetBatch(ctx, id)
}

// ListBatches returns an organization's batches, newest version first.
func (s *Service) ListBatches(ctx context.Context, organizationID uuid.UUID, filter ListFilter) ([]*Batch, error) {
	return s.repo.ListBatches(ctx, organizationID, filter)
}
