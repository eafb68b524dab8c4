package store

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockpot-app/stockpot/internal/ingest"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectBatchColumns = `
	id, organization_id, vendor_id, source_kind, file_name, file_ref, document_hash,
	invoice_number, invoice_date, match_key, version, supersedes_id, superseded_at, superseded_by,
	status, item_count, price_change_count, new_item_count, error_message,
	created_at, updated_at
`

func scanBatch(s scanner) (*ingest.Batch, error) {
	var b ingest.Batch

	var sourceKind, status string

	var errMsg sql.NullString

	if err := s.Scan(
		&b.ID, &b.OrganizationID, &b.VendorID, &sourceKind, &b.FileName, &b.FileRef,
		&b.DocumentHash, &b.InvoiceNumber, &b.InvoiceDate, &b.MatchKey, &b.Version,
		&b.SupersedesID, &b.SupersededAt, &b.SupersededBy,
		&status, &b.ItemCount, &b.PriceChanges, &b.NewItemCount, &errMsg,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	b.SourceKind = ingest.SourceKind(sourceKind)
	b.Status = ingest.BatchStatus(status)
	b.ErrorMessage = errMsg.String

	return &b, nil
}

func (s *Store) GetBatch(ctx context.Context, id uuid.UUID) (*ingest.Batch, error) {
	query := `SELECT ` + selectBatchColumns + ` FROM import_batches WHERE id = $1`

	b, err := scanBatch(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ingest.ErrNotFound
		}

		return nil, fmt.Errorf("getting batch: %w", err)
	}

	return b, nil
}

func (s *Store) ListBatches(ctx context.Context, organizationID uuid.UUID, filter ingest.ListFilter) ([]*ingest.Batch, error) {
	query := `SELECT ` + selectBatchColumns + `
		FROM import_batches
		WHERE organization_id = $1`

	args := []any{organizationID}

	if filter.VendorID != nil {
		query += " AND vendor_id = $2"

		args = append(args, *filter.VendorID)
	}

	query += " ORDER BY invoice_number ASC, version DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing batches: %w", err)
	}
	defer rows.Close()

	var batches []*ingest.Batch

	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning batch: %w", err)
		}

		batches = append(batches, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating batches: %w", err)
	}

	return batches, nil
}

// CreateLineItems writes all line items of one batch in a single
// transaction: either the whole reconciled set lands or none of it. The
// catalog reference is NOT NULL at the schema level, so an unmatched row
// can never sneak in as a line item.
func (s *Store) CreateLineItems(ctx context.Context, items []*ingest.LineItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning line item tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO line_items (id, invoice_header_id, catalog_item_id, vendor_code,
			quantity_ordered, quantity_received, unit_price, total_price,
			match_confidence, discrepancy_type, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING created_at
	`

	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}

		err := tx.QueryRowContext(ctx, query,
			item.ID,
			item.InvoiceHeaderID,
			item.CatalogItemID,
			item.VendorCode,
			item.QuantityOrdered.String(),
			item.QuantityReceived.String(),
			item.UnitPrice.String(),
			item.TotalPrice.String(),
			item.MatchConfidence,
			item.Discrepancy,
			item.Notes,
		).Scan(&item.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating line item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing line items: %w", err)
	}

	return nil
}

// FinalizeBatch recomputes nothing itself: it stamps the aggregates the
// pipeline derived from the committed line items and completes both the
// batch and its header together.
func (s *Store) FinalizeBatch(ctx context.Context, batchID, headerID uuid.UUID, stats ingest.BatchStats) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning finalize tx: %w", err)
	}
	defer tx.Rollback()

	batchQuery := `
		UPDATE import_batches
		SET status = 'completed', item_count = $1, price_change_count = $2,
			new_item_count = $3, updated_at = NOW()
		WHERE id = $4 AND status = 'processing'
	`

	res, err := tx.ExecContext(ctx, batchQuery,
		stats.ItemCount, stats.PriceChanges, stats.NewItemCount, batchID)
	if err != nil {
		return fmt.Errorf("finalizing batch: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finalizing batch: %w", err)
	}

	if affected == 0 {
		return ingest.ErrNotFound
	}

	headerQuery := `
		UPDATE invoice_headers
		SET status = 'completed', total_amount = $1
		WHERE id = $2
	`

	if _, err := tx.ExecContext(ctx, headerQuery, stats.TotalAmount.String(), headerID); err != nil {
		return fmt.Errorf("finalizing invoice header: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing finalize: %w", err)
	}

	return nil
}

func (s *Store) MarkBatchFailed(ctx context.Context, batchID uuid.UUID, message string) error {
	query := `
		UPDATE import_batches
		SET status = 'failed', error_message = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'processing'
	`

	if _, err := s.db.ExecContext(ctx, query, message, batchID); err != nil {
		return fmt.Errorf("marking batch failed: %w", err)
	}

	return nil
}

// ingestLockKey hashes the version-matching key into a Postgres advisory
// lock key, serializing concurrent ingestions of the same document lineage.
func ingestLockKey(organizationID, vendorID uuid.UUID, matchKey string) int64 {
	h := fnv.New64a()
	h.Write([]byte(organizationID.String()))
	h.Write([]byte{0})
	h.Write([]byte(vendorID.String()))
	h.Write([]byte{0})
	h.Write([]byte(matchKey))

	return int64(h.Sum64())
}

type ingestTx struct {
	tx *sql.Tx
}

// BeginIngest opens the supersede-and-create transaction and takes the
// per-lineage advisory lock. The lock is transaction-scoped, so it releases
// on commit or rollback.
func (s *Store) BeginIngest(ctx context.Context, organizationID, vendorID uuid.UUID, matchKey string) (ingest.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning ingest tx: %w", err)
	}

	lockKey := ingestLockKey(organizationID, vendorID, matchKey)
	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("acquiring ingest lock: %w", err)
	}

	return &ingestTx{tx: tx}, nil
}

func (itx *ingestTx) Commit() error   { return itx.tx.Commit() }
func (itx *ingestTx) Rollback() error { return itx.tx.Rollback() }

// ListActiveBatches returns every batch for the lineage still in a
// non-superseded status. Matching is on the stored match key, not the
// display invoice number, so synthesized references never collide into a
// lineage.
func (itx *ingestTx) ListActiveBatches(ctx context.Context, organizationID, vendorID uuid.UUID, matchKey string) ([]*ingest.Batch, error) {
	query := `SELECT ` + selectBatchColumns + `
		FROM import_batches
		WHERE organization_id = $1 AND vendor_id = $2 AND match_key = $3
			AND status != 'superseded'
		ORDER BY version ASC`

	rows, err := itx.tx.QueryContext(ctx, query, organizationID, vendorID, matchKey)
	if err != nil {
		return nil, fmt.Errorf("listing active batches: %w", err)
	}
	defer rows.Close()

	var batches []*ingest.Batch

	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning batch: %w", err)
		}

		batches = append(batches, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating batches: %w", err)
	}

	return batches, nil
}

// SupersedeBatches bulk-transitions prior versions. Every listed batch is
// stamped, not just the immediate predecessor, so stale leftovers from
// interrupted imports get cleaned up by the next successful one.
func (itx *ingestTx) SupersedeBatches(ctx context.Context, ids []uuid.UUID, supersededBy uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	idStrs := make([]string, len(ids))
	for i, id := range ids {
		idStrs[i] = id.String()
	}

	query := `
		UPDATE import_batches
		SET status = 'superseded', superseded_at = $1, superseded_by = $2, updated_at = NOW()
		WHERE id = ANY($3::uuid[])
	`

	if _, err := itx.tx.ExecContext(ctx, query, at, supersededBy, idStrs); err != nil {
		return fmt.Errorf("superseding batches: %w", err)
	}

	return nil
}

func (itx *ingestTx) CreateBatch(ctx context.Context, b *ingest.Batch) error {
	query := `
		INSERT INTO import_batches (id, organization_id, vendor_id, source_kind,
			file_name, file_ref, document_hash, invoice_number, invoice_date, match_key,
			version, supersedes_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING created_at
	`

	err := itx.tx.QueryRowContext(ctx, query,
		b.ID, b.OrganizationID, b.VendorID, b.SourceKind,
		b.FileName, b.FileRef, b.DocumentHash, b.InvoiceNumber, b.InvoiceDate, b.MatchKey,
		b.Version, b.SupersedesID, b.Status,
	).Scan(&b.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating batch: %w", err)
	}

	return nil
}

func (itx *ingestTx) CreateHeader(ctx context.Context, h *ingest.InvoiceHeader) error {
	query := `
		INSERT INTO invoice_headers (id, import_batch_id, vendor_id, invoice_date,
			invoice_number, total_amount, document_hash, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`

	err := itx.tx.QueryRowContext(ctx, query,
		h.ID, h.ImportBatchID, h.VendorID, h.InvoiceDate,
		h.InvoiceNumber, decimal.Zero.String(), h.DocumentHash, h.Status,
	).Scan(&h.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating invoice header: %w", err)
	}

	return nil
}
