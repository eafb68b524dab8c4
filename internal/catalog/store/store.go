package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockpot-app/stockpot/internal/catalog"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetItem(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	query := `
		SELECT id, organization_id, name, vendor_code, unit_of_measure, current_price, created_at, updated_at
		FROM catalog_items
		WHERE id = $1
	`

	var item catalog.Item

	var priceStr string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.OrganizationID, &item.Name, &item.VendorCode,
		&item.UnitOfMeasure, &priceStr, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("getting catalog item: %w", err)
	}

	item.CurrentPrice, err = decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("parsing current price: %w", err)
	}

	return &item, nil
}

func (s *Store) ListPriceHistory(ctx context.Context, itemID uuid.UUID, filter catalog.HistoryFilter) ([]*catalog.PriceRecord, error) {
	query := `
		SELECT id, catalog_item_id, vendor_id, price, previous_price, effective_date,
			source_kind, line_item_id, import_batch_id, created_at
		FROM price_history
		WHERE catalog_item_id = $1
	`

	args := []any{itemID}
	argIdx := 2

	if filter.From != nil {
		query += fmt.Sprintf(" AND effective_date >= $%d", argIdx)

		args = append(args, *filter.From)
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND effective_date <= $%d", argIdx)

		args = append(args, *filter.To)
		argIdx++
	}

	query += " ORDER BY effective_date ASC, created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing price history: %w", err)
	}
	defer rows.Close()

	var records []*catalog.PriceRecord

	for rows.Next() {
		rec, err := scanPriceRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning price record: %w", err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating price records: %w", err)
	}

	return records, nil
}

func scanPriceRecord(rows *sql.Rows) (*catalog.PriceRecord, error) {
	var rec catalog.PriceRecord

	var priceStr string

	var prevStr sql.NullString

	if err := rows.Scan(
		&rec.ID, &rec.CatalogItemID, &rec.VendorID, &priceStr, &prevStr,
		&rec.EffectiveDate, &rec.SourceKind, &rec.LineItemID, &rec.ImportBatchID,
		&rec.CreatedAt,
	); err != nil {
		return nil, err
	}

	var err error

	rec.Price, err = decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("parsing price: %w", err)
	}

	if prevStr.Valid {
		prev, err := decimal.NewFromString(prevStr.String)
		if err != nil {
			return nil, fmt.Errorf("parsing previous price: %w", err)
		}

		rec.PreviousPrice = &prev
	}

	return &rec, nil
}

type priceUpdateTx struct {
	tx     *sql.Tx
	itemID uuid.UUID
}

// BeginPriceUpdate opens a transaction and locks the catalog item row so the
// read-append-overwrite cycle cannot interleave with a concurrent import of
// the same item.
func (s *Store) BeginPriceUpdate(ctx context.Context, itemID uuid.UUID) (catalog.PriceUpdateTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning price update tx: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"SELECT id FROM catalog_items WHERE id = $1 FOR UPDATE", itemID,
	); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("locking catalog item: %w", err)
	}

	return &priceUpdateTx{tx: tx, itemID: itemID}, nil
}

func (p *priceUpdateTx) Commit() error   { return p.tx.Commit() }
func (p *priceUpdateTx) Rollback() error { return p.tx.Rollback() }

func (p *priceUpdateTx) CurrentPrice(ctx context.Context) (decimal.Decimal, bool, error) {
	query := `SELECT current_price FROM catalog_items WHERE id = $1`

	var priceStr sql.NullString

	err := p.tx.QueryRowContext(ctx, query, p.itemID).Scan(&priceStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return decimal.Zero, false, catalog.ErrNotFound
		}

		return decimal.Zero, false, fmt.Errorf("reading current price: %w", err)
	}

	if !priceStr.Valid {
		return decimal.Zero, false, nil
	}

	price, err := decimal.NewFromString(priceStr.String)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("parsing current price: %w", err)
	}

	return price, true, nil
}

func (p *priceUpdateTx) AppendHistory(ctx context.Context, rec *catalog.PriceRecord) error {
	query := `
		INSERT INTO price_history (catalog_item_id, vendor_id, price, previous_price,
			effective_date, source_kind, line_item_id, import_batch_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	var prev *string

	if rec.PreviousPrice != nil {
		s := rec.PreviousPrice.String()
		prev = &s
	}

	err := p.tx.QueryRowContext(ctx, query,
		rec.CatalogItemID,
		rec.VendorID,
		rec.Price.String(),
		prev,
		rec.EffectiveDate,
		rec.SourceKind,
		rec.LineItemID,
		rec.ImportBatchID,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending price history: %w", err)
	}

	return nil
}

func (p *priceUpdateTx) SetCurrentPrice(ctx context.Context, price decimal.Decimal) error {
	query := `
		UPDATE catalog_items
		SET current_price = $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := p.tx.ExecContext(ctx, query, price.String(), p.itemID); err != nil {
		return fmt.Errorf("setting current price: %w", err)
	}

	return nil
}
