package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockpot-app/stockpot/internal/triage"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// UpsertPending relies on a partial unique index over
// (organization_id, vendor_id, item_code) WHERE status = 'pending', so a
// still-pending code is refreshed rather than duplicated.
func (s *Store) UpsertPending(ctx context.Context, p triage.UpsertParams) error {
	query := `
		INSERT INTO triage_items (organization_id, vendor_id, item_code, description,
			unit_price, unit_of_measure, status, originating_batch_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending', $7, NOW(), NOW())
		ON CONFLICT (organization_id, vendor_id, item_code) WHERE status = 'pending'
		DO UPDATE SET
			description = EXCLUDED.description,
			unit_price = EXCLUDED.unit_price,
			unit_of_measure = EXCLUDED.unit_of_measure,
			originating_batch_id = EXCLUDED.originating_batch_id,
			updated_at = NOW()
	`

	_, err := s.db.ExecContext(ctx, query,
		p.OrganizationID,
		p.VendorID,
		p.ItemCode,
		p.Description,
		p.UnitPrice.String(),
		p.UnitOfMeasure,
		p.OriginatingBatchID,
	)
	if err != nil {
		return fmt.Errorf("upserting triage item: %w", err)
	}

	return nil
}

const selectItemColumns = `
	id, organization_id, vendor_id, item_code, description, unit_price,
	unit_of_measure, status, originating_batch_id, resolved_catalog_id,
	created_at, updated_at
`

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*triage.Item, error) {
	var item triage.Item

	var priceStr string

	var statusStr string

	if err := s.Scan(
		&item.ID, &item.OrganizationID, &item.VendorID, &item.ItemCode,
		&item.Description, &priceStr, &item.UnitOfMeasure, &statusStr,
		&item.OriginatingBatchID, &item.ResolvedCatalogID,
		&item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("parsing unit price: %w", err)
	}

	item.UnitPrice = price
	item.Status = triage.Status(statusStr)

	return &item, nil
}

func (s *Store) ListPending(ctx context.Context, organizationID uuid.UUID) ([]*triage.Item, error) {
	query := `SELECT ` + selectItemColumns + `
		FROM triage_items
		WHERE organization_id = $1 AND status = 'pending'
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("listing pending triage items: %w", err)
	}
	defer rows.Close()

	var items []*triage.Item

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning triage item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating triage items: %w", err)
	}

	return items, nil
}

func (s *Store) GetItem(ctx context.Context, id uuid.UUID) (*triage.Item, error) {
	query := `SELECT ` + selectItemColumns + ` FROM triage_items WHERE id = $1`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, triage.ErrNotFound
		}

		return nil, fmt.Errorf("getting triage item: %w", err)
	}

	return item, nil
}

func (s *Store) SetResolution(ctx context.Context, id uuid.UUID, status triage.Status, catalogItemID *uuid.UUID) error {
	query := `
		UPDATE triage_items
		SET status = $1, resolved_catalog_id = $2, updated_at = NOW()
		WHERE id = $3 AND status = 'pending'
	`

	res, err := s.db.ExecContext(ctx, query, status, catalogItemID, id)
	if err != nil {
		return fmt.Errorf("resolving triage item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("resolving triage item: %w", err)
	}

	if affected == 0 {
		return triage.ErrNotFound
	}

	return nil
}
