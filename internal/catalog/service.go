package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=catalog
type Repository interface {
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	ListPriceHistory(ctx context.Context, itemID uuid.UUID, filter HistoryFilter) ([]*PriceRecord, error)

	BeginPriceUpdate(ctx context.Context, itemID uuid.UUID) (PriceUpdateTx, error)
}

// PriceUpdateTx is one atomic read-append-overwrite cycle on a catalog
// item's price. The store implementation holds a row-level lock on the item
// for the lifetime of the transaction, so two concurrent imports touching
// the same item cannot interleave and record a stale previous price.
type PriceUpdateTx interface {
	CurrentPrice(ctx context.Context) (decimal.Decimal, bool, error)
	AppendHistory(ctx context.Context, rec *PriceRecord) error
	SetCurrentPrice(ctx context.Context, price decimal.Decimal) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ApplyPriceParams carries everything needed to record one observed price.
type ApplyPriceParams struct {
	CatalogItemID uuid.UUID
	VendorID      uuid.UUID
	NewPrice      decimal.Decimal
	EffectiveDate time.Time
	SourceKind    string
	LineItemID    uuid.UUID
	ImportBatchID uuid.UUID
}

// ApplyPrice records an observed price for a catalog item: it appends a
// ledger record carrying the previous price and overwrites the item's
// current price. The ledger write is unconditional; the returned change
// flags only govern downstream reporting. Current price is last-write-wins
// even for backdated corrections; the ledger keeps effective dates, so
// price-as-of-date stays reconstructable.
func (s *Service) ApplyPrice(ctx context.Context, params ApplyPriceParams) (*PriceChange, error) {
	tx, err := s.repo.BeginPriceUpdate(ctx, params.CatalogItemID)
	if err != nil {
		return nil, fmt.Errorf("begin price update: %w", err)
	}
	defer tx.Rollback()

	current, hasPrior, err := tx.CurrentPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("read current price: %w", err)
	}

	change := &PriceChange{
		CatalogItemID: params.CatalogItemID,
		New:           params.NewPrice,
	}
	if hasPrior {
		change.Previous = &current
	}

	rec := &PriceRecord{
		CatalogItemID: params.CatalogItemID,
		VendorID:      params.VendorID,
		Price:         params.NewPrice,
		PreviousPrice: change.Previous,
		EffectiveDate: params.EffectiveDate,
		SourceKind:    params.SourceKind,
		LineItemID:    &params.LineItemID,
		ImportBatchID: &params.ImportBatchID,
	}

	if err := tx.AppendHistory(ctx, rec); err != nil {
		return nil, fmt.Errorf("append price history: %w", err)
	}

	if err := tx.SetCurrentPrice(ctx, params.NewPrice); err != nil {
		return nil, fmt.Errorf("set current price: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit price update: %w", err)
	}

	change.classify()

	return change, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *Service) History(ctx context.Context, itemID uuid.UUID, filter HistoryFilter) ([]*PriceRecord, error) {
	return s.repo.ListPriceHistory(ctx, itemID, filter)
}
