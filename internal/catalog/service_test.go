package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stockpot-app/stockpot/internal/catalog"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}

	return d
}

func applyParams(itemID uuid.UUID, price string) catalog.ApplyPriceParams {
	return catalog.ApplyPriceParams{
		CatalogItemID: itemID,
		VendorID:      uuid.New(),
		NewPrice:      dec(price),
		EffectiveDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		SourceKind:    "structured_file",
		LineItemID:    uuid.New(),
		ImportBatchID: uuid.New(),
	}
}

func TestService_ApplyPrice_FirstRecordHasNoPreviousPrice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := catalog.NewMockRepository(ctrl)
	tx := catalog.NewMockPriceUpdateTx(ctrl)
	svc := catalog.NewService(repo)

	itemID := uuid.New()

	repo.EXPECT().BeginPriceUpdate(gomock.Any(), itemID).Return(tx, nil)
	tx.EXPECT().CurrentPrice(gomock.Any()).Return(decimal.Zero, false, nil)
	tx.EXPECT().
		AppendHistory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *catalog.PriceRecord) error {
			assert.Nil(t, rec.PreviousPrice)
			assert.True(t, rec.Price.Equal(dec("4.20")))
			return nil
		})
	tx.EXPECT().SetCurrentPrice(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	change, err := svc.ApplyPrice(context.Background(), applyParams(itemID, "4.20"))
	require.NoError(t, err)

	assert.Nil(t, change.Previous)
	assert.False(t, change.Changed)
	assert.False(t, change.Significant)
}

func TestService_ApplyPrice_Classification(t *testing.T) {
	tests := []struct {
		name            string
		previous        string
		next            string
		wantChanged     bool
		wantSignificant bool
		wantSeverity    catalog.Severity
	}{
		{
			name:         "NoiseBelowEpsilon",
			previous:     "10.0000",
			next:         "10.0005",
			wantChanged:  false,
			wantSeverity: catalog.SeverityInfo,
		},
		{
			name:         "SmallChangeNotSignificant",
			previous:     "10.00",
			next:         "10.20",
			wantChanged:  true,
			wantSeverity: catalog.SeverityInfo,
		},
		{
			// 50% relative move but only 0.005 absolute: the two-part
			// guard keeps cheap items from spamming the audit stream.
			name:         "TinyAbsoluteChangeNotSignificant",
			previous:     "0.010",
			next:         "0.015",
			wantChanged:  true,
			wantSeverity: catalog.SeverityInfo,
		},
		{
			name:            "SignificantChange",
			previous:        "10.00",
			next:            "11.00",
			wantChanged:     true,
			wantSignificant: true,
			wantSeverity:    catalog.SeverityInfo,
		},
		{
			name:            "WarningAboveFifteenPercent",
			previous:        "10.00",
			next:            "12.00",
			wantChanged:     true,
			wantSignificant: true,
			wantSeverity:    catalog.SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := catalog.NewMockRepository(ctrl)
			tx := catalog.NewMockPriceUpdateTx(ctrl)
			svc := catalog.NewService(repo)

			itemID := uuid.New()

			repo.EXPECT().BeginPriceUpdate(gomock.Any(), itemID).Return(tx, nil)
			tx.EXPECT().CurrentPrice(gomock.Any()).Return(dec(tt.previous), true, nil)
			tx.EXPECT().
				AppendHistory(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, rec *catalog.PriceRecord) error {
					// The ledger append is unconditional, changed or not.
					require.NotNil(t, rec.PreviousPrice)
					assert.True(t, rec.PreviousPrice.Equal(dec(tt.previous)))
					return nil
				})
			tx.EXPECT().SetCurrentPrice(gomock.Any(), dec(tt.next)).Return(nil)
			tx.EXPECT().Commit().Return(nil)
			tx.EXPECT().Rollback().Return(nil)

			change, err := svc.ApplyPrice(context.Background(), applyParams(itemID, tt.next))
			require.NoError(t, err)

			assert.Equal(t, tt.wantChanged, change.Changed)
			assert.Equal(t, tt.wantSignificant, change.Significant)
			assert.Equal(t, tt.wantSeverity, change.Severity)
		})
	}
}

func TestService_ApplyPrice_AppendFailureAbortsWithoutCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := catalog.NewMockRepository(ctrl)
	tx := catalog.NewMockPriceUpdateTx(ctrl)
	svc := catalog.NewService(repo)

	itemID := uuid.New()

	repo.EXPECT().BeginPriceUpdate(gomock.Any(), itemID).Return(tx, nil)
	tx.EXPECT().CurrentPrice(gomock.Any()).Return(dec("5.00"), true, nil)
	tx.EXPECT().AppendHistory(gomock.Any(), gomock.Any()).Return(errors.New("constraint violation"))
	tx.EXPECT().Rollback().Return(nil)

	change, err := svc.ApplyPrice(context.Background(), applyParams(itemID, "6.00"))
	assert.Nil(t, change)
	assert.Error(t, err)
}

func TestService_ApplyPrice_BeginFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := catalog.NewMockRepository(ctrl)
	svc := catalog.NewService(repo)

	itemID := uuid.New()

	repo.EXPECT().BeginPriceUpdate(gomock.Any(), itemID).Return(nil, errors.New("lock timeout"))

	change, err := svc.ApplyPrice(context.Background(), applyParams(itemID, "6.00"))
	assert.Nil(t, change)
	assert.Error(t, err)
}
