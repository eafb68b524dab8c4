package ingest_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stockpot-app/stockpot/internal/audit"
	"github.com/stockpot-app/stockpot/internal/catalog"
	"github.com/stockpot-app/stockpot/internal/ingest"
)

type pipelineMocks struct {
	repo    *ingest.MockRepository
	tx      *ingest.MockTx
	prices  *ingest.MockPriceApplier
	triage  *ingest.MockTriageUpserter
	auditor *ingest.MockAuditor
	emitted *[]audit.Event
}

func newPipelineMocks(ctrl *gomock.Controller) pipelineMocks {
	emitted := &[]audit.Event{}

	auditor := ingest.NewMockAuditor(ctrl)
	auditor.EXPECT().
		Emit(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, e audit.Event) {
			*emitted = append(*emitted, e)
		}).
		AnyTimes()

	return pipelineMocks{
		repo:    ingest.NewMockRepository(ctrl),
		tx:      ingest.NewMockTx(ctrl),
		prices:  ingest.NewMockPriceApplier(ctrl),
		triage:  ingest.NewMockTriageUpserter(ctrl),
		auditor: auditor,
		emitted: emitted,
	}
}

func (m pipelineMocks) service() *ingest.Service {
	return ingest.NewService(m.repo, m.prices, m.triage, m.auditor)
}

func (m pipelineMocks) emittedKinds() []audit.Kind {
	kinds := make([]audit.Kind, 0, len(*m.emitted))
	for _, e := range *m.emitted {
		kinds = append(kinds, e.Kind)
	}

	return kinds
}

func baseRequest() ingest.Request {
	return ingest.Request{
		OrganizationID: uuid.New(),
		UserID:         uuid.New(),
		VendorID:       uuid.New(),
		VendorName:     "Harbor Produce Co",
		SourceKind:     ingest.SourceStructuredFile,
		DocumentBytes:  []byte("doc-bytes"),
		FileName:       "invoice.csv",
		InvoiceNumber:  "INV-100",
		InvoiceDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestService_Ingest_CorrectionSupersedesAndCounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newPipelineMocks(ctrl)
	svc := m.service()

	req := baseRequest()

	itemA, itemB, itemC := uuid.New(), uuid.New(), uuid.New()
	req.Candidates = []ingest.CandidateItem{
		{ItemCode: "A", Description: "flour", QuantityOrdered: dec("10"), QuantityReceived: dec("10"), UnitPrice: dec("18.50"), MatchedCatalogID: &itemA},
		{ItemCode: "B", Description: "oil", QuantityOrdered: dec("4"), QuantityReceived: dec("3"), UnitPrice: dec("30.00"), MatchedCatalogID: &itemB},
		{ItemCode: "C", Description: "salt", QuantityOrdered: dec("6"), QuantityReceived: dec("6"), UnitPrice: dec("2.10"), MatchedCatalogID: &itemC},
		{ItemCode: "D", Description: "mystery", QuantityOrdered: dec("1"), QuantityReceived: dec("1"), UnitPrice: dec("5.00")},
	}

	prior := &ingest.Batch{ID: uuid.New(), Version: 1, Status: ingest.BatchCompleted}

	m.repo.EXPECT().
		BeginIngest(gomock.Any(), req.OrganizationID, req.VendorID, "INV-100").
		Return(m.tx, nil)
	m.tx.EXPECT().
		ListActiveBatches(gomock.Any(), req.OrganizationID, req.VendorID, "INV-100").
		Return([]*ingest.Batch{prior}, nil)
	m.tx.EXPECT().
		SupersedeBatches(gomock.Any(), []uuid.UUID{prior.ID}, gomock.Any(), gomock.Any()).
		Return(nil)

	var createdBatch *ingest.Batch

	m.tx.EXPECT().
		CreateBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *ingest.Batch) error {
			createdBatch = b
			return nil
		})
	m.tx.EXPECT().
		CreateHeader(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, h *ingest.InvoiceHeader) error {
			assert.Equal(t, "INV-100", h.InvoiceNumber)
			assert.Equal(t, ingest.HeaderPending, h.Status)
			return nil
		})
	m.tx.EXPECT().Commit().Return(nil)
	m.tx.EXPECT().Rollback().Return(nil)

	m.repo.EXPECT().
		CreateLineItems(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, items []*ingest.LineItem) error {
			for _, item := range items {
				item.ID = uuid.New()
			}
			return nil
		})

	m.triage.EXPECT().Upsert(gomock.Any(), gomock.Len(1)).Return(nil)

	prevA := dec("17.00")
	prevC := dec("2.10")

	changes := map[uuid.UUID]*catalog.PriceChange{
		// Meaningful move on A.
		itemA: {CatalogItemID: itemA, Previous: &prevA, New: dec("18.50"), Changed: true},
		// First sighting of B.
		itemB: {CatalogItemID: itemB, New: dec("30.00")},
		// C unchanged.
		itemC: {CatalogItemID: itemC, Previous: &prevC, New: dec("2.10")},
	}

	m.prices.EXPECT().
		ApplyPrice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p catalog.ApplyPriceParams) (*catalog.PriceChange, error) {
			change, ok := changes[p.CatalogItemID]
			require.True(t, ok)
			return change, nil
		}).
		Times(3)

	m.repo.EXPECT().
		FinalizeBatch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, batchID, _ uuid.UUID, stats ingest.BatchStats) error {
			assert.Equal(t, createdBatch.ID, batchID)
			assert.Equal(t, 3, stats.ItemCount)
			assert.Equal(t, 1, stats.PriceChanges)
			assert.Equal(t, 1, stats.NewItemCount)
			// 10*18.50 + 3*30.00 + 6*2.10 = 287.60
			assert.True(t, stats.TotalAmount.Equal(dec("287.60")), "got %s", stats.TotalAmount)
			return nil
		})

	result, err := svc.Ingest(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Version)
	assert.True(t, result.IsCorrection)
	assert.Equal(t, 3, result.MatchedCount)
	assert.Equal(t, 1, result.UnmatchedCount)
	assert.Equal(t, 1, result.PriceChangeCount)
	assert.Equal(t, 1, result.ShortageItemCount)
	assert.True(t, result.ShortageValue.Equal(dec("30.00")), "got %s", result.ShortageValue)
	assert.Equal(t, ingest.BatchCompleted, result.Status)

	require.NotNil(t, createdBatch)
	assert.Equal(t, 2, createdBatch.Version)
	assert.Equal(t, prior.ID, *createdBatch.SupersedesID)
	assert.Equal(t, "INV-100", createdBatch.MatchKey)

	kinds := m.emittedKinds()
	assert.Contains(t, kinds, audit.KindVersionCreated)
	assert.Contains(t, kinds, audit.KindInvoiceImported)
	assert.Contains(t, kinds, audit.KindDiscrepancyRecorded)
}

func TestService_Ingest_FileNameLineageForScans(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newPipelineMocks(ctrl)
	svc := m.service()

	req := baseRequest()
	req.SourceKind = ingest.SourceScannedDocument
	req.InvoiceNumber = ""
	req.FileName = "receipt-photo.jpg"
	req.Candidates = nil

	m.repo.EXPECT().
		BeginIngest(gomock.Any(), req.OrganizationID, req.VendorID, "receipt-photo.jpg").
		Return(m.tx, nil)
	m.tx.EXPECT().
		ListActiveBatches(gomock.Any(), req.OrganizationID, req.VendorID, "receipt-photo.jpg").
		Return(nil, nil)

	var createdBatch *ingest.Batch

	m.tx.EXPECT().
		CreateBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *ingest.Batch) error {
			createdBatch = b
			return nil
		})
	m.tx.EXPECT().CreateHeader(gomock.Any(), gomock.Any()).Return(nil)
	m.tx.EXPECT().Commit().Return(nil)
	m.tx.EXPECT().Rollback().Return(nil)

	m.repo.EXPECT().FinalizeBatch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.Ingest(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Version)
	assert.False(t, result.IsCorrection)

	require.NotNil(t, createdBatch)
	assert.Equal(t, "receipt-photo.jpg", createdBatch.MatchKey)

	// No number on the document: a stable display reference is
	// synthesized so the batch never lists blank.
	assert.NotEmpty(t, createdBatch.InvoiceNumber)
	assert.Contains(t, createdBatch.InvoiceNumber, "DOC-")
}

func TestService_Ingest_ValidationRejectsBeforeAnyWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newPipelineMocks(ctrl)
	svc := m.service()

	req := baseRequest()
	req.VendorID = uuid.Nil

	result, err := svc.Ingest(context.Background(), req)
	assert.Nil(t, result)

	var verr *ingest.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "vendorId", verr.Field)
}

func TestService_Ingest_LineItemFailureMarksBatchFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newPipelineMocks(ctrl)
	svc := m.service()

	req := baseRequest()
	catalogID := uuid.New()
	req.Candidates = []ingest.CandidateItem{
		{ItemCode: "A", Description: "flour", QuantityOrdered: dec("1"), QuantityReceived: dec("1"), UnitPrice: dec("9.99"), MatchedCatalogID: &catalogID},
	}

	m.repo.EXPECT().BeginIngest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(m.tx, nil)
	m.tx.EXPECT().ListActiveBatches(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.tx.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(nil)
	m.tx.EXPECT().CreateHeader(gomock.Any(), gomock.Any()).Return(nil)
	m.tx.EXPECT().Commit().Return(nil)
	m.tx.EXPECT().Rollback().Return(nil)

	m.repo.EXPECT().
		CreateLineItems(gomock.Any(), gomock.Any()).
		Return(errors.New("disk full"))

	m.repo.EXPECT().
		MarkBatchFailed(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, message string) error {
			assert.Contains(t, message, "disk full")
			return nil
		})

	result, err := svc.Ingest(context.Background(), req)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, ingest.BatchFailed, result.Status)
	assert.Contains(t, result.ErrorMessage, "disk full")
}

func TestService_Ingest_TriageFailureDoesNotFailImport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newPipelineMocks(ctrl)
	svc := m.service()

	req := baseRequest()
	req.Candidates = []ingest.CandidateItem{
		{ItemCode: "X", Description: "unknown", QuantityOrdered: dec("1"), QuantityReceived: dec("1"), UnitPrice: dec("3.00")},
	}

	m.repo.EXPECT().BeginIngest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(m.tx, nil)
	m.tx.EXPECT().ListActiveBatches(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.tx.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(nil)
	m.tx.EXPECT().CreateHeader(gomock.Any(), gomock.Any()).Return(nil)
	m.tx.EXPECT().Commit().Return(nil)
	m.tx.EXPECT().Rollback().Return(nil)

	m.triage.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errors.New("queue unavailable"))

	m.repo.EXPECT().FinalizeBatch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.Ingest(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, ingest.BatchCompleted, result.Status)
	assert.Equal(t, 1, result.UnmatchedCount)
}

func TestService_Ingest_PriceFailureMarksBatchFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newPipelineMocks(ctrl)
	svc := m.service()

	req := baseRequest()
	catalogID := uuid.New()
	req.Candidates = []ingest.CandidateItem{
		{ItemCode: "A", Description: "flour", QuantityOrdered: dec("1"), QuantityReceived: dec("1"), UnitPrice: dec("9.99"), MatchedCatalogID: &catalogID},
	}

	m.repo.EXPECT().BeginIngest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(m.tx, nil)
	m.tx.EXPECT().ListActiveBatches(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.tx.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(nil)
	m.tx.EXPECT().CreateHeader(gomock.Any(), gomock.Any()).Return(nil)
	m.tx.EXPECT().Commit().Return(nil)
	m.tx.EXPECT().Rollback().Return(nil)

	m.repo.EXPECT().CreateLineItems(gomock.Any(), gomock.Any()).Return(nil)

	m.prices.EXPECT().
		ApplyPrice(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("ledger write failed"))

	m.repo.EXPECT().MarkBatchFailed(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.Ingest(context.Background(), req)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, ingest.BatchFailed, result.Status)
}

func TestService_Ingest_BeginFailureLeavesNothingBehind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newPipelineMocks(ctrl)
	svc := m.service()

	req := baseRequest()

	m.repo.EXPECT().
		BeginIngest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	result, err := svc.Ingest(context.Background(), req)
	assert.Nil(t, result)
	assert.Error(t, err)
}
