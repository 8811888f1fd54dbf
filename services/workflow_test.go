package services

import (
	"context"
	"errors"
	"testing"

	"freight-app/models"
	"freight-app/services/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Full batch flow: upload, detail fetch, quote fan-out with one failure,
// manual retry, selection, submit.
func TestBatchWorkflowEndToEnd(t *testing.T) {
	batch := NewBatch()

	fetcher := &fakeFetcher{fn: func(worknum string) (*upstream.NumberData, error) {
		return &upstream.NumberData{TrackingNumber: worknum, Qty: 2, Weight: 8, DutyCode: "D1", Port: "LAX"}, nil
	}}
	reconciler := NewReconciler(fetcher)

	failOnce := true
	quoter := &fakeQuoter{fn: func(req upstream.TryCalculateRequest) ([]upstream.CarrierQuote, error) {
		if req.TrackingNumber == "TRK2" && failOnce {
			failOnce = false
			return nil, errors.New("transient upstream failure")
		}
		return []upstream.CarrierQuote{
			quote("premium", 90),
			quote("economy", 55),
			quote("failed", upstream.FeeCalcFailed),
		}, nil
	}}
	orchestrator := NewOrchestrator(quoter)

	sender := &fakeSender{}
	submitter := NewSubmitter(sender)

	// upload: three rows, one duplicate skipped
	result := reconciler.Ingest(batch, []RowCandidate{
		{TrackingNumber: "TRK1", Region: models.RegionUSEast},
		{TrackingNumber: "TRK2", Region: models.RegionUSWest},
		{TrackingNumber: "trk1-2", Region: models.RegionUSEast},
	})
	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 1, result.Skipped)

	for _, row := range batch.Rows() {
		waitForState(t, batch, row.ID, RowDetailReady)
	}

	// first quote run: TRK2 fails, TRK1 succeeds
	calc := orchestrator.CalculateAll(context.Background(), batch)
	assert.Equal(t, 2, calc.Requested)
	assert.Equal(t, 1, calc.Succeeded)
	assert.Equal(t, 1, calc.Failed)

	// manual retry quotes only the failed row
	calc = orchestrator.CalculateAll(context.Background(), batch)
	assert.Equal(t, 1, calc.Requested)
	assert.Equal(t, 1, calc.Succeeded)

	// pick the cheapest valid option on every row
	for _, row := range batch.Rows() {
		idx := CheapestValid(row.Quotes)
		require.GreaterOrEqual(t, idx, 0)
		require.NoError(t, batch.SelectQuote(row.ID, idx))
	}

	for _, row := range batch.Rows() {
		assert.Equal(t, "economy", row.DisplayChannelName)
		require.NotNil(t, row.DisplayPrice)
		assert.Equal(t, 55.0, *row.DisplayPrice)
	}

	// submit books both shipments and resets the table
	req, err := submitter.Submit(context.Background(), batch)
	require.NoError(t, err)
	assert.Len(t, req.Items, 2)
	assert.Equal(t, 0, batch.Len())
}
