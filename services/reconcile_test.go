package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"freight-app/models"
	"freight-app/services/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	mu    sync.Mutex
	calls int
	fn    func(worknum string) (*upstream.NumberData, error)
}

func (f *fakeFetcher) NumberData(ctx context.Context, worknum string) (*upstream.NumberData, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.fn != nil {
		return f.fn(worknum)
	}
	return &upstream.NumberData{TrackingNumber: worknum, Qty: 2, Weight: 5, Port: "ORD"}, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func waitForState(t *testing.T, b *Batch, id string, want RowState) ShipmentRow {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		row, ok := b.Row(id)
		require.True(t, ok)
		if row.State == want {
			return row
		}
		time.Sleep(5 * time.Millisecond)
	}
	row, _ := b.Row(id)
	t.Fatalf("row %s stuck in state %s, want %s", id, row.State, want)
	return ShipmentRow{}
}

func TestIngestFetchesDetailPerRow(t *testing.T) {
	b := NewBatch()
	r := NewReconciler(&fakeFetcher{})

	result := r.Ingest(b, []RowCandidate{
		{TrackingNumber: "TRK1", Region: models.RegionUSEast},
		{TrackingNumber: "TRK2", Region: models.RegionUSWest},
	})

	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 0, result.Skipped)

	for _, row := range b.Rows() {
		got := waitForState(t, b, row.ID, RowDetailReady)
		assert.Equal(t, 2, got.Qty)
		assert.Equal(t, "ORD", got.Port)
	}
}

func TestIngestReportsDuplicatesAsWarnings(t *testing.T) {
	b := NewBatch()
	r := NewReconciler(&fakeFetcher{})

	result := r.Ingest(b, []RowCandidate{
		{TrackingNumber: "TRK1", Region: models.RegionUSEast},
		{TrackingNumber: "trk1-2", Region: models.RegionUSEast},
	})

	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "duplicate")
}

func TestIngestFailedFetchMarksOnlyItsRow(t *testing.T) {
	b := NewBatch()
	fetcher := &fakeFetcher{fn: func(worknum string) (*upstream.NumberData, error) {
		if worknum == "BAD" {
			return nil, errors.New("not found")
		}
		return &upstream.NumberData{TrackingNumber: worknum, Qty: 1}, nil
	}}
	r := NewReconciler(fetcher)

	r.Ingest(b, []RowCandidate{
		{TrackingNumber: "GOOD", Region: models.RegionUSEast},
		{TrackingNumber: "BAD", Region: models.RegionUSEast},
	})

	for _, row := range b.Rows() {
		switch row.TrackingNumber {
		case "GOOD":
			waitForState(t, b, row.ID, RowDetailReady)
		case "BAD":
			got := waitForState(t, b, row.ID, RowDetailFailed)
			assert.Contains(t, got.DetailErr, "not found")
		}
	}
}

func TestRetryDetailOnlyForFailedRows(t *testing.T) {
	b := NewBatch()
	fail := true
	fetcher := &fakeFetcher{fn: func(worknum string) (*upstream.NumberData, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return &upstream.NumberData{TrackingNumber: worknum, Qty: 1}, nil
	}}
	r := NewReconciler(fetcher)

	r.Ingest(b, []RowCandidate{{TrackingNumber: "TRK1", Region: models.RegionUSEast}})
	id := b.Rows()[0].ID
	waitForState(t, b, id, RowDetailFailed)

	fail = false
	require.True(t, r.RetryDetail(b, id))
	waitForState(t, b, id, RowDetailReady)

	// a ready row is not retryable
	assert.False(t, r.RetryDetail(b, id))
	assert.False(t, r.RetryDetail(b, "no-such-row"))
}
