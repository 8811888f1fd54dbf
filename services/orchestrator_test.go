package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"freight-app/models"
	"freight-app/services/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuoter struct {
	mu    sync.Mutex
	calls []string
	fn    func(req upstream.TryCalculateRequest) ([]upstream.CarrierQuote, error)
}

func (f *fakeQuoter) TryCalculate(ctx context.Context, req upstream.TryCalculateRequest) ([]upstream.CarrierQuote, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req.TrackingNumber)
	f.mu.Unlock()
	if f.fn != nil {
		return f.fn(req)
	}
	return []upstream.CarrierQuote{quote("default", 10)}, nil
}

func (f *fakeQuoter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func readyBatch(t *testing.T, trackingNumbers ...string) (*Batch, []string) {
	t.Helper()
	b := NewBatch()
	candidates := make([]RowCandidate, 0, len(trackingNumbers))
	for _, tn := range trackingNumbers {
		candidates = append(candidates, RowCandidate{TrackingNumber: tn, Region: models.RegionUSEast})
	}
	added, _ := b.AddRows(candidates)
	require.Len(t, added, len(trackingNumbers))

	ids := make([]string, 0, len(added))
	for _, row := range added {
		require.True(t, b.SetDetail(row.ID, &upstream.NumberData{Qty: 1, Weight: 2}))
		ids = append(ids, row.ID)
	}
	return b, ids
}

func TestCalculateAllQuotesEveryReadyRow(t *testing.T) {
	b, ids := readyBatch(t, "TRK1", "TRK2", "TRK3")
	quoter := &fakeQuoter{}
	o := NewOrchestrator(quoter)

	result := o.CalculateAll(context.Background(), b)

	assert.Equal(t, 3, result.Requested)
	assert.Equal(t, 3, result.Succeeded)
	assert.Equal(t, 0, result.Failed)

	for _, id := range ids {
		row, ok := b.Row(id)
		require.True(t, ok)
		assert.Equal(t, RowQuoteReady, row.State)
		assert.NotEmpty(t, row.Quotes)
	}
}

func TestCalculateAllSecondRunIsNoOp(t *testing.T) {
	b, ids := readyBatch(t, "TRK1", "TRK2")
	quoter := &fakeQuoter{}
	o := NewOrchestrator(quoter)

	o.CalculateAll(context.Background(), b)
	require.NoError(t, b.SelectQuote(ids[0], 0))

	result := o.CalculateAll(context.Background(), b)

	assert.Equal(t, 0, result.Requested)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, 2, quoter.callCount())

	// the earlier selection survives the re-run untouched
	row, _ := b.Row(ids[0])
	assert.True(t, row.Quotes[0].Selected)
}

func TestCalculateAllPartialFailure(t *testing.T) {
	b, ids := readyBatch(t, "GOOD", "BAD")
	quoter := &fakeQuoter{fn: func(req upstream.TryCalculateRequest) ([]upstream.CarrierQuote, error) {
		if req.TrackingNumber == "BAD" {
			return nil, errors.New("upstream timeout")
		}
		return []upstream.CarrierQuote{quote("ok", 25)}, nil
	}}
	o := NewOrchestrator(quoter)

	result := o.CalculateAll(context.Background(), b)

	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Failed)

	for _, id := range ids {
		row, _ := b.Row(id)
		switch row.TrackingNumber {
		case "GOOD":
			assert.Equal(t, RowQuoteReady, row.State)
		case "BAD":
			assert.Equal(t, RowQuoteFailed, row.State)
			assert.Contains(t, row.QuoteErr, "timeout")
		}
	}
}

func TestCalculateAllRetriesOnlyFailedRows(t *testing.T) {
	b, _ := readyBatch(t, "GOOD", "BAD")
	fail := true
	quoter := &fakeQuoter{fn: func(req upstream.TryCalculateRequest) ([]upstream.CarrierQuote, error) {
		if req.TrackingNumber == "BAD" && fail {
			return nil, errors.New("boom")
		}
		return []upstream.CarrierQuote{quote("ok", 25)}, nil
	}}
	o := NewOrchestrator(quoter)

	o.CalculateAll(context.Background(), b)
	fail = false
	result := o.CalculateAll(context.Background(), b)

	// only the failed row goes back out
	assert.Equal(t, 1, result.Requested)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 3, quoter.callCount())
}

func TestCalculateAllNormalizesQuotes(t *testing.T) {
	b, ids := readyBatch(t, "TRK1")
	quoter := &fakeQuoter{fn: func(req upstream.TryCalculateRequest) ([]upstream.CarrierQuote, error) {
		return []upstream.CarrierQuote{
			quote("expensive", 50),
			quote("failed", upstream.FeeCalcFailed),
			quote("cheap", 30),
			quote("booked", upstream.FeeAlreadyBooked),
		}, nil
	}}
	o := NewOrchestrator(quoter)

	o.CalculateAll(context.Background(), b)

	row, _ := b.Row(ids[0])
	require.Len(t, row.Quotes, 4)
	assert.Equal(t, "cheap", row.Quotes[0].ChannelName)
	assert.Equal(t, "expensive", row.Quotes[1].ChannelName)
	assert.Equal(t, "failed", row.Quotes[2].ChannelName)
	assert.Equal(t, "booked", row.Quotes[3].ChannelName)
}
