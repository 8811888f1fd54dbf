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

type fakeSender struct {
	calls []upstream.BookingRequest
	err   error
}

func (f *fakeSender) SubmitOrder(ctx context.Context, req upstream.BookingRequest) error {
	f.calls = append(f.calls, req)
	return f.err
}

func TestBuildRequestRejectsEmptySelection(t *testing.T) {
	b, _ := readyBatch(t, "TRK1")
	sender := &fakeSender{}
	s := NewSubmitter(sender)

	_, err := s.Submit(context.Background(), b)

	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Empty(t, sender.calls, "no network call on validation failure")
}

func TestBuildRequestRejectsSentinelSelection(t *testing.T) {
	b, ids := readyBatch(t, "TRK1")
	b.SetQuotes(ids[0], []upstream.CarrierQuote{
		quote("booked", upstream.FeeAlreadyBooked),
	})
	require.NoError(t, b.SelectQuote(ids[0], 0))

	sender := &fakeSender{}
	s := NewSubmitter(sender)

	_, err := s.Submit(context.Background(), b)

	var sentinelErr *SentinelSelectedError
	require.ErrorAs(t, err, &sentinelErr)
	assert.Equal(t, "TRK1", sentinelErr.TrackingNumber)
	assert.Equal(t, upstream.StatusAlreadyBooked, sentinelErr.Status)
	assert.Empty(t, sender.calls)
	assert.Equal(t, 1, b.Len(), "batch untouched after rejected submit")
}

func TestBuildRequestRejectsNonPositiveFeeSelection(t *testing.T) {
	for _, fee := range []float64{0, -2.5} {
		b, ids := readyBatch(t, "TRK1")
		b.SetQuotes(ids[0], []upstream.CarrierQuote{quote("zero", fee)})
		require.NoError(t, b.SelectQuote(ids[0], 0))

		sender := &fakeSender{}
		s := NewSubmitter(sender)

		_, err := s.Submit(context.Background(), b)

		var sentinelErr *SentinelSelectedError
		require.ErrorAs(t, err, &sentinelErr, "fee %v must not be bookable", fee)
		assert.Equal(t, upstream.StatusFailed, sentinelErr.Status)
		assert.Empty(t, sender.calls)
	}
}

func TestSubmitBooksSelectionAndClearsBatch(t *testing.T) {
	b, ids := readyBatch(t, "TRK1", "TRK2")
	b.SetQuotes(ids[0], []upstream.CarrierQuote{quote("chan-a", 30)})
	b.SetQuotes(ids[1], []upstream.CarrierQuote{quote("chan-b", 45)})
	require.NoError(t, b.SelectQuote(ids[0], 0))
	require.NoError(t, b.SelectQuote(ids[1], 0))

	sender := &fakeSender{}
	s := NewSubmitter(sender)

	req, err := s.Submit(context.Background(), b)

	require.NoError(t, err)
	require.Len(t, sender.calls, 1)
	require.Len(t, req.Items, 2)
	assert.Equal(t, "TRK1", req.Items[0].TrackingNumber)
	assert.Equal(t, "chan-a", req.Items[0].ChannelName)
	assert.Equal(t, string(models.RegionUSEast), req.Items[0].Area)
	assert.Equal(t, 0, b.Len(), "batch cleared after successful submit")
}

func TestSubmitLeavesBatchOnBackendFailure(t *testing.T) {
	b, ids := readyBatch(t, "TRK1")
	b.SetQuotes(ids[0], []upstream.CarrierQuote{quote("chan-a", 30)})
	require.NoError(t, b.SelectQuote(ids[0], 0))

	sender := &fakeSender{err: errors.New("backend down")}
	s := NewSubmitter(sender)

	_, err := s.Submit(context.Background(), b)

	assert.Error(t, err)
	assert.Equal(t, 1, b.Len(), "batch untouched so the user can retry")

	row, _ := b.Row(ids[0])
	assert.True(t, row.Quotes[0].Selected, "selection survives a failed submit")
}

func TestSubmitSkipsUnselectedRows(t *testing.T) {
	b, ids := readyBatch(t, "TRK1", "TRK2")
	b.SetQuotes(ids[0], []upstream.CarrierQuote{quote("chan-a", 30)})
	b.SetQuotes(ids[1], []upstream.CarrierQuote{quote("chan-b", 45)})
	require.NoError(t, b.SelectQuote(ids[0], 0))

	sender := &fakeSender{}
	s := NewSubmitter(sender)

	req, err := s.Submit(context.Background(), b)

	require.NoError(t, err)
	require.Len(t, req.Items, 1)
	assert.Equal(t, "TRK1", req.Items[0].TrackingNumber)
}
