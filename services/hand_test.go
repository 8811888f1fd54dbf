package services

import (
	"context"
	"testing"

	"freight-app/models"
	"freight-app/services/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandQuoter struct {
	quotes   []upstream.CarrierQuote
	booked   []upstream.BookingRequest
	quoteErr error
	bookErr  error
}

func (f *fakeHandQuoter) TryCalculateHand(ctx context.Context, req upstream.HandCalculateRequest) ([]upstream.CarrierQuote, error) {
	return f.quotes, f.quoteErr
}

func (f *fakeHandQuoter) SubmitOrder(ctx context.Context, req upstream.BookingRequest) error {
	f.booked = append(f.booked, req)
	return f.bookErr
}

func handShipment() HandShipment {
	return HandShipment{
		TrackingNumber: "HAND1",
		Region:         models.RegionUSWest,
		Qty:            1,
		Weight:         3.2,
		Length:         10,
		Width:          20,
		Height:         5,
		DutyCode:       "D9",
		Port:           "LAX",
		Recipient:      "ACME Corp",
		Address:        "100 Main St",
	}
}

func TestHandCalculateRanksQuotes(t *testing.T) {
	quoter := &fakeHandQuoter{quotes: []upstream.CarrierQuote{
		quote("pricier", 60),
		quote("failed", upstream.FeeCalcFailed),
		quote("cheaper", 40),
	}}
	s := NewHandService(quoter)

	quotes, err := s.Calculate(context.Background(), handShipment())

	require.NoError(t, err)
	require.Len(t, quotes, 3)
	assert.Equal(t, "cheaper", quotes[0].ChannelName)
	assert.Equal(t, "pricier", quotes[1].ChannelName)
	assert.Equal(t, "failed", quotes[2].ChannelName)
}

func TestHandCalculateRejectsUnknownRegion(t *testing.T) {
	s := NewHandService(&fakeHandQuoter{})

	shipment := handShipment()
	shipment.Region = "EU-NORTH"

	_, err := s.Calculate(context.Background(), shipment)
	assert.Error(t, err)
}

func TestHandSubmitBooksSingleItem(t *testing.T) {
	quoter := &fakeHandQuoter{}
	s := NewHandService(quoter)

	req, err := s.Submit(context.Background(), handShipment(), quote("chan", 42))

	require.NoError(t, err)
	require.Len(t, quoter.booked, 1)
	require.Len(t, req.Items, 1)
	assert.Equal(t, "HAND1", req.Items[0].TrackingNumber)
	assert.Equal(t, "chan", req.Items[0].ChannelName)
	assert.Equal(t, 42.0, req.Items[0].TotalFee)
	assert.Equal(t, "US-WEST", req.Items[0].Area)
}

func TestHandSubmitRejectsSentinelQuotes(t *testing.T) {
	quoter := &fakeHandQuoter{}
	s := NewHandService(quoter)

	_, err := s.Submit(context.Background(), handShipment(), quote("x", upstream.FeeAlreadyBooked))
	var sentinelErr *SentinelSelectedError
	require.ErrorAs(t, err, &sentinelErr)
	assert.Equal(t, upstream.StatusAlreadyBooked, sentinelErr.Status)

	_, err = s.Submit(context.Background(), handShipment(), quote("", 30))
	require.ErrorAs(t, err, &sentinelErr)
	assert.Equal(t, upstream.StatusFailed, sentinelErr.Status)

	assert.Empty(t, quoter.booked)
}
