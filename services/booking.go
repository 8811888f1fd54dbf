package services

import (
	"context"
	"errors"
	"fmt"

	"freight-app/services/upstream"
)

// ErrNoSelection is returned when submit is called and no row has a
// selected quote.
var ErrNoSelection = errors.New("no quote selected")

// SentinelSelectedError blocks submission: a selected quote with a sentinel
// status must never be silently dropped nor silently booked.
type SentinelSelectedError struct {
	TrackingNumber string
	Status         upstream.QuoteStatus
}

func (e *SentinelSelectedError) Error() string {
	switch e.Status {
	case upstream.StatusAlreadyBooked:
		return fmt.Sprintf("shipment %s already has a booking", e.TrackingNumber)
	default:
		return fmt.Sprintf("shipment %s has a failed quote selected", e.TrackingNumber)
	}
}

// BookingSender is the slice of the upstream client the submitter needs.
type BookingSender interface {
	SubmitOrder(ctx context.Context, req upstream.BookingRequest) error
}

// Submitter turns a batch's selections into one booking call.
type Submitter struct {
	sender BookingSender
}

func NewSubmitter(sender BookingSender) *Submitter {
	return &Submitter{sender: sender}
}

// BuildRequest validates the batch's selections and assembles the booking
// request without touching the network. Pure apart from reading the batch.
func (s *Submitter) BuildRequest(batch *Batch) (*upstream.BookingRequest, error) {
	selected := batch.SelectedItems()
	if len(selected) == 0 {
		return nil, ErrNoSelection
	}

	req := &upstream.BookingRequest{Items: make([]upstream.BookingItem, 0, len(selected))}
	for _, item := range selected {
		if st := item.Quote.Status(); st != upstream.StatusPriced {
			return nil, &SentinelSelectedError{
				TrackingNumber: item.Row.TrackingNumber,
				Status:         st,
			}
		}
		req.Items = append(req.Items, upstream.BookingItem{
			TrackingNumber:    item.Row.TrackingNumber,
			Area:              string(item.Row.Region),
			Supplier:          item.Quote.Supplier,
			ChannelCode:       item.Quote.ChannelCode,
			ChannelName:       item.Quote.ChannelName,
			ExpressType:       item.Quote.ExpressType,
			TotalFee:          item.Quote.TotalFee,
			Qty:               item.Row.Qty,
			Weight:            item.Row.Weight,
			DutyCode:          item.Row.DutyCode,
			Overweight:        item.Row.Overweight,
			Port:              item.Row.Port,
			ShipperTo:         item.Quote.ShipperTo,
			ProductDetailList: item.Quote.ProductDetailList,
		})
	}
	return req, nil
}

// Submit books every selected shipment in one call. On success the batch is
// cleared and the submitted request returned for persistence; on any failure
// the batch is left untouched so the user can retry without re-entering data.
func (s *Submitter) Submit(ctx context.Context, batch *Batch) (*upstream.BookingRequest, error) {
	req, err := s.BuildRequest(batch)
	if err != nil {
		return nil, err
	}

	if err := s.sender.SubmitOrder(ctx, *req); err != nil {
		return nil, err
	}

	batch.Clear()
	return req, nil
}
