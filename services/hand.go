package services

import (
	"context"
	"errors"

	"freight-app/models"
	"freight-app/services/upstream"
)

// HandQuoter is the slice of the upstream client the hand flow needs.
type HandQuoter interface {
	TryCalculateHand(ctx context.Context, req upstream.HandCalculateRequest) ([]upstream.CarrierQuote, error)
	SubmitOrder(ctx context.Context, req upstream.BookingRequest) error
}

// HandShipment is one manually-entered shipment: dimensions, weight and
// recipient instead of a fetched tracking-number detail.
type HandShipment struct {
	TrackingNumber string        `json:"tracking_number"`
	Region         models.Region `json:"region"`
	Qty            int           `json:"qty"`
	Weight         float64       `json:"weight"`
	Length         float64       `json:"length"`
	Width          float64       `json:"width"`
	Height         float64       `json:"height"`
	DutyCode       string        `json:"duty_code"`
	Port           string        `json:"port"`
	Recipient      string        `json:"recipient"`
	Address        string        `json:"address"`
}

// HandService runs the single-shipment flow: quote, pick, book. The server
// keeps no state between the two calls; the chosen quote comes back with
// the submit request.
type HandService struct {
	quoter HandQuoter
}

func NewHandService(quoter HandQuoter) *HandService {
	return &HandService{quoter: quoter}
}

// Calculate requests quotes for the entered shipment and returns them ranked.
func (s *HandService) Calculate(ctx context.Context, shipment HandShipment) ([]upstream.CarrierQuote, error) {
	if !shipment.Region.Valid() {
		return nil, errors.New("unknown region")
	}

	quotes, err := s.quoter.TryCalculateHand(ctx, upstream.HandCalculateRequest{
		Area:      string(shipment.Region),
		Qty:       shipment.Qty,
		Weight:    shipment.Weight,
		Length:    shipment.Length,
		Width:     shipment.Width,
		Height:    shipment.Height,
		DutyCode:  shipment.DutyCode,
		Port:      shipment.Port,
		Recipient: shipment.Recipient,
		Address:   shipment.Address,
	})
	if err != nil {
		return nil, err
	}
	return NormalizeQuotes(quotes), nil
}

// Submit books the chosen option for the entered shipment. Sentinel quotes
// are rejected with the same rules as the batch flow.
func (s *HandService) Submit(ctx context.Context, shipment HandShipment, quote upstream.CarrierQuote) (*upstream.BookingRequest, error) {
	if st := quote.Status(); st != upstream.StatusPriced {
		return nil, &SentinelSelectedError{
			TrackingNumber: shipment.TrackingNumber,
			Status:         st,
		}
	}

	req := &upstream.BookingRequest{Items: []upstream.BookingItem{{
		TrackingNumber:    shipment.TrackingNumber,
		Area:              string(shipment.Region),
		Supplier:          quote.Supplier,
		ChannelCode:       quote.ChannelCode,
		ChannelName:       quote.ChannelName,
		ExpressType:       quote.ExpressType,
		TotalFee:          quote.TotalFee,
		Qty:               shipment.Qty,
		Weight:            shipment.Weight,
		DutyCode:          shipment.DutyCode,
		Port:              shipment.Port,
		ShipperTo:         quote.ShipperTo,
		ProductDetailList: quote.ProductDetailList,
	}}}

	if err := s.quoter.SubmitOrder(ctx, *req); err != nil {
		return nil, err
	}
	return req, nil
}
