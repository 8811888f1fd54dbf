package upstream

import "encoding/json"

// Reserved values of the total_fee field on the pricing wire. They encode a
// status, not an amount, and must never take part in price ranking.
const (
	FeeCalcFailed    float64 = -1 // rate computation failed upstream
	FeeAlreadyBooked float64 = 1  // a booking already exists for this shipment
)

// QuoteStatus is the tagged reading of a quote's sentinel fields.
type QuoteStatus int

const (
	StatusPriced QuoteStatus = iota
	StatusFailed
	StatusAlreadyBooked
)

// CarrierQuote is one carrier/channel option for a shipment, as returned by
// the try-calculate endpoints. Selected is client-side state and is never
// read by the backend.
type CarrierQuote struct {
	Supplier          string          `json:"supplier"`
	ChannelCode       string          `json:"channelCode"`
	ChannelName       string          `json:"channelName"`
	ExpressType       string          `json:"expressType"`
	TotalFee          float64         `json:"totalFee"`
	ShipperTo         string          `json:"shipperTo"`
	ProductDetailList json.RawMessage `json:"productDetailList,omitempty"`
	Selected          bool            `json:"selected"`
}

// Sentinel reports whether the quote is excluded from price ranking:
// fee 1 (already booked), any non-positive fee, or a missing channel name.
// A real price is always strictly positive.
func (q CarrierQuote) Sentinel() bool {
	return q.TotalFee <= 0 || q.TotalFee == FeeAlreadyBooked || q.ChannelName == ""
}

func (q CarrierQuote) Status() QuoteStatus {
	switch {
	case q.TotalFee == FeeAlreadyBooked:
		return StatusAlreadyBooked
	case q.TotalFee <= 0, q.ChannelName == "":
		return StatusFailed
	default:
		return StatusPriced
	}
}

// ChannelProduct is one bookable carrier channel for a region.
type ChannelProduct struct {
	Supplier    string `json:"supplier"`
	ChannelCode string `json:"channelCode"`
	ChannelName string `json:"channelName"`
	ExpressType string `json:"expressType"`
	Area        string `json:"area"`
}

// NumberData carries the physical attributes of one tracking number.
type NumberData struct {
	TrackingNumber string  `json:"worknum"`
	Qty            int     `json:"qty"`
	Weight         float64 `json:"weight"`
	DutyCode       string  `json:"dutyCode"`
	Overweight     bool    `json:"overweightFlag"`
	Port           string  `json:"port"`
}

// TryCalculateRequest asks for quotes for one shipment in the batch flow.
type TryCalculateRequest struct {
	TrackingNumber string  `json:"worknum"`
	Area           string  `json:"area"`
	Qty            int     `json:"qty"`
	Weight         float64 `json:"weight"`
	DutyCode       string  `json:"dutyCode"`
	Overweight     bool    `json:"overweightFlag"`
	Port           string  `json:"port"`
}

// HandCalculateRequest asks for quotes for one manually-entered shipment.
type HandCalculateRequest struct {
	Area      string  `json:"area"`
	Qty       int     `json:"qty"`
	Weight    float64 `json:"weight"`
	Length    float64 `json:"length"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	DutyCode  string  `json:"dutyCode"`
	Port      string  `json:"port"`
	Recipient string  `json:"recipient"`
	Address   string  `json:"address"`
}

// BookingItem is one shipment of a booking request, frozen from its selected
// quote plus the shipment's physical attributes.
type BookingItem struct {
	TrackingNumber    string          `json:"worknum"`
	Area              string          `json:"area"`
	Supplier          string          `json:"supplier"`
	ChannelCode       string          `json:"channelCode"`
	ChannelName       string          `json:"channelName"`
	ExpressType       string          `json:"expressType"`
	TotalFee          float64         `json:"totalFee"`
	Qty               int             `json:"qty"`
	Weight            float64         `json:"weight"`
	DutyCode          string          `json:"dutyCode"`
	Overweight        bool            `json:"overweightFlag"`
	Port              string          `json:"port"`
	ShipperTo         string          `json:"shipperTo"`
	ProductDetailList json.RawMessage `json:"productDetailList,omitempty"`
}

// BookingRequest books every item in one call.
type BookingRequest struct {
	Items []BookingItem `json:"items"`
}
