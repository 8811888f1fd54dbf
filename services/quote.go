package services

import (
	"freight-app/services/upstream"

	"golang.org/x/exp/slices"
)

// NormalizeQuotes ranks a raw backend quote list ascending by total fee.
// Sentinel entries (fee -1, fee 1, empty channel name) never take part in
// the numeric comparison: they go after every valid entry, keeping their
// original backend order among themselves. Valid entries with equal fees
// also keep their original order.
func NormalizeQuotes(raw []upstream.CarrierQuote) []upstream.CarrierQuote {
	quotes := make([]upstream.CarrierQuote, len(raw))
	copy(quotes, raw)

	slices.SortStableFunc(quotes, func(a, b upstream.CarrierQuote) int {
		as, bs := a.Sentinel(), b.Sentinel()
		switch {
		case as && bs:
			return 0
		case as:
			return 1
		case bs:
			return -1
		case a.TotalFee < b.TotalFee:
			return -1
		case a.TotalFee > b.TotalFee:
			return 1
		default:
			return 0
		}
	})

	return quotes
}

// CheapestValid returns the index of the best-priced non-sentinel quote in
// a normalized list, or -1 when every quote is a sentinel.
func CheapestValid(quotes []upstream.CarrierQuote) int {
	for i, q := range quotes {
		if !q.Sentinel() {
			return i
		}
	}
	return -1
}
