package services

import (
	"testing"

	"freight-app/services/upstream"

	"github.com/stretchr/testify/assert"
)

func quote(channel string, fee float64) upstream.CarrierQuote {
	return upstream.CarrierQuote{ChannelName: channel, TotalFee: fee}
}

func TestNormalizeQuotesRanksByFee(t *testing.T) {
	raw := []upstream.CarrierQuote{
		quote("slow", 42.5),
		quote("fast", 99.9),
		quote("cheap", 12.0),
	}

	ranked := NormalizeQuotes(raw)

	assert.Equal(t, "cheap", ranked[0].ChannelName)
	assert.Equal(t, "slow", ranked[1].ChannelName)
	assert.Equal(t, "fast", ranked[2].ChannelName)
}

func TestNormalizeQuotesSentinelsGoLast(t *testing.T) {
	raw := []upstream.CarrierQuote{
		quote("b", 50),
		quote("failed", upstream.FeeCalcFailed),
		quote("a", 30),
		quote("booked", upstream.FeeAlreadyBooked),
	}

	ranked := NormalizeQuotes(raw)

	assert.Equal(t, "a", ranked[0].ChannelName)
	assert.Equal(t, "b", ranked[1].ChannelName)
	// sentinels keep their original backend order among themselves
	assert.Equal(t, "failed", ranked[2].ChannelName)
	assert.Equal(t, "booked", ranked[3].ChannelName)
}

func TestNormalizeQuotesEmptyChannelIsSentinel(t *testing.T) {
	raw := []upstream.CarrierQuote{
		quote("", 5.0), // cheapest fee, but unusable
		quote("ok", 80),
	}

	ranked := NormalizeQuotes(raw)

	assert.Equal(t, "ok", ranked[0].ChannelName)
	assert.Equal(t, "", ranked[1].ChannelName)
}

func TestNormalizeQuotesNonPositiveFeeIsSentinel(t *testing.T) {
	// Zero and negative fees other than -1 are still failures, not prices.
	raw := []upstream.CarrierQuote{
		quote("zero", 0),
		quote("ok", 30),
		quote("negative", -2.5),
	}

	ranked := NormalizeQuotes(raw)

	assert.Equal(t, "ok", ranked[0].ChannelName)
	assert.Equal(t, "zero", ranked[1].ChannelName)
	assert.Equal(t, "negative", ranked[2].ChannelName)
	assert.Equal(t, 0, CheapestValid(ranked))
}

func TestNormalizeQuotesStableOnEqualFees(t *testing.T) {
	raw := []upstream.CarrierQuote{
		quote("first", 20),
		quote("second", 20),
		quote("third", 20),
	}

	ranked := NormalizeQuotes(raw)

	assert.Equal(t, "first", ranked[0].ChannelName)
	assert.Equal(t, "second", ranked[1].ChannelName)
	assert.Equal(t, "third", ranked[2].ChannelName)
}

func TestNormalizeQuotesDoesNotMutateInput(t *testing.T) {
	raw := []upstream.CarrierQuote{
		quote("b", 50),
		quote("a", 30),
	}

	NormalizeQuotes(raw)

	assert.Equal(t, "b", raw[0].ChannelName)
	assert.Equal(t, "a", raw[1].ChannelName)
}

func TestCheapestValid(t *testing.T) {
	ranked := NormalizeQuotes([]upstream.CarrierQuote{
		quote("failed", upstream.FeeCalcFailed),
		quote("a", 30),
	})
	assert.Equal(t, 0, CheapestValid(ranked))
	assert.Equal(t, "a", ranked[CheapestValid(ranked)].ChannelName)
}

func TestCheapestValidAllSentinels(t *testing.T) {
	ranked := NormalizeQuotes([]upstream.CarrierQuote{
		quote("failed", upstream.FeeCalcFailed),
		quote("booked", upstream.FeeAlreadyBooked),
		quote("", 10),
	})
	assert.Equal(t, -1, CheapestValid(ranked))
}

func TestQuoteStatus(t *testing.T) {
	assert.Equal(t, upstream.StatusPriced, quote("ok", 42).Status())
	assert.Equal(t, upstream.StatusFailed, quote("x", upstream.FeeCalcFailed).Status())
	assert.Equal(t, upstream.StatusAlreadyBooked, quote("x", upstream.FeeAlreadyBooked).Status())
	assert.Equal(t, upstream.StatusFailed, quote("", 42).Status())
	assert.Equal(t, upstream.StatusFailed, quote("x", 0).Status())
	assert.Equal(t, upstream.StatusFailed, quote("x", -2.5).Status())
}
