package services

import (
	"context"
	"sync"

	"freight-app/services/upstream"

	"github.com/sirupsen/logrus"
)

// QuoteFetcher is the slice of the upstream client the orchestrator needs.
type QuoteFetcher interface {
	TryCalculate(ctx context.Context, req upstream.TryCalculateRequest) ([]upstream.CarrierQuote, error)
}

// Orchestrator fans out quote requests for a batch. Each row's request is
// independent: a slow or failed row never blocks or aborts its siblings,
// and partial success is a valid terminal state.
type Orchestrator struct {
	quoter QuoteFetcher
}

func NewOrchestrator(quoter QuoteFetcher) *Orchestrator {
	return &Orchestrator{quoter: quoter}
}

// CalculateResult summarizes one calculate-all run.
type CalculateResult struct {
	Requested int `json:"requested"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// CalculateAll issues one concurrent quote request per row that lacks a
// cached quote list and joins them all before returning. Rows that already
// hold quotes are skipped, so a second run over a fully-quoted batch issues
// zero requests and disturbs no selection. Results merge by row id, so rows
// deleted mid-flight absorb their late response as a no-op.
func (o *Orchestrator) CalculateAll(ctx context.Context, batch *Batch) CalculateResult {
	targets := batch.QuoteTargets()
	result := CalculateResult{
		Requested: len(targets),
		Skipped:   batch.Len() - len(targets),
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		failed    int
	)

	for _, target := range targets {
		wg.Add(1)
		go func(row ShipmentRow) {
			defer wg.Done()

			quotes, err := o.quoter.TryCalculate(ctx, upstream.TryCalculateRequest{
				TrackingNumber: row.TrackingNumber,
				Area:           string(row.Region),
				Qty:            row.Qty,
				Weight:         row.Weight,
				DutyCode:       row.DutyCode,
				Overweight:     row.Overweight,
				Port:           row.Port,
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				logrus.WithField("tracking_number", row.TrackingNumber).
					Warnf("quote request failed: %v", err)
				batch.SetQuoteError(row.ID, err.Error())
				return
			}
			succeeded++
			batch.SetQuotes(row.ID, NormalizeQuotes(quotes))
		}(target)
	}

	wg.Wait()
	result.Succeeded = succeeded
	result.Failed = failed
	return result
}
