package services

import (
	"context"

	"freight-app/services/upstream"

	"github.com/sirupsen/logrus"
)

// DetailFetcher is the slice of the upstream client the reconciler needs.
type DetailFetcher interface {
	NumberData(ctx context.Context, worknum string) (*upstream.NumberData, error)
}

// Reconciler admits uploaded rows into a batch and fills in their physical
// attributes asynchronously. One fetch per row; a failed fetch marks only
// its own row retryable.
type Reconciler struct {
	fetcher DetailFetcher
}

func NewReconciler(fetcher DetailFetcher) *Reconciler {
	return &Reconciler{fetcher: fetcher}
}

// IngestResult reports what an upload did.
type IngestResult struct {
	Added    int      `json:"added"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings"`
}

// Ingest deduplicates candidates against the batch and schedules a detail
// fetch for every admitted row. The fetches are fire-and-forget: they merge
// by row id when they land, which is a no-op if the row is gone by then.
func (r *Reconciler) Ingest(batch *Batch, candidates []RowCandidate) IngestResult {
	added, warnings := batch.AddRows(candidates)

	for _, row := range added {
		batch.MarkDetailLoading(row.ID)
		go r.fetch(batch, row.ID, row.TrackingNumber)
	}

	return IngestResult{
		Added:    len(added),
		Skipped:  len(candidates) - len(added),
		Warnings: warnings,
	}
}

// RetryDetail re-runs the detail fetch for one failed row.
func (r *Reconciler) RetryDetail(batch *Batch, rowID string) bool {
	row, ok := batch.Row(rowID)
	if !ok || row.State != RowDetailFailed {
		return false
	}
	batch.MarkDetailLoading(rowID)
	go r.fetch(batch, rowID, row.TrackingNumber)
	return true
}

func (r *Reconciler) fetch(batch *Batch, rowID, trackingNumber string) {
	data, err := r.fetcher.NumberData(context.Background(), trackingNumber)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"tracking_number": trackingNumber,
			"row_id":          rowID,
		}).Warnf("detail fetch failed: %v", err)
		batch.SetDetailError(rowID, err.Error())
		return
	}
	batch.SetDetail(rowID, data)
}
