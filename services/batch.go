package services

import (
	"fmt"
	"strings"
	"sync"

	"freight-app/controllers/idgen"
	"freight-app/models"
	"freight-app/services/upstream"
)

// RowState tracks a shipment row through the rate-shopping workflow:
// Uploaded -> DetailLoading -> DetailReady | DetailFailed -> QuoteReady,
// with QuoteFailed as the retryable branch of the quote step.
type RowState string

const (
	RowUploaded      RowState = "UPLOADED"
	RowDetailLoading RowState = "DETAIL_LOADING"
	RowDetailReady   RowState = "DETAIL_READY"
	RowDetailFailed  RowState = "DETAIL_FAILED"
	RowQuoteReady    RowState = "QUOTE_READY"
	RowQuoteFailed   RowState = "QUOTE_FAILED"
)

// ShipmentRow is one row of the batch table. ID is generated locally and is
// the only merge key for late-arriving detail/quote responses; it is never
// sent upstream. The quote list is the single owner of selection state —
// the Display* summary fields are recomputed from it, never written directly.
type ShipmentRow struct {
	ID             string        `json:"id"`
	TrackingNumber string        `json:"tracking_number"`
	Region         models.Region `json:"region"`

	Qty        int     `json:"qty"`
	Weight     float64 `json:"weight"`
	DutyCode   string  `json:"duty_code"`
	Overweight bool    `json:"overweight_flag"`
	Port       string  `json:"port"`

	State     RowState `json:"state"`
	DetailErr string   `json:"detail_err,omitempty"`
	QuoteErr  string   `json:"quote_err,omitempty"`

	Quotes []upstream.CarrierQuote `json:"quote_results,omitempty"`

	DisplayChannelName string   `json:"display_channel_name"`
	DisplayPrice       *float64 `json:"display_price"`
}

func (r *ShipmentRow) selectedIndex() int {
	for i, q := range r.Quotes {
		if q.Selected {
			return i
		}
	}
	return -1
}

// recomputeSummary derives the parent-row display fields from the currently
// selected quote. Blank when nothing is selected.
func (r *ShipmentRow) recomputeSummary() {
	idx := r.selectedIndex()
	if idx < 0 {
		r.DisplayChannelName = ""
		r.DisplayPrice = nil
		return
	}
	q := r.Quotes[idx]
	r.DisplayChannelName = q.ChannelName
	fee := q.TotalFee
	r.DisplayPrice = &fee
}

// NormalizeKey reduces a tracking number to the business key used for
// duplicate detection: upper-cased, trimmed, any -suffix stripped so that
// A123-1 and A123-2 collide.
func NormalizeKey(trackingNumber string) string {
	key := strings.ToUpper(strings.TrimSpace(trackingNumber))
	key, _, _ = strings.Cut(key, "-")
	return key
}

// RowCandidate is a parsed upload row before it is admitted to the batch.
type RowCandidate struct {
	TrackingNumber string
	Region         models.Region
}

// Batch is one user's in-progress order-entry table. All mutation goes
// through its methods; concurrent in-flight requests merge by row id under
// the lock, so a response for a row deleted meanwhile is a no-op.
type Batch struct {
	mu   sync.Mutex
	rows []*ShipmentRow
}

func NewBatch() *Batch {
	return &Batch{}
}

// AddRows admits candidates whose normalized tracking number is not already
// present (in the batch or earlier in the same upload). Duplicates are
// skipped with a warning, never an error: the rest of the upload proceeds.
func (b *Batch) AddRows(candidates []RowCandidate) (added []*ShipmentRow, warnings []string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	seen := make(map[string]bool, len(b.rows))
	for _, row := range b.rows {
		seen[NormalizeKey(row.TrackingNumber)] = true
	}

	for _, cand := range candidates {
		key := NormalizeKey(cand.TrackingNumber)
		if key == "" {
			warnings = append(warnings, "empty tracking number skipped")
			continue
		}
		if seen[key] {
			warnings = append(warnings, fmt.Sprintf("duplicate tracking number %s skipped", cand.TrackingNumber))
			continue
		}
		seen[key] = true

		row := &ShipmentRow{
			ID:             idgen.RowID(),
			TrackingNumber: strings.TrimSpace(cand.TrackingNumber),
			Region:         cand.Region,
			State:          RowUploaded,
		}
		b.rows = append(b.rows, row)
		added = append(added, row)
	}
	return added, warnings
}

// Rows returns a snapshot copy of every row. Quote slices are copied too so
// callers cannot bypass SelectQuote.
func (b *Batch) Rows() []ShipmentRow {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]ShipmentRow, 0, len(b.rows))
	for _, row := range b.rows {
		snap := *row
		snap.Quotes = append([]upstream.CarrierQuote(nil), row.Quotes...)
		out = append(out, snap)
	}
	return out
}

// Row returns a snapshot of one row by id.
func (b *Batch) Row(id string) (ShipmentRow, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	row := b.find(id)
	if row == nil {
		return ShipmentRow{}, false
	}
	snap := *row
	snap.Quotes = append([]upstream.CarrierQuote(nil), row.Quotes...)
	return snap, true
}

func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.rows)
}

// RemoveRow deletes a row. In-flight requests for it are not cancelled;
// their merge simply finds no row and does nothing.
func (b *Batch) RemoveRow(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, row := range b.rows {
		if row.ID == id {
			b.rows = append(b.rows[:i], b.rows[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops every row. Fresh-start postcondition after a successful submit.
func (b *Batch) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rows = nil
}

// MarkDetailLoading flips a row into the detail-fetch state.
func (b *Batch) MarkDetailLoading(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	row := b.find(id)
	if row == nil {
		return false
	}
	row.State = RowDetailLoading
	row.DetailErr = ""
	return true
}

// SetDetail merges a detail-fetch result into the row identified by id,
// touching only the physical attribute fields. Returns false (no-op) when
// the row was deleted while the request was in flight.
func (b *Batch) SetDetail(id string, data *upstream.NumberData) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	row := b.find(id)
	if row == nil {
		return false
	}
	row.Qty = data.Qty
	row.Weight = data.Weight
	row.DutyCode = data.DutyCode
	row.Overweight = data.Overweight
	row.Port = data.Port
	row.State = RowDetailReady
	row.DetailErr = ""
	return true
}

// SetDetailError marks the row retryable in place.
func (b *Batch) SetDetailError(id string, msg string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	row := b.find(id)
	if row == nil {
		return false
	}
	row.State = RowDetailFailed
	row.DetailErr = msg
	return true
}

// QuoteTargets snapshots the rows that still need a quote request: detail
// resolved, no cached quote list. Already-quoted rows are skipped so that
// re-running calculate-all is a no-op for them.
func (b *Batch) QuoteTargets() []ShipmentRow {
	b.mu.Lock()
	defer b.mu.Unlock()

	var targets []ShipmentRow
	for _, row := range b.rows {
		if len(row.Quotes) > 0 {
			continue
		}
		if row.State != RowDetailReady && row.State != RowQuoteFailed {
			continue
		}
		targets = append(targets, *row)
	}
	return targets
}

// SetQuotes merges a quote response into the row identified by id. Only the
// quote fields change; physical attributes and any concurrent edits to other
// rows are untouched. No-op when the row is gone.
func (b *Batch) SetQuotes(id string, quotes []upstream.CarrierQuote) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	row := b.find(id)
	if row == nil {
		return false
	}
	// Selected is client-side state; whatever the backend put there is noise
	// and could seed a row with more than one selection.
	merged := append([]upstream.CarrierQuote(nil), quotes...)
	for i := range merged {
		merged[i].Selected = false
	}
	row.Quotes = merged
	row.State = RowQuoteReady
	row.QuoteErr = ""
	row.recomputeSummary()
	return true
}

// SetQuoteError marks the quote step failed and retryable for this row only.
func (b *Batch) SetQuoteError(id string, msg string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	row := b.find(id)
	if row == nil {
		return false
	}
	row.State = RowQuoteFailed
	row.QuoteErr = msg
	return true
}

// SelectQuote selects one quote of a row with radio semantics: any previous
// selection on that row is cleared first. quoteIndex -1 clears the selection.
// Summary fields are recomputed synchronously before the call returns.
func (b *Batch) SelectQuote(id string, quoteIndex int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	row := b.find(id)
	if row == nil {
		return fmt.Errorf("row %s not found", id)
	}
	if quoteIndex >= len(row.Quotes) {
		return fmt.Errorf("quote index %d out of range", quoteIndex)
	}

	for i := range row.Quotes {
		row.Quotes[i].Selected = i == quoteIndex && quoteIndex >= 0
	}
	row.recomputeSummary()
	return nil
}

// SelectedItems returns, for every row with a selection, the row snapshot
// and its selected quote.
func (b *Batch) SelectedItems() []SelectedItem {
	b.mu.Lock()
	defer b.mu.Unlock()

	var items []SelectedItem
	for _, row := range b.rows {
		idx := row.selectedIndex()
		if idx < 0 {
			continue
		}
		snap := *row
		snap.Quotes = append([]upstream.CarrierQuote(nil), row.Quotes...)
		items = append(items, SelectedItem{Row: snap, Quote: row.Quotes[idx]})
	}
	return items
}

// SelectedItem pairs a row with its selected quote at snapshot time.
type SelectedItem struct {
	Row   ShipmentRow
	Quote upstream.CarrierQuote
}

// find must be called with the lock held.
func (b *Batch) find(id string) *ShipmentRow {
	for _, row := range b.rows {
		if row.ID == id {
			return row
		}
	}
	return nil
}
