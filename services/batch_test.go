package services

import (
	"os"
	"testing"

	"freight-app/controllers/idgen"
	"freight-app/models"
	"freight-app/services/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	idgen.Init()
	os.Exit(m.Run())
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "A123", NormalizeKey("a123"))
	assert.Equal(t, "A123", NormalizeKey("  A123  "))
	assert.Equal(t, "A123", NormalizeKey("A123-1"))
	assert.Equal(t, "A123", NormalizeKey("a123-2-3"))
	assert.Equal(t, "", NormalizeKey("   "))
}

func TestAddRowsDeduplicates(t *testing.T) {
	b := NewBatch()

	added, warnings := b.AddRows([]RowCandidate{
		{TrackingNumber: "TRK100", Region: models.RegionUSEast},
		{TrackingNumber: "trk100-1", Region: models.RegionUSEast},
		{TrackingNumber: "TRK200", Region: models.RegionUSWest},
		{TrackingNumber: "", Region: models.RegionUSWest},
	})

	assert.Len(t, added, 2)
	assert.Len(t, warnings, 2)
	assert.Equal(t, 2, b.Len())
}

func TestAddRowsDeduplicatesAgainstExistingBatch(t *testing.T) {
	b := NewBatch()
	b.AddRows([]RowCandidate{{TrackingNumber: "TRK100", Region: models.RegionUSEast}})

	added, warnings := b.AddRows([]RowCandidate{{TrackingNumber: "TRK100-9", Region: models.RegionUSEast}})

	assert.Empty(t, added)
	assert.Len(t, warnings, 1)
	assert.Equal(t, 1, b.Len())
}

func TestSelectQuoteRadioSemantics(t *testing.T) {
	b := NewBatch()
	added, _ := b.AddRows([]RowCandidate{{TrackingNumber: "TRK1", Region: models.RegionUSCentral}})
	require.Len(t, added, 1)
	id := added[0].ID

	b.SetQuotes(id, []upstream.CarrierQuote{
		quote("a", 30),
		quote("b", 50),
	})

	require.NoError(t, b.SelectQuote(id, 0))
	require.NoError(t, b.SelectQuote(id, 1))

	row, ok := b.Row(id)
	require.True(t, ok)
	assert.False(t, row.Quotes[0].Selected)
	assert.True(t, row.Quotes[1].Selected)
	assert.Equal(t, "b", row.DisplayChannelName)
	require.NotNil(t, row.DisplayPrice)
	assert.Equal(t, 50.0, *row.DisplayPrice)
}

func TestSelectQuoteClear(t *testing.T) {
	b := NewBatch()
	added, _ := b.AddRows([]RowCandidate{{TrackingNumber: "TRK1", Region: models.RegionUSCentral}})
	id := added[0].ID

	b.SetQuotes(id, []upstream.CarrierQuote{quote("a", 30)})
	require.NoError(t, b.SelectQuote(id, 0))
	require.NoError(t, b.SelectQuote(id, -1))

	row, _ := b.Row(id)
	assert.Equal(t, "", row.DisplayChannelName)
	assert.Nil(t, row.DisplayPrice)
	assert.False(t, row.Quotes[0].Selected)
}

func TestSetQuotesDropsBackendSelectedFlags(t *testing.T) {
	b := NewBatch()
	added, _ := b.AddRows([]RowCandidate{{TrackingNumber: "TRK1", Region: models.RegionUSCentral}})
	id := added[0].ID

	// A response carrying selected=true must not seed a selection.
	b.SetQuotes(id, []upstream.CarrierQuote{
		{ChannelName: "a", TotalFee: 30, Selected: true},
		{ChannelName: "b", TotalFee: 50, Selected: true},
	})

	row, ok := b.Row(id)
	require.True(t, ok)
	assert.False(t, row.Quotes[0].Selected)
	assert.False(t, row.Quotes[1].Selected)
	assert.Equal(t, "", row.DisplayChannelName)
	assert.Empty(t, b.SelectedItems())
}

func TestSelectQuoteOutOfRange(t *testing.T) {
	b := NewBatch()
	added, _ := b.AddRows([]RowCandidate{{TrackingNumber: "TRK1", Region: models.RegionUSCentral}})
	id := added[0].ID

	b.SetQuotes(id, []upstream.CarrierQuote{quote("a", 30)})
	assert.Error(t, b.SelectQuote(id, 5))
	assert.Error(t, b.SelectQuote("no-such-row", 0))
}

func TestMergeAfterRemoveIsNoOp(t *testing.T) {
	b := NewBatch()
	added, _ := b.AddRows([]RowCandidate{
		{TrackingNumber: "TRK1", Region: models.RegionUSCentral},
		{TrackingNumber: "TRK2", Region: models.RegionUSCentral},
	})
	gone, kept := added[0].ID, added[1].ID

	require.True(t, b.RemoveRow(gone))

	// late responses for the deleted row must change nothing
	assert.False(t, b.SetQuotes(gone, []upstream.CarrierQuote{quote("a", 10)}))
	assert.False(t, b.SetDetail(gone, &upstream.NumberData{Qty: 1}))
	assert.False(t, b.SetQuoteError(gone, "boom"))

	assert.Equal(t, 1, b.Len())
	row, ok := b.Row(kept)
	require.True(t, ok)
	assert.Equal(t, "TRK2", row.TrackingNumber)
}

func TestSetDetailTransitions(t *testing.T) {
	b := NewBatch()
	added, _ := b.AddRows([]RowCandidate{{TrackingNumber: "TRK1", Region: models.RegionUSEast}})
	id := added[0].ID

	require.True(t, b.MarkDetailLoading(id))
	row, _ := b.Row(id)
	assert.Equal(t, RowDetailLoading, row.State)

	require.True(t, b.SetDetail(id, &upstream.NumberData{
		Qty: 3, Weight: 12.5, DutyCode: "D1", Overweight: true, Port: "LAX",
	}))
	row, _ = b.Row(id)
	assert.Equal(t, RowDetailReady, row.State)
	assert.Equal(t, 3, row.Qty)
	assert.Equal(t, 12.5, row.Weight)
	assert.True(t, row.Overweight)
	assert.Equal(t, "LAX", row.Port)

	require.True(t, b.SetDetailError(id, "timeout"))
	row, _ = b.Row(id)
	assert.Equal(t, RowDetailFailed, row.State)
	assert.Equal(t, "timeout", row.DetailErr)
}

func TestQuoteTargetsSkipsQuotedRows(t *testing.T) {
	b := NewBatch()
	added, _ := b.AddRows([]RowCandidate{
		{TrackingNumber: "TRK1", Region: models.RegionUSEast},
		{TrackingNumber: "TRK2", Region: models.RegionUSEast},
		{TrackingNumber: "TRK3", Region: models.RegionUSEast},
	})

	b.SetDetail(added[0].ID, &upstream.NumberData{Qty: 1})
	b.SetDetail(added[1].ID, &upstream.NumberData{Qty: 1})
	// third row still UPLOADED: not eligible

	b.SetQuotes(added[0].ID, []upstream.CarrierQuote{quote("a", 10)})

	targets := b.QuoteTargets()
	require.Len(t, targets, 1)
	assert.Equal(t, added[1].ID, targets[0].ID)
}

func TestQuoteTargetsIncludesFailedRows(t *testing.T) {
	b := NewBatch()
	added, _ := b.AddRows([]RowCandidate{{TrackingNumber: "TRK1", Region: models.RegionUSEast}})
	id := added[0].ID

	b.SetDetail(id, &upstream.NumberData{Qty: 1})
	b.SetQuoteError(id, "boom")

	targets := b.QuoteTargets()
	require.Len(t, targets, 1)
	assert.Equal(t, id, targets[0].ID)
}

func TestRowsReturnsDeepSnapshot(t *testing.T) {
	b := NewBatch()
	added, _ := b.AddRows([]RowCandidate{{TrackingNumber: "TRK1", Region: models.RegionUSEast}})
	id := added[0].ID
	b.SetQuotes(id, []upstream.CarrierQuote{quote("a", 10)})

	snap := b.Rows()
	snap[0].Quotes[0].Selected = true

	row, _ := b.Row(id)
	assert.False(t, row.Quotes[0].Selected)
}

func TestSelectedItems(t *testing.T) {
	b := NewBatch()
	added, _ := b.AddRows([]RowCandidate{
		{TrackingNumber: "TRK1", Region: models.RegionUSEast},
		{TrackingNumber: "TRK2", Region: models.RegionUSWest},
	})

	b.SetQuotes(added[0].ID, []upstream.CarrierQuote{quote("a", 10), quote("b", 20)})
	b.SetQuotes(added[1].ID, []upstream.CarrierQuote{quote("c", 30)})
	require.NoError(t, b.SelectQuote(added[0].ID, 1))

	items := b.SelectedItems()
	require.Len(t, items, 1)
	assert.Equal(t, "TRK1", items[0].Row.TrackingNumber)
	assert.Equal(t, "b", items[0].Quote.ChannelName)
}

func TestBatchStorePerSession(t *testing.T) {
	store := NewBatchStore()

	a := store.Get("session-a")
	b := store.Get("session-b")
	assert.NotSame(t, a, b)
	assert.Same(t, a, store.Get("session-a"))

	a.AddRows([]RowCandidate{{TrackingNumber: "TRK1", Region: models.RegionUSEast}})
	assert.Equal(t, 0, b.Len())

	store.Drop("session-a")
	assert.Equal(t, 0, store.Get("session-a").Len())
}
