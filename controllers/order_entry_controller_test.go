package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"sync"
	"testing"

	"freight-app/controllers/idgen"
	"freight-app/models"
	"freight-app/services"
	"freight-app/services/upstream"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	idgen.Init()
	os.Exit(m.Run())
}

func selectTestApp(ctrl *OrderEntryController) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("sessionID", c.Get("X-Session"))
		return c.Next()
	})
	app.Post("/select", ctrl.SelectQuote)
	return app
}

func seedQuotedRow(t *testing.T, b *services.Batch, trackingNumber string) string {
	t.Helper()
	added, warnings := b.AddRows([]services.RowCandidate{{
		TrackingNumber: trackingNumber,
		Region:         models.RegionUSEast,
	}})
	require.Empty(t, warnings)
	require.Len(t, added, 1)
	id := added[0].ID

	require.True(t, b.SetDetail(id, &upstream.NumberData{
		TrackingNumber: trackingNumber,
		Qty:            1,
		Weight:         2.5,
	}))
	require.True(t, b.SetQuotes(id, []upstream.CarrierQuote{
		{ChannelName: "economy", TotalFee: 30},
		{ChannelName: "express", TotalFee: 55},
	}))
	return id
}

// Two sessions hammering /select at the same time must each land on their
// own batch: a request body must never leak into another request.
func TestSelectQuoteConcurrentSessionsDoNotCross(t *testing.T) {
	ctrl := NewOrderEntryController(nil)
	app := selectTestApp(ctrl)

	idA := seedQuotedRow(t, ctrl.store.Get("session-a"), "TRKA")
	idB := seedQuotedRow(t, ctrl.store.Get("session-b"), "TRKB")

	post := func(session, rowID string, quoteIndex int) {
		body := fmt.Sprintf(`{"row_id":%q,"quote_index":%d}`, rowID, quoteIndex)
		req, err := http.NewRequest(http.MethodPost, "/select", bytes.NewReader([]byte(body)))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Session", session)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			post("session-a", idA, 0)
		}()
		go func() {
			defer wg.Done()
			post("session-b", idB, 1)
		}()
	}
	wg.Wait()

	rowA, ok := ctrl.store.Get("session-a").Row(idA)
	require.True(t, ok)
	assert.True(t, rowA.Quotes[0].Selected)
	assert.False(t, rowA.Quotes[1].Selected)
	assert.Equal(t, "economy", rowA.DisplayChannelName)

	rowB, ok := ctrl.store.Get("session-b").Row(idB)
	require.True(t, ok)
	assert.False(t, rowB.Quotes[0].Selected)
	assert.True(t, rowB.Quotes[1].Selected)
	assert.Equal(t, "express", rowB.DisplayChannelName)
}
