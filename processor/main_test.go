package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"freight-app/services/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "SHIPMENT_test.csv")
	content := "tracking,region,qty,weight,duty,port\n" + rows
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestProcessShipmentCSVSendsRawTrackingNumber(t *testing.T) {
	var worknums []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req upstream.TryCalculateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		worknums = append(worknums, req.TrackingNumber)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"code": 200,
			"data": []upstream.CarrierQuote{{ChannelName: "economy", TotalFee: 30, Supplier: "acme"}},
		})
	}))
	defer server.Close()

	path := writeManifest(t, "trk-001-ab ,US-EAST,2,3.5,D1,LAX\n")
	results, err := processShipmentCSV(upstream.NewClient(server.URL), path)

	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	// The backend gets the value as written (trimmed), never the dedupe key.
	require.Len(t, worknums, 1)
	assert.Equal(t, "trk-001-ab", worknums[0])
	assert.Equal(t, "trk-001-ab", results[0].Row.TrackingNumber)
	assert.Equal(t, "economy", results[0].ChannelName)
}

func TestProcessShipmentCSVDedupesOnNormalizedKey(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code": 200,
			"data": []upstream.CarrierQuote{{ChannelName: "economy", TotalFee: 30}},
		})
	}))
	defer server.Close()

	// Same shipment twice: different casing and a suffix after the dash.
	path := writeManifest(t, "TRK001-AB,US-EAST,1,1.0,D1,LAX\ntrk001-CD,US-EAST,1,1.0,D1,LAX\n")
	results, err := processShipmentCSV(upstream.NewClient(server.URL), path)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "TRK001-AB", results[0].Row.TrackingNumber)
}
