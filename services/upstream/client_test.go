package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryCalculateDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/order/try_calculate_new", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req TryCalculateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "TRK1", req.TrackingNumber)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"code": 200,
			"msg":  "ok",
			"data": []CarrierQuote{
				{ChannelName: "chan-a", TotalFee: 42.5, Supplier: "sup"},
				{ChannelName: "", TotalFee: -1},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	quotes, err := client.TryCalculate(context.Background(), TryCalculateRequest{TrackingNumber: "TRK1", Area: "US-EAST"})

	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "chan-a", quotes[0].ChannelName)
	assert.Equal(t, 42.5, quotes[0].TotalFee)
	assert.True(t, quotes[1].Sentinel())
}

func TestEnvelopeBusinessErrorBecomesBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code": 500,
			"msg":  "worknum not found",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.NumberData(context.Background(), "MISSING")

	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, 500, backendErr.Code)
	assert.Equal(t, "worknum not found", backendErr.Message)
}

func TestHTTPFailureBecomesBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ProductList(context.Background(), "US-EAST")

	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusBadGateway, backendErr.Code)
}

func TestNumberDataSendsWorknumQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/order/get_a_number_data_new", r.URL.Path)
		assert.Equal(t, "TRK9", r.URL.Query().Get("worknum"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"code": 200,
			"data": NumberData{TrackingNumber: "TRK9", Qty: 4, Weight: 7.5, Port: "JFK"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	data, err := client.NumberData(context.Background(), "TRK9")

	require.NoError(t, err)
	assert.Equal(t, 4, data.Qty)
	assert.Equal(t, "JFK", data.Port)
}

func TestSubmitOrderPostsBooking(t *testing.T) {
	var got BookingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/order/TuffyOrder", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]interface{}{"code": 200})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.SubmitOrder(context.Background(), BookingRequest{Items: []BookingItem{
		{TrackingNumber: "TRK1", ChannelName: "chan", TotalFee: 30},
	}})

	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "TRK1", got.Items[0].TrackingNumber)
}

func TestContextCancellationAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL)
	_, err := client.ProductList(ctx, "US-EAST")
	assert.Error(t, err)
}
