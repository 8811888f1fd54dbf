package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	jsoniter "github.com/json-iterator/go"
)

var jsonit = jsoniter.ConfigCompatibleWithStandardLibrary

// BackendError is a business failure reported inside a 200 response
// (envelope code != 200).
type BackendError struct {
	Code    int
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error %d: %s", e.Code, e.Message)
}

// envelope is the response convention of the pricing backend:
// {"code":200,"msg":"...","data":...} on success.
type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// Client talks to the pricing/booking backend. Timeouts are left to the
// http.Client; retry is always user-initiated, never automatic.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// ProductList lists the carrier channels bookable in a region.
func (c *Client) ProductList(ctx context.Context, area string) ([]ChannelProduct, error) {
	u := c.baseURL + "/order/product_list?area=" + url.QueryEscape(area)

	var products []ChannelProduct
	if err := c.call(ctx, http.MethodGet, u, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// NumberData fetches the physical attributes of one tracking number.
func (c *Client) NumberData(ctx context.Context, worknum string) (*NumberData, error) {
	u := c.baseURL + "/order/get_a_number_data_new?worknum=" + url.QueryEscape(worknum)

	var data NumberData
	if err := c.call(ctx, http.MethodPost, u, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// TryCalculate requests quotes for one shipment in the batch flow.
func (c *Client) TryCalculate(ctx context.Context, req TryCalculateRequest) ([]CarrierQuote, error) {
	var quotes []CarrierQuote
	if err := c.call(ctx, http.MethodPost, c.baseURL+"/order/try_calculate_new", req, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

// TryCalculateHand requests quotes for one manually-entered shipment.
func (c *Client) TryCalculateHand(ctx context.Context, req HandCalculateRequest) ([]CarrierQuote, error) {
	var quotes []CarrierQuote
	if err := c.call(ctx, http.MethodPost, c.baseURL+"/order/try_calculate_hand", req, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

// SubmitOrder books every item in one call.
func (c *Client) SubmitOrder(ctx context.Context, req BookingRequest) error {
	return c.call(ctx, http.MethodPost, c.baseURL+"/order/TuffyOrder", req, nil)
}

func (c *Client) call(ctx context.Context, method, url string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := jsonit.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return &BackendError{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	var env envelope
	if err := jsonit.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}
	if env.Code != 200 {
		return &BackendError{Code: env.Code, Message: env.Msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := jsonit.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}
