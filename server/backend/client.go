// Package backend is the single choke point for talking to the uRight REST
// backend. Transport failures and non-2xx statuses are both normalized into a
// Response with a user-facing Error string; Call never returns a Go error for
// an ordinary failed request.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cyclopcam/logs"
)

// The two generic messages the UI shows when the backend gives us nothing better.
const (
	ErrConnection = "Erro de conexão. Tente novamente."
	ErrGeneric    = "Erro ao processar a requisição"
)

const DefaultTimeout = 10 * time.Second

type Client struct {
	Log     logs.Log
	BaseURL string

	token   string
	timeout time.Duration
	client  *http.Client
}

func NewClient(log logs.Log, baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		Log:     log,
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		timeout: timeout,
		client:  &http.Client{},
	}
}

// Response is the normalized result of a backend call.
// Exactly one of Data or Error is meaningful: Error == "" means success.
type Response struct {
	Status int
	Data   json.RawMessage
	Error  string
}

func (r *Response) Ok() bool {
	return r.Error == ""
}

func (r *Response) Decode(into any) error {
	return json.Unmarshal(r.Data, into)
}

// Used to pull a human message out of a backend error body.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) Get(ctx context.Context, endpoint string) *Response {
	return c.Call(ctx, "GET", endpoint, nil)
}

func (c *Client) Post(ctx context.Context, endpoint string, body any) *Response {
	return c.Call(ctx, "POST", endpoint, body)
}

func (c *Client) Put(ctx context.Context, endpoint string, body any) *Response {
	return c.Call(ctx, "PUT", endpoint, body)
}

func (c *Client) Delete(ctx context.Context, endpoint string) *Response {
	return c.Call(ctx, "DELETE", endpoint, nil)
}

// Call performs a JSON request against the backend.
// body may be nil, a json.RawMessage (forwarded verbatim), or any marshalable value.
func (c *Client) Call(ctx context.Context, method, endpoint string, body any) *Response {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case json.RawMessage:
		reader = bytes.NewReader(b)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		encoded, err := json.Marshal(body)
		if err != nil {
			c.Log.Errorf("Failed to marshal request body for %v %v: %v", method, endpoint, err)
			return &Response{Status: 0, Error: ErrGeneric}
		}
		reader = bytes.NewReader(encoded)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	resp, err := c.do(ctx, method, endpoint, reader, "application/json")
	if err != nil {
		c.Log.Warnf("Backend unreachable (%v %v): %v", method, endpoint, err)
		return &Response{Status: 0, Error: ErrConnection}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Log.Warnf("Failed reading backend response (%v %v): %v", method, endpoint, err)
		return &Response{Status: resp.StatusCode, Error: ErrConnection}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := errorBody{}
		json.Unmarshal(raw, &msg)
		errMsg := msg.Message
		if errMsg == "" {
			errMsg = msg.Error
		}
		if errMsg == "" {
			errMsg = ErrGeneric
		}
		return &Response{Status: resp.StatusCode, Error: errMsg}
	}

	return &Response{Status: resp.StatusCode, Data: raw}
}

// Forward streams a backend response directly to an HTTP client, honouring the
// backend's declared content type instead of force-parsing it. This is how
// file exports (CSV etc.) travel through the gateway.
func (c *Client) Forward(w http.ResponseWriter, ctx context.Context, method, endpoint string, body io.Reader, contentType string) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	resp, err := c.do(ctx, method, endpoint, body, contentType)
	if err != nil {
		c.Log.Warnf("Backend unreachable (%v %v): %v", method, endpoint, err)
		http.Error(w, ErrConnection, http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		w.Header().Set("Content-Disposition", cd)
	}
	w.WriteHeader(resp.StatusCode)
	io.Copy(w, resp.Body)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, body)
	if err != nil {
		return nil, err
	}
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.client.Do(req)
}
