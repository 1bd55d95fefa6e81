package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/rohanthewiz/serr"
	"golang.org/x/time/rate"
)

// GenericErrorMessage is used when a failed response carries no "error" field.
const GenericErrorMessage = "Request failed"

// APIError is a non-2xx response from the shop back-end. Its message is the
// server's "error" field verbatim.
type APIError struct {
	Status  int
	Message string // the "error" field, or GenericErrorMessage
	Detail  string // the optional "message" field
}

func (e *APIError) Error() string {
	return e.Message
}

// UserMessage prefers the human readable detail over the error code.
// The buy endpoint, for example, answers {"error":"not_enough_balance","message":"Not enough balance. Missing $3.20"}.
func (e *APIError) UserMessage() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Message
}

// Options configures a Client.
type Options struct {
	BaseURL        string
	Timeout        time.Duration
	RequestsPerSec float64
	Burst          int
}

// Client calls the shop back-end. Every JSON call goes through one wrapper
// that normalises failures into *APIError. Each client owns a cookie jar, so
// one client per shopper session carries that shopper's back-end login.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient builds a client with its own cookie jar.
func NewClient(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, serr.Wrap(err, "invalid shop base url")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, serr.Wrap(err, "failed to create cookie jar")
	}

	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	limit := rate.Inf
	if opts.RequestsPerSec > 0 {
		limit = rate.Limit(opts.RequestsPerSec)
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
			Jar:     jar,
		},
		limiter: rate.NewLimiter(limit, opts.Burst),
	}, nil
}

// BaseURL returns the configured back-end root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + path
}

// PostJSON sends in as JSON to path and decodes the response into out (may be nil).
func (c *Client) PostJSON(ctx context.Context, path string, in, out interface{}) error {
	if in == nil {
		in = struct{}{}
	}
	body, err := json.Marshal(in)
	if err != nil {
		return serr.Wrap(err, "failed to marshal request body")
	}
	return c.doJSON(ctx, http.MethodPost, path, bytes.NewReader(body), out)
}

// GetJSON fetches path and decodes the response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return serr.Wrap(err, "rate limiter wait failed")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return serr.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return serr.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return serr.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return serr.Wrap(err, fmt.Sprintf("failed to decode response from %s", path))
	}
	return nil
}

// decodeAPIError extracts {"error","message"} from a failed response body.
func decodeAPIError(status int, raw []byte) *APIError {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	apiErr := &APIError{Status: status, Message: GenericErrorMessage}

	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Error != "" {
			apiErr.Message = payload.Error
		}
		apiErr.Detail = payload.Message
	}
	return apiErr
}
