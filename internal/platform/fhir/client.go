package fhir

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/errs"
)

const (
	MIMEFHIRJSON = "application/fhir+json"

	defaultTimeout = 15 * time.Second
	defaultBackoff = 200 * time.Millisecond

	// maxResponseBytes caps one response body. A searchset page of a few
	// hundred resources is well under a megabyte.
	maxResponseBytes = 32 << 20
)

// Client reads resources from a FHIR R4 REST server.
type Client struct {
	baseURL    string
	http       *http.Client
	maxRetries int
	backoff    time.Duration
	maxBody    int64
	log        zerolog.Logger
}

type ClientOption func(*Client)

// WithRetries sets how many times a transport error or 5xx is retried.
func WithRetries(n int) ClientOption {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithBackoff sets the initial delay between retries. It doubles per attempt.
func WithBackoff(d time.Duration) ClientOption {
	return func(c *Client) { c.backoff = d }
}

func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) { c.log = l }
}

func NewClient(baseURL string, timeout time.Duration, opts ...ClientOption) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       &http.Client{Timeout: timeout},
		maxRetries: 2,
		backoff:    defaultBackoff,
		maxBody:    maxResponseBytes,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Search runs GET /{resourceType}?{params} and decodes the Bundle.
func (c *Client) Search(ctx context.Context, resourceType string, params url.Values) (*Bundle, error) {
	target := c.baseURL + "/" + resourceType
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	body, status, err := c.get(ctx, target)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, c.outcomeError(status, body, "search %s", resourceType)
	}
	var bundle Bundle
	if err := json.Unmarshal(body, &bundle); err != nil {
		return nil, errs.Upstream(err, "decode %s bundle", resourceType)
	}
	return &bundle, nil
}

// Read runs GET /{resourceType}/{id}. A 404 maps to errs.ErrNotFound.
func (c *Client) Read(ctx context.Context, resourceType, id string) (map[string]interface{}, error) {
	target := c.baseURL + "/" + resourceType + "/" + url.PathEscape(id)
	body, status, err := c.get(ctx, target)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound || status == http.StatusGone {
		return nil, errs.NotFound("%s %s not found", resourceType, id)
	}
	if status < 200 || status > 299 {
		return nil, c.outcomeError(status, body, "read %s/%s", resourceType, id)
	}
	var resource map[string]interface{}
	if err := json.Unmarshal(body, &resource); err != nil {
		return nil, errs.Upstream(err, "decode %s/%s", resourceType, id)
	}
	return resource, nil
}

// get performs the request with retries. Transport errors and 5xx responses
// are retried; the last status and body are returned otherwise.
func (c *Client) get(ctx context.Context, target string) ([]byte, int, error) {
	delay := c.backoff
	for attempt := 0; ; attempt++ {
		body, status, err := c.do(ctx, target)
		if err == nil && status < 500 {
			return body, status, nil
		}
		if attempt >= c.maxRetries || ctx.Err() != nil {
			if err != nil {
				return nil, 0, errs.Upstream(err, "GET %s", target)
			}
			return body, status, nil
		}
		c.log.Warn().Str("url", target).Int("status", status).Err(err).
			Int("attempt", attempt+1).Msg("fhir request failed, retrying")
		select {
		case <-ctx.Done():
			return nil, 0, errs.Upstream(ctx.Err(), "GET %s", target)
		case <-time.After(delay):
		}
		delay *= 2
	}
}

func (c *Client) do(ctx context.Context, target string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", MIMEFHIRJSON)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, 0, err
	}
	if int64(len(body)) > c.maxBody {
		return nil, 0, fmt.Errorf("response body exceeds %d bytes", c.maxBody)
	}
	c.log.Debug().Str("url", target).Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).Msg("fhir request")
	return body, resp.StatusCode, nil
}

func (c *Client) outcomeError(status int, body []byte, format string, args ...interface{}) error {
	cause := fmt.Errorf("status %d", status)
	var outcome OperationOutcome
	if json.Unmarshal(body, &outcome) == nil && outcome.ResourceType == "OperationOutcome" {
		if s := outcome.Summary(); s != "" {
			cause = fmt.Errorf("status %d: %s", status, s)
		}
	}
	c.log.Warn().Int("status", status).Str("error", cause.Error()).Msg("fhir request rejected")
	return errs.Upstream(cause, format, args...)
}
