package duckdns

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-cleanhttp"
	"golang.org/x/text/encoding/charmap"
)

// DefaultEndpoint is the fixed Duck DNS update endpoint.
const DefaultEndpoint = "https://www.duckdns.org/update"

// updateTimeout bounds the single network call per invocation.
// A timed-out call is abandoned and treated as a transport failure,
// never retried; the next attempt belongs to the next scheduled run.
const updateTimeout = 10 * time.Second

// Outcome classifies the provider's response text for one update attempt.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailure
	OutcomeIndeterminate
)

// Client performs Duck DNS updates for one set of credentials.
//
// It should be constructed with New.
type Client struct {
	creds      Credentials
	endpoint   string
	httpClient *http.Client
	logger     *Logger
}

// New returns a Client for the given credentials.
// Additional configuration options are WithLogger, UsingHTTPClient,
// and WithEndpoint.
func New(creds Credentials, options ...Option) (*Client, error) {
	if len(creds.Domains) == 0 {
		return nil, ErrDomainsMissing
	}
	if creds.Token == "" {
		return nil, ErrTokenMissing
	}
	c := &Client{
		creds:    creds,
		endpoint: DefaultEndpoint,
		logger:   discard,
	}
	for i, opt := range options {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("duckdns.New: option %d returned an error: %w", i, err)
		}
	}
	if c.httpClient == nil {
		hc := cleanhttp.DefaultClient()
		hc.Timeout = updateTimeout
		c.httpClient = hc
	}
	return c, nil
}

type Option func(*Client) error

// WithLogger sets the logger receiving the attempt's records.
// A nil logger discards them.
func WithLogger(logger *Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			logger = discard
		}
		c.logger = logger
		return nil
	}
}

// UsingHTTPClient replaces the default HTTP client.
// The caller is responsible for setting a timeout on the replacement.
func UsingHTTPClient(httpclient *http.Client) Option {
	return func(c *Client) error {
		if httpclient == nil {
			return nil
		}
		c.httpClient = httpclient
		return nil
	}
}

// WithEndpoint replaces the update endpoint URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) error {
		if _, err := url.Parse(endpoint); err != nil {
			return fmt.Errorf("error parsing endpoint URL: %w", err)
		}
		c.endpoint = endpoint
		return nil
	}
}

// Update performs one GET against the update endpoint and classifies the
// response text, writing exactly one terminal log record for the attempt.
//
// Transport failures (timeout, connection failure, non-2xx status) are
// returned as errors without a classification record; the caller decides the
// process status. There is exactly one attempt per call.
func (c *Client) Update(ctx context.Context) (Outcome, error) {
	domains := strings.Join(c.creds.Domains, ",")

	q := url.Values{}
	q.Set("domains", domains)
	q.Set("token", c.creds.Token)
	if c.creds.IP != "" {
		q.Set("ip", c.creds.IP)
	}

	c.logger.Info("Sending update request for domain(s): %s", domains)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return OutcomeIndeterminate, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return OutcomeIndeterminate, fmt.Errorf("update request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return OutcomeIndeterminate, fmt.Errorf("update request returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return OutcomeIndeterminate, fmt.Errorf("error reading response body: %w", err)
	}

	response := strings.TrimSpace(decodeBody(body))
	outcome := classify(response)
	switch outcome {
	case OutcomeFailure:
		c.logger.Warning("Duck DNS response indicates failure: %s", response)
	case OutcomeSuccess:
		c.logger.Success("Duck DNS updated. Response: %s", response)
	default:
		c.logger.Info("Duck DNS response: %s", response)
	}
	return outcome, nil
}

// classify maps the trimmed response text to an outcome.
// NOTOK contains OK as a substring,
// so the NOTOK check must run first.
func classify(response string) Outcome {
	switch {
	case strings.Contains(response, "NOTOK"):
		return OutcomeFailure
	case strings.Contains(response, "OK"):
		return OutcomeSuccess
	default:
		return OutcomeIndeterminate
	}
}

// decodeBody interprets the response as UTF-8,
// falling back to Windows-1252 for a body that isn't valid UTF-8.
func decodeBody(body []byte) string {
	if utf8.Valid(body) {
		return string(body)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(body)
	if err != nil {
		return string(body)
	}
	return string(decoded)
}
