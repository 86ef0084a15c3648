package mailgun

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// API base URLs. A zone replaces the default base wholesale, so the EU
// constant can be passed to WithZone or SetZone as-is.
const (
	APIBase   = "https://api.mailgun.net/v3"
	APIBaseEU = "https://api.eu.mailgun.net/v3"

	messagesEndpoint = "messages"
)

const (
	basicAuthUser    = "api"
	defaultTimeout   = 30 * time.Second
	defaultBodyLimit = 1 << 20
	logBodyLimit     = 512
)

// HTTPClient abstracts the http.Client Do method for easier testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option customises client behaviour at construction time.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used to reach the API.
func WithHTTPClient(client HTTPClient) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithZone sets the regional base URL at construction time.
func WithZone(zone string) Option {
	return func(c *Client) {
		c.zone = normalizeZone(zone)
	}
}

// WithLogger attaches a logger for debug-level request and response events.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithBodyLimit adjusts how many bytes are read from API response bodies.
func WithBodyLimit(limit int64) Option {
	return func(c *Client) {
		if limit > 0 {
			c.maxBodyBytes = limit
		}
	}
}

// Client issues authenticated sends against one Mailgun sending domain.
// Configuration is fixed at construction apart from SetZone, so a Client is
// safe for concurrent Send calls.
type Client struct {
	logger       zerolog.Logger
	domain       string
	apiKey       string
	zone         string
	httpClient   HTTPClient
	maxBodyBytes int64
}

// SendResponse is the payload the API returns for an accepted send.
type SendResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// NewClient constructs a Client for the given sending domain and API key.
func NewClient(domain, apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(domain) == "" {
		return nil, errors.New("mailgun: domain is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("mailgun: api key is required")
	}

	c := &Client{
		logger:       zerolog.Nop(),
		domain:       strings.TrimSpace(domain),
		apiKey:       strings.TrimSpace(apiKey),
		httpClient:   &http.Client{Timeout: defaultTimeout},
		maxBodyBytes: defaultBodyLimit,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c, nil
}

// SetZone overrides the regional base URL used by subsequent sends. An empty
// zone restores the default base. Configure the zone before issuing sends;
// the setter is not synchronized with in-flight calls.
func (c *Client) SetZone(zone string) {
	c.zone = normalizeZone(zone)
}

// Send submits one message on behalf of sender and interprets the reply.
// The sender always becomes the from parameter, after message flattening.
// Exactly one HTTP exchange is performed per call: there is no retry or
// backoff, and cancellation is the caller's ctx. Non-2xx replies surface as
// *APIError carrying the provider's body verbatim; a 2xx reply that cannot
// be decoded wraps ErrInvalidResponse.
func (c *Client) Send(ctx context.Context, sender EmailAddress, msg *Message) (*SendResponse, error) {
	if msg == nil {
		return nil, errors.New("mailgun: message is required")
	}

	params, err := msg.params()
	if err != nil {
		return nil, fmt.Errorf("mailgun: encode message: %w", err)
	}
	params.Set("from", sender.String())

	base := c.zone
	if base == "" {
		base = APIBase
	}
	endpoint := fmt.Sprintf("%s/%s/%s", base, url.PathEscape(c.domain), messagesEndpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("mailgun: new request: %w", err)
	}
	req.SetBasicAuth(basicAuthUser, c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.logger.Debug().
		Str("domain", c.domain).
		Str("url", endpoint).
		Int("recipients", len(msg.To)+len(msg.CC)+len(msg.BCC)).
		Str("template", msg.Template).
		Msg("sending message")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mailgun: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := c.readBody(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug().
			Int("status", resp.StatusCode).
			Str("body", truncate(body, logBodyLimit)).
			Msg("message rejected")
		return nil, &APIError{StatusCode: resp.StatusCode, Body: body}
	}

	var parsed SendResponse
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Str("id", parsed.ID).
		Str("message", parsed.Message).
		Msg("message accepted")

	return &parsed, nil
}

func normalizeZone(zone string) string {
	return strings.TrimRight(strings.TrimSpace(zone), "/")
}

func (c *Client) readBody(r io.Reader) (string, error) {
	limit := c.maxBodyBytes
	if limit <= 0 {
		limit = defaultBodyLimit
	}

	data, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		return "", fmt.Errorf("mailgun: read body: %w", err)
	}
	return string(data), nil
}

// truncate trims a string to the given rune limit for log fields. Returned
// errors are never truncated.
func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
