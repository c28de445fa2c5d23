package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aretw0/aura/internal/logging"
	"github.com/aretw0/aura/pkg/domain"
	"github.com/aretw0/aura/pkg/ports"
	"github.com/google/uuid"
)

// DefaultBaseURL is the bank address used when none is configured.
const DefaultBaseURL = "http://localhost:8080/"

// DefaultTimeout bounds each round trip. It is the only deadline in the client.
const DefaultTimeout = 10 * time.Second

// RequestIDHeader correlates client and bank logs.
const RequestIDHeader = "X-Request-ID"

// Client implements ports.NetworkService over HTTP with JSON bodies.
// It performs exactly one request per call: no retries, no caching.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	hooks      domain.LifecycleHooks
}

var _ ports.NetworkService = (*Client)(nil)

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the transport-level timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger configures a logger for the Client.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHooks registers observability hooks (OnRequest).
func WithHooks(hooks domain.LifecycleHooks) ClientOption {
	return func(c *Client) {
		c.hooks = hooks
	}
}

// NewClient creates a client for the bank at baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Login calls POST /login.
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	var reply loginReply
	err := c.do(ctx, "login", http.MethodPost, []string{"login"}, loginBody{ID: req.ID, Password: req.Password}, &reply)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	return domain.LoginResponse{Outcome: loginOutcome(reply.Granted)}, nil
}

// Transfer calls POST /transfer.
func (c *Client) Transfer(ctx context.Context, req domain.TransferRequest) (domain.TransferResponse, error) {
	var reply transferReply
	if err := c.do(ctx, "transfer", http.MethodPost, []string{"transfer"}, mapTransferToWire(req), &reply); err != nil {
		return domain.TransferResponse{}, err
	}
	return domain.TransferResponse{Outcome: transferOutcome(reply.Result)}, nil
}

// FetchAccounts calls GET /accounts/{id}.
func (c *Client) FetchAccounts(ctx context.Context, userID string) ([]domain.UserAccount, error) {
	var reply []accountBody
	if err := c.do(ctx, "accounts", http.MethodGet, []string{"accounts", userID}, nil, &reply); err != nil {
		return nil, err
	}
	accounts, err := mapAccountsFromWire(reply)
	if err != nil {
		return nil, Classify(fmt.Errorf("decode balance: %w", err))
	}
	return accounts, nil
}

// do performs one round trip. Any failure leaves as a domain.NetworkError.
func (c *Client) do(ctx context.Context, op, method string, path []string, body, out any) (err error) {
	requestID := uuid.NewString()
	start := time.Now()
	status := 0

	defer func() {
		if err != nil {
			err = Classify(err)
		}
		c.logger.Debug("Bank request finished",
			"op", op,
			"request_id", requestID,
			"status", status,
			"duration", time.Since(start),
			"err", err,
		)
		if c.hooks.OnRequest != nil {
			c.hooks.OnRequest(ctx, &domain.RequestEvent{
				EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventRequest},
				Op:         op,
				RequestID:  requestID,
				StatusCode: status,
				Duration:   time.Since(start),
				Err:        err,
			})
		}
	}()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

// resolve appends path segments to the base URL, escaping each one.
func (c *Client) resolve(segments []string) string {
	u := *c.baseURL
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	u.RawPath = strings.TrimSuffix(c.baseURL.EscapedPath(), "/") + "/" + strings.Join(escaped, "/")
	u.Path = strings.TrimSuffix(c.baseURL.Path, "/") + "/" + strings.Join(segments, "/")
	return u.String()
}
