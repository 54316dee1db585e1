package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"StockWatcher/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client talks to the stock-data backend over its JSON API.
type Client struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client
	logger    zerolog.Logger
}

// NewClient creates a client with optional proxy support.
func NewClient(baseURL, proxyURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		logger: logger.With().Str("component", "api").Logger(),
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// Quote fetches GET /api/stock/{symbol}.
func (c *Client) Quote(ctx context.Context, symbol string) (*model.Quote, error) {
	var q model.Quote
	if err := c.do(ctx, "fetch quote", http.MethodGet, "/api/stock/"+url.PathEscape(symbol), nil, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// History fetches GET /api/history/{symbol}.
func (c *Client) History(ctx context.Context, symbol string) (*model.History, error) {
	var h model.History
	if err := c.do(ctx, "fetch history", http.MethodGet, "/api/history/"+url.PathEscape(symbol), nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Watchlist fetches GET /api/watchlist.
func (c *Client) Watchlist(ctx context.Context) ([]model.WatchlistItem, error) {
	items := []model.WatchlistItem{}
	if err := c.do(ctx, "fetch watchlist", http.MethodGet, "/api/watchlist", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddToWatchlist sends POST /api/watchlist and returns the server message.
func (c *Client) AddToWatchlist(ctx context.Context, req model.WatchlistAddRequest) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, "add to watchlist", http.MethodPost, "/api/watchlist", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// RemoveFromWatchlist sends DELETE /api/watchlist/{symbol}.
func (c *Client) RemoveFromWatchlist(ctx context.Context, symbol string) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, "remove from watchlist", http.MethodDelete, "/api/watchlist/"+url.PathEscape(symbol), nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Portfolio fetches GET /api/portfolio.
func (c *Client) Portfolio(ctx context.Context) (*model.Portfolio, error) {
	var p model.Portfolio
	if err := c.do(ctx, "fetch portfolio", http.MethodGet, "/api/portfolio", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// AddPosition sends POST /api/portfolio and returns the server message.
func (c *Client) AddPosition(ctx context.Context, req model.PositionAddRequest) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, "add position", http.MethodPost, "/api/portfolio", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, payload, target any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: marshal payload: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	start := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{Op: op, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	return decode(op, data, target)
}

// decode surfaces an "error" field as *APIError before decoding into target.
// Array payloads (the watchlist) cannot carry one.
func decode(op string, data []byte, target any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env errorEnvelope
		if err := json.Unmarshal(trimmed, &env); err == nil && env.Error != "" {
			return &APIError{Message: env.Error}
		}
	}
	if err := json.Unmarshal(trimmed, target); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode body: %w", err)}
	}
	return nil
}
