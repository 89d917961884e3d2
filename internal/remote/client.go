// Package remote talks to the hosted row store over its REST interface. The
// store is treated as a dumb keyed row collection: whole-row upserts keyed by
// user id, no field-level patching, last write wins.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Config holds connection settings for the hosted store.
type Config struct {
	BaseURL    string
	APIKey     string
	TimeoutMs  int
	MaxRetries int
}

// DefaultConfig returns connection defaults; the base URL and key always come
// from the environment.
func DefaultConfig() Config {
	return Config{
		TimeoutMs:  8000,
		MaxRetries: 1,
	}
}

// Client is an HTTP client for the hosted store.
type Client struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a Client. A nil observer disables call logging.
func NewClient(cfg Config, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = DefaultConfig().TimeoutMs
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// GetProfile fetches the profile row for userID. Returns ErrNotFound when no
// row exists, the first-run signal rather than a fault.
func (c *Client) GetProfile(ctx context.Context, userID string) (*ProfileRow, error) {
	endpoint := fmt.Sprintf("/rest/v1/profiles?id=eq.%s&select=*", url.QueryEscape(userID))

	var rows []ProfileRow
	if err := c.call(ctx, "get_profile", http.MethodGet, endpoint, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// UpsertProfile writes the whole profile row, overwriting any existing row
// with the same id.
func (c *Client) UpsertProfile(ctx context.Context, row ProfileRow) error {
	return c.call(ctx, "upsert_profile", http.MethodPost, "/rest/v1/profiles", []ProfileRow{row}, nil)
}

// DeleteProfile removes the profile row for userID.
func (c *Client) DeleteProfile(ctx context.Context, userID string) error {
	endpoint := fmt.Sprintf("/rest/v1/profiles?id=eq.%s", url.QueryEscape(userID))
	return c.call(ctx, "delete_profile", http.MethodDelete, endpoint, nil, nil)
}

// GetDayLogs fetches all day-log rows for userID, oldest first.
func (c *Client) GetDayLogs(ctx context.Context, userID string) ([]DayLogRow, error) {
	endpoint := fmt.Sprintf("/rest/v1/daily_logs?user_id=eq.%s&select=*&order=date.asc", url.QueryEscape(userID))
	var rows []DayLogRow
	if err := c.call(ctx, "get_day_logs", http.MethodGet, endpoint, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// InsertDayLogs appends day-log rows. Duplicate (user, date) pairs are merged
// server-side, so resubmitting after a crash cannot duplicate history.
func (c *Client) InsertDayLogs(ctx context.Context, rows []DayLogRow) error {
	if len(rows) == 0 {
		return nil
	}
	return c.call(ctx, "insert_day_logs", http.MethodPost, "/rest/v1/daily_logs", rows, nil)
}

// DeleteDayLogs removes every day-log row for userID.
func (c *Client) DeleteDayLogs(ctx context.Context, userID string) error {
	endpoint := fmt.Sprintf("/rest/v1/daily_logs?user_id=eq.%s", url.QueryEscape(userID))
	return c.call(ctx, "delete_day_logs", http.MethodDelete, endpoint, nil, nil)
}

// call performs one logical operation with retries. Transport errors and 5xx
// responses are retried up to MaxRetries times; auth rejections are not,
// since retrying a bad key can't help.
func (c *Client) call(ctx context.Context, op, method, endpoint string, body, out any) error {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s body: %w", op, err)
		}
	}

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries
	for i := 0; i < attempts; i++ {
		err := c.doRequest(ctx, method, endpoint, payload, out)
		if err == nil {
			c.observer.OnCallComplete(CallEvent{
				Op: op, LatencyMs: time.Since(start).Milliseconds(), Success: true,
			})
			return nil
		}
		lastErr = err
		if err == ErrUnauthorized || ctx.Err() != nil {
			break
		}
	}

	code := "unavailable"
	if lastErr == ErrUnauthorized {
		code = "unauthorized"
	}
	c.observer.OnCallComplete(CallEvent{
		Op: op, LatencyMs: time.Since(start).Milliseconds(), Success: false, ErrorCode: code,
	})
	if lastErr == ErrUnauthorized {
		return lastErr
	}
	return fmt.Errorf("%s after %d attempts: %w: %w", op, attempts, ErrRetryExhausted, lastErr)
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("apikey", c.cfg.APIKey)
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
		// Whole-row upsert semantics: rows with a conflicting key are replaced.
		req.Header.Set("Prefer", "resolution=merge-duplicates,return=minimal")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ErrUnavailable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode >= 500:
		return ErrUnavailable
	case resp.StatusCode >= 400:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("remote returned %d: %s", resp.StatusCode, msg)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
