package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL points at the hosted shopping-list backend.
const DefaultBaseURL = "https://nt-shopping-list.onrender.com/api"

const authHeader = "x-auth-token"

// ErrorObserver is notified once per failed call for server-reported and
// malformed-response errors. Transport failures are not reported here; the
// caller sees those directly. Keeping notification out of the client methods
// themselves lets the request layer stay pure while error presentation stays
// centralized in one subscriber.
type ErrorObserver interface {
	APIError(op, msg string)
}

// Client talks to the shopping-list REST backend. One method per endpoint;
// authenticated methods take the token explicitly and must not be called
// with an empty one.
type Client struct {
	base     string
	http     *http.Client
	log      *slog.Logger
	observer ErrorObserver
}

func NewClient(baseURL string, timeout time.Duration, log *slog.Logger, observer ErrorObserver) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		base:     strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		log:      log,
		observer: observer,
	}
}

// do runs one request and decodes the response into out (which may be nil).
// Classification follows the backend's failure modes: an HTML page where
// JSON was expected is malformed regardless of status, a non-2xx JSON body
// carries the server's message, and anything undecodable is malformed.
func (c *Client) do(ctx context.Context, op, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal body: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(authHeader, token)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			slog.String("op", op), slog.String("method", method),
			slog.String("path", path), slog.String("request_id", reqID),
			slog.Any("error", err))
		return transportErr(op, err)
	}
	defer resp.Body.Close()

	c.log.Debug("request done",
		slog.String("op", op), slog.String("method", method),
		slog.String("path", path), slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
		slog.String("request_id", reqID))

	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "text/html") {
		return c.malformed(op)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportErr(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return c.malformed(op)
		}
		msg := payload.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		c.notify(op, msg)
		return fmt.Errorf("%s: %w", op, &ServerError{Status: resp.StatusCode, Message: msg})
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return c.malformed(op)
	}
	return nil
}

func (c *Client) malformed(op string) error {
	c.notify(op, ErrMalformedResponse.Error())
	return fmt.Errorf("%s: %w", op, ErrMalformedResponse)
}

func (c *Client) notify(op, msg string) {
	if c.observer != nil {
		c.observer.APIError(op, msg)
	}
}
