package score

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Submission is the body the game posts after a completed puzzle.
type Submission struct {
	Nickname string `json:"nickname"`
	Moves    int    `json:"moves"`
	Time     int    `json:"time"` // Elapsed seconds
}

// ErrNoEndpoint is returned by Submit when no URL is configured.
var ErrNoEndpoint = errors.New("score: no endpoint configured")

// Client posts submissions to a scoring endpoint.
type Client struct {
	url     string
	timeout time.Duration
	http    *http.Client
	logger  *log.Logger
}

// NewClient creates a client for url. An empty url disables submission.
func NewClient(url string, timeout time.Duration, logger *log.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		url:     url,
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Enabled reports whether the client has an endpoint.
func (c *Client) Enabled() bool {
	return c != nil && c.url != ""
}

// Submit posts s and returns the transaction id from the response.
func (c *Client) Submit(ctx context.Context, s Submission) (string, error) {
	if !c.Enabled() {
		return "", ErrNoEndpoint
	}

	body, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("score: encode submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("score: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("score: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return "", fmt.Errorf("score: server returned %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out uploadResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("score: decode response: %w", err)
	}
	return out.TxID, nil
}

// SubmitAsync posts s in the background. Failures are logged at debug
// level and otherwise dropped; nothing is retried.
func (c *Client) SubmitAsync(s Submission) {
	if !c.Enabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		txID, err := c.Submit(ctx, s)
		if err != nil {
			c.logger.Debug("score submission dropped", "nickname", s.Nickname, "error", err)
			return
		}
		c.logger.Debug("score submitted", "nickname", s.Nickname, "tx", txID)
	}()
}
