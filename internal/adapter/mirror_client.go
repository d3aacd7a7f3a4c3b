// Package adapter provides clients for external systems the service pushes to.
package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/event-monitor/internal/config"
	"github.com/event-monitor/internal/errors"
	"github.com/event-monitor/internal/models"
)

// maxErrorBody bounds how much of a failed response is kept for the error
const maxErrorBody = 512

// MirrorClient pushes preference snapshots to the external automation
// endpoint. Each push is a single POST; there is no retry.
type MirrorClient struct {
	endpoint      string
	apiKey        string
	webhookSecret string
	httpClient    *http.Client
}

// NewMirrorClient creates a client from mirror configuration. The request
// deadline comes from the caller's context; cfg.Timeout is a fallback.
func NewMirrorClient(cfg config.MirrorConfig) *MirrorClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}

	return &MirrorClient{
		endpoint:      cfg.Endpoint,
		apiKey:        cfg.APIKey,
		webhookSecret: cfg.WebhookSecret,
		httpClient:    &http.Client{Timeout: timeout},
	}
}

// Endpoint returns the configured URL
func (c *MirrorClient) Endpoint() string {
	return c.endpoint
}

// Push sends one snapshot. Any non-2xx status or transport failure is
// returned as a mirror_unreachable error.
func (c *MirrorClient) Push(ctx context.Context, snapshot models.PersistedPreferences) error {
	body, err := json.Marshal(snapshot)
	if err != nil {
		return errors.NewInternalError("failed to encode mirror payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.NewMirrorUnreachableError(c.endpoint, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("X-API-Key", c.apiKey)
	}
	if c.webhookSecret != "" {
		req.Header.Set("X-Webhook-Secret", c.webhookSecret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewMirrorUnreachableError(c.endpoint, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return errors.NewMirrorUnreachableError(c.endpoint,
			fmt.Errorf("status=%d, body=%s", resp.StatusCode, string(snippet)))
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
