// Package sms talks to the shop's SMS gateway and keeps an outbox of
// messages that could not be delivered when submitted. The gateway is an
// opaque external service; delivery failures are deferred, never dropped.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lats-hub/repairgo/internal/config"
	"github.com/pkg/errors"
)

// Client sends messages through an HTTP SMS gateway.
type Client struct {
	cfg  config.SMSConfig
	http *http.Client
}

// NewClient builds a gateway client from config.
func NewClient(cfg config.SMSConfig) *Client {
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Configured reports whether a gateway URL is set. Without one every send
// goes straight to the outbox.
func (c *Client) Configured() bool {
	return c.cfg.GatewayURL != ""
}

type gatewayRequest struct {
	To       string `json:"to"`
	Message  string `json:"message"`
	SenderID string `json:"senderId"`
}

type gatewayResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Send delivers one message synchronously. The returned error wraps the
// gateway failure; callers decide whether to queue for retry.
func (c *Client) Send(ctx context.Context, recipient, body string) error {
	if !c.Configured() {
		return errors.New("sms gateway not configured")
	}

	payload, err := json.Marshal(gatewayRequest{
		To:       recipient,
		Message:  body,
		SenderID: c.cfg.SenderID,
	})
	if err != nil {
		return errors.Wrap(err, "sms encode")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.GatewayURL, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "sms request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "sms gateway unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var gw gatewayResponse
		if json.Unmarshal(raw, &gw) == nil && gw.Error != "" {
			return errors.Errorf("sms gateway rejected message: %s", gw.Error)
		}
		return errors.Errorf("sms gateway returned HTTP %d", resp.StatusCode)
	}
	return nil
}

// StatusMessage renders the customer-facing text for a device status update.
func StatusMessage(shop config.ShopConfig, customerName, model, status string) string {
	return fmt.Sprintf("Hello %s, your %s is now %q. Track it at %s. – %s",
		customerName, model, status, shop.TrackingURL, shop.Name)
}
