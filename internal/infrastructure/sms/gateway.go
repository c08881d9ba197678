package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	sharedConfig "pulsefit/internal/shared/config"
	"pulsefit/internal/shared/logger"
)

const (
	requestTimeout = 10 * time.Second
	// Maximum response body size for the gateway API (64KB)
	maxGatewayResponseSize = 64 << 10
)

// ErrSMSNotConfigured is returned when no gateway URL is set.
var ErrSMSNotConfigured = errors.New("sms gateway not configured")

// GatewayClient sends SMS through a generic HTTP JSON gateway.
// An empty gateway URL disables the channel.
type GatewayClient struct {
	config     sharedConfig.SMSConfig
	httpClient *http.Client
	logger     logger.Interface
}

func NewGatewayClient(config sharedConfig.SMSConfig, logger logger.Interface) *GatewayClient {
	return &GatewayClient{
		config: config,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: logger,
	}
}

// Enabled reports whether a gateway is configured.
func (c *GatewayClient) Enabled() bool {
	return c.config.GatewayURL != ""
}

type sendRequest struct {
	To      string `json:"to"`
	From    string `json:"from,omitempty"`
	Message string `json:"message"`
}

type sendResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Send delivers a single message to a phone number.
func (c *GatewayClient) Send(ctx context.Context, phone, message string) error {
	if !c.Enabled() {
		return ErrSMSNotConfigured
	}

	payload, err := json.Marshal(sendRequest{
		To:      phone,
		From:    c.config.Sender,
		Message: message,
	})
	if err != nil {
		return fmt.Errorf("failed to encode sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.GatewayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call sms gateway: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxGatewayResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read sms gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed sendResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		return fmt.Errorf("sms gateway rejected message: %s", parsed.Error)
	}

	c.logger.Debugw("sms sent", "to", phone)
	return nil
}
