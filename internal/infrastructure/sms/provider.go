// Package sms sends text messages to beneficiaries and mentors through a
// pluggable gateway. Africa's Talking is the production gateway; a console
// provider stands in during development.
package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/upg/backend/internal/infrastructure/config"
)

// Provider delivers a single message to a phone number in E.164 form.
type Provider interface {
	Name() string
	Send(ctx context.Context, phoneNumber, message string) error
}

const defaultAfricasTalkingBaseURL = "https://api.africastalking.com"

// AfricasTalkingProvider sends messages through the Africa's Talking
// messaging API.
type AfricasTalkingProvider struct {
	username string
	apiKey   string
	senderID string
	baseURL  string
	client   *http.Client
}

// NewAfricasTalkingProvider creates a provider from SMS configuration
func NewAfricasTalkingProvider(cfg config.SMSConfig) *AfricasTalkingProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultAfricasTalkingBaseURL
	}
	senderID := cfg.SenderID
	if senderID == "" {
		senderID = "UPG_SYS"
	}
	return &AfricasTalkingProvider{
		username: cfg.Username,
		apiKey:   cfg.APIKey,
		senderID: senderID,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

// Name returns the provider identifier used in delivery logs
func (p *AfricasTalkingProvider) Name() string {
	return "africastalking"
}

// atResponse mirrors the fields we need from the messaging API response
type atResponse struct {
	SMSMessageData struct {
		Recipients []struct {
			Number     string `json:"number"`
			Status     string `json:"status"`
			StatusCode int    `json:"statusCode"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

// Send posts the message to the Africa's Talking messaging endpoint
func (p *AfricasTalkingProvider) Send(ctx context.Context, phoneNumber, message string) error {
	form := url.Values{}
	form.Set("username", p.username)
	form.Set("to", phoneNumber)
	form.Set("message", message)
	form.Set("from", p.senderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/version1/messaging", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var parsed atResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}
	if len(parsed.SMSMessageData.Recipients) == 0 {
		return fmt.Errorf("gateway accepted no recipients")
	}

	recipient := parsed.SMSMessageData.Recipients[0]
	if recipient.Status != "Success" {
		return fmt.Errorf("delivery to %s failed: %s (code %d)",
			recipient.Number, recipient.Status, recipient.StatusCode)
	}
	return nil
}

// ConsoleProvider writes messages to the log instead of sending them.
// Used in development and tests.
type ConsoleProvider struct {
	logger *zap.Logger
}

// NewConsoleProvider creates a provider that logs instead of sending
func NewConsoleProvider(logger *zap.Logger) *ConsoleProvider {
	return &ConsoleProvider{logger: logger}
}

// Name returns the provider identifier used in delivery logs
func (p *ConsoleProvider) Name() string {
	return "console"
}

// Send logs the message and always reports success
func (p *ConsoleProvider) Send(_ context.Context, phoneNumber, message string) error {
	p.logger.Info("sms (console provider)",
		zap.String("to", phoneNumber),
		zap.String("message", message),
	)
	return nil
}

var (
	_ Provider = (*AfricasTalkingProvider)(nil)
	_ Provider = (*ConsoleProvider)(nil)
)
