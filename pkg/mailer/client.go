package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/promopace/promopace-backend/pkg/config"
	"github.com/promopace/promopace-backend/pkg/logger"
)

const sendPath = "/v1/messages"

var (
	errBaseURLRequired = errors.New("mailer base url is required")
	errAPIKeyRequired  = errors.New("mailer api key is required")
	errFromRequired    = errors.New("mailer from address is required")
)

// Sender is the delivery surface the dispatcher depends on.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is one transactional email.
type Message struct {
	To       string `json:"-"`
	Subject  string `json:"-"`
	HTMLBody string `json:"-"`
}

type sendRequest struct {
	From    party   `json:"from"`
	To      []party `json:"to"`
	Subject string  `json:"subject"`
	HTML    string  `json:"html"`
}

type party struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Client talks to the transactional-email HTTP API. Delivery is
// fire-and-forget: callers only learn success or failure.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	fromAddress string
	fromName    string
	logg        *logger.Logger
}

// NewClient validates the mailer credentials and builds the HTTP client.
func NewClient(ctx context.Context, cfg config.MailerConfig, logg *logger.Logger) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errAPIKeyRequired
	}
	if strings.TrimSpace(cfg.FromAddress) == "" {
		return nil, errFromRequired
	}

	c := &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     baseURL,
		apiKey:      strings.TrimSpace(cfg.APIKey),
		fromAddress: strings.TrimSpace(cfg.FromAddress),
		fromName:    strings.TrimSpace(cfg.FromName),
		logg:        logg,
	}

	if logg != nil {
		logg.Info(ctx, "mailer client initialized")
	}
	return c, nil
}

// Send delivers one message. A non-2xx response is an error; the response
// body beyond that is never inspected.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("recipient is required")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return fmt.Errorf("subject is required")
	}

	payload := sendRequest{
		From:    party{Email: c.fromAddress, Name: c.fromName},
		To:      []party{{Email: msg.To}},
		Subject: msg.Subject,
		HTML:    msg.HTMLBody,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting message: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiResp sendResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&apiResp)
		if apiResp.Message != "" {
			return fmt.Errorf("mailer rejected message (%d): %s", resp.StatusCode, apiResp.Message)
		}
		return fmt.Errorf("mailer rejected message (%d)", resp.StatusCode)
	}
	return nil
}
