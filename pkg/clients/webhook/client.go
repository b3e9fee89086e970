// Package webhook posts board messages to an external HTTP endpoint.
package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client exposes the outbound delivery operation used by buzzbox.
type Client interface {
	Deliver(ctx context.Context, req DeliveryRequest) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a webhook client targeting the configured URL.
func NewClient(url string) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(url).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// DeliveryRequest is the payload forwarded for one board message.
type DeliveryRequest struct {
	Sender   string `json:"sender"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Priority string `json:"priority"`
	Date     string `json:"date"`
}

// apiError captures the receiver's error payload when delivery fails.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Deliver posts the message to the webhook endpoint.
func (c *APIClient) Deliver(ctx context.Context, req DeliveryRequest) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetError(apiErr).
		Post("")
	if err != nil {
		return fmt.Errorf("deliver webhook message: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		return fmt.Errorf("webhook error: status=%d, message=%s", resp.StatusCode(), message)
	}
	return nil
}
