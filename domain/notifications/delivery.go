package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/schoolpilot/waitlist-api/internal/log"
	"github.com/schoolpilot/waitlist-api/pkg/circuitbreaker"
	apperrors "github.com/schoolpilot/waitlist-api/pkg/errors"
	"github.com/schoolpilot/waitlist-api/pkg/retry"
)

type DeliveryResult struct {
	Delivered int
}

// DeliveryProvider pushes a broadcast to its recipients. The audit logging in
// the service does not depend on how (or whether) delivery happens, so a real
// provider can be substituted without touching it.
type DeliveryProvider interface {
	Deliver(ctx context.Context, message string, recipients []string) (*DeliveryResult, error)
}

// LogProvider is the default: it logs the broadcast and claims success for
// every recipient. No messages leave the process.
type LogProvider struct {
	logger *log.Logger
}

func NewLogProvider(logger *log.Logger) *LogProvider {
	return &LogProvider{logger: logger}
}

func (p *LogProvider) Deliver(ctx context.Context, message string, recipients []string) (*DeliveryResult, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, p.logger)
	logger.Info("Broadcast delivery (log only)", "recipients", len(recipients), "message", message)

	return &DeliveryResult{Delivered: len(recipients)}, nil
}

// WebhookProvider POSTs the broadcast to an external delivery endpoint. The
// call is wrapped in a retry policy and a circuit breaker since it leaves the
// process, unlike store calls which stay single-shot.
type WebhookProvider struct {
	url     string
	client  *http.Client
	retry   retry.RetryPolicy
	breaker circuitbreaker.CircuitBreaker
	logger  *log.Logger
}

func NewWebhookProvider(url string, logger *log.Logger) *WebhookProvider {
	return &WebhookProvider{
		url:     url,
		client:  &http.Client{Timeout: 10 * time.Second},
		retry:   retry.NewExponentialBackoff(nil),
		breaker: circuitbreaker.NewCircuitBreaker(nil),
		logger:  logger,
	}
}

type webhookPayload struct {
	Message    string   `json:"message"`
	Recipients []string `json:"recipients"`
}

func (p *WebhookProvider) Deliver(ctx context.Context, message string, recipients []string) (*DeliveryResult, error) {
	body, err := json.Marshal(webhookPayload{Message: message, Recipients: recipients})
	if err != nil {
		return nil, apperrors.NewInternalServerError("unable to encode broadcast payload", err)
	}

	err = p.breaker.Call(func() error {
		return p.retry.Execute(func() error {
			return p.post(ctx, body)
		})
	})

	if err != nil {
		return nil, apperrors.NewInternalServerError("broadcast delivery failed", err)
	}

	return &DeliveryResult{Delivered: len(recipients)}, nil
}

func (p *WebhookProvider) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("delivery endpoint returned status %d", resp.StatusCode)
	}

	return nil
}
