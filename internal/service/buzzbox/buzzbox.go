// Package buzzbox manages the internal message board. Messages are
// session-scoped: logging out clears the board. Posted messages can
// optionally be forwarded to an external webhook.
package buzzbox

import (
	"context"

	"go.uber.org/zap"

	"github.com/atsdairy/dashboard/internal/domain/models"
	"github.com/atsdairy/dashboard/internal/store"
	"github.com/atsdairy/dashboard/internal/validation"
	"github.com/atsdairy/dashboard/pkg/clients/webhook"
)

// Service wraps the message store and the optional outbound webhook.
type Service struct {
	messages *store.Store[models.Message]
	notifier webhook.Client
	logger   *zap.Logger
}

// NewService wires the buzzbox service. notifier may be nil when no webhook
// is configured.
func NewService(messages *store.Store[models.Message], notifier webhook.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{messages: messages, notifier: notifier, logger: logger}
}

// Messages exposes the underlying store for listing and edit flows.
func (s *Service) Messages() *store.Store[models.Message] { return s.messages }

// Post validates and appends the message, then forwards it to the webhook
// when one is configured. Delivery failures are logged and never affect the
// stored record.
func (s *Service) Post(ctx context.Context, draft models.Message) (models.Message, validation.Errors, error) {
	added, errs, err := s.messages.Add(draft)
	if err != nil {
		return models.Message{}, errs, err
	}

	if s.notifier != nil {
		req := webhook.DeliveryRequest{
			Sender:   added.Sender,
			Subject:  added.Subject,
			Body:     added.Body,
			Priority: added.Priority,
			Date:     added.Date,
		}
		if err := s.notifier.Deliver(ctx, req); err != nil {
			s.logger.Warn("webhook delivery failed", zap.Int("message_id", added.ID), zap.Error(err))
		}
	}
	return added, errs, nil
}

// Clear empties the board. Registered as a logout hook.
func (s *Service) Clear() {
	for s.messages.Len() > 0 {
		if _, err := s.messages.Delete(0); err != nil {
			return
		}
	}
	s.logger.Debug("message board cleared")
}
