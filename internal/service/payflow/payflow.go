// Package payflow manages payment transactions plus the half-filled form
// draft the screen persists between visits.
package payflow

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/atsdairy/dashboard/internal/domain/models"
	"github.com/atsdairy/dashboard/internal/kvstore"
	"github.com/atsdairy/dashboard/internal/store"
	"github.com/atsdairy/dashboard/internal/validation"
)

// Service wraps the payment store and the persisted draft.
type Service struct {
	payments *store.Store[models.Payment]
	kv       kvstore.Store
	logger   *zap.Logger
}

// NewService wires the payflow service.
func NewService(payments *store.Store[models.Payment], kv kvstore.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{payments: payments, kv: kv, logger: logger}
}

// Payments exposes the underlying store for listing and edit flows.
func (s *Service) Payments() *store.Store[models.Payment] { return s.payments }

// Add validates and appends the payment, clearing the persisted draft on
// success since the form it came from has been submitted.
func (s *Service) Add(ctx context.Context, draft models.Payment) (models.Payment, validation.Errors, error) {
	added, errs, err := s.payments.Add(draft)
	if err != nil {
		return models.Payment{}, errs, err
	}

	if err := s.kv.Delete(ctx, kvstore.KeyPayflowDraft); err != nil {
		s.logger.Warn("failed clearing payflow draft", zap.Error(err))
	}
	return added, errs, nil
}

// SaveDraft persists the in-progress form. Drafts are not validated.
func (s *Service) SaveDraft(ctx context.Context, draft models.PaymentDraft) error {
	if err := s.kv.Save(ctx, kvstore.KeyPayflowDraft, draft); err != nil {
		return fmt.Errorf("persist payflow draft: %w", err)
	}
	return nil
}

// LoadDraft returns the persisted draft, or an empty one when nothing usable
// is stored.
func (s *Service) LoadDraft(ctx context.Context) (models.PaymentDraft, error) {
	var draft models.PaymentDraft
	found, err := s.kv.Load(ctx, kvstore.KeyPayflowDraft, &draft)
	if err != nil {
		return models.PaymentDraft{}, fmt.Errorf("load payflow draft: %w", err)
	}
	if !found {
		return models.PaymentDraft{}, nil
	}
	return draft, nil
}
