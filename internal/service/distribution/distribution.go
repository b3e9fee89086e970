// Package distribution manages the delivery route list together with the
// persisted day/reason tally counters that survive restarts.
package distribution

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/atsdairy/dashboard/internal/domain/models"
	"github.com/atsdairy/dashboard/internal/kvstore"
	"github.com/atsdairy/dashboard/internal/store"
	"github.com/atsdairy/dashboard/internal/validation"
)

// Service wraps the route store, keeping the tallies in step with route
// additions and removals.
type Service struct {
	routes  *store.Store[models.Route]
	kv      kvstore.Store
	logger  *zap.Logger
	mu      sync.Mutex
	tallies models.DistributionTallies
}

// NewService rehydrates the tallies from the shim and wires the service.
func NewService(ctx context.Context, routes *store.Store[models.Route], kv kvstore.Store, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	tallies := models.NewDistributionTallies()
	found, err := kv.Load(ctx, kvstore.KeyDistributionTallies, &tallies)
	if err != nil {
		return nil, fmt.Errorf("rehydrate distribution tallies: %w", err)
	}
	if !found {
		tallies = models.NewDistributionTallies()
	}

	return &Service{routes: routes, kv: kv, logger: logger, tallies: tallies}, nil
}

// Routes exposes the underlying store for listing and edit flows.
func (s *Service) Routes() *store.Store[models.Route] { return s.routes }

// Add validates and appends the route, then bumps the weekday tally.
func (s *Service) Add(ctx context.Context, draft models.Route) (models.Route, validation.Errors, error) {
	added, errs, err := s.routes.Add(draft)
	if err != nil {
		return models.Route{}, errs, err
	}

	s.mu.Lock()
	s.tallies.ByDay[added.Day]++
	s.mu.Unlock()
	s.persistTallies(ctx)
	return added, errs, nil
}

// Remove deletes the route at index. When a removal reason from the fixed
// universe is supplied, its tally is bumped; unknown reasons are ignored.
func (s *Service) Remove(ctx context.Context, index int, reason string) (models.Route, error) {
	removed, err := s.routes.Delete(index)
	if err != nil {
		return models.Route{}, err
	}

	if reason != "" {
		s.mu.Lock()
		if _, known := s.tallies.ByReason[reason]; known {
			s.tallies.ByReason[reason]++
		} else {
			s.logger.Debug("removal reason outside universe ignored", zap.String("reason", reason))
		}
		s.mu.Unlock()
		s.persistTallies(ctx)
	}
	return removed, nil
}

// Tallies returns a copy of the persisted counters. Every weekday and every
// reason from the universe is always present, zero counts included.
func (s *Service) Tallies() models.DistributionTallies {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := models.DistributionTallies{
		ByDay:    make(map[string]int, len(s.tallies.ByDay)),
		ByReason: make(map[string]int, len(s.tallies.ByReason)),
	}
	for k, v := range s.tallies.ByDay {
		out.ByDay[k] = v
	}
	for k, v := range s.tallies.ByReason {
		out.ByReason[k] = v
	}
	return out
}

func (s *Service) persistTallies(ctx context.Context) {
	// Marshalling happens outside the lock, so it must work on a copy; the
	// live maps keep changing under concurrent adds and removals.
	if err := s.kv.Save(ctx, kvstore.KeyDistributionTallies, s.Tallies()); err != nil {
		// Counters are decorative; a failed write must not block route management.
		s.logger.Warn("failed persisting distribution tallies", zap.Error(err))
	}
}
