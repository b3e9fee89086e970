package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/atsdairy/dashboard/internal/config"
	"github.com/atsdairy/dashboard/internal/service/insights"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron        *cron.Cron
	insightsSvc *insights.Service
	cfg         config.ReportingConfig
	logger      *zap.Logger
}

// NewScheduler creates a new scheduler instance. The cron runs in the
// configured timezone; an unknown timezone falls back to local time.
func NewScheduler(cfg config.ReportingConfig, insightsSvc *insights.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []cron.Option{}
	if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
		opts = append(opts, cron.WithLocation(loc))
	} else {
		logger.Warn("unknown timezone, scheduler uses local time", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}
	c := cron.New(opts...)

	return &Scheduler{
		cron:        c,
		insightsSvc: insightsSvc,
		cfg:         cfg,
		logger:      logger,
	}
}

// Start registers the daily snapshot job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.CronSchedule, s.snapshotDaily)
	if err != nil {
		s.logger.Error("failed to schedule daily snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) snapshotDaily() {
	s.logger.Info("archiving daily snapshot")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.insightsSvc.SnapshotDaily(ctx); err != nil {
		s.logger.Error("failed to archive daily snapshot", zap.Error(err))
		return
	}
	s.logger.Info("daily snapshot archived")
}
