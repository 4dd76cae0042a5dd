package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/dkpatel/salestrack/internal/config"
	"github.com/dkpatel/salestrack/internal/dates"
	"github.com/dkpatel/salestrack/internal/service/items"
)

// Scheduler runs the daily sales summary job. The job is read-only: it
// fetches the day's records and logs totals, nothing is written back.
type Scheduler struct {
	cron     *cron.Cron
	itemsSvc *items.Service
	cfg      config.SummaryConfig
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.SummaryConfig, itemsSvc *items.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to local", zap.String("timezone", cfg.Timezone), zap.Error(err))
		location = time.Local
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(location)),
		itemsSvc: itemsSvc,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start registers the summary job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.logDailySummary); err != nil {
		s.logger.Error("failed to schedule daily summary", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) logDailySummary() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	day := dates.Today()
	summary, err := s.itemsSvc.SummarizeDay(ctx, day)
	if err != nil {
		s.logger.Error("failed to generate daily summary", zap.Error(err))
		return
	}

	s.logger.Info("daily sales summary",
		zap.String("date", summary.Date),
		zap.Int("records", summary.Records),
		zap.String("revenue", summary.Revenue.String()),
		zap.String("outstanding", summary.Outstanding.String()))
}
