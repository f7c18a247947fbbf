package aging

import (
	"context"
	"fmt"
	"time"

	"go-hiring/internal/config"
	"go-hiring/internal/features/requisition"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper flags pending requisitions that have sat with an approver past
// the configured age so dashboards can surface them.
type Sweeper struct {
	rqRepo    requisition.RequisitionRepository
	logger    *zap.Logger
	schedule  string
	staleDays int

	scheduler *cron.Cron
}

func NewSweeper(rqRepo requisition.RequisitionRepository, cfg *config.Config, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		rqRepo:    rqRepo,
		logger:    logger,
		schedule:  cfg.AgingSweepCron,
		staleDays: cfg.AgingStaleDays,
	}
}

// Sweep runs one pass. Exposed so operators can trigger it outside the
// schedule.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -s.staleDays)

	marked, err := s.rqRepo.MarkStalePending(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("aging sweep: %w", err)
	}

	if marked > 0 {
		s.logger.Info("marked stale pending requisitions",
			zap.Int64("count", marked),
			zap.Time("cutoff", cutoff),
		)
	}
	return marked, nil
}

func (s *Sweeper) InitializeScheduler(ctx context.Context) error {
	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid aging sweep schedule %q: %w", s.schedule, err)
	}

	s.scheduler = cron.New()
	_, err := s.scheduler.AddFunc(s.schedule, func() {
		if _, err := s.Sweep(context.Background()); err != nil {
			s.logger.Error("aging sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule aging sweep: %w", err)
	}

	s.scheduler.Start()
	s.logger.Info("aging sweep scheduled", zap.String("schedule", s.schedule))
	return nil
}

func (s *Sweeper) StopScheduler() error {
	if s.scheduler != nil {
		ctx := s.scheduler.Stop()
		<-ctx.Done()
	}
	return nil
}
