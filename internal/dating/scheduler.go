package dating

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBackfillInterval = 15 * time.Minute
	defaultBackfillBatch    = 50
)

// Scheduler runs background jobs for the match flow. Today that is the
// date card backfill for matches whose card failed at match time.
type Scheduler struct {
	dateCards DateCards
	interval  time.Duration
	batch     int
	logger    *zap.Logger
}

func NewScheduler(dateCards DateCards, interval time.Duration, batch int, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = defaultBackfillInterval
	}
	if batch <= 0 {
		batch = defaultBackfillBatch
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		dateCards: dateCards,
		interval:  interval,
		batch:     batch,
		logger:    logger.Named("scheduler"),
	}
}

// Start launches the jobs and returns immediately. They stop with ctx.
func (s *Scheduler) Start(ctx context.Context) {
	go s.runEvery(ctx, s.interval, s.BackfillDateCards)
}

func (s *Scheduler) runEvery(ctx context.Context, interval time.Duration, task func(context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := task(ctx); err != nil {
				s.logger.Error("scheduled task failed", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}

// BackfillDateCards processes one batch of matches that have no card.
func (s *Scheduler) BackfillDateCards(ctx context.Context) error {
	created, err := s.dateCards.BackfillMissing(ctx, s.batch)
	if created > 0 {
		backfillCreated.Add(float64(created))
		s.logger.Info("date card backfill completed", zap.Int("created", created))
	}
	return err
}
