package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RequestProcessor runs the matcher over requests still waiting for it.
type RequestProcessor interface {
	ProcessPending(ctx context.Context) (int, error)
}

// Scheduler runs background matching on a fixed interval.
type Scheduler struct {
	processor RequestProcessor
	interval  time.Duration
	logger    *zap.Logger
	stopChan  chan struct{}
	stopOnce  sync.Once
	done      chan struct{}
}

func NewScheduler(processor RequestProcessor, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		processor: processor,
		interval:  interval,
		logger:    logger,
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))
	go s.runMatchingTask(ctx)
}

// Stop signals the task and waits for it to exit.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	<-s.done
}

func (s *Scheduler) runMatchingTask(ctx context.Context) {
	defer close(s.done)

	// first pass right away so requests left over from a restart are not delayed
	s.processPending(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.processPending(ctx)
		case <-s.stopChan:
			s.logger.Info("Matching task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Matching task cancelled")
			return
		}
	}
}

func (s *Scheduler) processPending(ctx context.Context) {
	n, err := s.processor.ProcessPending(ctx)
	if err != nil {
		s.logger.Error("Failed to process pending requests", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("Processed pending tutor requests", zap.Int("count", n))
	}
}
