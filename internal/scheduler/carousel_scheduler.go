package scheduler

import (
	"context"
	"time"

	"github.com/madson-lima/totalfilter-backend/internal/application"
	"go.uber.org/zap"
)

// CarouselScheduler periodically checks the carousel position sequence and
// renumbers it if a crash or partial write ever left it with gaps.
type CarouselScheduler struct {
	service  *application.CarouselService
	interval time.Duration
	logger   *zap.Logger
	stop     chan struct{}
}

func NewCarouselScheduler(service *application.CarouselService, interval time.Duration, logger *zap.Logger) *CarouselScheduler {
	return &CarouselScheduler{
		service:  service,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

// Start runs one repair pass immediately, then one per interval until Stop.
func (s *CarouselScheduler) Start() {
	s.logger.Info("carousel repair scheduler started", zap.Duration("interval", s.interval))
	s.runOnce()

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runOnce()
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *CarouselScheduler) Stop() {
	close(s.stop)
	s.logger.Info("carousel repair scheduler stopped")
}

func (s *CarouselScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.service.RepairOrdering(ctx); err != nil {
		s.logger.Error("carousel repair failed", zap.Error(err))
	}
}
