package services

import (
	"context"
	"sync"
	"time"

	"parkpro/internal/repositories/interfaces"
	"parkpro/internal/utils"
	"parkpro/pkg/logger"
)

// SweeperService expires stale reservation holds in the background. It is
// the sole owner of the reserved to expired transition; nothing else in
// the system writes it.
type SweeperService struct {
	bookingRepo interfaces.BookingRepository
	interval    time.Duration
	logger      *logger.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

func NewSweeperService(
	bookingRepo interfaces.BookingRepository,
	interval time.Duration,
	logger *logger.Logger,
) *SweeperService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &SweeperService{
		bookingRepo: bookingRepo,
		interval:    interval,
		logger:      logger,
	}
}

// Start launches the sweep loop. A second Start while running is a no-op.
// The loop sweeps once immediately so holds left over from a restart do
// not linger for a full interval.
func (s *SweeperService) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.run(ctx)

	s.logger.WithField("interval", s.interval.String()).Info("Reservation sweeper started")
}

// Stop halts the loop and waits for an in-flight sweep to finish.
func (s *SweeperService) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	done := s.done
	s.running = false
	s.mu.Unlock()

	cancel()
	<-done

	s.logger.Info("Reservation sweeper stopped")
}

func (s *SweeperService) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.SweepOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce expires every reservation whose hold has lapsed and reports
// how many were swept.
func (s *SweeperService) SweepOnce(ctx context.Context) int64 {
	expired, err := s.bookingRepo.ExpireStaleReservations(ctx, time.Now())
	if err != nil {
		if ctx.Err() == nil {
			s.logger.WithError(err).Error("Reservation sweep failed")
		}
		return 0
	}

	if expired > 0 {
		s.logger.WithFields(map[string]interface{}{
			"expired": expired,
			"event":   utils.EventBookingExpired,
		}).Info("Expired stale reservations")
	}

	return expired
}
