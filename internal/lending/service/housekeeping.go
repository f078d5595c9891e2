package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/hwlend/internal/lending/store"
	"github.com/aussiebroadwan/hwlend/pkg/slogx"
)

// HousekeepingService periodically clears expired password reset tokens and,
// when configured, archives new usage records.
type HousekeepingService struct {
	Store    store.Store
	Archiver *ArchiveService // optional
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval defaults to one hour.
func NewHousekeepingService(st store.Store, archiver *ArchiveService, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &HousekeepingService{
		Store:    st,
		Archiver: archiver,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the worker in the background until Stop is called.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval, "archive", s.Archiver != nil)
}

// Stop shuts the worker down, waiting for an in-progress run to finish.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.RunOnce(context.Background())

	for {
		select {
		case <-ticker.C:
			s.RunOnce(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// RunOnce performs one cleanup pass. Each task is independent; a failure is
// logged and the next task still runs.
func (s *HousekeepingService) RunOnce(ctx context.Context) {
	ctx = slogx.WithContext(ctx, s.Logger)
	s.Logger.Debug("starting housekeeping run")

	purged, err := s.Store.Users().PurgeExpiredResetTokens(ctx, time.Now())
	if err != nil {
		s.Logger.Error("failed to purge expired reset tokens", "error", err)
	} else if purged > 0 {
		s.Logger.Info("purged expired reset tokens", "count", purged)
	}

	if s.Archiver != nil {
		n, err := s.Archiver.Archive(ctx)
		if err != nil {
			s.Logger.Error("usage archive failed", "error", err, "archived", n)
		} else if n > 0 {
			s.Logger.Info("usage archived", "records", n)
		}
	}
}
