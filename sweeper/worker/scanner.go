package worker

import (
	"context"
	"time"

	"github.com/eventsnap/eventsnap-service/config"
	"github.com/eventsnap/eventsnap-service/infra"
	"github.com/eventsnap/eventsnap-service/repository"
)

// CleanupPublisher enqueues a cleanup job for one expired event.
// produce.CleanupService is the production implementation.
type CleanupPublisher interface {
	PublishEventCleanup(ctx context.Context, eventID string, expiredAt time.Time) error
}

// ExpiryScanner walks all event records on a fixed interval and enqueues a
// cleanup job for each one past its deadline. A single scanner instance is
// assumed; nothing guards concurrent scanners against publishing the same
// event twice (SweepEvent tolerates repeats).
type ExpiryScanner struct {
	config     *config.Config
	infra      *infra.Infra
	repository *repository.Repository
	publisher  CleanupPublisher
}

func NewExpiryScanner(cfg *config.Config, infra *infra.Infra, repo *repository.Repository, publisher CleanupPublisher) *ExpiryScanner {
	return &ExpiryScanner{
		config:     cfg,
		infra:      infra,
		repository: repo,
		publisher:  publisher,
	}
}

// Start runs the scan loop until the context is cancelled. The first scan
// happens immediately, then on every tick.
func (s *ExpiryScanner) Start(ctx context.Context) {
	interval := s.config.EnvConfig.Sweeper.Interval
	s.infra.Logger.InfoWithContextf(ctx, "[Expiry Scanner] Started with interval %s", interval)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		s.Scan(ctx)

		for {
			select {
			case <-ctx.Done():
				s.infra.Logger.InfoWithContextf(ctx, "[Expiry Scanner] Shutting down...")
				return
			case <-ticker.C:
				s.Scan(ctx)
			}
		}
	}()
}

// Scan performs one pass: every event past its deadline gets a cleanup job
// enqueued, live events are left alone.
func (s *ExpiryScanner) Scan(ctx context.Context) {
	events, err := s.repository.EventRepo.All(ctx)
	if err != nil {
		s.infra.Logger.ErrorWithContextf(ctx, err, "[Expiry Scanner] Failed to scan events")
		return
	}

	now := time.Now()
	expired := 0
	for _, event := range events {
		if !event.Expired(now) {
			continue
		}
		if err := s.publisher.PublishEventCleanup(ctx, event.ID, event.ExpiresAt); err != nil {
			s.infra.Logger.ErrorWithContextf(ctx, err, "[Expiry Scanner] Failed to publish cleanup for event %s", event.ID)
			continue
		}
		expired++
	}

	s.infra.Logger.InfoWithContextf(ctx, "[Expiry Scanner] Scan complete: %d events, %d expired", len(events), expired)
}
