package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventsnap/eventsnap-service/config"
	"github.com/eventsnap/eventsnap-service/entity"
	"github.com/eventsnap/eventsnap-service/infra"
	"github.com/eventsnap/eventsnap-service/repository"
	"github.com/eventsnap/eventsnap-service/sweeper/worker"
)

// stubPublisher records published cleanup jobs.
type stubPublisher struct {
	mu         sync.Mutex
	published  []string
	publishErr error
}

func (p *stubPublisher) PublishEventCleanup(ctx context.Context, eventID string, expiredAt time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.publishErr != nil {
		return p.publishErr
	}
	p.published = append(p.published, eventID)
	return nil
}

type scanFixture struct {
	scanner   *worker.ExpiryScanner
	publisher *stubPublisher
	repo      *repository.Repository
}

func setupScan(t *testing.T) *scanFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	envCfg := &config.EnvConfig{}
	envCfg.Sweeper.Interval = time.Hour
	cfg := &config.Config{EnvConfig: envCfg}

	inf := &infra.Infra{
		Redis:  &infra.RedisClient{Client: client},
		Logger: infra.NewStdoutLoggerClient(),
	}
	repo := repository.InitRepository(inf)
	publisher := &stubPublisher{}

	return &scanFixture{
		scanner:   worker.NewExpiryScanner(cfg, inf, repo, publisher),
		publisher: publisher,
		repo:      repo,
	}
}

func seedEvent(t *testing.T, repo *repository.Repository, eventID string, expiresAt time.Time) {
	t.Helper()
	event := &entity.Event{
		ID:               eventID,
		Name:             "Test",
		MaxPhotosPerUser: 5,
		ExpiryDays:       7,
		ExpiresAt:        expiresAt,
		CreatedAt:        expiresAt.AddDate(0, 0, -7),
	}
	require.NoError(t, repo.EventRepo.Create(t.Context(), event))
}

func TestScanPublishesOnlyExpiredEvents(t *testing.T) {
	f := setupScan(t)

	seedEvent(t, f.repo, "evt-expired", time.Now().Add(-time.Hour))
	seedEvent(t, f.repo, "evt-live", time.Now().Add(time.Hour))

	f.scanner.Scan(t.Context())

	assert.Equal(t, []string{"evt-expired"}, f.publisher.published)

	// The scanner never deletes; both records stay until the consumer
	// sweeps them.
	events, err := f.repo.EventRepo.All(t.Context())
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestScanWithoutEvents(t *testing.T) {
	f := setupScan(t)

	f.scanner.Scan(t.Context())
	assert.Empty(t, f.publisher.published)
}

func TestScanContinuesPastPublishFailure(t *testing.T) {
	f := setupScan(t)

	seedEvent(t, f.repo, "evt-expired", time.Now().Add(-time.Hour))
	f.publisher.publishErr = errors.New("broker unavailable")

	// A publish failure is logged and retried on the next tick, never fatal.
	f.scanner.Scan(t.Context())
	assert.Empty(t, f.publisher.published)
}
