package worker_test

import (
	"context"
	"errors"
	"fmt"
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

// stubStorage records removals and can fail for selected keys.
type stubStorage struct {
	mu        sync.Mutex
	removed   []string
	failPaths map[string]bool
}

func newStubStorage() *stubStorage {
	return &stubStorage{failPaths: make(map[string]bool)}
}

func (s *stubStorage) EnsureBucket(ctx context.Context, bucket string) error {
	return nil
}

func (s *stubStorage) PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	return nil
}

func (s *stubStorage) RemoveObject(ctx context.Context, bucket, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPaths[key] {
		return errors.New("object locked")
	}
	s.removed = append(s.removed, key)
	return nil
}

func (s *stubStorage) PresignedGetURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	return "https://storage.test/" + key, nil
}

type sweepFixture struct {
	consumer *worker.CleanupConsumer
	storage  *stubStorage
	repo     *repository.Repository
}

func setupSweep(t *testing.T) *sweepFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	envCfg := &config.EnvConfig{}
	envCfg.Photo.Bucket = "event-photos"
	cfg := &config.Config{EnvConfig: envCfg}

	storage := newStubStorage()
	inf := &infra.Infra{
		Redis:   &infra.RedisClient{Client: client},
		Storage: storage,
		Logger:  infra.NewStdoutLoggerClient(),
	}
	repo := repository.InitRepository(inf)

	return &sweepFixture{
		consumer: worker.NewCleanupConsumer(nil, cfg, inf, repo),
		storage:  storage,
		repo:     repo,
	}
}

func seedExpiredEvent(t *testing.T, repo *repository.Repository, eventID string, photoCount int) []entity.Photo {
	t.Helper()
	ctx := t.Context()

	now := time.Now()
	event := &entity.Event{
		ID:               eventID,
		Name:             "Done",
		MaxPhotosPerUser: 10,
		ExpiryDays:       1,
		ExpiresAt:        now.Add(-time.Hour),
		CreatedAt:        now.AddDate(0, 0, -1),
	}
	require.NoError(t, repo.EventRepo.Create(ctx, event))

	photos := make([]entity.Photo, 0, photoCount)
	for i := 0; i < photoCount; i++ {
		userID := fmt.Sprintf("user-%d", i%2)
		photoID := fmt.Sprintf("ph-%d", i)
		photo := entity.Photo{
			ID:         photoID,
			EventID:    eventID,
			UserID:     userID,
			Path:       entity.PhotoObjectPath(eventID, userID, photoID),
			UploadedAt: now.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.PhotoRepo.Create(ctx, &photo))
		photos = append(photos, photo)
	}
	return photos
}

func TestSweepEvent(t *testing.T) {
	f := setupSweep(t)
	ctx := t.Context()

	photos := seedExpiredEvent(t, f.repo, "evt-old", 4)
	require.NoError(t, f.consumer.SweepEvent(ctx, "evt-old"))

	// Event and every photo record are gone; every blob was removed.
	_, err := f.repo.EventRepo.FindByID(ctx, "evt-old")
	assert.ErrorIs(t, err, repository.ErrEventNotFound)

	remaining, err := f.repo.PhotoRepo.FindByEvent(ctx, "evt-old")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	paths := make([]string, 0, len(photos))
	for _, photo := range photos {
		paths = append(paths, photo.Path)
	}
	assert.ElementsMatch(t, paths, f.storage.removed)
}

func TestSweepEventSkipsBlobFailures(t *testing.T) {
	f := setupSweep(t)
	ctx := t.Context()

	photos := seedExpiredEvent(t, f.repo, "evt-old", 3)
	f.storage.failPaths[photos[1].Path] = true

	// One stuck blob must not abort the run: the rest of the photos and
	// the event record are still reclaimed.
	require.NoError(t, f.consumer.SweepEvent(ctx, "evt-old"))

	_, err := f.repo.EventRepo.FindByID(ctx, "evt-old")
	assert.ErrorIs(t, err, repository.ErrEventNotFound)

	remaining, err := f.repo.PhotoRepo.FindByEvent(ctx, "evt-old")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	assert.Len(t, f.storage.removed, 2)
}

func TestSweepEventWithoutPhotos(t *testing.T) {
	f := setupSweep(t)
	ctx := t.Context()

	seedExpiredEvent(t, f.repo, "evt-empty", 0)
	require.NoError(t, f.consumer.SweepEvent(ctx, "evt-empty"))

	_, err := f.repo.EventRepo.FindByID(ctx, "evt-empty")
	assert.ErrorIs(t, err, repository.ErrEventNotFound)
	assert.Empty(t, f.storage.removed)
}

// Repeated sweeps of the same event are harmless; the scanner may enqueue an
// event twice across runs before the first job lands.
func TestSweepEventIdempotent(t *testing.T) {
	f := setupSweep(t)
	ctx := t.Context()

	seedExpiredEvent(t, f.repo, "evt-old", 2)
	require.NoError(t, f.consumer.SweepEvent(ctx, "evt-old"))
	require.NoError(t, f.consumer.SweepEvent(ctx, "evt-old"))

	_, err := f.repo.EventRepo.FindByID(ctx, "evt-old")
	assert.ErrorIs(t, err, repository.ErrEventNotFound)
}
