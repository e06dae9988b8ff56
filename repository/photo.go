package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/eventsnap/eventsnap-service/entity"
	"github.com/eventsnap/eventsnap-service/infra"
)

func photoKey(eventID, userID, photoID string) string {
	return fmt.Sprintf("photo:%s:%s:%s", eventID, userID, photoID)
}

func eventPhotoPrefix(eventID string) string {
	return fmt.Sprintf("photo:%s:", eventID)
}

func userPhotoPrefix(eventID, userID string) string {
	return fmt.Sprintf("photo:%s:%s:", eventID, userID)
}

// PhotoRepository persists photo metadata under
// photo:<eventId>:<userId>:<photoId>. The composite key is the only link
// between a photo and its event; prefix scans do the per-event and
// per-(event,user) retrieval.
type PhotoRepository struct {
	redis *infra.RedisClient
}

func NewPhotoRepository(redis *infra.RedisClient) *PhotoRepository {
	return &PhotoRepository{redis: redis}
}

func (r *PhotoRepository) Create(ctx context.Context, photo *entity.Photo) error {
	key := photoKey(photo.EventID, photo.UserID, photo.ID)
	if err := r.redis.Set(ctx, key, photo, 0); err != nil {
		return fmt.Errorf("failed to persist photo metadata: %w", err)
	}
	return nil
}

// FindByEvent returns all photo records for an event, oldest upload first.
func (r *PhotoRepository) FindByEvent(ctx context.Context, eventID string) ([]entity.Photo, error) {
	values, err := r.redis.GetByPrefix(ctx, eventPhotoPrefix(eventID))
	if err != nil {
		return nil, fmt.Errorf("failed to scan photos: %w", err)
	}

	photos := make([]entity.Photo, 0, len(values))
	for _, data := range values {
		var photo entity.Photo
		if err := json.Unmarshal(data, &photo); err != nil {
			return nil, fmt.Errorf("failed to decode photo record: %w", err)
		}
		photos = append(photos, photo)
	}

	// Scan order is not defined; order by upload time for stable listings.
	sort.Slice(photos, func(i, j int) bool {
		if photos[i].UploadedAt.Equal(photos[j].UploadedAt) {
			return photos[i].ID < photos[j].ID
		}
		return photos[i].UploadedAt.Before(photos[j].UploadedAt)
	})

	return photos, nil
}

// CountByEventAndUser counts the photos one participant has contributed to
// one event. This is the quota read; it is not atomic with the subsequent
// metadata write, so concurrent uploads near the boundary can overshoot.
func (r *PhotoRepository) CountByEventAndUser(ctx context.Context, eventID, userID string) (int, error) {
	count, err := r.redis.CountByPrefix(ctx, userPhotoPrefix(eventID, userID))
	if err != nil {
		return 0, fmt.Errorf("failed to count photos: %w", err)
	}
	return count, nil
}

func (r *PhotoRepository) Delete(ctx context.Context, eventID, userID, photoID string) error {
	return r.redis.Delete(ctx, photoKey(eventID, userID, photoID))
}
