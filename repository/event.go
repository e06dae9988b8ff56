package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eventsnap/eventsnap-service/entity"
	"github.com/eventsnap/eventsnap-service/infra"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrEventExpired  = errors.New("event has expired")
)

const eventKeyPrefix = "event:"

func eventKey(eventID string) string {
	return eventKeyPrefix + eventID
}

// EventRepository persists event records in the key-value store under
// event:<id>. Records are kept without a store-level TTL: an expired event
// must stay readable (as expired) until the sweeper removes it.
type EventRepository struct {
	redis *infra.RedisClient
}

func NewEventRepository(redis *infra.RedisClient) *EventRepository {
	return &EventRepository{redis: redis}
}

func (r *EventRepository) Create(ctx context.Context, event *entity.Event) error {
	if err := r.redis.Set(ctx, eventKey(event.ID), event, 0); err != nil {
		return fmt.Errorf("failed to persist event: %w", err)
	}
	return nil
}

// FindByID returns the raw event record regardless of expiry state.
func (r *EventRepository) FindByID(ctx context.Context, eventID string) (*entity.Event, error) {
	var event entity.Event
	err := r.redis.Get(ctx, eventKey(eventID), &event)
	if err != nil {
		if errors.Is(err, infra.ErrKeyNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}
	return &event, nil
}

// FindActiveByID returns the event, failing with ErrEventExpired when its
// deadline has passed. The record itself survives until swept.
func (r *EventRepository) FindActiveByID(ctx context.Context, eventID string) (*entity.Event, error) {
	event, err := r.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Expired(time.Now()) {
		return nil, ErrEventExpired
	}
	return event, nil
}

// All returns every stored event record, expired or not.
func (r *EventRepository) All(ctx context.Context) ([]entity.Event, error) {
	values, err := r.redis.GetByPrefix(ctx, eventKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to scan events: %w", err)
	}

	events := make([]entity.Event, 0, len(values))
	for _, data := range values {
		var event entity.Event
		if err := json.Unmarshal(data, &event); err != nil {
			return nil, fmt.Errorf("failed to decode event record: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}

func (r *EventRepository) Delete(ctx context.Context, eventID string) error {
	return r.redis.Delete(ctx, eventKey(eventID))
}
