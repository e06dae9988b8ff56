package worker

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/eventsnap/eventsnap-service/config"
	"github.com/eventsnap/eventsnap-service/infra"
	"github.com/eventsnap/eventsnap-service/infra/produce"
	"github.com/eventsnap/eventsnap-service/repository"
)

// CleanupConsumer drains event.cleanup jobs and removes everything an expired
// event owns: the photo blobs, the photo records, then the event record.
type CleanupConsumer struct {
	channel    *amqp.Channel
	config     *config.Config
	infra      *infra.Infra
	repository *repository.Repository
}

func NewCleanupConsumer(channel *amqp.Channel, cfg *config.Config, infra *infra.Infra, repo *repository.Repository) *CleanupConsumer {
	return &CleanupConsumer{
		channel:    channel,
		config:     cfg,
		infra:      infra,
		repository: repo,
	}
}

func (c *CleanupConsumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		produce.EventCleanupQueue,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register event cleanup consumer: %w", err)
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Cleanup Consumer] Started listening for cleanup jobs on queue: %s", produce.EventCleanupQueue)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.infra.Logger.InfoWithContextf(ctx, "[Cleanup Consumer] Shutting down...")
				return
			case msg, ok := <-msgs:
				if !ok {
					c.infra.Logger.WarningWithContextf(ctx, "[Cleanup Consumer] Channel closed")
					return
				}
				c.handleEventCleanup(ctx, msg)
			}
		}
	}()

	return nil
}

func (c *CleanupConsumer) handleEventCleanup(ctx context.Context, msg amqp.Delivery) {
	var payload produce.EventCleanupMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Cleanup Consumer] Failed to unmarshal cleanup message")
		_ = msg.Nack(false, false)
		return
	}

	if err := c.SweepEvent(ctx, payload.EventID); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Cleanup Consumer] Sweep failed for event %s", payload.EventID)
	}

	// Individual deletion failures inside the sweep are logged and skipped,
	// never retried within a run; the job is acked either way.
	_ = msg.Ack(false)
}

// SweepEvent deletes all photos and metadata belonging to one event, then the
// event record itself. Blob or record deletion failures are logged and
// skipped so a single bad object cannot stall reclamation.
func (c *CleanupConsumer) SweepEvent(ctx context.Context, eventID string) error {
	photos, err := c.repository.PhotoRepo.FindByEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to list photos for event %s: %w", eventID, err)
	}

	bucket := c.config.EnvConfig.Photo.Bucket
	for _, photo := range photos {
		if err := c.infra.Storage.RemoveObject(ctx, bucket, photo.Path); err != nil {
			c.infra.Logger.WarningWithContextf(ctx, "[Cleanup Consumer] Failed to delete blob %s: %v", photo.Path, err)
		}
		if err := c.repository.PhotoRepo.Delete(ctx, photo.EventID, photo.UserID, photo.ID); err != nil {
			c.infra.Logger.WarningWithContextf(ctx, "[Cleanup Consumer] Failed to delete photo record %s: %v", photo.ID, err)
		}
	}

	if err := c.repository.EventRepo.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Cleanup Consumer] Deleted expired event %s (%d photos)", eventID, len(photos))
	return nil
}
