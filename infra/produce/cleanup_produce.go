package produce

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventExchange          = "event.exchange"
	EventCleanupQueue      = "event.cleanup"
	EventCleanupRoutingKey = "event.cleanup"
)

type CleanupService struct {
	channel *amqp.Channel
}

// EventCleanupMessage requests removal of one expired event: all photo blobs
// under its storage prefix, all photo records, then the event record.
type EventCleanupMessage struct {
	EventID   string    `json:"event_id"`
	ExpiredAt time.Time `json:"expired_at"`
	Timestamp int64     `json:"timestamp"`
}

func InitCleanupService(channel *amqp.Channel) *CleanupService {
	service := &CleanupService{
		channel: channel,
	}

	// Declare exchange
	err := channel.ExchangeDeclare(
		EventExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare Event exchange: " + err.Error())
	}

	// Declare cleanup queue
	_, err = channel.QueueDeclare(
		EventCleanupQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		panic("Failed to declare Event cleanup queue: " + err.Error())
	}

	// Bind cleanup queue to exchange
	err = channel.QueueBind(
		EventCleanupQueue,
		EventCleanupRoutingKey,
		EventExchange,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to bind Event cleanup queue: " + err.Error())
	}

	return service
}

func (s *CleanupService) PublishEventCleanup(ctx context.Context, eventID string, expiredAt time.Time) error {
	message := EventCleanupMessage{
		EventID:   eventID,
		ExpiredAt: expiredAt,
		Timestamp: time.Now().Unix(),
	}

	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	return s.channel.PublishWithContext(
		ctx,
		EventExchange,
		EventCleanupRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
}
