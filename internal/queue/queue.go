// Package queue moves image cleanup out of the request path through RabbitMQ.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"pinboard/internal/storage"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"
)

const ImageCleanupQueue = "image_cleanup_queue"

// CleanupJob asks the worker to delete one stored image.
type CleanupJob struct {
	Path string `json:"path"`
}

// Publisher is the part of *amqp.Channel the discarder needs.
type Publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Connect dials the broker, opens a channel and declares the cleanup queue.
func Connect(url string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("amqp channel: %w", err)
	}

	if _, err := ch.QueueDeclare(ImageCleanupQueue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("declare %s: %w", ImageCleanupQueue, err)
	}
	return conn, ch, nil
}

// Discarder publishes a cleanup job instead of deleting the image inline.
type Discarder struct {
	pub Publisher
}

var _ storage.Discarder = (*Discarder)(nil)

func NewDiscarder(pub Publisher) *Discarder {
	return &Discarder{pub: pub}
}

func (d *Discarder) Discard(_ context.Context, path string) error {
	if path == "" {
		return nil
	}
	body, err := json.Marshal(CleanupJob{Path: path})
	if err != nil {
		return err
	}
	return d.pub.Publish("", ImageCleanupQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

// StartCleanupWorker consumes cleanup jobs until the channel closes.
func StartCleanupWorker(ctx context.Context, ch *amqp.Channel, store storage.ImageStore) error {
	msgs, err := ch.Consume(ImageCleanupQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", ImageCleanupQueue, err)
	}

	go func() {
		log.Info().Str("queue", ImageCleanupQueue).Msg("🧹 image cleanup worker started")
		for d := range msgs {
			Settle(ctx, d, store)
		}
		log.Info().Msg("image cleanup worker stopped")
	}()
	return nil
}

// Settle runs one delivery and acknowledges it. A job that fails because ctx
// was cancelled goes back to the queue; any other failure is dropped.
func Settle(ctx context.Context, d amqp.Delivery, store storage.ImageStore) {
	err := HandleCleanup(ctx, d.Body, store)
	if err == nil {
		if ackErr := d.Ack(false); ackErr != nil {
			log.Warn().Err(ackErr).Msg("cleanup ack failed")
		}
		return
	}

	requeue := ctx.Err() != nil
	if requeue {
		log.Warn().Err(err).Str("queue", ImageCleanupQueue).Msg("image cleanup interrupted, requeueing")
	} else {
		log.Error().Err(err).Str("queue", ImageCleanupQueue).Msg("image cleanup failed")
	}
	if nackErr := d.Nack(false, requeue); nackErr != nil {
		log.Warn().Err(nackErr).Msg("cleanup nack failed")
	}
}

// HandleCleanup processes one job body.
func HandleCleanup(ctx context.Context, body []byte, store storage.ImageStore) error {
	var job CleanupJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("decode cleanup job: %w", err)
	}
	if job.Path == "" {
		return nil
	}
	if err := store.Remove(ctx, job.Path); err != nil {
		return fmt.Errorf("remove %s: %w", job.Path, err)
	}
	log.Debug().Str("path", job.Path).Msg("image removed")
	return nil
}
