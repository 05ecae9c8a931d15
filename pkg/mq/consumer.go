package mq

import (
	"context"
)

type Handle func(ctx context.Context, body []byte) error

type Consumer interface {
	Consume(ctx context.Context, queue string, handler Handle) error
}

type rabbitConsumer struct {
	ch       delivererChannel
	prefetch int
}

// Consume acks every delivery the handler accepts, requeues temporary
// failures and drops the rest. It returns when ctx is done or the broker
// closes the delivery channel.
func (c *rabbitConsumer) Consume(ctx context.Context, queue string, handler Handle) error {
	prefetch := c.prefetch
	if prefetch <= 0 {
		prefetch = 1
	}

	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return err
	}

	deliveries, err := c.ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			_ = c.ch.Cancel("", false)
			return ctx.Err()

		case d, ok := <-deliveries:
			if !ok {
				return nil
			}

			if err := handler(ctx, d.Body); err != nil {
				_ = d.Nack(false, IsTemporary(err))
				continue
			}

			_ = d.Ack(false)
		}
	}
}
