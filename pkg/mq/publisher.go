package mq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher interface {
	PublishJSON(ctx context.Context, queue string, payload any) error
	Close() error
}

type rabbitPublisher struct {
	ch *amqp.Channel
}

func (p *rabbitPublisher) PublishJSON(ctx context.Context, queue string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding error: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	}

	return p.ch.PublishWithContext(ctx, "", queue, false, false, msg)
}

func (p *rabbitPublisher) Close() error {
	if p.ch != nil {
		return p.ch.Close()
	}

	return nil
}
