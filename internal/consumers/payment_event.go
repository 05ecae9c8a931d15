package consumers

import (
	"context"
	"encoding/json"

	"github.com/Behyna/paymentbot/internal/service"
	"github.com/Behyna/paymentbot/pkg/mq"
	"go.uber.org/zap"
)

type PaymentEventConsumer interface {
	Consume(ctx context.Context) error
}

type paymentEventConsumer struct {
	service  service.PaymentLogService
	consumer mq.Consumer
	queue    string
	logger   *zap.Logger
}

func NewPaymentEventConsumer(service service.PaymentLogService, consumer mq.Consumer, queue string,
	logger *zap.Logger) PaymentEventConsumer {
	return &paymentEventConsumer{service: service, consumer: consumer, queue: queue, logger: logger}
}

func (p *paymentEventConsumer) Consume(ctx context.Context) error {
	return p.consumer.Consume(ctx, p.queue, p.handleMessage)
}

func (p *paymentEventConsumer) handleMessage(ctx context.Context, body []byte) error {
	p.logger.Debug("received payment event", zap.ByteString("body", body))

	var event service.PaymentEventMessage
	if err := json.Unmarshal(body, &event); err != nil {
		p.logger.Warn("invalid payment event", zap.Error(err))
		return err
	}

	return p.service.Store(ctx, event)
}
