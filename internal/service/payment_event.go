package service

import (
	"context"
	"time"

	"github.com/Behyna/paymentbot/internal/config"
	"github.com/Behyna/paymentbot/internal/constants"
	"github.com/Behyna/paymentbot/pkg/botapi"
	"github.com/Behyna/paymentbot/pkg/mq"
	"go.uber.org/zap"
)

const (
	PaymentKindSuccessful = "successful"
	PaymentKindRefunded   = "refunded"
)

// PaymentEventMessage is the body published for every settled payment or
// refund.
type PaymentEventMessage struct {
	Kind                    string    `json:"kind"`
	ChatID                  int64     `json:"chatId"`
	UserID                  int64     `json:"userId"`
	Currency                string    `json:"currency"`
	TotalAmount             int       `json:"totalAmount"`
	Payload                 string    `json:"payload"`
	TelegramPaymentChargeID string    `json:"telegramPaymentChargeId"`
	ProviderPaymentChargeID string    `json:"providerPaymentChargeId,omitempty"`
	OccurredAt              time.Time `json:"occurredAt"`
}

type PaymentEventService interface {
	Record(ctx context.Context, msg *botapi.TextMessage) error
}

type PaymentEvents struct {
	publisher mq.Publisher
	queue     string
	logger    *zap.Logger
}

// NewPaymentEventService logs outcomes and, when publisher is not nil,
// forwards them to the payments queue.
func NewPaymentEventService(publisher mq.Publisher, cfg *config.Config, logger *zap.Logger) PaymentEventService {
	return &PaymentEvents{publisher: publisher, queue: cfg.RabbitMQ.PaymentsQueue, logger: logger}
}

func (p *PaymentEvents) Record(ctx context.Context, msg *botapi.TextMessage) error {
	event, ok := NewPaymentEventMessage(msg, time.Now().UTC())
	if !ok {
		return nil
	}

	p.logger.Info("Payment outcome received",
		zap.String("kind", event.Kind),
		zap.Int64("chatID", event.ChatID),
		zap.Int64("userID", event.UserID),
		zap.String("currency", event.Currency),
		zap.Int("totalAmount", event.TotalAmount),
		zap.String("chargeID", event.TelegramPaymentChargeID))

	if p.publisher == nil {
		return nil
	}

	if err := p.publisher.PublishJSON(ctx, p.queue, event); err != nil {
		p.logger.Error("Failed to publish payment event",
			zap.String("chargeID", event.TelegramPaymentChargeID),
			zap.Error(err))
		return NewServiceError(constants.ErrCodePublishFailed, err)
	}

	return nil
}

func NewPaymentEventMessage(msg *botapi.TextMessage, at time.Time) (PaymentEventMessage, bool) {
	event := PaymentEventMessage{ChatID: msg.ChatID, UserID: msg.From.ID, OccurredAt: at}

	switch p := msg.Payment.(type) {
	case *botapi.SuccessfulPayment:
		event.Kind = PaymentKindSuccessful
		event.Currency = p.Currency
		event.TotalAmount = p.TotalAmount
		event.Payload = p.Payload
		event.TelegramPaymentChargeID = p.TelegramPaymentChargeID
		event.ProviderPaymentChargeID = p.ProviderPaymentChargeID
	case *botapi.RefundedPayment:
		event.Kind = PaymentKindRefunded
		event.Currency = p.Currency
		event.TotalAmount = p.TotalAmount
		event.Payload = p.Payload
		event.TelegramPaymentChargeID = p.TelegramPaymentChargeID
	default:
		return PaymentEventMessage{}, false
	}

	return event, true
}
