package service

import (
	"context"
	"errors"

	"github.com/Behyna/paymentbot/internal/constants"
	"github.com/Behyna/paymentbot/internal/model"
	"github.com/Behyna/paymentbot/internal/repository"
	"github.com/Behyna/paymentbot/pkg/mq"
	"go.uber.org/zap"
)

var ErrInvalidPaymentEvent = errors.New("INVALID_PAYMENT_EVENT")

// PaymentLogService stores published payment outcomes for auditing.
type PaymentLogService interface {
	Store(ctx context.Context, event PaymentEventMessage) error
}

type PaymentLog struct {
	repo   repository.PaymentEventRepository
	logger *zap.Logger
}

func NewPaymentLogService(repo repository.PaymentEventRepository, logger *zap.Logger) PaymentLogService {
	return &PaymentLog{repo: repo, logger: logger}
}

// Store writes the event once. Redeliveries of a stored event succeed
// without a second row; database failures are returned as temporary so the
// message is requeued.
func (p *PaymentLog) Store(ctx context.Context, event PaymentEventMessage) error {
	if event.TelegramPaymentChargeID == "" || event.Kind == "" {
		return ErrInvalidPaymentEvent
	}

	err := p.repo.Create(ctx, &model.PaymentEvent{
		Kind:                    event.Kind,
		TelegramPaymentChargeID: event.TelegramPaymentChargeID,
		ProviderPaymentChargeID: event.ProviderPaymentChargeID,
		ChatID:                  event.ChatID,
		UserID:                  event.UserID,
		Currency:                event.Currency,
		TotalAmount:             event.TotalAmount,
		Payload:                 event.Payload,
		OccurredAt:              event.OccurredAt,
	})
	if errors.Is(err, repository.ErrPaymentEventExisted) {
		p.logger.Info("Payment event already stored",
			zap.String("kind", event.Kind),
			zap.String("chargeID", event.TelegramPaymentChargeID))
		return nil
	}
	if err != nil {
		p.logger.Error("Failed to store payment event",
			zap.String("chargeID", event.TelegramPaymentChargeID),
			zap.Error(err))
		return mq.Temporary(NewServiceError(constants.ErrCodeDatabase, err))
	}

	p.logger.Info("Payment event stored",
		zap.String("kind", event.Kind),
		zap.String("chargeID", event.TelegramPaymentChargeID),
		zap.Int64("userID", event.UserID))

	return nil
}
