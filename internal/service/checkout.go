package service

import (
	"context"

	"github.com/Behyna/paymentbot/internal/constants"
	"github.com/Behyna/paymentbot/pkg/botapi"
	"go.uber.org/zap"
)

// CheckoutService answers the platform's checkout questions. The current
// policy accepts every order; stock or address checks belong here.
type CheckoutService interface {
	AnswerShipping(ctx context.Context, query *botapi.ShippingQuery) error
	AnswerPreCheckout(ctx context.Context, query *botapi.PreCheckoutQuery) error
}

type Checkout struct {
	actions ActionService
	logger  *zap.Logger
}

func NewCheckoutService(actions ActionService, logger *zap.Logger) CheckoutService {
	return &Checkout{actions: actions, logger: logger}
}

func (c *Checkout) AnswerShipping(ctx context.Context, query *botapi.ShippingQuery) error {
	c.logger.Info("Shipping query received",
		zap.String("queryID", query.ID),
		zap.Int64("userID", query.From.ID),
		zap.String("payload", query.Payload))

	if err := c.actions.AnswerShipping(ctx, query.ID, DefaultShippingOptions()); err != nil {
		return NewServiceError(constants.ErrCodeAnswerFailed, err)
	}

	return nil
}

func (c *Checkout) AnswerPreCheckout(ctx context.Context, query *botapi.PreCheckoutQuery) error {
	c.logger.Info("Pre-checkout query received",
		zap.String("queryID", query.ID),
		zap.Int64("userID", query.From.ID),
		zap.String("currency", query.Currency),
		zap.Int("totalAmount", query.TotalAmount))

	if err := c.actions.AnswerPreCheckout(ctx, query.ID, true, ""); err != nil {
		return NewServiceError(constants.ErrCodeAnswerFailed, err)
	}

	return nil
}
