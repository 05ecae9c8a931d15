package mocks

import (
	"context"

	"github.com/Behyna/paymentbot/internal/service"
	"github.com/Behyna/paymentbot/pkg/botapi"
	"github.com/stretchr/testify/mock"
)

type MenuService struct {
	mock.Mock
}

func (m *MenuService) Start(ctx context.Context, chatID int64, from botapi.User) error {
	args := m.Called(ctx, chatID, from)
	return args.Error(0)
}

func (m *MenuService) Handle(ctx context.Context, query *botapi.CallbackQuery) error {
	args := m.Called(ctx, query)
	return args.Error(0)
}

type CheckoutService struct {
	mock.Mock
}

func (c *CheckoutService) AnswerShipping(ctx context.Context, query *botapi.ShippingQuery) error {
	args := c.Called(ctx, query)
	return args.Error(0)
}

func (c *CheckoutService) AnswerPreCheckout(ctx context.Context, query *botapi.PreCheckoutQuery) error {
	args := c.Called(ctx, query)
	return args.Error(0)
}

type PaymentEventService struct {
	mock.Mock
}

func (p *PaymentEventService) Record(ctx context.Context, msg *botapi.TextMessage) error {
	args := p.Called(ctx, msg)
	return args.Error(0)
}

type PaymentLogService struct {
	mock.Mock
}

func (p *PaymentLogService) Store(ctx context.Context, event service.PaymentEventMessage) error {
	args := p.Called(ctx, event)
	return args.Error(0)
}
