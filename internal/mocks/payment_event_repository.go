package mocks

import (
	"context"

	"github.com/Behyna/paymentbot/internal/model"
	"github.com/stretchr/testify/mock"
)

type PaymentEventRepository struct {
	mock.Mock
}

func (p *PaymentEventRepository) Create(ctx context.Context, event *model.PaymentEvent) error {
	args := p.Called(ctx, event)
	return args.Error(0)
}

func (p *PaymentEventRepository) GetByChargeID(ctx context.Context, kind, chargeID string) (*model.PaymentEvent, error) {
	args := p.Called(ctx, kind, chargeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentEvent), args.Error(1)
}
