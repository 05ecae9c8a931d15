package mocks

import (
	"context"

	"github.com/Behyna/paymentbot/pkg/mq"
	"github.com/stretchr/testify/mock"
)

type Publisher struct {
	mock.Mock
}

func (p *Publisher) PublishJSON(ctx context.Context, queue string, payload any) error {
	args := p.Called(ctx, queue, payload)
	return args.Error(0)
}

func (p *Publisher) Close() error {
	args := p.Called()
	return args.Error(0)
}

type Consumer struct {
	mock.Mock
}

func (c *Consumer) Consume(ctx context.Context, queue string, handler mq.Handle) error {
	args := c.Called(ctx, queue, handler)
	return args.Error(0)
}
