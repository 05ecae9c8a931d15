package mocks

import (
	"context"

	"github.com/Behyna/paymentbot/pkg/botapi"
	"github.com/stretchr/testify/mock"
)

type Gateway struct {
	mock.Mock
}

func (g *Gateway) Do(ctx context.Context, action botapi.Action) (botapi.Result, error) {
	args := g.Called(ctx, action)
	return args.Get(0).(botapi.Result), args.Error(1)
}
