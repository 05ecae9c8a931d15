package mocks

import (
	"context"

	"github.com/Behyna/paymentbot/pkg/botapi"
	"github.com/stretchr/testify/mock"
)

type ActionService struct {
	mock.Mock
}

func (a *ActionService) SendTyping(ctx context.Context, chatID int64) error {
	args := a.Called(ctx, chatID)
	return args.Error(0)
}

func (a *ActionService) SendText(ctx context.Context, chatID int64, text string) (int, error) {
	args := a.Called(ctx, chatID, text)
	return args.Int(0), args.Error(1)
}

func (a *ActionService) SendKeyboard(ctx context.Context, chatID int64, text string, keyboard [][]botapi.Button) (int, error) {
	args := a.Called(ctx, chatID, text, keyboard)
	return args.Int(0), args.Error(1)
}

func (a *ActionService) EditText(ctx context.Context, chatID int64, messageID int, text string) error {
	args := a.Called(ctx, chatID, messageID, text)
	return args.Error(0)
}

func (a *ActionService) SendInvoice(ctx context.Context, chatID int64) error {
	args := a.Called(ctx, chatID)
	return args.Error(0)
}

func (a *ActionService) SendStarsInvoice(ctx context.Context, chatID int64) error {
	args := a.Called(ctx, chatID)
	return args.Error(0)
}

func (a *ActionService) CreateInvoiceLink(ctx context.Context) (string, error) {
	args := a.Called(ctx)
	return args.String(0), args.Error(1)
}

func (a *ActionService) CreateStarsInvoiceLink(ctx context.Context) (string, error) {
	args := a.Called(ctx)
	return args.String(0), args.Error(1)
}

func (a *ActionService) AnswerCallback(ctx context.Context, queryID string) error {
	args := a.Called(ctx, queryID)
	return args.Error(0)
}

func (a *ActionService) AnswerShipping(ctx context.Context, queryID string, options []botapi.ShippingOption) error {
	args := a.Called(ctx, queryID, options)
	return args.Error(0)
}

func (a *ActionService) RejectShipping(ctx context.Context, queryID, reason string) error {
	args := a.Called(ctx, queryID, reason)
	return args.Error(0)
}

func (a *ActionService) AnswerPreCheckout(ctx context.Context, queryID string, ok bool, reason string) error {
	args := a.Called(ctx, queryID, ok, reason)
	return args.Error(0)
}

func (a *ActionService) StarBalance(ctx context.Context) (botapi.StarAmount, error) {
	args := a.Called(ctx)
	return args.Get(0).(botapi.StarAmount), args.Error(1)
}

func (a *ActionService) StarTransactions(ctx context.Context) ([]botapi.StarTransaction, error) {
	args := a.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]botapi.StarTransaction), args.Error(1)
}

func (a *ActionService) RefundStarPayment(ctx context.Context, userID int64, chargeID string) error {
	args := a.Called(ctx, userID, chargeID)
	return args.Error(0)
}
