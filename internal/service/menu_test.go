package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Behyna/paymentbot/internal/constants"
	"github.com/Behyna/paymentbot/internal/mocks"
	"github.com/Behyna/paymentbot/internal/service"
	"github.com/Behyna/paymentbot/pkg/botapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPaymentMenu(t *testing.T) {
	keyboard := service.NewPaymentMenu().Keyboard()

	expected := [][]botapi.Button{
		{{Text: "Pay via provider", CallbackData: "via-provider"}},
		{{Text: "Pay via invoice link", CallbackData: "invoice-link"}},
		{{Text: "Pay by Telegram Stars", CallbackData: "telegram-stars"}},
		{{Text: "Pay by Telegram Stars via invoice link", CallbackData: "stars-link"}},
		{{Text: "Refund recent transaction", CallbackData: "refund-recent-tx"}},
		{{Text: "Get star balance", CallbackData: "star-balance"}},
		{{Text: "Get non-refunded transactions", CallbackData: "non-refunded-tx"}},
	}

	assert.Equal(t, expected, keyboard)

	for _, row := range keyboard {
		token, err := service.ParseCallbackToken(row[0].CallbackData)
		assert.NoError(t, err)
		assert.Equal(t, row[0].CallbackData, string(token))
	}
}

func TestMenu_Start(t *testing.T) {
	ctx := context.Background()

	t.Run("Greets the user and shows the seven options", func(t *testing.T) {
		actions := &mocks.ActionService{}
		menu := service.NewMenuService(actions, zap.NewNop())

		var calls []string
		actions.On("SendTyping", ctx, int64(42)).
			Run(func(mock.Arguments) { calls = append(calls, "typing") }).Return(nil)
		actions.On("SendText", ctx, int64(42), "Hello, Ana").
			Run(func(mock.Arguments) { calls = append(calls, "greeting") }).Return(1, nil)
		actions.On("SendKeyboard", ctx, int64(42), "What would you like to do?", service.NewPaymentMenu().Keyboard()).
			Run(func(mock.Arguments) { calls = append(calls, "menu") }).Return(2, nil)

		err := menu.Start(ctx, 42, botapi.User{ID: 7, FirstName: "Ana"})

		assert.NoError(t, err)
		assert.Equal(t, []string{"typing", "greeting", "menu"}, calls)
		actions.AssertExpectations(t)
	})

	t.Run("Typing failure does not stop the greeting", func(t *testing.T) {
		actions := &mocks.ActionService{}
		menu := service.NewMenuService(actions, zap.NewNop())

		actions.On("SendTyping", ctx, int64(42)).Return(botapi.ErrTooManyRequests)
		actions.On("SendText", ctx, int64(42), "Hello, Ana").Return(1, nil)
		actions.On("SendKeyboard", ctx, int64(42), mock.Anything, mock.Anything).Return(2, nil)

		assert.NoError(t, menu.Start(ctx, 42, botapi.User{FirstName: "Ana"}))
		actions.AssertExpectations(t)
	})

	t.Run("Greeting failure ends the flow", func(t *testing.T) {
		actions := &mocks.ActionService{}
		menu := service.NewMenuService(actions, zap.NewNop())

		actions.On("SendTyping", ctx, int64(42)).Return(nil)
		actions.On("SendText", ctx, int64(42), "Hello, Ana").Return(0, botapi.ErrForbidden)

		err := menu.Start(ctx, 42, botapi.User{FirstName: "Ana"})

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeSendFailed, serviceErr.Code)
		actions.AssertNotCalled(t, "SendKeyboard", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func callback(token string) *botapi.CallbackQuery {
	return &botapi.CallbackQuery{
		ID:        "cb-1",
		Token:     token,
		ChatID:    42,
		MessageID: 5,
		From:      botapi.User{ID: 7, FirstName: "Ana"},
	}
}

func TestMenu_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown token runs no action", func(t *testing.T) {
		actions := &mocks.ActionService{}
		menu := service.NewMenuService(actions, zap.NewNop())

		err := menu.Handle(ctx, callback("bogus"))

		assert.ErrorIs(t, err, service.ErrUnknownCallbackToken)
		assert.True(t, service.IsUnknownToken(err))
		assert.Empty(t, actions.Calls)
	})

	t.Run("Via provider edits then sends the invoice", func(t *testing.T) {
		actions := &mocks.ActionService{}
		menu := service.NewMenuService(actions, zap.NewNop())

		actions.On("EditText", ctx, int64(42), 5, "Sending invoice...").Return(nil)
		actions.On("SendInvoice", ctx, int64(42)).Return(nil)

		assert.NoError(t, menu.Handle(ctx, callback("via-provider")))
		actions.AssertExpectations(t)
	})

	t.Run("Telegram stars sends the stars invoice", func(t *testing.T) {
		actions := &mocks.ActionService{}
		menu := service.NewMenuService(actions, zap.NewNop())

		actions.On("EditText", ctx, int64(42), 5, "Sending Telegram Stars invoice...").Return(nil)
		actions.On("SendStarsInvoice", ctx, int64(42)).Return(nil)

		assert.NoError(t, menu.Handle(ctx, callback("telegram-stars")))
		actions.AssertExpectations(t)
	})

	t.Run("Invoice link is sent back as text", func(t *testing.T) {
		actions := &mocks.ActionService{}
		menu := service.NewMenuService(actions, zap.NewNop())

		actions.On("EditText", ctx, int64(42), 5, "Creating invoice link...").Return(nil)
		actions.On("CreateInvoiceLink", ctx).Return("https://t.me/$rub", nil)
		actions.On("SendText", ctx, int64(42), "Your invoice link: https://t.me/$rub").Return(6, nil)

		assert.NoError(t, menu.Handle(ctx, callback("invoice-link")))
		actions.AssertExpectations(t)
	})

	t.Run("Stars link is sent back as text", func(t *testing.T) {
		actions := &mocks.ActionService{}
		menu := service.NewMenuService(actions, zap.NewNop())

		actions.On("EditText", ctx, int64(42), 5, "Creating Telegram Stars invoice link...").Return(nil)
		actions.On("CreateStarsInvoiceLink", ctx).Return("https://t.me/$xtr", nil)
		actions.On("SendText", ctx, int64(42), "Your invoice link in stars: https://t.me/$xtr").Return(6, nil)

		assert.NoError(t, menu.Handle(ctx, callback("stars-link")))
		actions.AssertExpectations(t)
	})

	t.Run("Star balance is reported", func(t *testing.T) {
		actions := &mocks.ActionService{}
		menu := service.NewMenuService(actions, zap.NewNop())

		actions.On("EditText", ctx, int64(42), 5, "Fetching star balance...").Return(nil)
		actions.On("StarBalance", ctx).Return(botapi.StarAmount{Amount: 17}, nil)
		actions.On("SendText", ctx, int64(42), "Your star balance: 17 stars").Return(6, nil)

		assert.NoError(t, menu.Handle(ctx, callback("star-balance")))
		actions.AssertExpectations(t)
	})

	t.Run("Message not modified on double press does not stop the flow", func(t *testing.T) {
		actions := &mocks.ActionService{}
		menu := service.NewMenuService(actions, zap.NewNop())

		notModified := &botapi.PlatformError{Method: "editMessageText", Kind: botapi.ErrMessageNotModified}
		actions.On("EditText", ctx, int64(42), 5, "Sending invoice...").Return(notModified)
		actions.On("SendInvoice", ctx, int64(42)).Return(nil)

		assert.NoError(t, menu.Handle(ctx, callback("via-provider")))
		actions.AssertExpectations(t)
	})

	t.Run("Other edit failures end the flow", func(t *testing.T) {
		actions := &mocks.ActionService{}
		menu := service.NewMenuService(actions, zap.NewNop())

		actions.On("EditText", ctx, int64(42), 5, "Sending invoice...").Return(botapi.ErrForbidden)

		err := menu.Handle(ctx, callback("via-provider"))

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeEditFailed, serviceErr.Code)
		assert.ErrorIs(t, err, botapi.ErrForbidden)
		actions.AssertNotCalled(t, "SendInvoice", mock.Anything, mock.Anything)
	})
}

func TestMenu_Refund(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty ledger reports nothing to refund", func(t *testing.T) {
		actions := &mocks.ActionService{}
		menu := service.NewMenuService(actions, zap.NewNop())

		actions.On("EditText", ctx, int64(42), 5, "Processing refund...").Return(nil)
		actions.On("StarTransactions", ctx).Return([]botapi.StarTransaction{}, nil)
		actions.On("SendText", ctx, int64(42), "No transaction found to refund").Return(6, nil)

		assert.NoError(t, menu.Handle(ctx, callback("refund-recent-tx")))
		actions.AssertExpectations(t)
		actions.AssertNotCalled(t, "RefundStarPayment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Most recent eligible payment is refunded", func(t *testing.T) {
		actions := &mocks.ActionService{}
		menu := service.NewMenuService(actions, zap.NewNop())

		ledger := []botapi.StarTransaction{
			{ID: "1", Amount: 1, Date: 100, Source: user(7, "Ana")},
			{ID: "3", Amount: 1, Date: 300, Source: user(8, "Bo")},
			{ID: "3", Amount: 1, Date: 310, Receiver: user(8, "Bo")},
			{ID: "2", Amount: 1, Date: 200, Source: user(9, "Cy")},
		}

		actions.On("EditText", ctx, int64(42), 5, "Processing refund...").Return(nil)
		actions.On("StarTransactions", ctx).Return(ledger, nil)
		actions.On("RefundStarPayment", ctx, int64(9), "2").Return(nil)
		actions.On("SendText", ctx, int64(42), "Refund processed for transaction 2").Return(6, nil)

		assert.NoError(t, menu.Handle(ctx, callback("refund-recent-tx")))
		actions.AssertExpectations(t)
		actions.AssertNumberOfCalls(t, "RefundStarPayment", 1)
	})

	t.Run("Refund failure is returned without a confirmation", func(t *testing.T) {
		actions := &mocks.ActionService{}
		menu := service.NewMenuService(actions, zap.NewNop())

		actions.On("EditText", ctx, int64(42), 5, "Processing refund...").Return(nil)
		actions.On("StarTransactions", ctx).Return([]botapi.StarTransaction{{ID: "1", Date: 1, Source: user(7, "Ana")}}, nil)
		actions.On("RefundStarPayment", ctx, int64(7), "1").Return(botapi.ErrBadRequest)

		err := menu.Handle(ctx, callback("refund-recent-tx"))

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeRefundFailed, serviceErr.Code)
		actions.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Ledger failure is returned", func(t *testing.T) {
		actions := &mocks.ActionService{}
		menu := service.NewMenuService(actions, zap.NewNop())

		actions.On("EditText", ctx, int64(42), 5, "Processing refund...").Return(nil)
		actions.On("StarTransactions", ctx).Return(nil, botapi.ErrUnavailable)

		err := menu.Handle(ctx, callback("refund-recent-tx"))

		assert.ErrorIs(t, err, botapi.ErrUnavailable)
	})
}

func TestMenu_NonRefunded(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty result is reported", func(t *testing.T) {
		actions := &mocks.ActionService{}
		menu := service.NewMenuService(actions, zap.NewNop())

		actions.On("EditText", ctx, int64(42), 5, "Fetching non-refunded transactions...").Return(nil)
		actions.On("StarTransactions", ctx).Return([]botapi.StarTransaction{
			{ID: "1", Source: user(7, "Ana")},
			{ID: "1", Receiver: user(7, "Ana")},
		}, nil)
		actions.On("SendText", ctx, int64(42), "No non-refunded transactions found.").Return(6, nil)

		assert.NoError(t, menu.Handle(ctx, callback("non-refunded-tx")))
		actions.AssertExpectations(t)
	})

	t.Run("Eligible transactions are listed", func(t *testing.T) {
		actions := &mocks.ActionService{}
		menu := service.NewMenuService(actions, zap.NewNop())

		ledger := []botapi.StarTransaction{{ID: "2", Amount: 5, Date: 200, Source: user(8, "Bo")}}
		expected := service.FormatTransactions(ledger, time.Local)

		actions.On("EditText", ctx, int64(42), 5, "Fetching non-refunded transactions...").Return(nil)
		actions.On("StarTransactions", ctx).Return(ledger, nil)
		actions.On("SendText", ctx, int64(42), expected).Return(6, nil)

		assert.NoError(t, menu.Handle(ctx, callback("non-refunded-tx")))
		actions.AssertExpectations(t)
	})
}

func TestFormatTransactions(t *testing.T) {
	txs := []botapi.StarTransaction{
		{
			ID:     "tx-1",
			Amount: 1,
			Date:   time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC).Unix(),
			Source: &botapi.UserParty{User: botapi.User{ID: 7, FirstName: "Ana", LastName: "Lee", Username: "ana"}},
		},
		{
			ID:     "tx-2",
			Amount: 25,
			Date:   time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC).Unix(),
			Source: &botapi.UserParty{User: botapi.User{ID: 8, FirstName: "Bo"}},
		},
	}

	expected := "Non-refunded transactions:\n\n" +
		"ID: tx-1\nAmount: 1 stars\nUser: Ana Lee (@ana)\nDate: 2025-03-04 05:06:07\n\n" +
		"ID: tx-2\nAmount: 25 stars\nUser: Bo\nDate: 2025-12-31 23:59:59\n\n"

	assert.Equal(t, expected, service.FormatTransactions(txs, time.UTC))
}
