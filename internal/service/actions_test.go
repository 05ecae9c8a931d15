package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Behyna/paymentbot/internal/config"
	"github.com/Behyna/paymentbot/internal/mocks"
	"github.com/Behyna/paymentbot/internal/service"
	"github.com/Behyna/paymentbot/pkg/botapi"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		Payment: config.Payment{
			ProviderToken: "provider-token",
			Title:         "Payment Bot",
			Description:   "Demo purchase",
		},
		RabbitMQ: config.RabbitMQ{PaymentsQueue: "bot.payments"},
	}
}

func TestActions_SendInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("Provider invoice carries the fixed RUB terms", func(t *testing.T) {
		gw := &mocks.Gateway{}
		svc := service.NewActionService(gw, testConfig(), zap.NewNop())

		gw.On("Do", ctx, mock.MatchedBy(func(a botapi.SendInvoice) bool {
			inv := a.Invoice
			_, err := uuid.Parse(inv.Payload)
			return a.ChatID == 42 &&
				err == nil &&
				inv.Title == "Payment Bot" &&
				inv.Description == "Demo purchase" &&
				inv.ProviderToken == "provider-token" &&
				inv.Currency == service.CurrencyRUB &&
				len(inv.Prices) == 1 && inv.Prices[0] == botapi.LabeledPrice{Label: "Total", Amount: 10000} &&
				inv.MaxTipAmount == 50000 &&
				assert.ObjectsAreEqual([]int{1000, 5000, 10000}, inv.SuggestedTipAmounts) &&
				inv.NeedEmail && inv.SendEmailToProvider && inv.Flexible
		})).Return(botapi.Result{MessageID: 9}, nil)

		err := svc.SendInvoice(ctx, 42)

		assert.NoError(t, err)
		gw.AssertExpectations(t)
	})

	t.Run("Stars invoice has no provider, tips or email", func(t *testing.T) {
		gw := &mocks.Gateway{}
		svc := service.NewActionService(gw, testConfig(), zap.NewNop())

		gw.On("Do", ctx, mock.MatchedBy(func(a botapi.SendInvoice) bool {
			inv := a.Invoice
			return inv.Currency == service.CurrencyStars &&
				inv.ProviderToken == "" &&
				len(inv.Prices) == 1 && inv.Prices[0].Amount == 1 &&
				inv.MaxTipAmount == 0 && len(inv.SuggestedTipAmounts) == 0 &&
				!inv.NeedEmail && !inv.Flexible
		})).Return(botapi.Result{}, nil)

		assert.NoError(t, svc.SendStarsInvoice(ctx, 42))
		gw.AssertExpectations(t)
	})

	t.Run("Each invoice gets a fresh payload", func(t *testing.T) {
		gw := &mocks.Gateway{}
		svc := service.NewActionService(gw, testConfig(), zap.NewNop())

		var payloads []string
		gw.On("Do", ctx, mock.AnythingOfType("botapi.CreateInvoiceLink")).
			Run(func(args mock.Arguments) {
				payloads = append(payloads, args.Get(1).(botapi.CreateInvoiceLink).Invoice.Payload)
			}).
			Return(botapi.Result{Link: "https://t.me/$abc"}, nil)

		link, err := svc.CreateInvoiceLink(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "https://t.me/$abc", link)

		_, err = svc.CreateStarsInvoiceLink(ctx)
		assert.NoError(t, err)

		assert.Len(t, payloads, 2)
		assert.NotEqual(t, payloads[0], payloads[1])
	})

	t.Run("Gateway failure is returned as is", func(t *testing.T) {
		gw := &mocks.Gateway{}
		svc := service.NewActionService(gw, testConfig(), zap.NewNop())

		gw.On("Do", ctx, mock.Anything).Return(botapi.Result{}, botapi.ErrForbidden)

		err := svc.SendInvoice(ctx, 42)

		assert.ErrorIs(t, err, botapi.ErrForbidden)
	})
}

func TestActions_StarTransactions(t *testing.T) {
	ctx := context.Background()

	page := func(from, n int) []botapi.StarTransaction {
		txs := make([]botapi.StarTransaction, 0, n)
		for i := 0; i < n; i++ {
			txs = append(txs, botapi.StarTransaction{ID: fmt.Sprintf("tx-%d", from+i)})
		}
		return txs
	}

	t.Run("Short first page ends the fetch", func(t *testing.T) {
		gw := &mocks.Gateway{}
		svc := service.NewActionService(gw, testConfig(), zap.NewNop())

		gw.On("Do", ctx, botapi.GetStarTransactions{Offset: 0, Limit: 100}).
			Return(botapi.Result{Transactions: page(0, 3)}, nil)

		txs, err := svc.StarTransactions(ctx)

		assert.NoError(t, err)
		assert.Len(t, txs, 3)
		gw.AssertNumberOfCalls(t, "Do", 1)
	})

	t.Run("Full pages are followed until a short one", func(t *testing.T) {
		gw := &mocks.Gateway{}
		svc := service.NewActionService(gw, testConfig(), zap.NewNop())

		gw.On("Do", ctx, botapi.GetStarTransactions{Offset: 0, Limit: 100}).
			Return(botapi.Result{Transactions: page(0, 100)}, nil)
		gw.On("Do", ctx, botapi.GetStarTransactions{Offset: 100, Limit: 100}).
			Return(botapi.Result{Transactions: page(100, 100)}, nil)
		gw.On("Do", ctx, botapi.GetStarTransactions{Offset: 200, Limit: 100}).
			Return(botapi.Result{}, nil)

		txs, err := svc.StarTransactions(ctx)

		assert.NoError(t, err)
		assert.Len(t, txs, 200)
		assert.Equal(t, "tx-0", txs[0].ID)
		assert.Equal(t, "tx-199", txs[199].ID)
		gw.AssertExpectations(t)
	})

	t.Run("Failure on a later page drops the partial ledger", func(t *testing.T) {
		gw := &mocks.Gateway{}
		svc := service.NewActionService(gw, testConfig(), zap.NewNop())

		gw.On("Do", ctx, botapi.GetStarTransactions{Offset: 0, Limit: 100}).
			Return(botapi.Result{Transactions: page(0, 100)}, nil)
		gw.On("Do", ctx, botapi.GetStarTransactions{Offset: 100, Limit: 100}).
			Return(botapi.Result{}, botapi.ErrUnavailable)

		txs, err := svc.StarTransactions(ctx)

		assert.Nil(t, txs)
		assert.True(t, errors.Is(err, botapi.ErrUnavailable))
	})
}

func TestActions_Answers(t *testing.T) {
	ctx := context.Background()

	t.Run("Pre-checkout rejection carries the reason", func(t *testing.T) {
		gw := &mocks.Gateway{}
		svc := service.NewActionService(gw, testConfig(), zap.NewNop())

		gw.On("Do", ctx, botapi.AnswerPreCheckout{QueryID: "q1", OK: false, ErrorMessage: "out of stock"}).
			Return(botapi.Result{}, nil)

		assert.NoError(t, svc.AnswerPreCheckout(ctx, "q1", false, "out of stock"))
		gw.AssertExpectations(t)
	})

	t.Run("Accepted pre-checkout drops the reason", func(t *testing.T) {
		gw := &mocks.Gateway{}
		svc := service.NewActionService(gw, testConfig(), zap.NewNop())

		gw.On("Do", ctx, botapi.AnswerPreCheckout{QueryID: "q1", OK: true}).Return(botapi.Result{}, nil)

		assert.NoError(t, svc.AnswerPreCheckout(ctx, "q1", true, "ignored"))
		gw.AssertExpectations(t)
	})

	t.Run("Refund uses payer and charge id", func(t *testing.T) {
		gw := &mocks.Gateway{}
		svc := service.NewActionService(gw, testConfig(), zap.NewNop())

		gw.On("Do", ctx, botapi.RefundStarPayment{UserID: 7, ChargeID: "charge-1"}).Return(botapi.Result{}, nil)

		assert.NoError(t, svc.RefundStarPayment(ctx, 7, "charge-1"))
		gw.AssertExpectations(t)
	})

	t.Run("Star balance is unwrapped", func(t *testing.T) {
		gw := &mocks.Gateway{}
		svc := service.NewActionService(gw, testConfig(), zap.NewNop())

		gw.On("Do", ctx, botapi.GetStarBalance{}).Return(botapi.Result{Balance: botapi.StarAmount{Amount: 12}}, nil)

		balance, err := svc.StarBalance(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 12, balance.Amount)
	})
}

func TestDefaultShippingOptions(t *testing.T) {
	options := service.DefaultShippingOptions()

	assert.Len(t, options, 2)
	assert.Equal(t, "car", options[0].ID)
	assert.Equal(t, []botapi.LabeledPrice{{Label: "Today", Amount: 10000}, {Label: "Tomorrow", Amount: 5000}}, options[0].Prices)
	assert.Equal(t, "bike", options[1].ID)
	assert.Equal(t, []botapi.LabeledPrice{{Label: "Today", Amount: 5000}, {Label: "Tomorrow", Amount: 2500}}, options[1].Prices)
}
