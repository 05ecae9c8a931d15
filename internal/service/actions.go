package service

import (
	"context"

	"github.com/Behyna/paymentbot/internal/config"
	"github.com/Behyna/paymentbot/pkg/botapi"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	CurrencyRUB   = "RUB"
	CurrencyStars = "XTR"

	ledgerPageSize = 100
)

// ActionService builds the outbound payloads of the bot and unwraps their
// results. Every method is exactly one gateway call except StarTransactions,
// which pages through the whole ledger.
type ActionService interface {
	SendTyping(ctx context.Context, chatID int64) error
	SendText(ctx context.Context, chatID int64, text string) (int, error)
	SendKeyboard(ctx context.Context, chatID int64, text string, keyboard [][]botapi.Button) (int, error)
	EditText(ctx context.Context, chatID int64, messageID int, text string) error
	SendInvoice(ctx context.Context, chatID int64) error
	SendStarsInvoice(ctx context.Context, chatID int64) error
	CreateInvoiceLink(ctx context.Context) (string, error)
	CreateStarsInvoiceLink(ctx context.Context) (string, error)
	AnswerCallback(ctx context.Context, queryID string) error
	AnswerShipping(ctx context.Context, queryID string, options []botapi.ShippingOption) error
	RejectShipping(ctx context.Context, queryID, reason string) error
	AnswerPreCheckout(ctx context.Context, queryID string, ok bool, reason string) error
	StarBalance(ctx context.Context) (botapi.StarAmount, error)
	StarTransactions(ctx context.Context) ([]botapi.StarTransaction, error)
	RefundStarPayment(ctx context.Context, userID int64, chargeID string) error
}

type Actions struct {
	gateway botapi.Gateway
	payment config.Payment
	logger  *zap.Logger
}

func NewActionService(gateway botapi.Gateway, cfg *config.Config, logger *zap.Logger) ActionService {
	return &Actions{gateway: gateway, payment: cfg.Payment, logger: logger}
}

func (a *Actions) SendTyping(ctx context.Context, chatID int64) error {
	_, err := a.gateway.Do(ctx, botapi.ChatAction{ChatID: chatID, Action: botapi.ChatActionTyping})
	return err
}

func (a *Actions) SendText(ctx context.Context, chatID int64, text string) (int, error) {
	res, err := a.gateway.Do(ctx, botapi.SendText{ChatID: chatID, Text: text})
	return res.MessageID, err
}

func (a *Actions) SendKeyboard(ctx context.Context, chatID int64, text string, keyboard [][]botapi.Button) (int, error) {
	res, err := a.gateway.Do(ctx, botapi.SendKeyboard{ChatID: chatID, Text: text, Keyboard: keyboard})
	return res.MessageID, err
}

func (a *Actions) EditText(ctx context.Context, chatID int64, messageID int, text string) error {
	_, err := a.gateway.Do(ctx, botapi.EditText{ChatID: chatID, MessageID: messageID, Text: text})
	return err
}

func (a *Actions) SendInvoice(ctx context.Context, chatID int64) error {
	_, err := a.gateway.Do(ctx, botapi.SendInvoice{ChatID: chatID, Invoice: a.providerInvoice()})
	return err
}

func (a *Actions) SendStarsInvoice(ctx context.Context, chatID int64) error {
	_, err := a.gateway.Do(ctx, botapi.SendInvoice{ChatID: chatID, Invoice: a.starsInvoice()})
	return err
}

func (a *Actions) CreateInvoiceLink(ctx context.Context) (string, error) {
	res, err := a.gateway.Do(ctx, botapi.CreateInvoiceLink{Invoice: a.providerInvoice()})
	return res.Link, err
}

func (a *Actions) CreateStarsInvoiceLink(ctx context.Context) (string, error) {
	res, err := a.gateway.Do(ctx, botapi.CreateInvoiceLink{Invoice: a.starsInvoice()})
	return res.Link, err
}

func (a *Actions) AnswerCallback(ctx context.Context, queryID string) error {
	_, err := a.gateway.Do(ctx, botapi.AnswerCallback{QueryID: queryID})
	return err
}

func (a *Actions) AnswerShipping(ctx context.Context, queryID string, options []botapi.ShippingOption) error {
	_, err := a.gateway.Do(ctx, botapi.AnswerShipping{QueryID: queryID, OK: true, Options: options})
	return err
}

func (a *Actions) RejectShipping(ctx context.Context, queryID, reason string) error {
	_, err := a.gateway.Do(ctx, botapi.AnswerShipping{QueryID: queryID, ErrorMessage: reason})
	return err
}

func (a *Actions) AnswerPreCheckout(ctx context.Context, queryID string, ok bool, reason string) error {
	action := botapi.AnswerPreCheckout{QueryID: queryID, OK: ok}
	if !ok {
		action.ErrorMessage = reason
	}

	_, err := a.gateway.Do(ctx, action)
	return err
}

func (a *Actions) StarBalance(ctx context.Context) (botapi.StarAmount, error) {
	res, err := a.gateway.Do(ctx, botapi.GetStarBalance{})
	return res.Balance, err
}

// StarTransactions returns the full ledger in platform order, requesting
// pages until one comes back short.
func (a *Actions) StarTransactions(ctx context.Context) ([]botapi.StarTransaction, error) {
	var ledger []botapi.StarTransaction

	for offset := 0; ; {
		res, err := a.gateway.Do(ctx, botapi.GetStarTransactions{Offset: offset, Limit: ledgerPageSize})
		if err != nil {
			return nil, err
		}

		ledger = append(ledger, res.Transactions...)
		if len(res.Transactions) < ledgerPageSize {
			break
		}

		offset += len(res.Transactions)
	}

	a.logger.Debug("Fetched star ledger", zap.Int("transactions", len(ledger)))

	return ledger, nil
}

func (a *Actions) RefundStarPayment(ctx context.Context, userID int64, chargeID string) error {
	_, err := a.gateway.Do(ctx, botapi.RefundStarPayment{UserID: userID, ChargeID: chargeID})
	return err
}

func (a *Actions) providerInvoice() botapi.Invoice {
	return botapi.Invoice{
		Title:               a.payment.Title,
		Description:         a.payment.Description,
		Payload:             uuid.NewString(),
		ProviderToken:       a.payment.ProviderToken,
		Currency:            CurrencyRUB,
		Prices:              []botapi.LabeledPrice{{Label: "Total", Amount: 100 * 100}},
		MaxTipAmount:        50000,
		SuggestedTipAmounts: []int{1000, 5000, 10000},
		NeedEmail:           true,
		SendEmailToProvider: true,
		Flexible:            true,
	}
}

// Stars invoices carry no provider token, tips or email.
func (a *Actions) starsInvoice() botapi.Invoice {
	return botapi.Invoice{
		Title:       a.payment.Title,
		Description: a.payment.Description,
		Payload:     uuid.NewString(),
		Currency:    CurrencyStars,
		Prices:      []botapi.LabeledPrice{{Label: "Total", Amount: 1}},
	}
}

// DefaultShippingOptions are the delivery choices offered to every flexible
// invoice. Amounts are in kopecks.
func DefaultShippingOptions() []botapi.ShippingOption {
	return []botapi.ShippingOption{
		{
			ID:    "car",
			Title: "Car",
			Prices: []botapi.LabeledPrice{
				{Label: "Today", Amount: 10000},
				{Label: "Tomorrow", Amount: 5000},
			},
		},
		{
			ID:    "bike",
			Title: "Bike",
			Prices: []botapi.LabeledPrice{
				{Label: "Today", Amount: 5000},
				{Label: "Tomorrow", Amount: 2500},
			},
		},
	}
}
