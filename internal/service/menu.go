package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Behyna/paymentbot/internal/constants"
	"github.com/Behyna/paymentbot/pkg/botapi"
	"go.uber.org/zap"
)

type CallbackToken string

const (
	TokenViaProvider   CallbackToken = "via-provider"
	TokenInvoiceLink   CallbackToken = "invoice-link"
	TokenTelegramStars CallbackToken = "telegram-stars"
	TokenStarsLink     CallbackToken = "stars-link"
	TokenRefundRecent  CallbackToken = "refund-recent-tx"
	TokenStarBalance   CallbackToken = "star-balance"
	TokenNonRefunded   CallbackToken = "non-refunded-tx"
)

func ParseCallbackToken(data string) (CallbackToken, error) {
	switch token := CallbackToken(data); token {
	case TokenViaProvider, TokenInvoiceLink, TokenTelegramStars, TokenStarsLink,
		TokenRefundRecent, TokenStarBalance, TokenNonRefunded:
		return token, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCallbackToken, data)
	}
}

type MenuItem struct {
	Label string
	Token CallbackToken
}

type PaymentMenu []MenuItem

func NewPaymentMenu() PaymentMenu {
	return PaymentMenu{
		{Label: constants.LabelViaProvider, Token: TokenViaProvider},
		{Label: constants.LabelInvoiceLink, Token: TokenInvoiceLink},
		{Label: constants.LabelTelegramStars, Token: TokenTelegramStars},
		{Label: constants.LabelStarsLink, Token: TokenStarsLink},
		{Label: constants.LabelRefundRecent, Token: TokenRefundRecent},
		{Label: constants.LabelStarBalance, Token: TokenStarBalance},
		{Label: constants.LabelNonRefunded, Token: TokenNonRefunded},
	}
}

// Keyboard lays the menu out one button per row.
func (m PaymentMenu) Keyboard() [][]botapi.Button {
	rows := make([][]botapi.Button, 0, len(m))
	for _, item := range m {
		rows = append(rows, []botapi.Button{{Text: item.Label, CallbackData: string(item.Token)}})
	}
	return rows
}

type MenuService interface {
	Start(ctx context.Context, chatID int64, from botapi.User) error
	Handle(ctx context.Context, query *botapi.CallbackQuery) error
}

type Menu struct {
	actions  ActionService
	location *time.Location
	logger   *zap.Logger
}

func NewMenuService(actions ActionService, logger *zap.Logger) MenuService {
	return &Menu{actions: actions, location: time.Local, logger: logger}
}

func (m *Menu) Start(ctx context.Context, chatID int64, from botapi.User) error {
	if err := m.actions.SendTyping(ctx, chatID); err != nil {
		m.logger.Warn("Failed to send typing action", zap.Int64("chatID", chatID), zap.Error(err))
	}

	if _, err := m.actions.SendText(ctx, chatID, fmt.Sprintf(constants.MsgGreeting, from.FirstName)); err != nil {
		return NewServiceError(constants.ErrCodeSendFailed, err)
	}

	if _, err := m.actions.SendKeyboard(ctx, chatID, constants.MsgMenuPrompt, NewPaymentMenu().Keyboard()); err != nil {
		return NewServiceError(constants.ErrCodeSendFailed, err)
	}

	return nil
}

// Handle runs the flow bound to the pressed button. The callback query must
// already be answered.
func (m *Menu) Handle(ctx context.Context, query *botapi.CallbackQuery) error {
	token, err := ParseCallbackToken(query.Token)
	if err != nil {
		return err
	}

	m.logger.Info("Menu option selected",
		zap.String("token", string(token)),
		zap.Int64("chatID", query.ChatID),
		zap.Int64("userID", query.From.ID))

	switch token {
	case TokenViaProvider:
		return m.sendInvoice(ctx, query, constants.MsgSendingInvoice, m.actions.SendInvoice)
	case TokenTelegramStars:
		return m.sendInvoice(ctx, query, constants.MsgSendingStarsInvoice, m.actions.SendStarsInvoice)
	case TokenInvoiceLink:
		return m.sendInvoiceLink(ctx, query, constants.MsgCreatingInvoiceLink, constants.MsgInvoiceLink, m.actions.CreateInvoiceLink)
	case TokenStarsLink:
		return m.sendInvoiceLink(ctx, query, constants.MsgCreatingStarsInvoiceLink, constants.MsgStarsInvoiceLink, m.actions.CreateStarsInvoiceLink)
	case TokenRefundRecent:
		return m.refundRecent(ctx, query)
	case TokenStarBalance:
		return m.starBalance(ctx, query)
	case TokenNonRefunded:
		return m.listNonRefunded(ctx, query)
	}

	return fmt.Errorf("%w: %q", ErrUnknownCallbackToken, query.Token)
}

func (m *Menu) sendInvoice(ctx context.Context, query *botapi.CallbackQuery, progress string,
	send func(context.Context, int64) error) error {
	if err := m.edit(ctx, query, progress); err != nil {
		return err
	}

	if err := send(ctx, query.ChatID); err != nil {
		return NewServiceError(constants.ErrCodeInvoiceFailed, err)
	}

	return nil
}

func (m *Menu) sendInvoiceLink(ctx context.Context, query *botapi.CallbackQuery, progress, format string,
	create func(context.Context) (string, error)) error {
	if err := m.edit(ctx, query, progress); err != nil {
		return err
	}

	link, err := create(ctx)
	if err != nil {
		return NewServiceError(constants.ErrCodeInvoiceLinkFailed, err)
	}

	m.logger.Info("Invoice link created", zap.Int64("chatID", query.ChatID), zap.String("link", link))

	return m.send(ctx, query.ChatID, fmt.Sprintf(format, link))
}

func (m *Menu) refundRecent(ctx context.Context, query *botapi.CallbackQuery) error {
	if err := m.edit(ctx, query, constants.MsgProcessingRefund); err != nil {
		return err
	}

	ledger, err := m.actions.StarTransactions(ctx)
	if err != nil {
		return NewServiceError(constants.ErrCodeLedgerFailed, err)
	}

	tx, ok := MostRecent(RefundableTransactions(ledger))
	if !ok {
		return m.send(ctx, query.ChatID, constants.MsgNothingToRefund)
	}

	payer, _ := botapi.AsUser(tx.Source)
	if err := m.actions.RefundStarPayment(ctx, payer.ID, tx.ID); err != nil {
		m.logger.Error("Refund failed",
			zap.String("transactionID", tx.ID),
			zap.Int64("userID", payer.ID),
			zap.Error(err))
		return NewServiceError(constants.ErrCodeRefundFailed, err)
	}

	m.logger.Info("Refund processed",
		zap.String("transactionID", tx.ID),
		zap.Int64("userID", payer.ID),
		zap.Int("amount", tx.Amount))

	return m.send(ctx, query.ChatID, fmt.Sprintf(constants.MsgRefundProcessed, tx.ID))
}

func (m *Menu) starBalance(ctx context.Context, query *botapi.CallbackQuery) error {
	if err := m.edit(ctx, query, constants.MsgFetchingStarBalance); err != nil {
		return err
	}

	balance, err := m.actions.StarBalance(ctx)
	if err != nil {
		return NewServiceError(constants.ErrCodeBalanceFailed, err)
	}

	return m.send(ctx, query.ChatID, fmt.Sprintf(constants.MsgStarBalance, balance.Amount))
}

func (m *Menu) listNonRefunded(ctx context.Context, query *botapi.CallbackQuery) error {
	if err := m.edit(ctx, query, constants.MsgFetchingNonRefunded); err != nil {
		return err
	}

	ledger, err := m.actions.StarTransactions(ctx)
	if err != nil {
		return NewServiceError(constants.ErrCodeLedgerFailed, err)
	}

	txs := RefundableTransactions(ledger)
	if len(txs) == 0 {
		return m.send(ctx, query.ChatID, constants.MsgNoNonRefunded)
	}

	return m.send(ctx, query.ChatID, FormatTransactions(txs, m.location))
}

// edit swaps the menu message for a progress text. A message that no longer
// changes (the button was pressed twice) is only logged.
func (m *Menu) edit(ctx context.Context, query *botapi.CallbackQuery, text string) error {
	err := m.actions.EditText(ctx, query.ChatID, query.MessageID, text)
	if err == nil {
		return nil
	}

	if botapi.IsRecoverable(err) {
		m.logger.Warn("Ignoring recoverable edit failure",
			zap.Int64("chatID", query.ChatID),
			zap.Int("messageID", query.MessageID),
			zap.Error(err))
		return nil
	}

	return NewServiceError(constants.ErrCodeEditFailed, err)
}

func (m *Menu) send(ctx context.Context, chatID int64, text string) error {
	if _, err := m.actions.SendText(ctx, chatID, text); err != nil {
		return NewServiceError(constants.ErrCodeSendFailed, err)
	}
	return nil
}

// FormatTransactions renders one block per transaction under a header.
func FormatTransactions(txs []botapi.StarTransaction, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(constants.MsgNonRefundedTitle)

	for _, tx := range txs {
		payer, _ := botapi.AsUser(tx.Source)
		fmt.Fprintf(&b, "ID: %s\nAmount: %d stars\nUser: %s\nDate: %s\n\n",
			tx.ID,
			tx.Amount,
			payer.DisplayName(),
			time.Unix(tx.Date, 0).In(loc).Format(constants.TransactionDateLayout))
	}

	return b.String()
}

// IsUnknownToken reports whether err comes from a callback with no flow.
func IsUnknownToken(err error) bool {
	return errors.Is(err, ErrUnknownCallbackToken)
}
