package botapi

import (
	"context"
	"fmt"
	"time"

	"github.com/mymmrac/telego"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Gateway sends one action to the platform and returns its result. It is
// safe for concurrent use and never retries.
type Gateway interface {
	Do(ctx context.Context, action Action) (Result, error)
}

type gateway struct {
	bot     *telego.Bot
	limiter *rate.Limiter
	timeout time.Duration
	logger  *zap.Logger
}

func NewBot(cfg Config) (*telego.Bot, error) {
	opts := []telego.BotOption{telego.WithDiscardLogger()}
	if cfg.APIServer != "" {
		opts = append(opts, telego.WithAPIServer(cfg.APIServer))
	}

	bot, err := telego.NewBot(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return bot, nil
}

func NewGateway(bot *telego.Bot, cfg Config, logger *zap.Logger) Gateway {
	return &gateway{
		bot:     bot,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		timeout: cfg.RequestTimeout,
		logger:  logger,
	}
}

func (g *gateway) Do(ctx context.Context, action Action) (Result, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return Result{}, MapError(action.Method(), err)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := g.call(ctx, action)
	if err != nil {
		err = MapError(action.Method(), err)
		g.logger.Debug("Bot API call failed",
			zap.String("method", action.Method()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return Result{}, err
	}

	g.logger.Debug("Bot API call succeeded",
		zap.String("method", action.Method()),
		zap.Duration("duration", time.Since(start)))

	return result, nil
}

func (g *gateway) call(ctx context.Context, action Action) (Result, error) {
	switch a := action.(type) {
	case ChatAction:
		return Result{}, g.bot.SendChatAction(ctx, &telego.SendChatActionParams{
			ChatID: telego.ChatID{ID: a.ChatID},
			Action: a.Action,
		})

	case SendText:
		msg, err := g.bot.SendMessage(ctx, &telego.SendMessageParams{
			ChatID: telego.ChatID{ID: a.ChatID},
			Text:   a.Text,
		})
		return messageResult(msg, err)

	case SendKeyboard:
		msg, err := g.bot.SendMessage(ctx, &telego.SendMessageParams{
			ChatID:      telego.ChatID{ID: a.ChatID},
			Text:        a.Text,
			ReplyMarkup: inlineKeyboard(a.Keyboard),
		})
		return messageResult(msg, err)

	case EditText:
		msg, err := g.bot.EditMessageText(ctx, &telego.EditMessageTextParams{
			ChatID:    telego.ChatID{ID: a.ChatID},
			MessageID: a.MessageID,
			Text:      a.Text,
		})
		return messageResult(msg, err)

	case SendInvoice:
		inv := a.Invoice
		msg, err := g.bot.SendInvoice(ctx, &telego.SendInvoiceParams{
			ChatID:              telego.ChatID{ID: a.ChatID},
			Title:               inv.Title,
			Description:         inv.Description,
			Payload:             inv.Payload,
			ProviderToken:       inv.ProviderToken,
			Currency:            inv.Currency,
			Prices:              labeledPrices(inv.Prices),
			MaxTipAmount:        inv.MaxTipAmount,
			SuggestedTipAmounts: inv.SuggestedTipAmounts,
			NeedEmail:           inv.NeedEmail,
			SendEmailToProvider: inv.SendEmailToProvider,
			IsFlexible:          inv.Flexible,
		})
		return messageResult(msg, err)

	case CreateInvoiceLink:
		inv := a.Invoice
		link, err := g.bot.CreateInvoiceLink(ctx, &telego.CreateInvoiceLinkParams{
			Title:               inv.Title,
			Description:         inv.Description,
			Payload:             inv.Payload,
			ProviderToken:       inv.ProviderToken,
			Currency:            inv.Currency,
			Prices:              labeledPrices(inv.Prices),
			MaxTipAmount:        inv.MaxTipAmount,
			SuggestedTipAmounts: inv.SuggestedTipAmounts,
			NeedEmail:           inv.NeedEmail,
			SendEmailToProvider: inv.SendEmailToProvider,
			IsFlexible:          inv.Flexible,
		})
		if err != nil {
			return Result{}, err
		}
		if link == nil {
			return Result{}, nil
		}
		return Result{Link: *link}, nil

	case AnswerCallback:
		return Result{}, g.bot.AnswerCallbackQuery(ctx, &telego.AnswerCallbackQueryParams{
			CallbackQueryID: a.QueryID,
		})

	case AnswerShipping:
		options := make([]telego.ShippingOption, 0, len(a.Options))
		for _, o := range a.Options {
			options = append(options, telego.ShippingOption{ID: o.ID, Title: o.Title, Prices: labeledPrices(o.Prices)})
		}
		return Result{}, g.bot.AnswerShippingQuery(ctx, &telego.AnswerShippingQueryParams{
			ShippingQueryID: a.QueryID,
			Ok:              a.OK,
			ShippingOptions: options,
			ErrorMessage:    a.ErrorMessage,
		})

	case AnswerPreCheckout:
		return Result{}, g.bot.AnswerPreCheckoutQuery(ctx, &telego.AnswerPreCheckoutQueryParams{
			PreCheckoutQueryID: a.QueryID,
			Ok:                 a.OK,
			ErrorMessage:       a.ErrorMessage,
		})

	case GetStarBalance:
		balance, err := g.bot.GetMyStarBalance(ctx)
		if err != nil {
			return Result{}, err
		}
		if balance == nil {
			return Result{}, nil
		}
		return Result{Balance: StarAmount{Amount: balance.Amount, NanostarAmount: balance.NanostarAmount}}, nil

	case GetStarTransactions:
		txs, err := g.bot.GetStarTransactions(ctx, &telego.GetStarTransactionsParams{
			Offset: a.Offset,
			Limit:  a.Limit,
		})
		if err != nil {
			return Result{}, err
		}
		if txs == nil {
			return Result{}, nil
		}
		return Result{Transactions: starTransactions(txs.Transactions)}, nil

	case RefundStarPayment:
		return Result{}, g.bot.RefundStarPayment(ctx, &telego.RefundStarPaymentParams{
			UserID:                  a.UserID,
			TelegramPaymentChargeID: a.ChargeID,
		})

	default:
		return Result{}, fmt.Errorf("%w: %T", ErrUnsupportedAction, action)
	}
}

func messageResult(msg *telego.Message, err error) (Result, error) {
	if err != nil {
		return Result{}, err
	}
	if msg == nil {
		return Result{}, nil
	}
	return Result{MessageID: msg.MessageID}, nil
}

func inlineKeyboard(rows [][]Button) *telego.InlineKeyboardMarkup {
	keyboard := make([][]telego.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]telego.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, telego.InlineKeyboardButton{Text: b.Text, CallbackData: b.CallbackData})
		}
		keyboard = append(keyboard, buttons)
	}
	return &telego.InlineKeyboardMarkup{InlineKeyboard: keyboard}
}

func labeledPrices(prices []LabeledPrice) []telego.LabeledPrice {
	out := make([]telego.LabeledPrice, 0, len(prices))
	for _, p := range prices {
		out = append(out, telego.LabeledPrice{Label: p.Label, Amount: p.Amount})
	}
	return out
}

func starTransactions(txs []telego.StarTransaction) []StarTransaction {
	out := make([]StarTransaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, StarTransaction{
			ID:       tx.ID,
			Amount:   tx.Amount,
			Date:     tx.Date,
			Source:   partyFrom(tx.Source),
			Receiver: partyFrom(tx.Receiver),
		})
	}
	return out
}

func partyFrom(p telego.TransactionPartner) Party {
	switch v := p.(type) {
	case nil:
		return nil
	case *telego.TransactionPartnerUser:
		if v == nil {
			return nil
		}
		return &UserParty{User: userFrom(&v.User)}
	default:
		return &OtherParty{Type: p.PartnerType()}
	}
}

func userFrom(u *telego.User) User {
	if u == nil {
		return User{}
	}
	return User{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Username: u.Username}
}
