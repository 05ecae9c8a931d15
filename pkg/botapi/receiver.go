package botapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/mymmrac/telego"
	"go.uber.org/zap"
)

var allowedUpdates = []string{"message", "callback_query", "shipping_query", "pre_checkout_query"}

// Sink accepts one converted event. A blocking sink stalls polling, which is
// how backpressure reaches the platform connection.
type Sink func(ctx context.Context, event Event) error

type Receiver struct {
	bot    *telego.Bot
	cfg    Config
	logger *zap.Logger
}

func NewReceiver(bot *telego.Bot, cfg Config, logger *zap.Logger) *Receiver {
	return &Receiver{bot: bot, cfg: cfg, logger: logger}
}

// Run long-polls for updates and hands each one to sink until ctx is done or
// sink returns an error.
func (r *Receiver) Run(ctx context.Context, sink Sink) error {
	updates, err := r.bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout:        r.cfg.PollTimeout,
		AllowedUpdates: allowedUpdates,
	})
	if err != nil {
		return fmt.Errorf("failed to start long polling: %w", err)
	}

	r.logger.Info("Update receiver started", zap.Strings("allowedUpdates", allowedUpdates))

	for update := range updates {
		event := ToEvent(update)
		if err := sink(ctx, event); err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}

			r.logger.Warn("Update receiver stopped by sink",
				zap.Int("updateID", update.UpdateID),
				zap.Error(err))

			// drain so the poller goroutine can observe ctx and exit
			go func() {
				for range updates {
				}
			}()
			return err
		}
	}

	r.logger.Info("Update receiver stopped")
	return nil
}

// ToEvent converts a raw telego update into an Event. Updates that carry none
// of the handled payloads become UnsupportedEvent.
func ToEvent(update telego.Update) Event {
	switch {
	case update.Message != nil:
		return textMessage(update.Message)

	case update.CallbackQuery != nil:
		q := update.CallbackQuery
		event := &CallbackQuery{
			ID:    q.ID,
			Token: q.Data,
			From:  userFrom(&q.From),
		}
		if q.Message != nil {
			event.ChatID = q.Message.GetChat().ID
			event.MessageID = q.Message.GetMessageID()
		}
		return event

	case update.ShippingQuery != nil:
		q := update.ShippingQuery
		return &ShippingQuery{ID: q.ID, From: userFrom(&q.From), Payload: q.InvoicePayload}

	case update.PreCheckoutQuery != nil:
		q := update.PreCheckoutQuery
		return &PreCheckoutQuery{
			ID:          q.ID,
			From:        userFrom(&q.From),
			Currency:    q.Currency,
			TotalAmount: q.TotalAmount,
			Payload:     q.InvoicePayload,
		}

	default:
		return &UnsupportedEvent{UpdateID: update.UpdateID, Kind: updateKind(update)}
	}
}

func textMessage(m *telego.Message) *TextMessage {
	event := &TextMessage{
		ChatID:    m.Chat.ID,
		MessageID: m.MessageID,
		From:      userFrom(m.From),
		Text:      m.Text,
	}

	switch {
	case m.SuccessfulPayment != nil:
		p := m.SuccessfulPayment
		event.Payment = &SuccessfulPayment{
			Currency:                p.Currency,
			TotalAmount:             p.TotalAmount,
			Payload:                 p.InvoicePayload,
			TelegramPaymentChargeID: p.TelegramPaymentChargeID,
			ProviderPaymentChargeID: p.ProviderPaymentChargeID,
		}
	case m.RefundedPayment != nil:
		p := m.RefundedPayment
		event.Payment = &RefundedPayment{
			Currency:                p.Currency,
			TotalAmount:             p.TotalAmount,
			Payload:                 p.InvoicePayload,
			TelegramPaymentChargeID: p.TelegramPaymentChargeID,
		}
	}

	return event
}

func updateKind(update telego.Update) string {
	switch {
	case update.EditedMessage != nil:
		return "edited_message"
	case update.ChannelPost != nil:
		return "channel_post"
	case update.InlineQuery != nil:
		return "inline_query"
	case update.Poll != nil:
		return "poll"
	case update.MyChatMember != nil:
		return "my_chat_member"
	default:
		return "unknown"
	}
}
