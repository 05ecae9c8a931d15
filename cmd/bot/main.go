package main

import (
	"context"
	"errors"

	"github.com/Behyna/paymentbot/internal/api"
	"github.com/Behyna/paymentbot/internal/config"
	"github.com/Behyna/paymentbot/internal/dispatcher"
	"github.com/Behyna/paymentbot/internal/metrics"
	"github.com/Behyna/paymentbot/internal/queue"
	"github.com/Behyna/paymentbot/internal/service"
	"github.com/Behyna/paymentbot/pkg/botapi"
	"github.com/Behyna/paymentbot/pkg/mq"
	"github.com/gofiber/fiber/v2"
	"github.com/mymmrac/telego"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewMetrics,

			NewBot,
			NewGateway,
			NewReceiver,
			NewQueue,
			NewPaymentPublisher,

			service.NewActionService,
			service.NewMenuService,
			service.NewCheckoutService,
			service.NewPaymentEventService,

			NewHandlers,
			dispatcher.New,

			api.NewApp,
			api.NewHandler,
		),
		fx.Invoke(startServer, runBot),
	).Run()
}

func startServer(app *fiber.App, handler *api.Handler, m *metrics.Metrics, cfg *config.Config,
	logger *zap.Logger, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler, m, prometheus.DefaultGatherer, logger)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

func runBot(receiver *botapi.Receiver, d *dispatcher.Dispatcher, logger *zap.Logger, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	pollCtx, stopPolling := context.WithCancel(appCtx)
	polling := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			d.Start(appCtx)

			go func() {
				defer close(polling)
				if err := receiver.Run(pollCtx, d.Submit); err != nil && !errors.Is(err, queue.ErrShutdown) {
					logger.Error("update receiver exited", zap.Error(err))
				}
			}()

			logger.Info("payment bot started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping payment bot")
			defer cancel()

			stopPolling()
			select {
			case <-polling:
			case <-ctx.Done():
			}

			return d.Stop(ctx)
		},
	})
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}

func NewBot(cfg *config.Config) (*telego.Bot, error) {
	return botapi.NewBot(cfg.Telegram)
}

func NewGateway(bot *telego.Bot, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) botapi.Gateway {
	return metrics.InstrumentGateway(botapi.NewGateway(bot, cfg.Telegram, logger), m)
}

func NewReceiver(bot *telego.Bot, cfg *config.Config, logger *zap.Logger) *botapi.Receiver {
	return botapi.NewReceiver(bot, cfg.Telegram, logger)
}

func NewQueue(cfg *config.Config) (*queue.Queue, error) {
	return queue.New(cfg.Dispatcher.QueueCapacity)
}

// NewPaymentPublisher returns nil when publishing is disabled; payment
// outcomes are then only logged.
func NewPaymentPublisher(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) (mq.Publisher, error) {
	if !cfg.RabbitMQ.Enable {
		logger.Info("payment event publishing disabled")
		return nil, nil
	}

	rabbit, err := mq.NewConnection(cfg.RabbitMQ.Config, logger)
	if err != nil {
		return nil, err
	}

	if err := rabbit.DeclareQueues(cfg.RabbitMQ.PaymentsQueue); err != nil {
		_ = rabbit.Close()
		return nil, err
	}

	publisher, err := rabbit.CreatePublisher()
	if err != nil {
		_ = rabbit.Close()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = publisher.Close()
			return rabbit.Close()
		},
	})

	return publisher, nil
}

func NewHandlers(actions service.ActionService, menu service.MenuService, checkout service.CheckoutService,
	payments service.PaymentEventService) dispatcher.Handlers {
	return dispatcher.Handlers{
		Actions:  actions,
		Menu:     menu,
		Checkout: checkout,
		Payments: payments,
	}
}
