package main

import (
	"context"

	"github.com/Behyna/paymentbot/internal/config"
	"github.com/Behyna/paymentbot/internal/consumers"
	"github.com/Behyna/paymentbot/internal/model"
	"github.com/Behyna/paymentbot/internal/repository"
	"github.com/Behyna/paymentbot/internal/service"
	"github.com/Behyna/paymentbot/pkg/mq"
	"github.com/Behyna/paymentbot/pkg/mysql"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewConnectionDB,
			NewMQConnection,
			NewMQConsumer,

			repository.NewPaymentEventRepository,
			service.NewPaymentLogService,

			NewPaymentEventConsumer,
		),
		fx.Invoke(runPaymentLogConsumer),
	).Run()
}

func runPaymentLogConsumer(cfg *config.Config, consumer consumers.PaymentEventConsumer, db *gorm.DB,
	logger *zap.Logger, rabbit *mq.RabbitMQ, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.WithContext(ctx).AutoMigrate(&model.PaymentEvent{}); err != nil {
				logger.Error("migrate payment events failed", zap.Error(err))
				return err
			}

			if err := rabbit.DeclareQueues(cfg.RabbitMQ.PaymentsQueue); err != nil {
				logger.Error("declare queues failed", zap.Error(err))
				return err
			}

			go func() {
				if err := consumer.Consume(appCtx); err != nil {
					logger.Error("consumer exited", zap.Error(err))
				}
			}()

			logger.Info("payment log consumer started", zap.String("queue", cfg.RabbitMQ.PaymentsQueue))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping payment log consumer")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	return mysql.NewConnection(context.Background(), cfg.Database, logger)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ.Config, logger)
}

func NewMQConsumer(rabbit *mq.RabbitMQ) (mq.Consumer, error) {
	return rabbit.CreateConsumer()
}

func NewPaymentEventConsumer(svc service.PaymentLogService, consumer mq.Consumer, cfg *config.Config,
	logger *zap.Logger) consumers.PaymentEventConsumer {
	return consumers.NewPaymentEventConsumer(svc, consumer, cfg.RabbitMQ.PaymentsQueue, logger)
}
