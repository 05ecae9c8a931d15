package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Behyna/paymentbot/pkg/botapi"
	"github.com/Behyna/paymentbot/pkg/mq"
	"github.com/Behyna/paymentbot/pkg/mysql"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	API        API           `mapstructure:"api"`
	Telegram   botapi.Config `mapstructure:"telegram"`
	Payment    Payment       `mapstructure:"payment"`
	Dispatcher Dispatcher    `mapstructure:"dispatcher"`
	RabbitMQ   RabbitMQ      `mapstructure:"rabbitmq"`
	Database   mysql.Config  `mapstructure:"database"`
}

type API struct {
	Port string `mapstructure:"port" validate:"required"`
}

type Payment struct {
	ProviderToken string `mapstructure:"provider_token"`
	Title         string `mapstructure:"title" validate:"required"`
	Description   string `mapstructure:"description" validate:"required"`
}

type Dispatcher struct {
	QueueCapacity   int           `mapstructure:"queue_capacity" validate:"gt=0"`
	Workers         int           `mapstructure:"workers" validate:"gt=0"`
	ShutdownGrace   time.Duration `mapstructure:"shutdown_grace" validate:"gte=0"`
	DedupeCallbacks bool          `mapstructure:"dedupe_callbacks"`
}

type RabbitMQ struct {
	mq.Config     `mapstructure:",squash"`
	Enable        bool   `mapstructure:"enable"`
	PaymentsQueue string `mapstructure:"payments_queue" validate:"required"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", ":8080")

	v.SetDefault("telegram.poll_timeout", 30)
	v.SetDefault("telegram.rate_limit", 25)
	v.SetDefault("telegram.rate_burst", 5)
	v.SetDefault("telegram.request_timeout", 30*time.Second)

	v.SetDefault("payment.title", "Payment Bot")
	v.SetDefault("payment.description", "Demo purchase processed by the payment bot")

	v.SetDefault("dispatcher.queue_capacity", 128)
	v.SetDefault("dispatcher.workers", 16)
	v.SetDefault("dispatcher.shutdown_grace", 10*time.Second)
	v.SetDefault("dispatcher.dedupe_callbacks", true)

	v.SetDefault("rabbitmq.enable", false)
	v.SetDefault("rabbitmq.payments_queue", "bot.payments")
	v.SetDefault("rabbitmq.prefetch", 1)

	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.max_open_conns", 10)
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("PAYMENTBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
