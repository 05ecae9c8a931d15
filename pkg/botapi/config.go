package botapi

import "time"

type Config struct {
	Token          string        `mapstructure:"token" validate:"required"`
	APIServer      string        `mapstructure:"api_server"`
	PollTimeout    int           `mapstructure:"poll_timeout" validate:"gte=0"`
	RateLimit      float64       `mapstructure:"rate_limit" validate:"gt=0"`
	RateBurst      int           `mapstructure:"rate_burst" validate:"gt=0"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}
