package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Upstream struct {
		BaseURL        string `env:"BASE_URL,required"`
		APIToken       string `env:"API_TOKEN"`
		RequestTimeout int    `env:"REQUEST_TIMEOUT" envDefault:"15"`
	} `envPrefix:"UPSTREAM_"`
	JWT struct {
		Expiration int    `env:"EXPIRATION" envDefault:"1209600"` // 14 days
		Secret     string `env:"SECRET,required"`
	} `envPrefix:"JWT_"`
	Drafts struct {
		Path               string `env:"PATH" envDefault:"data/drafts.db"`
		OverrideExpiration int    `env:"OVERRIDE_EXPIRATION" envDefault:"300"` // publish override tokens, seconds
	} `envPrefix:"DRAFTS_"`
	Redis struct {
		Host              string `env:"HOST" envDefault:"localhost"`
		Port              int    `env:"PORT" envDefault:"6379"`
		Password          string `env:"PASSWORD,required"`
		OperationTimeout  int    `env:"OPERATION_TIMEOUT" envDefault:"10"`
		SummaryExpiration int    `env:"SUMMARY_EXPIRATION" envDefault:"60"`
	} `envPrefix:"REDIS_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Email struct {
		From string `env:"FROM,required"`
		SMTP struct {
			Username    string `env:"USERNAME,required"`
			Password    string `env:"PASSWORD,required"`
			Host        string `env:"HOST,required"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	Poller struct {
		Interval int      `env:"INTERVAL" envDefault:"30"` // seconds between summary refreshes
		Hotels   []string `env:"HOTELS" envSeparator:","`
	} `envPrefix:"POLLER_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// return only the first error to keep the log readable
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}
