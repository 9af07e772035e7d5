package chat

import (
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	defaultMaxClients = 64
	defaultQueueSize  = 32
)

// Config is the server configuration, read from the environment with .env
// support. cmd/server lets flags override the two addresses.
type Config struct {
	Addr        string `envconfig:"CHAT_ADDR" default:":12345" validate:"required"`
	MetricsAddr string `envconfig:"CHAT_METRICS_ADDR" default:":9090" validate:"required"`
	MaxClients  int    `envconfig:"CHAT_MAX_CLIENTS" default:"64" validate:"gt=0"`
	QueueSize   int    `envconfig:"CHAT_QUEUE_SIZE" default:"32" validate:"gt=0"`
}

func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
