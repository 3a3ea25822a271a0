package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName  string   `koanf:"service_name"`
	HTTPPort     string   `koanf:"http_port"`
	Storage      string   `koanf:"storage"`
	PostgresDSN  string   `koanf:"postgres_dsn"`
	KafkaBrokers []string `koanf:"kafka_brokers"`

	// AdministratorID is the fixed administrator identity seeded at boot.
	AdministratorID string `koanf:"administrator_id"`

	OutboxPollInterval time.Duration `koanf:"outbox_poll_interval"`
	OutboxBatchSize    int           `koanf:"outbox_batch_size"`
}

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

func defaults() Config {
	return Config{
		ServiceName:        "eventx",
		HTTPPort:           "8080",
		Storage:            StorageMemory,
		KafkaBrokers:       []string{"localhost:9092"},
		AdministratorID:    "admin",
		OutboxPollInterval: 2 * time.Second,
		OutboxBatchSize:    100,
	}
}

// Load builds a Config by layering defaults, an optional YAML file, and
// environment variables. Precedence (low to high):
//  1. defaults
//  2. file (YAML) if EVENTX_CONFIG is set
//  3. env (prefix EVENTX_)
func Load() (Config, error) {
	cfg := defaults()

	k := koanf.New(".")
	if path := os.Getenv("EVENTX_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, err
		}
	}

	// EVENTX_HTTP_PORT -> http_port, matching the koanf tags above.
	envProvider := env.Provider("EVENTX_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "eventx_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, err
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, err
	}

	// Env vars carry broker lists as comma separated strings.
	if raw := strings.TrimSpace(k.String("kafka_brokers")); strings.Contains(raw, ",") {
		cfg.KafkaBrokers = splitList(raw)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Storage {
	case StorageMemory, StoragePostgres:
	default:
		return errors.New("storage must be memory or postgres")
	}
	if c.Storage == StoragePostgres && strings.TrimSpace(c.PostgresDSN) == "" {
		return errors.New("postgres_dsn is required when storage is postgres")
	}
	if strings.TrimSpace(c.AdministratorID) == "" {
		return errors.New("administrator_id must not be empty")
	}
	if c.OutboxBatchSize <= 0 {
		return errors.New("outbox_batch_size must be positive")
	}
	return nil
}

func splitList(raw string) []string {
	var values []string
	for _, value := range strings.Split(raw, ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			values = append(values, value)
		}
	}
	return values
}
