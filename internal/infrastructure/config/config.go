package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Mongo Mongo
	Redis Redis
	Kafka Kafka
	DPD   DPD
	Sync  Sync
}

type Mongo struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=dpd_gateway"`
}

type Redis struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type Kafka struct {
	// Brokers empty disables the state-transition producer.
	Brokers []string `env:"KAFKA_BROKERS"`
	Topic   string   `env:"KAFKA_TOPIC, default=shipments.tracking.updated"`
}

// DPD seeds the carrier configuration record when none exists yet. The
// operator owns the record afterwards.
type DPD struct {
	DelisID   string `env:"DPD_DELIS_ID"`
	Password  string `env:"DPD_PASSWORD"`
	Language  string `env:"DPD_LANGUAGE,   default=en_US"`
	Staging   bool   `env:"DPD_STAGING,    default=true"`
	LabelSize string `env:"DPD_LABEL_SIZE, default=A4"`
	Product   string `env:"DPD_PRODUCT,    default=CL"`
}

type Sync struct {
	// Interval between scheduled batch tracking refreshes.
	Interval time.Duration `env:"SYNC_INTERVAL, default=30m"`
	// Cooldown below which a shipment is not polled again.
	Cooldown time.Duration `env:"SYNC_COOLDOWN, default=10m"`
	Workers  int           `env:"SYNC_WORKERS,  default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
