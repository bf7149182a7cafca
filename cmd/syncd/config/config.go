package config

import "time"

// Config holds application configuration.
type Config struct {
	DatabaseURL string        `env:"DATABASE_URL"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	ChunkSize   int           `env:"BATCH_CHUNK_SIZE" envDefault:"1000"`

	RabbitMQ RabbitMQ
	Trendyol Trendyol
}

// RabbitMQ holds RabbitMQ configuration.
type RabbitMQ struct {
	URL        string `env:"RABBITMQ_URL"`
	Exchange   string `env:"RABBITMQ_EXCHANGE" envDefault:"trendyol-sync-ex"`
	SyncQueue  string `env:"RABBITMQ_SYNC_QUEUE" envDefault:"trendyol-sync.sync-commands"`
	BatchQueue string `env:"RABBITMQ_BATCH_QUEUE" envDefault:"trendyol-sync.batch-commands"`
}

// Trendyol holds marketplace API credentials.
type Trendyol struct {
	SellerID  string `env:"TRENDYOL_SELLER_ID"`
	APIKey    string `env:"TRENDYOL_API_KEY"`
	APISecret string `env:"TRENDYOL_API_SECRET"`
}
