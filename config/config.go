package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Server configuration
	Server struct {
		// Port the HTTP API listens on
		Port string `env:"SERVER_PORT" envDefault:"5250"`

		// Allowed CORS origins for the marketing frontend
		CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	}

	// CRM store connection (admin-owned property database)
	CRM struct {
		// Driver is either "sqlite" or "mysql"
		Driver string `env:"CRM_DB_DRIVER" envDefault:"sqlite"`
		DSN    string `env:"CRM_DB_DSN" envDefault:"database/crm.db"`
	}

	// MLS mirror connection (read-mostly, populated by the external sync)
	MLS struct {
		Driver string `env:"MLS_DB_DRIVER" envDefault:"sqlite"`
		DSN    string `env:"MLS_DB_DSN" envDefault:"database/mls.db"`
	}

	// HeroCache configuration for the hero image cache resync job
	HeroCache struct {
		// Minutes between resync scans
		ScanInterval int `env:"HERO_SCAN_INTERVAL" envDefault:"60"`

		// Maximum number of listing keys per batch
		MaxBatchSize int `env:"HERO_MAX_BATCH_SIZE" envDefault:"100"`

		// Buffer size of the in-memory batch queue
		QueueSize int `env:"HERO_QUEUE_SIZE" envDefault:"50"`

		// Number of concurrent batch processors
		ProcessorCount int `env:"HERO_PROCESSOR_COUNT" envDefault:"2"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"HERO_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"HERO_RETRY_DELAY" envDefault:"5"`
	}

	// Suggest configuration for the autosuggest cache
	Suggest struct {
		// Seconds a cached suggestion set stays fresh
		CacheTTL int `env:"SUGGEST_CACHE_TTL" envDefault:"300"`

		// Maximum number of cached prefixes
		CacheSize int64 `env:"SUGGEST_CACHE_SIZE" envDefault:"1000"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
