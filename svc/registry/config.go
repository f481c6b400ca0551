package registry

import "time"

// Config holds the upstream endpoints and cache settings.
type Config struct {
	RegistryURL      string        `env:"NPM_REGISTRY_URL" envDefault:"https://registry.npmjs.org"`
	DownloadsURL     string        `env:"NPM_DOWNLOADS_URL" envDefault:"https://api.npmjs.org/downloads"`
	Timeout          time.Duration `env:"NPM_TIMEOUT" envDefault:"10s"`
	Retries          int           `env:"NPM_RETRIES" envDefault:"2"`
	BreakerThreshold int           `env:"NPM_BREAKER_THRESHOLD" envDefault:"5"`
	BreakerRecovery  time.Duration `env:"NPM_BREAKER_RECOVERY" envDefault:"30s"`
	CacheSize        int           `env:"REGISTRY_CACHE_SIZE" envDefault:"128"`
	CacheTTL         time.Duration `env:"REGISTRY_CACHE_TTL" envDefault:"10m"`
}

// DefaultConfig returns the public npm endpoints.
func DefaultConfig() Config {
	return Config{
		RegistryURL:      "https://registry.npmjs.org",
		DownloadsURL:     "https://api.npmjs.org/downloads",
		Timeout:          10 * time.Second,
		Retries:          2,
		BreakerThreshold: 5,
		BreakerRecovery:  30 * time.Second,
		CacheSize:        128,
		CacheTTL:         10 * time.Minute,
	}
}
