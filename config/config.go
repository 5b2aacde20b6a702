package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	LogLevel       string
	RequestTimeout time.Duration

	// Financial data provider. APIKey is not validated: the provider rejects
	// calls without it.
	APIKey          string
	FMPBaseURL      string
	ProviderTimeout time.Duration

	BooksDBPath   string
	CoversBaseURL string
	RabbitURL     string
}

// Load reads the configuration from the environment, after loading a .env
// file when one is present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "3000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 60*time.Second),
		APIKey:          os.Getenv("API_KEY"),
		FMPBaseURL:      getEnv("FMP_BASE_URL", "https://financialmodelingprep.com/stable"),
		ProviderTimeout: getDuration("PROVIDER_TIMEOUT", 10*time.Second),
		BooksDBPath:     getEnv("BOOKS_DB_PATH", "data/books.db"),
		CoversBaseURL:   getEnv("COVERS_BASE_URL", "https://covers.openlibrary.org"),
		RabbitURL:       os.Getenv("RABBIT_URL"),
	}
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
