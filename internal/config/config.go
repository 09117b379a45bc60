package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"moneypulse/pkg/kvstore"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string
	DB         kvstore.Config

	// TransferToken is the symbol passed to the relayer on gasless transfers.
	TransferToken string
	// TransferSuccessDelay postpones the ledger append after a confirmed
	// transfer; presentation-only, zero is fine.
	TransferSuccessDelay time.Duration
	// RelayerLatency is the simulated settlement time of the relayer.
	RelayerLatency time.Duration

	// AdvisorModel is the chat model backing the financial advisor. The
	// Gemini client reads its API key from GEMINI_API_KEY; without one the
	// advisor is disabled.
	AdvisorModel string
}

// LoadConfig loads configuration from environment variables, reading a .env
// file first when one exists. Real environment variables win.
func LoadConfig() (*AppConfig, error) {
	_ = godotenv.Load()

	dbPortStr := getenv("DB_PORT", "5432")
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	successDelay, err := millis("TRANSFER_SUCCESS_DELAY_MS", 0)
	if err != nil {
		return nil, err
	}
	relayerLatency, err := millis("RELAYER_LATENCY_MS", 2500)
	if err != nil {
		return nil, err
	}

	return &AppConfig{
		ServerPort: getenv("SERVER_PORT", "8080"),
		DB: kvstore.Config{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getenv("DB_USER", "user"),
			Password: getenv("DB_PASSWORD", "password"),
			DBName:   getenv("DB_NAME", "moneypulse"),
			SSLMode:  getenv("DB_SSLMODE", "disable"),
		},
		TransferToken:        getenv("TRANSFER_TOKEN", "USDC"),
		TransferSuccessDelay: successDelay,
		RelayerLatency:       relayerLatency,
		AdvisorModel:         getenv("ADVISOR_MODEL", "gemini-3-pro-preview"),
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func millis(key string, fallback int64) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(fallback) * time.Millisecond, nil
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ms < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
