package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	Port          string
	DBPath        string
	PollTimeout   time.Duration
	LogLevel      string
}

// Load reads configuration from a .env file (if present) and the
// environment. Only the bot token is mandatory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: .env file not found, using environment variables")
	}

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "10000"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "trades.db"
	}

	pollTimeout := 30 * time.Second
	if v := os.Getenv("POLL_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			pollTimeout = time.Duration(secs) * time.Second
		}
	}

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	return &Config{
		TelegramToken: token,
		Port:          port,
		DBPath:        dbPath,
		PollTimeout:   pollTimeout,
		LogLevel:      level,
	}, nil
}
