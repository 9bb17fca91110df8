package common

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/clinikit/labreport-tracker/constants"
)

// Config holds all application configuration
type Config struct {
	Data     DataConfig
	Notify   NotifyConfig
	Reminder ReminderConfig
	LogLevel slog.Level
}

// DataConfig holds the locations of the flat-file resources.
type DataConfig struct {
	Dir           string
	KeywordsPath  string
	HistoryPath   string
	RemindersPath string
}

// NotifyConfig holds the outbound notification transport settings.
type NotifyConfig struct {
	TelegramBotToken string
	TelegramChatID   string
	Timeout          time.Duration
}

// ReminderConfig holds the due-check schedule.
type ReminderConfig struct {
	CheckInterval time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	dir := getEnv("DATA_DIR", ".")
	return &Config{
		Data: DataConfig{
			Dir:           dir,
			KeywordsPath:  getEnv("KEYWORDS_FILE", filepath.Join(dir, constants.KeywordsFile)),
			HistoryPath:   getEnv("HISTORY_FILE", filepath.Join(dir, constants.HistoryFile)),
			RemindersPath: getEnv("REMINDERS_FILE", filepath.Join(dir, constants.RemindersFile)),
		},
		Notify: NotifyConfig{
			TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
			TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
			Timeout:          getEnvAsDuration("NOTIFY_TIMEOUT", 15*time.Second),
		},
		Reminder: ReminderConfig{
			CheckInterval: getEnvAsDuration("REMINDER_CHECK_INTERVAL", time.Hour),
		},
		LogLevel: getEnvAsLogLevel("LOG_LEVEL", slog.LevelInfo),
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsLogLevel(key string, defaultValue slog.Level) slog.Level {
	if value := os.Getenv(key); value != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(value)); err == nil {
			return level
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return NewAppError("CONFIG_ERROR", "DATA_DIR is required", ErrInvalidInput)
	}
	if c.Reminder.CheckInterval <= 0 {
		return NewAppError("CONFIG_ERROR", "REMINDER_CHECK_INTERVAL must be positive", ErrInvalidInput)
	}
	return nil
}

// NotifyConfigured reports whether an outbound transport is fully set up.
func (c *Config) NotifyConfigured() bool {
	return c.Notify.TelegramBotToken != "" && c.Notify.TelegramChatID != ""
}
