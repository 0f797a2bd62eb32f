package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration, read by viper from a config file
// or environment variables. Pipeline limits (length budgets, category
// bounds, generation parameters) are fixed contracts and deliberately not
// configurable here.
type Config struct {
	TelegramBotToken string `mapstructure:"TELEGRAM_BOT_TOKEN"`
	BadgerDBPath     string `mapstructure:"BADGERDB_PATH"`

	GeminiAPIKey   string `mapstructure:"GEMINI_API_KEY"`
	GeminiEndpoint string `mapstructure:"GEMINI_ENDPOINT"`
	GeminiModel    string `mapstructure:"GEMINI_MODEL"`

	// AdminUserIDs lists the Telegram user IDs allowed to run moderation
	// commands (approve/archive/delete).
	AdminUserIDs []int64 `mapstructure:"ADMIN_USER_IDS"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
}

// IsAdmin reports whether userID may run moderation commands.
func (c Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	err = viper.ReadInConfig()
	if err != nil {
		// A missing config file is fine when env vars carry the values.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if config.TelegramBotToken == "" {
		return Config{}, fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}
	if config.GeminiAPIKey == "" {
		return Config{}, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if config.GeminiEndpoint == "" {
		config.GeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	}
	if config.GeminiModel == "" {
		config.GeminiModel = "gemini-pro"
	}
	if config.BadgerDBPath == "" {
		config.BadgerDBPath = "./badger_data"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	return config, nil
}
