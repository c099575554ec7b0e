package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	PriceFeed PriceFeed `mapstructure:"price_feed"`
	Binance   Binance   `mapstructure:"binance"`
	Telegram  Telegram  `mapstructure:"telegram"`
	Email     Email     `mapstructure:"email"`
	Scheduler Scheduler `mapstructure:"scheduler"`
	Logger    Logger    `mapstructure:"logger"`
	Server    Server    `mapstructure:"server"`
	Database  Database  `mapstructure:"database"`
}

// PriceFeed holds the configuration for the external price API.
type PriceFeed struct {
	BaseURL        string  `mapstructure:"base_url"`
	ApiKey         string  `mapstructure:"api_key"`
	AssetID        string  `mapstructure:"asset_id"`
	VsCurrency     string  `mapstructure:"vs_currency"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Binance holds the configuration for the Binance API.
// Leaving ApiKey/SecretKey empty disables venue execution; orders are then
// recorded in the database only.
type Binance struct {
	ApiKey         string  `mapstructure:"apiKey"`
	SecretKey      string  `mapstructure:"secretKey"`
	Testnet        bool    `mapstructure:"testnet"`
	Symbol         string  `mapstructure:"symbol"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Telegram holds the configuration for Telegram alerting.
type Telegram struct {
	Enabled        bool   `mapstructure:"enabled"`
	BotToken       string `mapstructure:"bot_token"`
	ChatID         int64  `mapstructure:"chat_id"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Email holds the configuration for SMTP alerting.
type Email struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	From           string `mapstructure:"from"`
	To             string `mapstructure:"to"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Scheduler holds the cron configuration for the sampling cycle.
type Scheduler struct {
	CronSpec     string `mapstructure:"cron_spec"`
	Timezone     string `mapstructure:"timezone"`
	RunAtStartup bool   `mapstructure:"run_at_startup"`
}

// Server holds the configuration for the status HTTP server.
type Server struct {
	Port int `mapstructure:"port"`
}

// Database holds the configuration for the database.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or yaml, json

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("price_feed.base_url", "https://api.coingecko.com/api/v3")
	viper.SetDefault("price_feed.asset_id", "bitcoin")
	viper.SetDefault("price_feed.vs_currency", "usd")
	viper.SetDefault("price_feed.timeout_seconds", 10)
	viper.SetDefault("price_feed.rate_limit", 1) // requests per second
	viper.SetDefault("price_feed.rate_limit_burst", 1)
	viper.SetDefault("binance.symbol", "BTCUSDT")
	viper.SetDefault("binance.timeout_seconds", 10)
	viper.SetDefault("binance.rate_limit", 20)             // requests per second
	viper.SetDefault("binance.rate_limit_burst", 5)        // burst size
	viper.SetDefault("telegram.timeout_seconds", 10)
	viper.SetDefault("email.timeout_seconds", 10)
	viper.SetDefault("scheduler.cron_spec", "0 0 9 * * *") // daily at 09:00
	viper.SetDefault("scheduler.timezone", "America/Argentina/Buenos_Aires")
	viper.SetDefault("scheduler.run_at_startup", true)

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
