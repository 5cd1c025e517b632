package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	LLM       LLMConfig
	Recommend RecommendConfig
	Inventory InventoryConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

// Enabled reports whether a database was configured. Without one the service
// runs entirely from the static seed data.
func (d DatabaseConfig) Enabled() bool {
	return d.Database != ""
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether Redis was configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int64
}

// Enabled reports whether an LLM backend was configured for the assistant.
func (l LLMConfig) Enabled() bool {
	return l.APIKey != ""
}

// RecommendConfig externalizes the scoring rule table so the weights stay
// auditable instead of being scattered as inline literals.
type RecommendConfig struct {
	DefaultCount          int
	BundleDiscountPercent float64
	SaleMonths            []int
}

// InventoryConfig externalizes the stock thresholds the prototype hardcoded.
type InventoryConfig struct {
	LowStockThreshold int
}

type RateLimitConfig struct {
	RequestsPerWindow int
	WindowSeconds     int
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("LLM_BASE_URL", "")
	viper.SetDefault("LLM_MODEL", "gpt-4o-mini")
	viper.SetDefault("LLM_TEMPERATURE", 0.2)
	viper.SetDefault("LLM_MAX_TOKENS", 2048)
	viper.SetDefault("RECOMMEND_DEFAULT_COUNT", 3)
	viper.SetDefault("RECOMMEND_BUNDLE_DISCOUNT_PERCENT", 15.0)
	viper.SetDefault("RECOMMEND_SALE_MONTHS", []int{1, 7, 12})
	viper.SetDefault("INVENTORY_LOW_STOCK_THRESHOLD", 50)
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		LLM: LLMConfig{
			APIKey:      viper.GetString("LLM_API_KEY"),
			BaseURL:     viper.GetString("LLM_BASE_URL"),
			Model:       viper.GetString("LLM_MODEL"),
			Temperature: viper.GetFloat64("LLM_TEMPERATURE"),
			MaxTokens:   viper.GetInt64("LLM_MAX_TOKENS"),
		},
		Recommend: RecommendConfig{
			DefaultCount:          viper.GetInt("RECOMMEND_DEFAULT_COUNT"),
			BundleDiscountPercent: viper.GetFloat64("RECOMMEND_BUNDLE_DISCOUNT_PERCENT"),
			SaleMonths:            viper.GetIntSlice("RECOMMEND_SALE_MONTHS"),
		},
		Inventory: InventoryConfig{
			LowStockThreshold: viper.GetInt("INVENTORY_LOW_STOCK_THRESHOLD"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerWindow: viper.GetInt("RATE_LIMIT_REQUESTS"),
			WindowSeconds:     viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}
}
