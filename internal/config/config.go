// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	StoryAPI    StoryAPIConfig
	Chain       ChainConfig
	Protocol    ProtocolConfig
	Feed        FeedConfig
	I18n        I18nConfig
	Frontend    FrontendConfig
}

type FrontendConfig struct {
	BaseURL string
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL int // in hours
}

// StoryAPIConfig points at the upstream asset query endpoint.
type StoryAPIConfig struct {
	BaseURL string
	APIKey  string
	Timeout int // in seconds
}

// ChainConfig identifies the network every on-chain operation must run on.
type ChainConfig struct {
	ChainID        int64
	Name           string
	RPCURL         string
	ExplorerURL    string
	CurrencySymbol string
}

// ProtocolConfig points at the protocol SDK gateway that signs and submits
// transactions on behalf of the connected wallet.
type ProtocolConfig struct {
	GatewayURL     string
	Timeout        int // in seconds
	ConfirmTimeout int // in seconds
	SettleDelay    int // in seconds, fallback when no RPC is configured
}

type FeedConfig struct {
	PageSize         int
	LowWaterMark     int
	SwipeHistorySize int
}

type I18nConfig struct {
	DefaultLocale string
	LocalesPath   string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "storyboard"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		JWT: JWTConfig{
			SecretKey:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenTTL: getEnvAsInt("JWT_ACCESS_TTL", 24), // 24 hours
		},
		StoryAPI: StoryAPIConfig{
			BaseURL: getEnv("STORY_API_URL", "https://staging-api.storyprotocol.net/api/v4"),
			APIKey:  getEnv("STORY_API_KEY", ""),
			Timeout: getEnvAsInt("STORY_API_TIMEOUT", 15),
		},
		Chain: ChainConfig{
			ChainID:        getEnvAsInt64("CHAIN_ID", 1315), // Story Aeneid testnet
			Name:           getEnv("CHAIN_NAME", "story-aeneid"),
			RPCURL:         getEnv("CHAIN_RPC_URL", "https://aeneid.storyrpc.io"),
			ExplorerURL:    getEnv("CHAIN_EXPLORER_URL", "https://aeneid.storyscan.xyz"),
			CurrencySymbol: getEnv("CHAIN_CURRENCY", "IP"),
		},
		Protocol: ProtocolConfig{
			GatewayURL:     getEnv("PROTOCOL_GATEWAY_URL", "http://localhost:8545/sdk"),
			Timeout:        getEnvAsInt("PROTOCOL_TIMEOUT", 30),
			ConfirmTimeout: getEnvAsInt("PROTOCOL_CONFIRM_TIMEOUT", 60),
			SettleDelay:    getEnvAsInt("PROTOCOL_SETTLE_DELAY", 3),
		},
		Feed: FeedConfig{
			PageSize:         getEnvAsInt("FEED_PAGE_SIZE", 50),
			LowWaterMark:     getEnvAsInt("FEED_LOW_WATER_MARK", 5),
			SwipeHistorySize: getEnvAsInt("SWIPE_HISTORY_SIZE", 10),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
			LocalesPath:   getEnv("LOCALES_PATH", "./internal/i18n/locales"),
		},
		Frontend: FrontendConfig{
			BaseURL: getEnv("FRONTEND_BASE_URL", "http://localhost:3000"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == "your-secret-key-change-in-production" && c.Environment == "production" {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	if c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	if c.Chain.ChainID <= 0 {
		return fmt.Errorf("chain id must be positive")
	}

	if c.Feed.PageSize < 1 {
		return fmt.Errorf("feed page size must be at least 1")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
