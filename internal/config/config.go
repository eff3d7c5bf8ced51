package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Env       string
	Port      string
	JWTSecret string
	Database  DatabaseConfig
	Redis     RedisConfig
	SMS       SMSConfig
	AI        AIConfig
	Shop      ShopConfig
	Storage   StorageConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// RedisConfig holds the draft-store connection settings
type RedisConfig struct {
	Addr string
}

// SMSConfig holds the SMS gateway settings
type SMSConfig struct {
	GatewayURL string
	APIKey     string
	SenderID   string
}

// AIConfig holds the repair-suggestion model settings
type AIConfig struct {
	GeminiAPIKey string
	Model        string
}

// ShopConfig identifies the shop on receipts and customer SMS
type ShopConfig struct {
	Name        string
	Phone       string
	Address     string
	TrackingURL string
}

// StorageConfig holds the attachment store settings
type StorageConfig struct {
	AttachmentDir string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		Env:       getEnv("APP_ENV", "development"),
		Port:      getEnv("PORT", "3220"),
		JWTSecret: jwtSecret,
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "repairgo"),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		SMS: SMSConfig{
			GatewayURL: os.Getenv("SMS_GATEWAY_URL"),
			APIKey:     os.Getenv("SMS_API_KEY"),
			SenderID:   getEnv("SMS_SENDER_ID", "REPAIRSHOP"),
		},
		AI: AIConfig{
			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
			Model:        getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		},
		Shop: ShopConfig{
			Name:        getEnv("SHOP_NAME", "LATS Device Repair"),
			Phone:       os.Getenv("SHOP_PHONE"),
			Address:     os.Getenv("SHOP_ADDRESS"),
			TrackingURL: getEnv("SHOP_TRACKING_URL", "https://track.latshub.example"),
		},
		Storage: StorageConfig{
			AttachmentDir: getEnv("ATTACHMENT_DIR", "./attachments"),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
