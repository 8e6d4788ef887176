package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds all environment configuration
type Config struct {
	// Server
	Port string

	// Database
	DatabaseHost     string
	DatabasePort     string
	PostgresUser     string
	PostgresPassword string
	DatabaseName     string

	// Authentication
	JWTSecret string

	// Cache
	RedisHost       string
	RedisPassword   string
	CacheTTLSeconds int

	// Kafka
	KafkaBroker string
	ShiftTopic  string

	// Discord
	DiscordBotToken  string
	DiscordChannelID string

	// Category audit
	CategoryAuditIntervalMinutes int
}

var (
	appConfig *Config
	onceEnv   sync.Once
)

// LoadConfig loads and validates all environment variables
func loadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		Port: getEnvWithDefault("PORT", "8000"),

		DatabaseHost:     getEnvWithDefault("DATABASE_HOST", "localhost"),
		DatabasePort:     getEnvWithDefault("DATABASE_PORT", "5432"),
		PostgresUser:     getEnvWithDefault("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnvWithDefault("POSTGRES_PASSWORD", "postgres"),
		DatabaseName:     getEnvWithDefault("DATABASE_NAME", "postgres"),

		// JWT - required in production
		JWTSecret: getEnv("JWT_SECRET"),

		// Redis - optional, the in-memory cache is used without it
		RedisHost:       getEnvWithDefault("REDIS_HOST", ""),
		RedisPassword:   getEnvWithDefault("REDIS_PASSWORD", ""),
		CacheTTLSeconds: getEnvAsInt("CACHE_TTL_SECONDS", 30),

		// Kafka - optional, shift events are not published without a broker
		KafkaBroker: getEnvWithDefault("KAFKA_BROKER", ""),
		ShiftTopic:  getEnvWithDefault("SHIFT_TOPIC", "shift-events"),

		// Discord - optional
		DiscordBotToken:  getEnvWithDefault("DISCORD_BOT_TOKEN", ""),
		DiscordChannelID: getEnvWithDefault("DISCORD_CHANNEL_ID", ""),

		CategoryAuditIntervalMinutes: getEnvAsInt("CATEGORY_AUDIT_INTERVAL_MINUTES", 60),
	}
	if config.JWTSecret == "" {
		config.JWTSecret = "dummyjwt"
	}
	return config
}

func Env() *Config {
	onceEnv.Do(func() {
		appConfig = loadConfig()
	})
	return appConfig
}

// Helper functions
func getEnv(key string) string {
	value := os.Getenv(key)
	if value == "" && IsProduction() {
		panic(fmt.Sprintf("Required environment variable %s is not set", key))
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// IsProduction returns true if running in production
func IsProduction() bool {
	return getEnvWithDefault("ENVIRONMENT", "development") == "production"
}
