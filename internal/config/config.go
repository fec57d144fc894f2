package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds all configuration for the application
type Config struct {
	Port               string
	DatabaseURL        string
	Version            string
	LogLevel           string
	OpenAIKey          string
	OpenAITimeout      int    // OpenAI API timeout in seconds
	SendGridAPIKey     string // SendGrid API key for dispatching RFPs to vendors
	FromEmail          string // Sender address on outgoing RFP emails
	IMAPHost           string // IMAP server for vendor reply polling
	IMAPPort           int
	IMAPUser           string
	IMAPPassword       string
	IMAPTimeout        int // IMAP session timeout in seconds
	ComparisonCacheTTL int // Proposal comparison cache TTL in minutes
}

// Load initializes and returns application configuration
func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		Version:            getEnv("VERSION", "1.0.0"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		OpenAITimeout:      getEnvInt("OPENAI_TIMEOUT", 60),
		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		FromEmail:          getEnv("FROM_EMAIL", "procurement@rfphub.io"),
		IMAPHost:           getEnv("IMAP_HOST", "imap.gmail.com"),
		IMAPPort:           getEnvInt("IMAP_PORT", 993),
		IMAPUser:           os.Getenv("IMAP_USER"),
		IMAPPassword:       os.Getenv("IMAP_PASSWORD"),
		IMAPTimeout:        getEnvInt("IMAP_TIMEOUT", 30),
		ComparisonCacheTTL: getEnvInt("COMPARISON_CACHE_TTL_MINUTES", 10),
	}

	return config
}

// getEnv gets an environment variable with a default fallback
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as integer with a default fallback
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// SetupLogger configures zerolog with JSON output and single-line format
func (c *Config) SetupLogger() zerolog.Logger {
	// Configure zerolog to output JSON without newlines
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Create logger with JSON output to stdout
	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "rfphub").
		Str("version", c.Version).
		Logger()

	// Set log level based on configuration
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger = logger.Level(level)

	return logger
}
