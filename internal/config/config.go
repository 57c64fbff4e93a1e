package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config is the full runtime configuration, loaded from the environment.
type Config struct {
	Port string
	Env  string

	MongoURI string
	MongoDB  string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	JWTSecret string

	Provider string

	Judge0URL string
	Judge0Key string

	CooldownWindow time.Duration

	FeedbackExportEnabled  bool
	FeedbackExportSchedule string
	FeedbackExportDir      string
}

// LoadConfig reads the environment. Only the pieces a deployment cannot run
// without are validated; optional integrations stay empty and degrade.
func LoadConfig() (*Config, error) {
	config := &Config{
		Port: getEnvOrDefault("PORT", "8080"),
		Env:  getEnvOrDefault("APP_ENV", "development"),

		MongoURI: getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnvOrDefault("MONGO_DB", "jobsforce"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:      getEnvDuration("CACHE_TTL_MS", time.Hour),

		JWTSecret: os.Getenv("JWT_SECRET"),

		Provider: getEnvOrDefault("AI_PROVIDER", "gemini"),

		Judge0URL: os.Getenv("JUDGE0_API_URL"),
		Judge0Key: os.Getenv("JUDGE0_API_KEY"),

		CooldownWindow: getEnvDuration("COOLDOWN_MS", 5000*time.Millisecond),

		FeedbackExportEnabled:  getEnvBool("FEEDBACK_EXPORT_ENABLED", false),
		FeedbackExportSchedule: getEnvOrDefault("FEEDBACK_EXPORT_SCHEDULE", "0 3 * * *"),
		FeedbackExportDir:      getEnvOrDefault("FEEDBACK_EXPORT_DIR", "./exports"),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini")
	}
	if config.CooldownWindow <= 0 {
		return errors.New("COOLDOWN_MS must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	ms, err := strconv.Atoi(value)
	if err != nil || ms <= 0 {
		return defaultValue
	}
	return time.Duration(ms) * time.Millisecond
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
