package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/ttriggs/Connect-Four/internal/domain"
)

type Config struct {
	Port              string
	AllowedOrigins    []string
	FrontendURL       string
	LogLevel          string
	LogPretty         bool
	AISeed            int64
	AINoiseMin        int
	AINoiseMax        int
	DefaultDifficulty domain.Difficulty
	SessionTTL        time.Duration
	CleanupInterval   time.Duration
	KafkaBrokers      []string
	KafkaTopic        string
	TUILogFile        string
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOrigins := []string{frontendURL}
	allowedOrigins = append(allowedOrigins, splitCSV(GetEnv("ALLOWED_ORIGINS", ""))...)

	// AI
	difficulty, err := domain.ParseDifficulty(GetEnv("DEFAULT_DIFFICULTY", string(domain.Easy)))
	if err != nil {
		log.Warn().Str("key", "DEFAULT_DIFFICULTY").Msg("unknown difficulty, using easy")
		difficulty = domain.Easy
	}

	// Sessions
	sessionTTLMin := GetEnvAsPositiveInt("SESSION_TTL_MINUTES", 60)
	cleanupIntervalMin := GetEnvAsPositiveInt("CLEANUP_INTERVAL_MINUTES", 10)

	AppConfig = &Config{
		Port:              port,
		AllowedOrigins:    allowedOrigins,
		FrontendURL:       frontendURL,
		LogLevel:          GetEnv("LOG_LEVEL", "info"),
		LogPretty:         GetEnvAsBool("LOG_PRETTY", true),
		AISeed:            int64(GetEnvAsInt("AI_SEED", 0)),
		AINoiseMin:        GetEnvAsInt("AI_NOISE_MIN", -10),
		AINoiseMax:        GetEnvAsInt("AI_NOISE_MAX", 20),
		DefaultDifficulty: difficulty,
		SessionTTL:        time.Duration(sessionTTLMin) * time.Minute,
		CleanupInterval:   time.Duration(cleanupIntervalMin) * time.Minute,
		KafkaBrokers:      splitCSV(GetEnv("KAFKA_BROKERS", "")),
		KafkaTopic:        GetEnv("KAFKA_TOPIC", "game.analytics"),
		TUILogFile:        GetEnv("TUI_LOG_FILE", ""),
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).Msg("invalid integer value, using default")
		return defaultValue
	}
	return value
}

// GetEnvAsPositiveInt is GetEnvAsInt for durations and periods, where zero
// or a negative value would be meaningless.
func GetEnvAsPositiveInt(key string, defaultValue int) int {
	value := GetEnvAsInt(key, defaultValue)
	if value <= 0 {
		log.Warn().Str("key", key).Int("value", value).Int("default", defaultValue).Msg("non-positive value, using default")
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Bool("default", defaultValue).Msg("invalid boolean value, using default")
		return defaultValue
	}
	return value
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
