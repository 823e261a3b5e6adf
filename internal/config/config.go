package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderMessages = "messages"
	ProviderGemini   = "gemini"
)

type Config struct {
	DatabaseURL      string
	DBMaxConns       int
	StatsHistoryDays int
	LogLevel         string
	Debug            bool
	ServiceName      string
	Environment      string
	Hostname         string
	ServerPort       string
	AllowedOrigins   []string

	// Generation backend
	GenerationProvider   string
	GenerationBaseURL    string
	GenerationAPIKey     string
	GenerationAPIVersion string
	GenerationModel      string
	GenerationMaxTokens  int
	GenerationTimeout    time.Duration
	GeminiAPIKeys        []string
	GeminiModel          string

	// Seller sessions
	SessionIdleTTL time.Duration
	MaxSessions    int
}

func LoadConfig() (*Config, error) {
	provider := strings.ToLower(getEnv("GENERATION_PROVIDER", ProviderMessages))

	generationAPIKey := os.Getenv("GENERATION_API_KEY")
	geminiAPIKeys := splitList(os.Getenv("GEMINI_API_KEYS"))

	switch provider {
	case ProviderMessages:
		if generationAPIKey == "" {
			return nil, errors.New("GENERATION_API_KEY is required")
		}
	case ProviderGemini:
		if len(geminiAPIKeys) == 0 {
			return nil, errors.New("GEMINI_API_KEYS is required when GENERATION_PROVIDER=gemini")
		}
	default:
		return nil, fmt.Errorf("unknown GENERATION_PROVIDER: %s", provider)
	}

	allowedOrigins := []string{"*"}
	if ao := splitList(os.Getenv("ALLOWED_ORIGINS")); len(ao) > 0 {
		allowedOrigins = ao
	}

	generationTimeout, err := getEnvDuration("GENERATION_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	sessionIdleTTL, err := getEnvDuration("SESSION_IDLE_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	dbMaxConns, err := getEnvInt("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, err
	}
	statsHistoryDays, err := getEnvInt("STATS_HISTORY_DAYS", 28)
	if err != nil {
		return nil, err
	}
	generationMaxTokens, err := getEnvInt("GENERATION_MAX_TOKENS", 1000)
	if err != nil {
		return nil, err
	}
	maxSessions, err := getEnvInt("MAX_SESSIONS", 1000)
	if err != nil {
		return nil, err
	}

	return &Config{
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		DBMaxConns:           dbMaxConns,
		StatsHistoryDays:     statsHistoryDays,
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		Debug:                getEnv("DEBUG", "false") == "true",
		ServiceName:          getEnv("SERVICE_NAME", "seller-dashboard"),
		Hostname:             getEnv("HOSTNAME", "seller-dashboard"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		AllowedOrigins:       allowedOrigins,
		GenerationProvider:   provider,
		GenerationBaseURL:    getEnv("GENERATION_BASE_URL", "https://api.anthropic.com"),
		GenerationAPIKey:     generationAPIKey,
		GenerationAPIVersion: getEnv("GENERATION_API_VERSION", "2023-06-01"),
		GenerationModel:      getEnv("GENERATION_MODEL", "claude-3-5-sonnet-20241022"),
		GenerationMaxTokens:  generationMaxTokens,
		GenerationTimeout:    generationTimeout,
		GeminiAPIKeys:        geminiAPIKeys,
		GeminiModel:          getEnv("GEMINI_MODEL", "gemini-2.0-flash-lite"),
		SessionIdleTTL:       sessionIdleTTL,
		MaxSessions:          maxSessions,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

// splitList splits a comma-separated value and drops blank entries.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
