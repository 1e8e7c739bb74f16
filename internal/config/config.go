package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// SMTPConfig holds credentials for the outbound mail relay.
type SMTPConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	FromEmail string
	FromName  string
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL string
	JWTSecret   string
	Port        string
	BaseURL     string
	TokenTTL    time.Duration

	GeminiAPIKey string
	GeminiModel  string

	SerpAPIKey    string
	UseRealSearch bool

	ApolloAPIKey  string
	SnovAPIKey    string
	HunterAPIKey  string
	UseRealEmails bool

	QualificationThreshold float64
	MaxResearchResults     int

	MaxConcurrentScrapes int
	ScrapingDelay        time.Duration
	UserAgent            string

	SMTP SMTPConfig

	RateLimitRun RateLimitConfig

	DefaultPhoneRegion string
}

// Load reads configuration from environment variables and applies sane defaults.
// Provider API keys are presence-gated only; they are not validated at startup.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret"),
		Port:        getEnv("PORT", "8080"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		TokenTTL:    parseDuration(getEnv("JWT_TTL", "24h"), 24*time.Hour),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		SerpAPIKey:    os.Getenv("SERPAPI_KEY"),
		UseRealSearch: parseBool(getEnv("USE_REAL_SEARCH", "false")),

		ApolloAPIKey:  os.Getenv("APOLLO_API_KEY"),
		SnovAPIKey:    os.Getenv("SNOV_API_KEY"),
		HunterAPIKey:  os.Getenv("HUNTER_API_KEY"),
		UseRealEmails: parseBool(getEnv("USE_REAL_EMAILS", "false")),

		MaxConcurrentScrapes: parseInt(getEnv("MAX_CONCURRENT_SCRAPES", "5"), 5),
		ScrapingDelay:        parseDuration(getEnv("SCRAPING_DELAY", "1s"), time.Second),
		UserAgent:            getEnv("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),

		SMTP: SMTPConfig{
			Host:      getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:      parseInt(getEnv("SMTP_PORT", "587"), 587),
			User:      os.Getenv("SMTP_USER"),
			Password:  os.Getenv("SMTP_PASSWORD"),
			FromEmail: os.Getenv("SMTP_FROM_EMAIL"),
			FromName:  getEnv("SMTP_FROM_NAME", "Sales Team"),
		},

		DefaultPhoneRegion: getEnv("DEFAULT_PHONE_REGION", "US"),
	}

	threshold, err := strconv.ParseFloat(getEnv("QUALIFICATION_THRESHOLD", "0.7"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid QUALIFICATION_THRESHOLD value: %w", err)
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("QUALIFICATION_THRESHOLD must be within [0,1], got %v", threshold)
	}
	cfg.QualificationThreshold = threshold

	if cfg.MaxResearchResults = parseInt(getEnv("MAX_RESEARCH_RESULTS", "50"), 50); cfg.MaxResearchResults <= 0 {
		cfg.MaxResearchResults = 50
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_RUN", "5/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RUN value: %w", err)
	}
	cfg.RateLimitRun = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return fallback
	}
	return d
}

func parseBool(input string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(input))
	if err != nil {
		return false
	}
	return b
}

func parseInt(input string, fallback int) int {
	i, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return fallback
	}
	return i
}
