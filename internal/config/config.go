package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultSearchURL  = "https://api.casadosdados.com.br/v5/cnpj/pesquisa"
	DefaultDetailsURL = "https://api.casadosdados.com.br/v4/cnpj"
)

// Config holds the application configuration
type Config struct {
	Port string

	// Casa dos Dados company registry
	CasaDadosAPIKey     string
	CasaDadosSearchURL  string
	CasaDadosDetailsURL string

	// Storage: DATABASE_URL wins over Supabase when both are set
	DatabaseURL string
	SupabaseURL string
	SupabaseKey string
	LeadsTable  string

	// Optional Redis cache for company details
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	DetailsCacheTTL time.Duration

	LogLevel  string
	LogFormat string

	// Shared dashboard password; empty disables authentication
	AppPassword  string
	SecureCookie bool

	// The two principals leads are divided between
	Owners []string

	EnrichMaxConcurrent int
	EnrichMinDelay      time.Duration

	RateLimitRPM   int
	RateLimitBurst int

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables, after loading an optional .env file
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:                getEnv("PORT", "8080"),
		CasaDadosAPIKey:     os.Getenv("CASA_DADOS_API_KEY"),
		CasaDadosSearchURL:  getEnv("CASA_DADOS_SEARCH_URL", DefaultSearchURL),
		CasaDadosDetailsURL: getEnv("CASA_DADOS_DETAILS_URL", DefaultDetailsURL),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		SupabaseURL:         os.Getenv("SUPABASE_URL"),
		SupabaseKey:         getEnvWithFallback("SUPABASE_SECRET_KEY", "SUPABASE_KEY"),
		LeadsTable:          getEnv("LEADS_TABLE", "leads"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		DetailsCacheTTL:     time.Duration(getEnvInt("DETAILS_CACHE_TTL_HOURS", 24)) * time.Hour,
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "json"),
		AppPassword:         os.Getenv("APP_PASSWORD"),
		SecureCookie:        getEnv("COOKIE_SECURE", "false") == "true",
		Owners:              ownersFromEnv(),
		EnrichMaxConcurrent: getEnvInt("ENRICH_MAX_CONCURRENT", 5),
		EnrichMinDelay:      time.Duration(getEnvInt("ENRICH_MIN_DELAY_MS", 0)) * time.Millisecond,
		RateLimitRPM:        getEnvInt("RATE_LIMIT_RPM", 120),
		RateLimitBurst:      getEnvInt("RATE_LIMIT_BURST", 20),
		CORSAllowedOrigins:  getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

// ownersFromEnv reads OWNERS and falls back to the defaults unless exactly two names are given
func ownersFromEnv() []string {
	defaults := []string{"joao", "vitor"}
	owners := getEnvList("OWNERS", defaults)
	if len(owners) != 2 || owners[0] == owners[1] {
		return defaults
	}
	return owners
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvWithFallback returns the first non-empty of two variables
func getEnvWithFallback(primary, fallback string) string {
	if value := os.Getenv(primary); value != "" {
		return value
	}
	return os.Getenv(fallback)
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// getEnvList splits a comma separated variable, dropping blank items
func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
