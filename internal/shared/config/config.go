package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port              string
	CORSAllowOrigin   []string
	LLMProvider       string
	LLMModel          string
	OpenAIAPIURL      string
	DefaultCredential string
	CredentialStore   string
	DatabaseURL       string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	RateLimitRPS      float64
	RateLimitBurst    int
	Env               string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience; existing env vars win.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	store := normalizeStore(getEnv("CREDENTIAL_STORE", ""), dbURL)

	if env == "production" && store == "memory" {
		log.Printf("CREDENTIAL_STORE=memory in production; credentials will not survive restarts")
	}

	return Config{
		Port:              getEnv("PORT", "8080"),
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		LLMProvider:       strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
		LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
		OpenAIAPIURL:      getEnv("OPENAI_API_URL", "https://api.openai.com/v1/chat/completions"),
		DefaultCredential: os.Getenv("OPENAI_API_KEY"),
		CredentialStore:   store,
		DatabaseURL:       dbURL,
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		RateLimitRPS:      getEnvFloat("RATE_LIMIT_RPS", 0.2),
		RateLimitBurst:    getEnvInt("RATE_LIMIT_BURST", 5),
		Env:               env,
	}
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			log.Printf("config: skip %s: %v", path, err)
		}
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config: %s invalid int: %v", key, err)
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config: %s invalid float: %v", key, err)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

// normalizeStore picks postgres when a database is configured and no store was named.
func normalizeStore(raw, dbURL string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg":
		return "postgres"
	case "redis":
		return "redis"
	case "memory":
		return "memory"
	default:
		if strings.TrimSpace(dbURL) != "" {
			return "postgres"
		}
		return "memory"
	}
}
