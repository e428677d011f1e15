package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Keys      APIKeys
	Ai        AIConfig
	Quota     QuotaConfig
	Rules     RulesConfig
	Retrieval RetrievalConfig
	Auth      AuthConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string // empty disables suggestion events
	RedisURL           string
	MaxConcurrentBlock int
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	HuggingFace  string
	Anthropic    string
	Jina         string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini", "ollama" or "jina"
	OllamaBaseURL     string
	OllamaModel       string // embedding model
	LLMProvider       string // "ollama", "huggingface", "gemini", "anthropic" or "none"
	LLMModel          string
	LLMBaseURL        string
	Timeout           time.Duration
}

type QuotaConfig struct {
	DailyCapacity int
	Backend       string // "memory" or "redis"
	KeyPrefix     string
}

type RulesConfig struct {
	Enabled          []string
	MaxSentenceWords int
	GlossaryPath     string
}

type RetrievalConfig struct {
	Backend  string // "memory" or "pgvector"
	SeedPath string
	TopK     int
	MinScore float64
	// Topic of the in-process bus that carries accepted suggestions to the
	// indexer.
	AcceptedTopic string
}

type AuthConfig struct {
	Required  bool
	JwtSecret string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			MaxConcurrentBlock: getEnvAsInt("MAX_CONCURRENT_BLOCKS", 8),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
			Anthropic:    getEnv("ANTHROPIC_API_KEY", ""),
			Jina:         getEnv("JINA_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "none"),
			LLMModel:          getEnv("LLM_MODEL", ""),
			LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
			Timeout:           getEnvAsDuration("LLM_TIMEOUT", 5*time.Second),
		},
		Quota: QuotaConfig{
			DailyCapacity: getEnvAsInt("QUOTA_DAILY_CAPACITY", 500),
			Backend:       getEnv("QUOTA_BACKEND", "memory"),
			KeyPrefix:     getEnv("QUOTA_KEY_PREFIX", "style:quota"),
		},
		Rules: RulesConfig{
			Enabled:          getEnvAsList("RULES_ENABLED", nil),
			MaxSentenceWords: getEnvAsInt("RULES_MAX_SENTENCE_WORDS", 25),
			GlossaryPath:     getEnv("RULES_GLOSSARY_PATH", ""),
		},
		Retrieval: RetrievalConfig{
			Backend:       getEnv("RETRIEVAL_BACKEND", "memory"),
			SeedPath:      getEnv("RETRIEVAL_SEED_PATH", "configs/reference_examples.yaml"),
			TopK:          getEnvAsInt("RETRIEVAL_TOP_K", 3),
			MinScore:      getEnvAsFloat("RETRIEVAL_MIN_SCORE", 0.5),
			AcceptedTopic: getEnv("ACCEPTED_SUGGESTION_TOPIC_NAME", "ACCEPTED_SUGGESTION"),
		},
		Auth: AuthConfig{
			Required:  getEnvAsBool("AUTH_REQUIRED", false),
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

// getEnvAsList splits a comma separated value; blank entries are dropped.
func getEnvAsList(key string, fallback []string) []string {
	raw := strings.TrimSpace(getEnv(key, ""))
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
