package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Model     ModelConfig
	Embedding EmbeddingConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Tracing   TracingConfig
	Keys      APIKeys
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	JwtSecret          string // empty = API open
	KnowledgeBasePath  string
	RetrievalTopK      int
	SessionStore       string // "memory" | "redis"
	SessionTTL         time.Duration
	VectorStore        string // "memory" | "pgvector"
	NatsURL            string // empty = no forwarding
	RedisURL           string
	LeadTopic          string
}

type ModelConfig struct {
	Provider      string // "gemini" | "ollama" | "huggingface"
	Name          string
	Temperature   float64
	MaxRetries    int
	Timeout       time.Duration
	OllamaBaseURL string
	BaseURL       string // HuggingFace router
}

type EmbeddingConfig struct {
	ModelName     string // "models/..." = Gemini, "jina-..." = Jina, otherwise Ollama
	OllamaBaseURL string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string // OTLP/HTTP host:port
	ServiceName string
}

type APIKeys struct {
	GoogleGemini string
	Jina         string
	HuggingFace  string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	ollamaURL := getEnv("OLLAMA_BASE_URL", "http://localhost:11434")

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/assistant.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			KnowledgeBasePath:  getEnv("KNOWLEDGE_BASE_PATH", "data/knowledge_base.json"),
			RetrievalTopK:      getEnvAsInt("RETRIEVAL_TOP_K", 3),
			SessionStore:       getEnv("SESSION_STORE", "memory"),
			SessionTTL:         getEnvAsDuration("SESSION_TTL", time.Hour),
			VectorStore:        getEnv("VECTOR_STORE", "memory"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			LeadTopic:          getEnv("LEAD_CAPTURED_TOPIC_NAME", "LEAD_CAPTURED"),
		},
		Model: ModelConfig{
			Provider:      getEnv("LLM_PROVIDER", "gemini"),
			Name:          getEnv("MODEL_NAME", "models/gemini-2.5-flash-lite"),
			Temperature:   getEnvAsFloat("MODEL_TEMPERATURE", 0.2),
			MaxRetries:    getEnvAsInt("MODEL_MAX_RETRIES", 1),
			Timeout:       getEnvAsSeconds("MODEL_TIMEOUT", 60),
			OllamaBaseURL: ollamaURL,
			BaseURL:       getEnv("HUGGINGFACE_BASE_URL", "https://router.huggingface.co/v1"),
		},
		Embedding: EmbeddingConfig{
			ModelName:     getEnv("EMBED_MODEL_NAME", "all-minilm"),
			OllamaBaseURL: ollamaURL,
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "AutoStream"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "autostream-assistant"),
		},
		Keys: APIKeys{
			GoogleGemini: getFirstEnv([]string{"GOOGLE_API_KEY", "GOOGLE_GEMINI_API_KEY"}, ""),
			Jina:         getEnv("JINA_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getFirstEnv(keys []string, fallback string) string {
	for _, key := range keys {
		if value, exists := os.LookupEnv(key); exists && value != "" {
			return value
		}
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

// getEnvAsSeconds reads a possibly fractional number of seconds ("2.5", "60.0").
func getEnvAsSeconds(key string, fallback float64) time.Duration {
	seconds := getEnvAsFloat(key, fallback)
	if seconds <= 0 {
		seconds = fallback
	}
	return time.Duration(seconds * float64(time.Second))
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
