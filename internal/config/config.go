package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Keys      APIKeys
	Ai        AIConfig
	Agent     AgentConfig
	Retrieval RetrievalConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	MetricsNamespace   string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	EmbedTopic   string // Product embedding topic
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "gemini" or "ollama"
	LLMModel          string
}

type AgentConfig struct {
	MaxIterations int
	MaxSeconds    int
	ChatMaxChars  int
	ChatMaxWords  int
	ToolMaxChars  int
	ToolMaxWords  int
}

type RetrievalConfig struct {
	Backend    string // "pgvector" or "bundle"
	BundlePath string
	TopK       int
	Threshold  float64
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
			MetricsNamespace:   getEnv("METRICS_NAMESPACE", "zus_chatbot"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			EmbedTopic:   getEnv("EMBED_PRODUCT_CONTENT_TOPIC_NAME", "EMBED_PRODUCT_CONTENT"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:          getEnv("LLM_MODEL", "gemini-2.0-flash"),
		},
		Agent: AgentConfig{
			MaxIterations: getEnvAsInt("AGENT_MAX_ITERATIONS", 6),
			MaxSeconds:    getEnvAsInt("AGENT_MAX_SECONDS", 60),
			ChatMaxChars:  getEnvAsInt("CHAT_MAX_CHARS", 200),
			ChatMaxWords:  getEnvAsInt("CHAT_MAX_WORDS", 40),
			ToolMaxChars:  getEnvAsInt("TOOL_MAX_CHARS", 100),
			ToolMaxWords:  getEnvAsInt("TOOL_MAX_WORDS", 20),
		},
		Retrieval: RetrievalConfig{
			Backend:    getEnv("RETRIEVAL_BACKEND", "pgvector"),
			BundlePath: getEnv("RETRIEVAL_BUNDLE_PATH", "data/vector_store"),
			TopK:       getEnvAsInt("RETRIEVAL_TOP_K", 5),
			Threshold:  getEnvAsFloat("RETRIEVAL_THRESHOLD", 0.0),
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
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
