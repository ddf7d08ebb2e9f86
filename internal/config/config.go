package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"llm-chat-be/pkg/llm"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	MockUser MockUserConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	OtelEnabled        bool
	NatsURL            string // empty disables event forwarding
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverSqlite   = "sqlite"
	StoreDriverMemory   = "memory"
)

type StoreConfig struct {
	Driver     string // postgres, sqlite or memory
	Connection string
	SqlitePath string
}

// MockUserConfig describes the single user every request runs as.
type MockUserConfig struct {
	Id       string
	Username string
	Password string
}

type AIConfig struct {
	ProviderTimeout time.Duration
	MaxTokens       int
	// Temperature is sent when positive; zero leaves the provider default.
	Temperature float64
	BaseURLs    map[llm.Provider]string // per-provider overrides, e.g. OPENAI_BASE_URL
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			NatsURL:            getEnv("NATS_URL", ""),
		},
		Store: StoreConfig{
			Driver:     strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			SqlitePath: getEnv("SQLITE_PATH", "chat.db"),
		},
		MockUser: MockUserConfig{
			Id:       getEnv("MOCK_USER_ID", "00000000-0000-0000-0000-000000000001"),
			Username: getEnv("MOCK_USERNAME", "demo"),
			Password: getEnv("MOCK_PASSWORD", "demo"),
		},
		Ai: AIConfig{
			ProviderTimeout: time.Duration(getEnvAsInt("PROVIDER_TIMEOUT_SECONDS", 120)) * time.Second,
			MaxTokens:       getEnvAsInt("LLM_MAX_TOKENS", 4096),
			Temperature:     getEnvAsFloat("LLM_TEMPERATURE", 0),
			BaseURLs:        loadBaseURLs(),
		},
	}
}

// loadBaseURLs reads <PROVIDER>_BASE_URL for every supported provider.
func loadBaseURLs() map[llm.Provider]string {
	urls := make(map[llm.Provider]string)
	for _, spec := range llm.Providers() {
		key := strings.ToUpper(string(spec.Provider)) + "_BASE_URL"
		if v := getEnv(key, ""); v != "" {
			urls[spec.Provider] = v
		}
	}
	return urls
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
