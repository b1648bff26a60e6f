// Package config gerencia configurações da aplicação via variáveis de ambiente.
//
// # Variáveis de Ambiente
//
// ## Servidor
//   - SERVER_PORT: Porta HTTP (default: 8080)
//   - GIN_MODE: debug ou release (default: release)
//   - SERVICE_NAME: Nome do serviço nos logs e traces (default: app-ferramentas)
//   - TIMEZONE: Fuso usado para "hoje" e para a tendência semanal do painel (default: America/Sao_Paulo)
//
// ## Banco de dados
//   - DATABASE_URL: DSN do PostgreSQL (obrigatório)
//   - DATABASE_MAX_OPEN_CONNS: Conexões abertas (default: 25)
//   - DATABASE_MAX_IDLE_CONNS: Conexões ociosas (default: 25)
//   - DATABASE_MAX_IDLE_TIME: Tempo máximo ocioso (default: 15m)
//
// ## Autenticação
//   - JWT_SECRET: Segredo HS256 dos tokens (obrigatório)
//   - JWT_EXPIRATION_HOURS: Validade do token em horas (default: 24)
//
// ## Cache
//   - REDIS_ADDR: Endereço do Redis; vazio usa cache em memória
//   - REDIS_PASSWORD: Senha do Redis
//   - REDIS_DB: Banco do Redis (default: 0)
//   - CACHE_MEMORY_MAX_SIZE: Entradas do cache em memória (default: 1000)
//   - DASHBOARD_CACHE_TTL_SECONDS: Validade das estatísticas em cache (default: 60)
//
// ## Armazenamento de imagens
//   - STORAGE_URL: URL base do storage (ex: https://xyz.supabase.co/storage/v1)
//   - STORAGE_KEY: Chave de serviço do storage
//   - STORAGE_BUCKET: Bucket das fotos (default: ferramentas-imagens)
//
// ## Typesense
//   - TYPESENSE_HOST: Host do servidor Typesense (default: localhost)
//   - TYPESENSE_PORT: Porta do servidor (default: 8108)
//   - TYPESENSE_API_KEY: Chave de API do Typesense; vazio desativa a busca textual indexada
//   - TYPESENSE_PROTOCOL: Protocolo http/https (default: http)
//   - TYPESENSE_COLLECTION: Collection das ferramentas (default: ferramentas)
//
// ## Gemini
//   - GEMINI_API_KEY: Chave da API Google Gemini; vazio desativa a identificação por foto
//   - GEMINI_CHAT_MODEL: Modelo multimodal (default: gemini-2.0-flash)
//
// ## Observabilidade
//   - TRACING_ENABLED: Habilita OpenTelemetry (default: false)
//   - TRACING_ENDPOINT: Endpoint OTLP gRPC (default: localhost:4317)
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//   - LOG_FORMAT: json ou console (default: json)
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	GinMode     string
	ServiceName string
	Timezone    string

	// Database configuration
	DatabaseURL         string
	DatabaseMaxOpen     int
	DatabaseMaxIdle     int
	DatabaseMaxIdleTime time.Duration

	// JWT configuration
	JWTSecret     string
	JWTExpiration time.Duration

	// Cache configuration
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	CacheMemoryMaxSize int
	DashboardCacheTTL  time.Duration

	// Storage configuration
	StorageURL    string
	StorageKey    string
	StorageBucket string

	TypesenseHost       string
	TypesensePort       string
	TypesenseAPIKey     string
	TypesenseProtocol   string
	TypesenseCollection string

	// Gemini configuration
	GeminiAPIKey    string
	GeminiChatModel string

	// Tracing configuration
	TracingEnabled  bool
	TracingEndpoint string

	LogLevel  string
	LogFormat string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := fromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	return cfg
}

func fromEnv() *Config {
	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "release"),
		ServiceName: getEnv("SERVICE_NAME", "app-ferramentas"),
		Timezone:    getEnv("TIMEZONE", "America/Sao_Paulo"),

		// Database configuration
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		DatabaseMaxOpen:     getEnvInt("DATABASE_MAX_OPEN_CONNS", 25),
		DatabaseMaxIdle:     getEnvInt("DATABASE_MAX_IDLE_CONNS", 25),
		DatabaseMaxIdleTime: getEnvDuration("DATABASE_MAX_IDLE_TIME", 15*time.Minute),

		// JWT configuration
		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTExpiration: time.Duration(getEnvInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,

		// Cache configuration
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		CacheMemoryMaxSize: getEnvInt("CACHE_MEMORY_MAX_SIZE", 1000),
		DashboardCacheTTL:  time.Duration(getEnvInt("DASHBOARD_CACHE_TTL_SECONDS", 60)) * time.Second,

		// Storage configuration
		StorageURL:    getEnv("STORAGE_URL", ""),
		StorageKey:    getEnv("STORAGE_KEY", ""),
		StorageBucket: getEnv("STORAGE_BUCKET", "ferramentas-imagens"),

		TypesenseHost:       getEnv("TYPESENSE_HOST", "localhost"),
		TypesensePort:       getEnv("TYPESENSE_PORT", "8108"),
		TypesenseAPIKey:     getEnv("TYPESENSE_API_KEY", ""),
		TypesenseProtocol:   getEnv("TYPESENSE_PROTOCOL", "http"),
		TypesenseCollection: getEnv("TYPESENSE_COLLECTION", "ferramentas"),

		// Gemini configuration
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiChatModel: getEnv("GEMINI_CHAT_MODEL", "gemini-2.0-flash"),

		// Tracing configuration
		TracingEnabled:  getEnv("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4317"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

// Validate verifica as variáveis obrigatórias
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL environment variable is required but not set"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET environment variable is required but not set"))
	}
	if c.JWTExpiration <= 0 {
		errs = append(errs, fmt.Errorf("JWT_EXPIRATION_HOURS must be positive, got %s", c.JWTExpiration))
	}
	if c.StorageURL != "" && c.StorageKey == "" {
		errs = append(errs, errors.New("STORAGE_KEY is required when STORAGE_URL is set"))
	}
	return errors.Join(errs...)
}

// TypesenseServerURL monta a URL do servidor Typesense
func (c *Config) TypesenseServerURL() string {
	return fmt.Sprintf("%s://%s:%s", c.TypesenseProtocol, c.TypesenseHost, c.TypesensePort)
}

// SearchEnabled indica se a busca indexada está configurada
func (c *Config) SearchEnabled() bool {
	return c.TypesenseAPIKey != ""
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
