package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

// Drivers de armazenamento suportados
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config armazena as configurações da aplicação
type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	LogJSON  bool

	StorageDriver string
	DataDir       string
	SQLitePath    string
	StateCacheTTL time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	ExportAuthor        string
	ExportRatePerMinute int
}

// Load carrega as configurações do ambiente
func Load() (*Config, error) {
	// Tenta carregar .env de múltiplos locais
	_ = godotenv.Load()
	_ = godotenv.Load("../.env")

	cfg := &Config{
		Port:          os.Getenv("PORT"),
		GinMode:       os.Getenv("GIN_MODE"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		StorageDriver: os.Getenv("STORAGE_DRIVER"),
		DataDir:       os.Getenv("DATA_DIR"),
		SQLitePath:    os.Getenv("SQLITE_PATH"),
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        os.Getenv("DB_PORT"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBSSLMode:     os.Getenv("DB_SSLMODE"),
		ExportAuthor:  os.Getenv("EXPORT_AUTHOR"),
	}

	// Defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.GinMode == "" {
		cfg.GinMode = "debug"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.StorageDriver == "" {
		cfg.StorageDriver = DriverSQLite
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = filepath.Join(cfg.DataDir, "estimator.db")
	}
	if cfg.DBHost == "" {
		cfg.DBHost = "127.0.0.1"
	}
	if cfg.DBPort == "" {
		cfg.DBPort = "5432"
	}
	if cfg.DBName == "" {
		cfg.DBName = "estimator"
	}
	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}
	if cfg.ExportAuthor == "" {
		cfg.ExportAuthor = "Project Estimator"
	}

	// JSON por padrão, console quando rodando em um terminal
	logJSON := !isatty.IsTerminal(os.Stdout.Fd())
	if v := os.Getenv("LOG_JSON"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("LOG_JSON inválido: %q", v)
		}
		logJSON = parsed
	}
	cfg.LogJSON = logJSON

	ttl, err := intFromEnv("STATE_CACHE_TTL", 300)
	if err != nil {
		return nil, err
	}
	cfg.StateCacheTTL = time.Duration(ttl) * time.Second

	rate, err := intFromEnv("EXPORT_RATE_PER_MINUTE", 30)
	if err != nil {
		return nil, err
	}
	if rate <= 0 {
		return nil, fmt.Errorf("EXPORT_RATE_PER_MINUTE deve ser positivo, recebido: %d", rate)
	}
	cfg.ExportRatePerMinute = rate

	// Validações
	switch cfg.StorageDriver {
	case DriverMemory, DriverFile, DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER inválido: %q", cfg.StorageDriver)
	}

	if cfg.StorageDriver == DriverPostgres && cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER não configurado para o driver postgres")
	}

	return cfg, nil
}

// intFromEnv lê um inteiro do ambiente com valor padrão
func intFromEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s inválido: %q", key, v)
	}
	return n, nil
}
