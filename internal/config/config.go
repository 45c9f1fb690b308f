package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Store    StoreConfig
	Postgres PostgresConfig
	Log      LogConfig
}

type ServerConfig struct {
	Addr               string
	CORSAllowedOrigins []string
}

// AuthConfig values stay raw strings; the services parse and validate them.
type AuthConfig struct {
	JWTSecret       string
	JWTTTL          string
	BcryptCost      string
	HashConcurrency string
}

type StoreConfig struct {
	Backend string
	DataDir string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type LogConfig struct {
	Level string
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set win over the file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Server: ServerConfig{
			Addr:               getenv("ADDR", ":3001"),
			CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		},
		Auth: AuthConfig{
			JWTSecret:       os.Getenv("JWT_SECRET"),
			JWTTTL:          getenv("JWT_TTL", "720h"),
			BcryptCost:      getenv("BCRYPT_COST", "10"),
			HashConcurrency: getenv("HASH_CONCURRENCY", "0"),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(getenv("STORE_BACKEND", BackendFile)),
			DataDir: getenv("DATA_DIR", "./data"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		Log: LogConfig{
			Level: getenv("LOG_LEVEL", "info"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
