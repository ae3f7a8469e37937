package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	SearchBackendDatabase      = "database"
	SearchBackendElasticsearch = "elasticsearch"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DatabaseURL string
	DBDriver    string

	JWTSecret    []byte
	AuthHTTPURL  string
	CookieSecure bool
	CSRFEnabled  bool
	CORSOrigins  []string

	KafkaBrokers []string

	SearchBackend string
	ESURL         string
	ESUser        string
	ESPassword    string
	ESIndex       string

	OwnerOpenID string
	OwnerName   string
	OwnerEmail  string
}

// LoadEnvFile loads a .env file if present. A missing file is not an error:
// the process falls back to the system environment.
func LoadEnvFile(path string) {
	if err := godotenv.Load(path); err != nil {
		log.Printf("notice: %s not loaded: %v. Using system environment variables", path, err)
	}
}

func Load() Config {
	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "bookstore"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBDriver:    strings.ToLower(EnvDefault("DB_DRIVER", "pgx")),

		JWTSecret:    []byte(os.Getenv("JWT_SECRET")),
		AuthHTTPURL:  os.Getenv("AUTH_URL"),
		CookieSecure: EnvBoolDefault("COOKIE_SECURE", true),
		CSRFEnabled:  EnvBoolDefault("CSRF_ENABLED", true),
		CORSOrigins:  CSV(os.Getenv("CORS_ORIGINS")),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		SearchBackend: strings.ToLower(EnvDefault("SEARCH_BACKEND", SearchBackendDatabase)),
		ESURL:         os.Getenv("ES_URL"),
		ESUser:        os.Getenv("ES_USER"),
		ESPassword:    os.Getenv("ES_PASSWORD"),
		ESIndex:       EnvDefault("ES_INDEX", "books"),

		OwnerOpenID: os.Getenv("OWNER_OPEN_ID"),
		OwnerName:   os.Getenv("OWNER_NAME"),
		OwnerEmail:  os.Getenv("OWNER_EMAIL"),
	}
}

// MustLoad loads the configuration and exits when a required value is missing.
func MustLoad() Config {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.ServerPort)
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
