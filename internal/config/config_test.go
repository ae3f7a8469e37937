package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"SERVICE_NAME", "SERVER_PORT", "DB_DRIVER", "SEARCH_BACKEND", "ES_INDEX", "KAFKA_BROKERS", "COOKIE_SECURE", "CSRF_ENABLED"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "bookstore", cfg.ServiceName)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "pgx", cfg.DBDriver)
	assert.Equal(t, SearchBackendDatabase, cfg.SearchBackend)
	assert.Equal(t, "books", cfg.ESIndex)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.True(t, cfg.CookieSecure)
	assert.True(t, cfg.CSRFEnabled)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/books")
	t.Setenv("DB_DRIVER", "PQ")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("SEARCH_BACKEND", "Elasticsearch")
	t.Setenv("OWNER_OPEN_ID", "owner-1")
	t.Setenv("COOKIE_SECURE", "false")

	cfg := Load()
	require.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "postgres://u:p@db:5432/books", cfg.DatabaseURL)
	assert.Equal(t, "pq", cfg.DBDriver)
	assert.Equal(t, []byte("secret"), cfg.JWTSecret)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, SearchBackendElasticsearch, cfg.SearchBackend)
	assert.Equal(t, "owner-1", cfg.OwnerOpenID)
	assert.False(t, cfg.CookieSecure)
}

func TestEnvHelpers_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_BOOL", "maybe")

	assert.Equal(t, 7, EnvIntDefault("X_INT", 7))
	assert.True(t, EnvBoolDefault("X_BOOL", true))
	assert.Equal(t, "def", EnvDefault("X_MISSING_KEY", "def"))
}

func TestValidate(t *testing.T) {
	ok := Config{DatabaseURL: "postgres://db", JWTSecret: []byte("s"), DBDriver: "pgx", SearchBackend: SearchBackendDatabase}
	require.NoError(t, ok.Validate())

	missing := Config{DBDriver: "pgx", SearchBackend: SearchBackendElasticsearch}
	err := missing.Validate()
	require.Error(t, err)
	assert.Equal(t, "missing required env: DATABASE_URL, JWT_SECRET, ES_URL", err.Error())

	badBackend := ok
	badBackend.SearchBackend = "solr"
	assert.ErrorContains(t, badBackend.Validate(), "SEARCH_BACKEND")

	badDriver := ok
	badDriver.DBDriver = "mysql"
	assert.ErrorContains(t, badDriver.Validate(), "DB_DRIVER")
}

func TestCheckRequired(t *testing.T) {
	require.NoError(t, CheckRequired())
	require.NoError(t, CheckRequired(Requirement{Key: "A", Set: true}))
	assert.EqualError(t, CheckRequired(Requirement{Key: "A"}, Requirement{Key: "B", Set: true}, Requirement{Key: "C"}),
		"missing required env: A, C")
	assert.Nil(t, Config{SearchBackend: SearchBackendDatabase}.SearchRequirements())
}
