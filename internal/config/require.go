package config

import (
	"fmt"
	"strings"
)

// Requirement pairs an env key with whether a value was supplied for it.
type Requirement struct {
	Key string
	Set bool
}

// CheckRequired reports every missing key in a single error.
func CheckRequired(reqs ...Requirement) error {
	var missing []string
	for _, r := range reqs {
		if !r.Set {
			missing = append(missing, r.Key)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required env: %s", strings.Join(missing, ", "))
}

// SearchRequirements lists the keys the selected search backend needs.
func (c Config) SearchRequirements() []Requirement {
	if c.SearchBackend != SearchBackendElasticsearch {
		return nil
	}
	return []Requirement{{Key: "ES_URL", Set: c.ESURL != ""}}
}

// Validate checks everything the HTTP service needs before it opens any
// connection.
func (c Config) Validate() error {
	reqs := append([]Requirement{
		{Key: "DATABASE_URL", Set: c.DatabaseURL != ""},
		{Key: "JWT_SECRET", Set: len(c.JWTSecret) > 0},
	}, c.SearchRequirements()...)
	if err := CheckRequired(reqs...); err != nil {
		return err
	}

	switch c.SearchBackend {
	case SearchBackendDatabase, SearchBackendElasticsearch:
	default:
		return fmt.Errorf("SEARCH_BACKEND %q: want %s or %s", c.SearchBackend, SearchBackendDatabase, SearchBackendElasticsearch)
	}
	switch c.DBDriver {
	case "pgx", "pq":
	default:
		return fmt.Errorf("DB_DRIVER %q: want pgx or pq", c.DBDriver)
	}
	return nil
}
