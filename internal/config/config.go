package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read by Load when present.
const DefaultEnvFile = ".env"

const (
	defaultPort          = "4000"
	defaultIDOrigin      = 1
	defaultRetentionDays = 14
)

// Config holds runtime configuration for the server.
type Config struct {
	Port      string `env:"PORT" envDefault:"4000"`
	Storage   StorageConfig
	Teams     TeamsConfig
	CORS      CORSConfig
	Metrics   MetricsConfig
	Snapshots SnapshotConfig
	Logging   LoggingConfig
}

// StorageConfig selects and locates the document backend.
type StorageConfig struct {
	Driver      string `env:"STORAGE_DRIVER" envDefault:"file"`
	DataFile    string `env:"TEAMS_DATA_FILE" envDefault:"data/teams.json"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"data/teams.db"`
	PostgresURL string `env:"POSTGRES_CONNECTION_STRING"`
}

// TeamsConfig controls id minting and first-run seeding.
type TeamsConfig struct {
	IDOrigin int64 `env:"TEAMS_ID_ORIGIN" envDefault:"1"`
	Seed     bool  `env:"TEAMS_SEED" envDefault:"true"`
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool   `env:"METRICS_ENABLED" envDefault:"true"`
	Port         string `env:"METRICS_PORT" envDefault:"9090"`
	OtlpEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"teams-api"`
	OtlpInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
}

// SnapshotConfig controls daily copies of the document.
type SnapshotConfig struct {
	Enabled       bool   `env:"SNAPSHOT_ENABLED" envDefault:"false"`
	Dir           string `env:"SNAPSHOT_DIR" envDefault:"data/snapshots"`
	RetentionDays int    `env:"SNAPSHOT_RETENTION_DAYS" envDefault:"14"`
	// Restore rebuilds an empty store from the newest snapshot on startup.
	Restore bool `env:"SNAPSHOT_RESTORE" envDefault:"true"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads DefaultEnvFile when present, then the environment.
func Load() (Config, error) {
	return LoadFile(DefaultEnvFile)
}

// LoadFile reads variables from path, which may be missing, then parses the
// environment. Variables already set in the environment win over the file.
// Malformed values are an error; out-of-range values fall back to defaults.
func LoadFile(path string) (Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.Port = strings.TrimSpace(c.Port)
	if c.Port == "" {
		c.Port = defaultPort
	}
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	if c.Teams.IDOrigin < 1 {
		c.Teams.IDOrigin = defaultIDOrigin
	}
	if c.Snapshots.RetentionDays < 1 {
		c.Snapshots.RetentionDays = defaultRetentionDays
	}

	origins := make([]string, 0, len(c.CORS.AllowedOrigins))
	for _, o := range c.CORS.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c.CORS.AllowedOrigins = origins
}
