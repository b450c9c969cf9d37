// Package config centralizes salesetl configuration. Every tunable is a
// flag whose default is seeded from an environment variable, so the same
// binary runs from a shell, a scheduler or CI without a config file.
//
// Precedence:
//  1. Environment values seed each flag's default.
//  2. Explicit CLI flags override the seeded defaults.
//
// For tests, LoadFromArgs keeps everything hermetic:
//
//	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
//	cfg, err := config.LoadFromArgs(fs, func(k string) string { return env[k] }, []string{"--backend=sqlite"})
package config

import (
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/loader"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage/snowflake"
)

// DefaultBackend is the warehouse used when WAREHOUSE_BACKEND is unset.
const DefaultBackend = "duckdb"

// DefaultDSN is the DuckDB database file used when no DSN is given.
const DefaultDSN = "sales.duckdb"

// Config is the fully resolved process configuration.
type Config struct {
	// Warehouse selects and addresses the store.
	Warehouse storage.Config

	// feeds holds one flag value per loader feed; see Locations.
	feeds map[string]*string

	// BatchSize is the number of rows per bulk copy.
	BatchSize int

	Metrics Metrics
}

// Metrics selects the metrics backend.
type Metrics struct {
	// Backend is "none", "pushgateway" or "datadog".
	Backend        string
	PushgatewayURL string
	JobName        string
	DatadogAddr    string
	DatadogPrefix  string
}

// Bind defines every flag on fs with env-seeded defaults and returns the
// Config the flags write into. Values are final once fs is parsed.
func Bind(fs *pflag.FlagSet, getenv func(string) string) *Config {
	cfg := &Config{feeds: make(map[string]*string, len(loader.Feeds))}

	envOr := func(k, d string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return d
	}
	intEnvOr := func(k string, d int) int {
		if v := getenv(k); v != "" {
			if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return i
			}
		}
		return d
	}

	w := &cfg.Warehouse
	fs.StringVar(&w.Kind, "backend", envOr("WAREHOUSE_BACKEND", DefaultBackend), "Warehouse backend: duckdb, postgres, sqlite, mssql or snowflake")
	fs.StringVar(&w.DSN, "dsn", envOr("WAREHOUSE_DSN", ""), "Driver connection string (snowflake may use the discrete identifiers instead)")
	fs.StringVar(&w.Account, "snowflake-account", getenv("SNOWFLAKE_ACCOUNT"), "Snowflake account identifier")
	fs.StringVar(&w.User, "snowflake-user", getenv("SNOWFLAKE_USER"), "Snowflake user")
	fs.StringVar(&w.Password, "snowflake-password", getenv("SNOWFLAKE_PASSWORD"), "Snowflake password")
	fs.StringVar(&w.Role, "snowflake-role", getenv("SNOWFLAKE_ROLE"), "Snowflake role")
	fs.StringVar(&w.Warehouse, "snowflake-warehouse", getenv("SNOWFLAKE_WAREHOUSE"), "Snowflake virtual warehouse")
	fs.StringVar(&w.Database, "snowflake-database", envOr("SNOWFLAKE_DATABASE", snowflake.DefaultDatabase), "Snowflake database")

	for _, f := range loader.Feeds {
		p := new(string)
		fs.StringVar(p, FeedFlag(f.Name), strings.TrimSpace(getenv(f.Env)), "Location of the "+f.Name+" feed (path, file://, http(s)://, s3:// or gs://)")
		cfg.feeds[f.Name] = p
	}

	fs.IntVar(&cfg.BatchSize, "batch-size", intEnvOr("BATCH_SIZE", loader.BatchSize), "Rows per bulk copy")

	m := &cfg.Metrics
	fs.StringVar(&m.Backend, "metrics-backend", envOr("METRICS_BACKEND", "none"), "Metrics backend: none, pushgateway or datadog")
	fs.StringVar(&m.PushgatewayURL, "pushgateway-url", getenv("PUSHGATEWAY_URL"), "Prometheus Pushgateway base URL")
	fs.StringVar(&m.JobName, "metrics-job", envOr("METRICS_JOB", "salesetl"), "Pushgateway job name")
	fs.StringVar(&m.DatadogAddr, "datadog-addr", envOr("DD_DOGSTATSD_ADDR", ""), "DogStatsD address")
	fs.StringVar(&m.DatadogPrefix, "datadog-prefix", envOr("DD_METRIC_PREFIX", ""), "Datadog metric name prefix")
	return cfg
}

// LoadFromArgs binds flags on fs and parses args.
func LoadFromArgs(fs *pflag.FlagSet, getenv func(string) string, args []string) (*Config, error) {
	cfg := Bind(fs, getenv)
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FeedFlag returns the flag name for a feed, e.g. "india-orders-uri".
func FeedFlag(feed string) string { return strings.ReplaceAll(feed, "_", "-") + "-uri" }

// Locations returns the configured location of every feed, keyed by feed
// name. Unset feeds map to "".
func (c *Config) Locations() map[string]string {
	out := make(map[string]string, len(c.feeds))
	for name, p := range c.feeds {
		out[name] = strings.TrimSpace(*p)
	}
	return out
}

// setLocation overrides the location of one feed.
func (c *Config) setLocation(feed, location string) {
	if c.feeds == nil {
		c.feeds = map[string]*string{}
	}
	c.feeds[feed] = &location
}

// StoreConfig returns the warehouse settings with defaults applied.
func (c *Config) StoreConfig() storage.Config {
	w := c.Warehouse
	w.Kind = strings.TrimSpace(w.Kind)
	if w.Kind == DefaultBackend && w.DSN == "" {
		w.DSN = DefaultDSN
	}
	return w
}
