package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/datasource"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/loader"
)

// IssueSeverity is the severity of a configuration finding.
type IssueSeverity string

const (
	// SeverityError blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is reported but does not block.
	SeverityWarning IssueSeverity = "warning"
)

// Issue is one validation finding. Path names the setting in flag form,
// e.g. "backend" or "uk-orders-uri".
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Options selects which parts of the configuration a command needs.
type Options struct {
	// Kinds are the registered storage backends.
	Kinds []string
	// Feeds requires every feed location (load-raw, run).
	Feeds bool
}

// Validate statically checks c. Credentials are not checked here; the
// store's own connection attempt is the authority on those.
func Validate(c *Config, opt Options) []Issue {
	var issues []Issue
	issues = append(issues, validateWarehouse(c, opt.Kinds)...)
	if opt.Feeds {
		issues = append(issues, validateFeeds(c)...)
	}
	if c.BatchSize <= 0 {
		issues = append(issues, Issue{SeverityError, "batch-size", "must be > 0"})
	} else if c.BatchSize > 100_000 {
		issues = append(issues, Issue{SeverityWarning, "batch-size", fmt.Sprintf("%d rows per copy is unusually large", c.BatchSize)})
	}
	issues = append(issues, validateMetrics(c.Metrics)...)
	return issues
}

func validateWarehouse(c *Config, kinds []string) []Issue {
	w := c.Warehouse
	kind := strings.TrimSpace(w.Kind)
	if kind == "" {
		return []Issue{{SeverityError, "backend", "must not be empty"}}
	}
	if len(kinds) > 0 && !slices.Contains(kinds, kind) {
		return []Issue{{SeverityError, "backend", fmt.Sprintf("unknown backend %q (registered: %s)", kind, strings.Join(kinds, ", "))}}
	}

	var issues []Issue
	switch kind {
	case "snowflake":
		if w.DSN == "" {
			for _, f := range []struct{ path, v string }{
				{"snowflake-account", w.Account},
				{"snowflake-user", w.User},
			} {
				if strings.TrimSpace(f.v) == "" {
					issues = append(issues, Issue{SeverityWarning, f.path, "empty; the connection will likely be rejected"})
				}
			}
		}
	case DefaultBackend:
		if w.DSN == "" {
			issues = append(issues, Issue{SeverityWarning, "dsn", fmt.Sprintf("empty; using %s", DefaultDSN)})
		}
	default:
		if strings.TrimSpace(w.DSN) == "" {
			issues = append(issues, Issue{SeverityError, "dsn", fmt.Sprintf("required for backend %q", kind)})
		}
	}
	return issues
}

func validateFeeds(c *Config) []Issue {
	var issues []Issue
	locs := c.Locations()
	for _, f := range loader.Feeds {
		path := FeedFlag(f.Name)
		loc := locs[f.Name]
		if loc == "" {
			issues = append(issues, Issue{SeverityError, path, fmt.Sprintf("no location (set --%s or %s)", path, f.Env)})
			continue
		}
		if _, err := datasource.ForURI(loc); err != nil {
			issues = append(issues, Issue{SeverityError, path, err.Error()})
		}
	}
	return issues
}

func validateMetrics(m Metrics) []Issue {
	switch m.Backend {
	case "", "none":
		return nil
	case "pushgateway":
		if strings.TrimSpace(m.PushgatewayURL) == "" {
			return []Issue{{SeverityError, "pushgateway-url", "required for the pushgateway metrics backend"}}
		}
	case "datadog":
		if strings.TrimSpace(m.DatadogAddr) == "" {
			return []Issue{{SeverityWarning, "datadog-addr", "empty; using the local agent"}}
		}
	default:
		return []Issue{{SeverityError, "metrics-backend", fmt.Sprintf("unknown metrics backend %q", m.Backend)}}
	}
	return nil
}
