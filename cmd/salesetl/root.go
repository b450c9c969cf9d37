package main

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/config"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/loader"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/metrics"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/metrics/datadog"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/metrics/prompush"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
)

type app struct {
	cfg     *config.Config
	verbose bool
}

func newRootCmd(getenv func(string) string) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "salesetl",
		Short:        "Load, unify and curate multi-country retail sales",
		SilenceUsage: true,
	}
	a.cfg = config.Bind(root.PersistentFlags(), getenv)
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logs")

	root.AddCommand(
		a.loadRawCmd(),
		a.transformCmd(),
		a.curateCmd(),
		a.runCmd(),
		a.runSQLCmd(),
		a.summaryCmd(),
		a.validateCmd(),
		a.fingerprintCmd(),
	)
	return root
}

// check validates the configuration for a command and prints every issue.
func (a *app) check(w io.Writer, opt config.Options) error {
	opt.Kinds = storage.ListKinds()
	issues := config.Validate(a.cfg, opt)
	for _, iss := range issues {
		fmt.Fprintf(w, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		return fmt.Errorf("configuration is invalid")
	}
	return nil
}

// wrap validates, installs metrics and runs fn, flushing metrics whether or
// not fn succeeds.
func (a *app) wrap(opt config.Options, fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.check(cmd.ErrOrStderr(), opt); err != nil {
			return err
		}
		if opt.Feeds {
			loader.BatchSize = a.cfg.BatchSize
		}
		if a.verbose {
			log.Printf("salesetl: backend=%s batch_size=%d metrics=%s", a.cfg.Warehouse.Kind, a.cfg.BatchSize, a.cfg.Metrics.Backend)
		}
		if flush := setupMetrics(a.cfg.Metrics, a.verbose); flush != nil {
			defer flush()
		}
		return fn(cmd, args)
	}
}

// setupMetrics installs the configured backend and returns its flush, or nil
// when metrics are disabled. A backend that fails to start leaves the nop
// backend in place.
func setupMetrics(m config.Metrics, verbose bool) func() {
	var (
		b   metrics.Backend
		err error
	)
	switch m.Backend {
	case "pushgateway":
		b, err = prompush.NewBackend(m.JobName, m.PushgatewayURL)
	case "datadog":
		b, err = datadog.NewBackend(datadog.Config{Addr: m.DatadogAddr, Namespace: m.DatadogPrefix})
	case "", "none":
		if verbose {
			log.Printf("metrics: disabled")
		}
		return nil
	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", m.Backend)
		return nil
	}
	if err != nil {
		log.Printf("metrics: failed to init %s backend: %v; using nop", m.Backend, err)
		return nil
	}
	log.Printf("metrics: backend=%s job=%s", m.Backend, m.JobName)
	metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}
}
