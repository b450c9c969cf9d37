package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/config"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/fingerprint"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/jobs"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/sqlrunner"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/unify"
)

// job runs one stage in a scoped store and prints its completion message.
func (a *app) job(name string, j jobs.Job) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		msg, err := jobs.Run(cmd.Context(), a.cfg.StoreConfig(), name, j)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}
}

func (a *app) loadRawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load-raw",
		Short: "Copy every feed into STAGING and rebuild the RAW layer",
		Args:  cobra.NoArgs,
		RunE: a.wrap(config.Options{Feeds: true}, func(cmd *cobra.Command, args []string) error {
			return a.job("load-raw", jobs.LoadRawJob(a.cfg.Locations()))(cmd, args)
		}),
	}
}

func (a *app) transformCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transform",
		Short: "Rebuild TRANSFORMED.GLOBAL_SALES_ORDER from the RAW layer",
		Args:  cobra.NoArgs,
		RunE:  a.wrap(config.Options{}, a.job("transform", jobs.Transform)),
	}
}

func (a *app) curateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "curate",
		Short: "Rebuild the CURATED reports",
		Args:  cobra.NoArgs,
		RunE:  a.wrap(config.Options{}, a.job("curate", jobs.Curate)),
	}
}

func (a *app) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run load-raw, transform and curate in order",
		Args:  cobra.NoArgs,
		RunE: a.wrap(config.Options{Feeds: true}, func(cmd *cobra.Command, _ []string) error {
			msgs, err := jobs.RunAll(cmd.Context(), a.cfg.StoreConfig(), a.cfg.Locations())
			for _, m := range msgs {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			return err
		}),
	}
}

func (a *app) runSQLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run-sql FILE",
		Short: "Execute a ';'-separated SQL script, stopping at the first failing statement",
		Args:  cobra.ExactArgs(1),
		RunE: a.wrap(config.Options{}, func(cmd *cobra.Command, args []string) error {
			return jobs.WithStore(cmd.Context(), a.cfg.StoreConfig(), func(ctx context.Context, s storage.Store) error {
				n, err := sqlrunner.RunFile(ctx, s, args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "executed %d statement(s)\n", n)
				return err
			})
		}),
	}
}

func (a *app) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print row counts and sales totals per country from TRANSFORMED.GLOBAL_SALES_ORDER",
		Args:  cobra.NoArgs,
		RunE: a.wrap(config.Options{}, func(cmd *cobra.Command, _ []string) error {
			return jobs.WithStore(cmd.Context(), a.cfg.StoreConfig(), func(ctx context.Context, s storage.Store) error {
				sums, err := unify.Summarize(ctx, s)
				if err != nil {
					return err
				}
				for _, cs := range sums {
					fmt.Fprintf(cmd.OutOrStdout(), "%s rows=%d sales=%s profit=%s\n",
						cs.Country, cs.Rows, cs.Sales.StringFixed(2), cs.Profit.StringFixed(2))
				}
				return nil
			})
		}),
	}
}

func (a *app) validateCmd() *cobra.Command {
	var feeds bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.check(cmd.ErrOrStderr(), config.Options{Feeds: feeds}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "configuration is valid")
			return nil
		},
	}
	cmd.Flags().BoolVar(&feeds, "feeds", true, "also require every feed location")
	return cmd
}

func (a *app) fingerprintCmd() *cobra.Command {
	var exclude []string
	cmd := &cobra.Command{
		Use:   "fingerprint SCHEMA.TABLE...",
		Short: "Print an order-independent content hash of each table",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.wrap(config.Options{}, func(cmd *cobra.Command, args []string) error {
			tables := make([]storage.TableName, 0, len(args))
			for _, arg := range args {
				t, err := fingerprint.ParseTable(arg)
				if err != nil {
					return err
				}
				tables = append(tables, t)
			}
			return jobs.WithStore(cmd.Context(), a.cfg.StoreConfig(), func(ctx context.Context, s storage.Store) error {
				for _, t := range tables {
					r, err := fingerprint.Table(ctx, s, t, exclude...)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), r)
				}
				return nil
			})
		}),
	}
	cmd.Flags().StringSliceVar(&exclude, "exclude", fingerprint.DefaultExclude, "columns left out of the hash")
	return cmd
}
