package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/interseguro-qa/paynova-e2e/internal/portal/browser"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/approval"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/config"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/correlation"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/flows"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/money"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/runner"
)

func main() {
	root := &cobra.Command{
		Use:           "paynova-e2e",
		Short:         "End-to-end suite for the Paynova payment-request portal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(runCmd(), resetCmd(), resolveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

func openStore(cfg config.Config, log zerolog.Logger) (*correlation.Store, func(), error) {
	switch cfg.StoreDriver {
	case "sqlite":
		backend, err := correlation.NewSQLiteBackend(cfg.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return correlation.NewStore(backend, log), func() { _ = backend.Close() }, nil
	case "file":
		backend := correlation.NewFileBackend(cfg.StorePath)
		return correlation.NewStore(backend, log), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func buildResolver(cfg config.Config, log zerolog.Logger) (*approval.Resolver, *config.TestData, error) {
	data, err := config.LoadTestData(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	table, err := data.ApproverTable()
	if err != nil {
		return nil, nil, err
	}
	return approval.NewResolver(table, log), data, nil
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <plan.yaml>",
		Short: "Execute a scenario plan against the portal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := newLogger(cfg.LogLevel)

			plan, err := runner.LoadPlan(args[0])
			if err != nil {
				return err
			}

			resolver, data, err := buildResolver(cfg, log)
			if err != nil {
				return err
			}
			fixtures, err := config.LoadRequestFixtures(cfg.DataDir)
			if err != nil {
				return err
			}

			store, closeStore, err := openStore(cfg, log)
			if err != nil {
				return err
			}
			defer closeStore()

			b, err := browser.Launch(browser.Options{
				Headless: cfg.Headless,
				SlowMo:   cfg.SlowMo,
				Timeout:  cfg.Timeout,
			})
			if err != nil {
				return err
			}
			defer b.MustClose()

			ctx := &flows.Context{
				Cfg:      cfg,
				Data:     data,
				Fixtures: fixtures,
				Store:    store,
				Resolver: resolver,
				Browser:  b,
				Log:      log,
			}

			results := runner.New(ctx).Run(plan)
			for _, res := range results {
				status := "PASS"
				if res.Err != nil {
					status = "FAIL"
				}
				fmt.Printf("%-4s  %-40s  %s\n", status, res.Name, res.Duration.Round(time.Millisecond))
			}

			if n := runner.Failed(results); n > 0 {
				return fmt.Errorf("%d of %d scenarios failed", n, len(results))
			}
			return nil
		},
	}
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the correlation store of registered requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := newLogger(cfg.LogLevel)

			store, closeStore, err := openStore(cfg, log)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Println("store cleared")
			return nil
		},
	}
}

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <amount> <currency> <area>",
		Short: "Show the approver levels a request would require",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := newLogger(cfg.LogLevel)

			amount, err := money.ParseAmount(args[0])
			if err != nil {
				return fmt.Errorf("parse amount: %w", err)
			}

			resolver, _, err := buildResolver(cfg, log)
			if err != nil {
				return err
			}

			levels, err := resolver.RequiredLevels(amount, args[1], args[2])
			if err != nil {
				return err
			}

			fmt.Printf("%s %s (%s) requires approver levels %v\n", amount, args[1], strings.ToUpper(args[2]), levels)
			return nil
		},
	}
}
