package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/guregu/null/v5"
	tr "github.com/ocelot-cloud/task-runner"
	"github.com/spf13/cobra"

	"webmonitor/internal/checker"
	"webmonitor/internal/config"
	"webmonitor/internal/logging"
	"webmonitor/internal/monitoring"
)

var version = "1.1.0"

var ErrUnhealthyEndpoints = errors.New("some endpoints are unhealthy")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	rootCmd := newRootCmd(os.LookupEnv)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		tr.ColoredPrintln("error: %v", err)
		tr.CleanupAndExitWithError()
	}
}

func newRootCmd(lookup config.LookupFunc) *cobra.Command {
	var (
		failOnAlert bool
		location    string
	)
	rootCmd := &cobra.Command{
		Use:           "webmonitor",
		Short:         "check configured web pages and send pushover alerts for outages",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(lookup)
			if err != nil {
				return &AppError{"Invalid environment", err}
			}
			if location != "" {
				settings.ConfigurationURL = location
			}
			logger := logging.New(cmd.OutOrStdout(), settings.LogLevel, settings.LogFormat)

			report, err := InitializeMonitor(settings, logger).Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), reportRun(*report))
			if failOnAlert && !report.AllEndpointsHealthy {
				return ErrUnhealthyEndpoints
			}
			return nil
		},
	}
	rootCmd.Flags().BoolVar(&failOnAlert, "fail-on-alert", false, "exit with an error if any endpoint is not healthy")
	rootCmd.PersistentFlags().StringVarP(&location, "config", "c", "", "monitoring configuration location, overrides MONITORING_CONFIGURATION_URL")
	rootCmd.CompletionOptions = cobra.CompletionOptions{DisableDefaultCmd: true}

	rootCmd.AddCommand(newCheckCmd(lookup))
	rootCmd.AddCommand(newValidateCmd(lookup, &location))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newCheckCmd(lookup config.LookupFunc) *cobra.Command {
	var (
		status  int
		okData  string
		warn    string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "check URL",
		Short: "check a single URL once without sending notifications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(cmd.ErrOrStderr(), envOr(lookup, "LOGLEVEL", "info"), envOr(lookup, "LOG_FORMAT", "json"))
			c := checker.New(timeout, config.DefaultMaxBodyBytes, logger)
			result := c.Check(cmd.Context(), checker.Target{
				URL:                args[0],
				ExpectedStatusCode: status,
				OKSubstring:        null.NewString(okData, okData != ""),
				WarnSubstring:      null.NewString(warn, warn != ""),
			})
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", result.Classification, args[0], result.Detail)
			if result.Classification != checker.OK {
				return ErrUnhealthyEndpoints
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&status, "status", monitoring.DefaultStatusCode, "expected HTTP status code")
	cmd.Flags().StringVar(&okData, "ok", "", "substring that marks the response as healthy")
	cmd.Flags().StringVar(&warn, "warn", "", "substring that marks the response as a warning")
	cmd.Flags().DurationVar(&timeout, "timeout", config.DefaultCheckTimeout, "request timeout")
	return cmd
}

func newValidateCmd(lookup config.LookupFunc, location *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "load the monitoring configuration and list the entries that would be checked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := *location
			if target == "" {
				target = envOr(lookup, "MONITORING_CONFIGURATION_URL", "")
			}
			if strings.TrimSpace(target) == "" {
				return &AppError{"Invalid environment", fmt.Errorf("%w: MONITORING_CONFIGURATION_URL", config.ErrMissingVariable)}
			}
			logger := logging.New(cmd.ErrOrStderr(), envOr(lookup, "LOGLEVEL", "info"), envOr(lookup, "LOG_FORMAT", "json"))
			cfg, err := monitoring.NewLoader(config.DefaultCheckTimeout, logger).Load(cmd.Context(), target)
			if err != nil {
				return &AppError{"Failed to load monitoring configuration", err}
			}
			printEntries(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
}

func printEntries(w io.Writer, cfg *monitoring.Configuration) {
	for _, e := range cfg.Webpages {
		if !e.Monitorable() {
			fmt.Fprintf(w, "skip %s\n", e.Raw)
			continue
		}
		fmt.Fprintf(w, "monitor %s (status %d, ok %s, warn %s)\n", e.URL, e.ExpectedStatusCode, quoted(e.OKSubstring), quoted(e.WarnSubstring))
	}
}

func quoted(s null.String) string {
	if !s.Valid {
		return "-"
	}
	return fmt.Sprintf("%q", s.String)
}

func envOr(lookup config.LookupFunc, key, fallback string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return fallback
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "webmonitor %s\n", version)
		},
	}
}
