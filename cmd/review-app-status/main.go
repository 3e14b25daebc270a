// Package main is the entry point of the review-app-status action.
//
// Usage:
//
//	review-app-status                      # run the configured checks
//	review-app-status -c review-app.yaml   # with settings from a file
//	review-app-status validate -c file     # check settings without running
//	review-app-status version              # show version info
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reillywatson/reviewappstatus/internal/config"
	"github.com/reillywatson/reviewappstatus/internal/event"
	"github.com/reillywatson/reviewappstatus/internal/github"
	"github.com/reillywatson/reviewappstatus/internal/logger"
	"github.com/reillywatson/reviewappstatus/internal/output"
	"github.com/reillywatson/reviewappstatus/internal/probe"
	"github.com/reillywatson/reviewappstatus/internal/runner"
)

// Set at build time via -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "review-app-status",
	Short: "Wait for a pull request's review app to build and respond",
	Long: `review-app-status reads the pull_request event of the current workflow run,
finds the deployment created for its head commit, waits for the build to
finish and then polls the review app until it returns an accepted status code.

Settings come from the INPUT_* environment variables GitHub Actions sets for
the step inputs, optionally layered over a YAML file (--config) and a dotenv
file (--env-file). GITHUB_TOKEN and GITHUB_EVENT_PATH are required.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().String("env-file", "", "path to a dotenv file loaded into the environment")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "review-app-status %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	return config.Load(configFile, envFile)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	// failures are reported as workflow annotations below
	cmd.SilenceErrors = true

	writer := output.NewWriter(cmd.OutOrStdout(), os.Getenv("GITHUB_OUTPUT"))

	cfg, err := loadConfig(cmd)
	if err == nil {
		err = cfg.ValidateRuntime()
	}
	if err != nil {
		writer.Failure(fmt.Errorf("invalid configuration: %w", err))
		return err
	}
	writer = output.NewWriter(cmd.OutOrStdout(), cfg.OutputPath)

	log := logger.NewLogger(cfg.LogLevel, cfg.LogFormat).With(zap.String("run_id", uuid.NewString()))
	defer func() { _ = log.Sync() }()

	pr, err := event.Load(cfg.EventPath)
	if err != nil {
		log.Error("failed to load event", zap.Error(err))
		writer.Failure(err)
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prober := probe.NewClient(cfg.RequestTimeout.Duration())
	defer prober.Close()

	r := runner.New(*cfg, github.NewGitHubClient(cfg.Token), prober, writer, log, nil)
	if _, err := r.Run(ctx, pr); err != nil {
		if ctx.Err() != nil && cmd.Context().Err() == nil {
			err = fmt.Errorf("interrupted: %w", context.Cause(ctx))
		}
		log.Error("review app check failed", zap.Error(err))
		writer.Failure(err)
		return err
	}

	writer.Success()
	return nil
}
