package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reillywatson/reviewappstatus/internal/config"
)

// validateCmd checks the settings without making any request.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	Long: `Load the configuration from the config file, the env file and the
environment, check it, and print the resulting poll budgets.

Exit codes:
  0 - configuration is valid
  1 - configuration is invalid (error details printed to stderr)

Example:
  review-app-status validate -c review-app.yaml`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Checks:             %s\n", cfg.Checks)
	fmt.Fprintf(out, "  Deployment search:  %d attempts every %s\n",
		cfg.DeploymentsBudget().Attempts(), cfg.Interval.Duration())
	if cfg.BuildTimeout > 0 {
		fmt.Fprintf(out, "  Build wait:         up to %s\n", cfg.BuildTimeout.Duration())
	} else {
		fmt.Fprintf(out, "  Build wait:         unbounded\n")
	}
	if cfg.Checks.Has(config.CheckResponse) {
		fmt.Fprintf(out, "  Response check:     %d attempts, accepting %s\n",
			cfg.PublishBudget().Attempts(), cfg.Accepted())
	}
	fmt.Fprintf(out, "  Hosting domain:     %s\n", cfg.HostingDomain)

	return nil
}
