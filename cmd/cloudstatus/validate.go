package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/cloudstatus"
	"github.com/jpalmerr/cloudstatus/config"
)

// validateCmd validates a config file without checking any provider.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a cloudstatus configuration file without checking any provider.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  2 - Config is invalid (error details printed to stderr)

Example:
  cloudstatus validate -c config.yaml`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	providers := "all (" + strings.Join(cloudstatus.ProviderIDs(), ", ") + ")"
	if len(cfg.Providers) > 0 {
		providers = strings.Join(cfg.Providers, ", ")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Output:    %s\n", cfg.Output)
	fmt.Fprintf(out, "  Log level: %s\n", cfg.LogLevel)
	fmt.Fprintf(out, "  Providers: %s\n", providers)

	return nil
}
