// Package main is the entry point for the cloudstatus CLI.
//
// Usage:
//
//	cloudstatus                      # Check all providers
//	cloudstatus aws gcp              # Check selected providers
//	cloudstatus -o json              # Machine-readable report
//	cloudstatus providers            # List known providers
//	cloudstatus validate -c cfg.yaml # Validate configuration
//	cloudstatus version              # Show version info
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitError carries a process exit code without an error message.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// exitUsage is returned for usage and configuration errors, so they can be
// told apart from providers reporting issues (exit 1).
const exitUsage = 2

// rootCmd checks provider status when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "cloudstatus [provider-id ...]",
	Short: "Check the status of major cloud providers",
	Long: `cloudstatus polls the public status pages of AWS, GCP, Azure and
Cloudflare, classifies each provider's health and prints a summary.

With no arguments all providers are checked in a fixed order. Provider ids
given as arguments are checked in the order given; unknown ids are reported
with an unknown status rather than stopping the run.

Exit codes:
  0 - All checked providers operational (or status unknown)
  1 - At least one provider reports degraded service or an outage
  2 - Invalid usage or configuration

Example:
  cloudstatus
  cloudstatus aws cloudflare
  cloudstatus -o json`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runCheck,
	SilenceErrors: true,
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}

	fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	return exitUsage
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := Execute(ctx)
	stop()
	os.Exit(code)
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this cloudstatus binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "cloudstatus %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
