package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/cloudstatus"
	"github.com/jpalmerr/cloudstatus/config"
	"github.com/jpalmerr/cloudstatus/internal/report"
)

// checkerOptions are appended to the options used to build the checker.
// Tests use it to substitute the fetcher.
var checkerOptions []cloudstatus.Option

func init() {
	rootCmd.Flags().StringP("config", "c", "", "path to config file")
	rootCmd.Flags().StringP("output", "o", config.DefaultOutput, "output format: text, json, or yaml")
	rootCmd.Flags().String("log-level", config.DefaultLogLevel, "log level: debug, info, warn, or error")
}

// newLogger creates a JSON logger writing to w at the given level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: lvl,
	})), nil
}

// loadConfig reads the config file if one was given, then applies flags
// that were set explicitly on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("output") {
		cfg.Output, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	cfg.Output = strings.ToLower(cfg.Output)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}

	// runtime failures from here on are not usage errors
	cmd.SilenceUsage = true

	opts := append([]cloudstatus.Option{cloudstatus.WithLogger(logger)}, checkerOptions...)
	checker, err := cloudstatus.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create checker: %w", err)
	}
	defer checker.Close()

	ids := args
	if len(ids) == 0 {
		ids = cfg.Providers
	}

	doc := report.Document{CheckedAt: time.Now()}
	if len(ids) == 0 {
		doc.Results = checker.CheckAll(cmd.Context())
	} else {
		doc.Results = checker.CheckIDs(cmd.Context(), ids)
	}

	summary := doc.Summary()
	logger.Info("check run complete",
		"checked", summary.Checked,
		"issues", summary.Issues,
	)

	if err := report.Render(cmd.OutOrStdout(), format, doc); err != nil {
		return err
	}

	if code := summary.ExitCode(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}
