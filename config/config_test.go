package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Parse(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_FullConfig(t *testing.T) {
	yaml := `
output: JSON
log_level: debug
providers: [AWS, cloudflare]
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := &Config{
		Output:    "json",
		LogLevel:  "debug",
		Providers: []string{"aws", "cloudflare"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("CLOUDSTATUS_TEST_OUTPUT", "yaml")

	yaml := `
output: ${CLOUDSTATUS_TEST_OUTPUT}
log_level: ${CLOUDSTATUS_TEST_UNSET_LEVEL:-info}
providers:
  - ${CLOUDSTATUS_TEST_UNSET_PROVIDER:-gcp}
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Output != "yaml" {
		t.Errorf("Output = %q, want yaml", cfg.Output)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if len(cfg.Providers) != 1 || cfg.Providers[0] != "gcp" {
		t.Errorf("Providers = %v, want [gcp]", cfg.Providers)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "bad output",
			yaml:    "output: xml",
			wantErr: `output must be one of [text json yaml], got "xml"`,
		},
		{
			name:    "bad log level",
			yaml:    "log_level: loud",
			wantErr: `log_level must be one of [debug info warn error], got "loud"`,
		},
		{
			name:    "unknown provider",
			yaml:    "providers: [aws, oracle]",
			wantErr: `providers[1]: unknown provider "oracle"`,
		},
		{
			name:    "unset env var",
			yaml:    "output: ${CLOUDSTATUS_TEST_DEFINITELY_UNSET}",
			wantErr: `output: environment variable "CLOUDSTATUS_TEST_DEFINITELY_UNSET" is not set`,
		},
		{
			name:    "unknown key",
			yaml:    "port: 8080",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "malformed yaml",
			yaml:    "output: [",
			wantErr: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CLOUDSTATUS_TEST_SET", "value")
	t.Setenv("CLOUDSTATUS_TEST_EMPTY", "")

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "plain", false},
		{"${CLOUDSTATUS_TEST_SET}", "value", false},
		{"a-${CLOUDSTATUS_TEST_SET}-b", "a-value-b", false},
		{"${CLOUDSTATUS_TEST_EMPTY:-fallback}", "", false},
		{"${CLOUDSTATUS_TEST_NOPE:-fallback}", "fallback", false},
		{"${CLOUDSTATUS_TEST_NOPE:-}", "", false},
		{"${CLOUDSTATUS_TEST_NOPE}", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := expandEnvVars(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expandEnvVars(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloudstatus.yaml")
	if err := os.WriteFile(path, []byte("output: yaml\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output != "yaml" {
		t.Errorf("Output = %q, want yaml", cfg.Output)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/cloudstatus.yaml")
	if err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("error should mention 'failed to read', got: %v", err)
	}
}
