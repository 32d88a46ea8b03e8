package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	viper.Reset()
	SetDefaults()
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "empty binary",
			mutate:    func(c *Config) { c.Shell.Binary = "" },
			wantField: "shell.binary",
		},
		{
			name:      "empty shell id",
			mutate:    func(c *Config) { c.Shell.ID = "" },
			wantField: "shell.id",
		},
		{
			name:      "poll interval too small",
			mutate:    func(c *Config) { c.Session.PollIntervalMs = 5 },
			wantField: "session.poll_interval_ms",
		},
		{
			name:      "zero connect timeout",
			mutate:    func(c *Config) { c.Session.ConnectTimeoutSec = 0 },
			wantField: "session.connect_timeout_sec",
		},
		{
			name:      "negative command timeout",
			mutate:    func(c *Config) { c.Session.CommandTimeoutSec = -1 },
			wantField: "session.command_timeout_sec",
		},
		{
			name:      "empty preview filename",
			mutate:    func(c *Config) { c.Capture.PreviewFilename = "" },
			wantField: "capture.preview_filename",
		},
		{
			name:      "preview filename with path",
			mutate:    func(c *Config) { c.Capture.PreviewFilename = "previews/p.jpg" },
			wantField: "capture.preview_filename",
		},
		{
			name:      "bad log level",
			mutate:    func(c *Config) { c.Logging.Level = "verbose" },
			wantField: "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			errs := cfg.Validate()
			if len(errs) == 0 {
				t.Fatal("expected validation errors, got none")
			}
			found := false
			for _, e := range errs {
				if e.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for field %q in %v", tt.wantField, ValidationErrors(errs))
			}
		})
	}
}

func TestValidationErrorsFormatting(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Value: 1, Message: "bad"},
		{Field: "b", Value: 2, Message: "worse"},
	}
	msg := errs.Error()
	if !strings.Contains(msg, "2 validation errors") {
		t.Errorf("unexpected message: %s", msg)
	}

	single := ValidationErrors{{Field: "a", Value: 1, Message: "bad"}}
	if !strings.Contains(single.Error(), "a: bad") {
		t.Errorf("unexpected single message: %s", single.Error())
	}

	var none ValidationErrors
	if none.Error() != "" {
		t.Errorf("empty ValidationErrors should produce empty message")
	}
}
