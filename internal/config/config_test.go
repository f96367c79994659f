package config

import (
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"EXCEL2CSV_OUTPUT", "EXCEL2CSV_OVERWRITE", "EXCEL2CSV_JOBS",
		"EXCEL2CSV_ENCODING", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.OutputRoot != "Exports" {
		t.Errorf("OutputRoot = %q, want %q", cfg.OutputRoot, "Exports")
	}
	if cfg.Overwrite != "ask" {
		t.Errorf("Overwrite = %q, want %q", cfg.Overwrite, "ask")
	}
	if cfg.Jobs != 1 {
		t.Errorf("Jobs = %d, want 1", cfg.Jobs)
	}
	if cfg.Encoding != "utf-8" {
		t.Errorf("Encoding = %q, want %q", cfg.Encoding, "utf-8")
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Errorf("log = %q/%q, want info/console", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("EXCEL2CSV_OUTPUT", "out")
	t.Setenv("EXCEL2CSV_OVERWRITE", "NEVER")
	t.Setenv("EXCEL2CSV_JOBS", "4")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.OutputRoot != "out" {
		t.Errorf("OutputRoot = %q, want %q", cfg.OutputRoot, "out")
	}
	if cfg.Overwrite != "never" {
		t.Errorf("Overwrite = %q, want %q", cfg.Overwrite, "never")
	}
	if cfg.Jobs != 4 {
		t.Errorf("Jobs = %d, want 4", cfg.Jobs)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("log = %q/%q, want debug/json", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadConfig_IgnoresMalformedJobs(t *testing.T) {
	t.Setenv("EXCEL2CSV_JOBS", "many")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Jobs != 1 {
		t.Errorf("Jobs = %d, want 1", cfg.Jobs)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{Overwrite: "ask", Jobs: 1, LogLevel: "info", LogFormat: "console"}

	tests := []struct {
		name      string
		mutate    func(c *Config)
		shouldErr bool
	}{
		{name: "Valid", mutate: func(c *Config) {}, shouldErr: false},
		{name: "Bad overwrite", mutate: func(c *Config) { c.Overwrite = "sometimes" }, shouldErr: true},
		{name: "Zero jobs", mutate: func(c *Config) { c.Jobs = 0 }, shouldErr: true},
		{name: "Bad log level", mutate: func(c *Config) { c.LogLevel = "trace" }, shouldErr: true},
		{name: "Bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.shouldErr && err == nil {
				t.Error("Validate() expected error, got nil")
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}
