package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Builder.TitleWeight != 10 {
		t.Errorf("TitleWeight = %d, want 10", cfg.Builder.TitleWeight)
	}
	if cfg.Builder.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Builder.Workers)
	}
	if cfg.Index.ForwardFile != "forward.json" || cfg.Index.InvertedFile != "inverted.json" {
		t.Errorf("unexpected artifact names %q %q", cfg.Index.ForwardFile, cfg.Index.InvertedFile)
	}
}

func TestLoadYAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	yamlDoc := `
index:
  dataDir: /var/lib/docsearch
builder:
  workers: 3
  titleWeight: 5
  idleTimeout: 2s
redis:
  cacheTTL: 30s
`
	if err := os.WriteFile(path, []byte(yamlDoc), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DS_BUILDER_WORKERS", "4")
	t.Setenv("DS_KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Index.DataDir != "/var/lib/docsearch" {
		t.Errorf("DataDir = %q", cfg.Index.DataDir)
	}
	if cfg.Builder.Workers != 4 {
		t.Errorf("Workers = %d, want env override 4", cfg.Builder.Workers)
	}
	if cfg.Builder.TitleWeight != 5 {
		t.Errorf("TitleWeight = %d, want 5", cfg.Builder.TitleWeight)
	}
	if cfg.Builder.IdleTimeout != 2*time.Second {
		t.Errorf("IdleTimeout = %v", cfg.Builder.IdleTimeout)
	}
	if cfg.Redis.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v", cfg.Redis.CacheTTL)
	}
	if diff := cmp.Diff([]string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers); diff != "" {
		t.Errorf("Brokers mismatch (-want +got):\n%s", diff)
	}
	// untouched defaults survive a partial file
	if cfg.Index.ForwardFile != "forward.json" {
		t.Errorf("ForwardFile = %q", cfg.Index.ForwardFile)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero workers", func(c *Config) { c.Builder.Workers = 0 }},
		{"negative title weight", func(c *Config) { c.Builder.TitleWeight = -1 }},
		{"unknown source", func(c *Config) { c.Builder.Source = "ftp" }},
		{"same artifact names", func(c *Config) { c.Index.InvertedFile = c.Index.ForwardFile }},
		{"empty data dir", func(c *Config) { c.Index.DataDir = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("DS_REDIS_ADDR=cache:6380\nDS_LOGGING_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DS_REDIS_ADDR", "")
	os.Unsetenv("DS_REDIS_ADDR")
	t.Setenv("DS_LOGGING_LEVEL", "warn")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile: %v", err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Redis.Addr != "cache:6380" {
		t.Errorf("Redis.Addr = %q, want value from env file", cfg.Redis.Addr)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, existing env must win", cfg.Logging.Level)
	}

	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing env file should be ignored, got %v", err)
	}
}
