package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tankmate/internal/blob"
	"tankmate/internal/catalog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tankmate.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(PathEnvVar, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Fatalf("expected defaults %+v, got %+v", want, cfg)
	}
	opts := cfg.CatalogOptions()
	if opts.Driver != catalog.DriverFile || opts.Path != catalog.DefaultPath {
		t.Fatalf("unexpected catalog options %+v", opts)
	}
	if opts.Blob.Driver != blob.DriverFilesystem || opts.BlobKey != catalog.DefaultBlobKey {
		t.Fatalf("unexpected blob options %+v", opts.Blob)
	}
	if len(cfg.ServiceOptions()) != 0 {
		t.Fatalf("expected no service options by default")
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeConfig(t, `
catalog:
  driver: blob
  blob:
    driver: s3
    key: species/fish_data.json
    s3:
      bucket: from-file
      endpoint: http://localhost:9000
      path_style: true
engine:
  cap_selection: true
logging:
  level: debug
  format: console
`)
	t.Setenv("TANKMATE_CATALOG__BLOB__S3__BUCKET", "from-env")
	t.Setenv("TANKMATE_METRICS__EXPORTER", "prometheus")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Catalog.Driver != "blob" || cfg.Catalog.Blob.Driver != "s3" {
		t.Fatalf("file values not applied: %+v", cfg.Catalog)
	}
	if cfg.Catalog.Blob.S3.Bucket != "from-env" {
		t.Fatalf("env should override file, got bucket %q", cfg.Catalog.Blob.S3.Bucket)
	}
	if !cfg.Catalog.Blob.S3.PathStyle || cfg.Catalog.Blob.S3.Region != "us-east-1" {
		t.Fatalf("expected path style with default region, got %+v", cfg.Catalog.Blob.S3)
	}
	if cfg.Metrics.Exporter != "prometheus" || cfg.Metrics.Namespace != "tankmate" {
		t.Fatalf("unexpected metrics config %+v", cfg.Metrics)
	}
	if !cfg.Engine.CapSelection || len(cfg.ServiceOptions()) != 1 {
		t.Fatalf("expected selection cap option")
	}
	opts := cfg.CatalogOptions()
	if opts.Blob.S3.Bucket != "from-env" || opts.BlobKey != "species/fish_data.json" {
		t.Fatalf("unexpected catalog options %+v", opts)
	}
	var buf bytes.Buffer
	lc := cfg.LoggingOptions(&buf)
	if lc.Level != "debug" || lc.Format != "console" || lc.Output != &buf {
		t.Fatalf("unexpected logging options %+v", lc)
	}
}

func TestLoadUsesPathEnvVar(t *testing.T) {
	path := writeConfig(t, "catalog:\n  driver: sqlite\n  sqlite_path: /tmp/fish.db\n")
	t.Setenv(PathEnvVar, path)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Catalog.Driver != "sqlite" || cfg.Catalog.SQLitePath != "/tmp/fish.db" {
		t.Fatalf("expected sqlite config from %s, got %+v", path, cfg.Catalog)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv(PathEnvVar, "")
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown catalog driver", "catalog:\n  driver: redis\n", "Driver"},
		{"unknown exporter", "metrics:\n  exporter: statsd\n", "Exporter"},
		{"bad log format", "logging:\n  format: xml\n", "Format"},
		{"postgres without dsn", "catalog:\n  driver: postgres\n", "postgres_dsn"},
		{"s3 without bucket", "catalog:\n  driver: blob\n  blob:\n    driver: s3\n", "bucket"},
		{"bad endpoint", "catalog:\n  blob:\n    s3:\n      endpoint: not a url\n", "Endpoint"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"TANKMATE_CATALOG__DRIVER":           "catalog.driver",
		"TANKMATE_CATALOG__SQLITE_PATH":      "catalog.sqlite_path",
		"TANKMATE_CATALOG__BLOB__S3__BUCKET": "catalog.blob.s3.bucket",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}
