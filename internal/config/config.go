// Package config loads tankmate settings from defaults, an optional YAML
// file, and TANKMATE_ environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"tankmate/internal/blob"
	"tankmate/internal/catalog"
	"tankmate/internal/core"
	"tankmate/internal/logging"
)

const (
	// EnvPrefix prefixes every environment override. Nested keys use "__",
	// e.g. TANKMATE_CATALOG__BLOB__S3__BUCKET.
	EnvPrefix = "TANKMATE_"
	// PathEnvVar names the YAML file to load when no path is passed to Load.
	PathEnvVar = "TANKMATE_CONFIG"
)

// Config is the full application configuration.
type Config struct {
	Catalog CatalogConfig `koanf:"catalog"`
	Engine  EngineConfig  `koanf:"engine"`
	Metrics MetricsConfig `koanf:"metrics"`
	Logging LoggingConfig `koanf:"logging"`
}

// CatalogConfig selects where species records are read from and imported to.
type CatalogConfig struct {
	Driver      string     `koanf:"driver" validate:"oneof=file blob sqlite postgres"`
	Path        string     `koanf:"path"`
	SQLitePath  string     `koanf:"sqlite_path"`
	PostgresDSN string     `koanf:"postgres_dsn"`
	Blob        BlobConfig `koanf:"blob"`
}

// BlobConfig parameterizes the blob catalog driver.
type BlobConfig struct {
	Driver string   `koanf:"driver" validate:"oneof=fs s3 memory"`
	FSRoot string   `koanf:"fs_root"`
	Key    string   `koanf:"key" validate:"required"`
	S3     S3Config `koanf:"s3"`
}

// S3Config holds S3 / MinIO connection settings.
type S3Config struct {
	Bucket          string `koanf:"bucket"`
	Region          string `koanf:"region"`
	Endpoint        string `koanf:"endpoint" validate:"omitempty,url"`
	PathStyle       bool   `koanf:"path_style"`
	AccessKeyID     string `koanf:"access_key_id"`
	SecretAccessKey string `koanf:"secret_access_key"`
}

// EngineConfig tunes the evaluation service.
type EngineConfig struct {
	CapSelection bool `koanf:"cap_selection"`
}

// MetricsConfig selects the metrics exporter.
type MetricsConfig struct {
	Exporter  string `koanf:"exporter" validate:"oneof=none expvar prometheus"`
	Namespace string `koanf:"namespace"`
}

// LoggingConfig mirrors logging.Config for file and env configuration.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Catalog: CatalogConfig{
			Driver:     string(catalog.DriverFile),
			Path:       catalog.DefaultPath,
			SQLitePath: "tankmate.db",
			Blob: BlobConfig{
				Driver: string(blob.DriverFilesystem),
				FSRoot: "./catalogdata",
				Key:    catalog.DefaultBlobKey,
				S3:     S3Config{Region: "us-east-1"},
			},
		},
		Metrics: MetricsConfig{Exporter: "none", Namespace: "tankmate"},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load layers defaults, the YAML file at path (or $TANKMATE_CONFIG when path
// is empty; no file is fine), and environment overrides, then validates.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	defaults := Default()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}
	if path == "" {
		path = os.Getenv(PathEnvVar)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// envKey maps TANKMATE_CATALOG__SQLITE_PATH to catalog.sqlite_path.
func envKey(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Validate checks field constraints and cross-field requirements.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	switch catalog.Driver(c.Catalog.Driver) {
	case catalog.DriverPostgres:
		if c.Catalog.PostgresDSN == "" {
			return errors.New("catalog.postgres_dsn is required for the postgres driver")
		}
	case catalog.DriverBlob:
		if c.Catalog.Blob.Driver == string(blob.DriverS3) && c.Catalog.Blob.S3.Bucket == "" {
			return errors.New("catalog.blob.s3.bucket is required for the s3 blob driver")
		}
	}
	return nil
}

// CatalogOptions converts the catalog section into catalog.Open options.
func (c Config) CatalogOptions() catalog.Options {
	s3 := c.Catalog.Blob.S3
	return catalog.Options{
		Driver:      catalog.Driver(c.Catalog.Driver),
		Path:        c.Catalog.Path,
		SQLitePath:  c.Catalog.SQLitePath,
		PostgresDSN: c.Catalog.PostgresDSN,
		BlobKey:     c.Catalog.Blob.Key,
		Blob: blob.Config{
			Driver: blob.Driver(c.Catalog.Blob.Driver),
			FSRoot: c.Catalog.Blob.FSRoot,
			S3: blob.S3Config{
				Bucket:          s3.Bucket,
				Region:          s3.Region,
				Endpoint:        s3.Endpoint,
				PathStyle:       s3.PathStyle,
				AccessKeyID:     s3.AccessKeyID,
				SecretAccessKey: s3.SecretAccessKey,
			},
		},
	}
}

// ServiceOptions returns the engine options implied by the configuration.
func (c Config) ServiceOptions() []core.ServiceOption {
	var opts []core.ServiceOption
	if c.Engine.CapSelection {
		opts = append(opts, core.WithSelectionLimit(core.MaxSelectionEntries))
	}
	return opts
}

// LoggingOptions converts the logging section into a logging.Config writing
// to out.
func (c Config) LoggingOptions(out io.Writer) logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	if out != nil {
		cfg.Output = out
	}
	return cfg
}
