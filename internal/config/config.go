// Package config loads the glovebin CLI configuration from YAML and
// GLOVEBIN_* environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/hupe1980/glovebin/cache"
	"github.com/hupe1980/glovebin/convert"
)

// Config is the complete CLI configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Cache   CacheConfig   `yaml:"cache"`
	Store   StoreConfig   `yaml:"store"`
	Convert ConvertConfig `yaml:"convert"`
	S3      S3Config      `yaml:"s3"`
	MinIO   MinIOConfig   `yaml:"minio"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // text|json
}

// CacheConfig configures the read-through cache.
type CacheConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Name        string `yaml:"name"`
	MaxMemoryMB int64  `yaml:"max_memory_mb"` // 0 selects a budget from system memory
	Policy      string `yaml:"policy"`        // ristretto|lru
	MaxEntries  int    `yaml:"max_entries"`
}

// StoreConfig configures opened stores.
type StoreConfig struct {
	Dimension int   `yaml:"dimension"` // required for single-record stores
	Workers   int64 `yaml:"workers"`
}

// ConvertConfig configures text conversion.
type ConvertConfig struct {
	SkipHeader         bool          `yaml:"skip_header"`
	Compression        string        `yaml:"compression"` // ""(auto)|none|gzip|zstd|lz4
	IOLimitBytesPerSec int64         `yaml:"io_limit_bytes_per_sec"`
	ProgressInterval   time.Duration `yaml:"progress_interval"`
}

// S3Config configures s3:// sources.
type S3Config struct {
	Region           string `yaml:"region"`
	Endpoint         string `yaml:"endpoint"`
	ParallelDownload bool   `yaml:"parallel_download"`
	PartSizeMB       int64  `yaml:"part_size_mb"`
	Concurrency      int    `yaml:"concurrency"`
	TempDir          string `yaml:"temp_dir"`
}

// MinIOConfig configures minio:// sources.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"`
	Region    string `yaml:"region"`
}

// MetricsConfig configures metric export.
type MetricsConfig struct {
	// File receives Prometheus text metrics when the command exits.
	File string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: "text"},
		Cache: CacheConfig{
			Name:       cache.DefaultName,
			Policy:     string(cache.PolicyRistretto),
			MaxEntries: cache.DefaultMaxEntries,
		},
		Convert: ConvertConfig{
			ProgressInterval: convert.DefaultProgressInterval,
		},
		S3: S3Config{
			PartSizeMB:  5,
			Concurrency: 5,
		},
		MinIO: MinIOConfig{Endpoint: "localhost:9000"},
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: invalid log level %q (must be one of: debug, info, warn, error)", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: invalid log format %q (must be one of: text, json)", c.Log.Format)
	}
	switch cache.Policy(c.Cache.Policy) {
	case cache.PolicyRistretto, cache.PolicyLRU:
	default:
		return fmt.Errorf("config: invalid cache policy %q (must be one of: ristretto, lru)", c.Cache.Policy)
	}
	switch convert.Compression(c.Convert.Compression) {
	case convert.CompressionAuto, convert.CompressionNone, convert.CompressionGzip,
		convert.CompressionZstd, convert.CompressionLZ4:
	default:
		return fmt.Errorf("config: invalid compression %q", c.Convert.Compression)
	}
	if c.Cache.MaxMemoryMB < 0 {
		return fmt.Errorf("config: cache.max_memory_mb must be non-negative")
	}
	if c.Store.Dimension < 0 {
		return fmt.Errorf("config: store.dimension must be non-negative")
	}
	if c.Store.Workers < 0 {
		return fmt.Errorf("config: store.workers must be non-negative")
	}
	if c.Convert.IOLimitBytesPerSec < 0 {
		return fmt.Errorf("config: convert.io_limit_bytes_per_sec must be non-negative")
	}
	if c.S3.PartSizeMB < 0 || c.S3.Concurrency < 0 {
		return fmt.Errorf("config: s3.part_size_mb and s3.concurrency must be non-negative")
	}
	return nil
}

// Config converts the cache section to a cache.Config.
func (c CacheConfig) Config() cache.Config {
	return cache.Config{
		Name:        c.Name,
		MaxMemoryMB: c.MaxMemoryMB,
		Policy:      cache.Policy(c.Policy),
		MaxEntries:  c.MaxEntries,
	}
}
