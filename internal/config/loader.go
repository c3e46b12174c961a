package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no explicit path is given and it exists.
const DefaultPath = ".glovebin.yaml"

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "GLOVEBIN_"

// Load builds the configuration from defaults, then the YAML file at path
// (or DefaultPath if path is empty and the file exists), then environment
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	if err := loadFile(cfg, path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path is operator supplied
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

type lookupFunc func(string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	setters := map[string]func(string) error{
		"LOG_LEVEL":  setString(&cfg.Log.Level),
		"LOG_FORMAT": setString(&cfg.Log.Format),

		"CACHE_ENABLED":       setBool(&cfg.Cache.Enabled),
		"CACHE_NAME":          setString(&cfg.Cache.Name),
		"CACHE_MAX_MEMORY_MB": setInt64(&cfg.Cache.MaxMemoryMB),
		"CACHE_POLICY":        setString(&cfg.Cache.Policy),
		"CACHE_MAX_ENTRIES":   setInt(&cfg.Cache.MaxEntries),

		"STORE_DIMENSION": setInt(&cfg.Store.Dimension),
		"STORE_WORKERS":   setInt64(&cfg.Store.Workers),

		"CONVERT_SKIP_HEADER":            setBool(&cfg.Convert.SkipHeader),
		"CONVERT_COMPRESSION":            setString(&cfg.Convert.Compression),
		"CONVERT_IO_LIMIT_BYTES_PER_SEC": setInt64(&cfg.Convert.IOLimitBytesPerSec),
		"CONVERT_PROGRESS_INTERVAL":      setDuration(&cfg.Convert.ProgressInterval),

		"S3_REGION":            setString(&cfg.S3.Region),
		"S3_ENDPOINT":          setString(&cfg.S3.Endpoint),
		"S3_PARALLEL_DOWNLOAD": setBool(&cfg.S3.ParallelDownload),
		"S3_PART_SIZE_MB":      setInt64(&cfg.S3.PartSizeMB),
		"S3_CONCURRENCY":       setInt(&cfg.S3.Concurrency),
		"S3_TEMP_DIR":          setString(&cfg.S3.TempDir),

		"MINIO_ENDPOINT":   setString(&cfg.MinIO.Endpoint),
		"MINIO_ACCESS_KEY": setString(&cfg.MinIO.AccessKey),
		"MINIO_SECRET_KEY": setString(&cfg.MinIO.SecretKey),
		"MINIO_SECURE":     setBool(&cfg.MinIO.Secure),
		"MINIO_REGION":     setString(&cfg.MinIO.Region),

		"METRICS_FILE": setString(&cfg.Metrics.File),
	}

	for key, set := range setters {
		v, ok := lookup(EnvPrefix + key)
		if !ok || v == "" {
			continue
		}
		if err := set(v); err != nil {
			return fmt.Errorf("config: invalid value for %s%s: %w", EnvPrefix, key, err)
		}
	}
	return nil
}

func setString(dst *string) func(string) error {
	return func(v string) error {
		*dst = v
		return nil
	}
}

func setBool(dst *bool) func(string) error {
	return func(v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*dst = b
		return nil
	}
}

func setInt(dst *int) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	}
}

func setInt64(dst *int64) func(string) error {
	return func(v string) error {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	}
}

func setDuration(dst *time.Duration) func(string) error {
	return func(v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		*dst = d
		return nil
	}
}
