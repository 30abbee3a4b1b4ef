package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/hupe1980/episcan"
	"github.com/hupe1980/episcan/codec"
	"github.com/hupe1980/episcan/loader"
	"github.com/hupe1980/episcan/report"
)

// Config mirrors the study and loader options. It is read from a TOML file
// and overridden by command-line flags.
type Config struct {
	Encoding      string  `toml:"encoding"`
	Workers       int     `toml:"workers"`
	MemoryLimit   int64   `toml:"memory_limit"`
	StrictAlleles bool    `toml:"strict_alleles"`
	Shortcut      bool    `toml:"shortcut"`
	Compaction    bool    `toml:"compaction"`
	MaxP          float64 `toml:"max_p"`
	MaxErrors     int     `toml:"max_errors"`
	IOLimit       int64   `toml:"io_limit"`
	CacheDir      string  `toml:"cache_dir"`
	LogLevel      string  `toml:"log_level"`
	LogFormat     string  `toml:"log_format"`
	MetricsAddr   string  `toml:"metrics_addr"`
	Codec         string  `toml:"codec"`

	S3    S3Config    `toml:"s3"`
	MinIO MinIOConfig `toml:"minio"`
}

// S3Config configures s3:// locations.
type S3Config struct {
	Region   string `toml:"region"`
	Endpoint string `toml:"endpoint"`
}

// MinIOConfig configures minio:// locations.
type MinIOConfig struct {
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Secure    bool   `toml:"secure"`
}

func defaultConfig() Config {
	return Config{
		Encoding:   "bitplane",
		Shortcut:   true,
		Compaction: true,
		MaxErrors:  loader.DefaultMaxErrors,
		LogLevel:   "info",
		LogFormat:  "text",
		Codec:      codec.Default.Name(),
	}
}

// loadConfig decodes path over the defaults. Unknown keys are an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

func (c Config) logger() (*episcan.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json":
		return episcan.NewJSONLogger(level), nil
	case "text", "":
		return episcan.NewTextLogger(level), nil
	default:
		return nil, fmt.Errorf("log_format: unknown format %q", c.LogFormat)
	}
}

func (c Config) studyOptions(logger *episcan.Logger, metrics episcan.MetricsObserver) ([]episcan.Option, error) {
	enc, err := episcan.ParseEncoding(c.Encoding)
	if err != nil {
		return nil, err
	}
	opts := []episcan.Option{
		episcan.WithEncoding(enc),
		episcan.WithStrictAlleles(c.StrictAlleles),
		episcan.WithShortcut(c.Shortcut),
		episcan.WithCompaction(c.Compaction),
		episcan.WithLogger(logger),
	}
	if c.Workers > 0 {
		opts = append(opts, episcan.WithWorkers(c.Workers))
	}
	if c.MemoryLimit > 0 {
		opts = append(opts, episcan.WithMemoryLimit(c.MemoryLimit))
	}
	if metrics != nil {
		opts = append(opts, episcan.WithMetricsObserver(metrics))
	}
	return opts, nil
}

func (c Config) reportOptions() ([]report.Option, error) {
	rc, err := codec.ByName(c.Codec)
	if err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}
	return []report.Option{report.WithCodec(rc)}, nil
}

func (c Config) loaderOptions(logger *episcan.Logger) []loader.Option {
	opts := []loader.Option{
		loader.WithMaxErrors(c.MaxErrors),
		loader.WithLogger(logger.Logger),
		loader.WithIORateLimit(c.IOLimit),
	}
	if c.Workers > 0 {
		opts = append(opts, loader.WithWorkers(c.Workers))
	}
	return opts
}
