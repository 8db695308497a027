package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/teenjuna/vec/codec"
	"github.com/teenjuna/vec/codec/gob"
	"github.com/teenjuna/vec/codec/json"
	"github.com/teenjuna/vec/codec/zstd"
	"github.com/teenjuna/vec/internal/sqlite"
	"github.com/teenjuna/vec/internal/suite"
)

// Config of a veccheck run. Values come from the defaults, then the yaml config file, then
// VECCHECK_* environment variables, then command line flags.
type Config struct {
	Parallel    int    `mapstructure:"parallel"`
	Filter      string `mapstructure:"filter"`
	Stress      int    `mapstructure:"stress"`
	Seed        uint64 `mapstructure:"seed"`
	DB          string `mapstructure:"db"`
	Codec       string `mapstructure:"codec"`
	MetricsFile string `mapstructure:"metrics_file"`
	NoColor     bool   `mapstructure:"no_color"`
	LogLevel    string `mapstructure:"log_level"`
}

func defaultConfig() Config {
	s := suite.DefaultConfig()
	return Config{
		Parallel: 1,
		Stress:   s.Size,
		Seed:     s.Seed,
		Codec:    "json",
		LogLevel: zerolog.LevelWarnValue,
	}
}

// loadConfig reads file (or veccheck.yaml in the working directory when file is empty) and the
// environment, then applies overrides. Keys of overrides use the config file names.
func loadConfig(file string, overrides map[string]any) (*Config, error) {
	v := viper.New()

	def := defaultConfig()
	v.SetDefault("parallel", def.Parallel)
	v.SetDefault("filter", def.Filter)
	v.SetDefault("stress", def.Stress)
	v.SetDefault("seed", def.Seed)
	v.SetDefault("db", def.DB)
	v.SetDefault("codec", def.Codec)
	v.SetDefault("metrics_file", def.MetricsFile)
	v.SetDefault("no_color", def.NoColor)
	v.SetDefault("log_level", def.LogLevel)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("veccheck")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("VECCHECK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	for key, value := range overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Parallel < 1 {
		return errors.New("parallel can't be < 1")
	}
	if c.Stress < 1 {
		return errors.New("stress can't be < 1")
	}
	if strings.Contains(c.DB, "?") {
		return errors.New("db can't contain ?")
	}
	if _, err := newCodec(c.Codec); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

func (c *Config) level() zerolog.Level {
	level, _ := zerolog.ParseLevel(c.LogLevel)
	return level
}

// newCodec returns the zstd compressed codec of the run results named by name.
func newCodec(name string) (codec.Codec[sqlite.CaseResult], error) {
	switch name {
	case "json":
		return zstd.Wrap(json.New[sqlite.CaseResult]()), nil
	case "gob":
		return zstd.Wrap(gob.New[sqlite.CaseResult]()), nil
	default:
		return nil, fmt.Errorf("codec %q is unknown, use json or gob", name)
	}
}
