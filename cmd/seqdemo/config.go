package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/lazyseq"
	"github.com/npillmayer/lazyseq/treap"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidColor = errors.New("color must be one of auto, always, never")
	ErrInvalidTrace = errors.New("trace must be one of error, info, debug")
)

// Default configuration values.
const (
	defaultSeed  = 42
	defaultColor = "auto"
	defaultTrace = "error"
	envPrefix    = "SEQDEMO"
)

var defaultInitial = []int{1, 2, 3, 4, 5}

// scenarioOps is the reference scenario applied to defaultInitial.
var scenarioOps = []string{
	"insert:2:10,20",
	"add:1:4:5",
	"assign:3:5:7",
	"reverse:0:4",
	"sum:1:5",
	"get:2",
	"erase:2:4",
}

// Config holds the configuration of a demo run.
type Config struct {
	Seed    uint64 `mapstructure:"seed"`
	Color   string `mapstructure:"color"`
	Trace   string `mapstructure:"trace"`
	Table   bool   `mapstructure:"table"`
	Debug   bool   `mapstructure:"debug"`
	Initial []int  `mapstructure:"initial"`
}

// loadConfig merges flags, environment variables (SEQDEMO_SEED, ...) and an
// optional config file, in this order of precedence.
func loadConfig(cmd *cobra.Command, configPath string) (*Config, error) {
	v := viper.New()
	applyDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configPath, err)
		}
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	setupTracing(cfg.Trace)
	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("seed", defaultSeed)
	v.SetDefault("color", defaultColor)
	v.SetDefault("trace", defaultTrace)
	v.SetDefault("table", false)
	v.SetDefault("debug", false)
	v.SetDefault("initial", defaultInitial)
}

func (cfg *Config) validate() error {
	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidColor, cfg.Color)
	}
	switch cfg.Trace {
	case "error", "info", "debug":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTrace, cfg.Trace)
	}
	return nil
}

// setupTracing routes the core tracer and all selected tracers (among them
// the treap's) to a Go logger on stderr.
func setupTracing(level string) {
	tracer := gologadapter.New()
	tracer.SetTraceLevel(tracing.TraceLevelFromString(level))
	gtrace.CoreTracer = tracer
	tracing.SetTraceSelector(tracing.SelectorForAdapter(func() tracing.Trace {
		return tracer
	}))
}

// newSequence creates the initial sequence in a fresh arena.
func (cfg *Config) newSequence() (*lazyseq.Sequence[int64], error) {
	tr, err := treap.New[int64](treap.Config{
		Seed:     cfg.Seed,
		Capacity: len(cfg.Initial),
		Debug:    cfg.Debug,
	})
	if err != nil {
		return nil, err
	}
	values := make([]int64, len(cfg.Initial))
	for i, v := range cfg.Initial {
		values[i] = int64(v)
	}
	return lazyseq.New(tr, values...)
}
