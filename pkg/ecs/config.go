package ecs

import (
	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// worldConfig holds the configuration of a World.
// Configuration can be set via environment variables with the specified defaults.
type worldConfig struct {
	// Minimum level of the world's logger.
	LogLevel string `env:"ECS_LOG_LEVEL" envDefault:"info"`

	// Initial capacity of the world's entity queues, entity store and system active sets.
	BagCapacity int `env:"ECS_BAG_CAPACITY" envDefault:"64"`
}

// loadWorldConfig loads the world configuration from environment variables.
func loadWorldConfig() (worldConfig, error) {
	cfg := worldConfig{}

	if err := env.Parse(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to parse world config")
	}

	if err := cfg.validate(); err != nil {
		return cfg, eris.Wrap(err, "failed to validate config")
	}

	return cfg, nil
}

// validate performs validation on the loaded configuration.
func (cfg *worldConfig) validate() error {
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return eris.Wrapf(err, "invalid log level %q", cfg.LogLevel)
	}
	if cfg.BagCapacity <= 0 {
		return eris.Errorf("bag capacity must be positive, got %d", cfg.BagCapacity)
	}
	return nil
}

// level returns the parsed log level. Only call it on a validated config.
func (cfg *worldConfig) level() zerolog.Level {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// worldOptions are the values set by WorldOption. Zero values leave the environment config alone.
type worldOptions struct {
	logger      *zerolog.Logger
	logLevel    string
	bagCapacity int
}

// apply overrides the config with every option that was set.
func (opt *worldOptions) apply(cfg *worldConfig) {
	if opt.logLevel != "" {
		cfg.LogLevel = opt.logLevel
	}
	if opt.bagCapacity != 0 {
		cfg.BagCapacity = opt.bagCapacity
	}
}

// WorldOption configures a World.
type WorldOption func(*worldOptions)

// WithLogger sets the logger of the world. The configured log level is still applied to it.
func WithLogger(logger zerolog.Logger) WorldOption {
	return func(opt *worldOptions) { opt.logger = &logger }
}

// WithLogLevel overrides ECS_LOG_LEVEL.
func WithLogLevel(level string) WorldOption {
	return func(opt *worldOptions) { opt.logLevel = level }
}

// WithBagCapacity overrides ECS_BAG_CAPACITY.
func WithBagCapacity(capacity int) WorldOption {
	return func(opt *worldOptions) { opt.bagCapacity = capacity }
}
