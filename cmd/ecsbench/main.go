// Command ecsbench runs a headless particle simulation on the ECS runtime and optionally profiles it.
//
// Settings are read from the environment:
//
//	BENCH_ENTITIES         initial particle count (default 1000)
//	BENCH_TICKS            ticks to simulate (default 600)
//	BENCH_DELTA            seconds per tick (default 1/60)
//	BENCH_SPAWN_INTERVAL   seconds between spawn waves (default 0.5)
//	BENCH_REPORT_INTERVAL  seconds between stats reports (default 1)
//	BENCH_SEED             random seed (default 1)
//	BENCH_PROFILE          "", "cpu" or "mem"
//	BENCH_PROFILE_PATH     directory for profile output (default ".")
package main

import (
	"os"
	"time"

	"github.com/JeremyLoy/config"
	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type benchConfig struct {
	Entities       int     `config:"BENCH_ENTITIES"`
	Ticks          int     `config:"BENCH_TICKS"`
	Delta          float64 `config:"BENCH_DELTA"`
	SpawnInterval  float64 `config:"BENCH_SPAWN_INTERVAL"`
	ReportInterval float64 `config:"BENCH_REPORT_INTERVAL"`
	Seed           uint64  `config:"BENCH_SEED"`
	Profile        string  `config:"BENCH_PROFILE"`
	ProfilePath    string  `config:"BENCH_PROFILE_PATH"`
}

func defaultBenchConfig() benchConfig {
	return benchConfig{
		Entities:       1000,
		Ticks:          600,
		Delta:          1.0 / 60,
		SpawnInterval:  0.5,
		ReportInterval: 1,
		Seed:           1,
		ProfilePath:    ".",
	}
}

func loadBenchConfig() (benchConfig, error) {
	cfg := defaultBenchConfig()
	if err := config.FromEnv().To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to read bench config from environment")
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c benchConfig) validate() error {
	if c.Entities < 0 {
		return eris.Errorf("BENCH_ENTITIES must not be negative, got %d", c.Entities)
	}
	if c.Ticks <= 0 {
		return eris.Errorf("BENCH_TICKS must be positive, got %d", c.Ticks)
	}
	if c.Delta <= 0 {
		return eris.Errorf("BENCH_DELTA must be positive, got %f", c.Delta)
	}
	if c.SpawnInterval <= 0 || c.ReportInterval <= 0 {
		return eris.New("BENCH_SPAWN_INTERVAL and BENCH_REPORT_INTERVAL must be positive")
	}
	switch c.Profile {
	case "", "cpu", "mem":
	default:
		return eris.Errorf("unknown BENCH_PROFILE %q", c.Profile)
	}
	return nil
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := loadBenchConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if p := startProfile(cfg); p != nil {
		defer p.Stop()
	}

	if err := run(cfg, log.Logger); err != nil {
		log.Error().Err(err).Msg("simulation failed")
		os.Exit(1) //nolint:gocritic // exitAfterDefer: the profile is only partial on failure
	}
}

func startProfile(cfg benchConfig) interface{ Stop() } {
	opts := []func(*profile.Profile){profile.ProfilePath(cfg.ProfilePath), profile.NoShutdownHook}
	switch cfg.Profile {
	case "cpu":
		return profile.Start(append(opts, profile.CPUProfile)...)
	case "mem":
		return profile.Start(append(opts, profile.MemProfileAllocs)...)
	default:
		return nil
	}
}

func run(cfg benchConfig, logger zerolog.Logger) error {
	sim, err := newSimulation(cfg, logger)
	if err != nil {
		return err
	}

	start := time.Now()
	for range cfg.Ticks {
		sim.tick(cfg.Delta)
	}
	elapsed := time.Since(start)

	logger.Info().
		Int("ticks", cfg.Ticks).
		Int("spawned", sim.spawned).
		Int("expired", sim.expired).
		Int("active", sim.world.EntityManager().ActiveEntityCount()).
		Dur("elapsed", elapsed).
		Dur("per_tick", elapsed/time.Duration(cfg.Ticks)).
		Msg("simulation finished")
	return nil
}
