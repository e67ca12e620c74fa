package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// GameConfig holds settings shared by the console shell and the Nakama match handler.
type GameConfig struct {
	// Players are the seat names for a console game, in seat order.
	Players []string `env:"YACHT_PLAYERS" envSeparator:","`
	// Seed fixes the dice source; 0 seeds from the clock.
	Seed int64 `env:"YACHT_SEED"`
	// Verbose enables debug logging.
	Verbose bool `env:"YACHT_VERBOSE"`
	// TickRate is the Nakama match loop rate in ticks per second.
	TickRate int `env:"YACHT_TICK_RATE" envDefault:"1"`
	// IdleTerminateTicks ends a lobby that nobody has started after this many ticks; 0 disables.
	IdleTerminateTicks int64 `env:"YACHT_IDLE_TERMINATE_TICKS" envDefault:"300"`
}

// Load parses the process environment.
func Load() (GameConfig, error) {
	var cfg GameConfig
	if err := env.Parse(&cfg); err != nil {
		return GameConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.validate()
}

// FromRuntimeEnv parses the environment map Nakama exposes under RUNTIME_CTX_ENV.
func FromRuntimeEnv(values map[string]string) (GameConfig, error) {
	var cfg GameConfig
	if values == nil {
		values = map[string]string{}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: values}); err != nil {
		return GameConfig{}, fmt.Errorf("parse runtime env: %w", err)
	}
	return cfg, cfg.validate()
}

func (c GameConfig) validate() error {
	if c.TickRate < 1 || c.TickRate > 60 {
		return fmt.Errorf("tick rate %d out of range 1-60", c.TickRate)
	}
	if c.IdleTerminateTicks < 0 {
		return fmt.Errorf("idle terminate ticks must not be negative, got %d", c.IdleTerminateTicks)
	}
	return nil
}
