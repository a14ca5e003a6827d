// Package runtimeconfig loads interpreter tuning knobs from the process
// environment with github.com/caarlos0/env/v6 rather than hand-rolling
// os.Getenv parsing.
package runtimeconfig

import "github.com/caarlos0/env/v6"

// Config holds the environment-tunable limits of a quill run.
type Config struct {
	// MaxCycles bounds a single Interpreter.Run call's dispatch loop.
	MaxCycles int `env:"QUILL_MAX_CYCLES" envDefault:"1000000"`

	// ValueStackSize and ObjectStackSize size the two operand stacks
	// Interpreter.Init allocates.
	ValueStackSize  int `env:"QUILL_VALUE_STACK_SIZE" envDefault:"65536"`
	ObjectStackSize int `env:"QUILL_OBJECT_STACK_SIZE" envDefault:"65536"`
}

// Load reads Config from the environment, applying the struct tag
// defaults for any variable left unset.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}
