// Package config defines environment configuration for the rowmax CLI.
package config

import (
	"github.com/caarlos0/env/v11"
)

// BenchConfig holds the knobs for the benchmark sweep and the demo.
type BenchConfig struct {
	Rows       int   `env:"ROWMAX_ROWS" envDefault:"256"`
	Cols       int   `env:"ROWMAX_COLS" envDefault:"4096"`
	ChunkSize  int   `env:"ROWMAX_CHUNK" envDefault:"256"`
	Reps       int   `env:"ROWMAX_REPS" envDefault:"20"`
	Seed       int64 `env:"ROWMAX_SEED" envDefault:"1"`
	Parallel   bool  `env:"ROWMAX_PARALLEL" envDefault:"true"`
	PrettyLogs bool  `env:"ROWMAX_PRETTY_LOGS" envDefault:"true"`
}

// Load parses the configuration from the environment.
func Load() (*BenchConfig, error) {
	cfg := &BenchConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
