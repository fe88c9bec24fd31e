// Package parallel provides fan-out across independent rows of work.
package parallel

import (
	"runtime"
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// Config controls fan-out behavior.
type Config struct {
	Enabled    bool // Whether fan-out is enabled.
	NumWorkers int  // Number of worker goroutines to use.
	MinRows    int  // Minimum rows before fan-out beats running sequentially.
}

// DefaultConfig sizes the worker pool from the CPU topology. The kernels
// are compute-bound, so SMT siblings contending for the same FP units add
// nothing; cap workers at the physical core count when it is known.
func DefaultConfig() Config {
	workers := runtime.NumCPU()
	if pc := cpuid.CPU.PhysicalCores; pc > 0 && pc < workers {
		workers = pc
	}
	return Config{
		Enabled:    workers > 1,
		NumWorkers: workers,
		MinRows:    4,
	}
}

// For executes f(r) for r in [0, n) with optional fan-out. Falls back to
// sequential execution if fan-out is disabled or n is below the minimum.
func For(n int, f func(r int), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < cfg.MinRows {
		for r := 0; r < n; r++ {
			f(r)
		}
		return
	}

	span := (n + cfg.NumWorkers - 1) / cfg.NumWorkers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += span {
		hi := min(lo+span, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for r := lo; r < hi; r++ {
				f(r)
			}
		}(lo, hi)
	}
	wg.Wait()
}
