// Package bench times the softmax kernel variants against each other.
package bench

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/rowmax-ml/rowmax/internal/softmax"
)

// Kernel is one timeable softmax variant over a float32 row.
type Kernel func(dst, src []float32, chunkSize int) error

// Variant pairs a kernel with its display name.
type Variant struct {
	Name   string
	Kernel Kernel
}

// Variants returns the kernels worth comparing, reference first.
func Variants() []Variant {
	return []Variant{
		{"naive", softmax.Naive[float32]},
		{"online", softmax.Online[float32]},
		{"fused", func(dst, src []float32, _ int) error {
			return softmax.Fused(dst, src)
		}},
	}
}

// Result summarizes repeated timings of one variant at one shape.
type Result struct {
	Variant   string
	Cols      int
	ChunkSize int
	MeanNs    float64
	StddevNs  float64
	MElemsPS  float64 // Millions of row elements normalized per second.
}

// String renders one table line of the sweep output.
func (r Result) String() string {
	return fmt.Sprintf("%-8s cols=%-6d chunk=%-5d %10.0f ns/op ±%-8.0f %8.1f Melem/s",
		r.Variant, r.Cols, r.ChunkSize, r.MeanNs, r.StddevNs, r.MElemsPS)
}

// Runner times kernels over synthetic rows with a fixed seed so sweeps
// are repeatable.
type Runner struct {
	log  zerolog.Logger
	reps int
}

// New creates a Runner performing reps timed repetitions per measurement.
func New(log zerolog.Logger, reps int) *Runner {
	if reps < 1 {
		reps = 1
	}
	return &Runner{log: log, reps: reps}
}

// Run times one variant on one synthetic row shape and summarizes the
// repetitions with mean and standard deviation.
func (r *Runner) Run(v Variant, cols, chunkSize int, seed int64) (Result, error) {
	rng := rand.New(rand.NewSource(seed))
	src := make([]float32, cols)
	for i := range src {
		src[i] = float32(rng.NormFloat64())
	}
	dst := make([]float32, cols)

	// Warm-up run, also surfaces kernel errors before timing starts.
	if err := v.Kernel(dst, src, chunkSize); err != nil {
		return Result{}, err
	}

	samples := make([]float64, r.reps)
	for i := range samples {
		start := time.Now()
		if err := v.Kernel(dst, src, chunkSize); err != nil {
			return Result{}, err
		}
		samples[i] = float64(time.Since(start).Nanoseconds())
	}

	mean, std := stat.MeanStdDev(samples, nil)
	res := Result{
		Variant:   v.Name,
		Cols:      cols,
		ChunkSize: chunkSize,
		MeanNs:    mean,
		StddevNs:  std,
		MElemsPS:  float64(cols) / mean * 1e3,
	}
	r.log.Debug().
		Str("variant", res.Variant).
		Int("cols", cols).
		Int("chunk_size", chunkSize).
		Float64("mean_ns", mean).
		Float64("stddev_ns", std).
		Msg("measured kernel")
	return res, nil
}

// Sweep times every variant across the given row widths.
func (r *Runner) Sweep(widths []int, chunkSize int, seed int64) ([]Result, error) {
	var results []Result
	for _, cols := range widths {
		for _, v := range Variants() {
			res, err := r.Run(v, cols, chunkSize, seed)
			if err != nil {
				return nil, err
			}
			results = append(results, res)
		}
	}
	return results, nil
}
