// Package main provides the rowmax CLI.
package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rowmax-ml/rowmax/internal/bench"
	"github.com/rowmax-ml/rowmax/internal/config"
	"github.com/rowmax-ml/rowmax/internal/parallel"
	"github.com/rowmax-ml/rowmax/internal/softmax"
)

const version = "v0.1.0-dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cfg.PrettyLogs {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cmd := "demo"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "version":
		fmt.Printf("rowmax %s\n", version)
	case "demo":
		runDemo()
	case "bench":
		runBench(cfg)
	default:
		fmt.Println("rowmax - row-wise streaming softmax kernels")
		fmt.Printf("Version: %s\n\n", version)
		fmt.Println("Commands:")
		fmt.Println("  demo       Compare kernel variants on a sample row")
		fmt.Println("  bench      Sweep variants across row widths")
		fmt.Println("  version    Show version")
	}
}

func runDemo() {
	logits := []float32{2.0, 1.0, 0.1, 3.5, 0.5, 1.5}
	fmt.Println("Input logits:", logits)
	fmt.Println()

	dst := make([]float32, len(logits))
	for _, v := range bench.Variants() {
		if err := v.Kernel(dst, logits, 2); err != nil {
			log.Fatal().Err(err).Str("variant", v.Name).Msg("kernel failed")
		}
		fmt.Printf("%-8s %v  sum=%.6f\n", v.Name, formatRow(dst), sum(dst))
	}

	// Chunk size is an implementation detail: every size gives the
	// same distribution.
	fmt.Println()
	for _, chunk := range []int{1, 2, 3, len(logits)} {
		out, err := softmax.Softmax(logits, chunk)
		if err != nil {
			log.Fatal().Err(err).Msg("softmax failed")
		}
		fmt.Printf("chunk=%d  %v\n", chunk, formatRow(out))
	}

	// Masked entries (-Inf) are excluded from the distribution.
	masked := []float32{2.0, float32(math.Inf(-1)), 0.1, 3.5, float32(math.Inf(-1)), 1.5}
	out, err := softmax.Softmax(masked, 2)
	if err != nil {
		log.Fatal().Err(err).Msg("masked softmax failed")
	}
	fmt.Println()
	fmt.Printf("masked   %v  sum=%.6f\n", formatRow(out), sum(out))
}

func runBench(cfg *config.BenchConfig) {
	runner := bench.New(log.Logger, cfg.Reps)

	widths := []int{128, 1024, 4096, 16384}
	results, err := runner.Sweep(widths, cfg.ChunkSize, cfg.Seed)
	if err != nil {
		log.Fatal().Err(err).Msg("sweep failed")
	}
	for _, res := range results {
		fmt.Println(res)
	}

	// Batch fan-out: same matrix, sequential vs parallel.
	rng := rand.New(rand.NewSource(cfg.Seed))
	src := make([]float32, cfg.Rows*cfg.Cols)
	for i := range src {
		src[i] = float32(rng.NormFloat64())
	}
	dst := make([]float32, len(src))

	seq := parallel.Config{Enabled: false}
	par := parallel.DefaultConfig()
	if !cfg.Parallel {
		par = seq
	}
	for _, run := range []struct {
		name string
		cfg  parallel.Config
	}{{"sequential", seq}, {"parallel", par}} {
		start := time.Now()
		if err := softmax.Rows(dst, src, cfg.Cols, cfg.ChunkSize, run.cfg); err != nil {
			log.Fatal().Err(err).Msg("batch failed")
		}
		elapsed := time.Since(start)
		log.Info().
			Str("mode", run.name).
			Int("rows", cfg.Rows).
			Int("cols", cfg.Cols).
			Dur("elapsed", elapsed).
			Msg("batch softmax")
	}
}

func formatRow(row []float32) string {
	s := "["
	for i, v := range row {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%.4f", v)
	}
	return s + "]"
}

func sum(row []float32) float32 {
	var s float32
	for _, v := range row {
		s += v
	}
	return s
}
