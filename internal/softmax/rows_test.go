package softmax

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowmax-ml/rowmax/internal/parallel"
)

func randomMatrix(rng *rand.Rand, rows, cols int) []float64 {
	m := make([]float64, rows*cols)
	for i := range m {
		m[i] = rng.NormFloat64() * 2
	}
	return m
}

// TestRowsMatchesPerRow checks the batch surface against per-row calls.
func TestRowsMatchesPerRow(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	rows, cols := 17, 33
	src := randomMatrix(rng, rows, cols)

	batch := make([]float64, len(src))
	require.NoError(t, Rows(batch, src, cols, 8, parallel.Config{Enabled: false}))

	single := make([]float64, cols)
	for r := 0; r < rows; r++ {
		lo := r * cols
		require.NoError(t, Row(single, src[lo:lo+cols], 8))
		for i := range single {
			if batch[lo+i] != single[i] {
				t.Fatalf("row %d col %d: batch %v, per-row %v", r, i, batch[lo+i], single[i])
			}
		}
	}
}

// TestRowsParallelMatchesSequential checks fan-out does not change results.
func TestRowsParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	rows, cols := 64, 50
	src := randomMatrix(rng, rows, cols)

	seq := make([]float64, len(src))
	par := make([]float64, len(src))
	require.NoError(t, Rows(seq, src, cols, 16, parallel.Config{Enabled: false}))
	require.NoError(t, Rows(par, src, cols, 16, parallel.Config{
		Enabled:    true,
		NumWorkers: 4,
		MinRows:    1,
	}))

	for i := range seq {
		if seq[i] != par[i] {
			t.Fatalf("index %d: sequential %v, parallel %v", i, seq[i], par[i])
		}
	}
}

// TestRowsPreconditions checks batch-shape validation happens before any
// row is computed.
func TestRowsPreconditions(t *testing.T) {
	cfg := parallel.Config{Enabled: false}
	src := []float64{1, 2, 3, 4, 5, 6}

	tests := []struct {
		name string
		dst  []float64
		src  []float64
		cols int
		c    int
	}{
		{"zero cols", make([]float64, 6), src, 0, 1},
		{"empty matrix", []float64{}, []float64{}, 3, 1},
		{"ragged matrix", make([]float64, 6), src, 4, 1},
		{"dst mismatch", make([]float64, 3), src, 3, 1},
		{"bad chunk", make([]float64, 6), src, 3, 0},
		{"NaN entry", make([]float64, 6), []float64{1, 2, math.NaN(), 4, 5, 6}, 3, 1},
		{"+Inf entry", make([]float64, 6), []float64{1, 2, math.Inf(1), 4, 5, 6}, 3, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Rows(tc.dst, tc.src, tc.cols, tc.c, cfg)
			require.Error(t, err)
			assert.True(t, IsPrecondition(err), "expected precondition error, got %v", err)
		})
	}
}

// TestRowsFullyMaskedRow checks a masked row inside a batch surfaces as a
// numerical error while preconditions still pass.
func TestRowsFullyMaskedRow(t *testing.T) {
	negInf := math.Inf(-1)
	src := []float64{
		1, 2, 3,
		negInf, negInf, negInf,
		4, 5, 6,
	}
	dst := make([]float64, len(src))

	err := Rows(dst, src, 3, 2, parallel.Config{Enabled: false})
	require.Error(t, err)
	assert.True(t, IsNumerical(err), "expected numerical error, got %v", err)
}
