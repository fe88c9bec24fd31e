// Package softmax implements row-wise streaming softmax kernels.
package softmax

import "math"

// Float is a constraint for the element types the kernels operate on.
type Float interface {
	~float32 | ~float64
}

// Accumulator carries the running statistics of the online softmax
// recurrence across sequential chunks of one row.
//
// Algorithm, per chunk of values:
//
//	1. newMax = max(runningMax, max(chunk))
//	2. runningSum = runningSum * exp(runningMax - newMax)
//	             + sum(exp(v - newMax) for unmasked v in chunk)
//	3. runningMax = newMax
//
// After the final chunk, runningMax equals the true row maximum and
// runningSum the stabilized exponential sum, without the row ever being
// materialized whole. A value of -Inf is a masked entry and contributes
// nothing to either statistic.
type Accumulator[T Float] struct {
	maxVal T // Running maximum across all chunks.
	sumExp T // Running sum of exp(v - maxVal).
}

// NewAccumulator creates an accumulator with maxVal = -Inf and sumExp = 0,
// the identity of the recurrence.
func NewAccumulator[T Float]() *Accumulator[T] {
	return &Accumulator[T]{maxVal: negInf[T]()}
}

// Observe folds one chunk of row values into the running statistics.
//
// The prior sum is rescaled by exp(oldMax - newMax) before the chunk's
// exponentials are added, so every term ends up expressed relative to the
// same maximum regardless of arrival order.
func (a *Accumulator[T]) Observe(chunk []T) {
	chunkMax := negInf[T]()
	for _, v := range chunk {
		if v > chunkMax {
			chunkMax = v
		}
	}

	newMax := max(a.maxVal, chunkMax)
	if math.IsInf(float64(newMax), -1) {
		// Everything seen so far is masked. Leave the identity state
		// intact rather than evaluating exp(-Inf - -Inf).
		return
	}

	// When maxVal is still -Inf the correction underflows to exactly 0,
	// matching the empty prior sum.
	a.sumExp *= expOf(a.maxVal - newMax)
	for _, v := range chunk {
		if math.IsInf(float64(v), -1) {
			continue // masked
		}
		a.sumExp += expOf(v - newMax)
	}
	a.maxVal = newMax
}

// Max returns the running maximum observed so far.
func (a *Accumulator[T]) Max() T {
	return a.maxVal
}

// Sum returns the running stabilized exponential sum.
func (a *Accumulator[T]) Sum() T {
	return a.sumExp
}

// Finalize validates the accumulated statistics after the last chunk.
// A NaN sum means a NaN or +Inf value was observed; a zero sum means
// every entry was masked; an infinite sum cannot occur with max
// subtraction and indicates a kernel bug.
func (a *Accumulator[T]) Finalize(op string) error {
	if math.IsNaN(float64(a.sumExp)) {
		return newNumericalError(op, "exponential sum is NaN, a NaN or +Inf value was observed")
	}
	if a.sumExp == 0 {
		return newNumericalError(op, "row is fully masked, softmax is undefined")
	}
	if math.IsInf(float64(a.sumExp), 1) {
		return newNumericalError(op, "exponential sum overflowed despite max subtraction")
	}
	return nil
}

// Reset clears the accumulator for reuse across rows, avoiding repeated
// allocations in batch loops.
func (a *Accumulator[T]) Reset() {
	a.maxVal = negInf[T]()
	a.sumExp = 0
}

func negInf[T Float]() T {
	return T(math.Inf(-1))
}

func expOf[T Float](x T) T {
	return T(math.Exp(float64(x)))
}
