package softmax

import "math"

// Row computes the softmax of src into dst, reading src in chunks of
// chunkSize values so no more than one chunk needs to sit in fast memory
// at a time. When a single chunk covers the whole row it dispatches to the
// fused kernel, otherwise to the online two-pass kernel; the result is
// identical either way.
//
// dst and src must have the same length. A src value of -Inf is a masked
// entry and emits exactly 0. Precondition violations (empty row, chunk
// size < 1, length mismatch, NaN or +Inf input) are reported before any
// computation and leave dst untouched.
func Row[T Float](dst, src []T, chunkSize int) error {
	const op = "Row"
	if err := checkRow(op, dst, src, chunkSize); err != nil {
		return err
	}
	return rowInto(op, dst, src, chunkSize)
}

// Softmax is the allocating form of Row.
func Softmax[T Float](values []T, chunkSize int) ([]T, error) {
	dst := make([]T, len(values))
	if err := Row(dst, values, chunkSize); err != nil {
		return nil, err
	}
	return dst, nil
}

// Online computes softmax with the single-pass accumulation kernel: one
// chunked pass folding max discovery and sum accumulation together, then
// one chunked emission pass. Unlike Row it never takes the fused shortcut,
// which makes it the variant to benchmark against Naive and Fused.
func Online[T Float](dst, src []T, chunkSize int) error {
	const op = "Online"
	if err := checkRow(op, dst, src, chunkSize); err != nil {
		return err
	}
	return onlineInto(op, dst, src, chunkSize)
}

// Naive computes softmax with three separate passes over the row: max,
// sum of exponentials, write. It reads the row three times where Online
// reads it twice; it exists as the reference the streaming kernels are
// checked and timed against.
func Naive[T Float](dst, src []T, chunkSize int) error {
	const op = "Naive"
	if err := checkRow(op, dst, src, chunkSize); err != nil {
		return err
	}

	rowMax := negInf[T]()
	forEachChunk(len(src), chunkSize, func(lo, hi int) {
		for _, v := range src[lo:hi] {
			if v > rowMax {
				rowMax = v
			}
		}
	})
	if math.IsInf(float64(rowMax), -1) {
		return newNumericalError(op, "row is fully masked, softmax is undefined")
	}

	var sum T
	forEachChunk(len(src), chunkSize, func(lo, hi int) {
		for _, v := range src[lo:hi] {
			if math.IsInf(float64(v), -1) {
				continue // masked
			}
			sum += expOf(v - rowMax)
		}
	})
	if math.IsInf(float64(sum), 1) {
		return newNumericalError(op, "exponential sum overflowed despite max subtraction")
	}

	emit(dst, src, chunkSize, rowMax, sum)
	return nil
}

// Fused computes the whole row as a single chunk, collapsing accumulation
// and emission into one evaluation. Fastest but requires the full row in
// fast memory; Row selects it automatically when chunkSize >= len(src).
func Fused[T Float](dst, src []T) error {
	const op = "Fused"
	if err := checkRow(op, dst, src, len(src)); err != nil {
		return err
	}
	return fusedInto(op, dst, src)
}

// rowInto dispatches a validated row to the fused or online kernel.
func rowInto[T Float](op string, dst, src []T, chunkSize int) error {
	if chunkSize >= len(src) {
		return fusedInto(op, dst, src)
	}
	return onlineInto(op, dst, src, chunkSize)
}

func onlineInto[T Float](op string, dst, src []T, chunkSize int) error {
	acc := NewAccumulator[T]()
	forEachChunk(len(src), chunkSize, func(lo, hi int) {
		acc.Observe(src[lo:hi])
	})
	if err := acc.Finalize(op); err != nil {
		return err
	}
	emit(dst, src, chunkSize, acc.Max(), acc.Sum())
	return nil
}

// fusedInto reads src once for the max, then writes exp(v - max) into dst
// while accumulating the sum, then rescales dst in place.
func fusedInto[T Float](op string, dst, src []T) error {
	rowMax := negInf[T]()
	for _, v := range src {
		if v > rowMax {
			rowMax = v
		}
	}
	if math.IsInf(float64(rowMax), -1) {
		return newNumericalError(op, "row is fully masked, softmax is undefined")
	}

	var sum T
	for i, v := range src {
		if math.IsInf(float64(v), -1) {
			dst[i] = 0
			continue
		}
		e := expOf(v - rowMax)
		dst[i] = e
		sum += e
	}
	if math.IsInf(float64(sum), 1) {
		return newNumericalError(op, "exponential sum overflowed despite max subtraction")
	}

	invSum := 1 / sum
	for i := range dst {
		dst[i] *= invSum
	}
	return nil
}

// emit is the second pass shared by the chunked kernels: rewrite each
// chunk as exp(v - rowMax) / sum. Masked entries emit exactly 0 rather
// than going through the exponential.
func emit[T Float](dst, src []T, chunkSize int, rowMax, sum T) {
	invSum := 1 / sum
	forEachChunk(len(src), chunkSize, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			v := src[i]
			if math.IsInf(float64(v), -1) {
				dst[i] = 0
				continue
			}
			dst[i] = expOf(v-rowMax) * invSum
		}
	})
}

// forEachChunk iterates [0, n) in chunks of size chunkSize, the final
// chunk truncated when chunkSize does not divide n.
func forEachChunk(n, chunkSize int, f func(lo, hi int)) {
	for lo := 0; lo < n; lo += chunkSize {
		f(lo, min(lo+chunkSize, n))
	}
}
