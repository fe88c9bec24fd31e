package softmax

import (
	"fmt"
	"math"
)

// checkRow enforces the reducer preconditions before any computation runs,
// so a rejected call never leaves partial results in dst.
func checkRow[T Float](op string, dst, src []T, chunkSize int) error {
	if len(src) == 0 {
		return newPreconditionError(op, "row must contain at least one value")
	}
	if chunkSize < 1 {
		return newPreconditionError(op,
			fmt.Sprintf("chunk size must be at least 1, got %d", chunkSize))
	}
	if len(dst) != len(src) {
		return newPreconditionError(op,
			fmt.Sprintf("destination length %d does not match row length %d",
				len(dst), len(src)))
	}
	for i, v := range src {
		if math.IsNaN(float64(v)) {
			return newPreconditionError(op, fmt.Sprintf("NaN at index %d", i))
		}
		// +Inf cannot be normalized: exp(v - max) with v == max == +Inf
		// is NaN. Only -Inf (masking) is a valid infinity.
		if math.IsInf(float64(v), 1) {
			return newPreconditionError(op, fmt.Sprintf("+Inf at index %d", i))
		}
	}
	return nil
}
