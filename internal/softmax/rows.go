package softmax

import (
	"errors"
	"fmt"

	"github.com/rowmax-ml/rowmax/internal/parallel"
)

// Rows applies Row independently to every row of a row-major rows*cols
// matrix. Rows share no state, so fan-out needs nothing beyond joining
// the workers; cfg controls whether and how wide to fan out.
//
// All rows are validated before any of them is computed, so a
// precondition failure leaves dst untouched. A fully masked row is a
// numerical error reported per row after the batch completes.
func Rows[T Float](dst, src []T, cols, chunkSize int, cfg parallel.Config) error {
	const op = "Rows"
	if cols < 1 {
		return newPreconditionError(op,
			fmt.Sprintf("column count must be at least 1, got %d", cols))
	}
	if len(src) == 0 {
		return newPreconditionError(op, "matrix must contain at least one row")
	}
	if len(src)%cols != 0 {
		return newPreconditionError(op,
			fmt.Sprintf("matrix length %d is not a multiple of %d columns",
				len(src), cols))
	}
	if len(dst) != len(src) {
		return newPreconditionError(op,
			fmt.Sprintf("destination length %d does not match matrix length %d",
				len(dst), len(src)))
	}

	rows := len(src) / cols
	for r := 0; r < rows; r++ {
		lo := r * cols
		if err := checkRow(op, dst[lo:lo+cols], src[lo:lo+cols], chunkSize); err != nil {
			return err
		}
	}

	errs := make([]error, rows)
	parallel.For(rows, func(r int) {
		lo, hi := r*cols, (r+1)*cols
		errs[r] = rowInto(op, dst[lo:hi], src[lo:hi], chunkSize)
	}, cfg)
	return errors.Join(errs...)
}
