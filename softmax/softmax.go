// Copyright 2025 The rowmax Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package softmax provides the public API for row-wise streaming softmax.
//
// The package computes numerically stable softmax over rows of float
// values, reading each row in fixed-size chunks so the full row never has
// to sit in fast memory at once:
//   - Row / Softmax: chunked softmax of one row
//   - Rows: independent fan-out over the rows of a matrix
//   - Accumulator: the running max / running sum recurrence, exposed for
//     callers that stream chunks themselves
//
// Example:
//
//	out, err := softmax.Softmax([]float32{1, 2, 3, 4}, 2)
//	if err != nil {
//	    // precondition or numerical failure, no partial results
//	}
package softmax

import (
	"github.com/rowmax-ml/rowmax/internal/parallel"
	"github.com/rowmax-ml/rowmax/internal/softmax"
)

// Float is a constraint for the element types the kernels operate on.
type Float = softmax.Float

// Accumulator carries the running max / running sum statistics of the
// online softmax recurrence across sequential chunks of one row.
type Accumulator[T Float] = softmax.Accumulator[T]

// NewAccumulator creates an empty accumulator (max = -Inf, sum = 0).
func NewAccumulator[T Float]() *Accumulator[T] {
	return softmax.NewAccumulator[T]()
}

// Error is a structured kernel error carrying the failing operation.
type Error = softmax.Error

// Kind classifies kernel failures.
type Kind = softmax.Kind

// Failure classes.
const (
	KindPrecondition Kind = softmax.KindPrecondition
	KindNumerical    Kind = softmax.KindNumerical
)

// IsPrecondition reports whether err is a precondition violation.
func IsPrecondition(err error) bool {
	return softmax.IsPrecondition(err)
}

// IsNumerical reports whether err is a numerical-domain failure.
func IsNumerical(err error) bool {
	return softmax.IsNumerical(err)
}

// Config controls fan-out across the rows of a matrix.
type Config = parallel.Config

// DefaultConfig sizes the fan-out from the CPU topology.
func DefaultConfig() Config {
	return parallel.DefaultConfig()
}

// Row computes the softmax of src into dst, reading src in chunks of
// chunkSize values. dst and src must have the same length; a -Inf input
// is a masked entry and emits 0.
func Row[T Float](dst, src []T, chunkSize int) error {
	return softmax.Row(dst, src, chunkSize)
}

// Softmax is the allocating form of Row.
func Softmax[T Float](values []T, chunkSize int) ([]T, error) {
	return softmax.Softmax(values, chunkSize)
}

// Online forces the two-pass streaming kernel regardless of chunk size.
func Online[T Float](dst, src []T, chunkSize int) error {
	return softmax.Online(dst, src, chunkSize)
}

// Naive computes softmax with three separate passes (max, sum, write).
// Reference variant for the streaming kernels.
func Naive[T Float](dst, src []T, chunkSize int) error {
	return softmax.Naive(dst, src, chunkSize)
}

// Fused computes the whole row as a single chunk. Fastest, but requires
// the full row in fast memory.
func Fused[T Float](dst, src []T) error {
	return softmax.Fused(dst, src)
}

// Rows applies Row independently to every row of a row-major matrix with
// the given column count.
func Rows[T Float](dst, src []T, cols, chunkSize int, cfg Config) error {
	return softmax.Rows(dst, src, cols, chunkSize, cfg)
}
