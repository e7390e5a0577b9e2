// Package expr defines the size expressions used to compute
// the length of arrays from the other fields of their record,
// and the read-only record views they are evaluated against.
package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrSyntax          = errors.New("invalid expression")
	ErrUnknownField    = errors.New("unknown field")
	ErrNotScalar       = errors.New("expected a scalar value")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrIndexOutOfRange = errors.New("row index out of range")
)

// Value is the result of an evaluation : either a single integer,
// or a sequence of integers, one for each row of a two dimensional array.
type Value struct {
	seq    []int64
	scalar int64
	isSeq  bool
}

// Int returns a scalar value.
func Int(n int64) Value { return Value{scalar: n} }

// Bool returns 1 for true, 0 for false.
func Bool(b bool) Value {
	if b {
		return Int(1)
	}
	return Int(0)
}

// Seq returns a sequence value. The slice is not copied.
func Seq(ns ...int64) Value { return Value{seq: ns, isSeq: true} }

// IsSeq returns true for sequences.
func (v Value) IsSeq() bool { return v.isSeq }

// Int64 returns the scalar value, or an error for sequences.
func (v Value) Int64() (int64, error) {
	if v.isSeq {
		return 0, fmt.Errorf("%w, got sequence %s", ErrNotScalar, v)
	}
	return v.scalar, nil
}

// At returns the value to use for row [i] : a scalar applies
// to every row.
func (v Value) At(i int) (int64, error) {
	if !v.isSeq {
		return v.scalar, nil
	}
	if i < 0 || i >= len(v.seq) {
		return 0, fmt.Errorf("%w: %d (sequence of length %d)", ErrIndexOutOfRange, i, len(v.seq))
	}
	return v.seq[i], nil
}

// Len returns the number of items of a sequence, or 1 for a scalar.
func (v Value) Len() int {
	if v.isSeq {
		return len(v.seq)
	}
	return 1
}

func (v Value) String() string {
	if !v.isSeq {
		return strconv.FormatInt(v.scalar, 10)
	}
	chunks := make([]string, len(v.seq))
	for i, n := range v.seq {
		chunks[i] = strconv.FormatInt(n, 10)
	}
	return "[" + strings.Join(chunks, " ") + "]"
}
