// Package basic provides the primitive element types :
// fixed size numbers, version dependent booleans and links
// to other blocks.
//
// All values are stored in little endian.
package basic

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/benoitkugler/exparray"
	"github.com/benoitkugler/exparray/links"
)

var ErrInvalidValue = errors.New("invalid value for primitive element")

var order = binary.LittleEndian

type number interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

// Number is a fixed size number.
type Number[T number] struct {
	v T
}

type (
	Byte   = Number[uint8]
	Short  = Number[int16]
	UShort = Number[uint16]
	Int    = Number[int32]
	UInt   = Number[uint32]
	Float  = Number[float32]
)

func NewByte(_, _ any) exparray.Element   { return new(Byte) }
func NewShort(_, _ any) exparray.Element  { return new(Short) }
func NewUShort(_, _ any) exparray.Element { return new(UShort) }
func NewInt(_, _ any) exparray.Element    { return new(Int) }
func NewUInt(_, _ any) exparray.Element   { return new(UInt) }
func NewFloat(_, _ any) exparray.Element  { return new(Float) }

func (n *Number[T]) Read(_ exparray.Version, r io.Reader, _ *links.Stack, _ any) error {
	return binary.Read(r, order, &n.v)
}

func (n *Number[T]) Write(_ exparray.Version, w io.Writer) error {
	return binary.Write(w, order, n.v)
}

func (n *Number[T]) FixLinks(exparray.Version, links.Table, *links.Stack) error { return nil }

// Value returns the number, with its Go type (for instance int32 for [Int]).
func (n *Number[T]) Value() any { return n.v }

// SetValue accepts any Go number representable by T.
func (n *Number[T]) SetValue(v any) error {
	out, err := convert[T](v)
	if err != nil {
		return err
	}
	n.v = out
	return nil
}

func (n *Number[T]) String() string { return fmt.Sprint(n.v) }

// convert checks that integers are not truncated;
// floats are converted as is
func convert[T number](v any) (T, error) {
	var zero T
	isUnsigned := zero-1 > zero

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		x := rv.Int()
		out := T(x)
		if (isUnsigned && x < 0) || int64(out) != x {
			return zero, fmt.Errorf("%w: %d overflows %T", ErrInvalidValue, x, zero)
		}
		return out, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		x := rv.Uint()
		out := T(x)
		if out < zero || uint64(out) != x {
			return zero, fmt.Errorf("%w: %d overflows %T", ErrInvalidValue, x, zero)
		}
		return out, nil
	case reflect.Float32, reflect.Float64:
		return T(rv.Float()), nil
	default:
		return zero, fmt.Errorf("%w: %v (%T) is not a number", ErrInvalidValue, v, v)
	}
}
