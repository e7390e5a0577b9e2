package exparray_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/benoitkugler/exparray"
	"github.com/benoitkugler/exparray/basic"
	"github.com/benoitkugler/exparray/expr"
	"github.com/benoitkugler/exparray/links"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func newProperties() *gopter.Properties {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	return gopter.NewProperties(parameters)
}

func TestPropertyRoundTrip(t *testing.T) {
	properties := newProperties()

	properties.Property("read then write reproduces the input", prop.ForAll(
		func(values []int32) bool {
			owner := &mesh{}
			arr, err := exparray.New(expr.Struct(owner), basic.NewInt, expr.Field("Num Vertices"))
			if err != nil {
				return false
			}
			owner.NumVertices = int32(len(values))

			input := int32s(values...)
			if err := arr.Read(v20, bytes.NewReader(input), new(links.Stack), nil); err != nil {
				return false
			}
			if arr.Len() != len(values) {
				return false
			}
			var buf bytes.Buffer
			if err := arr.Write(v20, &buf); err != nil {
				return false
			}
			return bytes.Equal(input, buf.Bytes())
		},
		gen.SliceOf(gen.Int32()),
	))

	properties.Property("rows are read and written in order", prop.ForAll(
		func(rows [][]int32) bool {
			owner := &mesh{NumStrips: uint16(len(rows))}
			var flat []int32
			for _, row := range rows {
				owner.StripLengths = append(owner.StripLengths, uint16(len(row)))
				flat = append(flat, row...)
			}
			arr, err := exparray.New2D(expr.Struct(owner), basic.NewInt,
				expr.Field("Num Strips"), expr.Field("Strip Lengths"))
			if err != nil {
				return false
			}
			input := int32s(flat...)
			if err := arr.Read(v20, bytes.NewReader(input), new(links.Stack), nil); err != nil {
				return false
			}
			if arr.Len() != len(rows) {
				return false
			}
			for i, row := range rows {
				if l, err := arr.RowLen(i); err != nil || l != len(row) {
					return false
				}
			}
			var buf bytes.Buffer
			if err := arr.Write(v20, &buf); err != nil {
				return false
			}
			return bytes.Equal(input, buf.Bytes())
		},
		gen.SliceOf(gen.SliceOf(gen.Int32())),
	))

	properties.TestingRun(t)
}

func TestPropertyUpdateSize(t *testing.T) {
	properties := newProperties()

	properties.Property("resizing twice is a no-op the second time", prop.ForAll(
		func(a, b int) bool {
			owner := &mesh{NumVertices: int32(a)}
			arr, err := exparray.New(expr.Struct(owner), newVertex, expr.Field("Num Vertices"))
			if err != nil {
				return false
			}
			owner.NumVertices = int32(b)
			if err := arr.UpdateSize(); err != nil || arr.Len() != b {
				return false
			}
			before := make([]any, arr.Len())
			for i := range before {
				before[i], _ = arr.Get(i)
			}
			if err := arr.UpdateSize(); err != nil || arr.Len() != b {
				return false
			}
			for i := range before {
				if got, _ := arr.Get(i); got != before[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 200),
		gen.IntRange(0, 200),
	))

	properties.Property("growing appends fresh default elements", prop.ForAll(
		func(a, extra int) bool {
			owner := &mesh{NumVertices: int32(a)}
			arr, err := exparray.New(expr.Struct(owner), newVertex, expr.Field("Num Vertices"))
			if err != nil {
				return false
			}
			// mark the existing elements
			seen := map[any]bool{}
			for i := 0; i < a; i++ {
				e, _ := arr.Get(i)
				e.(*vertex).X.SetValue(1)
				seen[e] = true
			}

			owner.NumVertices = int32(a + extra)
			if err := arr.UpdateSize(); err != nil {
				return false
			}
			for i := 0; i < a; i++ {
				if e, _ := arr.Get(i); !seen[e] {
					return false
				}
			}
			for i := a; i < a+extra; i++ {
				e, _ := arr.Get(i)
				if seen[e] || e.(*vertex).X.Value() != float32(0) {
					return false
				}
				seen[e] = true
			}
			return true
		},
		gen.IntRange(0, 100),
		gen.IntRange(1, 100),
	))

	properties.TestingRun(t)
}

func TestPropertyCeiling(t *testing.T) {
	properties := newProperties()

	properties.Property("lengths above the ceiling are rejected without allocation", prop.ForAll(
		func(excess int32, is2D bool) bool {
			owner := expr.Fields{"n": expr.Int(1), "m": expr.Int(1)}
			ct := &countingType{create: basic.NewByte}
			var (
				arr *exparray.Array
				err error
			)
			if is2D {
				arr, err = exparray.New2D(owner, ct.new, expr.Field("n"), expr.Field("m"))
			} else {
				arr, err = exparray.New(owner, ct.new, expr.Field("n"))
			}
			if err != nil {
				return false
			}
			created := ct.created

			bad := expr.Int(exparray.DefaultMaxLength + int64(excess))
			if is2D {
				owner["m"] = bad
			} else {
				owner["n"] = bad
			}
			err = arr.Read(v20, bytes.NewReader(make([]byte, 16)), new(links.Stack), nil)
			return errors.Is(err, exparray.ErrSizeLimitExceeded) && ct.created == created
		},
		gen.Int32Range(1, 1<<20),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
