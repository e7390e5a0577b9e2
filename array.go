package exparray

import (
	"fmt"
	"io"
	"strings"

	"github.com/benoitkugler/exparray/expr"
	"github.com/benoitkugler/exparray/links"
)

// Array is a container whose length is given by an expression
// evaluated against its owner, a record being decoded or encoded.
//
// A flat array stores its elements directly, whereas a two dimensional
// array stores [Row]s, whose lengths are given by a second expression.
//
// An array is not safe for concurrent use.
type Array struct {
	access     accessor
	newElement ElementType

	length    expr.Expr
	rowLength expr.Expr // nil for flat arrays

	// the record owning the array, only used
	// to evaluate the expressions
	owner expr.Record

	options Options

	// exactly one of the two is used
	elements []Element
	rows     []*Row
}

// New returns a flat array whose length is given by [length].
// The array is filled with default elements, according to
// the current state of [owner].
func New(owner expr.Record, elementType ElementType, length expr.Expr, opts ...Option) (*Array, error) {
	return newArray(owner, elementType, length, nil, opts)
}

// New2D returns an array of rows. The number of rows is given by [length],
// and the length of each row by [rowLength], which may evaluate
// either to a scalar (used for every row), or to a sequence
// indexed by row.
func New2D(owner expr.Record, elementType ElementType, length, rowLength expr.Expr, opts ...Option) (*Array, error) {
	return newArray(owner, elementType, length, rowLength, opts)
}

func newArray(owner expr.Record, elementType ElementType, length, rowLength expr.Expr, opts []Option) (*Array, error) {
	a := &Array{
		newElement: elementType,
		length:     length,
		rowLength:  rowLength,
		owner:      owner,
		options:    newOptions(opts),
	}
	a.access = accessorFor(a.create())

	n, err := a.ExpectedLen()
	if err != nil {
		return nil, err
	}
	if err = a.fill(n, nil); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Array) create() Element {
	return a.newElement(a.options.template, a.options.argument)
}

// validate checks a declared length, before any allocation
func (a *Array) validate(n int64, src expr.Expr) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: %s = %d", ErrNegativeLength, src, n)
	}
	if n > int64(a.options.maxLength) {
		return 0, fmt.Errorf("%w: %s = %d exceeds %d", ErrSizeLimitExceeded, src, n, a.options.maxLength)
	}
	return int(n), nil
}

// ExpectedLen evaluates the length expression against the owner.
func (a *Array) ExpectedLen() (int, error) {
	v, err := a.length.Eval(a.owner)
	if err != nil {
		return 0, err
	}
	n, err := v.Int64()
	if err != nil {
		return 0, err
	}
	return a.validate(n, a.length)
}

// ExpectedRowLen evaluates the length of the row [i] against the owner.
// It returns [ErrNotTwoDimensional] for flat arrays.
func (a *Array) ExpectedRowLen(i int) (int, error) {
	if a.rowLength == nil {
		return 0, ErrNotTwoDimensional
	}
	v, err := a.rowLength.Eval(a.owner)
	if err != nil {
		return 0, err
	}
	n, err := v.At(i)
	if err != nil {
		return 0, err
	}
	return a.validate(n, a.rowLength)
}

// fill discards the current content and creates [n] elements
// (or rows), calling [decode] on each, if not nil
func (a *Array) fill(n int, decode func(e Element) error) error {
	a.elements, a.rows = nil, nil

	if a.rowLength == nil {
		a.elements = make([]Element, 0, n) // allocation guarded by validate
		for i := 0; i < n; i++ {
			e := a.create()
			if decode != nil {
				if err := decode(e); err != nil {
					return fmt.Errorf("element %d: %w", i, err)
				}
			}
			a.elements = append(a.elements, e)
		}
		return nil
	}

	a.rows = make([]*Row, 0, n)
	for i := 0; i < n; i++ {
		m, err := a.ExpectedRowLen(i)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		row := &Row{access: a.access, elements: make([]Element, 0, m)}
		for j := 0; j < m; j++ {
			e := a.create()
			if decode != nil {
				if err := decode(e); err != nil {
					return fmt.Errorf("row %d, element %d: %w", i, j, err)
				}
			}
			row.elements = append(row.elements, e)
		}
		a.rows = append(a.rows, row)
	}
	return nil
}

// each calls [fn] on every element, in wire order
func (a *Array) each(fn func(e Element) error) error {
	for i, e := range a.elements {
		if err := fn(e); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	for i, row := range a.rows {
		for j, e := range row.elements {
			if err := fn(e); err != nil {
				return fmt.Errorf("row %d, element %d: %w", i, j, err)
			}
		}
	}
	return nil
}

// Read discards the current content and decodes the array from [r].
// The lengths are evaluated against the owner, which must thus be
// decoded up to the fields they depend on.
//
// On error, the array content is undefined and the owner should be discarded.
func (a *Array) Read(v Version, r io.Reader, stack *links.Stack, arg any) error {
	n, err := a.ExpectedLen()
	if err != nil {
		return err
	}
	a.options.argument = arg

	err = a.fill(n, func(e Element) error { return e.Read(v, r, stack, arg) })
	if err != nil {
		return err
	}
	if log := a.options.log; log != nil {
		log.Debugf("exparray: read %d %s items (length %s)", n, a.access.kind(), a.length)
	}
	return nil
}

// Write encodes every element, in order.
// The length of the array must match the length expression :
// use [UpdateSize] after modifying the fields it depends on.
// The length of each row is not checked.
func (a *Array) Write(v Version, w io.Writer) error {
	n, err := a.ExpectedLen()
	if err != nil {
		return err
	}
	if n != a.Len() {
		return fmt.Errorf("%w: %s = %d, got %d", ErrSizeMismatch, a.length, n, a.Len())
	}
	return a.each(func(e Element) error { return e.Write(v, w) })
}

// FixLinks resolves the links of every element, in the
// same order as [Read].
// It must be called once the whole graph has been decoded.
func (a *Array) FixLinks(v Version, blocks links.Table, stack *links.Stack) error {
	err := a.each(func(e Element) error { return e.FixLinks(v, blocks, stack) })
	if err != nil {
		return err
	}
	if log := a.options.log; log != nil && stack != nil {
		log.Debugf("exparray: fixed links of %d items (%d pending)", a.Len(), stack.Len())
	}
	return nil
}

// UpdateSize truncates the array, or appends default elements,
// so that its length matches the length expression.
// It is not supported for two dimensional arrays.
func (a *Array) UpdateSize() error {
	if a.rowLength != nil {
		return fmt.Errorf("%w: updating size of double array", ErrUnsupportedOperation)
	}
	n, err := a.ExpectedLen()
	if err != nil {
		return err
	}

	oldLen := len(a.elements)
	if n < oldLen {
		clear(a.elements[n:]) // release the dropped elements
		a.elements = a.elements[:n]
	}
	for len(a.elements) < n {
		a.elements = append(a.elements, a.create())
	}

	if log := a.options.log; log != nil && n != oldLen {
		log.Debugf("exparray: resized from %d to %d (length %s)", oldLen, n, a.length)
	}
	return nil
}

// Len returns the number of elements of a flat array,
// or the number of rows.
func (a *Array) Len() int {
	if a.rowLength == nil {
		return len(a.elements)
	}
	return len(a.rows)
}

// Kind returns the kind of the elements.
func (a *Array) Kind() Kind { return a.access.kind() }

// Is2D returns true for arrays of rows.
func (a *Array) Is2D() bool { return a.rowLength != nil }

// Get returns the value of the primitive element [i],
// or the element itself for compound elements.
// For two dimensional arrays, the [*Row] is returned.
func (a *Array) Get(i int) (any, error) {
	if err := checkIndex(i, a.Len()); err != nil {
		return nil, err
	}
	if a.rowLength != nil {
		return a.rows[i], nil
	}
	return a.access.get(a.elements[i]), nil
}

// Set modifies the value of the primitive element [i].
// It fails with [ErrUnsupportedOperation] for compound elements and rows.
func (a *Array) Set(i int, v any) error {
	if err := checkIndex(i, a.Len()); err != nil {
		return err
	}
	if a.rowLength != nil {
		return fmt.Errorf("%w: rows may not be replaced", ErrUnsupportedOperation)
	}
	return a.access.set(a.elements[i], v)
}

// Row returns the row [i] of a two dimensional array.
func (a *Array) Row(i int) (*Row, error) {
	if a.rowLength == nil {
		return nil, ErrNotTwoDimensional
	}
	if err := checkIndex(i, len(a.rows)); err != nil {
		return nil, err
	}
	return a.rows[i], nil
}

// RowLen returns the current length of the row [i].
func (a *Array) RowLen(i int) (int, error) {
	row, err := a.Row(i)
	if err != nil {
		return 0, err
	}
	return row.Len(), nil
}

// maxDisplayed is the number of items shown by [Array.String]
const maxDisplayed = 16

// String returns a description of the first items,
// for debugging purposes.
func (a *Array) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Array of %s items (length %s = %d)\n", a.access.kind(), a.length, a.Len())

	if a.rowLength == nil {
		for i, e := range a.elements {
			if i >= maxDisplayed {
				b.WriteString("etc...\n")
				break
			}
			fmt.Fprintf(&b, "%d: %v\n", i, a.access.get(e))
		}
		return b.String()
	}

	k := 0
	for i, row := range a.rows {
		for j, e := range row.elements {
			if k >= maxDisplayed {
				b.WriteString("etc...\n")
				return b.String()
			}
			fmt.Fprintf(&b, "%d, %d: %v\n", i, j, a.access.get(e))
			k++
		}
	}
	return b.String()
}
