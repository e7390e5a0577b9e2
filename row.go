package exparray

import (
	"fmt"
	"strings"
)

// Row is one line of a two dimensional array.
type Row struct {
	access   accessor
	elements []Element
}

func checkIndex(i, length int) error {
	if i < 0 || i >= length {
		return fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, i, length)
	}
	return nil
}

// Len returns the number of elements in the row.
func (r *Row) Len() int { return len(r.elements) }

// Get returns the value of a primitive element,
// or the element itself for compound ones.
func (r *Row) Get(j int) (any, error) {
	if err := checkIndex(j, len(r.elements)); err != nil {
		return nil, err
	}
	return r.access.get(r.elements[j]), nil
}

// Set modifies the value of a primitive element.
// It always fails for compound elements.
func (r *Row) Set(j int, v any) error {
	if err := checkIndex(j, len(r.elements)); err != nil {
		return err
	}
	return r.access.set(r.elements[j], v)
}

// Values returns the result of [Get] for every element.
func (r *Row) Values() []any {
	out := make([]any, len(r.elements))
	for j, e := range r.elements {
		out[j] = r.access.get(e)
	}
	return out
}

func (r *Row) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for j, e := range r.elements {
		if j > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, r.access.get(e))
	}
	b.WriteByte(']')
	return b.String()
}
