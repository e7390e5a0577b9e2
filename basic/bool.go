package basic

import (
	"fmt"
	"io"

	"github.com/benoitkugler/exparray"
	"github.com/benoitkugler/exparray/links"
)

// ByteBoolVersion is the first file version storing
// booleans on one byte instead of four (4.1.0.1).
const ByteBoolVersion = 0x04010001

// Bool is a boolean whose size depends on the file version.
type Bool struct {
	v bool
}

func NewBool(_, _ any) exparray.Element { return new(Bool) }

func boolSize(v exparray.Version) int {
	if v.File >= ByteBoolVersion {
		return 1
	}
	return 4
}

func (b *Bool) Read(v exparray.Version, r io.Reader, _ *links.Stack, _ any) error {
	var buf [4]byte
	data := buf[:boolSize(v)]
	if _, err := io.ReadFull(r, data); err != nil {
		return err
	}
	b.v = false
	for _, c := range data {
		if c != 0 {
			b.v = true
		}
	}
	return nil
}

func (b *Bool) Write(v exparray.Version, w io.Writer) error {
	var buf [4]byte
	if b.v {
		buf[0] = 1
	}
	_, err := w.Write(buf[:boolSize(v)])
	return err
}

func (b *Bool) FixLinks(exparray.Version, links.Table, *links.Stack) error { return nil }

func (b *Bool) Value() any { return b.v }

// SetValue accepts a bool, or an integer (true if not zero).
func (b *Bool) SetValue(v any) error {
	if x, isBool := v.(bool); isBool {
		b.v = x
		return nil
	}
	n, err := convert[int64](v)
	if err != nil {
		return fmt.Errorf("%w: %v (%T) is not a boolean", ErrInvalidValue, v, v)
	}
	b.v = n != 0
	return nil
}

func (b *Bool) String() string { return fmt.Sprint(b.v) }
