package basic

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/benoitkugler/exparray"
	"github.com/benoitkugler/exparray/links"
)

// Ref is a link to another block of the graph.
//
// Reading only stores the raw block index : the target
// is resolved by [Ref.FixLinks], once the whole graph is decoded.
type Ref struct {
	target any
	index  int32
}

// NewRef returns a null link.
func NewRef(_, _ any) exparray.Element { return &Ref{index: links.Null} }

// Read requires a non nil [stack], shared with the
// matching call to [Ref.FixLinks].
func (r *Ref) Read(_ exparray.Version, src io.Reader, stack *links.Stack, _ any) error {
	if stack == nil {
		return links.ErrNoStack
	}
	if err := binary.Read(src, order, &r.index); err != nil {
		return err
	}
	r.target = nil
	stack.Push(r.index)
	return nil
}

func (r *Ref) Write(_ exparray.Version, w io.Writer) error {
	return binary.Write(w, order, r.index)
}

// FixLinks pops the index pushed by [Ref.Read] and
// resolves it against [blocks].
func (r *Ref) FixLinks(_ exparray.Version, blocks links.Table, stack *links.Stack) error {
	if stack == nil {
		return links.ErrNoStack
	}
	index, err := stack.Pop()
	if err != nil {
		return err
	}
	target, err := blocks.Resolve(index)
	if err != nil {
		return err
	}
	r.index, r.target = index, target
	return nil
}

// Value returns the linked block, or nil.
func (r *Ref) Value() any { return r.target }

// SetValue accepts nil, or a [links.Indexed] block.
func (r *Ref) SetValue(v any) error {
	switch v := v.(type) {
	case nil:
		r.index, r.target = links.Null, nil
	case links.Indexed:
		r.index, r.target = v.BlockIndex(), v
	default:
		return fmt.Errorf("%w: %T may not be linked", ErrInvalidValue, v)
	}
	return nil
}

// Index returns the raw block index.
func (r *Ref) Index() int32 { return r.index }

func (r *Ref) String() string {
	if r.index < 0 {
		return "None"
	}
	return fmt.Sprintf("<link %d>", r.index)
}
