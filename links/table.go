package links

import "fmt"

// Null is the raw index used for links pointing to nothing.
const Null int32 = -1

// Table maps block indices to the live decoded objects.
type Table map[int32]any

// Resolve returns the object with index [ref].
// Negative indices are null links and resolve to nil.
func (t Table) Resolve(ref int32) (any, error) {
	if ref < 0 {
		return nil, nil
	}
	obj, ok := t[ref]
	if !ok {
		return nil, fmt.Errorf("%w: index %d (%d blocks)", ErrUnknownBlock, ref, len(t))
	}
	return obj, nil
}

// Indexed is implemented by the objects which may be
// the target of a link, so that the link may be written back.
type Indexed interface {
	BlockIndex() int32
}
