// Package links implements the bookkeeping needed to resolve
// references between decoded blocks.
//
// Decoding is done in two passes : during the first one, link
// elements push the raw block indices they read on a [Stack];
// once every block of the file is decoded, the second pass pops them,
// in the same order, and resolves them against a [Table].
// Forward references are thus supported.
package links

import (
	"errors"
	"fmt"
)

var (
	ErrStackExhausted = errors.New("link stack exhausted: more links fixed than read")
	ErrUnknownBlock   = errors.New("link to an unknown block")
	ErrNoStack        = errors.New("missing link stack")
)

// Stack is a FIFO of raw block indices, shared by all the
// records of one decoding session.
// The zero value is an empty stack, ready to use.
type Stack struct {
	refs []int32
	next int // index of the next ref to pop
}

// Push records a raw block index read from the stream.
func (s *Stack) Push(ref int32) { s.refs = append(s.refs, ref) }

// Pop returns the oldest index not yet consumed.
func (s *Stack) Pop() (int32, error) {
	if s.next >= len(s.refs) {
		return 0, fmt.Errorf("%w (%d links read)", ErrStackExhausted, len(s.refs))
	}
	ref := s.refs[s.next]
	s.next++
	return ref, nil
}

// Len returns the number of indices still to be consumed.
func (s *Stack) Len() int { return len(s.refs) - s.next }

// Reset empties the stack, so that it may be reused for
// another session.
func (s *Stack) Reset() {
	s.refs = s.refs[:0]
	s.next = 0
}
