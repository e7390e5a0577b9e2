// Package exparray implements arrays whose length is not known
// statically, but computed from the other fields of the record owning them,
// as found in binary formats describing object graphs.
//
// An [Array] is either flat, or two dimensional (an array of [Row]s),
// and contains elements which are either primitive (integers, links, ...),
// accessed by value, or compound (nested records), accessed directly.
package exparray

import (
	"io"

	"github.com/benoitkugler/exparray/links"
)

// Version identifies the revision of the format being decoded
// or encoded. Elements may change their layout according to it.
type Version struct {
	File uint32 // main version, such as 0x14000005 for 20.0.0.5
	User uint32 // sub version discriminator
}

// Element is the contract every array element must fulfill.
type Element interface {
	// Read decodes the element from [r]. The raw indices of
	// the links found should be pushed on [stack].
	// [arg] is the type argument provided by the owner.
	Read(v Version, r io.Reader, stack *links.Stack, arg any) error

	// Write encodes the element into [w].
	Write(v Version, w io.Writer) error

	// FixLinks is called once the whole graph has been decoded,
	// so that raw indices may be resolved into [blocks].
	// Elements without links should do nothing.
	FixLinks(v Version, blocks links.Table, stack *links.Stack) error
}

// Primitive is implemented by elements read and written by value.
type Primitive interface {
	Element

	Value() any
	SetValue(v any) error
}

// ElementType creates a default element, given the
// type template and the current type argument.
type ElementType func(template, arg any) Element
