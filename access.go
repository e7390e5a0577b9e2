package exparray

import "fmt"

// Kind distinguishes the two ways of accessing elements.
type Kind uint8

const (
	// KindCompound elements are nested records, returned as is
	// and modified through their own methods.
	KindCompound Kind = iota
	// KindPrimitive elements are accessed through their value.
	KindPrimitive
)

func (k Kind) String() string {
	if k == KindPrimitive {
		return "primitive"
	}
	return "compound"
}

// accessor implements indexing for one [Kind],
// so that the capability test is only done once.
type accessor interface {
	kind() Kind
	get(e Element) any
	set(e Element, v any) error
}

// accessorFor inspects a prototype element.
func accessorFor(proto Element) accessor {
	if _, isPrimitive := proto.(Primitive); isPrimitive {
		return primitiveAccess{}
	}
	return compoundAccess{}
}

type primitiveAccess struct{}

func (primitiveAccess) kind() Kind { return KindPrimitive }

// the element type is checked once, at construction
func (primitiveAccess) get(e Element) any { return e.(Primitive).Value() }

func (primitiveAccess) set(e Element, v any) error { return e.(Primitive).SetValue(v) }

type compoundAccess struct{}

func (compoundAccess) kind() Kind { return KindCompound }

func (compoundAccess) get(e Element) any { return e }

func (compoundAccess) set(e Element, _ any) error {
	return fmt.Errorf("%w: elements of type %T may not be replaced", ErrUnsupportedOperation, e)
}
