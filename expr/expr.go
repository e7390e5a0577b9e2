package expr

import (
	"fmt"
	"strconv"
)

// Expr is a size expression. Evaluation must be pure :
// it never modifies the record.
type Expr interface {
	Eval(r Record) (Value, error)

	// String returns the source of the expression,
	// used in error messages.
	String() string
}

// Const returns an expression always evaluating to [n].
func Const(n int64) Expr { return constant(n) }

// Field returns an expression evaluating to the field [name]
// of the record.
func Field(name string) Expr { return fieldRef(name) }

// Func wraps an arbitrary evaluation function.
// [name] is only used for diagnostics.
func Func(name string, fn func(r Record) (Value, error)) Expr {
	return funcExpr{name: name, fn: fn}
}

type constant int64

func (c constant) Eval(Record) (Value, error) { return Int(int64(c)), nil }

func (c constant) String() string { return strconv.FormatInt(int64(c), 10) }

type fieldRef string

func (f fieldRef) Eval(r Record) (Value, error) {
	v, ok := lookup(r, string(f))
	if !ok {
		return Value{}, fmt.Errorf("%w %q", ErrUnknownField, string(f))
	}
	return v, nil
}

func (f fieldRef) String() string { return string(f) }

type funcExpr struct {
	fn   func(r Record) (Value, error)
	name string
}

func (fe funcExpr) Eval(r Record) (Value, error) { return fe.fn(r) }

func (fe funcExpr) String() string { return fe.name }
