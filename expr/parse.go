package expr

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"

	"golang.org/x/tools/go/ast/astutil"
)

// Parse compiles [src], written with the Go syntax, into an expression.
//
// Identifiers refer to fields of the record (with underscores
// standing for spaces), except for true and false.
// Boolean results are converted to 1 and 0, and integers are
// considered true when not zero.
// Only a bare field reference may evaluate to a sequence.
func Parse(src string) (Expr, error) {
	tree, err := parser.ParseExpr(src)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %s", ErrSyntax, src, err)
	}
	root, err := compile(tree)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %s", ErrSyntax, src, err)
	}
	// a single field reference is kept as is, so that
	// sequences are supported
	if f, isField := root.(fieldRef); isField {
		return f, nil
	}
	return parsed{src: src, root: root}, nil
}

// MustParse is like [Parse] but panics on invalid input.
// It simplifies the declaration of static expressions.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

type parsed struct {
	root node
	src  string
}

func (p parsed) Eval(r Record) (Value, error) {
	n, err := p.root.eval(r)
	if err != nil {
		return Value{}, fmt.Errorf("evaluating %q: %w", p.src, err)
	}
	return Int(n), nil
}

func (p parsed) String() string { return p.src }

// node is one compiled operation, always returning a scalar
type node interface {
	eval(r Record) (int64, error)
}

func (c constant) eval(Record) (int64, error) { return int64(c), nil }

func (f fieldRef) eval(r Record) (int64, error) {
	v, err := f.Eval(r)
	if err != nil {
		return 0, err
	}
	return v.Int64()
}

type unary struct {
	arg node
	op  token.Token
}

type binary struct {
	left, right node
	op          token.Token
}

func compile(e ast.Expr) (node, error) {
	switch e := astutil.Unparen(e).(type) {
	case *ast.BasicLit:
		if e.Kind != token.INT {
			return nil, fmt.Errorf("unsupported literal %s", e.Value)
		}
		n, err := strconv.ParseInt(e.Value, 0, 64)
		if err != nil {
			return nil, err
		}
		return constant(n), nil
	case *ast.Ident:
		switch e.Name {
		case "true":
			return constant(1), nil
		case "false":
			return constant(0), nil
		}
		return fieldRef(e.Name), nil
	case *ast.UnaryExpr:
		switch e.Op {
		case token.SUB, token.ADD, token.NOT, token.XOR:
		default:
			return nil, fmt.Errorf("unsupported unary operator %s", e.Op)
		}
		arg, err := compile(e.X)
		if err != nil {
			return nil, err
		}
		return unary{op: e.Op, arg: arg}, nil
	case *ast.BinaryExpr:
		switch e.Op {
		case token.ADD, token.SUB, token.MUL, token.QUO, token.REM,
			token.AND, token.OR, token.XOR, token.AND_NOT, token.SHL, token.SHR,
			token.EQL, token.NEQ, token.LSS, token.LEQ, token.GTR, token.GEQ,
			token.LAND, token.LOR:
		default:
			return nil, fmt.Errorf("unsupported binary operator %s", e.Op)
		}
		left, err := compile(e.X)
		if err != nil {
			return nil, err
		}
		right, err := compile(e.Y)
		if err != nil {
			return nil, err
		}
		return binary{op: e.Op, left: left, right: right}, nil
	default:
		return nil, fmt.Errorf("unsupported expression %T", e)
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func (u unary) eval(r Record) (int64, error) {
	x, err := u.arg.eval(r)
	if err != nil {
		return 0, err
	}
	switch u.op {
	case token.SUB:
		return -x, nil
	case token.NOT:
		return boolToInt(x == 0), nil
	case token.XOR:
		return ^x, nil
	default: // token.ADD
		return x, nil
	}
}

func (b binary) eval(r Record) (int64, error) {
	x, err := b.left.eval(r)
	if err != nil {
		return 0, err
	}
	// short-circuit logical operators
	switch b.op {
	case token.LAND:
		if x == 0 {
			return 0, nil
		}
	case token.LOR:
		if x != 0 {
			return 1, nil
		}
	}
	y, err := b.right.eval(r)
	if err != nil {
		return 0, err
	}
	switch b.op {
	case token.ADD:
		return x + y, nil
	case token.SUB:
		return x - y, nil
	case token.MUL:
		return x * y, nil
	case token.QUO, token.REM:
		if y == 0 {
			return 0, ErrDivisionByZero
		}
		if b.op == token.QUO {
			return x / y, nil
		}
		return x % y, nil
	case token.AND:
		return x & y, nil
	case token.OR:
		return x | y, nil
	case token.XOR:
		return x ^ y, nil
	case token.AND_NOT:
		return x &^ y, nil
	case token.SHL, token.SHR:
		if y < 0 {
			return 0, fmt.Errorf("negative shift count %d", y)
		}
		if b.op == token.SHL {
			return x << uint64(y), nil
		}
		return x >> uint64(y), nil
	case token.EQL:
		return boolToInt(x == y), nil
	case token.NEQ:
		return boolToInt(x != y), nil
	case token.LSS:
		return boolToInt(x < y), nil
	case token.LEQ:
		return boolToInt(x <= y), nil
	case token.GTR:
		return boolToInt(x > y), nil
	case token.GEQ:
		return boolToInt(x >= y), nil
	default: // token.LAND, token.LOR
		return boolToInt(y != 0), nil
	}
}
