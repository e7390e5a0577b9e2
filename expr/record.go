package expr

import (
	"fmt"
	"reflect"
	"strings"
)

// Record is a read-only view of the fields of the record
// owning an array.
type Record interface {
	// Field returns the current value of the field [name],
	// or false if the record has no such field.
	Field(name string) (Value, bool)
}

// lookup also accepts underscores in place of spaces,
// so that names like "Num Vertices" may be used
// as Go identifiers.
func lookup(r Record, name string) (Value, bool) {
	if v, ok := r.Field(name); ok {
		return v, true
	}
	if strings.Contains(name, "_") {
		return r.Field(strings.ReplaceAll(name, "_", " "))
	}
	return Value{}, false
}

// Fields is a literal record, mostly useful for tests
// and for records built on the fly.
type Fields map[string]Value

func (fs Fields) Field(name string) (Value, bool) {
	v, ok := fs[name]
	return v, ok
}

// valuer is implemented by primitive elements.
type valuer interface{ Value() any }

// lengther is implemented by nested arrays.
type lengther interface{ Len() int }

// Struct returns a live view of the struct pointed by [ptr] :
// later modifications of the struct are visible by the record.
//
// A field is named after its `bin` tag, or after its Go name
// when the tag is empty. Fields tagged with `bin:"-"` are hidden.
// The supported field types are :
//   - booleans, integers and floats (truncated)
//   - slices and arrays of the above, seen as sequences
//   - types with a Value() any method (primitive elements)
//   - types with a Len() int method (nested arrays)
//
// Struct panics if [ptr] is not a pointer to a struct.
func Struct(ptr any) Record {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("expr.Struct: expected a pointer to a struct, got %T", ptr))
	}
	return structRecord{v: rv.Elem(), names: fieldNames(rv.Elem().Type())}
}

type structRecord struct {
	v     reflect.Value
	names map[string]int // field name -> field index
}

// fieldNames parses the struct tags of [ty].
func fieldNames(ty reflect.Type) map[string]int {
	out := make(map[string]int, ty.NumField())
	for i := 0; i < ty.NumField(); i++ {
		field := ty.Field(i)
		switch tag := field.Tag.Get("bin"); tag {
		case "-":
		case "":
			out[field.Name] = i
		default:
			out[tag] = i
		}
	}
	return out
}

func (sr structRecord) Field(name string) (Value, bool) {
	index, ok := sr.names[name]
	if !ok {
		return Value{}, false
	}
	exported := sr.v.Type().Field(index).IsExported()
	return toValue(sr.v.Field(index), exported)
}

// methods may only be called on exported fields
func toValue(rv reflect.Value, withMethods bool) (Value, bool) {
	if !rv.IsValid() { // nil interface, for instance an unresolved link
		return Value{}, false
	}
	if withMethods {
		if v, ok := fromMethods(rv); ok {
			return v, true
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Int(int64(rv.Uint())), true
	case reflect.Float32, reflect.Float64:
		return Int(int64(rv.Float())), true
	case reflect.Slice, reflect.Array:
		seq := make([]int64, rv.Len())
		for i := range seq {
			item, ok := toValue(rv.Index(i), withMethods)
			if !ok || item.IsSeq() {
				return Value{}, false
			}
			seq[i] = item.scalar
		}
		return Seq(seq...), true
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Value{}, false
		}
		return toValue(rv.Elem(), withMethods)
	}
	return Value{}, false
}

func fromMethods(rv reflect.Value) (Value, bool) {
	candidates := []reflect.Value{rv}
	if rv.CanAddr() {
		candidates = append(candidates, rv.Addr())
	}
	for _, c := range candidates {
		if c.Kind() == reflect.Pointer && c.IsNil() {
			continue
		}
		if !c.CanInterface() {
			continue
		}
		switch m := c.Interface().(type) {
		case valuer:
			return toValue(reflect.ValueOf(m.Value()), true)
		case lengther:
			return Int(int64(m.Len())), true
		}
	}
	return Value{}, false
}
