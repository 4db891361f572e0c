package briar

import (
	"strconv"
	"strings"
)

// Value is the tagged union of runtime values: exactly one of the six
// variants below is ever live for a given Value. Modeled as an interface with a
// closed set of implementations, in narfscript/value.go's style, rather than
// a single struct with a discriminant field, so that a type switch on the
// concrete pointer type is the "typed extract" operation.
type Value interface {
	Type() string
	String() string
}

var (
	valNull = &ValueNull{}
	valTrue = &ValueBool{true}
	valFalse = &ValueBool{false}
)

// ValueNull is the None variant.
type ValueNull struct{}

func NewNull() *ValueNull { return valNull }

func (v *ValueNull) Type() string { return "None" }
func (v *ValueNull) String() string { return "nil" }

// ValueBool is the boolean variant.
type ValueBool struct{ B bool }

func NewBool(b bool) *ValueBool {
	if b {
		return valTrue
	}
	return valFalse
}

func (v *ValueBool) Type() string { return "Bool" }
func (v *ValueBool) String() string {
	if v.B {
		return "true"
	}
	return "false"
}

// ValueInt is the signed 64-bit integer variant.
type ValueInt struct{ N int64 }

func NewInt(n int64) *ValueInt { return &ValueInt{n} }

func (v *ValueInt) Type() string { return "Int" }
func (v *ValueInt) String() string { return strconv.FormatInt(v.N, 10) }

// ValueStr is the immutable string variant.
type ValueStr struct{ S string }

func NewStr(s string) *ValueStr { return &ValueStr{s} }

func (v *ValueStr) Type() string { return "Str" }
func (v *ValueStr) String() string { return v.S }

// ValueFun is the callable variant: a closure over a function's parameter
// names, its body AST node, and the Environment in effect at the point the
// `function` node was evaluated — Fun values capture the environment, not
// a snapshot of the bindings live at definition time.
type ValueFun struct {
	Name string
	Params []string
	Body *Node
	Env *Env
}

func (v *ValueFun) Type() string { return "Fun" }
func (v *ValueFun) String() string { return "Function" }

// ValueNative is the other Go representation of the Fun variant: a builtin
// implemented in Go (print/len and the supplemental error/printf) rather
// than compiled from a `function` AST node. It still reports Type() "Fun"
// — the value model has exactly six variants, and a native function is
// observably a Fun to a script, just one the evaluator can call without an
// Env/body pair. Grounded in narfscript/value.go's ValueNativeFunction
// alongside ValueClosure, both satisfying the same callable role with
// distinct Go types.
type ValueNative struct {
	Name string
	Fn func(in *Interp, args []Value, loc *SrcLoc) (Value, error)
}

func (v *ValueNative) Type() string { return "Fun" }
func (v *ValueNative) String() string { return "Function" }

// ValueList is the ordered-sequence variant. Elements are Values; a nil
// element slot is never used — the "empty list" sentinel is modeled as an
// explicit *ValueNull placeholder element, exactly the carrier the display
// and concatenation logic already know how to filter.
type ValueList struct{ Elems []Value }

func NewList(elems []Value) *ValueList { return &ValueList{elems} }

// NewEmptyList builds a list carrying the single None placeholder: the
// placeholder lets index-assignment tell "the list is genuinely empty"
// apart from "the index is out of range", since both would otherwise look
// like len(list) == 0.
func NewEmptyList() *ValueList { return &ValueList{[]Value{NewNull()}} }

func (v *ValueList) Type() string { return "List" }

func (v *ValueList) String() string {
	var parts []string
	for _, e := range v.Elems {
		if _, isNull := e.(*ValueNull); isNull {
			continue
		}
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}

// nonNullCount returns the count of non-None elements, used by index
// assignment to compute `upper`.
func (v *ValueList) nonNullCount() int {
	n := 0
	for _, e := range v.Elems {
		if _, isNull := e.(*ValueNull); !isNull {
			n++
		}
	}
	return n
}

// valuesEqual implements variant-wise equality: None equals None,
// Bool/Int/Str compare by carried value, List is elementwise, and Fun
// equality is explicitly false — chosen over failing TypeError so that
// scripts may freely compare function values in conditions without the
// interpreter aborting.
func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case *ValueNull:
		_, ok := b.(*ValueNull)
		return ok
	case *ValueBool:
		bv, ok := b.(*ValueBool)
		return ok && av.B == bv.B
	case *ValueInt:
		bv, ok := b.(*ValueInt)
		return ok && av.N == bv.N
	case *ValueStr:
		bv, ok := b.(*ValueStr)
		return ok && av.S == bv.S
	case *ValueList:
		bv, ok := b.(*ValueList)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !valuesEqual(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case *ValueFun:
		return false
	default:
		return false
	}
}

// asInt is the "typed extract" operation for the Int variant: it either
// yields the carried int64 or fails with TypeError naming the actual
// variant.
func asInt(v Value, loc *SrcLoc) (int64, error) {
	iv, ok := v.(*ValueInt)
	if !ok {
		return 0, newTypeError(loc, "Int", v.Type())
	}
	return iv.N, nil
}

func asStr(v Value, loc *SrcLoc) (string, error) {
	sv, ok := v.(*ValueStr)
	if !ok {
		return "", newTypeError(loc, "Str", v.Type())
	}
	return sv.S, nil
}

func asList(v Value, loc *SrcLoc) (*ValueList, error) {
	lv, ok := v.(*ValueList)
	if !ok {
		return nil, newTypeError(loc, "List", v.Type())
	}
	return lv, nil
}

func asFun(v Value, loc *SrcLoc) (*ValueFun, error) {
	fv, ok := v.(*ValueFun)
	if !ok {
		return nil, newTypeError(loc, "Fun", v.Type())
	}
	return fv, nil
}
