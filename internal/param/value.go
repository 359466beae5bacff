package param

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Kind identifies which scalar type a Value holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindNumber
	KindString
	KindBool
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return "invalid"
	}
}

// tag is the single-character kind marker used in canonical keys.
func (k Kind) tag() byte {
	switch k {
	case KindNumber:
		return 'n'
	case KindString:
		return 's'
	case KindBool:
		return 'b'
	default:
		return '?'
	}
}

// Value is a scalar parameter value. The zero Value is invalid and is only
// equal to another zero Value.
type Value struct {
	v cty.Value
}

// String returns a string Value.
func String(s string) Value { return Value{v: cty.StringVal(s)} }

// Number returns a number Value. Like cty, it panics on NaN.
func Number(f float64) Value { return Value{v: cty.NumberFloatVal(f)} }

// Int returns an integral number Value.
func Int(i int64) Value { return Value{v: cty.NumberIntVal(i)} }

// Bool returns a bool Value.
func Bool(b bool) Value { return Value{v: cty.BoolVal(b)} }

// ValueOf wraps a cty value. Only known, non-null primitive values are
// accepted.
func ValueOf(v cty.Value) (Value, error) {
	if v == cty.NilVal {
		return Value{}, fmt.Errorf("parameter value is missing")
	}
	if !v.IsKnown() {
		return Value{}, fmt.Errorf("parameter value is not known")
	}
	if v.IsNull() {
		return Value{}, fmt.Errorf("parameter value is null")
	}
	v, _ = v.Unmark()
	switch v.Type() {
	case cty.Number, cty.String, cty.Bool:
		return Value{v: v}, nil
	default:
		return Value{}, fmt.Errorf("parameter value must be a number, string or bool, got %s", v.Type().FriendlyName())
	}
}

// Kind reports the scalar type held by v.
func (v Value) Kind() Kind {
	if v.v == cty.NilVal {
		return KindInvalid
	}
	switch v.v.Type() {
	case cty.Number:
		return KindNumber
	case cty.String:
		return KindString
	case cty.Bool:
		return KindBool
	default:
		return KindInvalid
	}
}

// IsValid reports whether v holds a value.
func (v Value) IsValid() bool { return v.Kind() != KindInvalid }

// Cty returns the underlying cty value (cty.NilVal for the zero Value).
func (v Value) Cty() cty.Value { return v.v }

// Equal reports whether v and o hold the same kind and value. Numbers are
// compared exactly.
func (v Value) Equal(o Value) bool {
	vk, ok := v.Kind(), o.Kind()
	if vk != ok {
		return false
	}
	if vk == KindInvalid {
		return true
	}
	return v.v.Equals(o.v).True()
}

// String renders the canonical string form of v: numbers without trailing
// zeros, bools as "true"/"false", strings verbatim. The zero Value renders as
// the empty string.
func (v Value) String() string {
	switch v.Kind() {
	case KindInvalid:
		return ""
	case KindString:
		return v.v.AsString()
	}
	s, err := convert.Convert(v.v, cty.String)
	if err != nil {
		// Every primitive converts to string.
		panic(fmt.Sprintf("param: cannot render %s value: %s", v.Kind(), err))
	}
	return s.AsString()
}
