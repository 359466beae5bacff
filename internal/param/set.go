package param

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Set is one concrete parameter assignment. Read methods accept a nil *Set
// and treat it as empty.
//
// A Set is not safe for concurrent mutation. Callers that share a Set and
// want to edit it must Clone it first.
type Set struct {
	values map[string]Value
}

// New returns an empty Set.
func New() *Set {
	return &Set{values: make(map[string]Value)}
}

// FromMap returns a Set holding a copy of m.
func FromMap(m map[string]Value) *Set {
	s := &Set{values: make(map[string]Value, len(m))}
	for name, v := range m {
		s.values[name] = v
	}
	return s
}

// FromGo builds a Set from native Go scalars (strings, bools, integers and
// floats).
func FromGo(m map[string]any) (*Set, error) {
	s := &Set{values: make(map[string]Value, len(m))}
	for name, raw := range m {
		ty, err := gocty.ImpliedType(raw)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: unable to infer type: %w", name, err)
		}
		cv, err := gocty.ToCtyValue(raw, ty)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", name, err)
		}
		v, err := ValueOf(cv)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", name, err)
		}
		s.values[name] = v
	}
	return s, nil
}

// FromCty builds a Set from an object or map value whose attributes are
// scalars.
func FromCty(obj cty.Value) (*Set, error) {
	if obj.IsNull() || !obj.IsKnown() {
		return nil, fmt.Errorf("parameter set must be a known, non-null object")
	}
	obj, _ = obj.Unmark()
	ty := obj.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("parameter set must be an object, got %s", ty.FriendlyName())
	}
	s := &Set{values: make(map[string]Value, obj.LengthInt())}
	for it := obj.ElementIterator(); it.Next(); {
		k, ev := it.Element()
		name := k.AsString()
		v, err := ValueOf(ev)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", name, err)
		}
		s.values[name] = v
	}
	return s, nil
}

// Get returns the value stored under name.
func (s *Set) Get(name string) (Value, bool) {
	if s == nil {
		return Value{}, false
	}
	v, ok := s.values[name]
	return v, ok
}

// Set inserts or overwrites the value stored under name.
func (s *Set) Set(name string, v Value) {
	if s.values == nil {
		s.values = make(map[string]Value)
	}
	s.values[name] = v
}

// Delete removes name from the set. Deleting an absent name is a no-op.
func (s *Set) Delete(name string) {
	if s == nil {
		return
	}
	delete(s.values, name)
}

// Len returns the number of parameters in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// Names returns the parameter names in sorted order.
func (s *Set) Names() []string {
	if s == nil {
		return []string{}
	}
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	if s == nil {
		return New()
	}
	return FromMap(s.values)
}

// ConflictWith reports whether s and other disagree on any name they both
// hold. Sets with disjoint names never conflict.
func (s *Set) ConflictWith(other *Set) bool {
	small, large := s, other
	if small.Len() > large.Len() {
		small, large = large, small
	}
	if small.Len() == 0 {
		return false
	}
	for name, v := range small.values {
		if ov, ok := large.values[name]; ok && !v.Equal(ov) {
			return true
		}
	}
	return false
}

// Equal reports whether s and other hold exactly the same names and values.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	if s.Len() == 0 {
		return true
	}
	for name, v := range s.values {
		ov, ok := other.values[name]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Key returns the canonical encoding of the current contents of s. Two sets
// have the same key iff they are Equal. The key is recomputed on every call.
func (s *Set) Key() string {
	var sb strings.Builder
	for i, name := range s.Names() {
		v := s.values[name]
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Quote(name))
		sb.WriteByte('=')
		sb.WriteByte(v.Kind().tag())
		sb.WriteString(strconv.Quote(v.String()))
	}
	return sb.String()
}

// Hash returns a 64-bit hash of the current contents of s.
func (s *Set) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(s.Key()))
	return h.Sum64()
}

// StringMap renders every value in its canonical string form.
func (s *Set) StringMap() map[string]string {
	out := make(map[string]string, s.Len())
	if s == nil {
		return out
	}
	for name, v := range s.values {
		out[name] = v.String()
	}
	return out
}

// Cty returns the set as a cty object value.
func (s *Set) Cty() cty.Value {
	if s.Len() == 0 {
		return cty.EmptyObjectVal
	}
	attrs := make(map[string]cty.Value, len(s.values))
	for name, v := range s.values {
		if !v.IsValid() {
			attrs[name] = cty.NullVal(cty.DynamicPseudoType)
			continue
		}
		attrs[name] = v.Cty()
	}
	return cty.ObjectVal(attrs)
}

// String renders the set as "{a=1, b=x}" with names in sorted order.
func (s *Set) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, name := range s.Names() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(s.values[name].String())
	}
	sb.WriteByte('}')
	return sb.String()
}
