package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func mustGo(t *testing.T, m map[string]any) *Set {
	t.Helper()
	s, err := FromGo(m)
	require.NoError(t, err)
	return s
}

func TestSet_EmptyDoesNotConflict(t *testing.T) {
	p := New()
	q := New()
	assert.False(t, p.ConflictWith(q))

	r := mustGo(t, map[string]any{"a": 1})
	assert.False(t, p.ConflictWith(r))
	assert.False(t, r.ConflictWith(p))

	var nilSet *Set
	assert.False(t, nilSet.ConflictWith(r))
	assert.False(t, r.ConflictWith(nilSet))
}

func TestSet_EmptyStringMap(t *testing.T) {
	assert.Equal(t, map[string]string{}, New().StringMap())
}

func TestSet_ConflictWith(t *testing.T) {
	testCases := []struct {
		name     string
		p, q     map[string]any
		conflict bool
	}{
		{"shared key differs", map[string]any{"a": 1, "b": 2, "c": 3}, map[string]any{"a": 2, "b": 2, "d": 4}, true},
		{"shared keys agree", map[string]any{"a": 1, "b": 2, "c": 3}, map[string]any{"a": 1, "b": 2, "d": 4}, false},
		{"disjoint keys", map[string]any{"a": 1}, map[string]any{"b": 1}, false},
		{"kind mismatch", map[string]any{"a": 1}, map[string]any{"a": "1"}, true},
		{"int and float agree", map[string]any{"a": 1}, map[string]any{"a": 1.0}, false},
		{"bools", map[string]any{"a": true}, map[string]any{"a": false}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := mustGo(t, tc.p)
			q := mustGo(t, tc.q)
			assert.Equal(t, tc.conflict, p.ConflictWith(q))
			assert.Equal(t, tc.conflict, q.ConflictWith(p), "conflict must be symmetric")
		})
	}
}

func TestSet_EqualAndKey(t *testing.T) {
	p := mustGo(t, map[string]any{"a": 1, "b": "x"})
	q := mustGo(t, map[string]any{"b": "x", "a": 1})
	r := mustGo(t, map[string]any{"a": 1})

	assert.True(t, p.Equal(q))
	assert.Equal(t, p.Key(), q.Key())
	assert.Equal(t, p.Hash(), q.Hash())

	assert.False(t, p.Equal(r))
	assert.NotEqual(t, p.Key(), r.Key())

	assert.True(t, New().Equal(nil))
}

func TestSet_KeyTracksMutation(t *testing.T) {
	target := mustGo(t, map[string]any{"a": 1, "b": 2})

	p := New()
	p.Set("a", Int(1))
	p.Set("c", Int(3))
	assert.False(t, p.Equal(target))
	before := p.Hash()

	p.Set("b", Int(2))
	p.Delete("c")

	assert.True(t, p.Equal(target))
	assert.Equal(t, target.Key(), p.Key())
	assert.Equal(t, target.Hash(), p.Hash())
	assert.NotEqual(t, before, p.Hash())
}

func TestSet_KeyDistinguishesKinds(t *testing.T) {
	num := FromMap(map[string]Value{"a": Int(1)})
	str := FromMap(map[string]Value{"a": String("1")})
	assert.NotEqual(t, num.Key(), str.Key())
	assert.Equal(t, num.StringMap(), str.StringMap())
}

func TestSet_KeyEscapesSeparators(t *testing.T) {
	p := FromMap(map[string]Value{"a": String(`x",b="y`)})
	q := FromMap(map[string]Value{"a": String("x"), "b": String("y")})
	assert.NotEqual(t, p.Key(), q.Key())
}

func TestSet_StringMap(t *testing.T) {
	s := FromMap(map[string]Value{
		"n":  Number(0.5),
		"i":  Int(10),
		"f":  Number(2.0),
		"b":  Bool(true),
		"s":  String("adam"),
		"ng": Int(-3),
	})
	assert.Equal(t, map[string]string{
		"n":  "0.5",
		"i":  "10",
		"f":  "2",
		"b":  "true",
		"s":  "adam",
		"ng": "-3",
	}, s.StringMap())
}

func TestSet_DeleteAbsentIsNoop(t *testing.T) {
	s := mustGo(t, map[string]any{"a": 1})
	s.Delete("zzz")
	assert.Equal(t, 1, s.Len())
}

func TestSet_CloneIsIndependent(t *testing.T) {
	s := mustGo(t, map[string]any{"a": 1})
	c := s.Clone()
	c.Set("a", Int(2))
	v, _ := s.Get("a")
	assert.True(t, v.Equal(Int(1)))
}

func TestFromGo_RejectsNested(t *testing.T) {
	_, err := FromGo(map[string]any{"a": []int{1, 2}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `parameter "a"`)
}

func TestFromCty(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		s, err := FromCty(cty.ObjectVal(map[string]cty.Value{
			"lr":  cty.NumberFloatVal(0.1),
			"opt": cty.StringVal("sgd"),
		}))
		require.NoError(t, err)
		assert.Equal(t, []string{"lr", "opt"}, s.Names())
		assert.Equal(t, "{lr=0.1, opt=sgd}", s.String())
	})

	t.Run("empty object", func(t *testing.T) {
		s, err := FromCty(cty.EmptyObjectVal)
		require.NoError(t, err)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("rejects non-object", func(t *testing.T) {
		_, err := FromCty(cty.StringVal("nope"))
		assert.Error(t, err)
	})

	t.Run("rejects nested value", func(t *testing.T) {
		_, err := FromCty(cty.ObjectVal(map[string]cty.Value{
			"xs": cty.ListVal([]cty.Value{cty.NumberIntVal(1)}),
		}))
		assert.Error(t, err)
	})
}

func TestSet_CtyRoundTrip(t *testing.T) {
	s := mustGo(t, map[string]any{"a": 1, "b": "x", "c": false})
	back, err := FromCty(s.Cty())
	require.NoError(t, err)
	assert.True(t, s.Equal(back))
}
