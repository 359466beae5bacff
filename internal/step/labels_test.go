package step

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFields(t *testing.T) {
	testCases := []struct {
		in   string
		want Labels
	}{
		{"a ab c", Labels{"a", "ab", "c"}},
		{"  a\tb\n  a  ", Labels{"a", "b"}},
		{"", Labels{}},
		{"b a b a", Labels{"b", "a"}},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Fields(tc.in))
		})
	}
}

func TestOf(t *testing.T) {
	assert.Equal(t, Labels{"x", "y"}, Of("x", "y", "x"))
	assert.Equal(t, Labels{}, Of())
}

func TestLabels_Helpers(t *testing.T) {
	l := Fields("c a b")
	assert.True(t, l.Contains("a"))
	assert.False(t, l.Contains("d"))
	assert.Equal(t, []string{"a", "b", "c"}, l.Sorted())
	assert.Equal(t, Labels{"c", "a", "b"}, l, "Sorted must not reorder the receiver")
	assert.Equal(t, "c a b", l.String())
}
