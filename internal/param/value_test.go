package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestValueOf(t *testing.T) {
	testCases := []struct {
		name    string
		in      cty.Value
		kind    Kind
		wantErr bool
	}{
		{"number", cty.NumberIntVal(3), KindNumber, false},
		{"string", cty.StringVal("x"), KindString, false},
		{"bool", cty.True, KindBool, false},
		{"null", cty.NullVal(cty.String), KindInvalid, true},
		{"unknown", cty.UnknownVal(cty.Number), KindInvalid, true},
		{"list", cty.ListValEmpty(cty.String), KindInvalid, true},
		{"nil", cty.NilVal, KindInvalid, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := ValueOf(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.kind, v.Kind())
		})
	}
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, Int(1).Equal(Number(1.0)))
	assert.False(t, Int(1).Equal(String("1")))
	assert.False(t, Bool(true).Equal(Int(1)))
	assert.True(t, Value{}.Equal(Value{}))
	assert.False(t, Value{}.Equal(Int(0)))
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "0.001", Number(0.001).String())
	assert.Equal(t, "false", Bool(false).String())
	assert.Equal(t, "", Value{}.String())
	assert.Equal(t, "number", KindNumber.String())
}
