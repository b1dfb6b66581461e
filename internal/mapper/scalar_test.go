package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dsmap/internal/value"
)

func TestScalarMappersNull(t *testing.T) {
	for name, m := range map[string]Mapper{
		"string":  StringMapper{},
		"integer": IntegerMapper{},
		"boolean": BooleanMapper{},
	} {
		t.Run(name, func(t *testing.T) {
			v, err := m.ToStore(nil)
			require.NoError(t, err)
			assert.Equal(t, value.Null{}, v)

			out, err := m.ToModel(value.Null{})
			require.NoError(t, err)
			assert.Nil(t, out)
		})
	}
}

func TestScalarMappersTypedNilPointers(t *testing.T) {
	var s *string
	var n *int64
	var n32 *int32
	var b *bool

	v, err := StringMapper{}.ToStore(s)
	require.NoError(t, err)
	assert.Equal(t, value.Null{}, v)

	v, err = IntegerMapper{}.ToStore(n)
	require.NoError(t, err)
	assert.Equal(t, value.Null{}, v)

	v, err = IntegerMapper{}.ToStore(n32)
	require.NoError(t, err)
	assert.Equal(t, value.Null{}, v)

	v, err = BooleanMapper{}.ToStore(b)
	require.NoError(t, err)
	assert.Equal(t, value.Null{}, v)
}

func TestStringMapperRoundTrip(t *testing.T) {
	m := StringMapper{}

	v, err := m.ToStore("Hello")
	require.NoError(t, err)
	assert.Equal(t, value.String("Hello"), v)

	out, err := m.ToModel(v)
	require.NoError(t, err)
	assert.Equal(t, "Hello", out)
}

func TestIntegerMapperWidths(t *testing.T) {
	m := IntegerMapper{}
	i := 7
	i32 := int32(7)
	i64 := int64(7)

	for _, in := range []any{7, int32(7), int64(7), &i, &i32, &i64} {
		v, err := m.ToStore(in)
		require.NoError(t, err)
		assert.Equal(t, value.Integer(7), v)
	}

	out, err := m.ToModel(value.Integer(7))
	require.NoError(t, err)
	assert.Equal(t, int64(7), out)
}

func TestBooleanMapperRoundTrip(t *testing.T) {
	m := BooleanMapper{}
	b := true

	v, err := m.ToStore(&b)
	require.NoError(t, err)

	out, err := m.ToModel(v)
	require.NoError(t, err)
	assert.Equal(t, true, out)
}

func TestScalarMappersKindMismatch(t *testing.T) {
	tests := []struct {
		name     string
		m        Mapper
		in       value.Value
		expected string
	}{
		{"string from integer", StringMapper{}, value.Integer(1), "expecting StringValue, but found IntegerValue"},
		{"integer from string", IntegerMapper{}, value.String("1"), "expecting IntegerValue, but found StringValue"},
		{"boolean from string", BooleanMapper{}, value.String("true"), "expecting BooleanValue, but found StringValue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.m.ToModel(tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.expected, err.Error())
			assert.True(t, value.IsNarrowError(err))
		})
	}
}

func TestScalarMappersUnsupportedType(t *testing.T) {
	_, err := StringMapper{}.ToStore(1)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = IntegerMapper{}.ToStore(uint(1))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = BooleanMapper{}.ToStore("true")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
