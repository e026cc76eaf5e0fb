package field

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		"0x1",
		"0xabc",
		"0x" + "1234567890abcdef1234567890abcdef1234567890abcdef1234567890abcd",
		"0x0",
	}
	for _, c := range cases {
		e, err := Parse(c)
		require.NoError(t, err, c)
		assert.Len(t, e.String(), 66)
		assert.Equal(t, e.String(), e.String()[:2]+e.String()[2:])

		e2, err := Parse(e.String())
		require.NoError(t, err)
		assert.True(t, e.Equal(e2))
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse("abc") // missing 0x
	assert.Error(t, err)

	_, err = Parse("0x")
	assert.Error(t, err)

	_, err = Parse("0xzz")
	assert.Error(t, err)

	over := "0x" + make65HexChars()
	_, err = Parse(over)
	assert.Error(t, err)
}

func make65HexChars() string {
	s := make([]byte, 65)
	for i := range s {
		s[i] = 'a'
	}
	return string(s)
}

func TestFromUint64(t *testing.T) {
	e := FromUint64(1)
	assert.True(t, e.Equal(One()))

	e0 := FromUint64(0)
	assert.True(t, e0.Equal(Zero()))
}

func TestCaseInsensitiveEquality(t *testing.T) {
	lower, err := Parse("0xabcdef")
	require.NoError(t, err)
	upper, err := Parse("0xABCDEF")
	require.NoError(t, err)
	assert.True(t, lower.Equal(upper))
	assert.Equal(t, lower.String(), upper.String())
}

func TestJSONRoundTrip(t *testing.T) {
	e := FromUint64(42)
	data, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded Element
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, e.Equal(decoded))
}

func TestFromBytes(t *testing.T) {
	e, err := FromBytes([]byte{0x01, 0x02})
	require.NoError(t, err)
	assert.Equal(t, "0x"+"0000000000000000000000000000000000000000000000000000000000000102", e.String())

	_, err = FromBytes(make([]byte, 33))
	assert.Error(t, err)
}
