package validate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidSlug(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"widgets", true},
		{"a", true},
		{"my-api-2", true},
		{"0-0", true},
		{"---", true},
		{"", false},
		{"My_Slug", false},
		{"UPPER", false},
		{"has space", false},
		{"trailing ", false},
		{"café", false},
		{"a/b", false},
		{"a.b", false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ValidSlug(tc.in), "slug %q", tc.in)
	}
}

func TestJSONValue(t *testing.T) {
	// valid values of every JSON kind parse and report ok
	for _, s := range []string{`{"a":1}`, `[1,2,3]`, `"str"`, `42`, `-1.5e3`, `true`, `null`} {
		raw, ok := JSONValue(s)
		require.True(t, ok, "input %q", s)
		require.NotNil(t, raw)
	}

	// malformed input yields the sentinel, never a panic or error
	for _, s := range []string{``, `{`, `{"a":}`, `[1,2,`, `'single'`, `{a:1}`, `undefined`} {
		raw, ok := JSONValue(s)
		require.False(t, ok, "input %q", s)
		require.Nil(t, raw)
	}
}

func TestJSONValueRoundTrip(t *testing.T) {
	// for any JSON-representable value, marshal -> JSONValue -> unmarshal
	// reproduces a deep-equal value
	values := []interface{}{
		map[string]interface{}{"a": float64(1), "b": []interface{}{"x", true, nil}},
		[]interface{}{float64(1), float64(2)},
		"plain string",
		float64(3.14),
		true,
		nil,
	}
	for _, v := range values {
		b, err := json.Marshal(v)
		require.NoError(t, err)

		raw, ok := JSONValue(string(b))
		require.True(t, ok)

		var back interface{}
		require.NoError(t, json.Unmarshal(raw, &back))
		require.Equal(t, v, back)
	}
}
