package gateway

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeEnvelope(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare array", `[1,2,3]`, `[1,2,3]`},
		{"flat envelope", `{"data":[1,2,3]}`, `[1,2,3]`},
		{"double envelope", `{"data":{"data":[1,2,3]}}`, `[1,2,3]`},
		{"object payload", `{"data":{"5":[{"id":"a"}]}}`, `{"5":[{"id":"a"}]}`},
		{"no data member", `{"5":[{"id":"a"}]}`, `{"5":[{"id":"a"}]}`},
		{"empty array", `[]`, `[]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := normalizeEnvelope(json.RawMessage(tc.in))
			require.NoError(t, err)
			require.JSONEq(t, tc.want, string(out))
		})
	}
}

func TestNormalizeEnvelopeIdempotent(t *testing.T) {
	once, err := normalizeEnvelope(json.RawMessage(`{"data":{"data":[{"id":"s1"}]}}`))
	require.NoError(t, err)
	twice, err := normalizeEnvelope(once)
	require.NoError(t, err)
	require.JSONEq(t, string(once), string(twice))
}

func TestNormalizeEnvelopeMalformed(t *testing.T) {
	_, err := normalizeEnvelope(json.RawMessage(`{"data":`))
	require.Error(t, err)
}
