package gateway

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQuantityTolerantDecode(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Quantity
	}{
		{"number", `{"q":12}`, 12},
		{"numeric string", `{"q":"34"}`, 34},
		{"float string", `{"q":"7.0"}`, 7},
		{"null", `{"q":null}`, 0},
		{"missing", `{}`, 0},
		{"non numeric", `{"q":"lots"}`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var payload struct {
				Q Quantity `json:"q"`
			}
			require.NoError(t, json.Unmarshal([]byte(tc.in), &payload))
			require.Equal(t, tc.want, payload.Q)
		})
	}
}

func TestTimestampLayouts(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want time.Time
	}{
		{"rfc3339", `"2026-04-12T09:30:00Z"`, time.Date(2026, 4, 12, 9, 30, 0, 0, time.UTC)},
		{"naive micros", `"2026-04-12T09:30:00.123456"`, time.Date(2026, 4, 12, 9, 30, 0, 123456000, time.UTC)},
		{"naive seconds", `"2026-04-12T09:30:00"`, time.Date(2026, 4, 12, 9, 30, 0, 0, time.UTC)},
		{"date only", `"2026-04-12"`, time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tc.in), &ts))
			require.True(t, ts.Equal(tc.want), "got %s, want %s", ts, tc.want)
		})
	}
}

func TestTimestampNullAndInvalid(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	require.True(t, ts.IsZero())

	require.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	require.Error(t, json.Unmarshal([]byte(`42`), &ts))
}

func TestTimestampMarshal(t *testing.T) {
	var zero Timestamp
	out, err := json.Marshal(zero)
	require.NoError(t, err)
	require.Equal(t, "null", string(out))

	ts := Timestamp{Time: time.Date(2026, 4, 12, 9, 30, 0, 0, time.UTC)}
	out, err = json.Marshal(ts)
	require.NoError(t, err)
	require.Equal(t, `"2026-04-12T09:30:00"`, string(out))
}
