package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_Unmarshal(t *testing.T) {
	want := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	tests := []struct {
		name  string
		input string
	}{
		{"sqlite", `"2025-03-01 12:30:00"`},
		{"iso without zone", `"2025-03-01T12:30:00"`},
		{"rfc3339", `"2025-03-01T12:30:00Z"`},
		{"rfc3339 offset", `"2025-03-01T14:30:00+02:00"`},
		{"microseconds", `"2025-03-01 12:30:00.000000"`},
		{"unix seconds", `1740832200`},
		{"unix milliseconds", `1740832200000`},
		{"fractional seconds", `1740832200.0`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.input), &ts))
			assert.True(t, want.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestTimestamp_Null(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())
}

func TestTimestamp_Rejects(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`true`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`1e20`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`-1e20`), &ts))
}

func TestTimestamp_SubSecond(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`1740832200500`), &ts))
	assert.Equal(t, 500*time.Millisecond, time.Duration(ts.Nanosecond()))
}
