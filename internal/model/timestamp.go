package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Timestamp decodes the instant formats the backend emits: RFC3339 strings,
// SQLite "YYYY-MM-DD HH:MM:SS" strings (UTC) and unix seconds or milliseconds.
type Timestamp struct {
	time.Time
}

// epochMillisThreshold separates unix seconds from milliseconds: 1e11 seconds
// is past the year 5000, while 1e11 milliseconds is in 1973.
const epochMillisThreshold = 1e11

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.000000",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if len(data) > 0 && data[0] != '"' {
		var secs json.Number
		if err := json.Unmarshal(data, &secs); err != nil {
			return fmt.Errorf("decode timestamp: %w", err)
		}
		f, err := secs.Float64()
		if err != nil {
			return fmt.Errorf("decode timestamp: %w", err)
		}
		if math.Abs(f) >= epochMillisThreshold {
			f /= 1000
		}
		if math.Abs(f) >= epochMillisThreshold {
			return fmt.Errorf("decode timestamp: %s out of range", secs)
		}
		sec, frac := math.Modf(f)
		t.Time = time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode timestamp: %w", err)
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("decode timestamp: unrecognised format %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339))
}
