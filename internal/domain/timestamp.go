package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Timestamp accepts the date shapes clients send for a transaction: RFC 3339,
// a bare YYYY-MM-DD date, Unix milliseconds, or a wrapped server timestamp
// object {"seconds": n, "nanoseconds": n}. JSON null leaves it invalid.
type Timestamp struct {
	Time  time.Time
	Valid bool
	// DateOnly is set when the client sent a bare calendar date
	DateOnly bool
}

const dateLayout = "2006-01-02"

type wrappedTimestamp struct {
	Seconds           *int64 `json:"seconds"`
	Nanoseconds       int64  `json:"nanoseconds"`
	LegacySeconds     *int64 `json:"_seconds"`
	LegacyNanoseconds int64  `json:"_nanoseconds"`
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*t = Timestamp{}

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		parsed, err := ParseDate(s)
		if err != nil {
			return err
		}
		t.Time, t.Valid = parsed, true
		t.DateOnly = len(s) == len(dateLayout)
		return nil
	case '{':
		var w wrappedTimestamp
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		switch {
		case w.Seconds != nil:
			t.Time = time.Unix(*w.Seconds, w.Nanoseconds).UTC()
		case w.LegacySeconds != nil:
			t.Time = time.Unix(*w.LegacySeconds, w.LegacyNanoseconds).UTC()
		default:
			return fmt.Errorf("timestamp object has no seconds field")
		}
		t.Valid = true
		return nil
	default:
		ms, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid timestamp %s", data)
		}
		t.Time, t.Valid = time.UnixMilli(ms).UTC(), true
		return nil
	}
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// Ptr returns the time as a pointer, nil when invalid
func (t Timestamp) Ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// In anchors a bare calendar date to midnight in loc so it keeps its day in
// the workspace's time zone. Full timestamps are returned unchanged.
func (t Timestamp) In(loc *time.Location) Timestamp {
	if !t.Valid || !t.DateOnly || loc == nil {
		return t
	}
	y, m, d := t.Time.Date()
	t.Time = time.Date(y, m, d, 0, 0, 0, 0, loc)
	return t
}

// ParseDate parses RFC 3339 timestamps and bare YYYY-MM-DD dates (as UTC midnight)
func ParseDate(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, nil
	}
	if d, err := time.Parse(dateLayout, s); err == nil {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
