package gateway

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// Timestamp decodes the backend's timestamp formats: RFC3339 and the naive
// isoformat variants emitted for created_at/accepted_at/date fields.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		t.Time = time.Time{}
		return nil
	}
	value, err := strconv.Unquote(string(trimmed))
	if err != nil {
		return fmt.Errorf("gateway: timestamp must be a string: %s", trimmed)
	}
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("gateway: unrecognized timestamp %q", value)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(t.Format("2006-01-02T15:04:05"))), nil
}

// Quantity tolerates the backend's historical habit of emitting quantities
// as numbers, numeric strings or null. Missing and non-numeric values decode
// as zero.
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*q = 0
		return nil
	}
	raw := string(trimmed)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*q = Quantity(n)
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		*q = Quantity(f)
		return nil
	}
	*q = 0
	return nil
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(q))), nil
}
