package datetime

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDateTime = errors.New("invalid date-time")

// Precision is the resolution persisted timestamps are truncated to. BSON dates
// carry milliseconds, so every store keeps the same resolution.
const Precision = time.Millisecond

const dateOnly = "2006-01-02"

// Accepted layouts, tried in order. Layouts without a zone are read as UTC.
var layouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	time.RFC3339,
	time.RFC3339Nano,
	dateOnly,
}

// Parse reads a local date-time ("2024-01-01T00:00:00"), an RFC3339 timestamp or a
// bare date. The result is always UTC.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDateTime)
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q (use 2006-01-02T15:04:05, RFC3339 or 2006-01-02)", ErrInvalidDateTime, s)
}

// Normalize converts t to UTC at the persisted precision.
func Normalize(t time.Time) time.Time {
	return t.UTC().Truncate(Precision)
}

// NormalizePtr is Normalize for optional timestamps.
func NormalizePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	n := Normalize(*t)
	return &n
}

// Time is an optional timestamp that unmarshals from any layout Parse accepts.
type Time struct{ t *time.Time }

func (d *Time) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDateTime, err)
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	parsed, err := Parse(*raw)
	if err != nil {
		return err
	}
	d.t = &parsed
	return nil
}

func (d Time) MarshalJSON() ([]byte, error) {
	if d.t == nil {
		return []byte("null"), nil
	}
	return json.Marshal(d.t.UTC())
}

// Ptr returns the parsed value, nil when absent.
func (d Time) Ptr() *time.Time { return d.t }

// From wraps an optional timestamp.
func From(t *time.Time) Time { return Time{t: t} }
