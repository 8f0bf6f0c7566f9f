package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const clockLayout = "15:04:05"

// ClockTime is a time of day with second precision, stored in TIME columns
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

// NewClockTime builds a time of day
func NewClockTime(hour, minute, second int) ClockTime {
	return ClockTime{Hour: hour, Minute: minute, Second: second}
}

// ClockTimeOf returns the time of day of t
func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// ParseClockTime accepts "15:04" or "15:04:05"
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	layout := clockLayout
	if strings.Count(s, ":") == 1 {
		layout = "15:04"
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		// MySQL and PostgreSQL may append fractional seconds
		if i := strings.IndexByte(s, '.'); i > 0 {
			return ParseClockTime(s[:i])
		}
		return ClockTime{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return ClockTimeOf(t), nil
}

func (c ClockTime) seconds() int {
	return c.Hour*3600 + c.Minute*60 + c.Second
}

// Before reports whether c is earlier in the day than other
func (c ClockTime) Before(other ClockTime) bool {
	return c.seconds() < other.seconds()
}

// Sub returns the duration from other to c
func (c ClockTime) Sub(other ClockTime) time.Duration {
	return time.Duration(c.seconds()-other.seconds()) * time.Second
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// Value implements driver.Valuer
func (c ClockTime) Value() (driver.Value, error) {
	return c.String(), nil
}

// Scan implements sql.Scanner for the representations the supported drivers return
func (c *ClockTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*c = ClockTimeOf(v)
		return nil
	case []byte:
		parsed, err := ParseClockTime(string(v))
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case string:
		parsed, err := ParseClockTime(v)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case nil:
		return fmt.Errorf("cannot scan NULL into ClockTime")
	default:
		return fmt.Errorf("cannot scan %T into ClockTime", src)
	}
}

// MarshalText implements encoding.TextMarshaler
func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *ClockTime) UnmarshalText(text []byte) error {
	parsed, err := ParseClockTime(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
