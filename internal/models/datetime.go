package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateTimeLayout is the timestamp format used by the collection service for
// created/updated fields.
const DateTimeLayout = "2006-01-02 15:04:05.000Z"

type DateTime struct {
	time.Time
}

func NewDateTime(value time.Time) DateTime {
	return DateTime{Time: value.UTC().Truncate(time.Millisecond)}
}

func ParseDateTime(raw string) (DateTime, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DateTime{}, nil
	}
	for _, layout := range []string{DateTimeLayout, "2006-01-02 15:04:05.999999999Z07:00", time.RFC3339Nano} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return NewDateTime(parsed), nil
		}
	}
	return DateTime{}, fmt.Errorf("invalid datetime %q", raw)
}

func (value DateTime) String() string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(DateTimeLayout)
}

func (value DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(value.String())
}

func (value *DateTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDateTime(raw)
	if err != nil {
		return err
	}
	*value = parsed
	return nil
}

func (value DateTime) Value() (driver.Value, error) {
	return value.UTC(), nil
}

func (value *DateTime) Scan(source any) error {
	switch typed := source.(type) {
	case nil:
		*value = DateTime{}
		return nil
	case time.Time:
		*value = NewDateTime(typed)
		return nil
	case string:
		parsed, err := ParseDateTime(typed)
		if err != nil {
			return err
		}
		*value = parsed
		return nil
	case []byte:
		return value.Scan(string(typed))
	default:
		return fmt.Errorf("unsupported datetime source %T", source)
	}
}
