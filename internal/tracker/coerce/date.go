package coerce

import (
	"math"
	"strings"
	"time"

	"github.com/AlibekovAA/exercise-tracker/internal/common/constants"
)

// maxEpochMillis bounds representable instants to +/-100,000,000 days.
const maxEpochMillis = 8.64e15

var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	constants.DateLayout,
	"Mon Jan 2 2006",
	"Mon Jan 2 2006 15:04:05 GMT-0700",
	"Mon Jan 2 2006 15:04:05",
	time.ANSIC,
	time.UnixDate,
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	"Mon, 2 Jan 2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"1/2/2006",
	"1/2/2006 15:04:05",
	"2006/1/2",
	"2006/1/2 15:04:05",
}

// Date is a coerced instant. Invalid dates keep their raw input.
type Date struct {
	t     time.Time
	valid bool
	raw   string
}

func ValidDate(t time.Time) Date {
	return Date{t: t.UTC(), valid: true}
}

func InvalidDate(raw string) Date {
	return Date{raw: raw}
}

func (d Date) Valid() bool     { return d.valid }
func (d Date) Time() time.Time { return d.t }
func (d Date) Raw() string     { return d.raw }

// Day truncates to UTC midnight of the same calendar date.
func (d Date) Day() Date {
	if !d.valid {
		return d
	}
	y, m, day := d.t.Date()
	return ValidDate(time.Date(y, m, day, 0, 0, 0, 0, time.UTC))
}

// String renders the calendar date as "Fri Jan 05 2024" or "Invalid Date".
func (d Date) String() string {
	if !d.valid {
		return constants.InvalidDate
	}
	return d.t.Format(constants.DateLayout)
}

// OnOrAfter and OnOrBefore are false whenever either side is invalid.
func (d Date) OnOrAfter(other Date) bool {
	return d.valid && other.valid && !d.t.Before(other.t)
}

func (d Date) OnOrBefore(other Date) bool {
	return d.valid && other.valid && !d.t.After(other.t)
}

// ParseDate reads date text in UTC. Unknown forms produce an invalid Date.
func ParseDate(s string) Date {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return InvalidDate(s)
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			return ValidDate(t)
		}
	}
	return InvalidDate(s)
}

// DateFromValue accepts date text, epoch milliseconds and booleans.
func DateFromValue(v any) Date {
	switch t := v.(type) {
	case string:
		return ParseDate(t)
	case float64:
		return dateFromMillis(t)
	case int:
		return dateFromMillis(float64(t))
	case bool:
		if t {
			return dateFromMillis(1)
		}
		return dateFromMillis(0)
	case nil:
		return dateFromMillis(0)
	default:
		return InvalidDate(ToString(v))
	}
}

func dateFromMillis(ms float64) Date {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > maxEpochMillis {
		return InvalidDate(formatNumber(ms))
	}
	return ValidDate(time.UnixMilli(int64(ms)))
}
