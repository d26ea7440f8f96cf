package vufind

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTimestamp is wrapped by ParseError when an index timestamp is
// not ISO 8601.
var ErrInvalidTimestamp = errors.New("invalid ISO 8601 timestamp")

// ParseError is returned by the index timestamp accessors for values that
// cannot be parsed.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: cannot parse %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseISO8601 parses an ISO 8601 date or date and time.
//
// The date is YYYY, YYYY-MM, YYYY-MM-DD or YYYYMMDD, a week date
// YYYY-Www[-D] or YYYYWww[D], or an ordinal date YYYY-DDD or YYYYDDD. A time
// may follow after any single separator character, usually T or a space. It
// is hh, hh:mm[:ss[.f]] or hhmm[ss[.f]], optionally followed by Z or an
// offset in the form +hh, +hhmm or +hh:mm. 24:00 is midnight at the end of
// the day. Values without an offset are taken as UTC.
func ParseISO8601(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	date, pos, ok := parseISODate(s)
	if !ok {
		return time.Time{}, ErrInvalidTimestamp
	}
	if pos == len(s) {
		return date, nil
	}
	c, ok := parseISOTime(s[pos+1:])
	if !ok {
		return time.Time{}, ErrInvalidTimestamp
	}
	hour := c.hour
	if hour == 24 {
		hour = 0
	}
	t := time.Date(date.Year(), date.Month(), date.Day(), hour, c.min, c.sec, c.nsec, c.loc)
	if c.hour == 24 {
		t = t.AddDate(0, 0, 1)
	}
	return t, nil
}

type isoClock struct {
	hour, min, sec, nsec int
	loc                  *time.Location
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// digits reads exactly n decimal digits at s[pos:].
func digits(s string, pos, n int) (int, bool) {
	if pos < 0 || len(s)-pos < n {
		return 0, false
	}
	v := 0
	for i := pos; i < pos+n; i++ {
		if !isDigit(s[i]) {
			return 0, false
		}
		v = v*10 + int(s[i]-'0')
	}
	return v, true
}

func parseISODate(s string) (time.Time, int, bool) {
	if t, pos, ok := parseCalendarDate(s); ok {
		return t, pos, true
	}
	return parseWeekOrOrdinalDate(s)
}

func calendarDate(year, month, day int) (time.Time, bool) {
	if year < 1 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// parseCalendarDate reads YYYY, YYYY-MM, YYYY-MM-DD or YYYYMMDD. A basic
// year and month without day is not a valid form.
func parseCalendarDate(s string) (time.Time, int, bool) {
	year, ok := digits(s, 0, 4)
	if !ok {
		return time.Time{}, 0, false
	}
	pos := 4
	if pos == len(s) {
		t, ok := calendarDate(year, 1, 1)
		return t, pos, ok
	}
	extended := s[pos] == '-'
	if extended {
		pos++
	}
	month, ok := digits(s, pos, 2)
	if !ok {
		return time.Time{}, 0, false
	}
	pos += 2
	if pos == len(s) {
		if !extended {
			return time.Time{}, 0, false
		}
		t, ok := calendarDate(year, month, 1)
		return t, pos, ok
	}
	if extended {
		if s[pos] != '-' {
			return time.Time{}, 0, false
		}
		pos++
	}
	day, ok := digits(s, pos, 2)
	if !ok {
		return time.Time{}, 0, false
	}
	t, ok := calendarDate(year, month, day)
	return t, pos + 2, ok
}

// parseWeekOrOrdinalDate reads YYYY-Www[-D], YYYYWww[D], YYYY-DDD or
// YYYYDDD. A week date followed by a time needs its day.
func parseWeekOrOrdinalDate(s string) (time.Time, int, bool) {
	year, ok := digits(s, 0, 4)
	if !ok || year < 1 {
		return time.Time{}, 0, false
	}
	pos := 4
	extended := pos < len(s) && s[pos] == '-'
	if extended {
		pos++
	}

	if pos < len(s) && s[pos] == 'W' {
		pos++
		week, ok := digits(s, pos, 2)
		if !ok || week < 1 || week > 53 {
			return time.Time{}, 0, false
		}
		pos += 2
		day := 1
		if pos < len(s) {
			if (s[pos] == '-') != extended {
				return time.Time{}, 0, false
			}
			if extended {
				pos++
			}
			if day, ok = digits(s, pos, 1); !ok || day < 1 || day > 7 {
				return time.Time{}, 0, false
			}
			pos++
		}
		jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
		monday := jan4.AddDate(0, 0, -((int(jan4.Weekday()) + 6) % 7))
		return monday.AddDate(0, 0, (week-1)*7+day-1), pos, true
	}

	ordinal, ok := digits(s, pos, 3)
	if !ok || ordinal < 1 || ordinal > time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay() {
		return time.Time{}, 0, false
	}
	return time.Date(year, time.January, ordinal, 0, 0, 0, 0, time.UTC), pos + 3, true
}

func isZoneStart(c byte) bool {
	return c == '+' || c == '-' || c == 'Z' || c == 'z'
}

// parseISOTime reads hh[:mm[:ss[.f]]] or hh[mm[ss[.f]]] and an optional
// offset. Colons are used for all components or none.
func parseISOTime(s string) (isoClock, bool) {
	c := isoClock{loc: time.UTC}
	if len(s) < 2 {
		return c, false
	}
	var parts [3]int
	var ok bool
	if parts[0], ok = digits(s, 0, 2); !ok {
		return c, false
	}
	pos, n := 2, 1
	extended := pos < len(s) && s[pos] == ':'
	for n < 3 && pos < len(s) && !isZoneStart(s[pos]) {
		if extended {
			if s[pos] != ':' {
				return c, false
			}
			pos++
		}
		if parts[n], ok = digits(s, pos, 2); !ok {
			return c, false
		}
		pos += 2
		n++
	}
	if n == 3 && pos < len(s) && (s[pos] == '.' || s[pos] == ',') {
		pos++
		start := pos
		for pos < len(s) && isDigit(s[pos]) {
			pos++
		}
		if pos == start {
			return c, false
		}
		frac := s[start:pos]
		if len(frac) > 9 {
			frac = frac[:9]
		}
		c.nsec, _ = digits(frac+strings.Repeat("0", 9-len(frac)), 0, 9)
	}
	if pos < len(s) {
		if !isZoneStart(s[pos]) {
			return c, false
		}
		if c.loc, ok = parseISOZone(s[pos:]); !ok {
			return c, false
		}
	}

	c.hour, c.min, c.sec = parts[0], parts[1], parts[2]
	if c.hour > 24 || c.min > 59 || c.sec > 59 {
		return c, false
	}
	if c.hour == 24 && (c.min != 0 || c.sec != 0 || c.nsec != 0) {
		return c, false
	}
	return c, true
}

// parseISOZone reads Z, +hh, +hhmm or +hh:mm. A zero offset is UTC.
func parseISOZone(s string) (*time.Location, bool) {
	if s == "Z" || s == "z" {
		return time.UTC, true
	}
	if len(s) != 3 && len(s) != 5 && len(s) != 6 {
		return nil, false
	}
	sign := 1
	switch s[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return nil, false
	}
	hours, ok := digits(s, 1, 2)
	if !ok {
		return nil, false
	}
	minutes := 0
	switch len(s) {
	case 5:
		minutes, ok = digits(s, 3, 2)
	case 6:
		if s[3] != ':' {
			return nil, false
		}
		minutes, ok = digits(s, 4, 2)
	}
	if !ok || hours > 23 || minutes > 59 {
		return nil, false
	}
	offset := sign * (hours*3600 + minutes*60)
	if offset == 0 {
		return time.UTC, true
	}
	return time.FixedZone("", offset), true
}
