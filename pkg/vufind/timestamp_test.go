package vufind

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseISO8601(t *testing.T) {
	var tests = []struct {
		s   string
		t   time.Time
		err error
	}{
		{"2023-05-01T12:00:00Z", time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC), nil},
		{"2023-05-01T12:00:00.123Z", time.Date(2023, 5, 1, 12, 0, 0, 123000000, time.UTC), nil},
		{"2023-05-01T12:00:00.5Z", time.Date(2023, 5, 1, 12, 0, 0, 500000000, time.UTC), nil},
		{"2023-05-01T14:00:00+02:00", time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC), nil},
		{"2023-05-01T14:00:00+0200", time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC), nil},
		{"2023-05-01T14:00:00+02", time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC), nil},
		{"2023-05-01T12:00:00", time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC), nil},
		{"2023-05-01 12:00:00", time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC), nil},
		{"2023-05-01T12:30", time.Date(2023, 5, 1, 12, 30, 0, 0, time.UTC), nil},
		{"2023-05-01", time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), nil},
		{"20230501T120000Z", time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC), nil},
		{"20230501", time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), nil},
		{"2023-05-01T12:00:00,5Z", time.Date(2023, 5, 1, 12, 0, 0, 500000000, time.UTC), nil},
		{"2023-05-01T12:00:00.123456+05:30", time.Date(2023, 5, 1, 6, 30, 0, 123456000, time.UTC), nil},
		{"2023-05-01T12Z", time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC), nil},
		{"2023-05-01T1200Z", time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC), nil},
		{"2023-05-01T12:00+0200", time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC), nil},
		{"2023-05-01T12:00:00-00:00", time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC), nil},
		{"20230501T12:00:00Z", time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC), nil},
		{"2023-05-01T24:00:00Z", time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC), nil},
		{"2023-12-31T24:00", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil},
		{"2023", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), nil},
		{"2023-05", time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), nil},
		{"2023-W18", time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), nil},
		{"2023-W18-1", time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), nil},
		{"2023W181", time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), nil},
		{"2023-W18-3T08:00Z", time.Date(2023, 5, 3, 8, 0, 0, 0, time.UTC), nil},
		{"2021-W01-1", time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC), nil},
		{"2023-121", time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), nil},
		{"2023121", time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), nil},
		{"2024-366", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), nil},
		{"not-a-date", time.Time{}, ErrInvalidTimestamp},
		{"202305", time.Time{}, ErrInvalidTimestamp},
		{"2023-02-29", time.Time{}, ErrInvalidTimestamp},
		{"2023-366", time.Time{}, ErrInvalidTimestamp},
		{"2023-W54", time.Time{}, ErrInvalidTimestamp},
		{"2023-W18-8", time.Time{}, ErrInvalidTimestamp},
		{"2023-W18T12:00", time.Time{}, ErrInvalidTimestamp},
		{"2023-05T12:00", time.Time{}, ErrInvalidTimestamp},
		{"2023-05-01T", time.Time{}, ErrInvalidTimestamp},
		{"2023-05-01T1", time.Time{}, ErrInvalidTimestamp},
		{"2023-05-01T12:0000", time.Time{}, ErrInvalidTimestamp},
		{"2023-05-01T12.5", time.Time{}, ErrInvalidTimestamp},
		{"2023-05-01T24:30:00Z", time.Time{}, ErrInvalidTimestamp},
		{"2023-05-01T12:60", time.Time{}, ErrInvalidTimestamp},
		{"2023-05-01T12:00:00+24:00", time.Time{}, ErrInvalidTimestamp},
		{"2023-05-01T12:00:00+2", time.Time{}, ErrInvalidTimestamp},
		{"0000-01-01", time.Time{}, ErrInvalidTimestamp},
		{"2023-13-01T12:00:00Z", time.Time{}, ErrInvalidTimestamp},
		{"", time.Time{}, ErrInvalidTimestamp},
	}
	for _, test := range tests {
		got, err := ParseISO8601(test.s)
		assert.Equal(t, test.err, err, test.s)
		assert.True(t, test.t.Equal(got), "%s: got %v, want %v", test.s, got, test.t)
	}
}
