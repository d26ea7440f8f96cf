package vufind

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// layout005 is the MARC 005 transaction date and time, yyyymmddhhmmss.f.
	// The fraction is always a literal ".0".
	layout005 = "20060102150405"
	suffix005 = ".0"
	// layout008 is date entered on file, positions 00-05 of MARC 008.
	layout008 = "060102"

	isoDateTime = "2006-01-02T15:04:05"
	isoDate     = "2006-01-02"
)

// Marc reads control fields from a MARC-in-JSON fullrecord, e.g.
// {"fields": [{"005": "20230501123045.0"}, {"008": "230501s2023..."}]}.
// Missing or malformed data results in absent values, never in errors.
type Marc struct {
	fullrecord any
}

// NewMarc picks the fullrecord of a document, which may be missing.
func NewMarc(doc Document) *Marc {
	m := &Marc{}
	if v, ok := doc["fullrecord"]; ok {
		m.fullrecord = v
	}
	return m
}

// Fields returns the fields list, only if fullrecord is a plain
// map[string]any with a "fields" key. Named map types or strings (binary
// MARC, MARCXML) do not qualify.
func (m *Marc) Fields() ([]any, bool) {
	if m == nil || m.fullrecord == nil {
		return nil, false
	}
	rec, ok := m.fullrecord.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := rec["fields"]
	if !ok {
		return nil, false
	}
	switch fs := v.(type) {
	case []any:
		return fs, true
	case []map[string]any:
		result := make([]any, len(fs))
		for i, f := range fs {
			result[i] = f
		}
		return result, true
	}
	return nil, false
}

// controlField returns the value of the first field carrying tag.
func (m *Marc) controlField(tag string) (string, bool) {
	fields, ok := m.Fields()
	if !ok {
		return "", false
	}
	for _, f := range fields {
		field, ok := f.(map[string]any)
		if !ok {
			continue
		}
		if v, found := field[tag]; found {
			s, ok := v.(string)
			return s, ok
		}
	}
	return "", false
}

// LatestTransaction returns the raw 005 value.
func (m *Marc) LatestTransaction() (string, bool) {
	return m.controlField("005")
}

// LatestTransactionTime parses 005. The result carries no zone information
// and is returned in UTC.
func (m *Marc) LatestTransactionTime() (time.Time, bool) {
	s, ok := m.LatestTransaction()
	if !ok || len(s) != len(layout005)+len(suffix005) || !strings.HasSuffix(s, suffix005) {
		return time.Time{}, false
	}
	t, err := time.Parse(layout005, s[:len(layout005)])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// LatestTransactionISO formats the latest transaction as YYYY-MM-DDThh:mm:ss.
func (m *Marc) LatestTransactionISO() (string, bool) {
	t, ok := m.LatestTransactionTime()
	if !ok {
		return "", false
	}
	return t.Format(isoDateTime), true
}

// DateEntered returns the first six characters of 008, or less, if the
// field is shorter.
func (m *Marc) DateEntered() (string, bool) {
	s, ok := m.controlField("008")
	if !ok {
		return "", false
	}
	if r := []rune(s); len(r) > 6 {
		return string(r[:6]), true
	}
	return s, true
}

// DateEnteredDate parses the yymmdd date entered on file. Two digit years
// 69-99 map to 1969-1999, 00-68 to 2000-2068.
func (m *Marc) DateEnteredDate() (time.Time, bool) {
	s, ok := m.DateEntered()
	if !ok || utf8.RuneCountInString(strings.TrimSpace(s)) != 6 {
		return time.Time{}, false
	}
	t, err := time.Parse(layout008, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DateEnteredISO formats the date entered as YYYY-MM-DD.
func (m *Marc) DateEnteredISO() (string, bool) {
	t, ok := m.DateEnteredDate()
	if !ok {
		return "", false
	}
	return t.Format(isoDate), true
}
