// Package vufind gives typed, read-only access to documents stored in a
// VuFind Solr index.
//
// Named accessors such as Author or Title return field values as strings.
// Scalars become a single element list and nested objects or lists inside a
// field are dropped, so an author stored as {"name": ...} is not returned.
// Get and Lookup return the stored value unchanged.
//
// For the Solr schema used by VuFind, see
// https://vufind.org/wiki/development:architecture:solr_index_schema
package vufind

import (
	"sort"
	"strings"
	"time"
)

// DefaultDelimiter is used by Joined when no delimiter is given.
const DefaultDelimiter = "|"

// Document is a stored Solr document, field name to value. Values are
// usually lists of strings, even for single valued fields.
type Document map[string]any

// Record wraps a Document. It never modifies the document it holds.
type Record struct {
	raw    Document
	fields []string
	marc   *Marc
}

// New creates a record accessor for doc. If withMarc is set and doc is not
// empty, the embedded fullrecord is made available through the Marc*
// accessors.
func New(doc Document, withMarc bool) *Record {
	r := &Record{raw: doc, fields: names(doc)}
	if withMarc && len(doc) > 0 {
		r.marc = NewMarc(doc)
	}
	return r
}

func names(doc Document) []string {
	if len(doc) == 0 {
		return []string{}
	}
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Raw returns the wrapped document.
func (r *Record) Raw() Document { return r.raw }

// Fields returns the sorted field names present at construction time.
func (r *Record) Fields() []string { return r.fields }

// Marc returns the MARC accessor, nil unless requested and the document was
// not empty.
func (r *Record) Marc() *Marc { return r.marc }

// Lookup returns the raw value stored under name.
func (r *Record) Lookup(name string) (any, bool) {
	if len(r.raw) == 0 {
		return nil, false
	}
	v, ok := r.raw[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Get returns the raw value stored under name or nil.
func (r *Record) Get(name string) any {
	v, _ := r.Lookup(name)
	return v
}

// Strings returns the value under name as a list of strings. A scalar is
// treated as a single element list. Returns nil, if the field is missing.
func (r *Record) Strings(name string) []string {
	v, ok := r.Lookup(name)
	if !ok {
		return nil
	}
	s, _ := toStrings(v)
	return s
}

// First returns the first value of a field.
func (r *Record) First(name string) (string, bool) {
	s := r.Strings(name)
	if len(s) == 0 {
		return "", false
	}
	return s[0], true
}

// Joined returns all values of a field joined by delim, or by
// DefaultDelimiter if delim is empty.
func (r *Record) Joined(name, delim string) (string, bool) {
	s := r.Strings(name)
	if len(s) == 0 {
		return "", false
	}
	if delim == "" {
		delim = DefaultDelimiter
	}
	return strings.Join(s, delim), true
}

// Named field accessors. Each returns the values of the Solr field of the
// same name as strings, nil if the field is missing. Nested values are left
// out; use Get for the raw value.
func (r *Record) Version() []string         { return r.Strings("_version_") }
func (r *Record) Author() []string          { return r.Strings("author") }
func (r *Record) Building() []string        { return r.Strings("building") }
func (r *Record) ContainerTitle() []string  { return r.Strings("container_title") }
func (r *Record) Ctrlnum() []string         { return r.Strings("ctrlnum") }
func (r *Record) Edition() []string         { return r.Strings("edition") }
func (r *Record) FirstIndexed() []string    { return r.Strings("first_indexed") }
func (r *Record) Format() []string          { return r.Strings("format") }
func (r *Record) Hierarchytype() []string   { return r.Strings("hierarchytype") }
func (r *Record) HierarchyTopID() []string  { return r.Strings("hierarchy_top_id") }
func (r *Record) ID() []string              { return r.Strings("id") }
func (r *Record) Institution() []string     { return r.Strings("institution") }
func (r *Record) IsHierarchyID() []string   { return r.Strings("is_hierarchy_id") }
func (r *Record) ISBN() []string            { return r.Strings("isbn") }
func (r *Record) ISSN() []string            { return r.Strings("issn") }
func (r *Record) Language() []string        { return r.Strings("language") }
func (r *Record) LastIndexed() []string     { return r.Strings("last_indexed") }
func (r *Record) MarcError() []string       { return r.Strings("marc_error") }
func (r *Record) PublishDate() []string     { return r.Strings("publishDate") }
func (r *Record) PublishDateSort() []string { return r.Strings("publishDateSort") }
func (r *Record) Publisher() []string       { return r.Strings("publisher") }
func (r *Record) RecordFormat() []string    { return r.Strings("record_format") }
func (r *Record) Title() []string           { return r.Strings("title") }
func (r *Record) TitleShort() []string      { return r.Strings("title_short") }
func (r *Record) Thumbnail() []string       { return r.Strings("thumbnail") }
func (r *Record) URL() []string             { return r.Strings("url") }

// DOI reads the dynamic field doi_str_mv.
func (r *Record) DOI() []string { return r.Strings("doi_str_mv") }

// HierarchyParentID reads hierarchy_top_id, not hierarchy_parent_id.
// Existing consumers rely on this, check the live schema before changing it.
func (r *Record) HierarchyParentID() []string { return r.Strings("hierarchy_top_id") }

// Recordtype is deprecated in VuFind 6.0 and removed in 7.0, use
// RecordFormat.
func (r *Record) Recordtype() []string { return r.Strings("recordtype") }

// Fullrecord returns the raw fullrecord value, which may be a string or a
// nested MARC-in-JSON object.
func (r *Record) Fullrecord() any { return r.Get("fullrecord") }

// FirstIndexedTime parses the index timestamp. Like LastIndexedTime it reads
// last_indexed; first_indexed is available verbatim via FirstIndexed.
// Returns the zero time if the field is missing and a *ParseError if the
// value is not ISO 8601.
func (r *Record) FirstIndexedTime() (time.Time, error) {
	return r.indexTime("last_indexed")
}

// LastIndexedTime parses last_indexed. Returns the zero time if the field is
// missing and a *ParseError if the value is not ISO 8601.
func (r *Record) LastIndexedTime() (time.Time, error) {
	return r.indexTime("last_indexed")
}

func (r *Record) indexTime(name string) (time.Time, error) {
	s, ok := r.First(name)
	if !ok || s == "" {
		return time.Time{}, nil
	}
	t, err := ParseISO8601(s)
	if err != nil {
		return time.Time{}, &ParseError{Field: name, Value: s, Err: err}
	}
	return t, nil
}

// MarcLatestTransaction returns the raw 005 control field.
func (r *Record) MarcLatestTransaction() (string, bool) {
	if r.marc == nil {
		return "", false
	}
	return r.marc.LatestTransaction()
}

// MarcLatestTransactionTime returns 005 as time, see Marc.LatestTransactionTime.
func (r *Record) MarcLatestTransactionTime() (time.Time, bool) {
	if r.marc == nil {
		return time.Time{}, false
	}
	return r.marc.LatestTransactionTime()
}

// MarcLatestTransactionISO returns 005 formatted as YYYY-MM-DDThh:mm:ss.
func (r *Record) MarcLatestTransactionISO() (string, bool) {
	if r.marc == nil {
		return "", false
	}
	return r.marc.LatestTransactionISO()
}

// MarcDateEntered returns the date entered on file from 008.
func (r *Record) MarcDateEntered() (string, bool) {
	if r.marc == nil {
		return "", false
	}
	return r.marc.DateEntered()
}

// MarcDateEnteredDate returns the 008 date entered as time.
func (r *Record) MarcDateEnteredDate() (time.Time, bool) {
	if r.marc == nil {
		return time.Time{}, false
	}
	return r.marc.DateEnteredDate()
}

// MarcDateEnteredISO returns the 008 date entered formatted as YYYY-MM-DD.
func (r *Record) MarcDateEnteredISO() (string, bool) {
	if r.marc == nil {
		return "", false
	}
	return r.marc.DateEnteredISO()
}
