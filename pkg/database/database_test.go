package database

import (
	"testing"
	"time"

	"github.com/iziplay/vufind-api/pkg/vufind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	rec := vufind.New(vufind.Document{
		"id":               "0-1172721416",
		"title":            []any{"Briefwechsel\x00"},
		"author":           []any{"Goethe, Johann Wolfgang von", "", "Schiller, Friedrich"},
		"format":           []any{"Book"},
		"language":         []any{"German"},
		"publisher":        []any{"Reclam"},
		"institution":      []any{"UBL"},
		"publishDate":      []any{"1912"},
		"record_format":    "marc",
		"hierarchy_top_id": []any{"top-1"},
		"isbn":             []any{"978-0-306-40615-7", "0306406152", "broken"},
		"issn":             []any{"0028-0836"},
		"ctrlnum":          []any{"(DE-599)GBV1172721416"},
		"doi_str_mv":       []any{"10.1000/ABC"},
		"last_indexed":     "2023-05-01T12:00:00Z",
		"fullrecord": map[string]any{"fields": []any{
			map[string]any{"005": "20230501123045.0"},
			map[string]any{"008": "230501s1912"},
		}},
	}, true)

	record, identifiers, err := NewRecord(rec)
	require.NoError(t, err)

	assert.Equal(t, "0-1172721416", record.ID)
	assert.Equal(t, "Briefwechsel", record.Title)
	assert.Equal(t, []string{"Goethe, Johann Wolfgang von", "Schiller, Friedrich"}, []string(record.Authors))
	assert.Equal(t, []string{"Book"}, []string(record.Formats))
	assert.Equal(t, "1912", record.PublishDate)
	assert.Equal(t, "marc", record.RecordFormat)
	assert.Equal(t, "top-1", record.HierarchyTop)

	want := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NotNil(t, record.LastIndexed)
	require.NotNil(t, record.FirstIndexed)
	assert.True(t, want.Equal(*record.LastIndexed))
	assert.True(t, want.Equal(*record.FirstIndexed))

	require.NotNil(t, record.MarcLatestTransaction)
	assert.Equal(t, time.Date(2023, 5, 1, 12, 30, 45, 0, time.UTC), *record.MarcLatestTransaction)
	require.NotNil(t, record.MarcDateEntered)
	assert.Equal(t, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), *record.MarcDateEntered)

	assert.Equal(t, []RecordIdentifier{
		{Record: "0-1172721416", Type: IdentifierISBN10, Value: "0306406152"},
		{Record: "0-1172721416", Type: IdentifierISBN13, Value: "9780306406157"},
		{Record: "0-1172721416", Type: IdentifierISSN, Value: "0028-0836"},
		{Record: "0-1172721416", Type: IdentifierCtrlnum, Value: "(DE-599)GBV1172721416"},
		{Record: "0-1172721416", Type: IdentifierDOI, Value: "10.1000/abc"},
	}, identifiers)
}

func TestNewRecordWithoutOptionalData(t *testing.T) {
	record, identifiers, err := NewRecord(vufind.New(vufind.Document{"id": "1"}, true))
	require.NoError(t, err)
	assert.Nil(t, record.LastIndexed)
	assert.Nil(t, record.FirstIndexed)
	assert.Nil(t, record.MarcLatestTransaction)
	assert.Nil(t, record.MarcDateEntered)
	assert.Empty(t, identifiers)
}

func TestNewRecordErrors(t *testing.T) {
	_, _, err := NewRecord(vufind.New(vufind.Document{"title": []any{"x"}}, false))
	assert.ErrorIs(t, err, ErrNoID)

	_, _, err = NewRecord(vufind.New(vufind.Document{"id": "1", "last_indexed": "yesterday"}, false))
	assert.ErrorIs(t, err, vufind.ErrInvalidTimestamp)
}

func TestIndexWindows(t *testing.T) {
	day, month := indexWindows(time.Date(2023, 5, 17, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, time.Date(2023, 5, 17, 0, 0, 0, 0, time.UTC), day)
	assert.Equal(t, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), month)
}
