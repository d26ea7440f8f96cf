package database

import (
	"time"

	"github.com/lib/pq"
)

type Model struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Record struct {
	Model

	ID           string         `json:"id" gorm:"primaryKey"`
	Title        string         `json:"title"`
	Authors      pq.StringArray `json:"authors" gorm:"type:text[]"`
	Formats      pq.StringArray `json:"formats" gorm:"type:text[]"`
	Languages    pq.StringArray `json:"languages" gorm:"type:text[]"`
	Publishers   pq.StringArray `json:"publishers" gorm:"type:text[]"`
	Institutions pq.StringArray `json:"institutions" gorm:"type:text[]"`
	PublishDate  string         `json:"publishDate"`
	RecordFormat string         `json:"recordFormat"`
	HierarchyTop string         `json:"hierarchyTop,omitempty" gorm:"index"`

	FirstIndexed *time.Time `json:"firstIndexed,omitempty" gorm:"type:timestamptz"`
	LastIndexed  *time.Time `json:"lastIndexed,omitempty" gorm:"type:timestamptz;index"`

	MarcLatestTransaction *time.Time `json:"marcLatestTransaction,omitempty" gorm:"type:timestamp"`
	MarcDateEntered       *time.Time `json:"marcDateEntered,omitempty" gorm:"type:date"`

	Identifiers []RecordIdentifier `json:"identifiers" gorm:"foreignKey:Record;references:ID"`
}

// Identifier types stored in RecordIdentifier.Type
const (
	IdentifierISBN10  = "isbn10"
	IdentifierISBN13  = "isbn13"
	IdentifierISSN    = "issn"
	IdentifierCtrlnum = "ctrlnum"
	IdentifierDOI     = "doi"
)

type RecordIdentifier struct {
	Model

	Record string `json:"record" gorm:"primaryKey"`
	Type   string `json:"type" gorm:"primaryKey;index:idx_record_identifier_type;index:idx_record_identifier_type_value"`
	Value  string `json:"value" gorm:"primaryKey;index:idx_record_identifier_type_value"`
}

type Synchronization struct {
	Date     time.Time `gorm:"primaryKey;type:timestamptz"`
	Base     string    // fingerprint of the dump used for this sync, e.g.: "biblio.ndjson.gz:52428800:1714557600"
	Count    int
	Skipped  int
	Complete bool
}
