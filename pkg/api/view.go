package routing

import (
	"time"

	"github.com/iziplay/vufind-api/pkg/vufind"
)

// MarcView holds the control field values of a record.
type MarcView struct {
	LatestTransaction    string `json:"latestTransaction,omitempty"`
	LatestTransactionISO string `json:"latestTransactionISO,omitempty"`
	DateEntered          string `json:"dateEntered,omitempty"`
	DateEnteredISO       string `json:"dateEnteredISO,omitempty"`
}

// RecordView is the JSON rendering of a parsed VuFind document.
type RecordView struct {
	Fields            []string   `json:"fields"`
	ID                []string   `json:"id,omitempty"`
	Version           []string   `json:"version,omitempty"`
	Author            []string   `json:"author,omitempty"`
	Building          []string   `json:"building,omitempty"`
	ContainerTitle    []string   `json:"containerTitle,omitempty"`
	Ctrlnum           []string   `json:"ctrlnum,omitempty"`
	Edition           []string   `json:"edition,omitempty"`
	Format            []string   `json:"format,omitempty"`
	Hierarchytype     []string   `json:"hierarchytype,omitempty"`
	HierarchyTopID    []string   `json:"hierarchyTopId,omitempty"`
	HierarchyParentID []string   `json:"hierarchyParentId,omitempty"`
	Institution       []string   `json:"institution,omitempty"`
	IsHierarchyID     []string   `json:"isHierarchyId,omitempty"`
	ISBN              []string   `json:"isbn,omitempty"`
	ISSN              []string   `json:"issn,omitempty"`
	Language          []string   `json:"language,omitempty"`
	MarcError         []string   `json:"marcError,omitempty"`
	PublishDate       []string   `json:"publishDate,omitempty"`
	PublishDateSort   []string   `json:"publishDateSort,omitempty"`
	Publisher         []string   `json:"publisher,omitempty"`
	RecordFormat      []string   `json:"recordFormat,omitempty"`
	Recordtype        []string   `json:"recordtype,omitempty"`
	Title             []string   `json:"title,omitempty"`
	TitleShort        []string   `json:"titleShort,omitempty"`
	Thumbnail         []string   `json:"thumbnail,omitempty"`
	URL               []string   `json:"url,omitempty"`
	DOI               []string   `json:"doi,omitempty"`
	FirstIndexed      *time.Time `json:"firstIndexed,omitempty"`
	LastIndexed       *time.Time `json:"lastIndexed,omitempty"`
	Marc              *MarcView  `json:"marc,omitempty"`
}

// NewRecordView renders a record. Index timestamps that cannot be parsed
// are returned as error.
func NewRecordView(rec *vufind.Record) (*RecordView, error) {
	view := &RecordView{
		Fields:            rec.Fields(),
		ID:                rec.ID(),
		Version:           rec.Version(),
		Author:            rec.Author(),
		Building:          rec.Building(),
		ContainerTitle:    rec.ContainerTitle(),
		Ctrlnum:           rec.Ctrlnum(),
		Edition:           rec.Edition(),
		Format:            rec.Format(),
		Hierarchytype:     rec.Hierarchytype(),
		HierarchyTopID:    rec.HierarchyTopID(),
		HierarchyParentID: rec.HierarchyParentID(),
		Institution:       rec.Institution(),
		IsHierarchyID:     rec.IsHierarchyID(),
		ISBN:              rec.ISBN(),
		ISSN:              rec.ISSN(),
		Language:          rec.Language(),
		MarcError:         rec.MarcError(),
		PublishDate:       rec.PublishDate(),
		PublishDateSort:   rec.PublishDateSort(),
		Publisher:         rec.Publisher(),
		RecordFormat:      rec.RecordFormat(),
		Recordtype:        rec.Recordtype(),
		Title:             rec.Title(),
		TitleShort:        rec.TitleShort(),
		Thumbnail:         rec.Thumbnail(),
		URL:               rec.URL(),
		DOI:               rec.DOI(),
	}

	first, err := rec.FirstIndexedTime()
	if err != nil {
		return nil, err
	}
	if !first.IsZero() {
		view.FirstIndexed = &first
	}
	last, err := rec.LastIndexedTime()
	if err != nil {
		return nil, err
	}
	if !last.IsZero() {
		view.LastIndexed = &last
	}

	if rec.Marc() != nil {
		m := &MarcView{}
		m.LatestTransaction, _ = rec.MarcLatestTransaction()
		m.LatestTransactionISO, _ = rec.MarcLatestTransactionISO()
		m.DateEntered, _ = rec.MarcDateEntered()
		m.DateEnteredISO, _ = rec.MarcDateEnteredISO()
		view.Marc = m
	}

	return view, nil
}
