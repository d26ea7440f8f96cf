// Package solr decodes documents stored in a VuFind Solr index, as single
// documents, select responses or line delimited dumps. Fetching them is
// left to the caller.
package solr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/iziplay/vufind-api/pkg/vufind"
)

var ErrNoDocument = errors.New("no document")

// Options control how documents are prepared after decoding.
type Options struct {
	// ExpandFullrecord replaces a fullrecord string holding MARC-in-JSON
	// with the decoded object, so MARC control fields become readable.
	ExpandFullrecord bool
}

// newDecoder keeps numbers as json.Number, _version_ does not fit a float64.
func newDecoder(r io.Reader) *json.Decoder {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec
}

// DecodeDocument reads a single JSON document.
func DecodeDocument(r io.Reader, opts Options) (vufind.Document, error) {
	var doc vufind.Document
	if err := newDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if doc == nil {
		return nil, ErrNoDocument
	}
	return opts.prepare(doc), nil
}

// DecodeResponse reads a Solr select response.
func DecodeResponse(r io.Reader, opts Options) (*Response, error) {
	var resp Response
	if err := newDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	for i, doc := range resp.Result.Docs {
		resp.Result.Docs[i] = opts.prepare(doc)
	}
	return &resp, nil
}

func (o Options) prepare(doc vufind.Document) vufind.Document {
	if !o.ExpandFullrecord || doc == nil {
		return doc
	}
	s, ok := doc["fullrecord"].(string)
	if !ok {
		return doc
	}
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		return doc
	}
	var rec map[string]any
	if err := newDecoder(strings.NewReader(s)).Decode(&rec); err != nil {
		slog.Debug("Keeping undecodable fullrecord", "id", doc["id"], "error", err)
		return doc
	}
	doc["fullrecord"] = rec
	return doc
}
