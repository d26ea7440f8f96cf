package solr

import "github.com/iziplay/vufind-api/pkg/vufind"

// Response is the JSON envelope of a Solr select request (wt=json).
type Response struct {
	Header ResponseHeader `json:"responseHeader"`
	Result Result         `json:"response"`
}

// ResponseHeader carries the request status
type ResponseHeader struct {
	Status int `json:"status"`
	QTime  int `json:"QTime"`
	Params any `json:"params,omitempty"`
}

// Result holds the matched documents of a select response
type Result struct {
	NumFound      int64             `json:"numFound"`
	Start         int64             `json:"start"`
	NumFoundExact bool              `json:"numFoundExact"`
	Docs          []vufind.Document `json:"docs"`
}

// Records wraps every document of the response into a record accessor.
func (r *Response) Records(withMarc bool) []*vufind.Record {
	records := make([]*vufind.Record, len(r.Result.Docs))
	for i, doc := range r.Result.Docs {
		records[i] = vufind.New(doc, withMarc)
	}
	return records
}
