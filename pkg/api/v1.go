package routing

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/danielgtaylor/huma/v2"
	"github.com/iziplay/vufind-api/pkg/database"
	"github.com/iziplay/vufind-api/pkg/solr"
	"github.com/iziplay/vufind-api/pkg/sync"
	"github.com/iziplay/vufind-api/pkg/vufind"
	"gorm.io/gorm"
)

type StatsOutput struct {
	Body database.CachedStats
}

type PlainOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

type SyncStatsOutput struct {
	Body sync.SyncStats
}

type ParseRecordInput struct {
	Marc    bool   `query:"marc" default:"true" doc:"Read MARC control fields from fullrecord"`
	Expand  bool   `query:"expand" default:"false" doc:"Decode a fullrecord holding a MARC-in-JSON string"`
	RawBody []byte `contentType:"application/json"`
}

type RecordViewOutput struct {
	Body *RecordView
}

type GetRecordInput struct {
	ID string `path:"id" doc:"VuFind record id"`
}

type RecordOutput struct {
	Body *database.Record
}

type SearchByISBNInput struct {
	ISBN   string `query:"isbn" required:"true" doc:"ISBN10 or ISBN13 code to search for"`
	Limit  int    `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Maximum number of results"`
	Offset int    `query:"offset" default:"0" minimum:"0" doc:"Offset for pagination"`
}

type SearchByTextInput struct {
	Title     string `query:"title" doc:"Filter by title (case-insensitive)"`
	Author    string `query:"author" doc:"Filter by author (case-insensitive)"`
	Publisher string `query:"publisher" doc:"Filter by publisher (case-insensitive)"`
	Limit     int    `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Maximum number of results"`
	Offset    int    `query:"offset" default:"0" minimum:"0" doc:"Offset for pagination"`
}

type SearchOutput struct {
	Body struct {
		Total   int64             `json:"total"`
		Results []database.Record `json:"results"`
	}
}

type SyncOutput struct {
	Body struct {
		Message string `json:"message"`
		Path    string `json:"path"`
	}
}

func Setup(api huma.API) {
	api.UseMiddleware(authMiddleware(api))

	huma.Register(api, huma.Operation{
		OperationID: "HealthCheck",
		Method:      "GET",
		Path:        "/healthz",
		Summary:     "Health check",
		Description: "Check if the API is running",
		Tags:        []string{"Health"},
	}, func(ctx context.Context, input *struct{}) (*PlainOutput, error) {
		return &PlainOutput{
			ContentType: "text/plain",
			Body:        []byte("OK"),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "ParseRecord",
		Method:      "POST",
		Path:        "/v1/records/parse",
		Summary:     "Parse a record",
		Description: "Parse a stored VuFind Solr document and return its fields, index timestamps and MARC dates",
		Tags:        []string{"Records"},
	}, func(ctx context.Context, input *ParseRecordInput) (*RecordViewOutput, error) {
		doc, err := solr.DecodeDocument(bytes.NewReader(input.RawBody), solr.Options{ExpandFullrecord: input.Expand || sync.Options.ExpandFullrecord})
		if err != nil {
			return nil, huma.Error400BadRequest("invalid document", err)
		}
		view, err := NewRecordView(vufind.New(doc, input.Marc))
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("invalid index timestamp", err)
		}
		return &RecordViewOutput{Body: view}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "GetRecord",
		Method:      "GET",
		Path:        "/v1/records/{id}",
		Summary:     "Get a record",
		Description: "Get a synchronized record by its VuFind id",
		Tags:        []string{"Records"},
	}, func(ctx context.Context, input *GetRecordInput) (*RecordOutput, error) {
		record, err := database.GetRecord(ctx, input.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("record not found")
		}
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to get record", err)
		}
		return &RecordOutput{Body: record}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "GetStatistics",
		Method:      "GET",
		Path:        "/v1/statistics",
		Summary:     "Get statistics",
		Description: "Get statistics about current data set",
		Tags:        []string{"Statistics"},
	}, func(ctx context.Context, input *struct{}) (*StatsOutput, error) {
		stats := database.GetCachedStats()
		if stats == nil {
			go database.ComputeAndCacheStats(false)
			return nil, huma.Error503ServiceUnavailable("sync in progress or stats are being computed, please retry later")
		}
		return &StatsOutput{
			Body: *stats,
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "GetSyncStatistics",
		Method:      "GET",
		Path:        "/v1/statistics/sync",
		Summary:     "Get sync statistics",
		Description: "Get current sync progress and statistics",
		Tags:        []string{"Statistics"},
	}, func(ctx context.Context, input *struct{}) (*SyncStatsOutput, error) {
		resp := &SyncStatsOutput{}
		resp.Body = sync.GetStats()
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "SearchByISBN",
		Method:      "GET",
		Path:        "/v1/search/isbn",
		Summary:     "Search by ISBN",
		Description: "Search for records matching an ISBN10 or ISBN13 code",
		Tags:        []string{"Search"},
	}, func(ctx context.Context, input *SearchByISBNInput) (*SearchOutput, error) {
		records, total, err := database.SearchByISBN(ctx, input.ISBN, input.Limit, input.Offset)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to search by ISBN", err)
		}
		resp := &SearchOutput{}
		resp.Body.Total = total
		resp.Body.Results = records
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "SearchByText",
		Method:      "GET",
		Path:        "/v1/search/text",
		Summary:     "Search by text",
		Description: "Search for records by title, author, and publisher",
		Tags:        []string{"Search"},
	}, func(ctx context.Context, input *SearchByTextInput) (*SearchOutput, error) {
		if input.Title == "" && input.Author == "" && input.Publisher == "" {
			return nil, huma.Error400BadRequest("at least one of title, author or publisher is required")
		}
		records, total, err := database.SearchByText(ctx, input.Title, input.Author, input.Publisher, input.Limit, input.Offset)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to search by text", err)
		}
		resp := &SearchOutput{}
		resp.Body.Total = total
		resp.Body.Results = records
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "StartSync",
		Method:        "POST",
		Path:          "/v1/sync",
		Summary:       "Start a sync",
		Description:   "Ingest the configured VuFind dump in the background",
		Tags:          []string{"Sync"},
		DefaultStatus: http.StatusAccepted,
		Security:      []map[string][]string{{"bearerAuth": {}}},
	}, func(ctx context.Context, input *struct{}) (*SyncOutput, error) {
		path := os.Getenv("VUFIND_DUMP_PATH")
		if path == "" {
			return nil, huma.Error503ServiceUnavailable("no dump configured, set VUFIND_DUMP_PATH")
		}
		if sync.IsRunning() {
			return nil, huma.Error409Conflict(sync.ErrSyncInProgress.Error())
		}
		go func() {
			if err := sync.Sync(context.Background(), path); err != nil {
				slog.Error("Sync failed", "error", err)
			}
		}()
		resp := &SyncOutput{}
		resp.Body.Message = "sync started"
		resp.Body.Path = path
		return resp, nil
	})
}
