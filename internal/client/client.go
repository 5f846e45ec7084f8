// Package client provides a transport-agnostic interface to the annotation
// backend and an HTTP/JSON implementation of it.
package client

import (
	"context"

	"github.com/alfredjeanlab/labelq/internal/model"
	"github.com/alfredjeanlab/labelq/internal/search"
)

// RecordsClient is the interface the engine uses to talk to the backend.
// It is implemented by HTTPClient and can be backed by any transport.
type RecordsClient interface {
	// GetRecords fetches one page window, dispatching to the listing or
	// advanced search endpoint depending on the compiled request.
	GetRecords(ctx context.Context, datasetID string, req *search.Request) (*RecordPage, error)

	// GetRecord fetches a single record by id.
	GetRecord(ctx context.Context, recordID string) (*RecordData, error)

	// CreateResponse creates a new answer for a record.
	CreateResponse(ctx context.Context, recordID string, req *AnswerRequest) (*model.Answer, error)

	// UpdateResponse updates an existing answer by its id.
	UpdateResponse(ctx context.Context, responseID string, req *AnswerRequest) (*model.Answer, error)

	// DeleteResponse deletes an existing answer by its id.
	DeleteResponse(ctx context.Context, responseID string) error

	// BulkResponses creates or updates answers for many records in one
	// call, returning per-item success or failure.
	BulkResponses(ctx context.Context, req *BulkRequest) (*BulkResult, error)

	// Lifecycle
	Close() error
}

// RecordData is a record as the backend returns it. QueryScore is only set
// on advanced search results, flattened from the search item wrapper.
type RecordData struct {
	ID          string             `json:"id"`
	Status      model.RecordStatus `json:"status"`
	Fields      map[string]any     `json:"fields,omitempty"`
	Responses   []model.Answer     `json:"responses,omitempty"`
	Suggestions []SuggestionData   `json:"suggestions,omitempty"`
	QueryScore  *float64           `json:"query_score,omitempty"`
}

// SuggestionData is a model-generated suggested answer attached to a record.
type SuggestionData struct {
	ID         string   `json:"id"`
	QuestionID string   `json:"question_id"`
	Value      any      `json:"value"`
	Score      *float64 `json:"score,omitempty"`
	Agent      string   `json:"agent,omitempty"`
}

// RecordPage is one fetched page window plus the backend's total count.
type RecordPage struct {
	Items []*RecordData
	Total int
}

// AnswerRequest is the body of the create/update answer endpoints.
type AnswerRequest struct {
	Status model.RecordStatus           `json:"status"`
	Values map[string]model.AnswerValue `json:"values"`
}

// BulkRequest is the body of the bulk responses endpoint.
type BulkRequest struct {
	Items []BulkRequestItem `json:"items"`
}

// BulkRequestItem is one record's answer within a bulk request.
type BulkRequestItem struct {
	RecordID string                       `json:"record_id"`
	Status   model.RecordStatus           `json:"status"`
	Values   map[string]model.AnswerValue `json:"values"`
}

// BulkResult carries per-item outcomes. Each item has either Item or Error
// set, never both. Successful items identify their record via RecordID;
// error items carry only a detail, so their position is the only link back
// to the request.
type BulkResult struct {
	Items []BulkResultItem `json:"items"`
}

// BulkResultItem is one record's outcome within a bulk result.
type BulkResultItem struct {
	Item  *BulkAnswer    `json:"item"`
	Error *BulkItemError `json:"error"`
}

// BulkAnswer is a persisted answer plus the record it belongs to.
type BulkAnswer struct {
	model.Answer
	RecordID string `json:"record_id"`
}

// BulkItemError describes why one bulk item failed.
type BulkItemError struct {
	Detail string `json:"detail"`
}
