package events

import (
	"context"

	"github.com/alfredjeanlab/labelq/internal/idgen"
	"github.com/alfredjeanlab/labelq/internal/model"
)

// Event topic constants
const (
	// TopicRecordResponseUpdated signals that a record's response changed.
	// Bulk workflows publish it exactly once per operation, carrying the
	// reference record.
	TopicRecordResponseUpdated = "labelq.record.response_updated"
)

// RecordResponseUpdated is the payload published on
// TopicRecordResponseUpdated.
type RecordResponseUpdated struct {
	EventID string        `json:"event_id,omitempty"`
	Record  *model.Record `json:"record"`
}

// NewRecordResponseUpdated builds the event with a fresh event id. The id
// is best-effort: it stays empty if the random source fails.
func NewRecordResponseUpdated(record *model.Record) RecordResponseUpdated {
	id, err := idgen.Generate()
	if err != nil {
		id = ""
	}
	return RecordResponseUpdated{EventID: id, Record: record}
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
