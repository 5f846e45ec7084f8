// Package workflow implements the annotation workflows on top of the
// queue's records: loading page windows, single submit/discard/draft, and
// the reference-record bulk operations.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alfredjeanlab/labelq/internal/client"
	"github.com/alfredjeanlab/labelq/internal/events"
	"github.com/alfredjeanlab/labelq/internal/model"
)

// Service runs annotation workflows against a backend client and reports
// record-response changes on the event bus.
type Service struct {
	client    client.RecordsClient
	publisher events.Publisher
	logger    *slog.Logger
}

// New creates a workflow service. A nil logger falls back to slog.Default.
func New(c client.RecordsClient, p events.Publisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: c, publisher: p, logger: logger}
}

// BulkFailure is one record's failure within a bulk operation.
type BulkFailure struct {
	RecordID string
	Detail   string
}

// BulkError reports the records that failed in a bulk operation. The
// operation's successful records have already been applied locally when
// this error is returned.
type BulkError struct {
	Failures []BulkFailure
}

func (e *BulkError) Error() string {
	details := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		details = append(details, fmt.Sprintf("%s: %s", f.RecordID, f.Detail))
	}
	return fmt.Sprintf("%d record(s) failed: %s", len(e.Failures), strings.Join(details, "; "))
}

func (e *BulkError) orNil() error {
	if len(e.Failures) == 0 {
		return nil
	}
	return e
}

// Submit submits the record's current answers, updating the existing
// answer when one exists and creating a new one otherwise.
func (s *Service) Submit(ctx context.Context, record *model.Record) error {
	answer, err := s.respond(ctx, record, model.StatusSubmitted)
	if err != nil {
		return err
	}
	record.Submit(answer)
	return nil
}

// Discard discards the record.
func (s *Service) Discard(ctx context.Context, record *model.Record) error {
	answer, err := s.respond(ctx, record, model.StatusDiscarded)
	if err != nil {
		return err
	}
	record.Discard(answer)
	return nil
}

// SaveDraft persists the record's current answers as a draft.
func (s *Service) SaveDraft(ctx context.Context, record *model.Record) error {
	answer, err := s.respond(ctx, record, model.StatusDraft)
	if err != nil {
		return err
	}
	record.SaveDraft(answer)
	return nil
}

// DeleteAnswer deletes the record's persisted answer, returning it to the
// pending state. Records without an answer are left alone.
func (s *Service) DeleteAnswer(ctx context.Context, record *model.Record) error {
	if record.Answer == nil {
		return nil
	}
	if err := s.client.DeleteResponse(ctx, record.Answer.ID); err != nil {
		return err
	}
	record.Answer = nil
	record.Status = model.StatusPending
	return nil
}

// SubmitBulk applies the reference record's answers to every record in the
// batch and submits them in one backend call. Only records the backend
// reports as successful are updated locally; the rest are returned in a
// BulkError. Exactly one response-updated event is published per batch,
// referencing the reference record.
func (s *Service) SubmitBulk(ctx context.Context, records []*model.Record, reference *model.Record) error {
	return s.bulkRespond(ctx, records, reference, model.StatusSubmitted)
}

// DiscardBulk is SubmitBulk's discarding counterpart.
func (s *Service) DiscardBulk(ctx context.Context, records []*model.Record, reference *model.Record) error {
	return s.bulkRespond(ctx, records, reference, model.StatusDiscarded)
}

// SubmitBulkSequential submits records one at a time instead of batching,
// for callers that need strict per-record failure isolation. A failure on
// one record never aborts the rest; failures are collected into a
// BulkError. One event is published after the loop regardless of
// individual outcomes.
func (s *Service) SubmitBulkSequential(ctx context.Context, records []*model.Record, reference *model.Record) error {
	bulkErr := &BulkError{}

	for _, record := range records {
		record.AnswerWith(reference)

		answer, err := s.respond(ctx, record, model.StatusSubmitted)
		if err != nil {
			s.logger.Warn("submitting record", "record_id", record.ID, "error", err)
			bulkErr.Failures = append(bulkErr.Failures, BulkFailure{RecordID: record.ID, Detail: err.Error()})
			continue
		}
		record.Submit(answer)
	}

	s.notifyResponseUpdated(ctx, reference)
	return bulkErr.orNil()
}

func (s *Service) bulkRespond(ctx context.Context, records []*model.Record, reference *model.Record, status model.RecordStatus) error {
	req := &client.BulkRequest{Items: make([]client.BulkRequestItem, 0, len(records))}
	for _, record := range records {
		record.AnswerWith(reference)
		req.Items = append(req.Items, client.BulkRequestItem{
			RecordID: record.ID,
			Status:   status,
			Values:   record.SubmittableValues(),
		})
	}

	// No local mutation happens before the call returns: a slow network
	// delays the whole batch but never partially applies it.
	result, err := s.client.BulkResponses(ctx, req)
	if err != nil {
		return err
	}

	byID := make(map[string]*model.Record, len(records))
	for _, record := range records {
		byID[record.ID] = record
	}

	// Successful items name their record; apply each outcome to the record
	// it identifies, not the record at the same request position.
	applied := make(map[string]bool, len(records))
	var details []string
	for _, item := range result.Items {
		switch {
		case item.Item != nil:
			record := byID[item.Item.RecordID]
			if record == nil {
				continue
			}
			applied[record.ID] = true
			answer := item.Item.Answer
			switch status {
			case model.StatusDiscarded:
				record.Discard(&answer)
			default:
				record.Submit(&answer)
			}
		case item.Error != nil:
			details = append(details, item.Error.Detail)
		}
	}

	// Error items carry no record id on the wire. Every requested record no
	// success item named has failed; pair them with the error details in
	// order.
	bulkErr := &BulkError{}
	for _, record := range records {
		if applied[record.ID] {
			continue
		}
		detail := "no result returned"
		if len(details) > 0 {
			detail, details = details[0], details[1:]
		}
		bulkErr.Failures = append(bulkErr.Failures, BulkFailure{RecordID: record.ID, Detail: detail})
	}

	s.notifyResponseUpdated(ctx, reference)
	return bulkErr.orNil()
}

func (s *Service) notifyResponseUpdated(ctx context.Context, reference *model.Record) {
	event := events.NewRecordResponseUpdated(reference)
	if err := s.publisher.Publish(ctx, events.TopicRecordResponseUpdated, event); err != nil {
		s.logger.Warn("publishing response-updated event", "error", err)
	}
}

func (s *Service) respond(ctx context.Context, record *model.Record, status model.RecordStatus) (*model.Answer, error) {
	req := &client.AnswerRequest{
		Status: status,
		Values: record.SubmittableValues(),
	}
	if record.Answer != nil {
		return s.client.UpdateResponse(ctx, record.Answer.ID, req)
	}
	return s.client.CreateResponse(ctx, record.ID, req)
}
