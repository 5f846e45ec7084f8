package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/alfredjeanlab/labelq/internal/client"
	"github.com/alfredjeanlab/labelq/internal/events"
	"github.com/alfredjeanlab/labelq/internal/model"
	"github.com/alfredjeanlab/labelq/internal/search"
)

// fakeClient implements client.RecordsClient with canned behavior.
type fakeClient struct {
	getRecordsFunc     func(datasetID string, req *search.Request) (*client.RecordPage, error)
	createResponseFunc func(recordID string, req *client.AnswerRequest) (*model.Answer, error)
	updateResponseFunc func(responseID string, req *client.AnswerRequest) (*model.Answer, error)
	bulkResponsesFunc  func(req *client.BulkRequest) (*client.BulkResult, error)

	deletedResponseIDs []string
}

func (f *fakeClient) GetRecords(_ context.Context, datasetID string, req *search.Request) (*client.RecordPage, error) {
	return f.getRecordsFunc(datasetID, req)
}

func (f *fakeClient) GetRecord(_ context.Context, recordID string) (*client.RecordData, error) {
	return &client.RecordData{ID: recordID, Status: model.StatusPending}, nil
}

func (f *fakeClient) CreateResponse(_ context.Context, recordID string, req *client.AnswerRequest) (*model.Answer, error) {
	return f.createResponseFunc(recordID, req)
}

func (f *fakeClient) UpdateResponse(_ context.Context, responseID string, req *client.AnswerRequest) (*model.Answer, error) {
	return f.updateResponseFunc(responseID, req)
}

func (f *fakeClient) DeleteResponse(_ context.Context, responseID string) error {
	f.deletedResponseIDs = append(f.deletedResponseIDs, responseID)
	return nil
}

func (f *fakeClient) BulkResponses(_ context.Context, req *client.BulkRequest) (*client.BulkResult, error) {
	return f.bulkResponsesFunc(req)
}

func (f *fakeClient) Close() error { return nil }

// capturePublisher records every published event.
type capturePublisher struct {
	topics []string
	events []any
}

func (p *capturePublisher) Publish(_ context.Context, topic string, event any) error {
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func answeredRecord(id string) *model.Record {
	return &model.Record{
		ID:     id,
		Status: model.StatusPending,
		Questions: []*model.Question{
			{Name: "quality", Answer: &model.QuestionAnswer{Value: 5, Valid: true}},
		},
	}
}

func TestService_Submit_CreatesWhenNoAnswer(t *testing.T) {
	var gotRecordID string
	fc := &fakeClient{
		createResponseFunc: func(recordID string, req *client.AnswerRequest) (*model.Answer, error) {
			gotRecordID = recordID
			if req.Status != model.StatusSubmitted {
				t.Errorf("request status = %q, want submitted", req.Status)
			}
			if _, ok := req.Values["quality"]; !ok {
				t.Error("request must carry the valid answer values")
			}
			return &model.Answer{ID: "ans-1", Status: model.StatusSubmitted}, nil
		},
	}
	s := New(fc, &capturePublisher{}, nil)

	record := answeredRecord("rec-1")
	if err := s.Submit(context.Background(), record); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if gotRecordID != "rec-1" {
		t.Errorf("created response for %q, want rec-1", gotRecordID)
	}
	if record.Status != model.StatusSubmitted || record.Answer == nil {
		t.Errorf("record after submit = %+v", record)
	}
}

func TestService_Submit_UpdatesWhenAnswerExists(t *testing.T) {
	var gotResponseID string
	fc := &fakeClient{
		updateResponseFunc: func(responseID string, req *client.AnswerRequest) (*model.Answer, error) {
			gotResponseID = responseID
			return &model.Answer{ID: responseID, Status: model.StatusSubmitted}, nil
		},
	}
	s := New(fc, &capturePublisher{}, nil)

	record := answeredRecord("rec-1")
	record.Answer = &model.Answer{ID: "ans-9", Status: model.StatusDraft}

	if err := s.Submit(context.Background(), record); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if gotResponseID != "ans-9" {
		t.Errorf("updated response %q, want ans-9", gotResponseID)
	}
}

func TestService_SaveDraft(t *testing.T) {
	fc := &fakeClient{
		createResponseFunc: func(recordID string, req *client.AnswerRequest) (*model.Answer, error) {
			if req.Status != model.StatusDraft {
				t.Errorf("request status = %q, want draft", req.Status)
			}
			return &model.Answer{ID: "ans-1", Status: model.StatusDraft}, nil
		},
	}
	s := New(fc, &capturePublisher{}, nil)

	record := answeredRecord("rec-1")
	if err := s.SaveDraft(context.Background(), record); err != nil {
		t.Fatalf("SaveDraft() error = %v", err)
	}
	if record.Status != model.StatusDraft {
		t.Errorf("record status = %q, want draft", record.Status)
	}
}

func TestService_DeleteAnswer(t *testing.T) {
	fc := &fakeClient{}
	s := New(fc, &capturePublisher{}, nil)

	record := answeredRecord("rec-1")
	record.Answer = &model.Answer{ID: "ans-1", Status: model.StatusSubmitted}
	record.Status = model.StatusSubmitted

	if err := s.DeleteAnswer(context.Background(), record); err != nil {
		t.Fatalf("DeleteAnswer() error = %v", err)
	}
	if len(fc.deletedResponseIDs) != 1 || fc.deletedResponseIDs[0] != "ans-1" {
		t.Errorf("deleted = %v, want [ans-1]", fc.deletedResponseIDs)
	}
	if record.Answer != nil || record.Status != model.StatusPending {
		t.Errorf("record after delete = %+v", record)
	}

	// Records without an answer are left alone.
	bare := answeredRecord("rec-2")
	if err := s.DeleteAnswer(context.Background(), bare); err != nil {
		t.Fatalf("DeleteAnswer() on bare record error = %v", err)
	}
	if len(fc.deletedResponseIDs) != 1 {
		t.Error("no delete call expected for a record without an answer")
	}
}

func TestService_DiscardBulk_PartialSuccess(t *testing.T) {
	fc := &fakeClient{
		bulkResponsesFunc: func(req *client.BulkRequest) (*client.BulkResult, error) {
			if len(req.Items) != 2 {
				t.Fatalf("bulk request items = %d, want 2", len(req.Items))
			}
			return &client.BulkResult{Items: []client.BulkResultItem{
				{Item: &client.BulkAnswer{
					Answer:   model.Answer{ID: "ans-a", Status: model.StatusDiscarded},
					RecordID: "rec-a",
				}},
				{Error: &client.BulkItemError{Detail: "operation not allowed"}},
			}}, nil
		},
	}
	pub := &capturePublisher{}
	s := New(fc, pub, nil)

	reference := answeredRecord("ref")
	recordA := answeredRecord("rec-a")
	recordB := answeredRecord("rec-b")

	err := s.DiscardBulk(context.Background(), []*model.Record{recordA, recordB}, reference)

	var bulkErr *BulkError
	if !errors.As(err, &bulkErr) {
		t.Fatalf("error = %v, want *BulkError", err)
	}
	if len(bulkErr.Failures) != 1 || bulkErr.Failures[0].RecordID != "rec-b" {
		t.Errorf("failures = %+v", bulkErr.Failures)
	}

	if recordA.Status != model.StatusDiscarded || recordA.Answer == nil {
		t.Errorf("record A = %+v, want discarded", recordA)
	}
	if recordB.Status != model.StatusPending || recordB.Answer != nil {
		t.Errorf("record B = %+v, want unchanged", recordB)
	}

	// Exactly one event, referencing the reference record.
	if len(pub.topics) != 1 || pub.topics[0] != events.TopicRecordResponseUpdated {
		t.Fatalf("published topics = %v", pub.topics)
	}
	event := pub.events[0].(events.RecordResponseUpdated)
	if event.Record != reference {
		t.Error("event must reference the passed reference record")
	}
}

func TestService_DiscardBulk_ReorderedResults(t *testing.T) {
	// The backend may return success items in any order; outcomes must be
	// applied to the record the item names, not the record at the same
	// request position.
	fc := &fakeClient{
		bulkResponsesFunc: func(req *client.BulkRequest) (*client.BulkResult, error) {
			if req.Items[0].RecordID != "rec-a" || req.Items[1].RecordID != "rec-b" {
				t.Fatalf("request order = %+v", req.Items)
			}
			return &client.BulkResult{Items: []client.BulkResultItem{
				{Item: &client.BulkAnswer{
					Answer:   model.Answer{ID: "ans-b", Status: model.StatusDiscarded},
					RecordID: "rec-b",
				}},
				{Error: &client.BulkItemError{Detail: "operation not allowed"}},
			}}, nil
		},
	}
	s := New(fc, &capturePublisher{}, nil)

	recordA := answeredRecord("rec-a")
	recordB := answeredRecord("rec-b")

	err := s.DiscardBulk(context.Background(), []*model.Record{recordA, recordB}, answeredRecord("ref"))

	var bulkErr *BulkError
	if !errors.As(err, &bulkErr) {
		t.Fatalf("error = %v, want *BulkError", err)
	}

	if recordB.Status != model.StatusDiscarded || recordB.Answer == nil || recordB.Answer.ID != "ans-b" {
		t.Errorf("record B = %+v, want discarded with ans-b", recordB)
	}
	if recordA.Status != model.StatusPending || recordA.Answer != nil {
		t.Errorf("record A = %+v, want untouched", recordA)
	}
	// rec-a is the record no success item named, so the failure is its.
	if len(bulkErr.Failures) != 1 || bulkErr.Failures[0].RecordID != "rec-a" {
		t.Errorf("failures = %+v", bulkErr.Failures)
	}
	if bulkErr.Failures[0].Detail != "operation not allowed" {
		t.Errorf("failure detail = %q", bulkErr.Failures[0].Detail)
	}
}

func TestService_DiscardBulk_UnmatchedItems(t *testing.T) {
	// Items naming unknown records, and items with neither side set, never
	// mutate a requested record; a record no success item named is reported
	// as failed.
	fc := &fakeClient{
		bulkResponsesFunc: func(req *client.BulkRequest) (*client.BulkResult, error) {
			return &client.BulkResult{Items: []client.BulkResultItem{
				{},
				{Item: &client.BulkAnswer{
					Answer:   model.Answer{ID: "ans-x", Status: model.StatusDiscarded},
					RecordID: "rec-unknown",
				}},
			}}, nil
		},
	}
	s := New(fc, &capturePublisher{}, nil)

	record := answeredRecord("rec-a")
	err := s.DiscardBulk(context.Background(), []*model.Record{record}, answeredRecord("ref"))

	var bulkErr *BulkError
	if !errors.As(err, &bulkErr) || len(bulkErr.Failures) != 1 || bulkErr.Failures[0].RecordID != "rec-a" {
		t.Fatalf("error = %v, want a failure for rec-a", err)
	}
	if record.Status != model.StatusPending || record.Answer != nil {
		t.Errorf("record = %+v, want untouched", record)
	}
}

func TestService_DiscardBulk_AnswersWithReference(t *testing.T) {
	var gotValues map[string]model.AnswerValue
	fc := &fakeClient{
		bulkResponsesFunc: func(req *client.BulkRequest) (*client.BulkResult, error) {
			gotValues = req.Items[0].Values
			return &client.BulkResult{Items: []client.BulkResultItem{
				{Item: &client.BulkAnswer{Answer: model.Answer{ID: "ans-a", Status: model.StatusDiscarded}, RecordID: "rec-a"}},
			}}, nil
		},
	}
	s := New(fc, &capturePublisher{}, nil)

	reference := &model.Record{
		ID: "ref",
		Questions: []*model.Question{
			{Name: "quality", Answer: &model.QuestionAnswer{Value: 9, Valid: true}},
		},
	}
	record := &model.Record{ID: "rec-a", Questions: []*model.Question{{Name: "quality"}}}

	if err := s.DiscardBulk(context.Background(), []*model.Record{record}, reference); err != nil {
		t.Fatalf("DiscardBulk() error = %v", err)
	}
	if gotValues["quality"].Value != 9 {
		t.Errorf("submitted values = %v, want the reference's answer", gotValues)
	}
}

func TestService_DiscardBulk_TransportFailureMutatesNothing(t *testing.T) {
	fc := &fakeClient{
		bulkResponsesFunc: func(req *client.BulkRequest) (*client.BulkResult, error) {
			return nil, errors.New("network down")
		},
	}
	pub := &capturePublisher{}
	s := New(fc, pub, nil)

	record := answeredRecord("rec-a")
	err := s.DiscardBulk(context.Background(), []*model.Record{record}, answeredRecord("ref"))

	if err == nil {
		t.Fatal("expected a transport error")
	}
	if record.Status != model.StatusPending {
		t.Error("no record may change when the batch call fails outright")
	}
	if len(pub.topics) != 0 {
		t.Error("no event may be published when the batch call fails outright")
	}
}

func TestService_SubmitBulkSequential_FailureIsolation(t *testing.T) {
	calls := 0
	fc := &fakeClient{
		createResponseFunc: func(recordID string, req *client.AnswerRequest) (*model.Answer, error) {
			calls++
			if recordID == "rec-a" {
				return nil, errors.New("boom")
			}
			return &model.Answer{ID: "ans-" + recordID, Status: model.StatusSubmitted}, nil
		},
	}
	pub := &capturePublisher{}
	s := New(fc, pub, nil)

	reference := answeredRecord("ref")
	recordA := answeredRecord("rec-a")
	recordB := answeredRecord("rec-b")

	err := s.SubmitBulkSequential(context.Background(), []*model.Record{recordA, recordB}, reference)

	if calls != 2 {
		t.Errorf("client calls = %d, want 2 (failure must not abort the loop)", calls)
	}

	var bulkErr *BulkError
	if !errors.As(err, &bulkErr) || len(bulkErr.Failures) != 1 {
		t.Fatalf("error = %v, want one collected failure", err)
	}
	if bulkErr.Failures[0].RecordID != "rec-a" {
		t.Errorf("failure = %+v", bulkErr.Failures[0])
	}

	if recordA.Status != model.StatusPending {
		t.Error("failed record must be left as-is")
	}
	if recordB.Status != model.StatusSubmitted {
		t.Error("succeeding record must be submitted")
	}
	if len(pub.topics) != 1 {
		t.Errorf("published %d events, want exactly 1", len(pub.topics))
	}
}
