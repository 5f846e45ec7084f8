package workflow

import (
	"context"

	"github.com/alfredjeanlab/labelq/internal/client"
	"github.com/alfredjeanlab/labelq/internal/model"
	"github.com/alfredjeanlab/labelq/internal/queue"
	"github.com/alfredjeanlab/labelq/internal/search"
)

// Loader fetches page windows decided by the queue and merges the results
// back into it.
type Loader struct {
	client client.RecordsClient
}

// NewLoader creates a loader backed by the given client.
func NewLoader(c client.RecordsClient) *Loader {
	return &Loader{client: c}
}

// Load asks the queue for the next page window under the given criteria,
// compiles and executes the fetch, and appends the hydrated records.
func (l *Loader) Load(ctx context.Context, criteria *model.Criteria, q *queue.Queue) error {
	window := q.GetPageToFind(criteria)

	page, err := l.client.GetRecords(ctx, criteria.DatasetID, search.Compile(criteria, window))
	if err != nil {
		return err
	}

	q.Append(Hydrate(page.Items, window.From))
	q.SetTotal(page.Total)
	return nil
}

// Hydrate converts fetched wire records into queue records. The i-th
// record of a window starting at from sits on page from+i. Questions are
// seeded from the persisted answer's values; full question definitions
// come from the dataset settings, which are the UI's concern.
func Hydrate(items []*client.RecordData, from int) []*model.Record {
	records := make([]*model.Record, 0, len(items))
	for i, item := range items {
		record := &model.Record{
			ID:         item.ID,
			Page:       from + i,
			Status:     item.Status,
			QueryScore: item.QueryScore,
		}
		if len(item.Responses) > 0 {
			answer := item.Responses[0]
			record.Answer = &answer
			for name, value := range answer.Values {
				record.Questions = append(record.Questions, &model.Question{
					Name:   name,
					Answer: &model.QuestionAnswer{Value: value.Value, Valid: true},
				})
			}
		}
		records = append(records, record)
	}
	return records
}
