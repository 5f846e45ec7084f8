// Package queue maintains the in-memory, page-sorted working set of fetched
// records and decides which page window to fetch next as annotation
// progresses.
package queue

import (
	"sort"

	"github.com/alfredjeanlab/labelq/internal/model"
)

// nextRecordsToFetch is the default fetch window depth.
const nextRecordsToFetch = 10

// Pagination describes the next backend fetch: a 1-based starting page and
// a record count.
type Pagination struct {
	From int
	Many int
}

// Queue is the ordered working set of fetched records plus the total count
// reported by the backend. It is always kept sorted ascending by page, and
// no two entries share an id. Queue is not safe for concurrent mutation;
// callers serialize Append and record mutation themselves.
type Queue struct {
	records []*model.Record
	total   int
}

// New builds a queue from an initial batch. The batch is sorted in place.
func New(records []*model.Record, total int) *Queue {
	q := &Queue{records: records, total: total}
	q.arrange()
	return q
}

// Records returns the queue contents in page order.
func (q *Queue) Records() []*model.Record {
	return q.records
}

// Total is the backend-reported number of records matching the committed
// criteria, not the number currently queued.
func (q *Queue) Total() int {
	return q.total
}

// SetTotal updates the backend-reported total after a fetch.
func (q *Queue) SetTotal(total int) {
	q.total = total
}

// HasRecordsToAnnotate reports whether any records are queued.
func (q *Queue) HasRecordsToAnnotate() bool {
	return len(q.records) > 0
}

// ExistsRecordOn reports whether a record is queued for the given page.
func (q *Queue) ExistsRecordOn(page int) bool {
	return q.GetRecordOn(page) != nil
}

// GetRecordOn returns the queued record at the given page, or nil.
func (q *Queue) GetRecordOn(page int) *model.Record {
	for _, r := range q.records {
		if r.Page == page {
			return r
		}
	}
	return nil
}

// GetByID returns the queued record with the given id, or nil.
func (q *Queue) GetByID(id string) *model.Record {
	for _, r := range q.records {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// GetPageToFind decides the next pagination window for the given criteria.
//
// Similarity mode always restarts from page 1 with a window sized to the
// requested result count; there is no incremental queueing against a
// vector-ordered result set.
//
// When the user moves forward past the queued range, the window is pulled
// back by the number of queued records whose status no longer matches the
// filter: those records are about to drop out of the filtered view, so the
// overlapping re-fetch keeps the visible queue depth constant.
func (q *Queue) GetPageToFind(criteria *model.Criteria) Pagination {
	if criteria.IsFilteringBySimilarity() {
		return Pagination{From: 1, Many: criteria.Similarity.Limit}
	}

	currentPage := Pagination{From: criteria.Page, Many: nextRecordsToFetch}

	if !q.HasRecordsToAnnotate() {
		return currentPage
	}

	last := q.records[len(q.records)-1]
	first := q.records[0]

	if criteria.Page > last.Page {
		annotated := q.recordsAnnotated(criteria.Status)
		return Pagination{From: last.Page + 1 - annotated, Many: nextRecordsToFetch}
	}
	if first.Page > criteria.Page {
		return Pagination{From: first.Page - 1, Many: 1}
	}

	return currentPage
}

// Append merges a batch of fetched records into the queue: entries sharing
// an id replace the queued copy, new ones are pushed, and the queue is
// re-sorted by page. Appending the same batch twice is a no-op the second
// time.
func (q *Queue) Append(records []*model.Record) {
	for _, newRecord := range records {
		replaced := false
		for i, existing := range q.records {
			if existing.ID == newRecord.ID {
				q.records[i] = newRecord
				replaced = true
				break
			}
		}
		if !replaced {
			q.records = append(q.records, newRecord)
		}
	}
	q.arrange()
}

func (q *Queue) arrange() {
	sort.SliceStable(q.records, func(i, j int) bool {
		return q.records[i].Page < q.records[j].Page
	})
}

// recordsAnnotated counts queued records whose status differs from the
// active status filter, i.e. records that will vanish from the filtered
// view on the next fetch.
func (q *Queue) recordsAnnotated(status model.RecordStatus) int {
	n := 0
	for _, r := range q.records {
		if r.Status != status {
			n++
		}
	}
	return n
}
