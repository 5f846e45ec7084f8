package model

// QuestionAnswer holds the in-progress answer for a single question.
// Valid means the answer satisfies the question's constraints; a partially
// valid answer (e.g. an incomplete ranking) may still be worth submitting.
type QuestionAnswer struct {
	Value          any  `json:"value"`
	Valid          bool `json:"valid"`
	PartiallyValid bool `json:"partially_valid"`
}

// IsSubmittable reports whether the answer should be included in a
// submission payload.
func (a *QuestionAnswer) IsSubmittable() bool {
	return a != nil && (a.Valid || a.PartiallyValid)
}

// Question pairs a question name with its current answer.
type Question struct {
	Name   string          `json:"name"`
	Answer *QuestionAnswer `json:"answer,omitempty"`
}

// Record is a unit of annotation work. Page is its 1-based position in the
// dataset's current ordering; the queue keeps records sorted by it.
type Record struct {
	ID         string       `json:"id"`
	Page       int          `json:"page"`
	Status     RecordStatus `json:"status"`
	Answer     *Answer      `json:"answer,omitempty"`
	Questions  []*Question  `json:"questions,omitempty"`
	QueryScore *float64     `json:"query_score,omitempty"`
}

// AnswerWith copies the reference record's question answers onto this
// record, matching questions by name. Questions the reference has not
// answered are left alone.
func (r *Record) AnswerWith(reference *Record) {
	for _, q := range r.Questions {
		ref := reference.questionByName(q.Name)
		if ref == nil || ref.Answer == nil {
			continue
		}
		answer := *ref.Answer
		q.Answer = &answer
	}
}

// Submit records a successful submission.
func (r *Record) Submit(a *Answer) {
	r.Answer = a
	r.Status = StatusSubmitted
}

// Discard records a successful discard.
func (r *Record) Discard(a *Answer) {
	r.Answer = a
	r.Status = StatusDiscarded
}

// SaveDraft records a saved draft response.
func (r *Record) SaveDraft(a *Answer) {
	r.Answer = a
	r.Status = StatusDraft
}

// SubmittableValues collects the values of every valid or partially valid
// question answer, keyed by question name, in the shape the answer
// endpoints expect.
func (r *Record) SubmittableValues() map[string]AnswerValue {
	values := make(map[string]AnswerValue)
	for _, q := range r.Questions {
		if q.Answer.IsSubmittable() {
			values[q.Name] = AnswerValue{Value: q.Answer.Value}
		}
	}
	return values
}

func (r *Record) questionByName(name string) *Question {
	for _, q := range r.Questions {
		if q.Name == name {
			return q
		}
	}
	return nil
}
