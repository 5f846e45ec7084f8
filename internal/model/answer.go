package model

// AnswerValue wraps a single question's answered value on the wire.
type AnswerValue struct {
	Value any `json:"value"`
}

// Answer is a persisted response to a record's questions.
type Answer struct {
	ID        string                 `json:"id"`
	Status    RecordStatus           `json:"status"`
	Values    map[string]AnswerValue `json:"values"`
	UpdatedAt string                 `json:"updated_at"`
}
