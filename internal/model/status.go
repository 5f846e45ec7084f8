package model

// RecordStatus represents the annotation state of a record, and doubles as
// the response_status filter value sent to the backend.
type RecordStatus string

const (
	StatusPending   RecordStatus = "pending"
	StatusDraft     RecordStatus = "draft"
	StatusDiscarded RecordStatus = "discarded"
	StatusSubmitted RecordStatus = "submitted"
)

// DefaultStatus is the status filter applied when none is given.
const DefaultStatus = StatusPending

// String returns the string representation of the status.
func (s RecordStatus) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s RecordStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusDraft, StatusDiscarded, StatusSubmitted:
		return true
	}
	return false
}
