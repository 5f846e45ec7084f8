package model

import "encoding/json"

// SimilarityOrder selects whether results closest to or furthest from the
// reference record come first.
type SimilarityOrder string

const (
	SimilarityMost  SimilarityOrder = "most"
	SimilarityLeast SimilarityOrder = "least"
)

// DefaultSimilarityLimit caps similarity results when no limit is given.
const DefaultSimilarityLimit = 50

// SimilarityCriteria describes a vector-distance search relative to a
// reference record. A zero-value criteria is "not completed" and acts as
// no similarity filter at all.
type SimilarityCriteria struct {
	RecordID   string          `json:"recordId"`
	VectorName string          `json:"vectorName"`
	Limit      int             `json:"limit"`
	Order      SimilarityOrder `json:"order"`
}

// NewSimilarityCriteria returns an empty, not-completed criteria.
func NewSimilarityCriteria() *SimilarityCriteria {
	return &SimilarityCriteria{}
}

// Complete fills in the criteria, applying the default limit and order for
// missing values.
func (s *SimilarityCriteria) Complete(recordID, vectorName string, limit int, order SimilarityOrder) {
	if limit <= 0 {
		limit = DefaultSimilarityLimit
	}
	if order == "" {
		order = SimilarityMost
	}
	s.RecordID = recordID
	s.VectorName = vectorName
	s.Limit = limit
	s.Order = order
}

// IsCompleted reports whether every field required to run the search is set.
func (s *SimilarityCriteria) IsCompleted() bool {
	return s.RecordID != "" && s.VectorName != "" && s.Limit > 0 && s.Order != ""
}

// Equal compares two criteria. Two not-completed criteria are equal no
// matter what stale field values they hold.
func (s *SimilarityCriteria) Equal(other *SimilarityCriteria) bool {
	if !s.IsCompleted() && !other.IsCompleted() {
		return true
	}
	return s.RecordID == other.RecordID &&
		s.VectorName == other.VectorName &&
		s.Limit == other.Limit &&
		s.Order == other.Order
}

// Copy returns an independent copy with value semantics.
func (s *SimilarityCriteria) Copy() *SimilarityCriteria {
	c := *s
	return &c
}

// ParseSimilarity populates the criteria from a serialized payload, as
// carried in a shareable URL. Malformed input is ignored: the URL may have
// been edited by hand, and a broken payload simply means no similarity
// filter.
func (s *SimilarityCriteria) ParseSimilarity(payload string) {
	if payload == "" {
		return
	}
	var parsed SimilarityCriteria
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return
	}
	s.Complete(parsed.RecordID, parsed.VectorName, parsed.Limit, parsed.Order)
}
