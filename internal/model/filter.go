package model

import (
	"fmt"
	"strings"
)

// FilterValue is a tagged variant for filter values: either a bounded range
// or an explicit set of discrete values. Exactly one side is expected to be
// set; a value with a non-nil Range compiles to a backend "range" entry,
// anything else to a "terms" entry.
type FilterValue struct {
	Range *Range   `json:"range,omitempty"`
	Terms []string `json:"terms,omitempty"`
}

// Range holds an inclusive lower and upper bound.
type Range struct {
	GE float64 `json:"ge"`
	LE float64 `json:"le"`
}

// IsRange reports whether the value carries both bounds.
func (v FilterValue) IsRange() bool {
	return v.Range != nil
}

func (v FilterValue) key() string {
	if v.Range != nil {
		return fmt.Sprintf("ge%vle%v", v.Range.GE, v.Range.LE)
	}
	return strings.Join(v.Terms, ".")
}

// MetadataFilter filters records on one metadata property.
type MetadataFilter struct {
	Name  string      `json:"name"`
	Value FilterValue `json:"value"`
}

func (m MetadataFilter) key() string {
	return m.Name + "." + m.Value.key()
}

// ResponseTerm is a conjunctive response condition: the named question's
// response must equal the single value.
type ResponseTerm struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (r ResponseTerm) key() string {
	return r.Name + "." + r.Value
}

// ResponseCondition is a disjunctive response condition carrying a range or
// a value set for the named question.
type ResponseCondition struct {
	Name  string      `json:"name"`
	Value FilterValue `json:"value"`
}

func (r ResponseCondition) key() string {
	return r.Name + "." + r.Value.key()
}

// ResponseFilter combines conjunctive and disjunctive response conditions.
type ResponseFilter struct {
	And []ResponseTerm      `json:"and,omitempty"`
	Or  []ResponseCondition `json:"or,omitempty"`
}

// HasValues reports whether any response condition is configured.
func (f ResponseFilter) HasValues() bool {
	return len(f.And) > 0 || len(f.Or) > 0
}

func (f ResponseFilter) key() string {
	var sb strings.Builder
	for _, t := range f.And {
		sb.WriteString(t.key())
	}
	for _, c := range f.Or {
		sb.WriteString(c.key())
	}
	return sb.String()
}

// SuggestionProperty names the suggestion attribute a condition applies to.
type SuggestionProperty string

const (
	SuggestionScore SuggestionProperty = "score"
	SuggestionValue SuggestionProperty = "value"
	SuggestionAgent SuggestionProperty = "agent"
)

// String returns the string representation of the property.
func (p SuggestionProperty) String() string {
	return string(p)
}

// SuggestionTerm is a conjunctive suggestion condition: the named question's
// suggestion property must equal the single value.
type SuggestionTerm struct {
	Question string             `json:"question"`
	Property SuggestionProperty `json:"property"`
	Value    string             `json:"value"`
}

func (s SuggestionTerm) key() string {
	return s.Question + "." + s.Property.String() + "." + s.Value
}

// SuggestionCondition is a disjunctive suggestion condition scoped to a
// question and one of its properties.
type SuggestionCondition struct {
	Question string             `json:"question"`
	Property SuggestionProperty `json:"property"`
	Value    FilterValue        `json:"value"`
}

func (s SuggestionCondition) key() string {
	return s.Question + "." + s.Property.String() + "." + s.Value.key()
}

// SuggestionFilter combines conjunctive and disjunctive suggestion conditions.
type SuggestionFilter struct {
	And []SuggestionTerm      `json:"and,omitempty"`
	Or  []SuggestionCondition `json:"or,omitempty"`
}

// HasValues reports whether any suggestion condition is configured.
func (f SuggestionFilter) HasValues() bool {
	return len(f.And) > 0 || len(f.Or) > 0
}

func (f SuggestionFilter) key() string {
	var sb strings.Builder
	for _, t := range f.And {
		sb.WriteString(t.key())
	}
	for _, c := range f.Or {
		sb.WriteString(c.key())
	}
	return sb.String()
}

// SortEntity names the record facet a sort entry applies to.
type SortEntity string

const (
	SortRecord     SortEntity = "record"
	SortMetadata   SortEntity = "metadata"
	SortResponse   SortEntity = "response"
	SortSuggestion SortEntity = "suggestion"
)

// Sort orders results by one entity property, ascending or descending.
type Sort struct {
	Entity   SortEntity `json:"entity"`
	Name     string     `json:"name"`
	Property string     `json:"property,omitempty"`
	Order    string     `json:"order"` // "asc" or "desc"
}

func (s Sort) key() string {
	return string(s.Entity) + "." + s.Name + "." + s.Property + "." + s.Order
}

// equalMetadata compares two metadata filter lists by concatenation-order
// equality, mirroring the dirty-check the UI relies on.
func equalMetadata(a, b []MetadataFilter) bool {
	return joinKeys(a, MetadataFilter.key) == joinKeys(b, MetadataFilter.key)
}

func equalSorts(a, b []Sort) bool {
	return joinKeys(a, Sort.key) == joinKeys(b, Sort.key)
}

func joinKeys[T any](items []T, key func(T) string) string {
	var sb strings.Builder
	for _, it := range items {
		sb.WriteString(key(it))
	}
	return sb.String()
}
