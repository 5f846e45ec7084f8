package search

import (
	"github.com/alfredjeanlab/labelq/internal/model"
	"github.com/alfredjeanlab/labelq/internal/queue"
)

// backendOrder maps the domain similarity order to the wire value.
var backendOrder = map[model.SimilarityOrder]string{
	model.SimilarityMost:  "most_similar",
	model.SimilarityLeast: "least_similar",
}

// Compile turns a criteria snapshot and a pagination window into a backend
// request. It never mutates its inputs. When no advanced dimension is
// active the result is a plain listing request; otherwise the advanced
// body is assembled in a fixed order: vector, text, filters, sort.
func Compile(c *model.Criteria, p queue.Pagination) *Request {
	req := &Request{
		Params: Params{
			Offset:         p.From - 1,
			Limit:          p.Many,
			ResponseStatus: c.Status.String(),
		},
	}

	if !c.IsFilteringByAdvanceSearch() {
		return req
	}

	body := &Body{}

	if c.IsFilteringBySimilarity() {
		body.Query.Vector = &VectorQuery{
			Name:       c.Similarity.VectorName,
			RecordID:   c.Similarity.RecordID,
			MaxResults: c.Similarity.Limit,
			Order:      backendOrder[c.Similarity.Order],
		}
	}

	if c.IsFilteringByText() {
		body.Query.Text = &TextQuery{Q: c.SearchText}
	}

	// A single shared conjunctive list for all three filter categories.
	if c.IsFilteringByMetadata() || c.IsFilteringByResponse() || c.IsFilteringBySuggestion() {
		body.Filters = &Filters{And: []Filter{}}
	}

	for _, m := range c.Metadata {
		body.Filters.And = append(body.Filters.And, compileValue(
			Scope{Entity: "metadata", MetadataProperty: m.Name}, m.Value))
	}

	for _, r := range c.Response.Or {
		body.Filters.And = append(body.Filters.And, compileValue(
			Scope{Entity: "response", Question: r.Name}, r.Value))
	}
	for _, r := range c.Response.And {
		body.Filters.And = append(body.Filters.And, Filter{
			Type:   "terms",
			Scope:  Scope{Entity: "response", Question: r.Name},
			Values: []string{r.Value},
		})
	}

	for _, s := range c.Suggestion.Or {
		body.Filters.And = append(body.Filters.And, compileSuggestion(s))
	}
	for _, s := range c.Suggestion.And {
		body.Filters.And = append(body.Filters.And, Filter{
			Type: "terms",
			Scope: Scope{
				Entity:   "suggestion",
				Question: s.Question,
				Property: s.Property.String(),
			},
			Values: []string{s.Value},
		})
	}

	for _, s := range c.SortBy {
		body.Sort = append(body.Sort, compileSort(s))
	}

	req.Body = body
	return req
}

// compileValue applies the bound-detection rule: a value carrying both
// bounds becomes a range entry, anything else a terms entry.
func compileValue(scope Scope, v model.FilterValue) Filter {
	if v.IsRange() {
		ge, le := v.Range.GE, v.Range.LE
		return Filter{Type: "range", Scope: scope, GE: &ge, LE: &le}
	}
	return Filter{Type: "terms", Scope: scope, Values: v.Terms}
}

// compileSuggestion dispatches a disjunctive suggestion condition on its
// property: score always compiles to a range, value to range-or-terms,
// agent always to terms.
func compileSuggestion(s model.SuggestionCondition) Filter {
	scope := Scope{
		Entity:   "suggestion",
		Question: s.Question,
		Property: s.Property.String(),
	}

	switch s.Property {
	case model.SuggestionScore:
		// Score conditions are range-only. A condition built without bounds
		// compiles to the zero range rather than being dropped.
		var ge, le float64
		if s.Value.Range != nil {
			ge, le = s.Value.Range.GE, s.Value.Range.LE
		}
		return Filter{Type: "range", Scope: scope, GE: &ge, LE: &le}
	case model.SuggestionValue:
		return compileValue(scope, s.Value)
	default: // agent
		return Filter{Type: "terms", Scope: scope, Values: s.Value.Terms}
	}
}

// compileSort builds the entity-specific scope for one sort entry: a
// nested property keeps question+property, response sorts scope on the
// question, metadata uses its dedicated property key, and record sorts
// scope directly on the named property.
func compileSort(s model.Sort) Sort {
	out := Sort{Scope: Scope{Entity: string(s.Entity)}, Order: s.Order}

	switch {
	case s.Property != "":
		out.Scope.Question = s.Name
		out.Scope.Property = s.Property
	case s.Entity == model.SortResponse:
		out.Scope.Question = s.Name
	case s.Entity == model.SortMetadata:
		out.Scope.MetadataProperty = s.Name
	case s.Entity == model.SortRecord:
		out.Scope.Property = s.Name
	}

	return out
}
