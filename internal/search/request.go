// Package search compiles a criteria snapshot plus a pagination window into
// the backend-shaped request: either a plain paginated listing or an
// advanced search body.
package search

// Params are the query parameters shared by the listing and advanced
// search endpoints. Offset is 0-based on the wire (From - 1).
type Params struct {
	Offset         int
	Limit          int
	ResponseStatus string
}

// Request is a compiled backend request. Body is nil for plain listings
// and set when the advanced search endpoint must be used.
type Request struct {
	Params Params
	Body   *Body
}

// IsAdvanced reports whether the request targets the advanced search
// endpoint.
func (r *Request) IsAdvanced() bool {
	return r.Body != nil
}

// Body is the advanced search JSON body.
type Body struct {
	Query   Query    `json:"query"`
	Filters *Filters `json:"filters,omitempty"`
	Sort    []Sort   `json:"sort,omitempty"`
}

// Query carries the optional full-text and vector sub-queries.
type Query struct {
	Text   *TextQuery   `json:"text,omitempty"`
	Vector *VectorQuery `json:"vector,omitempty"`
}

// TextQuery is a full-text search over record fields.
type TextQuery struct {
	Q string `json:"q"`
}

// VectorQuery orders results by vector distance to a reference record.
type VectorQuery struct {
	Name       string `json:"name"`
	RecordID   string `json:"record_id"`
	MaxResults int    `json:"max_results"`
	Order      string `json:"order"` // most_similar | least_similar
}

// Filters holds the single top-level conjunctive filter list. Every
// metadata, response and suggestion entry appends into And; there is
// exactly one container, not one per category.
type Filters struct {
	And []Filter `json:"and"`
}

// Filter is one conjunctive entry: a range over a scoped property or a
// discrete value set.
type Filter struct {
	Type   string   `json:"type"` // range | terms
	Scope  Scope    `json:"scope"`
	GE     *float64 `json:"ge,omitempty"`
	LE     *float64 `json:"le,omitempty"`
	Values []string `json:"values,omitempty"`
}

// Scope pins a filter or sort entry to an entity and, depending on the
// entity, a metadata property, question and/or nested property.
type Scope struct {
	Entity           string `json:"entity"`
	MetadataProperty string `json:"metadata_property,omitempty"`
	Question         string `json:"question,omitempty"`
	Property         string `json:"property,omitempty"`
}

// Sort is one ordered entry of the advanced search sort list.
type Sort struct {
	Scope Scope  `json:"scope"`
	Order string `json:"order"`
}
