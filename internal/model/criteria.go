package model

// CriteriaState is one snapshot of every user-tunable query dimension.
// Criteria keeps two of them: the live copy the UI mutates and the
// committed copy of the last applied fetch.
type CriteriaState struct {
	Page       int
	Status     RecordStatus
	SearchText string
	Metadata   []MetadataFilter
	SortBy     []Sort
	Response   ResponseFilter
	Suggestion SuggestionFilter
	Similarity *SimilarityCriteria
}

// Criteria identifies a dataset and describes which records to fetch, in
// what order, under which filters. The embedded CriteriaState is the live,
// user-editable copy; Committed is the snapshot last applied to a fetch.
// Dirty detection works by diffing the two, so no observer machinery is
// needed.
type Criteria struct {
	DatasetID string

	// IsChangingAutomatically is set while Complete rewrites the live
	// state, so observers can tell programmatic resets from user edits.
	// Commit clears it.
	IsChangingAutomatically bool

	CriteriaState
	Committed CriteriaState
}

// NewCriteria builds a criteria from a persisted snapshot (typically
// URL-derived), normalizes it, and commits it as the baseline.
func NewCriteria(
	datasetID string,
	page int,
	status RecordStatus,
	searchText string,
	metadata []MetadataFilter,
	sortBy []Sort,
	response ResponseFilter,
	suggestion SuggestionFilter,
	similarityJSON string,
) *Criteria {
	c := &Criteria{DatasetID: datasetID}
	c.Complete(page, status, searchText, metadata, sortBy, response, suggestion, similarityJSON)
	c.Commit()
	return c
}

// Complete rewrites the whole live state from externally supplied values,
// normalizing missing ones: page defaults to 1, status to pending, the
// similarity filter is reset and then best-effort parsed from its
// serialized payload. The caller is expected to Commit afterwards.
func (c *Criteria) Complete(
	page int,
	status RecordStatus,
	searchText string,
	metadata []MetadataFilter,
	sortBy []Sort,
	response ResponseFilter,
	suggestion SuggestionFilter,
	similarityJSON string,
) {
	c.IsChangingAutomatically = true

	if page < 1 {
		page = 1
	}
	if status == "" {
		status = DefaultStatus
	}
	c.Page = page
	c.Status = status
	c.SearchText = searchText
	c.Metadata = metadata
	c.SortBy = sortBy
	c.Response = response
	c.Suggestion = suggestion
	c.Similarity = NewSimilarityCriteria()
	c.Similarity.ParseSimilarity(similarityJSON)
}

// Commit snapshots the live state as the new baseline. The similarity
// criteria is deep-copied so later live edits cannot leak into the
// committed copy; everything else is snapshotted as-is.
func (c *Criteria) Commit() {
	c.Committed = CriteriaState{
		Page:       c.Page,
		Status:     c.Status,
		SearchText: c.SearchText,
		Metadata:   c.Metadata,
		SortBy:     c.SortBy,
		Response:   c.Response,
		Suggestion: c.Suggestion,
		Similarity: c.Similarity.Copy(),
	}
	c.IsChangingAutomatically = false
}

// Reset restores every live field from the committed snapshot. The
// similarity criteria is restored by reference; Commit again before
// mutating it independently.
func (c *Criteria) Reset() {
	c.CriteriaState = c.Committed
}

// ResetFilters clears the live filter and sort lists only. Page, status,
// search text and similarity are untouched, and nothing is committed.
func (c *Criteria) ResetFilters() {
	c.Metadata = nil
	c.SortBy = nil
	c.Response = ResponseFilter{}
	c.Suggestion = SuggestionFilter{}
}

// NextPage moves the live page forward relative to the committed page, not
// the live one, so rapid repeated calls cannot compound.
func (c *Criteria) NextPage() {
	c.Page = c.Committed.Page + 1
}

// PreviousPage moves the live page backward relative to the committed page.
func (c *Criteria) PreviousPage() {
	c.Page = c.Committed.Page - 1
}

// HasChanges reports whether any live field differs from its committed
// counterpart.
func (c *Criteria) HasChanges() bool {
	if c.Committed.Page != c.Page {
		return true
	}
	if c.Committed.Status != c.Status {
		return true
	}
	if c.Committed.SearchText != c.SearchText {
		return true
	}
	if !equalMetadata(c.Metadata, c.Committed.Metadata) {
		return true
	}
	if !equalSorts(c.SortBy, c.Committed.SortBy) {
		return true
	}
	if c.Response.key() != c.Committed.Response.key() {
		return true
	}
	if c.Suggestion.key() != c.Committed.Suggestion.key() {
		return true
	}
	return !c.Similarity.Equal(c.Committed.Similarity)
}

// Committed-state flags: what is actually applied to the current fetch.

func (c *Criteria) IsFilteredByText() bool       { return c.Committed.SearchText != "" }
func (c *Criteria) IsFilteredByMetadata() bool   { return len(c.Committed.Metadata) > 0 }
func (c *Criteria) IsFilteredByResponse() bool   { return c.Committed.Response.HasValues() }
func (c *Criteria) IsFilteredBySuggestion() bool { return c.Committed.Suggestion.HasValues() }
func (c *Criteria) IsFilteredBySimilarity() bool { return c.Committed.Similarity.IsCompleted() }
func (c *Criteria) IsSortedBy() bool             { return len(c.Committed.SortBy) > 0 }

// Live-state flags: what is about to be applied on the next fetch.

func (c *Criteria) IsFilteringByText() bool       { return c.SearchText != "" }
func (c *Criteria) IsFilteringByMetadata() bool   { return len(c.Metadata) > 0 }
func (c *Criteria) IsFilteringByResponse() bool   { return c.Response.HasValues() }
func (c *Criteria) IsFilteringBySuggestion() bool { return c.Suggestion.HasValues() }
func (c *Criteria) IsFilteringBySimilarity() bool { return c.Similarity.IsCompleted() }
func (c *Criteria) IsSortingBy() bool             { return len(c.SortBy) > 0 }

// IsFilteringByAdvanceSearch reports whether any live dimension needs the
// advanced search endpoint rather than the plain listing.
func (c *Criteria) IsFilteringByAdvanceSearch() bool {
	return c.IsFilteringByText() ||
		c.IsFilteringByMetadata() ||
		c.IsFilteringByResponse() ||
		c.IsFilteringBySuggestion() ||
		c.IsFilteringBySimilarity() ||
		c.IsSortingBy()
}

// IsFilteredByAdvanceSearch is the committed counterpart of
// IsFilteringByAdvanceSearch.
func (c *Criteria) IsFilteredByAdvanceSearch() bool {
	return c.IsFilteredByText() ||
		c.IsFilteredByMetadata() ||
		c.IsFilteredByResponse() ||
		c.IsFilteredBySuggestion() ||
		c.IsFilteredBySimilarity() ||
		c.IsSortedBy()
}
