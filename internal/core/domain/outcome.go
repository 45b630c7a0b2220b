package domain

// RowErrorMeta is the diagnostic context attached to a row error.
type RowErrorMeta struct {
	// Row is the zero-based data row index.
	Row int `json:"row"`

	// Fields is the raw field dump keyed by column name.
	Fields map[string]string `json:"fields,omitempty"`

	// PlaceID is set once identity extraction succeeded.
	PlaceID string `json:"placeId,omitempty"`
}

// RowError is a row that failed extraction, identity parsing or enrichment.
// Row errors are never merged or retried.
type RowError struct {
	Error string        `json:"error"`
	Meta  *RowErrorMeta `json:"meta,omitempty"`
}

// RowOutcome is the tagged result of processing one row.
// Exactly one of Place and Err is set.
type RowOutcome struct {
	// Identity is the extracted place identity, empty if extraction failed.
	Identity PlaceIdentity

	Place *Place
	Err   *RowError
}

// OK returns true for a successful outcome.
func (o RowOutcome) OK() bool {
	return o.Place != nil && o.Err == nil
}

// Success builds a successful row outcome.
func Success(id PlaceIdentity, place Place) RowOutcome {
	return RowOutcome{Identity: id, Place: &place}
}

// Failure builds a failed row outcome.
func Failure(id PlaceIdentity, message string, meta *RowErrorMeta) RowOutcome {
	return RowOutcome{Identity: id, Err: &RowError{Error: message, Meta: meta}}
}
