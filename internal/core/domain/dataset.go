package domain

import "time"

// Uniques are the distinct types, users and cities across a place set.
// They are derived from the final places, never accumulated.
type Uniques struct {
	Types  []string `json:"types"`
	Users  []string `json:"users"`
	Cities []string `json:"cities"`
}

// Dataset is the terminal artifact of a pipeline run.
// Places and Errors are never nil so they serialise as empty lists.
type Dataset struct {
	Places  []Place    `json:"places"`
	Errors  []RowError `json:"errors"`
	Uniques Uniques    `json:"uniques"`

	// Vocabulary is the fixed list of place types declared by the type
	// column's validation rule. Empty when the column has no rule.
	Vocabulary []string `json:"vocabulary,omitempty"`

	// RunID identifies the pipeline run that produced the dataset.
	RunID string `json:"runId,omitempty"`

	// GeneratedAt is when the dataset was produced.
	GeneratedAt time.Time `json:"generatedAt,omitempty"`
}

// EmptyDataset returns a dataset with empty, non-nil lists.
func EmptyDataset() *Dataset {
	return &Dataset{
		Places: []Place{},
		Errors: []RowError{},
		Uniques: Uniques{
			Types:  []string{},
			Users:  []string{},
			Cities: []string{},
		},
	}
}

// PlaceFilter selects places from a dataset. Empty fields match everything.
type PlaceFilter struct {
	// Types matches places carrying any of the given types.
	Types []string

	// Users matches places reviewed by any of the given users.
	Users []string

	// Cities matches places in any of the given cities.
	Cities []string

	// MinRating matches places with at least one ranked review at or above it.
	// When Users is set only those users' reviews count.
	MinRating float64
}

// IsEmpty returns true if the filter matches everything.
func (f PlaceFilter) IsEmpty() bool {
	return len(f.Types) == 0 && len(f.Users) == 0 && len(f.Cities) == 0 && f.MinRating <= 0
}

// Match reports whether the place satisfies every set criterion.
func (f PlaceFilter) Match(p Place) bool {
	if len(f.Types) > 0 && !anyOf(f.Types, p.HasType) {
		return false
	}
	if len(f.Cities) > 0 && !contains(f.Cities, p.Location.City) {
		return false
	}
	if len(f.Users) == 0 && f.MinRating <= 0 {
		return true
	}
	for _, r := range p.Reviews {
		if len(f.Users) > 0 && !contains(f.Users, r.User) {
			continue
		}
		if f.MinRating > 0 && (!r.IsRanked() || r.Ranking < f.MinRating) {
			continue
		}
		return true
	}
	return false
}

// Filter returns the places matching the filter, in dataset order.
func (d *Dataset) Filter(f PlaceFilter) []Place {
	out := make([]Place, 0, len(d.Places))
	for _, p := range d.Places {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func anyOf(list []string, pred func(string) bool) bool {
	for _, s := range list {
		if pred(s) {
			return true
		}
	}
	return false
}
