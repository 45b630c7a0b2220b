package domain

// MaxRanking is the highest rating a review can carry.
const MaxRanking = 5

// PlaceIdentity is the stable token extracted from a place link.
// It is unique per physical place and is the merge key.
type PlaceIdentity string

// String returns the string representation.
func (p PlaceIdentity) String() string {
	return string(p)
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LookupResult is what the place lookup returns for an identity.
type LookupResult struct {
	Coordinates Coordinates `json:"coordinates"`
	DisplayName string      `json:"displayName"`
	MapsURL     string      `json:"mapsUrl,omitempty"`
}

// EnrichedLocation is a geocoded place location.
// Coordinates and DisplayName come from the lookup; Name and City come from the source row.
type EnrichedLocation struct {
	City        string      `json:"city"`
	Name        string      `json:"name"`
	Coordinates Coordinates `json:"coordinates"`
	DisplayName string      `json:"displayName"`
	URL         string      `json:"url"`
	PlaceID     string      `json:"placeId"`
}

// Review is one user's rating of a place.
type Review struct {
	User string `json:"user"`
	// Ranking is 0..MaxRanking where 0 means unranked.
	Ranking float64 `json:"ranking"`
	Notes   string  `json:"notes"`
}

// IsRanked returns true if the review carries a rating.
func (r Review) IsRanked() bool {
	return r.Ranking > 0
}

// Place is a physical place with every review the source holds for it.
type Place struct {
	// Types is a set-like list kept in first-seen order.
	Types    []string         `json:"types"`
	Location EnrichedLocation `json:"location"`
	// Reviews are kept in source row order.
	Reviews []Review `json:"reviews"`
}

// Identity returns the place's merge key.
func (p Place) Identity() PlaceIdentity {
	return PlaceIdentity(p.Location.PlaceID)
}

// AverageRanking averages the ranked reviews. Unranked reviews are ignored.
// Returns 0 when no review is ranked.
func (p Place) AverageRanking() float64 {
	var sum float64
	var n int
	for _, r := range p.Reviews {
		if r.IsRanked() {
			sum += r.Ranking
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// HasType returns true if the place carries the given type.
func (p Place) HasType(t string) bool {
	for _, pt := range p.Types {
		if pt == t {
			return true
		}
	}
	return false
}
