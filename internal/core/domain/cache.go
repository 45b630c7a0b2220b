package domain

// CacheTier groups cache entries that share a time-to-live.
type CacheTier string

// Cache tiers. Structural data changes often and is kept for seconds;
// geocodes are near-immutable and are kept for weeks.
const (
	// CacheTierStructural holds table metadata and raw grid fetches.
	CacheTierStructural CacheTier = "grid"

	// CacheTierGeocode holds successful place lookups.
	CacheTierGeocode CacheTier = "place"

	// CacheTierSnapshot holds the serialised terminal artifact.
	CacheTierSnapshot CacheTier = "dataset"
)

// AllCacheTiers lists every tier.
var AllCacheTiers = []CacheTier{CacheTierStructural, CacheTierGeocode, CacheTierSnapshot}

// Prefix returns the key prefix of the tier.
func (t CacheTier) Prefix() string {
	return string(t) + ":"
}

// Key builds a cache key inside the tier.
func (t CacheTier) Key(parts ...string) string {
	key := t.Prefix()
	for i, p := range parts {
		if i > 0 {
			key += ":"
		}
		key += p
	}
	return key
}

// IsValid returns true if the tier is recognised.
func (t CacheTier) IsValid() bool {
	switch t {
	case CacheTierStructural, CacheTierGeocode, CacheTierSnapshot:
		return true
	default:
		return false
	}
}

// SnapshotKey is the fixed key of the cached terminal artifact.
var SnapshotKey = CacheTierSnapshot.Key("snapshot")
