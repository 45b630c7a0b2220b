package places

import (
	"context"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/places/v1"

	"github.com/custodia-labs/placemap/internal/connectors/google"
	"github.com/custodia-labs/placemap/internal/core/domain"
	"github.com/custodia-labs/placemap/internal/core/ports/driven"
)

// Ensure Lookup implements the interface.
var _ driven.PlaceLookup = (*Lookup)(nil)

// placeFields is the field mask of a lookup. Place Details bills by field.
const placeFields = "id,location,displayName,googleMapsUri"

// Lookup fetches place details by id.
type Lookup struct {
	svc          *places.Service
	limiter      *google.RateLimiter
	languageCode string
}

// NewLookup creates a place lookup. A nil limiter uses the Places defaults.
func NewLookup(svc *places.Service, limiter *google.RateLimiter, languageCode string) *Lookup {
	if limiter == nil {
		limiter = google.NewRateLimiter(google.ServicePlaces)
	}
	return &Lookup{
		svc:          svc,
		limiter:      limiter,
		languageCode: languageCode,
	}
}

// Lookup returns the coordinates and display name of a place.
// A 429 opens a backoff window for later lookups; the failed call is not retried.
func (l *Lookup) Lookup(ctx context.Context, id domain.PlaceIdentity) (*domain.LookupResult, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	call := l.svc.Places.Get("places/" + id.String()).
		Fields(googleapi.Field(placeFields)).
		Context(ctx)
	if l.languageCode != "" {
		call = call.LanguageCode(l.languageCode)
	}

	place, err := call.Do()
	if err != nil {
		if google.IsRateLimited(err) {
			l.limiter.RecordRateLimitError(google.RetryAfter(err))
		}
		return nil, google.WrapError(err)
	}

	return ResultFromPlace(place)
}

// ResultFromPlace maps a place resource. A place without a location is an error.
func ResultFromPlace(p *places.GoogleMapsPlacesV1Place) (*domain.LookupResult, error) {
	if p == nil || p.Location == nil {
		return nil, fmt.Errorf("place has no location")
	}

	res := &domain.LookupResult{
		Coordinates: domain.Coordinates{
			Latitude:  p.Location.Latitude,
			Longitude: p.Location.Longitude,
		},
		MapsURL: p.GoogleMapsUri,
	}
	if p.DisplayName != nil {
		res.DisplayName = p.DisplayName.Text
	}
	return res, nil
}
