package services

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/placemap/internal/core/domain"
)

// placeLinkPattern matches a map-place deep link and captures the place id.
// The id class includes '_' and '-', which Google place ids use.
var placeLinkPattern = regexp.MustCompile(
	`^https?://(?:www\.)?google\.com/maps/place/\?q=place_id:([A-Za-z0-9_-]+)$`)

// ExtractIdentity derives the place identity from a place link.
// Returns domain.ErrNoIdentity when the link is empty and
// domain.ErrIdentityNotFound when it does not match the pattern.
func ExtractIdentity(link string) (domain.PlaceIdentity, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", domain.ErrNoIdentity
	}
	m := placeLinkPattern.FindStringSubmatch(link)
	if m == nil {
		return "", domain.ErrIdentityNotFound
	}
	return domain.PlaceIdentity(m[1]), nil
}
