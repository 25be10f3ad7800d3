// Package dealers finds nearby Can-Am on-road dealers through an injected
// geocoding/places capability.
package dealers

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/openroadai/canam-assist/gateway/contract"
)

const (
	// DefaultRadiusMiles and DefaultLimit apply when a search carries no
	// explicit radius or limit.
	DefaultRadiusMiles = 50
	DefaultLimit       = 5

	searchKeyword = "Can-Am dealer"
	metersPerMile = 1609
)

var brandTokens = []string{"can-am", "canam", "brp"}

// Search is one dealer lookup request.
type Search struct {
	Location    string
	RadiusMiles int
	Limit       int
}

// Result is what the tool dispatcher and the dealer endpoint return.
type Result struct {
	Dealers []contractx.Dealer `json:"dealers"`
	Note    string             `json:"note,omitempty"`
}

// Finder resolves searches against a DealerLocator. A nil locator means the
// geocoding capability is unconfigured; searches then degrade to an empty
// result with an explanatory note instead of failing.
type Finder struct {
	locator contractx.DealerLocator
}

func New(locator contractx.DealerLocator) *Finder {
	return &Finder{locator: locator}
}

func (f *Finder) Find(ctx context.Context, search Search) (Result, error) {
	if f.locator == nil {
		return Result{Note: "Dealer search is not configured on this server. Please use the dealer locator on can-am.brp.com."}, nil
	}

	radius := search.RadiusMiles
	if radius <= 0 {
		radius = DefaultRadiusMiles
	}
	limit := search.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	at, err := f.locator.Geocode(ctx, search.Location)
	if err != nil {
		return Result{}, fmt.Errorf("geocode %q: %w", search.Location, err)
	}

	places, err := f.locator.NearbyDealers(ctx, at, radius*metersPerMile, searchKeyword)
	if err != nil {
		return Result{}, fmt.Errorf("nearby search: %w", err)
	}
	if len(places) > limit {
		places = places[:limit]
	}

	dealers := make([]contractx.Dealer, 0, len(places))
	for _, place := range places {
		dealer := contractx.Dealer{
			Name:       place.Name,
			Address:    place.Address,
			Rating:     place.Rating,
			BrandMatch: matchesBrand(place.Name),
		}
		detail, err := f.locator.PlaceDetails(ctx, place.PlaceID)
		if err != nil {
			return Result{}, fmt.Errorf("place detail %s: %w", place.PlaceID, err)
		}
		dealer.Phone = detail.Phone
		dealer.Website = detail.Website
		dealers = append(dealers, dealer)
	}

	result := Result{Dealers: dealers}
	if len(dealers) == 0 {
		result.Note = fmt.Sprintf("No dealers found within %d miles of %s.", radius, search.Location)
	}
	return result, nil
}

func matchesBrand(name string) bool {
	lowered := strings.ToLower(name)
	for _, token := range brandTokens {
		if strings.Contains(lowered, token) {
			return true
		}
	}
	return false
}
