// Package googleplaces adapts the Google Maps Platform to the gateway's
// DealerLocator contract.
package googleplaces

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	contractx "github.com/openroadai/canam-assist/gateway/contract"
)

type Config struct {
	APIKey string `envconfig:"API_KEY" split_words:"true"`
}

// Locator implements contract.DealerLocator over the Maps client.
type Locator struct {
	client *maps.Client
}

var _ contractx.DealerLocator = (*Locator)(nil)

// NewLocator returns nil without error when no API key is configured;
// callers treat a nil locator as the degraded, dealer-search-disabled mode.
func NewLocator(cfg Config) (*Locator, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, nil
	}
	client, err := maps.NewClient(maps.WithAPIKey(key))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &Locator{client: client}, nil
}

func (l *Locator) Geocode(ctx context.Context, location string) (contractx.LatLng, error) {
	results, err := l.client.Geocode(ctx, &maps.GeocodingRequest{Address: location})
	if err != nil {
		return contractx.LatLng{}, fmt.Errorf("geocode: %w", err)
	}
	if len(results) == 0 {
		return contractx.LatLng{}, fmt.Errorf("geocode: no result for %q", location)
	}
	loc := results[0].Geometry.Location
	return contractx.LatLng{Lat: loc.Lat, Lng: loc.Lng}, nil
}

func (l *Locator) NearbyDealers(ctx context.Context, at contractx.LatLng, radiusMeters int, keyword string) ([]contractx.PlaceRef, error) {
	resp, err := l.client.NearbySearch(ctx, &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: at.Lat, Lng: at.Lng},
		Radius:   uint(radiusMeters),
		Keyword:  keyword,
		Type:     maps.PlaceTypeCarDealer,
	})
	if err != nil {
		return nil, fmt.Errorf("nearby search: %w", err)
	}

	refs := make([]contractx.PlaceRef, 0, len(resp.Results))
	for _, result := range resp.Results {
		refs = append(refs, contractx.PlaceRef{
			PlaceID: result.PlaceID,
			Name:    result.Name,
			Address: result.Vicinity,
			Rating:  result.Rating,
		})
	}
	return refs, nil
}

func (l *Locator) PlaceDetails(ctx context.Context, placeID string) (contractx.PlaceDetail, error) {
	resp, err := l.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields: []maps.PlaceDetailsFieldMask{
			maps.PlaceDetailsFieldMaskFormattedPhoneNumber,
			maps.PlaceDetailsFieldMaskWebsite,
		},
	})
	if err != nil {
		return contractx.PlaceDetail{}, fmt.Errorf("place details: %w", err)
	}
	return contractx.PlaceDetail{
		Phone:   resp.FormattedPhoneNumber,
		Website: resp.Website,
	}, nil
}
