package dealers

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/openroadai/canam-assist/gateway/contract"
)

type fakeLocator struct {
	geocodeErr error
	places     []contractx.PlaceRef
	detailErr  error

	nearbyRadius  int
	nearbyKeyword string
	detailCalls   int
}

func (f *fakeLocator) Geocode(ctx context.Context, location string) (contractx.LatLng, error) {
	if f.geocodeErr != nil {
		return contractx.LatLng{}, f.geocodeErr
	}
	return contractx.LatLng{Lat: 38.58, Lng: -121.49}, nil
}

func (f *fakeLocator) NearbyDealers(ctx context.Context, at contractx.LatLng, radiusMeters int, keyword string) ([]contractx.PlaceRef, error) {
	f.nearbyRadius = radiusMeters
	f.nearbyKeyword = keyword
	return f.places, nil
}

func (f *fakeLocator) PlaceDetails(ctx context.Context, placeID string) (contractx.PlaceDetail, error) {
	f.detailCalls++
	if f.detailErr != nil {
		return contractx.PlaceDetail{}, f.detailErr
	}
	return contractx.PlaceDetail{Phone: "916-555-0100", Website: "https://example.com"}, nil
}

func TestFindNilLocatorDegrades(t *testing.T) {
	t.Parallel()

	f := New(nil)
	result, err := f.Find(context.Background(), Search{Location: "95814"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Dealers) != 0 {
		t.Errorf("dealers = %d, want none", len(result.Dealers))
	}
	if !strings.Contains(result.Note, "not configured") {
		t.Errorf("note = %q, want unconfigured explanation", result.Note)
	}
}

func TestFindAppliesDefaults(t *testing.T) {
	t.Parallel()

	locator := &fakeLocator{places: []contractx.PlaceRef{
		{PlaceID: "p1", Name: "Can-Am of Sacramento", Address: "1 Main St", Rating: 4.6},
		{PlaceID: "p2", Name: "Capital Powersports", Address: "2 Oak Ave", Rating: 4.1},
	}}
	f := New(locator)

	result, err := f.Find(context.Background(), Search{Location: "95814"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if locator.nearbyRadius != DefaultRadiusMiles*metersPerMile {
		t.Errorf("radius = %d meters, want %d", locator.nearbyRadius, DefaultRadiusMiles*metersPerMile)
	}
	if locator.nearbyKeyword != searchKeyword {
		t.Errorf("keyword = %q", locator.nearbyKeyword)
	}
	if len(result.Dealers) != 2 {
		t.Fatalf("dealers = %d, want 2", len(result.Dealers))
	}
	if !result.Dealers[0].BrandMatch {
		t.Error("Can-Am of Sacramento should be a brand match")
	}
	if result.Dealers[1].BrandMatch {
		t.Error("Capital Powersports should not be a brand match")
	}
	if result.Dealers[0].Phone == "" || result.Dealers[0].Website == "" {
		t.Error("expected detail enrichment on dealers")
	}
}

func TestFindTruncatesToLimit(t *testing.T) {
	t.Parallel()

	locator := &fakeLocator{places: []contractx.PlaceRef{
		{PlaceID: "p1", Name: "BRP Center"},
		{PlaceID: "p2", Name: "Trike Town"},
		{PlaceID: "p3", Name: "Three Wheel World"},
	}}
	f := New(locator)

	result, err := f.Find(context.Background(), Search{Location: "95814", Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Dealers) != 2 {
		t.Fatalf("dealers = %d, want 2", len(result.Dealers))
	}
	if locator.detailCalls != 2 {
		t.Errorf("detail calls = %d, want 2 (no lookups past the limit)", locator.detailCalls)
	}
}

func TestFindEmptyResultNote(t *testing.T) {
	t.Parallel()

	f := New(&fakeLocator{})
	result, err := f.Find(context.Background(), Search{Location: "89049", RadiusMiles: 25})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.Note, "25 miles") {
		t.Errorf("note = %q, want radius mention", result.Note)
	}
}

func TestFindSurfacesFailures(t *testing.T) {
	t.Parallel()

	geocodeErr := errors.New("quota exceeded")
	f := New(&fakeLocator{geocodeErr: geocodeErr})
	if _, err := f.Find(context.Background(), Search{Location: "95814"}); !errors.Is(err, geocodeErr) {
		t.Fatalf("err = %v, want wrapped geocode failure", err)
	}

	detailErr := errors.New("place gone")
	f = New(&fakeLocator{
		places:    []contractx.PlaceRef{{PlaceID: "p1", Name: "BRP Center"}},
		detailErr: detailErr,
	})
	if _, err := f.Find(context.Background(), Search{Location: "95814"}); !errors.Is(err, detailErr) {
		t.Fatalf("err = %v, want wrapped detail failure", err)
	}
}
