package contract

import "context"

// Catalog is the read-only product knowledge base. All lookups are pure and
// side-effect free; a miss is ErrCatalogNotFound.
type Catalog interface {
	SpecSheet(ctx context.Context, model string, year int, trim string) (SpecSheet, error)
	FluidsTorque(ctx context.Context, model string, year int, system string) (FluidsTorque, error)
	TireFitment(ctx context.Context, model string, year int, axle string) (TireFitment, error)
	MaintenanceSchedule(ctx context.Context, model string, year int, miles int) (MaintenanceSchedule, error)
	PartsLookup(ctx context.Context, model string, year int, assembly string) (PartsResult, error)
	AccessoryBundle(ctx context.Context, model string, year int, useCase string, budget string) (AccessoryBundle, error)
	Recommend(ctx context.Context, profile RiderProfile) (Recommendation, error)
}

// LatLng is a geocoded point. Distance math on it is out of scope; it only
// feeds the nearby-places query.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DealerLocator wraps the external geocoding and nearby-places capabilities.
type DealerLocator interface {
	Geocode(ctx context.Context, location string) (LatLng, error)
	NearbyDealers(ctx context.Context, at LatLng, radiusMeters int, keyword string) ([]PlaceRef, error)
	PlaceDetails(ctx context.Context, placeID string) (PlaceDetail, error)
}

// PlaceRef is one nearby-search candidate before detail enrichment.
type PlaceRef struct {
	PlaceID string  `json:"place_id"`
	Name    string  `json:"name"`
	Address string  `json:"address,omitempty"`
	Rating  float32 `json:"rating,omitempty"`
}

// PlaceDetail carries the enrichment fields fetched per candidate.
type PlaceDetail struct {
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
}

// AgentProvider is the remote conversational-agent capability. One session
// holds one run; sessions are single-use and never revisited.
type AgentProvider interface {
	CreateSession(ctx context.Context) (string, error)
	PostMessage(ctx context.Context, sessionID, role, text string) error
	StartRun(ctx context.Context, sessionID, agentID, instructions string) (string, error)
	RunSnapshot(ctx context.Context, sessionID, runID string) (RunSnapshot, error)
	SubmitToolResults(ctx context.Context, sessionID, runID string, results []ToolResult) error
	LatestAssistantMessage(ctx context.Context, sessionID string) ([]MessagePart, error)
}
