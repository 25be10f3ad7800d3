package catalog

import (
	"context"
	"errors"
	"testing"

	contractx "github.com/openroadai/canam-assist/gateway/contract"
)

func newTestCatalog(t *testing.T) *Static {
	t.Helper()
	c, err := NewStatic()
	if err != nil {
		t.Fatalf("NewStatic: %v", err)
	}
	return c
}

func TestSpecSheetLookup(t *testing.T) {
	t.Parallel()

	c := newTestCatalog(t)
	sheet, err := c.SpecSheet(context.Background(), "ryker", 2024, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sheet.Model != "Ryker" {
		t.Errorf("model = %q", sheet.Model)
	}
	if sheet.Horsepower != 82 {
		t.Errorf("horsepower = %d", sheet.Horsepower)
	}
	if len(sheet.Electronics) == 0 {
		t.Error("expected electronics list")
	}
}

func TestLookupUnknownModel(t *testing.T) {
	t.Parallel()

	c := newTestCatalog(t)
	_, err := c.SpecSheet(context.Background(), "slingshot", 2024, "")
	if !errors.Is(err, contractx.ErrCatalogNotFound) {
		t.Fatalf("err = %v, want ErrCatalogNotFound", err)
	}

	_, err = c.SpecSheet(context.Background(), "ryker", 1999, "")
	if !errors.Is(err, contractx.ErrCatalogNotFound) {
		t.Fatalf("err = %v, want ErrCatalogNotFound for out-of-range year", err)
	}
}

func TestFluidsTorqueRykerOil(t *testing.T) {
	t.Parallel()

	c := newTestCatalog(t)
	fluids, err := c.FluidsTorque(context.Background(), "Ryker", 2024, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var oil string
	for _, fc := range fluids.Capacities {
		if fc.Fluid == "engine oil" {
			oil = fc.Capacity
		}
	}
	if oil != "3.5 L" {
		t.Fatalf("engine oil capacity = %q, want 3.5 L", oil)
	}
	if len(fluids.Torques) == 0 {
		t.Fatal("expected torque values")
	}
}

func TestFluidsTorqueSystemNarrowing(t *testing.T) {
	t.Parallel()

	c := newTestCatalog(t)
	fluids, err := c.FluidsTorque(context.Background(), "Ryker", 2024, "brake")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fluids.Capacities) != 1 || fluids.Capacities[0].Fluid != "brake fluid" {
		t.Fatalf("narrowed capacities = %+v", fluids.Capacities)
	}
}

func TestTireFitmentAxles(t *testing.T) {
	t.Parallel()

	c := newTestCatalog(t)
	front, err := c.TireFitment(context.Background(), "Spyder F3", 2024, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if front.Axle != "front" {
		t.Errorf("default axle = %q, want front", front.Axle)
	}

	rear, err := c.TireFitment(context.Background(), "Spyder F3", 2024, "rear")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rear.Size == front.Size {
		t.Error("front and rear fitments should differ")
	}
}

func TestPartsLookupUnknownAssembly(t *testing.T) {
	t.Parallel()

	c := newTestCatalog(t)
	_, err := c.PartsLookup(context.Background(), "Ryker", 2024, "flux capacitor")
	if !errors.Is(err, contractx.ErrCatalogNotFound) {
		t.Fatalf("err = %v, want ErrCatalogNotFound", err)
	}
}

func TestAccessoryBundleFallsBackToDefault(t *testing.T) {
	t.Parallel()

	c := newTestCatalog(t)
	bundle, err := c.AccessoryBundle(context.Background(), "Ryker", 2024, "racing", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.UseCase != "default" {
		t.Fatalf("use case = %q, want default fallback", bundle.UseCase)
	}
	if len(bundle.Accessories) == 0 {
		t.Fatal("expected accessories")
	}
}

func TestRecommendRules(t *testing.T) {
	t.Parallel()

	c := newTestCatalog(t)

	rec, err := c.Recommend(context.Background(), contractx.RiderProfile{Experience: "new", RideType: "solo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Model != "Ryker" {
		t.Errorf("new rider model = %q, want Ryker", rec.Model)
	}
	if len(rec.Reasons) == 0 {
		t.Error("expected reasons")
	}

	rec, _ = c.Recommend(context.Background(), contractx.RiderProfile{
		Experience:      "intermediate",
		RideType:        "touring",
		ComfortPriority: true,
	})
	if rec.Model != "Spyder RT" || rec.Trim != "Limited" {
		t.Errorf("touring rec = %s %s, want Spyder RT Limited", rec.Model, rec.Trim)
	}
}
