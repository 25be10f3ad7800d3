package router

import (
	"testing"

	contractx "github.com/openroadai/canam-assist/gateway/contract"
)

func TestClassifyFluids(t *testing.T) {
	t.Parallel()

	route := Classify("What's the oil capacity for a 2024 Ryker?")
	if route.Intent != contractx.IntentFluids {
		t.Fatalf("intent = %s, want fluids", route.Intent)
	}
	if route.Entities.Model != "Ryker" {
		t.Fatalf("model = %q, want Ryker", route.Entities.Model)
	}
	if route.Entities.Year != 2024 {
		t.Fatalf("year = %d, want 2024", route.Entities.Year)
	}
	if !route.KeywordMatch {
		t.Fatal("expected a keyword match")
	}
}

func TestModelExtractionOrderStability(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want string
	}{
		{"ryker", "Ryker"},
		{"spyder rt oil change", "Spyder RT"},
		// The multi-word phrase wins over the stray short token.
		{"spyder f3 parked next to an rt sign", "Spyder F3"},
		{"what psi for the f3", "Spyder F3"},
		{"is the rt comfortable", "Spyder RT"},
		// Short tokens never match inside unrelated words.
		{"heartfelt support question", ""},
		{"the f35 is a jet", ""},
	}

	for _, tc := range cases {
		route := Classify(tc.text)
		if route.Entities.Model != tc.want {
			t.Errorf("Classify(%q).Model = %q, want %q", tc.text, route.Entities.Model, tc.want)
		}
	}
}

func TestYearExtraction(t *testing.T) {
	t.Parallel()

	if got := Classify("2023 ryker specs").Entities.Year; got != 2023 {
		t.Fatalf("year = %d, want 2023", got)
	}
	if got := Classify("ryker specs").Entities.Year; got != 2024 {
		t.Fatalf("default year = %d, want 2024", got)
	}
}

func TestClassifyDealerRequiresZip(t *testing.T) {
	t.Parallel()

	route := Classify("dealer near 90210")
	if route.Intent != contractx.IntentDealer {
		t.Fatalf("intent = %s, want dealer", route.Intent)
	}
	if route.Entities.Zip != "90210" {
		t.Fatalf("zip = %q, want 90210", route.Entities.Zip)
	}

	// Without a zip the dealer group cannot win; the question falls
	// through to the recommend fallback.
	route = Classify("is there a dealer near me")
	if route.Intent != contractx.IntentRecommend {
		t.Fatalf("intent = %s, want recommend fallback", route.Intent)
	}
	if route.KeywordMatch {
		t.Fatal("fallback must not report a keyword match")
	}
}

func TestClassifyIntentPriority(t *testing.T) {
	t.Parallel()

	// "spec" outranks "oil" when both keyword groups are present.
	route := Classify("full spec including oil capacity for the 2024 ryker")
	if route.Intent != contractx.IntentSpec {
		t.Fatalf("intent = %s, want spec", route.Intent)
	}
}

func TestRecommendFallbackProfile(t *testing.T) {
	t.Parallel()

	route := Classify("I'm a new rider who wants something for touring with a passenger")
	if route.Intent != contractx.IntentRecommend {
		t.Fatalf("intent = %s, want recommend", route.Intent)
	}
	if route.Profile.Experience != "new" {
		t.Errorf("experience = %q, want new", route.Profile.Experience)
	}
	if route.Profile.RideType != "touring" {
		t.Errorf("ride type = %q, want touring", route.Profile.RideType)
	}
	if !route.Profile.ComfortPriority {
		t.Error("touring should imply comfort priority")
	}

	route = Classify("which one should I get")
	if route.Profile.Experience != "intermediate" || route.Profile.RideType != "solo" {
		t.Errorf("default profile = %+v", route.Profile)
	}
}
