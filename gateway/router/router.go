// Package router classifies a normalized question into an intent and
// extracts the entities the answer composer needs. Classification is
// rule-based and total: every question ends in a concrete intent or the
// recommend fallback.
package router

import (
	"regexp"
	"strconv"
	"strings"

	contractx "github.com/openroadai/canam-assist/gateway/contract"
)

// Route is the router's decision for one question.
type Route struct {
	Intent   contractx.Intent
	Entities contractx.Entities

	// Profile is populated only for the recommend fallback.
	Profile contractx.RiderProfile

	// KeywordMatch is true when a keyword group (not the fallback)
	// decided the intent.
	KeywordMatch bool
}

var (
	yearPattern = regexp.MustCompile(`\b(20\d{2})\b`)
	zipPattern  = regexp.MustCompile(`\b(\d{5})\b`)
)

// modelPattern maps an ordered keyword pattern to a canonical model name.
// Multi-word phrases come first; the short ambiguous tokens "rt" and "f3"
// come last and are word-boundary guarded so they never match inside
// unrelated words.
type modelPattern struct {
	pattern *regexp.Regexp
	model   string
}

var modelPatterns = []modelPattern{
	{regexp.MustCompile(`spyder\s+f3`), "Spyder F3"},
	{regexp.MustCompile(`spyder\s+rt`), "Spyder RT"},
	{regexp.MustCompile(`ryker\s+rally`), "Ryker Rally"},
	{regexp.MustCompile(`ryker\s+sport`), "Ryker Sport"},
	{regexp.MustCompile(`canyon`), "Canyon"},
	{regexp.MustCompile(`ryker`), "Ryker"},
	{regexp.MustCompile(`spyder`), "Spyder F3"},
	{regexp.MustCompile(`\brt\b`), "Spyder RT"},
	{regexp.MustCompile(`\bf3\b`), "Spyder F3"},
}

// intentGroup is one ordered keyword-group membership test. Apart from the
// dealer group, a group only wins when a model was extracted; dealer needs
// a 5-digit zip instead. The first group whose keyword condition and entity
// condition both hold wins.
type intentGroup struct {
	intent      contractx.Intent
	keywords    []string
	requiresZip bool
}

var intentGroups = []intentGroup{
	{intent: contractx.IntentSpec, keywords: []string{"spec", "horsepower", " hp", "engine", "weight", "seat height", "electronics"}},
	{intent: contractx.IntentFluids, keywords: []string{"oil", "coolant", "brake fluid", "fluid", "capacity", "viscosity"}},
	{intent: contractx.IntentTires, keywords: []string{"tire", "tyre", "psi", "pressure"}},
	{intent: contractx.IntentMaintenance, keywords: []string{"maintenance", "service", "interval", "schedule", "break-in"}},
	{intent: contractx.IntentDealer, keywords: []string{"dealer", "dealership", "near me", "nearby", "test ride"}, requiresZip: true},
	{intent: contractx.IntentParts, keywords: []string{"part number", "oem", "filter", "belt", "spark plug", "part"}},
	{intent: contractx.IntentAccessory, keywords: []string{"accessor", "windshield", "luggage", "backrest", "grips", "top case"}},
}

// subsystems the fluids intent can narrow a question to.
var subsystems = []string{"engine", "brake", "coolant", "transmission", "final drive"}

// Classify routes normalized text. It lower-cases internally; callers pass
// the normalizer's output unchanged.
func Classify(text string) Route {
	lowered := strings.ToLower(text)

	route := Route{
		Entities: contractx.Entities{
			Year:  extractYear(lowered),
			Model: extractModel(lowered),
			Zip:   extractZip(lowered),
		},
	}
	route.Entities.Subsystem = extractSubsystem(lowered)

	for _, group := range intentGroups {
		if !containsAny(lowered, group.keywords) {
			continue
		}
		if group.requiresZip {
			if route.Entities.Zip == "" {
				continue
			}
		} else if route.Entities.Model == "" {
			continue
		}
		route.Intent = group.intent
		route.KeywordMatch = true
		return route
	}

	route.Intent = contractx.IntentRecommend
	route.Profile = riderProfile(lowered)
	return route
}

func extractYear(lowered string) int {
	m := yearPattern.FindString(lowered)
	if m == "" {
		return contractx.DefaultModelYear
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return contractx.DefaultModelYear
	}
	return year
}

func extractModel(lowered string) string {
	for _, mp := range modelPatterns {
		if mp.pattern.MatchString(lowered) {
			return mp.model
		}
	}
	return ""
}

func extractZip(lowered string) string {
	return zipPattern.FindString(lowered)
}

func extractSubsystem(lowered string) string {
	for _, s := range subsystems {
		if strings.Contains(lowered, s) {
			return s
		}
	}
	return ""
}

func riderProfile(lowered string) contractx.RiderProfile {
	profile := contractx.RiderProfile{
		Experience: "intermediate",
		RideType:   "solo",
	}
	switch {
	case containsAny(lowered, []string{"new rider", "beginner", "first bike", "never ridden", "new to"}):
		profile.Experience = "new"
	case containsAny(lowered, []string{"expert", "experienced", "years of riding"}):
		profile.Experience = "expert"
	}
	switch {
	case containsAny(lowered, []string{"touring", "long trips", "road trip", "two-up", "passenger"}):
		profile.RideType = "touring"
	case containsAny(lowered, []string{"commute", "commuting", "to work"}):
		profile.RideType = "commute"
	}
	profile.ComfortPriority = containsAny(lowered, []string{"touring", "comfort", "comfortable"})
	return profile
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
