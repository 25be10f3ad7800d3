package gateway

import (
	"context"
	"errors"
	"strings"
	"testing"

	catalogx "github.com/openroadai/canam-assist/gateway/catalog"
	composerx "github.com/openroadai/canam-assist/gateway/compose"
	contractx "github.com/openroadai/canam-assist/gateway/contract"
	dealersx "github.com/openroadai/canam-assist/gateway/dealers"
)

type fakeAsker struct {
	question string
	answer   contractx.Answer
	err      error
}

func (f *fakeAsker) Ask(ctx context.Context, question string) (contractx.Answer, error) {
	f.question = question
	return f.answer, f.err
}

type stubLocator struct {
	radiusMeters int
}

func (s *stubLocator) Geocode(ctx context.Context, location string) (contractx.LatLng, error) {
	return contractx.LatLng{Lat: 34.09, Lng: -118.41}, nil
}

func (s *stubLocator) NearbyDealers(ctx context.Context, at contractx.LatLng, radiusMeters int, keyword string) ([]contractx.PlaceRef, error) {
	s.radiusMeters = radiusMeters
	return []contractx.PlaceRef{{PlaceID: "p1", Name: "Can-Am of Beverly Hills", Address: "90210 Rodeo Dr"}}, nil
}

func (s *stubLocator) PlaceDetails(ctx context.Context, placeID string) (contractx.PlaceDetail, error) {
	return contractx.PlaceDetail{Phone: "310-555-0100"}, nil
}

func newGateway(t *testing.T, asker Asker) *Gateway {
	t.Helper()
	return newGatewayWithFinder(t, asker, dealersx.New(nil))
}

func newGatewayWithFinder(t *testing.T, asker Asker, finder *dealersx.Finder) *Gateway {
	t.Helper()
	catalog, err := catalogx.NewStatic()
	if err != nil {
		t.Fatalf("NewStatic: %v", err)
	}
	g, err := New(composerx.New(catalog, finder), asker)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestHandleKeywordQuestionStaysDeterministic(t *testing.T) {
	t.Parallel()

	// A configured asker must never see a keyword-matched question.
	asker := &fakeAsker{answer: contractx.Answer{Text: "nope", Source: contractx.SourceAgent}}
	g := newGateway(t, asker)

	answer, err := g.Handle(context.Background(), "How much oil does a 2024 Ryker take?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer.Source != contractx.SourceDeterministic {
		t.Errorf("source = %q, want deterministic", answer.Source)
	}
	if !strings.Contains(answer.Text, "3.5 L") {
		t.Errorf("answer = %q, want oil capacity", answer.Text)
	}
	if asker.question != "" {
		t.Errorf("asker received %q, want no call", asker.question)
	}
}

func TestHandleFreeFormGoesToAssistant(t *testing.T) {
	t.Parallel()

	asker := &fakeAsker{answer: contractx.Answer{Text: "agent reply", Source: contractx.SourceAgent}}
	g := newGateway(t, asker)

	answer, err := g.Handle(context.Background(), "Is a can of ham spyder hard to ride in the rain?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer.Text != "agent reply" {
		t.Errorf("answer = %q", answer.Text)
	}
	if !strings.Contains(asker.question, "Can-Am") {
		t.Errorf("asker received %q, want normalized brand name", asker.question)
	}
	if strings.Contains(strings.ToLower(asker.question), "can of ham") {
		t.Errorf("asker received %q, phonetic variant survived normalization", asker.question)
	}
}

func TestHandleFreeFormWithoutAssistantFallsBack(t *testing.T) {
	t.Parallel()

	g := newGateway(t, nil)

	answer, err := g.Handle(context.Background(), "I'm brand new to riding, what should I get?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer.Source != contractx.SourceDeterministic {
		t.Errorf("source = %q, want deterministic fallback", answer.Source)
	}
	if !strings.Contains(answer.Text, "Ryker") {
		t.Errorf("answer = %q, want Ryker for a new rider", answer.Text)
	}
}

func TestHandleDealerQuestion(t *testing.T) {
	t.Parallel()

	locator := &stubLocator{}
	g := newGatewayWithFinder(t, nil, dealersx.New(locator))

	answer, err := g.Handle(context.Background(), "Where can I find a dealer near 90210?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer.Source != contractx.SourceDeterministic {
		t.Errorf("source = %q, want deterministic", answer.Source)
	}
	if !strings.Contains(answer.Text, "Can-Am of Beverly Hills") {
		t.Errorf("answer = %q, want the dealer name", answer.Text)
	}
	if locator.radiusMeters != 50*1609 {
		t.Errorf("radius = %d meters, want the 50-mile default", locator.radiusMeters)
	}
}

func TestHandleEmptyQuestion(t *testing.T) {
	t.Parallel()

	g := newGateway(t, nil)
	for _, q := range []string{"", "   ", "\n\t"} {
		if _, err := g.Handle(context.Background(), q); !errors.Is(err, contractx.ErrEmptyQuestion) {
			t.Errorf("question %q: err = %v, want ErrEmptyQuestion", q, err)
		}
	}
}

func TestHandleAssistantFailurePropagates(t *testing.T) {
	t.Parallel()

	asker := &fakeAsker{err: contractx.ErrRunTimeout}
	g := newGateway(t, asker)

	_, err := g.Handle(context.Background(), "tell me a story about three wheels")
	if !errors.Is(err, contractx.ErrRunTimeout) {
		t.Fatalf("err = %v, want ErrRunTimeout", err)
	}
}

func TestNewRequiresComposer(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, nil); err == nil {
		t.Fatal("expected error for nil composer")
	}
}
