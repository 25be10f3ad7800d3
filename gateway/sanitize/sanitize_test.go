package sanitize

import "testing"

func TestAnswerRemovesCitationMarkers(t *testing.T) {
	t.Parallel()

	got := Answer("Torque is 105 Nm【4:2†source】.", nil)
	if got != "Torque is 105 Nm." {
		t.Fatalf("got %q", got)
	}
}

func TestAnswerRemovesAnnotationSubstrings(t *testing.T) {
	t.Parallel()

	got := Answer("Use XPS oil [doc1] only.", []string{"[doc1]", ""})
	if got != "Use XPS oil only." {
		t.Fatalf("got %q", got)
	}
}

func TestAnswerPreservesNewlinesAndMarkup(t *testing.T) {
	t.Parallel()

	in := "Line one 【1:0†kb】has **bold** text.\nLine two stays."
	want := "Line one has **bold** text.\nLine two stays."
	if got := Answer(in, nil); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAnswerCollapsesSpacesAndTrims(t *testing.T) {
	t.Parallel()

	if got := Answer("  a   b\tc  ", nil); got != "a b\tc" {
		t.Fatalf("got %q", got)
	}
}
