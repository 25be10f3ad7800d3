// Package normalize canonicalizes known speech-to-text mis-transcriptions of
// the brand phrase "Can-Am" before the question reaches the router or the
// assistant.
package normalize

import "regexp"

const canonical = "Can-Am"

type substitution struct {
	pattern *regexp.Regexp
	with    string
}

// Ordered: specific phonetic variants first, then a general form that fixes
// spacing and case of any remaining correctly-worded occurrence. The general
// form also makes the pass idempotent, since "Can-Am" matches it and maps to
// itself.
var substitutions = []substitution{
	{regexp.MustCompile(`(?i)\bcan\s+of\s+ham\b`), canonical},
	{regexp.MustCompile(`(?i)\bcan\s+ham\b`), canonical},
	{regexp.MustCompile(`(?i)\bkhan\s*am\b`), canonical},
	{regexp.MustCompile(`(?i)\bcann?[\s-]?um\b`), canonical},
	{regexp.MustCompile(`(?i)\bkan[\s-]?am\b`), canonical},
	{regexp.MustCompile(`(?i)\bcan(?:h|n)am\b`), canonical},
	{regexp.MustCompile(`(?i)\bcan[\s-]?am\b`), canonical},
}

// Text rewrites every configured variant to the canonical spelling.
// Pure; Text(Text(s)) == Text(s).
func Text(text string) string {
	for _, s := range substitutions {
		text = s.pattern.ReplaceAllString(text, s.with)
	}
	return text
}
