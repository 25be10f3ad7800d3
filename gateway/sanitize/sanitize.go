// Package sanitize strips the citation artifacts the assistant provider
// embeds in answers sourced from its knowledge files.
package sanitize

import (
	"regexp"
	"strings"
)

// Markers look like 【4:2†source】.
var (
	citationPattern   = regexp.MustCompile(`【[^】]*】`)
	horizontalRunFill = regexp.MustCompile(`[ \t]{2,}`)
)

// Answer removes bracketed citation markers and any annotation substrings
// the provider reported alongside the text, then collapses runs of spaces
// and tabs left behind. Newlines and all other content pass through
// untouched.
func Answer(text string, annotations []string) string {
	text = citationPattern.ReplaceAllString(text, "")
	for _, ann := range annotations {
		if ann == "" {
			continue
		}
		text = strings.ReplaceAll(text, ann, "")
	}
	text = horizontalRunFill.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
