package app

import (
	"regexp"
	"strings"

	"code_reviewer/internal/domain"
)

var (
	// CR runs before a line feed, so "\r\r\n" is one line ending
	lineEnd = regexp.MustCompile(`\r+\n`)
	// two or more consecutive blank (whitespace-only) lines
	blankRun = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)
)

// Normalize collapses runs of blank lines into one and trims the result. It is idempotent.
func Normalize(s string) string {
	s = lineEnd.ReplaceAllString(s, "\n")
	s = blankRun.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Merge joins the usable texts in the order given, separated by a blank line.
// Failed or blank results are skipped; if nothing is left the NoValidResponses marker is returned.
func Merge(results ...domain.ProviderResult) string {
	texts := make([]string, 0, len(results))
	for _, r := range results {
		if !r.Succeeded {
			continue
		}
		if t := strings.TrimSpace(r.Text); t != "" {
			texts = append(texts, t)
		}
	}
	if len(texts) == 0 {
		return domain.NoValidResponses
	}
	return Normalize(strings.Join(texts, "\n\n"))
}
