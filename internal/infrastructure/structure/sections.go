package structure

import (
	"regexp"
	"strings"
	"unicode"
)

const defaultMaxSections = 10

var numberedHeading = regexp.MustCompile(`^\d+\.`)

// Scanner finds section-heading candidates in raw text. A candidate is a
// trimmed non-empty line that is entirely upper-case, ends with a colon, or
// starts with "N." numbering. Raw candidate lines are returned as-is in
// input order, truncated to the scanner's cap. No semantic dedup.
type Scanner struct {
	maxSections int
}

func NewScanner(maxSections int) *Scanner {
	if maxSections <= 0 {
		maxSections = defaultMaxSections
	}
	return &Scanner{maxSections: maxSections}
}

func (s *Scanner) Sections(fullText string) []string {
	var out []string
	for _, line := range strings.Split(fullText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isAllUpper(line) || strings.HasSuffix(line, ":") || numberedHeading.MatchString(line) {
			out = append(out, line)
			if len(out) == s.maxSections {
				break
			}
		}
	}
	return out
}

// isAllUpper requires at least one cased rune and no lower-case runes.
func isAllUpper(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}
