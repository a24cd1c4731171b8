package keyword

import (
	"strings"

	"github.com/complykit/filingreview/internal/core/domain"
)

// fuzzyThreshold is the partial-ratio score a keyword must exceed for the
// fuzzy pass to claim a match, on a 0-100 scale.
const fuzzyThreshold = 80

// Classifier infers a document type from filename and content using an
// ordered label/keyword table. Labels are tested in declaration order and
// the first match wins, so ties are deterministic.
type Classifier struct {
	table     []domain.LabelKeywords
	threshold int
}

func NewClassifier(table []domain.LabelKeywords) *Classifier {
	if len(table) == 0 {
		table = DefaultTable()
	}
	return &Classifier{table: table, threshold: fuzzyThreshold}
}

// Classify runs an exact case-folded substring pass over filename and
// content, then a fuzzy partial-ratio pass over content only, and returns
// Unknown when neither pass matches.
func (c *Classifier) Classify(filename, fullText string) domain.DocumentType {
	name := strings.ToLower(filename)
	content := strings.ToLower(fullText)

	for _, entry := range c.table {
		for _, kw := range entry.Keywords {
			phrase := strings.ToLower(kw)
			if phrase == "" {
				continue
			}
			if strings.Contains(name, phrase) || strings.Contains(content, phrase) {
				return entry.Type
			}
		}
	}

	for _, entry := range c.table {
		for _, kw := range entry.Keywords {
			if partialRatio(strings.ToLower(kw), content) > c.threshold {
				return entry.Type
			}
		}
	}

	return domain.TypeUnknown
}
