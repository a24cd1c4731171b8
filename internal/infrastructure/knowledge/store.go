package knowledge

import (
	"sort"
	"strings"

	"github.com/complykit/filingreview/internal/core/domain"
)

const (
	defaultQueryLimit = 5
	contextSnippets   = 3
)

// Store holds an in-memory collection of regulatory reference snippets,
// loaded once at startup and read-only thereafter. Ranking is plain
// keyword-overlap scoring; ties keep insertion order.
type Store struct {
	snippets []domain.KnowledgeSnippet
}

func NewStore(snippets []domain.KnowledgeSnippet) *Store {
	return &Store{snippets: snippets}
}

// Len reports how many snippets the store holds.
func (s *Store) Len() int {
	return len(s.snippets)
}

// Query scores every snippet against the whitespace-tokenized query:
// score = (query words occurring as substrings of the folded content) /
// (total query words). Zero-score snippets are dropped; results are sorted
// by descending score with a stable sort so insertion order breaks ties.
func (s *Store) Query(query string, limit int) []domain.ScoredSnippet {
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return nil
	}

	var results []domain.ScoredSnippet
	for _, snippet := range s.snippets {
		content := strings.ToLower(snippet.Content)
		matched := 0
		for _, word := range words {
			if strings.Contains(content, word) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		results = append(results, domain.ScoredSnippet{
			Snippet: snippet,
			Score:   float64(matched) / float64(len(words)),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// RelevantContext concatenates the top-ranked snippets under a word budget.
// Whole snippets accumulate while they fit; the first snippet that would
// overflow is truncated to exactly the remaining budget and nothing after
// it is included.
func (s *Store) RelevantContext(query string, maxTokens int) string {
	results := s.Query(query, contextSnippets)

	var parts []string
	total := 0
	for _, result := range results {
		words := strings.Fields(result.Snippet.Content)
		if total+len(words) <= maxTokens {
			parts = append(parts, result.Snippet.Content)
			total += len(words)
			continue
		}
		if remaining := maxTokens - total; remaining > 0 {
			parts = append(parts, strings.Join(words[:remaining], " "))
		}
		break
	}
	return strings.Join(parts, "\n\n")
}
