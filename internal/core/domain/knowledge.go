package domain

// KnowledgeSnippet is a unit of reference text (regulatory excerpt) loaded
// once at startup and queried by keyword-overlap relevance.
type KnowledgeSnippet struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Source   string         `json:"source,omitempty"`
}

// ScoredSnippet pairs a snippet with its relevance score for one query.
type ScoredSnippet struct {
	Snippet KnowledgeSnippet `json:"snippet"`
	Score   float64          `json:"score"`
}
