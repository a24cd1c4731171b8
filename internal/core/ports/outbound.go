package ports

import (
	"context"
	"io"

	"github.com/complykit/filingreview/internal/core/domain"
)

// DocumentRepository persists and reads document state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveAnalysis(ctx context.Context, id string, analysis domain.Analysis) error
}

// ObjectStorage stores raw uploads.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes ingestion events.
type MessageQueue interface {
	PublishDocumentIngested(ctx context.Context, documentID string) error
	SubscribeDocumentIngested(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor yields the raw text, paragraphs, tables and properties of a
// stored document. Any failure is a document-level error: callers record it
// on that document and continue with the rest of the batch.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (domain.Extraction, error)
}

// DocumentClassifier maps a (filename, full text) pair to a document type.
// Implementations are deterministic pure functions over static keyword
// configuration.
type DocumentClassifier interface {
	Classify(filename, fullText string) domain.DocumentType
}

// SectionScanner finds section-heading candidates in raw text, in input
// order.
type SectionScanner interface {
	Sections(fullText string) []string
}

// KnowledgeRetriever ranks reference snippets against a query by keyword
// overlap. It never gates report generation.
type KnowledgeRetriever interface {
	Query(query string, limit int) []domain.ScoredSnippet
	RelevantContext(query string, maxTokens int) string
}
