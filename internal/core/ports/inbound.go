package ports

import (
	"context"
	"io"

	"github.com/complykit/filingreview/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// DocumentProcessor is the inbound contract for asynchronous document
// analysis (extract, classify, detect sections).
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}

// DocumentReader is the inbound read model for document metadata/state.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Document, error)
}

// ReviewService evaluates classified documents against a checklist. Both
// operations are pure functions of their inputs; the checklist set is
// read-only configuration.
type ReviewService interface {
	GenerateReport(documents []domain.Document, processType string) (*domain.ComplianceReport, error)
	CheckDocument(doc domain.Document, processType string) ([]domain.Finding, error)
}
