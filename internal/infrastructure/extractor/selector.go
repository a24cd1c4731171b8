package extractor

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/complykit/filingreview/internal/core/domain"
	"github.com/complykit/filingreview/internal/core/ports"
	"github.com/complykit/filingreview/internal/infrastructure/extractor/pdfext"
	"github.com/complykit/filingreview/internal/infrastructure/extractor/plaintext"
)

// Selector routes extraction to the adapter matching the document container.
// PDF uploads go to the pdf adapter; everything else is treated as text.
type Selector struct {
	pdf  ports.TextExtractor
	text ports.TextExtractor
}

func NewSelector(storage ports.ObjectStorage) *Selector {
	return &Selector{
		pdf:  pdfext.NewExtractor(storage),
		text: plaintext.NewExtractor(storage),
	}
}

func (s *Selector) Extract(ctx context.Context, doc *domain.Document) (domain.Extraction, error) {
	if isPDF(doc) {
		return s.pdf.Extract(ctx, doc)
	}
	return s.text.Extract(ctx, doc)
}

func isPDF(doc *domain.Document) bool {
	if strings.EqualFold(filepath.Ext(doc.Filename), ".pdf") {
		return true
	}
	return strings.EqualFold(doc.MimeType, "application/pdf")
}
