package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/complykit/filingreview/internal/core/domain"
	"github.com/complykit/filingreview/internal/core/ports"
)

// ProcessDocumentUseCase runs the per-document analysis pipeline: extract
// text, classify, detect sections, persist the result. Failures are
// recorded on the document and never leak into other documents of a batch.
type ProcessDocumentUseCase struct {
	repo       ports.DocumentRepository
	extractor  ports.TextExtractor
	classifier ports.DocumentClassifier
	scanner    ports.SectionScanner
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	extractor ports.TextExtractor,
	classifier ports.DocumentClassifier,
	scanner ports.SectionScanner,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:       repo,
		extractor:  extractor,
		classifier: classifier,
		scanner:    scanner,
	}
}

func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	if err := uc.repo.UpdateStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	analysis, err := uc.analyze(ctx, documentID)
	if err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.SaveAnalysis(ctx, documentID, analysis); err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.UpdateStatus(ctx, documentID, domain.StatusReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}

	return nil
}

func (uc *ProcessDocumentUseCase) analyze(ctx context.Context, documentID string) (domain.Analysis, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("fetch document by id: %w", err)
	}

	extraction, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return domain.Analysis{}, domain.WrapError(domain.ErrExtraction, "extract document", err)
	}

	return domain.Analysis{
		RawText:          extraction.FullText,
		WordCount:        len(strings.Fields(extraction.FullText)),
		Paragraphs:       extraction.Paragraphs,
		Tables:           extraction.Tables,
		Properties:       extraction.Properties,
		InferredType:     uc.classifier.Classify(doc.Filename, extraction.FullText),
		DetectedSections: uc.scanner.Sections(extraction.FullText),
	}, nil
}

func (uc *ProcessDocumentUseCase) markFailed(ctx context.Context, documentID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.repo.UpdateStatus(ctx, documentID, domain.StatusFailed, processErr.Error())
}
