package plaintext

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/complykit/filingreview/internal/core/domain"
	"github.com/complykit/filingreview/internal/core/ports"
)

// Extractor reads a stored plain-text document and yields its text and
// paragraph list. Tables and container properties do not exist for plain
// text, so those extraction fields stay empty.
type Extractor struct {
	storage ports.ObjectStorage
}

func NewExtractor(storage ports.ObjectStorage) *Extractor {
	return &Extractor{storage: storage}
}

func (e *Extractor) Extract(ctx context.Context, doc *domain.Document) (domain.Extraction, error) {
	reader, err := e.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		return domain.Extraction{}, domain.WrapError(domain.ErrExtraction, "open source document", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return domain.Extraction{}, domain.WrapError(domain.ErrExtraction, "read source document", err)
	}

	if !utf8.Valid(raw) {
		return domain.Extraction{}, domain.WrapError(domain.ErrExtraction, "decode source document", fmt.Errorf("not valid utf-8: %s", doc.Filename))
	}

	text := strings.TrimSpace(string(raw))
	return domain.Extraction{
		FullText:   text,
		Paragraphs: splitParagraphs(text),
		Properties: map[string]string{},
	}, nil
}

func splitParagraphs(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
