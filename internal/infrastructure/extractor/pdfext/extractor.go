package pdfext

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/complykit/filingreview/internal/core/domain"
	"github.com/complykit/filingreview/internal/core/ports"
)

// Extractor pulls plain text and Info-dictionary properties out of a stored
// PDF document.
type Extractor struct {
	storage ports.ObjectStorage
}

func NewExtractor(storage ports.ObjectStorage) *Extractor {
	return &Extractor{storage: storage}
}

func (e *Extractor) Extract(ctx context.Context, doc *domain.Document) (domain.Extraction, error) {
	source, err := e.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		return domain.Extraction{}, domain.WrapError(domain.ErrExtraction, "open source document", err)
	}
	defer source.Close()

	raw, err := io.ReadAll(source)
	if err != nil {
		return domain.Extraction{}, domain.WrapError(domain.ErrExtraction, "read source document", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return domain.Extraction{}, domain.WrapError(domain.ErrExtraction, "parse pdf container", err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return domain.Extraction{}, domain.WrapError(domain.ErrExtraction, "extract pdf text", err)
	}
	textBytes, err := io.ReadAll(textReader)
	if err != nil {
		return domain.Extraction{}, domain.WrapError(domain.ErrExtraction, "extract pdf text", err)
	}

	text := strings.TrimSpace(string(textBytes))
	return domain.Extraction{
		FullText:   text,
		Paragraphs: splitParagraphs(text),
		Properties: infoProperties(reader),
	}, nil
}

// infoProperties copies the well-known Info dictionary entries when present.
func infoProperties(reader *pdf.Reader) map[string]string {
	props := map[string]string{}
	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return props
	}
	for _, key := range []string{"Title", "Author", "CreationDate", "ModDate"} {
		value := info.Key(key)
		if value.Kind() == pdf.String {
			if text := value.Text(); text != "" {
				props[strings.ToLower(key)] = text
			}
		}
	}
	return props
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
