package domain

import "time"

type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "uploaded"
	StatusProcessing DocumentStatus = "processing"
	StatusReady      DocumentStatus = "ready"
	StatusFailed     DocumentStatus = "failed"
)

// Document is one uploaded filing. Extraction and classification fields are
// populated by the worker pipeline; a failed extraction leaves Error set and
// the analysis fields empty. Documents are immutable once a review run has
// picked them up.
type Document struct {
	ID               string            `json:"id"`
	Filename         string            `json:"filename"`
	MimeType         string            `json:"mime_type"`
	StoragePath      string            `json:"storage_path"`
	Status           DocumentStatus    `json:"status"`
	Error            string            `json:"error,omitempty"`
	RawText          string            `json:"raw_text,omitempty"`
	WordCount        int               `json:"word_count,omitempty"`
	Paragraphs       []string          `json:"paragraphs,omitempty"`
	Tables           [][][]string      `json:"tables,omitempty"`
	Properties       map[string]string `json:"properties,omitempty"`
	InferredType     DocumentType      `json:"inferred_type,omitempty"`
	DetectedSections []string          `json:"detected_sections,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// Analysis carries everything the worker derives from a stored document in
// one pass: extraction output plus classification and structure signals.
type Analysis struct {
	RawText          string            `json:"raw_text"`
	WordCount        int               `json:"word_count"`
	Paragraphs       []string          `json:"paragraphs"`
	Tables           [][][]string      `json:"tables"`
	Properties       map[string]string `json:"properties"`
	InferredType     DocumentType      `json:"inferred_type"`
	DetectedSections []string          `json:"detected_sections"`
}

// Extraction is what a text extractor adapter yields for one document.
type Extraction struct {
	FullText   string            `json:"full_text"`
	Paragraphs []string          `json:"paragraphs"`
	Tables     [][][]string      `json:"tables"`
	Properties map[string]string `json:"properties"`
}
