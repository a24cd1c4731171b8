package domain

// RequiredSection is one section a checklist demands, with the regulatory
// reference attached to findings when the section is absent. Checklists are
// declared as ordered lists so finding order is deterministic.
type RequiredSection struct {
	Name      string `json:"name" yaml:"name"`
	Reference string `json:"reference,omitempty" yaml:"reference,omitempty"`
}

// Checklist declares what a complete filing for one process type looks like.
// Loaded once at startup and read-only for the lifetime of the process.
type Checklist struct {
	ProcessType          string            `json:"process_type" yaml:"process_type"`
	RequiredDocuments    []DocumentType    `json:"required_documents" yaml:"required_documents"`
	RequiredSections     []RequiredSection `json:"required_sections" yaml:"required_sections"`
	AllowedDocumentTypes []string          `json:"allowed_document_types" yaml:"allowed_document_types"`
	MinimumContentLength int               `json:"minimum_content_length" yaml:"minimum_content_length"`
}
