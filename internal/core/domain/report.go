package domain

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Finding is one detected compliance deficiency. Document is a filename
// back-reference for display, not ownership. Findings are never mutated
// after creation.
type Finding struct {
	Document    string   `json:"document"`
	Section     string   `json:"section"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Suggestion  string   `json:"suggestion"`
	Reference   string   `json:"reference"`
	Context     string   `json:"context,omitempty"`
}

// ComplianceReport is the sole artifact of a review run. It is built once,
// never mutated, and serializes losslessly to plain JSON.
type ComplianceReport struct {
	TotalDocuments     int            `json:"total_documents"`
	RequiredDocuments  int            `json:"required_documents"`
	MissingDocuments   []DocumentType `json:"missing_documents"`
	UploadedDocuments  []Document     `json:"uploaded_documents"`
	Issues             []Finding      `json:"issues"`
	ProcessType        string         `json:"process_type"`
	ComplianceScore    int            `json:"compliance_score"`
}

// IssuesForDocument filters the report's issue list by document filename,
// in report order. Used by the export step.
func (r *ComplianceReport) IssuesForDocument(filename string) []Finding {
	var out []Finding
	for _, issue := range r.Issues {
		if issue.Document == filename {
			out = append(out, issue)
		}
	}
	return out
}
