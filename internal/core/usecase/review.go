package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/complykit/filingreview/internal/core/domain"
)

const defaultReference = "generic regulatory reference"

// ReviewUseCase evaluates classified documents against the checklist for a
// declared process type. Both entry points are pure functions of their
// inputs plus the read-only checklist configuration, so identical inputs
// always produce field-wise identical output.
type ReviewUseCase struct {
	checklists map[string]domain.Checklist
}

func NewReviewUseCase(checklists map[string]domain.Checklist) *ReviewUseCase {
	return &ReviewUseCase{checklists: checklists}
}

// GenerateReport builds the compliance report: missing required documents in
// checklist order, then per-document findings with document order outer and
// checklist section order inner.
func (uc *ReviewUseCase) GenerateReport(documents []domain.Document, processType string) (*domain.ComplianceReport, error) {
	cl, err := uc.checklist(processType)
	if err != nil {
		return nil, err
	}

	uploadedTypes := make([]domain.DocumentType, 0, len(documents))
	for _, doc := range documents {
		uploadedTypes = append(uploadedTypes, effectiveType(doc))
	}

	missing := make([]domain.DocumentType, 0, len(cl.RequiredDocuments))
	for _, required := range cl.RequiredDocuments {
		if !containsType(uploadedTypes, required) {
			missing = append(missing, required)
		}
	}

	issues := make([]domain.Finding, 0)
	for _, doc := range documents {
		issues = append(issues, uc.documentIssues(doc, cl)...)
	}

	return &domain.ComplianceReport{
		TotalDocuments:    len(documents),
		RequiredDocuments: len(cl.RequiredDocuments),
		MissingDocuments:  missing,
		UploadedDocuments: documents,
		Issues:            issues,
		ProcessType:       processType,
		ComplianceScore:   score(len(missing), len(issues)),
	}, nil
}

// documentIssues emits one high-severity finding per required section absent
// from the document's text. A document whose extraction failed gets a single
// extraction finding instead of a per-section cascade over an empty body.
func (uc *ReviewUseCase) documentIssues(doc domain.Document, cl domain.Checklist) []domain.Finding {
	if doc.Error != "" {
		return []domain.Finding{{
			Document:    doc.Filename,
			Section:     "Extraction",
			Description: fmt.Sprintf("Document could not be processed: %s", doc.Error),
			Severity:    domain.SeverityHigh,
			Suggestion:  "Re-upload a readable copy of the document",
			Reference:   "document submission requirements",
		}}
	}

	content := strings.ToLower(doc.RawText)
	var findings []domain.Finding
	for _, section := range cl.RequiredSections {
		if strings.Contains(content, strings.ToLower(section.Name)) {
			continue
		}
		reference := section.Reference
		if reference == "" {
			reference = defaultReference
		}
		findings = append(findings, domain.Finding{
			Document:    doc.Filename,
			Section:     section.Name,
			Description: fmt.Sprintf("Missing required section: %s", section.Name),
			Severity:    domain.SeverityHigh,
			Suggestion:  fmt.Sprintf("Add the %s section to the document", section.Name),
			Reference:   reference,
		})
	}
	return findings
}

// CheckDocument validates a single document's type and content length. Its
// findings are intentionally not merged into GenerateReport's issue list or
// score; the two paths are independent and callers merge when they need both.
func (uc *ReviewUseCase) CheckDocument(doc domain.Document, processType string) ([]domain.Finding, error) {
	cl, err := uc.checklist(processType)
	if err != nil {
		return nil, err
	}

	findings := make([]domain.Finding, 0)

	docType := effectiveType(doc)
	if !containsString(cl.AllowedDocumentTypes, string(docType)) {
		findings = append(findings, domain.Finding{
			Document:    doc.Filename,
			Section:     "Document Type",
			Description: fmt.Sprintf("Invalid document type: %s", docType),
			Severity:    domain.SeverityHigh,
			Suggestion:  fmt.Sprintf("Upload a valid document type: %s", strings.Join(cl.AllowedDocumentTypes, ", ")),
			Reference:   "document type requirements",
		})
	}

	if length := utf8.RuneCountInString(doc.RawText); length < cl.MinimumContentLength {
		findings = append(findings, domain.Finding{
			Document:    doc.Filename,
			Section:     "Content",
			Description: fmt.Sprintf("Document content too short (%d characters)", length),
			Severity:    domain.SeverityMedium,
			Suggestion:  fmt.Sprintf("Ensure the document has at least %d characters", cl.MinimumContentLength),
			Reference:   "content requirements",
		})
	}

	return findings, nil
}

func (uc *ReviewUseCase) checklist(processType string) (domain.Checklist, error) {
	cl, ok := uc.checklists[processType]
	if !ok {
		return domain.Checklist{}, domain.WrapError(domain.ErrConfiguration, "lookup checklist", fmt.Errorf("unknown process type %q", processType))
	}
	return cl, nil
}

// effectiveType treats failed or unclassified documents as Unknown.
func effectiveType(doc domain.Document) domain.DocumentType {
	if doc.Error != "" || doc.InferredType == "" {
		return domain.TypeUnknown
	}
	return doc.InferredType
}

// score applies the fixed linear penalty: 20 points per missing required
// document and 10 per issue, clamped at zero. Deliberately blunt; severity
// does not weight the result.
func score(missingCount, issueCount int) int {
	s := 100 - 20*missingCount - 10*issueCount
	if s < 0 {
		return 0
	}
	return s
}

func containsType(haystack []domain.DocumentType, needle domain.DocumentType) bool {
	for _, t := range haystack {
		if t == needle {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
