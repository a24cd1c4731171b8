package domain

// DocumentType is the classified category of an uploaded filing. The values
// are the display labels checklists refer to, so they serialize as-is.
type DocumentType string

const (
	TypeMemorandumOfAssociation    DocumentType = "Memorandum of Association"
	TypeArticlesOfAssociation      DocumentType = "Articles of Association"
	TypeRegisterOfMembers          DocumentType = "Register of Members"
	TypeRegisterOfDirectors        DocumentType = "Register of Directors"
	TypeUBOForm                    DocumentType = "UBO Form"
	TypeCertificateOfIncorporation DocumentType = "Certificate of Incorporation"
	TypeUnknown                    DocumentType = "Unknown"
)

// LabelKeywords binds a document type to its matching keyword phrases.
// Declaration order is significant: the classifier tests labels in order and
// the first match wins.
type LabelKeywords struct {
	Type     DocumentType `json:"type" yaml:"type"`
	Keywords []string     `json:"keywords" yaml:"keywords"`
}
