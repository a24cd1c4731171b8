package keyword

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/complykit/filingreview/internal/core/domain"
)

// DefaultTable is the built-in label table for company incorporation
// filings. Order matters: first-declared label wins on collisions.
func DefaultTable() []domain.LabelKeywords {
	return []domain.LabelKeywords{
		{Type: domain.TypeMemorandumOfAssociation, Keywords: []string{"memorandum", "moa", "memorandum of association"}},
		{Type: domain.TypeArticlesOfAssociation, Keywords: []string{"articles", "aoa", "articles of association"}},
		{Type: domain.TypeRegisterOfMembers, Keywords: []string{"register of members", "members register"}},
		{Type: domain.TypeRegisterOfDirectors, Keywords: []string{"register of directors", "directors register"}},
		{Type: domain.TypeUBOForm, Keywords: []string{"ubo", "ultimate beneficial owner", "beneficial owner"}},
		{Type: domain.TypeCertificateOfIncorporation, Keywords: []string{"certificate of incorporation", "incorporation certificate"}},
	}
}

// LoadTable reads a label table from a YAML file. The file holds an ordered
// list of {type, keywords} entries; declaration order is preserved.
func LoadTable(path string) ([]domain.LabelKeywords, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrConfiguration, "read label table", err)
	}

	var table []domain.LabelKeywords
	if err := yaml.Unmarshal(raw, &table); err != nil {
		return nil, domain.WrapError(domain.ErrConfiguration, "parse label table", err)
	}
	if len(table) == 0 {
		return nil, domain.WrapError(domain.ErrConfiguration, "parse label table", fmt.Errorf("no label entries in %s", path))
	}
	for i, entry := range table {
		if entry.Type == "" || len(entry.Keywords) == 0 {
			return nil, domain.WrapError(domain.ErrConfiguration, "parse label table", fmt.Errorf("entry %d is missing type or keywords", i))
		}
	}
	return table, nil
}
