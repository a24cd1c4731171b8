package checklist

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/complykit/filingreview/internal/core/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "checklist.json", `{
		"company incorporation": {
			"required_documents": ["Memorandum of Association", "Articles of Association"],
			"required_sections": [{"name": "Shareholders", "reference": "ADGM Co Reg Regs, s.12"}],
			"allowed_document_types": ["Memorandum of Association"],
			"minimum_content_length": 100
		}
	}`)

	set, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cl, err := set.Get("company incorporation")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cl.ProcessType != "company incorporation" {
		t.Fatalf("expected process type backfilled from key, got %q", cl.ProcessType)
	}
	if len(cl.RequiredDocuments) != 2 || cl.RequiredDocuments[0] != domain.TypeMemorandumOfAssociation {
		t.Fatalf("unexpected required documents: %v", cl.RequiredDocuments)
	}
	if cl.RequiredSections[0].Reference != "ADGM Co Reg Regs, s.12" {
		t.Fatalf("unexpected section reference: %q", cl.RequiredSections[0].Reference)
	}
	if cl.MinimumContentLength != 100 {
		t.Fatalf("unexpected minimum content length: %d", cl.MinimumContentLength)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "checklist.yaml", `
annual filing:
  required_documents:
    - Register of Members
  required_sections:
    - name: Members
  allowed_document_types:
    - Register of Members
  minimum_content_length: 50
`)

	set, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cl, err := set.Get("annual filing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cl.RequiredSections[0].Name != "Members" || cl.RequiredSections[0].Reference != "" {
		t.Fatalf("unexpected required sections: %v", cl.RequiredSections)
	}
}

func TestLoadMissingFileIsConfigurationError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if !domain.IsKind(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoadMalformedIsConfigurationError(t *testing.T) {
	path := writeFile(t, "checklist.json", `{"broken"`)

	_, err := Load(path)
	if !domain.IsKind(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoadEmptySetIsConfigurationError(t *testing.T) {
	path := writeFile(t, "checklist.json", `{}`)

	_, err := Load(path)
	if !domain.IsKind(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestGetUnknownProcessType(t *testing.T) {
	set := Set{"a": {}}
	if _, err := set.Get("b"); !domain.IsKind(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestProcessTypesSorted(t *testing.T) {
	set := Set{"b": {}, "a": {}, "c": {}}
	if got := set.ProcessTypes(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("expected sorted process types, got %v", got)
	}
}
