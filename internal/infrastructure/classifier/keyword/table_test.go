package keyword

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/complykit/filingreview/internal/core/domain"
)

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.yaml")
	content := `
- type: Memorandum of Association
  keywords: [memorandum, moa]
- type: UBO Form
  keywords: [ubo]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("load table: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(table))
	}
	if table[0].Type != domain.TypeMemorandumOfAssociation {
		t.Fatalf("expected declaration order preserved, got %q first", table[0].Type)
	}
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "absent.yaml"))
	if !domain.IsKind(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoadTableRejectsEmptyEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.yaml")
	if err := os.WriteFile(path, []byte("- type: X\n  keywords: []\n"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	_, err := LoadTable(path)
	if !domain.IsKind(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
