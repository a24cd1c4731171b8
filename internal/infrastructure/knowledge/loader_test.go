package knowledge

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoadMappingOfLists(t *testing.T) {
	path := writeFile(t, "kb.json", `{
		"incorporation": [
			{"content": "shareholders clause", "source": "s.12"},
			{"content": "directors clause", "source": "s.14"}
		],
		"filing": {"content": "registers clause", "source": "s.22"}
	}`)

	store := Load(path, nil)
	if store.Len() != 3 {
		t.Fatalf("expected 3 snippets, got %d", store.Len())
	}

	results := store.Query("registers", 5)
	if len(results) != 1 || results[0].Snippet.Source != "s.22" {
		t.Fatalf("expected singleton value to become one snippet, got %v", results)
	}
}

func TestLoadFlatList(t *testing.T) {
	path := writeFile(t, "kb.json", `[
		{"content": "alpha", "metadata": {"topic": "a"}},
		"bare string snippet"
	]`)

	store := Load(path, nil)
	if store.Len() != 2 {
		t.Fatalf("expected 2 snippets, got %d", store.Len())
	}

	results := store.Query("bare", 5)
	if len(results) != 1 || results[0].Snippet.Source != path {
		t.Fatalf("expected bare string to default source to path, got %v", results)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "kb.yaml", "rules:\n  - content: yaml snippet\n    source: s.1\n")

	store := Load(path, nil)
	if store.Len() != 1 {
		t.Fatalf("expected 1 snippet, got %d", store.Len())
	}
}

func TestLoadRawTextBecomesSingleSnippet(t *testing.T) {
	path := writeFile(t, "kb.txt", "free-form regulatory notes")

	store := Load(path, nil)
	if store.Len() != 1 {
		t.Fatalf("expected 1 snippet, got %d", store.Len())
	}
	results := store.Query("regulatory", 5)
	if len(results) != 1 || results[0].Snippet.Source != path {
		t.Fatalf("expected whole file as one snippet sourced from path, got %v", results)
	}
}

func TestLoadMalformedFallsBackToEmptyStore(t *testing.T) {
	path := writeFile(t, "kb.json", `{"broken":`)

	store := Load(path, nil)
	if store.Len() != 0 {
		t.Fatalf("expected empty store on malformed input, got %d snippets", store.Len())
	}
}

func TestLoadMissingFileFallsBackToEmptyStore(t *testing.T) {
	store := Load(filepath.Join(t.TempDir(), "absent.json"), nil)
	if store.Len() != 0 {
		t.Fatalf("expected empty store for missing file, got %d snippets", store.Len())
	}
}

func TestLoadEmptyPath(t *testing.T) {
	if store := Load("", nil); store.Len() != 0 {
		t.Fatalf("expected empty store for empty path")
	}
}

func TestLoadSkipsEntriesWithoutContent(t *testing.T) {
	path := writeFile(t, "kb.json", `[{"source": "no content here"}, {"content": "kept"}]`)

	store := Load(path, nil)
	if store.Len() != 1 {
		t.Fatalf("expected 1 snippet, got %d", store.Len())
	}
}
