package knowledge

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/complykit/filingreview/internal/core/domain"
)

// Load reads a knowledge-base source from disk. JSON/YAML files may hold a
// mapping (values are snippet lists or singletons) or a flat snippet list;
// anything else is wrapped into one synthetic snippet with the file path as
// source. Malformed input never fails the caller: it logs a warning and
// yields an empty store.
func Load(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		return NewStore(nil)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("knowledge_base_load_failed", "path", path, "error", err)
		return NewStore(nil)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var data any
		if err := json.Unmarshal(raw, &data); err != nil {
			logger.Warn("knowledge_base_parse_failed", "path", path, "error", err)
			return NewStore(nil)
		}
		return NewStore(fromStructured(data, path))
	case ".yaml", ".yml":
		var data any
		if err := yaml.Unmarshal(raw, &data); err != nil {
			logger.Warn("knowledge_base_parse_failed", "path", path, "error", err)
			return NewStore(nil)
		}
		return NewStore(fromStructured(data, path))
	default:
		return NewStore([]domain.KnowledgeSnippet{{Content: string(raw), Source: path}})
	}
}

func fromStructured(data any, source string) []domain.KnowledgeSnippet {
	switch v := data.(type) {
	case map[string]any:
		// Keys are sorted so store order (and therefore tie-breaking) is
		// deterministic regardless of decoder behavior.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var out []domain.KnowledgeSnippet
		for _, k := range keys {
			switch value := v[k].(type) {
			case []any:
				for _, item := range value {
					if snippet, ok := toSnippet(item, source); ok {
						out = append(out, snippet)
					}
				}
			default:
				if snippet, ok := toSnippet(value, source); ok {
					out = append(out, snippet)
				}
			}
		}
		return out
	case []any:
		var out []domain.KnowledgeSnippet
		for _, item := range v {
			if snippet, ok := toSnippet(item, source); ok {
				out = append(out, snippet)
			}
		}
		return out
	default:
		if snippet, ok := toSnippet(v, source); ok {
			return []domain.KnowledgeSnippet{snippet}
		}
		return nil
	}
}

func toSnippet(item any, source string) (domain.KnowledgeSnippet, bool) {
	switch v := item.(type) {
	case string:
		return domain.KnowledgeSnippet{Content: v, Source: source}, true
	case map[string]any:
		snippet := domain.KnowledgeSnippet{Source: source}
		if content, ok := v["content"].(string); ok {
			snippet.Content = content
		}
		if meta, ok := v["metadata"].(map[string]any); ok {
			snippet.Metadata = meta
		}
		if src, ok := v["source"].(string); ok && src != "" {
			snippet.Source = src
		}
		return snippet, snippet.Content != ""
	default:
		return domain.KnowledgeSnippet{}, false
	}
}
