package checklist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/complykit/filingreview/internal/core/domain"
)

// Set maps a declared process type to its checklist. Loaded once at process
// start; read-only for the run's duration.
type Set map[string]domain.Checklist

// Load reads all checklists from a JSON or YAML file keyed by process type.
// A missing or malformed checklist file is fatal to starting a run: no
// evaluation is possible without one.
func Load(path string) (Set, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrConfiguration, "read checklist file", err)
	}

	var set Set
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &set)
	default:
		err = json.Unmarshal(raw, &set)
	}
	if err != nil {
		return nil, domain.WrapError(domain.ErrConfiguration, "parse checklist file", err)
	}
	if len(set) == 0 {
		return nil, domain.WrapError(domain.ErrConfiguration, "parse checklist file", fmt.Errorf("no process types in %s", path))
	}

	for processType, cl := range set {
		cl.ProcessType = processType
		set[processType] = cl
	}
	return set, nil
}

// Get returns the checklist for a process type.
func (s Set) Get(processType string) (domain.Checklist, error) {
	cl, ok := s[processType]
	if !ok {
		return domain.Checklist{}, domain.WrapError(domain.ErrConfiguration, "lookup checklist", fmt.Errorf("unknown process type %q", processType))
	}
	return cl, nil
}

// ProcessTypes lists the known process types in lexical order.
func (s Set) ProcessTypes() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
