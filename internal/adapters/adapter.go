package adapters

import (
	"sort"

	"github.com/ppiankov/medprep/internal/model"
	"github.com/ppiankov/medprep/internal/sanitize"
)

// Adapter maps one raw source schema onto the canonical record
type Adapter interface {
	// Name returns the source identifier the adapter is registered under
	Name() string

	// Instruction returns the fixed prompt attached to every record
	Instruction() string

	// Adapt converts a raw record; missing fields become empty strings
	Adapt(raw model.RawRecord) model.CanonicalRecord
}

// Cleaner sanitizes free text. *sanitize.Sanitizer satisfies it.
type Cleaner interface {
	Clean(text string) string
}

// CleanFunc adapts a plain function to Cleaner
type CleanFunc func(string) string

// Clean calls f(text)
func (f CleanFunc) Clean(text string) string { return f(text) }

// Registry holds the closed set of source adapters
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry creates a registry with every built-in adapter. A nil cleaner
// falls back to sanitize.Clean.
func NewRegistry(cleaner Cleaner) *Registry {
	if cleaner == nil {
		cleaner = CleanFunc(sanitize.Clean)
	}

	registry := &Registry{
		adapters: make(map[string]Adapter),
	}

	registry.register(NewHealthCareMagicAdapter(cleaner))
	registry.register(NewICliniqAdapter(cleaner))

	return registry
}

func (r *Registry) register(adapter Adapter) {
	r.adapters[adapter.Name()] = adapter
}

// Lookup returns the adapter registered under id
func (r *Registry) Lookup(id string) (Adapter, bool) {
	adapter, ok := r.adapters[id]
	return adapter, ok
}

// IDs returns the registered source identifiers, sorted
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.adapters))
	for id := range r.adapters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// KnownSource reports whether id names a built-in adapter
func KnownSource(id string) bool {
	switch id {
	case model.SourceHealthCareMagic, model.SourceICliniq:
		return true
	default:
		return false
	}
}

// fieldAdapter maps a query field and an answer field under a fixed prompt
type fieldAdapter struct {
	name        string
	instruction string
	inputField  string
	outputField string
	cleaner     Cleaner
}

func (a *fieldAdapter) Name() string { return a.name }
func (a *fieldAdapter) Instruction() string { return a.instruction }

func (a *fieldAdapter) Adapt(raw model.RawRecord) model.CanonicalRecord {
	return model.CanonicalRecord{
		Instruction: a.instruction,
		Input:       a.cleaner.Clean(raw.Field(a.inputField)),
		Output:      a.cleaner.Clean(raw.Field(a.outputField)),
	}
}
