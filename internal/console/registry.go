package console

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ErrUnknownModule is returned by Lookup for names no module answers to.
var ErrUnknownModule = errors.New("unknown module")

// maxSuggestionDistance bounds how far a typo may be from a module name.
const maxSuggestionDistance = 3

// Registry resolves module names and aliases.
type Registry struct {
	modules []Module
	byName  map[string]Module
}

// NewRegistry registers modules in display order.
func NewRegistry(modules ...Module) *Registry {
	r := &Registry{byName: make(map[string]Module)}
	for _, m := range modules {
		r.Register(m)
	}
	return r
}

// Register adds a module. Later registrations win on name clashes.
func (r *Registry) Register(m Module) {
	r.modules = append(r.modules, m)
	r.byName[strings.ToLower(m.Name())] = m
	for _, alias := range m.Aliases() {
		r.byName[strings.ToLower(alias)] = m
	}
}

// All returns the modules in registration order.
func (r *Registry) All() []Module {
	return append([]Module(nil), r.modules...)
}

// Lookup finds a module by name or alias, case-insensitively.
func (r *Registry) Lookup(name string) (Module, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if m, ok := r.byName[key]; ok {
		return m, nil
	}
	if s := r.Suggest(key); s != "" {
		return nil, fmt.Errorf("%w %q, did you mean %q?", ErrUnknownModule, name, s)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownModule, name)
}

// Suggest returns the closest module name to name, or "" if none is close.
func (r *Registry) Suggest(name string) string {
	best, bestDist := "", maxSuggestionDistance+1
	for key, m := range r.byName {
		d := levenshtein.ComputeDistance(name, key)
		if d < bestDist || (d == bestDist && m.Name() < best) {
			best, bestDist = m.Name(), d
		}
	}
	return best
}

// Index returns the position of m in registration order, or -1.
func (r *Registry) Index(m Module) int {
	for i, candidate := range r.modules {
		if candidate == m {
			return i
		}
	}
	return -1
}
