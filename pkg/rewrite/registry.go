package rewrite

import (
	"fmt"
	"sync"
)

// Registry maps names to matcher and rule implementations. Catalog files
// reference both by name, so decoding a catalog needs a registry that
// already knows every name the file mentions.
type Registry struct {
	mu       sync.RWMutex
	matchers map[string]Matcher
	rules    map[string]Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		matchers: make(map[string]Matcher),
		rules:    make(map[string]Rule),
	}
}

// RegisterMatcher adds a named matcher, replacing any previous binding.
func (r *Registry) RegisterMatcher(name string, m Matcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matchers[name] = m
}

// RegisterRule adds a named rule, replacing any previous binding.
func (r *Registry) RegisterRule(name string, rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[name] = rule
}

// Matcher looks up a matcher by name.
func (r *Registry) Matcher(name string) (Matcher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matchers[name]
	if !ok {
		return nil, fmt.Errorf("unknown matcher %q", name)
	}
	return m, nil
}

// Rule looks up a rule by name.
func (r *Registry) Rule(name string) (Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[name]
	if !ok {
		return nil, fmt.Errorf("unknown rule %q", name)
	}
	return rule, nil
}
