package service

import (
	"github.com/cashcast/cashcast/internal/model"
	"github.com/cashcast/cashcast/internal/operation"
)

// TargetKey identifies a link target: a planned operation or budget by kind
// and persisted id.
type TargetKey struct {
	Type model.LinkType
	ID   int64
}

// MatcherRegistry is an explicitly owned mapping from link targets to their
// link-aware matchers. The orchestration layer populates it when loading a
// forecast and invalidates entries when targets change; the matchers
// themselves stay pure and stateless.
type MatcherRegistry struct {
	matchers map[TargetKey]*operation.Matcher
}

// NewMatcherRegistry builds an empty registry.
func NewMatcherRegistry() *MatcherRegistry {
	return &MatcherRegistry{matchers: make(map[TargetKey]*operation.Matcher)}
}

// Insert registers the matcher for a target, replacing any previous one.
func (r *MatcherRegistry) Insert(key TargetKey, m *operation.Matcher) {
	r.matchers[key] = m
}

// Remove forgets the matcher for a target.
func (r *MatcherRegistry) Remove(key TargetKey) {
	delete(r.matchers, key)
}

// Get returns the matcher for a target, if registered.
func (r *MatcherRegistry) Get(key TargetKey) (*operation.Matcher, bool) {
	m, ok := r.matchers[key]
	return m, ok
}

// Len returns the number of registered matchers.
func (r *MatcherRegistry) Len() int {
	return len(r.matchers)
}

// Each calls fn for every registered matcher until fn returns false.
// Iteration order is unspecified.
func (r *MatcherRegistry) Each(fn func(TargetKey, *operation.Matcher) bool) {
	for key, m := range r.matchers {
		if !fn(key, m) {
			return
		}
	}
}
