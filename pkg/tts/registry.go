package tts

import (
	"context"
	"fmt"
)

// Factory constructs a fresh adapter. Adapters are never pooled: every
// request gets its own instance.
type Factory func(ctx context.Context) Provider

// Entry describes one registered vendor.
type Entry struct {
	Key    string
	Name   string
	Voices []string
	New    Factory
}

// CatalogEntry is the public description of a provider.
type CatalogEntry struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Voices []string `json:"voices"`
}

// Registry maps provider keys to adapter factories. It is read-only once built.
type Registry struct {
	entries []Entry
	byKey   map[string]Entry
}

// NewRegistry builds a registry from entries. Keys must be unique.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{
		entries: make([]Entry, 0, len(entries)),
		byKey:   make(map[string]Entry, len(entries)),
	}
	for _, e := range entries {
		if e.Key == "" || e.New == nil {
			return nil, fmt.Errorf("invalid provider entry %q", e.Key)
		}
		if _, dup := r.byKey[e.Key]; dup {
			return nil, fmt.Errorf("duplicate provider key %q", e.Key)
		}
		r.entries = append(r.entries, e)
		r.byKey[e.Key] = e
	}
	return r, nil
}

// Resolve returns the factory for key. Matching is exact and case-sensitive.
func (r *Registry) Resolve(key string) (Factory, error) {
	e, ok := r.byKey[key]
	if !ok {
		return nil, &UnknownProviderError{Key: key}
	}
	return e.New, nil
}

// New resolves key and constructs a new adapter.
func (r *Registry) New(ctx context.Context, key string) (Provider, error) {
	factory, err := r.Resolve(key)
	if err != nil {
		return nil, err
	}
	return factory(ctx), nil
}

// Keys returns the registered provider keys in registration order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.entries))
	for i, e := range r.entries {
		keys[i] = e.Key
	}
	return keys
}

// Catalog returns the static provider listing. It does not depend on which
// vendors have credentials.
func (r *Registry) Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(r.entries))
	for i, e := range r.entries {
		voices := make([]string, len(e.Voices))
		copy(voices, e.Voices)
		out[i] = CatalogEntry{ID: e.Key, Name: e.Name, Voices: voices}
	}
	return out
}
