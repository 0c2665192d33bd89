// Package source selects the statistics backend by name.
package source

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"CatalogLens/internal/domain"
	"CatalogLens/internal/ports"
)

// ErrUnknown is returned by Resolve for names nobody registered.
var ErrUnknown = errors.New("unknown stats source")

// Source is a named statistics backend (the HTTP API, Postgres, etc.).
type Source interface {
	Name() string
	ports.StatsSource
}

// Func adapts a plain function to Source.
type Func struct {
	name string
	fn   func(ctx context.Context) ([]domain.TableStatistic, error)
}

// New wraps fn under name.
func New(name string, fn func(ctx context.Context) ([]domain.TableStatistic, error)) *Func {
	return &Func{name: name, fn: fn}
}

// Name implements Source.
func (f *Func) Name() string { return f.name }

// TableStats implements ports.StatsSource.
func (f *Func) TableStats(ctx context.Context) ([]domain.TableStatistic, error) {
	return f.fn(ctx)
}

// Registry keeps a mapping from source names to their implementations.
type Registry struct {
	sources map[string]Source
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: map[string]Source{}}
}

// Register adds or replaces a source implementation.
func (r *Registry) Register(src Source) {
	if r.sources == nil {
		r.sources = map[string]Source{}
	}
	r.sources[src.Name()] = src
}

// Resolve returns a source by name or ErrUnknown if it is absent.
func (r *Registry) Resolve(name string) (Source, error) {
	if src, ok := r.sources[name]; ok {
		return src, nil
	}
	return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknown, name, r.Names())
}

// Names lists registered sources alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
