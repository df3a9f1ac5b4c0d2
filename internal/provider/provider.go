// Package provider adapts upstream product-search APIs into canonical offers.
package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/lukman83/pricecompare/internal/catalog"
	"github.com/lukman83/pricecompare/internal/models"
)

// Provider is one upstream product-search integration. Search returns the
// provider's listings already normalized, without any filtering. A provider
// without credentials, or one that does not serve the country, returns an
// empty slice and no error.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, country catalog.Country) ([]models.Offer, error)
}

// ResultSet is what one provider contributed to a search.
type ResultSet struct {
	Provider string
	Offers   []models.Offer
	Err      error
}

// Registry holds providers by name and remembers registration order.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Provider
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Provider)}
}

// Register adds p, replacing any provider with the same name.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[p.Name()]; !exists {
		r.order = append(r.order, p.Name())
	}
	r.byName[p.Name()] = p
}

func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("provider %q not registered", name)
	}
	return p, nil
}

// List returns provider names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Ordered resolves names into providers, keeping the given priority order.
// An empty list means every registered provider in registration order.
func (r *Registry) Ordered(names []string) ([]Provider, error) {
	if len(names) == 0 {
		names = r.List()
	}
	out := make([]Provider, 0, len(names))
	for _, name := range names {
		p, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
