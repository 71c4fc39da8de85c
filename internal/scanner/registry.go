package scanner

import (
	"errors"
	"fmt"
	"sync"
)

// Registry maps every known scanner ID to its Spec. It is read-only once
// built and safe for concurrent use.
type Registry struct {
	specs map[ID]Spec
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	reg, err := NewRegistry(Catalog())
	if err != nil {
		panic(fmt.Sprintf("scanner: invalid built-in catalog: %v", err))
	}
	return reg
})

// DefaultRegistry returns the process-wide registry built from Catalog.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}

// NewRegistry builds a registry from catalog. Every known ID must have a
// spec and every spec must validate.
func NewRegistry(catalog map[ID]Spec) (*Registry, error) {
	specs := make(map[ID]Spec, len(catalog))
	var errs []error

	for _, id := range IDs() {
		spec, ok := catalog[id]
		if !ok {
			errs = append(errs, fmt.Errorf("%s: no spec defined", id))
			continue
		}
		spec = spec.clone()
		spec.ID = id
		if err := spec.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		specs[id] = spec
	}
	for id := range catalog {
		if !id.Valid() {
			errs = append(errs, fmt.Errorf("%s: unknown scanner", id))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &Registry{specs: specs}, nil
}

// Resolve returns the spec for id. It panics if id is outside the known set.
func (r *Registry) Resolve(id ID) Spec {
	spec, ok := r.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("scanner: no spec for %s", id))
	}
	return spec
}

// Lookup returns the spec for id, or false if id is unknown.
func (r *Registry) Lookup(id ID) (Spec, bool) {
	spec, ok := r.specs[id]
	if !ok {
		return Spec{}, false
	}
	return spec.clone(), true
}

// Get retrieves a spec by scanner name.
func (r *Registry) Get(name string) (Spec, error) {
	id, err := ParseID(name)
	if err != nil {
		return Spec{}, err
	}
	return r.Resolve(id), nil
}

// All returns every spec in catalog order.
func (r *Registry) All() []Spec {
	result := make([]Spec, 0, len(r.specs))
	for _, id := range IDs() {
		result = append(result, r.Resolve(id))
	}
	return result
}
