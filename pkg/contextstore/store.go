package contextstore

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrUnknownView is returned by Include when a referenced view was never
// declared on the store.
var ErrUnknownView = errors.New("contextstore: unknown view")

// ErrEmptyView is returned by Include when it is given no view names.
var ErrEmptyView = errors.New("contextstore: include needs at least one view")

// Store is an ordered collection of named views. The zero value is not usable;
// construct one with New.
type Store struct {
	order []string
	views map[string]map[string]any
}

// New returns an empty store.
func New() *Store {
	return &Store{views: make(map[string]map[string]any)}
}

// Declare creates the named view and returns a View bound to it. Declaring a
// name that already exists replaces its contents with an empty layer while
// keeping its original position in the declaration order.
func (s *Store) Declare(name string) *View {
	if _, exists := s.views[name]; !exists {
		s.order = append(s.order, name)
	}
	s.views[name] = make(map[string]any)
	return &View{store: s, names: []string{name}}
}

// Include composes the named views in the given order. Keys in later views
// shadow the same keys in earlier ones.
func (s *Store) Include(names ...string) (*View, error) {
	if len(names) == 0 {
		return nil, ErrEmptyView
	}
	for _, name := range names {
		if _, ok := s.views[name]; !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownView, name)
		}
	}
	return &View{store: s, names: slices.Clone(names)}, nil
}

// MustInclude is Include for init-time wiring with names known to exist.
func (s *Store) MustInclude(names ...string) *View {
	view, err := s.Include(names...)
	if err != nil {
		panic(err)
	}
	return view
}

// Names returns the declared view names in declaration order.
func (s *Store) Names() []string {
	return slices.Clone(s.order)
}

// Snapshot flattens every declared view in declaration order.
func (s *Store) Snapshot() Snapshot {
	return s.flatten(s.order)
}

func (s *Store) flatten(names []string) Snapshot {
	out := Snapshot{}
	for _, name := range names {
		for key, value := range s.views[name] {
			out[key] = copyValue(value)
		}
	}
	return out
}

// View is a composition of one or more named views of a Store.
type View struct {
	store *Store
	names []string
}

// Names returns the composed view names, lowest precedence first.
func (v *View) Names() []string {
	return slices.Clone(v.names)
}

// Get resolves key against the composed views, highest precedence first.
func (v *View) Get(key string) (any, bool) {
	for i := len(v.names) - 1; i >= 0; i-- {
		if value, ok := v.store.views[v.names[i]][key]; ok {
			return value, true
		}
	}
	return nil, false
}

// Set writes key into the highest-precedence view of the composition.
func (v *View) Set(key string, value any) {
	v.target()[key] = value
}

// Update merges values into the highest-precedence view of the composition.
// Other views, and snapshots already taken, are unaffected.
func (v *View) Update(values map[string]any) *View {
	maps.Copy(v.target(), values)
	return v
}

// Snapshot returns a flattened copy of the composition.
func (v *View) Snapshot() Snapshot {
	return v.store.flatten(v.names)
}

func (v *View) target() map[string]any {
	name := v.names[len(v.names)-1]
	layer, ok := v.store.views[name]
	if !ok {
		layer = make(map[string]any)
		v.store.views[name] = layer
	}
	return layer
}
