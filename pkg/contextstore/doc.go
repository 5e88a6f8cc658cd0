// Package contextstore holds the layered render context used by a build.
//
// A Store owns a list of named views. Each view is an independent, mutable
// key/value layer (the built-in "default" values, user overrides from flags or
// a config file, ...). Include composes a subset of views in a caller-chosen
// order; later views shadow earlier ones on key collisions. Snapshot flattens a
// composition into a plain Snapshot map that renderers can mutate freely
// without touching the store.
//
//	store := contextstore.New()
//	store.Declare("default").Update(map[string]any{"a": 1, "b": 2})
//	store.Declare("user").Set("b", 3)
//
//	view, _ := store.Include("default", "user")
//	view.Snapshot() // {a: 1, b: 3}
package contextstore
