package contextstore

import (
	"maps"
	"slices"
)

// Snapshot is a flattened render context. It is a plain map so it can be
// handed to template engines directly; mutating it never reaches the Store it
// was taken from.
type Snapshot map[string]any

// Clone returns a copy of the snapshot. Slices and nested maps are copied one
// level deep so appends and key writes on the clone stay local.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for key, value := range s {
		out[key] = copyValue(value)
	}
	return out
}

// SetDefault stores value under key unless key is already present. It reports
// whether the value was stored.
func (s Snapshot) SetDefault(key string, value any) bool {
	if _, exists := s[key]; exists {
		return false
	}
	s[key] = value
	return true
}

// Temporary installs value under key and returns a func that restores the
// previous value, or removes the key if it was absent. Callers defer the
// returned func so the key never outlives the render that needed it.
func (s Snapshot) Temporary(key string, value any) (restore func()) {
	previous, existed := s[key]
	s[key] = value
	return func() {
		if existed {
			s[key] = previous
			return
		}
		delete(s, key)
	}
}

// Strings returns the value under key as a string slice. Lists decoded from
// JSON or YAML arrive as []any and are converted when every element is a
// string.
func (s Snapshot) Strings(key string) []string {
	return AsStrings(s[key])
}

// AsStrings converts a list value to []string, skipping non-string elements.
func AsStrings(value any) []string {
	switch v := value.(type) {
	case []string:
		return slices.Clone(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

func copyValue(value any) any {
	switch v := value.(type) {
	case []string:
		return slices.Clone(v)
	case []any:
		return slices.Clone(v)
	case map[string]any:
		return maps.Clone(v)
	default:
		return value
	}
}
