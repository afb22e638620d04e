package codegen

import "strings"

// -----------------------------------------------------------------------------
// Path Matching
// -----------------------------------------------------------------------------
//
// Every override category is a PathMap keyed by selectors. A selector is
// matched against a fully-qualified proto path (".pkg.Message" or
// ".pkg.Message.field"):
//
//   - Absolute selectors start with '.' and match the path itself or any
//     ancestor of it: ".pkg" matches ".pkg.Message.field". The root selector
//     "." matches everything.
//   - Relative selectors match a trailing run of path segments: "field"
//     matches any field with that name, "Message.field" matches that field of
//     any message named Message regardless of its package.

// PathMap is an ordered list of (selector, value) pairs.
//
// Entries are never deduplicated or reordered, so lookups are deterministic:
// single-valued categories use GetFirst, cumulative ones use Get.
type PathMap[T any] struct {
	entries []pathEntry[T]
}

type pathEntry[T any] struct {
	selector string
	value    T
}

// Insert appends a selector and its payload.
func (m *PathMap[T]) Insert(selector string, value T) {
	m.entries = append(m.entries, pathEntry[T]{selector: selector, value: value})
}

// Len returns the number of entries.
func (m *PathMap[T]) Len() int {
	return len(m.entries)
}

// Get returns the payload of every selector matching fqName, in insertion order.
func (m *PathMap[T]) Get(fqName string) []T {
	var values []T
	for _, e := range m.entries {
		if MatchPath(e.selector, fqName) {
			values = append(values, e.value)
		}
	}
	return values
}

// GetField returns every payload matching the field of the named message.
func (m *PathMap[T]) GetField(fqName, field string) []T {
	return m.Get(fieldPath(fqName, field))
}

// GetFirst returns the payload of the first selector matching fqName.
func (m *PathMap[T]) GetFirst(fqName string) (T, bool) {
	for _, e := range m.entries {
		if MatchPath(e.selector, fqName) {
			return e.value, true
		}
	}
	var zero T
	return zero, false
}

// GetFirstField returns the first payload matching the field of the named message.
func (m *PathMap[T]) GetFirstField(fqName, field string) (T, bool) {
	return m.GetFirst(fieldPath(fqName, field))
}

// MatchPath reports whether selector applies to the fully-qualified path.
func MatchPath(selector, path string) bool {
	if selector == "." {
		return strings.HasPrefix(path, ".")
	}
	if path == selector {
		return true
	}
	if strings.HasPrefix(selector, ".") {
		return strings.HasPrefix(path, selector+".")
	}
	return strings.HasSuffix(path, "."+selector)
}

func fieldPath(fqName, field string) string {
	return fqName + "." + field
}
