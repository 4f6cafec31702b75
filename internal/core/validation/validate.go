// Package validation holds the leaf predicates the service layer uses to
// vet primitives before any storage call. Struct-shaped request validation
// lives at the HTTP boundary; these cover the values that arrive untyped
// (path params, query values, lookup keys).
package validation

// IsValidID reports whether id is a usable entity identifier: a positive
// integer. Zero and negatives are rejected.
func IsValidID(id int64) bool {
	return id > 0
}

// AllNonEmpty reports whether every argument is a non-empty string.
// With no arguments it is trivially true.
func AllNonEmpty(strs ...string) bool {
	for _, s := range strs {
		if s == "" {
			return false
		}
	}
	return true
}
