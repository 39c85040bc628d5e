// Package utils holds small generic helpers for optional values.
package utils

// Value dereferences v, yielding the zero value for a nil pointer. The
// API leaves fields like a product's image URL nullable; Value lets
// callers read them without a nil check.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

// Ptr returns a pointer to v, for populating optional fields in place.
func Ptr[T any](v T) *T {
	return &v
}
