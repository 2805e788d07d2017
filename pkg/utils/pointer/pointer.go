// Package pointer takes addresses of values in expressions.
package pointer

// Ref returns a pointer to t.
func Ref[T any](t T) *T {
	return &t
}
