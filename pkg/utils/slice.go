// Package utils holds small generic helpers shared across the module.
package utils

// Map applies mapper to each element and collects the results.
//
// The result has the same length and order as sli.
func Map[T any, R any](sli []T, mapper func(v T) R) []R {
	ret := make([]R, len(sli))
	for nth, v := range sli {
		ret[nth] = mapper(v)
	}
	return ret
}
