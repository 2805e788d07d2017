package cmp

func SliceEq[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for nth := range a {
		if a[nth] != b[nth] {
			return false
		}
	}
	return true
}

func SliceEqualUnordered[T interface{ Equal(T) bool }](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}

	// make a copy of b
	b = append([]T(nil), b...)

A:
	for _, x := range a {
		for i, y := range b {
			if x.Equal(y) {
				// remove y from b
				b = append(b[:i], b[i+1:]...)
				continue A
			}
		}
		return false
	}

	return len(b) == 0
}

func SliceEqEq[T interface{ Equal(T) bool }](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for nth := range a {
		if !a[nth].Equal(b[nth]) {
			return false
		}
	}
	return true
}
