package diag

// As returns d as the concrete type T.
func As[T Diagnostic](d Diagnostic) (T, bool) {
	t, ok := d.(T)
	return t, ok
}

// Is reports whether d has the concrete type T.
func Is[T Diagnostic](d Diagnostic) bool {
	_, ok := d.(T)
	return ok
}

// Find returns the first diagnostic of type T in bag.
func Find[T Diagnostic](bag *Bag) (T, bool) {
	for _, d := range bag.items {
		if t, ok := d.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// FindAll returns every diagnostic of type T in bag, in order.
func FindAll[T Diagnostic](bag *Bag) []T {
	var out []T
	for _, d := range bag.items {
		if t, ok := d.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
