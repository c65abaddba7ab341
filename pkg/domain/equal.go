package domain

// StatesEqual reports whether both sequences have the same length and
// field-by-field identical elements at every index.
// It guards persistence writes; it is not a content deduplication check.
func StatesEqual(a, b []StateDefinition) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CloneStates returns a copy of the sequence that shares no backing array with s.
func CloneStates(s []StateDefinition) []StateDefinition {
	if s == nil {
		return nil
	}
	out := make([]StateDefinition, len(s))
	copy(out, s)
	return out
}
