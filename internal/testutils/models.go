package testutils

import "strings"

// Named is a namespaced name used as a structured key in tests.
type Named struct {
	Namespace string
	Name      string
}

func (s Named) Key() string {
	if s.Namespace != "" {
		return s.Namespace + "/" + s.Name
	}
	return s.Name
}

// LessNamed orders Named values by namespace, then by name.
func LessNamed(a, b Named) bool {
	if c := strings.Compare(a.Namespace, b.Namespace); c != 0 {
		return c < 0
	}
	return a.Name < b.Name
}

// LessFold orders strings case-insensitively, so "A" and "a" are equivalent.
func LessFold(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

// LessDesc orders ints from largest to smallest.
func LessDesc(a, b int) bool {
	return a > b
}
