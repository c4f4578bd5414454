// Package options provides shared utilities for option validation across packages.
package options

import (
	"fmt"
	"strings"
)

// Source is one way of supplying an input, such as a file path or inline
// content.
type Source struct {
	Name string
	Set  bool
}

// ExactlyOne ensures exactly one of sources is set. The error names every
// source and reports how many were given.
func ExactlyOne(sources ...Source) error {
	count := 0
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name
		if s.Set {
			count++
		}
	}
	if count == 1 {
		return nil
	}
	return fmt.Errorf("exactly one of %s must be provided (got %d)", joinChoices(names), count)
}

// joinChoices renders names as "a, b, or c".
func joinChoices(names []string) string {
	switch len(names) {
	case 0:
		return "the inputs"
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	}
	return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
}
