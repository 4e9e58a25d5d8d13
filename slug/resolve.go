package slug

import "fmt"

// A LookupFunc reports whether a candidate slug is already taken. Callers
// updating an existing record fold the self-exclusion into the closure.
type LookupFunc func(slug string) (bool, error)

// Resolve returns the first free slug derived from base, probing base itself
// and then "base-1", "base-2", ... in increasing order. A lookup failure
// propagates unchanged. The check is not atomic with the caller's insert; the
// store's unique index is the backstop under concurrent creation.
func Resolve(base string, lookup LookupFunc) (string, error) {
	candidate := base
	for counter := 1; ; counter++ {
		taken, err := lookup(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
