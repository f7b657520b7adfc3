package catalog

import (
	"fmt"
	"sort"
)

// DuplicateNameError reports a canonical name or alias colliding with a
// name already claimed by another parameter. Without this check two
// compatibility names could silently resolve to different canonical
// parameters depending on table order.
type DuplicateNameError struct {
	Name   string // the colliding name
	First  string // canonical parameter that claimed it first
	Second string // canonical parameter attempting to claim it again
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("catalog: name %q of parameter %q is already claimed by parameter %q", e.Name, e.Second, e.First)
}

// Index resolves any recognized name, canonical or alias, to its
// canonical parameter. Built once from a catalog, read-only afterwards;
// safe for concurrent use.
type Index struct {
	canonical map[string]string
}

// NewIndex walks the catalog once, inserting every canonical name and
// alias into a single mapping. Any collision fails fast with a
// DuplicateNameError naming both conflicting entries.
func NewIndex(c *Catalog) (*Index, error) {
	ix := &Index{canonical: make(map[string]string, c.Len()*2)}
	for _, p := range c.All() {
		if err := ix.insert(p.Name, p.Name); err != nil {
			return nil, err
		}
		for _, alias := range p.Aliases {
			if err := ix.insert(alias, p.Name); err != nil {
				return nil, err
			}
		}
	}
	return ix, nil
}

func (ix *Index) insert(name, owner string) error {
	if first, exists := ix.canonical[name]; exists {
		return &DuplicateNameError{Name: name, First: first, Second: owner}
	}
	ix.canonical[name] = owner
	return nil
}

// CanonicalNameFor maps an incoming name to its canonical parameter
// name. The second result is false when the name is not recognized.
func (ix *Index) CanonicalNameFor(name string) (string, bool) {
	c, ok := ix.canonical[name]
	return c, ok
}

// AllRecognizedNames returns every accepted query-parameter name,
// canonical and alias alike, sorted. The HTTP layer uses this set to
// split scraper parameters from pass-through headers.
func (ix *Index) AllRecognizedNames() []string {
	names := make([]string, 0, len(ix.canonical))
	for n := range ix.canonical {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
