// File: endpoint/registry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Prefix registry: maps specifier text to a specifier class, parses the
// argument per the class's declared mode, and enforces single-use
// classes. Prefix unambiguity across registered classes is the
// registrant's responsibility.

package endpoint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/momentics/streamrelay/api"
)

// Registry holds an ordered specifier class table.
type Registry struct {
	classes []api.Class
	used    map[string]bool
}

// NewRegistry builds a registry over the given classes.
func NewRegistry(classes ...api.Class) *Registry {
	cs := make([]api.Class, len(classes))
	copy(cs, classes)
	return &Registry{classes: cs, used: make(map[string]bool)}
}

// DefaultRegistry returns a registry with the built-in endpoint classes.
func DefaultRegistry() *Registry {
	return NewRegistry(StdioClass, OpenAsyncClass, OpenFDClass)
}

// Classes returns the registered class table, for help output.
func (r *Registry) Classes() []api.Class {
	out := make([]api.Class, len(r.classes))
	copy(out, r.classes)
	return out
}

// Lookup finds the class whose longest prefix matches text and returns
// it together with the remaining argument text.
func (r *Registry) Lookup(text string) (api.Class, string, bool) {
	type match struct {
		cls    api.Class
		prefix string
	}
	var matches []match
	for _, c := range r.classes {
		for _, pfx := range c.Prefixes {
			if strings.HasPrefix(text, pfx) {
				matches = append(matches, match{cls: c, prefix: pfx})
			}
		}
	}
	if len(matches) == 0 {
		return api.Class{}, "", false
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return len(matches[i].prefix) > len(matches[j].prefix)
	})
	best := matches[0]
	return best.cls, strings.TrimPrefix(text, best.prefix), true
}

// Parse turns specifier text into a specifier, enforcing argument mode
// and single-use policy.
func (r *Registry) Parse(text string) (api.Specifier, error) {
	cls, arg, ok := r.Lookup(text)
	if !ok {
		return nil, fmt.Errorf("%w: %q", api.ErrUnknownClass, text)
	}
	if cls.Arg == api.ArgNone && arg != "" {
		return nil, fmt.Errorf("%w: %s given %q", api.ErrNoArgument, cls.Name, arg)
	}
	if cls.SingleUse && r.used[cls.Name] {
		return nil, fmt.Errorf("%w: %s", api.ErrSingleUse, cls.Name)
	}
	spec, err := cls.Parse(arg)
	if err != nil {
		return nil, err
	}
	if cls.SingleUse {
		r.used[cls.Name] = true
	}
	return spec, nil
}
