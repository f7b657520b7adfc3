// Package catalog defines the canonical query-parameter contract of the
// scrape endpoint: one ParameterSpec per canonical parameter, plus the
// compatibility aliases under which third-party integrations know it.
package catalog

import (
	"fmt"
)

// Kind is the closed set of value types a parameter may carry.
type Kind string

const (
	String  Kind = "string"
	Integer Kind = "integer"
	Boolean Kind = "boolean"
)

func (k Kind) valid() bool {
	switch k {
	case String, Integer, Boolean:
		return true
	}
	return false
}

// Value is a literal tagged with its Kind. Using a tagged variant instead
// of a bare any keeps kind/default mismatches a construction-time error.
type Value struct {
	kind Kind
	s    string
	i    int
	b    bool
}

func Str(s string) Value { return Value{kind: String, s: s} }

func Int(i int) Value { return Value{kind: Integer, i: i} }

func Bool(b bool) Value { return Value{kind: Boolean, b: b} }

func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether the value equals its kind's natural zero
// ("", 0, false). Zero defaults are omitted from generated documents.
func (v Value) IsZero() bool {
	switch v.kind {
	case String:
		return v.s == ""
	case Integer:
		return v.i == 0
	case Boolean:
		return !v.b
	}
	return true
}

// Interface returns the underlying literal for serialization.
func (v Value) Interface() any {
	switch v.kind {
	case String:
		return v.s
	case Integer:
		return v.i
	case Boolean:
		return v.b
	}
	return nil
}

func (v Value) String() string { return fmt.Sprintf("%v", v.Interface()) }

// IntRange bounds an integer parameter, inclusive on both ends.
type IntRange struct {
	Min int
	Max int
}

// ParameterSpec describes one canonical parameter and its validation
// semantics. Name is the primary key; Aliases are alternate accepted
// names originating from third-party APIs.
type ParameterSpec struct {
	Name        string
	Kind        Kind
	Description string
	Required    bool
	Default     *Value
	Example     *Value
	Enum        []string
	Range       *IntRange
	Aliases     []string
}

// ConfigurationError reports a ParameterSpec violating its own
// invariants. Always fatal: no document may be generated from an
// inconsistent catalog.
type ConfigurationError struct {
	Param  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("catalog: parameter %q: %s", e.Param, e.Reason)
}

// Catalog is a frozen, author-ordered table of ParameterSpecs. It is
// validated once at construction and exposes no mutation.
type Catalog struct {
	specs []ParameterSpec
}

// New validates every spec and returns the frozen catalog. The input
// order is preserved and becomes the document's parameter order.
func New(specs []ParameterSpec) (*Catalog, error) {
	for i := range specs {
		if err := validateSpec(&specs[i]); err != nil {
			return nil, err
		}
	}
	out := make([]ParameterSpec, len(specs))
	copy(out, specs)
	return &Catalog{specs: out}, nil
}

// All returns the specs in author order. Callers must not mutate the
// returned slice.
func (c *Catalog) All() []ParameterSpec { return c.specs }

// Len returns the number of canonical parameters.
func (c *Catalog) Len() int { return len(c.specs) }

func validateSpec(p *ParameterSpec) error {
	fail := func(reason string) error {
		return &ConfigurationError{Param: p.Name, Reason: reason}
	}
	if p.Name == "" {
		return &ConfigurationError{Param: "(unnamed)", Reason: "name is empty"}
	}
	if !p.Kind.valid() {
		return fail(fmt.Sprintf("unknown kind %q", p.Kind))
	}
	if p.Description == "" {
		return fail("description is empty")
	}
	if p.Enum != nil {
		if p.Kind != String {
			return fail("enum values are only valid for string parameters")
		}
		if len(p.Enum) == 0 {
			return fail("enum is present but empty")
		}
	}
	if p.Range != nil {
		if p.Kind != Integer {
			return fail("range is only valid for integer parameters")
		}
		if p.Range.Min > p.Range.Max {
			return fail(fmt.Sprintf("range minimum %d exceeds maximum %d", p.Range.Min, p.Range.Max))
		}
	}
	if p.Default != nil {
		if p.Default.Kind() != p.Kind {
			return fail(fmt.Sprintf("default is %s, parameter is %s", p.Default.Kind(), p.Kind))
		}
		if p.Enum != nil && !containsString(p.Enum, p.Default.s) {
			return fail(fmt.Sprintf("default %q is not an enum member", p.Default.s))
		}
	}
	if p.Example != nil && p.Example.Kind() != p.Kind {
		return fail(fmt.Sprintf("example is %s, parameter is %s", p.Example.Kind(), p.Kind))
	}
	return nil
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
