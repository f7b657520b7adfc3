// Package schema models response-body shapes as a closed variant type
// plus a named registry. Recursive shapes reference registry entries by
// name instead of embedding themselves, so definitions stay finite and
// resolution is a lookup rather than an expansion.
package schema

import (
	"fmt"
)

// Type names the primitive and container shapes a Node may take.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
)

// Node describes one value shape. Exactly one of Type, OneOf, or Ref is
// set: Type for primitives and containers, OneOf for unions, Ref for a
// symbolic reference into the registry.
type Node struct {
	Type        Type
	Description string
	Nullable    bool
	Format      string
	Enum        []string // string primitives only

	Items *Node // arrays

	// Objects. Fields keeps author order; Required names a subset of
	// Fields; Extra governs undeclared fields (nil forbids them).
	Fields   []Field
	Required []string
	Extra    *Extra

	OneOf []*Node // union: exactly one alternative must match

	Ref string // registry entry name
}

// Field is one declared object field.
type Field struct {
	Name string
	Node *Node
}

// Extra is the policy for object fields not named in Fields. A nil
// *Extra forbids them; Extra with a nil Schema allows any shape; a
// non-nil Schema constrains them to that shape.
type Extra struct {
	Schema *Node
}

// Ref returns a reference node pointing at a registry entry.
func Ref(name string) *Node { return &Node{Ref: name} }

// OneOf returns a union node over the given alternatives, preserving
// their order.
func OneOf(alts ...*Node) *Node { return &Node{OneOf: alts} }

// ArrayOf returns an array node with the given element shape.
func ArrayOf(item *Node) *Node { return &Node{Type: TypeArray, Items: item} }

// Definition binds a registry name to its root node.
type Definition struct {
	Name string
	Node *Node
}

// IntegrityError reports a structurally malformed or unresolvable
// schema definition. Always fatal: assembly aborts and no document is
// produced.
type IntegrityError struct {
	Schema string // registry entry under validation
	Reason string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("schema %q: %s", e.Schema, e.Reason)
}

// Registry is the immutable named store of schema definitions. Every
// reference reachable from any entry resolves to an entry; this is
// checked once at construction, after all names are known, so entries
// may reference themselves or entries defined later.
type Registry struct {
	names  []string
	byName map[string]*Node
}

// NewRegistry validates the definitions and returns the frozen
// registry. Name order is preserved and becomes the component order in
// assembled documents.
func NewRegistry(defs []Definition) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Node, len(defs))}
	for _, d := range defs {
		if d.Name == "" {
			return nil, &IntegrityError{Schema: "(unnamed)", Reason: "definition has no name"}
		}
		if _, exists := r.byName[d.Name]; exists {
			return nil, &IntegrityError{Schema: d.Name, Reason: "defined twice"}
		}
		if d.Node == nil {
			return nil, &IntegrityError{Schema: d.Name, Reason: "definition has no node"}
		}
		r.names = append(r.names, d.Name)
		r.byName[d.Name] = d.Node
	}
	// Second phase: structural checks and reference resolution, now that
	// every name is registered.
	for _, name := range r.names {
		if err := r.check(name, r.byName[name]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Names returns the entry names in definition order.
func (r *Registry) Names() []string { return r.names }

// Lookup returns the node registered under name.
func (r *Registry) Lookup(name string) (*Node, bool) {
	n, ok := r.byName[name]
	return n, ok
}

// check validates one node and everything embedded in it. References
// are existence-checked but not followed, so recursion through the
// registry terminates by construction.
func (r *Registry) check(owner string, n *Node) error {
	fail := func(format string, args ...any) error {
		return &IntegrityError{Schema: owner, Reason: fmt.Sprintf(format, args...)}
	}
	if n == nil {
		return fail("nil node")
	}

	variants := 0
	if n.Type != "" {
		variants++
	}
	if len(n.OneOf) > 0 {
		variants++
	}
	if n.Ref != "" {
		variants++
	}
	if variants != 1 {
		return fail("node must be exactly one of typed, union, or reference")
	}

	switch {
	case n.Ref != "":
		if _, ok := r.byName[n.Ref]; !ok {
			return fail("unresolved reference %q", n.Ref)
		}
		return nil
	case len(n.OneOf) > 0:
		for _, alt := range n.OneOf {
			if err := r.check(owner, alt); err != nil {
				return err
			}
		}
		return nil
	}

	if n.Enum != nil {
		if n.Type != TypeString {
			return fail("enum is only valid on string nodes, found on %q", n.Type)
		}
		if len(n.Enum) == 0 {
			return fail("enum is present but empty")
		}
	}

	switch n.Type {
	case TypeString, TypeNumber, TypeInteger, TypeBoolean:
		if n.Items != nil || len(n.Fields) > 0 || n.Extra != nil {
			return fail("primitive node carries container fields")
		}
	case TypeArray:
		if n.Items == nil {
			return fail("array node has no element shape")
		}
		return r.check(owner, n.Items)
	case TypeObject:
		declared := make(map[string]struct{}, len(n.Fields))
		for _, f := range n.Fields {
			if f.Name == "" {
				return fail("object field has no name")
			}
			if _, dup := declared[f.Name]; dup {
				return fail("object field %q declared twice", f.Name)
			}
			declared[f.Name] = struct{}{}
			if err := r.check(owner, f.Node); err != nil {
				return err
			}
		}
		for _, req := range n.Required {
			if _, ok := declared[req]; !ok {
				return fail("field %q is required but not defined", req)
			}
		}
		if n.Extra != nil && n.Extra.Schema != nil {
			return r.check(owner, n.Extra.Schema)
		}
	default:
		return fail("unknown type %q", n.Type)
	}
	return nil
}
