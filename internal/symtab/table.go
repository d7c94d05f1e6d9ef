package symtab

import (
	"fmt"
	"strings"

	"classbridge/internal/diagnostic"
	"classbridge/internal/names"
	"classbridge/internal/source"
)

// CycleError reports an inheritance cycle. It is fatal to the whole
// run: no mapping phase can trust an inconsistent graph.
type CycleError struct {
	// Chain is the base chain that revisited its first element.
	Chain []source.QualifiedName
}

// Error returns the cycle as "A -> B -> A".
func (e *CycleError) Error() string {
	parts := make([]string, len(e.Chain))
	for i, q := range e.Chain {
		parts[i] = q.String()
	}

	return "inheritance cycle: " + strings.Join(parts, " -> ")
}

// Table is the frozen global symbol table. All methods are read-only.
type Table struct {
	types map[string]*source.TypeDeclaration
	bases map[string][]source.QualifiedName
	order []source.QualifiedName
}

// Build scans all source units, registers every type declaration, and
// resolves inheritance edges. It returns a non-nil *CycleError-wrapped
// error only for graph-wide structural failures; everything else is
// recorded in the returned diagnostics.
func Build(units []*source.SourceUnit) (*Table, diagnostic.Diagnostics, error) {
	t := &Table{
		types: make(map[string]*source.TypeDeclaration),
		bases: make(map[string][]source.QualifiedName),
	}

	var diags diagnostic.Diagnostics

	for _, unit := range units {
		for _, decl := range unit.Types {
			key := decl.Name.String()

			if prev, exists := t.types[key]; exists {
				diags.AddError("duplicate_type",
					fmt.Sprintf("type %s already declared at %s", key, prev.Loc),
					key, decl.Loc)

				continue
			}

			t.types[key] = decl
			t.order = append(t.order, decl.Name)
		}
	}

	t.resolveBases(&diags)

	if err := t.checkCycles(); err != nil {
		return nil, diags, err
	}

	return t, diags, nil
}

// resolveBases resolves every declared base reference against the
// registry. Unresolvable references are dropped with a diagnostic that
// suggests the nearest known type names.
func (t *Table) resolveBases(diags *diagnostic.Diagnostics) {
	for _, name := range t.order {
		decl := t.types[name.String()]

		var resolved []source.QualifiedName

		for _, base := range decl.Bases {
			target, ok := t.resolveRef(decl.Name.Namespace, base)
			if !ok {
				d := diagnostic.Diagnostic{
					Severity:      diagnostic.SeverityWarning,
					Code:          "unresolved_base",
					Message:       fmt.Sprintf("base type %s of %s is not declared in any source unit; edge dropped", base, decl.Name),
					Construct:     decl.Name.String(),
					ConstructKind: "type",
					Loc:           decl.Loc,
					Suggestions:   names.Suggest(base.Name, t.simpleNames(), names.DefaultMaxSuggestions),
				}
				diags.Add(d)

				continue
			}

			resolved = append(resolved, target)
		}

		t.bases[name.String()] = resolved
	}
}

// resolveRef resolves a possibly unqualified base reference from the
// perspective of the referencing namespace: innermost enclosing
// namespace first, then outward to the global one, then as written.
func (t *Table) resolveRef(from source.NamespacePath, ref source.QualifiedName) (source.QualifiedName, bool) {
	for i := len(from); i >= 0; i-- {
		candidate := source.QualifiedName{
			Namespace: append(append(source.NamespacePath{}, from[:i]...), ref.Namespace...),
			Name:      ref.Name,
		}

		if _, ok := t.types[candidate.String()]; ok {
			return candidate, true
		}
	}

	if _, ok := t.types[ref.String()]; ok {
		return ref, true
	}

	return source.QualifiedName{}, false
}

// checkCycles walks every resolved base chain and fails on the first
// revisit of a type already on the chain.
func (t *Table) checkCycles() error {
	const (
		unvisited = iota
		inProgress
		done
	)

	state := make(map[string]int, len(t.types))

	var visit func(name source.QualifiedName, chain []source.QualifiedName) error

	visit = func(name source.QualifiedName, chain []source.QualifiedName) error {
		key := name.String()

		switch state[key] {
		case done:
			return nil
		case inProgress:
			return &CycleError{Chain: append(chain, name)}
		}

		state[key] = inProgress

		for _, base := range t.bases[key] {
			if err := visit(base, append(chain, name)); err != nil {
				return err
			}
		}

		state[key] = done

		return nil
	}

	for _, name := range t.order {
		if err := visit(name, nil); err != nil {
			return err
		}
	}

	return nil
}

// Lookup returns the declaration for a qualified name, or nil.
func (t *Table) Lookup(name source.QualifiedName) *source.TypeDeclaration {
	return t.types[name.String()]
}

// Bases returns the resolved base types of the named type, in
// declaration order, with unresolved edges already dropped.
func (t *Table) Bases(name source.QualifiedName) []source.QualifiedName {
	return t.bases[name.String()]
}

// Types returns every registered declaration in registration order.
func (t *Table) Types() []*source.TypeDeclaration {
	out := make([]*source.TypeDeclaration, len(t.order))
	for i, name := range t.order {
		out[i] = t.types[name.String()]
	}

	return out
}

// Len returns the number of registered types.
func (t *Table) Len() int {
	return len(t.order)
}

// simpleNames returns the simple names of all registered types, used
// for near-miss suggestions.
func (t *Table) simpleNames() []string {
	out := make([]string, len(t.order))
	for i, name := range t.order {
		out[i] = name.Name
	}

	return out
}
