package mapper

import (
	"fmt"
	"sort"
	"strings"

	"classbridge/internal/classify"
	"classbridge/internal/common"
	"classbridge/internal/source"
	"classbridge/internal/symtab"
	"classbridge/internal/target"
)

// dispatchInfo is the outcome of inheritance analysis for one type.
type dispatchInfo struct {
	// kind is the target declaration kind.
	kind target.Kind
	// extendsName is the Java superclass ("" for none). For interfaces
	// the extended superinterfaces live in implementsNames.
	extendsName string
	// implementsNames are the implemented (or, for interfaces,
	// extended) interfaces.
	implementsNames []string
	// imports are collected for cross-package base references.
	imports []string
}

// analyzeDispatch validates the inheritance shape and decides the
// target kind. Single-implementation-inheritance violations and
// incomplete overrides mark the whole type unmappable; siblings are
// never affected.
func (tm *typeMapper) analyzeDispatch() dispatchInfo {
	var info dispatchInfo

	bases := tm.table.Bases(tm.decl.Name)

	var implBases, ifaceBases []source.QualifiedName

	for _, base := range bases {
		baseDecl := tm.table.Lookup(base)
		if baseDecl == nil {
			continue
		}

		if declaredKind(baseDecl) == target.KindInterface {
			ifaceBases = append(ifaceBases, base)
		} else {
			implBases = append(implBases, base)
		}
	}

	if common.IsMultiple(implBases) {
		baseNames := make([]string, len(implBases))
		for i, b := range implBases {
			baseNames[i] = b.String()
		}

		tm.markTypeUnmappable("multiple_implementation_inheritance",
			fmt.Sprintf("multiple-implementation-inheritance-unsupported: bases %s all carry implementation; resolve by hand",
				strings.Join(baseNames, ", ")))

		return info
	}

	info.kind = tm.ownKind(len(implBases) > 0)

	if info.kind == target.KindConcreteClass && len(bases) > 0 {
		tm.checkOverrideCompleteness(bases)
		if tm.typeUnmappable {
			return info
		}
	}

	if base, ok := common.First(implBases); ok {
		info.extendsName = tm.baseJavaName(base, &info)
	}

	for _, base := range ifaceBases {
		info.implementsNames = append(info.implementsNames, tm.baseJavaName(base, &info))
	}

	return info
}

// ownKind decides this type's target kind from its own members plus
// whether an implementation-bearing base forces class-ness.
func (tm *typeMapper) ownKind(hasImplBase bool) target.Kind {
	hasAbstract := false
	hasImpl := false

	for _, c := range tm.constructs {
		switch c.classified.Kind {
		case classify.KindAbstractMethod:
			hasAbstract = true
		case classify.KindDestructor:
			// A defaulted destructor carries no behavior and does not
			// stop a type from becoming an interface.
			if !c.classified.Member.IsDefaulted {
				hasImpl = true
			}
		default:
			hasImpl = true
		}
	}

	switch {
	case hasAbstract && !hasImpl && !hasImplBase:
		return target.KindInterface
	case hasAbstract:
		return target.KindAbstractClass
	default:
		return target.KindConcreteClass
	}
}

// declaredKind is ownKind for a foreign declaration, used to classify
// base types when building extends/implements clauses.
func declaredKind(decl *source.TypeDeclaration) target.Kind {
	hasAbstract := false
	hasImpl := false

	for _, c := range classify.Members(decl) {
		switch c.Kind {
		case classify.KindAbstractMethod:
			hasAbstract = true
		case classify.KindDestructor:
			if !c.Member.IsDefaulted {
				hasImpl = true
			}
		default:
			hasImpl = true
		}
	}

	switch {
	case hasAbstract && !hasImpl:
		return target.KindInterface
	case hasAbstract:
		return target.KindAbstractClass
	default:
		return target.KindConcreteClass
	}
}

// checkOverrideCompleteness verifies that a concrete type supplies an
// override-classified concrete method for every abstract method it
// inherits along its base chain.
func (tm *typeMapper) checkOverrideCompleteness(bases []source.QualifiedName) {
	needs := make(map[string]bool)
	for _, base := range bases {
		for name := range inheritedAbstract(tm.table, base) {
			needs[name] = true
		}
	}

	if len(needs) == 0 {
		return
	}

	overridden := make(map[string]bool)

	for _, c := range tm.constructs {
		if c.classified.Kind == classify.KindMethod && c.classified.Member.IsOverride {
			overridden[c.classified.Member.Name] = true
		}
	}

	var missing []string

	for name := range needs {
		if !overridden[name] {
			missing = append(missing, name)
		}
	}

	if len(missing) == 0 {
		return
	}

	sort.Strings(missing)
	tm.markTypeUnmappable("incomplete_override",
		fmt.Sprintf("type %s does not override inherited abstract methods: %s",
			tm.decl.Name, strings.Join(missing, ", ")))
}

// inheritedAbstract returns the abstract methods still unimplemented at
// the named type, considering its whole base chain. The inheritance
// graph is acyclic by the time mapping runs, so plain recursion is safe.
func inheritedAbstract(table *symtab.Table, name source.QualifiedName) map[string]bool {
	decl := table.Lookup(name)
	if decl == nil {
		return nil
	}

	needs := make(map[string]bool)

	for _, base := range table.Bases(name) {
		for n := range inheritedAbstract(table, base) {
			needs[n] = true
		}
	}

	for _, c := range classify.Members(decl) {
		switch c.Kind {
		case classify.KindAbstractMethod:
			needs[c.Member.Name] = true
		case classify.KindMethod:
			delete(needs, c.Member.Name)
		}
	}

	return needs
}

// baseJavaName returns the Java name for a base reference, importing it
// when it lives in a different package. A base renamed by collision
// disambiguation is referenced under its reserved name.
func (tm *typeMapper) baseJavaName(base source.QualifiedName, info *dispatchInfo) string {
	simple := base.Name
	if res, ok := tm.reserved[base.String()]; ok {
		simple = res.simpleName
	}

	if base.Namespace.Equal(tm.decl.Name.Namespace) {
		return simple
	}

	if pkg := target.PackageName(base.Namespace); pkg != "" {
		info.imports = append(info.imports, pkg+"."+simple)
	}

	return simple
}
