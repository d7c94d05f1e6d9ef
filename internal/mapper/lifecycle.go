package mapper

import (
	"fmt"

	"classbridge/internal/classify"
	"classbridge/internal/common"
	"classbridge/internal/names"
	"classbridge/internal/source"
	"classbridge/internal/target"
	"classbridge/internal/typemap"
)

// lifecycleInfo is the outcome of constructor/destructor analysis.
type lifecycleInfo struct {
	// dtor is the destructor construct, nil when the type has none.
	dtor *construct
	// owned are the resource-owning fields in acquisition order.
	owned []source.MemberDeclaration
	// hasCtor is true when at least one constructor exists.
	hasCtor bool
	// trivial is true for defaulted destructors over resource-free
	// types: nothing to release, nothing to emit.
	trivial bool
}

// needsClose reports whether close() carries the closed guard, which
// constructors must reset. A no-op close has no guard.
func (l lifecycleInfo) needsClose() bool {
	return l.dtor != nil && !l.trivial && len(l.owned) > 0
}

// analyzeLifecycle inspects the constructor/destructor pair. A
// destructor without any constructor leaves the acquisition point
// unknown and makes the type unmappable.
func (tm *typeMapper) analyzeLifecycle() lifecycleInfo {
	var life lifecycleInfo

	life.hasCtor = len(tm.ofKind(classify.KindConstructor)) > 0

	d, ok := common.First(tm.ofKind(classify.KindDestructor))
	if !ok {
		return life
	}

	life.dtor = d
	life.owned = tm.ownedFields()

	if d.classified.Member.IsDefaulted && len(life.owned) == 0 {
		life.trivial = true

		return life
	}

	if !life.hasCtor {
		tm.markTypeUnmappable("missing_constructor",
			fmt.Sprintf("type %s has a destructor but no constructor; acquisition point unknown", tm.decl.Name))
	}

	return life
}

// ownedFields returns the resource-owning fields ordered by
// acquisition: constructor assignment order first, declaration order
// for the rest.
func (tm *typeMapper) ownedFields() []source.MemberDeclaration {
	byName := make(map[string]source.MemberDeclaration)

	for _, f := range tm.decl.Fields() {
		if f.OwnsResource {
			byName[f.Name] = f
		}
	}

	if len(byName) == 0 {
		return nil
	}

	var ordered []source.MemberDeclaration

	seen := make(map[string]bool)

	for _, c := range tm.ofKind(classify.KindConstructor) {
		for _, acquired := range c.classified.Member.AcquiredFields {
			f, owns := byName[acquired]
			if owns && !seen[acquired] {
				ordered = append(ordered, f)
				seen[acquired] = true
			}
		}
	}

	for _, f := range tm.decl.Fields() {
		if f.OwnsResource && !seen[f.Name] {
			ordered = append(ordered, f)
		}
	}

	return ordered
}

// mapLifecycle converts the destructor into an explicit, idempotent
// close() and tags the type AutoCloseable so call sites can use
// try-with-resources scoping.
func (tm *typeMapper) mapLifecycle(life lifecycleInfo) {
	if life.dtor == nil {
		return
	}

	if life.trivial {
		life.dtor.settle(OutcomeMapped, "")

		return
	}

	if len(life.owned) == 0 {
		tm.out.Implements = append(tm.out.Implements, "AutoCloseable")
		tm.out.Members = append(tm.out.Members, target.Member{
			Kind:        target.MemberMethod,
			Name:        "close",
			Type:        "void",
			Modifiers:   []string{"public"},
			Annotations: []string{"@Override"},
		})

		tm.settleBestEffort(life.dtor, "no_owned_resource",
			fmt.Sprintf("destructor of %s releases no owned resource; mapped to a no-op close()", tm.decl.Name))

		return
	}

	tm.out.Implements = append(tm.out.Implements, "AutoCloseable")
	tm.out.Members = append(tm.out.Members, target.Member{
		Kind:      target.MemberField,
		Name:      "closed",
		Type:      "boolean",
		Modifiers: []string{"private"},
	})

	tm.out.Members = append(tm.out.Members, target.Member{
		Kind:        target.MemberMethod,
		Name:        "close",
		Type:        "void",
		Modifiers:   []string{"public"},
		Annotations: []string{"@Override"},
		Body:        tm.closeBody(life),
	})

	life.dtor.settle(OutcomeMapped, "")
}

// closeBody builds the close() statements: an idempotence guard, then
// each owned resource released in reverse acquisition order. A failing
// release never stops the remaining ones; failures are collected and
// rethrown together with the extras suppressed.
func (tm *typeMapper) closeBody(life lifecycleInfo) []string {
	body := []string{
		"if (this.closed) {",
		"    return;",
		"}",
		"this.closed = true;",
	}

	releasable := 0

	for _, f := range life.owned {
		if tm.isReleasable(f.FieldType) {
			releasable++
		}
	}

	if releasable > 0 {
		tm.out.Imports = append(tm.out.Imports, "java.util.ArrayList", "java.util.List")
		body = append(body, "List<RuntimeException> failures = new ArrayList<>();")
	}

	for i := len(life.owned) - 1; i >= 0; i-- {
		f := life.owned[i]
		field := names.Camel(f.Name)

		if tm.isReleasable(f.FieldType) {
			body = append(body,
				"try {",
				fmt.Sprintf("    this.%s.close();", field),
				"} catch (RuntimeException e) {",
				"    failures.add(e);",
				"}")
		}

		body = append(body, fmt.Sprintf("this.%s = null;", field))
	}

	if releasable > 0 {
		body = append(body,
			"if (!failures.isEmpty()) {",
			"    RuntimeException first = failures.get(0);",
			"    for (RuntimeException e : failures.subList(1, failures.size())) {",
			"        first.addSuppressed(e);",
			"    }",
			"    throw first;",
			"}")
	}

	return body
}

// isReleasable reports whether a field's type resolves to a declared
// type that will itself expose close(), chaining deterministic release.
func (tm *typeMapper) isReleasable(ref source.TypeRef) bool {
	decl, ok := tm.resolve(source.ParseQualifiedName(typemap.Clean(ref.Spelling)))
	if !ok {
		return false
	}

	hasDtor := false
	hasCtor := false

	for _, c := range classify.Members(decl) {
		switch c.Kind {
		case classify.KindDestructor:
			if !c.Member.IsDefaulted {
				hasDtor = true
			}
		case classify.KindConstructor:
			hasCtor = true
		}
	}

	return hasDtor && hasCtor
}
