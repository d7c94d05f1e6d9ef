package mapper

import (
	"fmt"
	"strings"

	"classbridge/internal/classify"
	"classbridge/internal/diagnostic"
	"classbridge/internal/names"
	"classbridge/internal/source"
	"classbridge/internal/symtab"
	"classbridge/internal/target"
	"classbridge/internal/typemap"
)

// typeOutcome is everything the engine collects from mapping one type.
type typeOutcome struct {
	// Decl is the generated declaration, nil when the type is
	// unmappable.
	Decl *target.Declaration
	// Results holds the per-member results plus one type-level result
	// (always last).
	Results []Result
	// Diags are the diagnostics raised while mapping this type.
	Diags diagnostic.Diagnostics
}

// typeMapper maps a single type declaration. It only reads from the
// frozen symbol table, so distinct typeMappers can run concurrently.
type typeMapper struct {
	table *symtab.Table
	decl  *source.TypeDeclaration
	// reserved holds the pre-assigned target names for every type in the
	// run, so references to renamed types stay consistent.
	reserved map[string]reservation

	constructs []*construct
	diags      diagnostic.Diagnostics
	out        *target.Declaration

	typeUnmappable bool
	typeReason     string
	renameNote     string
}

// mapType runs the full member pipeline for one declaration under its
// own name.
func mapType(table *symtab.Table, decl *source.TypeDeclaration) *typeOutcome {
	return mapTypeAs(table, decl, nil)
}

// mapTypeAs runs the pipeline with target names reserved up front.
// Constructors, bodies, and cross-type references all follow the
// reserved names, so a disambiguated class never mentions its old name.
func mapTypeAs(table *symtab.Table, decl *source.TypeDeclaration, reserved map[string]reservation) *typeOutcome {
	tm := &typeMapper{table: table, decl: decl, reserved: reserved}

	classified := classify.Members(decl)
	tm.constructs = make([]*construct, len(classified))

	owner := decl.Name.String()
	for i, c := range classified {
		tm.constructs[i] = newConstruct(owner, c)
	}

	disp := tm.analyzeDispatch()
	life := tm.analyzeLifecycle()

	if tm.typeUnmappable {
		return tm.finishUnmappable()
	}

	simpleName := decl.Name.Name
	if res, ok := reserved[decl.Name.String()]; ok {
		simpleName = res.simpleName
		tm.renameNote = res.renameNote
	}

	tm.out = &target.Declaration{
		Name:       decl.Name,
		SimpleName: simpleName,
		Kind:       disp.kind,
		Extends:    disp.extendsName,
		Implements: disp.implementsNames,
		Imports:    disp.imports,
	}

	tm.mapFields()
	tm.mapConstructors(life)
	tm.mapLifecycle(life)
	tm.mapMethods(disp)
	tm.mapOperators()

	return tm.finish()
}

// finish assembles the outcome for a mappable type.
func (tm *typeMapper) finish() *typeOutcome {
	// Anything not settled by a dedicated mapper translated cleanly.
	for _, c := range tm.constructs {
		c.settle(OutcomeMapped, "")
	}

	results := make([]Result, 0, len(tm.constructs)+1)
	for _, c := range tm.constructs {
		results = append(results, c.result)
	}

	typeResult := Result{
		Construct:     tm.decl.Name.String(),
		ConstructKind: "type",
		Loc:           tm.decl.Loc,
		Outcome:       OutcomeMapped,
	}

	if tm.renameNote != "" {
		typeResult.Outcome = OutcomeBestEffort
		typeResult.Note = tm.renameNote
		tm.diags.Add(diagnostic.Diagnostic{
			Severity:      diagnostic.SeverityWarning,
			Code:          "name_collision",
			Message:       tm.renameNote,
			Construct:     tm.decl.Name.String(),
			ConstructKind: "type",
			Loc:           tm.decl.Loc,
		})
	}

	results = append(results, typeResult)

	return &typeOutcome{Decl: tm.out, Results: results, Diags: tm.diags}
}

// finishUnmappable settles every construct and reports the single
// type-level error. Sibling types are unaffected.
func (tm *typeMapper) finishUnmappable() *typeOutcome {
	for _, c := range tm.constructs {
		c.settle(OutcomeUnmappable, "containing type is unmappable")
	}

	results := make([]Result, 0, len(tm.constructs)+1)
	for _, c := range tm.constructs {
		results = append(results, c.result)
	}

	results = append(results, Result{
		Construct:     tm.decl.Name.String(),
		ConstructKind: "type",
		Loc:           tm.decl.Loc,
		Outcome:       OutcomeUnmappable,
		Reason:        tm.typeReason,
	})

	return &typeOutcome{Results: results, Diags: tm.diags}
}

// markTypeUnmappable records a type-level failure. The first reason
// wins.
func (tm *typeMapper) markTypeUnmappable(code, reason string) {
	if tm.typeUnmappable {
		return
	}

	tm.typeUnmappable = true
	tm.typeReason = reason
	tm.diags.Add(diagnostic.Diagnostic{
		Severity:      diagnostic.SeverityError,
		Code:          code,
		Message:       reason,
		Construct:     tm.decl.Name.String(),
		ConstructKind: "type",
		Loc:           tm.decl.Loc,
	})
}

// settleBestEffort settles a construct as best-effort and emits the
// paired warning.
func (tm *typeMapper) settleBestEffort(c *construct, code, note string) {
	c.settle(OutcomeBestEffort, note)
	tm.diags.Add(diagnostic.Diagnostic{
		Severity:      diagnostic.SeverityWarning,
		Code:          code,
		Message:       note,
		Construct:     c.result.Construct,
		ConstructKind: c.result.ConstructKind,
		Loc:           c.result.Loc,
	})
}

// settleUnmappable settles a construct as unmappable and emits the
// paired error.
func (tm *typeMapper) settleUnmappable(c *construct, code, reason string) {
	c.settle(OutcomeUnmappable, reason)
	tm.diags.Add(diagnostic.Diagnostic{
		Severity:      diagnostic.SeverityError,
		Code:          code,
		Message:       reason,
		Construct:     c.result.Construct,
		ConstructKind: c.result.ConstructKind,
		Loc:           c.result.Loc,
	})
}

// ofKind returns the constructs classified with the given kind, in
// declaration order.
func (tm *typeMapper) ofKind(kind classify.ConstructKind) []*construct {
	var out []*construct

	for _, c := range tm.constructs {
		if c.classified.Kind == kind {
			out = append(out, c)
		}
	}

	return out
}

// javaType maps one source type ref, collecting the import and an info
// note for spellings nothing in the run recognizes. References to
// declared types follow their reserved target names.
func (tm *typeMapper) javaType(ref source.TypeRef) string {
	m := typemap.ToJava(ref)
	if m.Import != "" {
		tm.out.Imports = append(tm.out.Imports, m.Import)
	}

	if m.Known {
		return m.Java
	}

	q := source.ParseQualifiedName(typemap.Clean(ref.Spelling))
	if d, ok := tm.resolve(q); ok {
		if res, found := tm.reserved[d.Name.String()]; found && res.simpleName != d.Name.Name {
			return strings.Replace(m.Java, d.Name.Name, res.simpleName, 1)
		}

		return m.Java
	}

	tm.diags.AddInfo("unrecognized_type",
		fmt.Sprintf("type %q has no correspondence entry; kept as %s", ref.Spelling, m.Java),
		tm.decl.Name.String(), tm.decl.Loc)

	return m.Java
}

// resolve looks a reference up from this type's namespace outwards.
func (tm *typeMapper) resolve(ref source.QualifiedName) (*source.TypeDeclaration, bool) {
	ns := tm.decl.Name.Namespace
	for i := len(ns); i >= 0; i-- {
		candidate := source.QualifiedName{
			Namespace: append(append(source.NamespacePath{}, ns[:i]...), ref.Namespace...),
			Name:      ref.Name,
		}

		if d := tm.table.Lookup(candidate); d != nil {
			return d, true
		}
	}

	if d := tm.table.Lookup(ref); d != nil {
		return d, true
	}

	return nil, false
}

// mapFields emits one target field per data member.
func (tm *typeMapper) mapFields() {
	for _, c := range tm.ofKind(classify.KindField) {
		m := c.classified.Member

		tm.out.Members = append(tm.out.Members, target.Member{
			Kind:      target.MemberField,
			Name:      names.Camel(m.Name),
			Type:      tm.javaType(m.FieldType),
			Modifiers: []string{accessModifier(m.Access, "private")},
		})

		if m.OwnsResource && m.BorrowExposed {
			tm.settleBestEffort(c, "ambiguous_ownership",
				fmt.Sprintf("field %s is released by the destructor but also exposed by a borrowing accessor; treated as owned", m.Name))

			continue
		}

		c.settle(OutcomeMapped, "")
	}
}

// mapConstructors emits constructor equivalents. Acquisition stays in
// the constructor: parameters matching fields by name are assigned, and
// acquired fields fall back to positional pairing with unused
// parameters.
func (tm *typeMapper) mapConstructors(life lifecycleInfo) {
	fieldNames := make(map[string]string) // camel name -> java field name
	for _, f := range tm.decl.Fields() {
		fieldNames[names.Camel(f.Name)] = names.Camel(f.Name)
	}

	for _, c := range tm.ofKind(classify.KindConstructor) {
		m := c.classified.Member

		member := target.Member{
			Kind:      target.MemberConstructor,
			Name:      tm.out.SimpleName,
			Modifiers: []string{accessModifier(m.Access, "public")},
		}

		usedParams := make(map[string]bool)

		for _, p := range m.Params {
			paramName := names.Camel(p.Name)
			member.Params = append(member.Params, target.Param{
				Name: paramName,
				Type: tm.javaType(p.Type),
			})

			if field, ok := fieldNames[paramName]; ok {
				member.Body = append(member.Body, fmt.Sprintf("this.%s = %s;", field, paramName))
				usedParams[paramName] = true
			}
		}

		// Pair remaining acquired fields with unused parameters in
		// order, mirroring acquisition in the source body.
		unused := make([]string, 0, len(m.Params))

		for _, p := range m.Params {
			paramName := names.Camel(p.Name)
			if !usedParams[paramName] {
				unused = append(unused, paramName)
			}
		}

		for _, acquired := range m.AcquiredFields {
			field := names.Camel(acquired)
			if usedParams[field] {
				continue
			}

			if len(unused) == 0 {
				break
			}

			member.Body = append(member.Body, fmt.Sprintf("this.%s = %s;", field, unused[0]))
			unused = unused[1:]
		}

		if life.needsClose() {
			// Reset the guard so a reconstructed value is releasable.
			member.Body = append(member.Body, "this.closed = false;")
		}

		tm.out.Members = append(tm.out.Members, member)
		c.settle(OutcomeMapped, "")
	}
}

// mapMethods emits plain and abstract method equivalents.
func (tm *typeMapper) mapMethods(disp dispatchInfo) {
	for _, c := range tm.ofKind(classify.KindAbstractMethod) {
		m := c.classified.Member

		member := target.Member{
			Kind:   target.MemberAbstractMethod,
			Name:   names.Camel(m.Name),
			Type:   tm.javaType(m.ReturnType),
			Params: tm.javaParams(m.Params),
		}

		if disp.kind == target.KindAbstractClass {
			member.Modifiers = []string{accessModifier(m.Access, "public"), "abstract"}
		}

		tm.out.Members = append(tm.out.Members, member)
		c.settle(OutcomeMapped, "")
	}

	for _, c := range tm.ofKind(classify.KindMethod) {
		m := c.classified.Member

		member := target.Member{
			Kind:      target.MemberMethod,
			Name:      names.Camel(m.Name),
			Type:      tm.javaType(m.ReturnType),
			Params:    tm.javaParams(m.Params),
			Modifiers: []string{accessModifier(m.Access, "public")},
			Body:      stubBody(tm.javaType(m.ReturnType)),
		}

		if m.IsStatic {
			member.Modifiers = append(member.Modifiers, "static")
		}

		if m.IsOverride {
			member.Annotations = []string{"@Override"}
		}

		tm.out.Members = append(tm.out.Members, member)
		c.settle(OutcomeMapped, "")
	}
}

// javaParams maps a source parameter list.
func (tm *typeMapper) javaParams(params []source.Param) []target.Param {
	out := make([]target.Param, len(params))
	for i, p := range params {
		out[i] = target.Param{Name: names.Camel(p.Name), Type: tm.javaType(p.Type)}
	}

	return out
}

// accessModifier maps a source access level, falling back when the
// front-end recorded none.
func accessModifier(access, fallback string) string {
	switch access {
	case "public", "protected", "private":
		return access
	default:
		return fallback
	}
}

// stubBody returns the body for a translated method: statement
// translation is out of scope, so bodies reduce to a default return.
func stubBody(javaReturn string) []string {
	switch javaReturn {
	case "void", "":
		return nil
	case "int", "long", "short", "byte", "char":
		return []string{"return 0;"}
	case "float":
		return []string{"return 0.0f;"}
	case "double":
		return []string{"return 0.0;"}
	case "boolean":
		return []string{"return false;"}
	default:
		return []string{"return null;"}
	}
}
