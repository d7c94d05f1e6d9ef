package mapper

import (
	"fmt"
	"sort"
	"strings"

	"classbridge/internal/classify"
	"classbridge/internal/common"
	"classbridge/internal/names"
	"classbridge/internal/target"
	"classbridge/internal/typemap"
)

// arithmeticMethods is the correspondence table for binary arithmetic
// operators.
var arithmeticMethods = map[classify.OperatorKind]struct {
	name  string
	token string
}{
	classify.OpAdd:      {name: "add", token: "+"},
	classify.OpSubtract: {name: "subtract", token: "-"},
	classify.OpMultiply: {name: "multiply", token: "*"},
	classify.OpDivide:   {name: "divide", token: "/"},
}

// comparisonOps are the operators that fold into a single compareTo.
var comparisonOps = map[classify.OperatorKind]bool{
	classify.OpLess:         true,
	classify.OpLessEqual:    true,
	classify.OpGreater:      true,
	classify.OpGreaterEqual: true,
	classify.OpSpaceship:    true,
}

// mapOperators desugars every operator overload via the fixed
// correspondence table: equality brings an equals/hashCode pair,
// comparisons fold into compareTo, arithmetic becomes named methods
// returning new instances. Everything else is unmappable.
func (tm *typeMapper) mapOperators() {
	ops := tm.ofKind(classify.KindOperator)
	if len(ops) == 0 {
		return
	}

	var equality, notEqual, comparisons []*construct

	for _, c := range ops {
		switch {
		case c.classified.Operator == classify.OpEqual:
			equality = append(equality, c)
		case c.classified.Operator == classify.OpNotEqual:
			notEqual = append(notEqual, c)
		case comparisonOps[c.classified.Operator]:
			comparisons = append(comparisons, c)
		}
	}

	tm.mapEquality(equality, notEqual)
	tm.mapComparisons(comparisons)

	for _, c := range ops {
		if c.settled() {
			continue
		}

		if spec, ok := arithmeticMethods[c.classified.Operator]; ok {
			tm.mapArithmetic(c, spec.name, spec.token)

			continue
		}

		tm.settleUnmappable(c, "operator_not_representable",
			fmt.Sprintf("operator-not-representable: operator%s has no named-method equivalent in the target",
				c.classified.Operator))
	}
}

// mapEquality emits the equals method and its obligatory hashCode
// companion over the same compared fields, so equal values always hash
// alike. operator!= folds into the generated equals.
func (tm *typeMapper) mapEquality(equality, notEqual []*construct) {
	driver, ok := common.First(equality)
	if !ok {
		// operator!= alone still determines equality semantics: the
		// compared fields are the same, only negated.
		driver, ok = common.First(notEqual)
		if !ok {
			return
		}
	}

	m := driver.classified.Member

	compared := m.ComparedFields
	analyzable := len(compared) > 0

	if !analyzable {
		compared = tm.fieldNames()
	}

	covered := make(map[string]bool, len(compared))
	for _, f := range compared {
		covered[f] = true
	}

	var uncovered []string

	for _, f := range tm.fieldNames() {
		if !covered[f] {
			uncovered = append(uncovered, f)
		}
	}

	tm.out.Imports = append(tm.out.Imports, "java.util.Objects")
	tm.out.Members = append(tm.out.Members, tm.equalsMember(compared))
	tm.out.Members = append(tm.out.Members, tm.hashCodeMember(compared))

	switch {
	case !analyzable:
		tm.settleBestEffort(driver, "equality_not_analyzable",
			"equality operator body could not be analyzed; equals/hashCode assume full structural equality")
	case len(uncovered) > 0:
		sort.Strings(uncovered)
		tm.settleBestEffort(driver, "partial_equality",
			fmt.Sprintf("equality operator compares only [%s]; fields [%s] are excluded from equals and hashCode",
				strings.Join(compared, ", "), strings.Join(uncovered, ", ")))
	default:
		driver.settle(OutcomeMapped, "")
	}

	// Remaining equality-family operators fold into the same pair.
	for _, c := range append(equality, notEqual...) {
		c.settle(OutcomeMapped, "")
	}
}

// equalsMember builds the equals(Object) override comparing the given
// fields: primitives by ==, everything else via Objects.equals.
func (tm *typeMapper) equalsMember(compared []string) target.Member {
	self := tm.out.SimpleName

	body := []string{
		"if (this == obj) {",
		"    return true;",
		"}",
		fmt.Sprintf("if (!(obj instanceof %s)) {", self),
		"    return false;",
		"}",
		fmt.Sprintf("%s other = (%s) obj;", self, self),
	}

	terms := make([]string, 0, len(compared))

	for _, f := range compared {
		field := names.Camel(f)
		if typeIsPrimitive(tm.fieldJavaType(f)) {
			terms = append(terms, fmt.Sprintf("this.%s == other.%s", field, field))
		} else {
			terms = append(terms, fmt.Sprintf("Objects.equals(this.%s, other.%s)", field, field))
		}
	}

	if len(terms) == 0 {
		terms = []string{"true"}
	}

	body = append(body, "return "+strings.Join(terms, " && ")+";")

	return target.Member{
		Kind:        target.MemberMethod,
		Name:        "equals",
		Type:        "boolean",
		Params:      []target.Param{{Name: "obj", Type: "Object"}},
		Modifiers:   []string{"public"},
		Annotations: []string{"@Override"},
		Body:        body,
	}
}

// hashCodeMember builds the hashCode derived from exactly the fields
// equals compares, preserving the equal-implies-same-hash contract.
func (tm *typeMapper) hashCodeMember(compared []string) target.Member {
	args := make([]string, len(compared))
	for i, f := range compared {
		args[i] = names.Camel(f)
	}

	return target.Member{
		Kind:        target.MemberMethod,
		Name:        "hashCode",
		Type:        "int",
		Modifiers:   []string{"public"},
		Annotations: []string{"@Override"},
		Body:        []string{fmt.Sprintf("return Objects.hash(%s);", strings.Join(args, ", "))},
	}
}

// mapComparisons folds every comparison operator into one three-way
// compareTo and declares Comparable.
func (tm *typeMapper) mapComparisons(comparisons []*construct) {
	driver, ok := common.First(comparisons)
	if !ok {
		return
	}

	self := tm.out.SimpleName
	tm.out.Implements = append(tm.out.Implements, "Comparable<"+self+">")

	var body []string

	fields := tm.fieldNames()

	for i, f := range fields {
		expr := compareExpr(tm.fieldJavaType(f), names.Camel(f))
		if i == len(fields)-1 {
			body = append(body, "return "+expr+";")

			break
		}

		body = append(body,
			fmt.Sprintf("int cmp%d = %s;", i, expr),
			fmt.Sprintf("if (cmp%d != 0) {", i),
			fmt.Sprintf("    return cmp%d;", i),
			"}")
	}

	if len(fields) == 0 {
		body = []string{"return 0;"}
	}

	tm.out.Members = append(tm.out.Members, target.Member{
		Kind:        target.MemberMethod,
		Name:        "compareTo",
		Type:        "int",
		Params:      []target.Param{{Name: "other", Type: self}},
		Modifiers:   []string{"public"},
		Annotations: []string{"@Override"},
		Body:        body,
	})

	driver.settle(OutcomeMapped, "")

	for _, c := range comparisons {
		c.settle(OutcomeMapped, "")
	}
}

// mapArithmetic desugars one binary arithmetic operator to a named
// method returning a new instance combined field by field. Bodies that
// cannot be derived that way are stubbed and flagged best-effort.
func (tm *typeMapper) mapArithmetic(c *construct, methodName, token string) {
	m := c.classified.Member
	self := tm.out.SimpleName

	// Unary minus has a natural name of its own.
	if len(m.Params) == 0 && token == "-" {
		methodName = "negate"
	}

	member := target.Member{
		Kind:      target.MemberMethod,
		Name:      methodName,
		Type:      tm.javaType(m.ReturnType),
		Modifiers: []string{"public"},
	}

	if len(m.Params) > 0 {
		member.Params = []target.Param{{Name: "other", Type: tm.javaType(m.Params[0].Type)}}
	}

	if tm.fieldwiseConstructible(member.Type) {
		args := make([]string, 0, len(tm.fieldNames()))

		for _, f := range tm.fieldNames() {
			field := names.Camel(f)
			if len(m.Params) == 0 {
				args = append(args, fmt.Sprintf("%sthis.%s", token, field))
			} else {
				args = append(args, fmt.Sprintf("this.%s %s other.%s", field, token, field))
			}
		}

		member.Body = []string{fmt.Sprintf("return new %s(%s);", self, strings.Join(args, ", "))}

		tm.out.Members = append(tm.out.Members, member)
		c.settle(OutcomeMapped, "")

		return
	}

	member.Body = stubBody(member.Type)
	tm.out.Members = append(tm.out.Members, member)
	tm.settleBestEffort(c, "operator_body_underived",
		fmt.Sprintf("operator%s maps to %s() but its body could not be derived field-wise; stub emitted", token, methodName))
}

// fieldwiseConstructible reports whether a new instance can be built by
// combining fields: the result is this type, every field is numeric,
// and a constructor takes one argument per field.
func (tm *typeMapper) fieldwiseConstructible(javaReturn string) bool {
	if javaReturn != tm.out.SimpleName {
		return false
	}

	fields := tm.fieldNames()
	if len(fields) == 0 {
		return false
	}

	for _, f := range fields {
		if !typemap.IsNumeric(tm.fieldJavaType(f)) {
			return false
		}
	}

	for _, c := range tm.ofKind(classify.KindConstructor) {
		if len(c.classified.Member.Params) == len(fields) {
			return true
		}
	}

	return false
}

// fieldNames returns the data member names in declaration order.
func (tm *typeMapper) fieldNames() []string {
	var out []string
	for _, f := range tm.decl.Fields() {
		out = append(out, f.Name)
	}

	return out
}

// fieldJavaType returns the mapped Java type of the named field. It
// bypasses javaType so repeated lookups do not duplicate imports or
// info notes; mapFields already recorded those.
func (tm *typeMapper) fieldJavaType(name string) string {
	for _, f := range tm.decl.Fields() {
		if f.Name == name {
			return typemap.ToJava(f.FieldType).Java
		}
	}

	return "Object"
}

// compareExpr builds the three-way comparison expression for one field.
func compareExpr(javaType, field string) string {
	switch javaType {
	case "int", "short", "byte", "char":
		return fmt.Sprintf("Integer.compare(this.%s, other.%s)", field, field)
	case "long":
		return fmt.Sprintf("Long.compare(this.%s, other.%s)", field, field)
	case "float":
		return fmt.Sprintf("Float.compare(this.%s, other.%s)", field, field)
	case "double":
		return fmt.Sprintf("Double.compare(this.%s, other.%s)", field, field)
	case "boolean":
		return fmt.Sprintf("Boolean.compare(this.%s, other.%s)", field, field)
	default:
		return fmt.Sprintf("this.%s.compareTo(other.%s)", field, field)
	}
}

// typeIsPrimitive reports whether a Java spelling is a primitive type.
func typeIsPrimitive(javaType string) bool {
	switch javaType {
	case "int", "long", "short", "byte", "char", "boolean", "float", "double":
		return true
	default:
		return false
	}
}

