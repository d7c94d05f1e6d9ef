package target

import (
	"strings"

	"classbridge/internal/common"
	"classbridge/internal/names"
	"classbridge/internal/source"
)

// Kind is the kind of a generated target declaration.
type Kind int

const (
	// KindInterface - a Java interface (abstract methods only).
	KindInterface Kind = iota
	// KindAbstractClass - an abstract class (abstract methods plus state
	// or concrete behavior).
	KindAbstractClass
	// KindConcreteClass - a fully concrete class.
	KindConcreteClass
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindInterface:
		return "interface"
	case KindAbstractClass:
		return "abstract class"
	case KindConcreteClass:
		return "class"
	default:
		return common.UnknownStr
	}
}

// MemberKind is the kind of a generated member.
type MemberKind int

const (
	// MemberField - a data field.
	MemberField MemberKind = iota
	// MemberConstructor - a constructor.
	MemberConstructor
	// MemberMethod - a concrete method with a body.
	MemberMethod
	// MemberAbstractMethod - a bodyless abstract method.
	MemberAbstractMethod
)

// String returns a human-readable member kind name.
func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "field"
	case MemberConstructor:
		return "constructor"
	case MemberMethod:
		return "method"
	case MemberAbstractMethod:
		return "abstract method"
	default:
		return common.UnknownStr
	}
}

// Param is a generated parameter: Java type spelling plus name.
type Param struct {
	Name string
	Type string
}

// Member is one generated class or interface member.
type Member struct {
	Kind MemberKind
	// Name is the Java member name.
	Name string
	// Type is the Java field type or method return type ("" for
	// constructors).
	Type string
	// Params is the ordered parameter list.
	Params []Param
	// Modifiers are the Java modifiers in emit order, e.g.
	// ["private"], ["public", "static"]. Defaults to ["public"] for
	// methods when empty.
	Modifiers []string
	// Annotations are emitted above the member, e.g. "@Override".
	Annotations []string
	// Body holds the body statements, one per line, without braces or
	// indentation. Ignored for fields and abstract methods.
	Body []string
}

// Declaration is one generated Java type.
type Declaration struct {
	// Name preserves the source qualified name; the emitter derives the
	// package path and file name from it.
	Name source.QualifiedName
	// SimpleName is the Java class name, which may carry a
	// disambiguation suffix and therefore differ from Name.Name.
	SimpleName string
	// Kind selects interface, abstract class, or concrete class.
	Kind Kind
	// Extends is the single superclass or superinterface ("" for none).
	Extends string
	// Implements lists implemented interfaces in emit order.
	Implements []string
	// Members is the ordered member list.
	Members []Member
	// Imports are the Java imports the declaration needs, unsorted and
	// possibly duplicated; the emitter dedups.
	Imports []string
}

// PackageName derives the Java package for a namespace path, e.g.
// Geometry::Shapes -> "geometry.shapes". Empty for the root.
func PackageName(ns source.NamespacePath) string {
	if len(ns) == 0 {
		return ""
	}

	segments := make([]string, len(ns))
	for i, s := range ns {
		segments[i] = names.PackageSegment(s)
	}

	return strings.Join(segments, ".")
}

// PackageName returns the Java package of the declaration.
func (d *Declaration) PackageName() string {
	return PackageName(d.Name.Namespace)
}

// QualifiedJavaName returns the dot-separated fully qualified Java name.
func (d *Declaration) QualifiedJavaName() string {
	pkg := d.PackageName()
	if pkg == "" {
		return d.SimpleName
	}

	return pkg + "." + d.SimpleName
}
