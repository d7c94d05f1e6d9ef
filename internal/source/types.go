package source

import (
	"fmt"
	"strings"
)

// Location identifies a position in an input file for diagnostics.
type Location struct {
	File   string
	Line   uint32
	Column uint32
}

// String returns a human-readable "file:line:column" representation.
func (l Location) String() string {
	if l.File == "" {
		return "<unknown>"
	}

	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// NamespacePath is an ordered sequence of namespace segment names.
// Two types with the same simple name are distinct entities when their
// paths differ.
type NamespacePath []string

// String returns the "A::B::C" form of the path.
func (p NamespacePath) String() string {
	return strings.Join(p, "::")
}

// Child returns a new path with one more segment appended.
// The receiver is not modified.
func (p NamespacePath) Child(segment string) NamespacePath {
	child := make(NamespacePath, 0, len(p)+1)
	child = append(child, p...)
	child = append(child, segment)

	return child
}

// Equal reports whether two paths have the same segments in the same order.
func (p NamespacePath) Equal(other NamespacePath) bool {
	if len(p) != len(other) {
		return false
	}

	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}

	return true
}

// QualifiedName uniquely identifies a type: namespace path plus simple name.
type QualifiedName struct {
	Namespace NamespacePath
	Name      string
}

// String returns the fully qualified "A::B::Name" form.
func (q QualifiedName) String() string {
	if len(q.Namespace) == 0 {
		return q.Name
	}

	return q.Namespace.String() + "::" + q.Name
}

// IsZero reports whether the qualified name is empty.
func (q QualifiedName) IsZero() bool {
	return q.Name == "" && len(q.Namespace) == 0
}

// ParseQualifiedName splits an "A::B::Name" reference into a QualifiedName.
func ParseQualifiedName(s string) QualifiedName {
	parts := strings.Split(s, "::")
	if len(parts) == 1 {
		return QualifiedName{Name: parts[0]}
	}

	return QualifiedName{
		Namespace: NamespacePath(parts[:len(parts)-1]),
		Name:      parts[len(parts)-1],
	}
}

// TypeRef describes a type as spelled in the source, plus the structural
// qualifiers the mappers care about.
type TypeRef struct {
	// Spelling is the source spelling with qualifiers stripped,
	// e.g. "std::string", "char*", "double".
	Spelling string
	// IsPointer is true for raw pointer types.
	IsPointer bool
	// IsReference is true for reference types.
	IsReference bool
	// IsConst is true for const-qualified types.
	IsConst bool
}

// IsZero reports whether the ref is empty (constructors and destructors
// have no return type).
func (t TypeRef) IsZero() bool {
	return t.Spelling == "" && !t.IsPointer && !t.IsReference
}

// Param is a single parameter of a constructor, method, or operator.
type Param struct {
	Name string
	Type TypeRef
}

// MemberDeclaration is the raw shape of one class member as produced by
// the front-end. It carries structural facts only; assigning a construct
// kind is the classify package's job.
type MemberDeclaration struct {
	// Name as written: a field or method name, "~Type" for a
	// destructor, "operator==" for an operator overload.
	Name string
	// ReturnType is zero for constructors, destructors, and fields.
	// For fields it is unused; see FieldType.
	ReturnType TypeRef
	// FieldType is set for data members.
	FieldType TypeRef
	// Params is the ordered parameter list (empty for fields).
	Params []Param
	// IsFieldDecl is true when the member is a data member.
	IsFieldDecl bool
	// OwnsResource is true when the field's value is acquired in a
	// constructor and released in the destructor of this type.
	OwnsResource bool
	// BorrowExposed is true when an owned field is also handed out by a
	// borrowing accessor, making ownership ambiguous.
	BorrowExposed bool
	// IsPureVirtual is true for "= 0" virtual methods.
	IsPureVirtual bool
	// IsVirtual is true for virtual methods and destructors.
	IsVirtual bool
	// IsOverride is true for methods marked override.
	IsOverride bool
	// IsDefaulted is true for "= default" members.
	IsDefaulted bool
	// IsStatic is true for static members.
	IsStatic bool
	// Access is the member's access level: "public", "protected", or
	// "private".
	Access string
	// HasBody is true when the member carries an inline body.
	HasBody bool
	// ComparedFields lists the field names an equality operator body
	// compares, in source order. Empty for other members.
	ComparedFields []string
	// AcquiredFields lists the fields a constructor body acquires
	// (assigns a fresh resource to), in acquisition order.
	AcquiredFields []string
	// ReleasedFields lists the fields a destructor body releases.
	ReleasedFields []string
	// Loc is the member's position in the input file.
	Loc Location
}

// TypeDeclaration is one class or struct declaration.
type TypeDeclaration struct {
	// Name is the fully qualified type name.
	Name QualifiedName
	// Bases are the declared base types, in declaration order, as
	// written (possibly unqualified; resolution happens in symtab).
	Bases []QualifiedName
	// Members is the ordered member list.
	Members []MemberDeclaration
	// IsAbstract is true when the type declares at least one pure
	// virtual method.
	IsAbstract bool
	// Loc is the declaration's position in the input file.
	Loc Location
}

// Fields returns the data members in declaration order.
func (t *TypeDeclaration) Fields() []MemberDeclaration {
	var fields []MemberDeclaration

	for _, m := range t.Members {
		if m.IsFieldDecl {
			fields = append(fields, m)
		}
	}

	return fields
}

// SourceUnit is the ordered sequence of type declarations parsed from
// one input artifact. Immutable once built.
type SourceUnit struct {
	// Path is the input file path, used in diagnostics.
	Path string
	// Types are the top-level type declarations in source order,
	// already carrying their full namespace paths.
	Types []*TypeDeclaration
}
