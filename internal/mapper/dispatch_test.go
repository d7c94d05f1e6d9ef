package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classbridge/internal/source"
	"classbridge/internal/target"
)

// animal is a pure-virtual type with a defaulted virtual destructor,
// the canonical interface shape.
func animal() *source.TypeDeclaration {
	return &source.TypeDeclaration{
		Name:       source.QualifiedName{Name: "Animal"},
		IsAbstract: true,
		Members: []source.MemberDeclaration{
			{
				Name:          "speak",
				ReturnType:    source.TypeRef{Spelling: "void"},
				IsVirtual:     true,
				IsPureVirtual: true,
				Access:        "public",
			},
			{Name: "~Animal", IsVirtual: true, IsDefaulted: true, HasBody: true, Access: "public"},
		},
	}
}

func dog() *source.TypeDeclaration {
	return &source.TypeDeclaration{
		Name:  source.QualifiedName{Name: "Dog"},
		Bases: []source.QualifiedName{{Name: "Animal"}},
		Members: []source.MemberDeclaration{
			{
				Name:       "speak",
				ReturnType: source.TypeRef{Spelling: "void"},
				IsVirtual:  true,
				IsOverride: true,
				HasBody:    true,
				Access:     "public",
			},
		},
	}
}

func TestMapType_PureVirtualTypeBecomesInterface(t *testing.T) {
	decl := animal()
	table := buildTable(t, decl)

	out := mapType(table, decl)

	require.NotNil(t, out.Decl)
	assert.Equal(t, target.KindInterface, out.Decl.Kind)

	speak := memberNamed(t, out.Decl, "speak")
	assert.Equal(t, target.MemberAbstractMethod, speak.Kind)
	assert.Empty(t, speak.Modifiers, "interface methods carry no modifiers")

	// The defaulted destructor is trivial: fully mapped, no caveats.
	assert.Empty(t, out.Diags.All())
	assert.Equal(t, OutcomeMapped, resultFor(t, out.Results, "Animal::~Animal").Outcome)
	assert.Equal(t, OutcomeMapped, resultFor(t, out.Results, "Animal").Outcome)
}

func TestMapType_OverridingSubtypeImplementsInterface(t *testing.T) {
	base := animal()
	derived := dog()
	table := buildTable(t, base, derived)

	out := mapType(table, derived)

	require.NotNil(t, out.Decl)
	assert.Equal(t, target.KindConcreteClass, out.Decl.Kind)
	assert.Empty(t, out.Decl.Extends)
	assert.Equal(t, []string{"Animal"}, out.Decl.Implements)

	speak := memberNamed(t, out.Decl, "speak")
	assert.Equal(t, []string{"@Override"}, speak.Annotations)

	assert.Empty(t, out.Diags.All())
}

func TestMapType_MissingOverrideIsUnmappable(t *testing.T) {
	base := animal()
	mute := &source.TypeDeclaration{
		Name:  source.QualifiedName{Name: "Statue"},
		Bases: []source.QualifiedName{{Name: "Animal"}},
		Members: []source.MemberDeclaration{
			field("weight", "double"),
		},
	}
	table := buildTable(t, base, mute)

	out := mapType(table, mute)

	assert.Nil(t, out.Decl)

	typeResult := resultFor(t, out.Results, "Statue")
	assert.Equal(t, OutcomeUnmappable, typeResult.Outcome)
	assert.Contains(t, typeResult.Reason, "speak")

	require.Len(t, out.Diags.Errors, 1)
	assert.Equal(t, "incomplete_override", out.Diags.Errors[0].Code)
}

func TestMapType_OverrideSatisfiedThroughIntermediateBase(t *testing.T) {
	base := animal()

	retriever := &source.TypeDeclaration{
		Name:  source.QualifiedName{Name: "Retriever"},
		Bases: []source.QualifiedName{{Name: "Dog"}},
		Members: []source.MemberDeclaration{
			{
				Name:       "fetch",
				ReturnType: source.TypeRef{Spelling: "void"},
				HasBody:    true,
				Access:     "public",
			},
		},
	}
	table := buildTable(t, base, dog(), retriever)

	out := mapType(table, retriever)

	require.NotNil(t, out.Decl)
	assert.Equal(t, target.KindConcreteClass, out.Decl.Kind)
	assert.Equal(t, "Dog", out.Decl.Extends)
	assert.False(t, out.Diags.HasErrors(), "Dog already provides speak; Retriever owes nothing")
}

func TestMapType_MultipleImplementationBasesAreUnmappable(t *testing.T) {
	mk := func(name string) *source.TypeDeclaration {
		return &source.TypeDeclaration{
			Name: source.QualifiedName{Name: name},
			Members: []source.MemberDeclaration{
				{Name: "run", ReturnType: source.TypeRef{Spelling: "void"}, HasBody: true, Access: "public"},
			},
		}
	}

	diamond := &source.TypeDeclaration{
		Name:  source.QualifiedName{Name: "Hybrid"},
		Bases: []source.QualifiedName{{Name: "Engine"}, {Name: "Chassis"}},
		Members: []source.MemberDeclaration{
			field("id", "int"),
		},
	}
	table := buildTable(t, mk("Engine"), mk("Chassis"), diamond)

	out := mapType(table, diamond)

	assert.Nil(t, out.Decl)

	typeResult := resultFor(t, out.Results, "Hybrid")
	assert.Equal(t, OutcomeUnmappable, typeResult.Outcome)
	assert.Contains(t, typeResult.Reason, "Engine")
	assert.Contains(t, typeResult.Reason, "Chassis")
	assert.Contains(t, typeResult.Reason, "resolve by hand")

	require.Len(t, out.Diags.Errors, 1)
	assert.Equal(t, "multiple_implementation_inheritance", out.Diags.Errors[0].Code)
}

func TestMapType_ClassBasePlusInterfacesKeepsBaseOrder(t *testing.T) {
	base := animal()
	walker := &source.TypeDeclaration{
		Name:       source.QualifiedName{Name: "Walker"},
		IsAbstract: true,
		Members: []source.MemberDeclaration{
			{
				Name:          "walk",
				ReturnType:    source.TypeRef{Spelling: "void"},
				IsVirtual:     true,
				IsPureVirtual: true,
				Access:        "public",
			},
		},
	}

	robot := &source.TypeDeclaration{
		Name:  source.QualifiedName{Name: "RobotDog"},
		Bases: []source.QualifiedName{{Name: "Dog"}, {Name: "Walker"}},
		Members: []source.MemberDeclaration{
			{
				Name:       "walk",
				ReturnType: source.TypeRef{Spelling: "void"},
				IsOverride: true,
				HasBody:    true,
				Access:     "public",
			},
		},
	}
	table := buildTable(t, base, dog(), walker, robot)

	out := mapType(table, robot)

	require.NotNil(t, out.Decl)
	assert.Equal(t, "Dog", out.Decl.Extends)
	assert.Equal(t, []string{"Walker"}, out.Decl.Implements)
	assert.False(t, out.Diags.HasErrors())
}

func TestMapType_AbstractClassKeepsAbstractModifiers(t *testing.T) {
	decl := &source.TypeDeclaration{
		Name:       source.QualifiedName{Name: "Shape"},
		IsAbstract: true,
		Members: []source.MemberDeclaration{
			field("name", "std::string"),
			{
				Name:          "area",
				ReturnType:    source.TypeRef{Spelling: "double"},
				IsVirtual:     true,
				IsPureVirtual: true,
				Access:        "public",
			},
			{
				Name:       "describe",
				ReturnType: source.TypeRef{Spelling: "void"},
				HasBody:    true,
				Access:     "public",
			},
		},
	}
	table := buildTable(t, decl)

	out := mapType(table, decl)

	require.NotNil(t, out.Decl)
	assert.Equal(t, target.KindAbstractClass, out.Decl.Kind)

	area := memberNamed(t, out.Decl, "area")
	assert.Equal(t, target.MemberAbstractMethod, area.Kind)
	assert.Equal(t, []string{"public", "abstract"}, area.Modifiers)
}

func TestMapType_CrossNamespaceBaseIsImported(t *testing.T) {
	base := &source.TypeDeclaration{
		Name: source.QualifiedName{Namespace: []string{"Core"}, Name: "Entity"},
		Members: []source.MemberDeclaration{
			{Name: "id", IsFieldDecl: true, FieldType: source.TypeRef{Spelling: "long"}, Access: "private"},
		},
	}
	derived := &source.TypeDeclaration{
		Name:  source.QualifiedName{Namespace: []string{"App"}, Name: "User"},
		Bases: []source.QualifiedName{{Namespace: []string{"Core"}, Name: "Entity"}},
		Members: []source.MemberDeclaration{
			field("name", "std::string"),
		},
	}
	table := buildTable(t, base, derived)

	out := mapType(table, derived)

	require.NotNil(t, out.Decl)
	assert.Equal(t, "Entity", out.Decl.Extends)
	assert.Contains(t, out.Decl.Imports, "core.Entity")
}
