package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classbridge/internal/source"
)

func parseSource(t *testing.T, content string) *source.SourceUnit {
	t.Helper()

	parser, err := NewParser()
	require.NoError(t, err)
	defer parser.Close()

	unit, err := parser.Parse("test.cpp", []byte(content))
	require.NoError(t, err)

	return unit
}

func memberByName(t *testing.T, decl *source.TypeDeclaration, name string) source.MemberDeclaration {
	t.Helper()

	for _, m := range decl.Members {
		if m.Name == name {
			return m
		}
	}

	t.Fatalf("no member named %q in %s", name, decl.Name)

	return source.MemberDeclaration{}
}

func TestParse_ClassWithFieldsAndMethods(t *testing.T) {
	unit := parseSource(t, `
class Circle {
private:
    double radius;
    char* label;

public:
    Circle(double radius) {
        this->radius = radius;
    }

    double area() {
        return 3.14159 * radius * radius;
    }
};
`)

	require.Len(t, unit.Types, 1)
	decl := unit.Types[0]
	assert.Equal(t, "Circle", decl.Name.String())
	assert.False(t, decl.IsAbstract)

	radius := memberByName(t, decl, "radius")
	assert.True(t, radius.IsFieldDecl)
	assert.Equal(t, "double", radius.FieldType.Spelling)
	assert.False(t, radius.FieldType.IsPointer)
	assert.Equal(t, "private", radius.Access)

	label := memberByName(t, decl, "label")
	assert.True(t, label.FieldType.IsPointer)
	assert.Equal(t, "char", label.FieldType.Spelling)

	ctor := memberByName(t, decl, "Circle")
	assert.True(t, ctor.ReturnType.IsZero())
	assert.True(t, ctor.HasBody)
	assert.Equal(t, "public", ctor.Access)
	require.Len(t, ctor.Params, 1)
	assert.Equal(t, "radius", ctor.Params[0].Name)
	assert.Equal(t, "double", ctor.Params[0].Type.Spelling)

	area := memberByName(t, decl, "area")
	assert.Equal(t, "double", area.ReturnType.Spelling)
	assert.True(t, area.HasBody)
}

func TestParse_NamespacesNest(t *testing.T) {
	unit := parseSource(t, `
namespace Geometry {
namespace Shapes {

struct Point {
    int x;
    int y;
};

}
}
`)

	require.Len(t, unit.Types, 1)
	decl := unit.Types[0]
	assert.Equal(t, "Geometry::Shapes::Point", decl.Name.String())

	// Struct members default to public.
	assert.Equal(t, "public", memberByName(t, decl, "x").Access)
}

func TestParse_AbstractTypeAndInheritance(t *testing.T) {
	unit := parseSource(t, `
class Animal {
public:
    virtual void speak() = 0;
    virtual ~Animal() = default;
};

class Dog : public Animal {
public:
    void speak() override {
    }
};
`)

	require.Len(t, unit.Types, 2)

	animal := unit.Types[0]
	assert.True(t, animal.IsAbstract)

	speak := memberByName(t, animal, "speak")
	assert.True(t, speak.IsVirtual)
	assert.True(t, speak.IsPureVirtual)
	assert.False(t, speak.HasBody)

	dtor := memberByName(t, animal, "~Animal")
	assert.True(t, dtor.IsDefaulted)
	assert.True(t, dtor.IsVirtual)

	dog := unit.Types[1]
	require.Len(t, dog.Bases, 1)
	assert.Equal(t, "Animal", dog.Bases[0].Name)

	dogSpeak := memberByName(t, dog, "speak")
	assert.True(t, dogSpeak.IsOverride)
	assert.True(t, dogSpeak.HasBody)
	assert.False(t, dogSpeak.IsPureVirtual)
}

func TestParse_ResourceOwnership(t *testing.T) {
	unit := parseSource(t, `
class FileHandler {
private:
    char* filename;

public:
    FileHandler(const char* fname) {
        filename = new char[100];
    }

    ~FileHandler() {
        delete[] filename;
    }
};
`)

	require.Len(t, unit.Types, 1)
	decl := unit.Types[0]

	ctor := memberByName(t, decl, "FileHandler")
	assert.Equal(t, []string{"filename"}, ctor.AcquiredFields)

	dtor := memberByName(t, decl, "~FileHandler")
	assert.Equal(t, []string{"filename"}, dtor.ReleasedFields)

	filename := memberByName(t, decl, "filename")
	assert.True(t, filename.OwnsResource)
	assert.False(t, filename.BorrowExposed)
}

func TestParse_BorrowingAccessorMarksField(t *testing.T) {
	unit := parseSource(t, `
class Pool {
private:
    char* buffer;

public:
    Pool() {
        buffer = new char[1024];
    }

    ~Pool() {
        delete[] buffer;
    }

    char* data() {
        return buffer;
    }
};
`)

	require.Len(t, unit.Types, 1)
	buffer := memberByName(t, unit.Types[0], "buffer")
	assert.True(t, buffer.OwnsResource)
	assert.True(t, buffer.BorrowExposed)
}

func TestParse_EqualityComparedFields(t *testing.T) {
	unit := parseSource(t, `
class Vector2D {
private:
    double x;
    double y;

public:
    Vector2D(double x, double y) {
        this->x = x;
        this->y = y;
    }

    bool operator==(const Vector2D& other) const {
        return x == other.x && y == other.y;
    }
};
`)

	require.Len(t, unit.Types, 1)
	eq := memberByName(t, unit.Types[0], "operator==")
	assert.Equal(t, []string{"x", "y"}, eq.ComparedFields)
	require.Len(t, eq.Params, 1)
	assert.Equal(t, "other", eq.Params[0].Name)
	assert.True(t, eq.Params[0].Type.IsReference)
}

func TestParse_ForwardDeclarationIsSkipped(t *testing.T) {
	unit := parseSource(t, `
class Widget;

class Gadget {
public:
    int id;
};
`)

	require.Len(t, unit.Types, 1)
	assert.Equal(t, "Gadget", unit.Types[0].Name.Name)
}

func TestParse_StaticMember(t *testing.T) {
	unit := parseSource(t, `
class Counter {
public:
    static int total() {
        return 0;
    }
};
`)

	require.Len(t, unit.Types, 1)
	total := memberByName(t, unit.Types[0], "total")
	assert.True(t, total.IsStatic)
}

func TestParse_LocationsAreOneBased(t *testing.T) {
	unit := parseSource(t, `class A {
public:
    int x;
};
`)

	require.Len(t, unit.Types, 1)
	decl := unit.Types[0]
	assert.Equal(t, "test.cpp", decl.Loc.File)
	assert.Equal(t, uint32(1), decl.Loc.Line)

	x := memberByName(t, decl, "x")
	assert.Equal(t, uint32(3), x.Loc.Line)
}
