package emit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classbridge/internal/source"
	"classbridge/internal/target"
)

func TestEmit_ConcreteClass(t *testing.T) {
	decl := target.Declaration{
		Name:       source.QualifiedName{Namespace: []string{"Geometry"}, Name: "Circle"},
		SimpleName: "Circle",
		Kind:       target.KindConcreteClass,
		Implements: []string{"AutoCloseable"},
		Imports:    []string{"java.util.Objects", "java.util.Objects"},
		Members: []target.Member{
			{
				Kind:        target.MemberMethod,
				Name:        "close",
				Type:        "void",
				Modifiers:   []string{"public"},
				Annotations: []string{"@Override"},
				Body:        []string{"this.closed = true;"},
			},
			{
				Kind:      target.MemberField,
				Name:      "radius",
				Type:      "double",
				Modifiers: []string{"private"},
			},
			{
				Kind:      target.MemberConstructor,
				Name:      "Circle",
				Modifiers: []string{"public"},
				Params:    []target.Param{{Name: "radius", Type: "double"}},
				Body:      []string{"this.radius = radius;"},
			},
		},
	}

	files, err := New().Emit([]target.Declaration{decl})
	require.NoError(t, err)
	require.Len(t, files, 1)

	assert.Equal(t, filepath.Join("geometry", "Circle.java"), files[0].Path)

	content := string(files[0].Content)
	assert.Contains(t, content, "package geometry;")
	assert.Contains(t, content, "public class Circle implements AutoCloseable {")
	assert.Contains(t, content, "    private double radius;")
	assert.Contains(t, content, "    public Circle(double radius) {")
	assert.Contains(t, content, "        this.radius = radius;")
	assert.Contains(t, content, "    @Override")
	assert.Contains(t, content, "    public void close() {")

	// The duplicated import renders once.
	assert.Equal(t, 1, strings.Count(content, "import java.util.Objects;"))

	// Fields render before constructors before methods.
	assert.Less(t,
		strings.Index(content, "private double radius;"),
		strings.Index(content, "public Circle(double radius)"))
	assert.Less(t,
		strings.Index(content, "public Circle(double radius)"),
		strings.Index(content, "public void close()"))
}

func TestEmit_Interface(t *testing.T) {
	decl := target.Declaration{
		Name:       source.QualifiedName{Name: "Animal"},
		SimpleName: "Animal",
		Kind:       target.KindInterface,
		Members: []target.Member{
			{Kind: target.MemberAbstractMethod, Name: "speak", Type: "void"},
		},
	}

	files, err := New().Emit([]target.Declaration{decl})
	require.NoError(t, err)
	require.Len(t, files, 1)

	// Root namespace: no package line, file at the output root.
	assert.Equal(t, "Animal.java", files[0].Path)

	content := string(files[0].Content)
	assert.NotContains(t, content, "package ")
	assert.Contains(t, content, "public interface Animal {")
	assert.Contains(t, content, "    void speak();")
	assert.NotContains(t, content, "abstract void speak")
}

func TestEmit_InterfaceExtendsSuperinterfaces(t *testing.T) {
	decl := target.Declaration{
		Name:       source.QualifiedName{Name: "Pet"},
		SimpleName: "Pet",
		Kind:       target.KindInterface,
		Implements: []string{"Animal", "Comparable<Pet>"},
	}

	files, err := New().Emit([]target.Declaration{decl})
	require.NoError(t, err)

	content := string(files[0].Content)
	assert.Contains(t, content, "public interface Pet extends Animal, Comparable<Pet> {")
}

func TestEmit_AbstractClass(t *testing.T) {
	decl := target.Declaration{
		Name:       source.QualifiedName{Name: "Shape"},
		SimpleName: "Shape",
		Kind:       target.KindAbstractClass,
		Members: []target.Member{
			{
				Kind:      target.MemberAbstractMethod,
				Name:      "area",
				Type:      "double",
				Modifiers: []string{"public", "abstract"},
			},
		},
	}

	files, err := New().Emit([]target.Declaration{decl})
	require.NoError(t, err)

	content := string(files[0].Content)
	assert.Contains(t, content, "public abstract class Shape {")
	assert.Contains(t, content, "    public abstract double area();")
}

func TestEmit_ExtendsAndImplements(t *testing.T) {
	decl := target.Declaration{
		Name:       source.QualifiedName{Name: "Dog"},
		SimpleName: "Dog",
		Kind:       target.KindConcreteClass,
		Extends:    "Animal",
		Implements: []string{"Walker"},
	}

	files, err := New().Emit([]target.Declaration{decl})
	require.NoError(t, err)

	content := string(files[0].Content)
	assert.Contains(t, content, "public class Dog extends Animal implements Walker {")
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()

	files := []GeneratedFile{
		{Path: filepath.Join("geometry", "Circle.java"), Content: []byte("public class Circle {}\n")},
		{Path: "Animal.java", Content: []byte("public interface Animal {}\n")},
	}

	require.NoError(t, WriteFiles(files, dir))

	got, err := os.ReadFile(filepath.Join(dir, "geometry", "Circle.java"))
	require.NoError(t, err)
	assert.Equal(t, "public class Circle {}\n", string(got))

	got, err = os.ReadFile(filepath.Join(dir, "Animal.java"))
	require.NoError(t, err)
	assert.Equal(t, "public interface Animal {}\n", string(got))
}
