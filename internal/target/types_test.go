package target

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"classbridge/internal/source"
)

func TestPackageName(t *testing.T) {
	tests := []struct {
		ns   source.NamespacePath
		want string
	}{
		{nil, ""},
		{source.NamespacePath{"Geometry"}, "geometry"},
		{source.NamespacePath{"Geometry", "Shapes"}, "geometry.shapes"},
		{source.NamespacePath{"Geo_Metry"}, "geometry"},
		{source.NamespacePath{"IOCore"}, "iocore"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PackageName(tt.ns), "namespace %v", tt.ns)

		d := Declaration{Name: source.QualifiedName{Namespace: tt.ns, Name: "T"}, SimpleName: "T"}
		assert.Equal(t, tt.want, d.PackageName(), "namespace %v", tt.ns)
	}
}

func TestQualifiedJavaNameUsesSimpleName(t *testing.T) {
	d := Declaration{
		Name:       source.QualifiedName{Namespace: source.NamespacePath{"NS"}, Name: "Thing"},
		SimpleName: "Thing_6a0a7f83",
	}

	assert.Equal(t, "ns.Thing_6a0a7f83", d.QualifiedJavaName())
}
