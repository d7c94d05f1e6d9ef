package mapper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"classbridge/internal/source"
	"classbridge/internal/symtab"
	"classbridge/internal/target"
)

// buildTable registers the declarations as one source unit and fails
// the test on any structural error.
func buildTable(t *testing.T, decls ...*source.TypeDeclaration) *symtab.Table {
	t.Helper()

	table, diags, err := symtab.Build([]*source.SourceUnit{{Path: "test.cpp", Types: decls}})
	require.NoError(t, err)
	require.False(t, diags.HasErrors(), "unexpected symbol table errors: %v", diags.Errors)

	return table
}

// resultFor finds the result record for a construct by its qualified
// name.
func resultFor(t *testing.T, results []Result, construct string) Result {
	t.Helper()

	for _, r := range results {
		if r.Construct == construct {
			return r
		}
	}

	t.Fatalf("no result for construct %q", construct)

	return Result{}
}

// memberNamed finds a generated member by name.
func memberNamed(t *testing.T, decl *target.Declaration, name string) target.Member {
	t.Helper()

	for _, m := range decl.Members {
		if m.Name == name {
			return m
		}
	}

	t.Fatalf("no member named %q in %s", name, decl.SimpleName)

	return target.Member{}
}

// bodyText joins a member body for substring assertions.
func bodyText(m target.Member) string {
	return strings.Join(m.Body, "\n")
}

// field builds a plain data member.
func field(name, spelling string) source.MemberDeclaration {
	return source.MemberDeclaration{
		Name:        name,
		IsFieldDecl: true,
		FieldType:   source.TypeRef{Spelling: spelling},
		Access:      "private",
	}
}
