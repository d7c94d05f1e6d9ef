// Package source defines the abstract syntax model consumed by the
// mapping engine.
//
// The model is language-shaped but parser-agnostic: the bundled
// tree-sitter front-end produces it, and any other front-end can as
// long as it fills the same structures.
//
// Key types:
//   - SourceUnit: ordered top-level type declarations from one input file
//   - QualifiedName: namespace path + simple name, the identity of a type
//   - TypeDeclaration: one class/struct with bases and members
//   - MemberDeclaration: raw member shape, classified later by the
//     classify package
//
// All values are immutable once a SourceUnit is built.
package source
