// Package frontend parses C++ source into the source model using the
// tree-sitter C++ grammar.
//
// Only declaration structure is extracted: namespaces, classes and
// structs, bases, members, and the small set of body facts the mappers
// need (resource acquisition and release, compared fields, borrowing
// accessors). Statement-level translation is out of scope.
//
// Preprocessor directives and templates are skipped; the comment-free
// declaration stream is what the mapping engine consumes.
package frontend
