// Package mapper is the semantic mapping engine: it turns classified
// C++ type declarations into Java-shaped target declarations plus one
// mapping result per construct.
//
// Three mappers share the work per type:
//   - lifecycle: constructor/destructor pairs over owned resources
//     become an idempotent close() plus AutoCloseable
//   - dispatch: virtual methods and inheritance edges become
//     interfaces, abstract classes, and override-checked subclasses
//   - operator: operator overloads desugar to named methods with their
//     contract companions (equals brings hashCode, comparisons bring
//     Comparable)
//
// The engine maps distinct types in parallel over the frozen symbol
// table; nothing beyond read-only lookups crosses type boundaries, and
// a failed type never aborts its siblings.
package mapper
