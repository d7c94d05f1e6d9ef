// Package symtab builds the global symbol table: one registry of all
// type declarations across all source units plus their resolved,
// cycle-checked inheritance edges.
//
// Build is strictly sequential and runs to completion before any
// mapping starts. The returned Table is frozen: it is read-only and
// safe to share across mapping workers without synchronization.
//
// An inheritance cycle poisons the whole graph and aborts the run; an
// unresolvable base reference only drops the offending edge and leaves
// a diagnostic behind.
package symtab
