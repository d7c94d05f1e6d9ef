// Package typemap holds the C++ to Java type correspondence table.
//
// Pointer and array types map to Java arrays, char* maps to String,
// and standard containers map to their java.util equivalents. Types
// without an entry pass through by name so user-defined classes keep
// working; the mapper notes them at Info level.
package typemap
