// Package names converts C++ identifiers to Java naming conventions and
// ranks near-miss type names for diagnostics suggestions.
//
// Conversions:
//   - snake_case method and field names -> camelCase
//   - namespace segments -> lower-case package segments
//   - SCREAMING or const-ish names detected for constant emission
package names
