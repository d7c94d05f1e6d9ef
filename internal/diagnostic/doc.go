// Package diagnostic provides structured warnings, errors, and
// per-construct mapping notes for the converter.
//
// Severity follows the mapping outcome: best-effort translations
// produce warnings, unmappable constructs produce errors, and clean
// mappings produce no diagnostic at all.
//
// Key capabilities:
//   - Source-located messages with stable diagnostic codes
//   - "Did you mean" suggestions for unresolved type references
//   - One merged report per run, never fail-fast
package diagnostic
