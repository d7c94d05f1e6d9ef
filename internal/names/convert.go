package names

import (
	"strings"
	"unicode"
)

// Camel converts a snake_case or mixed identifier to camelCase, the
// Java method and field convention. Already-camelCase input passes
// through unchanged.
func Camel(s string) string {
	if s == "" {
		return s
	}

	if !strings.ContainsRune(s, '_') {
		// Lower the first rune only; "FooBar" -> "fooBar".
		r := []rune(s)
		r[0] = unicode.ToLower(r[0])

		return string(r)
	}

	parts := splitIdent(s)
	if len(parts) == 0 {
		return s
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(parts[0]))

	for _, p := range parts[1:] {
		b.WriteString(titleCase(p))
	}

	return b.String()
}

// Pascal converts an identifier to PascalCase, the Java class
// convention.
func Pascal(s string) string {
	parts := splitIdent(s)

	var b strings.Builder
	for _, p := range parts {
		b.WriteString(titleCase(p))
	}

	return b.String()
}

// Constant converts an identifier to SCREAMING_SNAKE_CASE, the Java
// constant convention.
func Constant(s string) string {
	parts := splitIdent(s)
	for i, p := range parts {
		parts[i] = strings.ToUpper(p)
	}

	return strings.Join(parts, "_")
}

// PackageSegment converts one namespace segment to a Java package
// segment: lower-cased with separators stripped.
func PackageSegment(s string) string {
	parts := splitIdent(s)

	return strings.ToLower(strings.Join(parts, ""))
}

// splitIdent splits an identifier on underscores and CamelCase
// boundaries, including acronym runs ("XMLParser" -> "XML", "Parser").
func splitIdent(s string) []string {
	var parts []string

	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if r == '_' || r == '-' || r == ' ' {
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && boundaryBefore(runes, i) {
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

// boundaryBefore reports whether a CamelCase token boundary sits just
// before position i.
func boundaryBefore(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]

	if unicode.IsUpper(r) && !unicode.IsUpper(prev) && prev != '_' {
		return true
	}

	// End of an acronym run: "XMLParser" splits before 'P'.
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return unicode.IsUpper(r) && unicode.IsUpper(prev) && hasNextLower
}

// titleCase upper-cases the first rune and lower-cases the rest.
func titleCase(s string) string {
	if s == "" {
		return s
	}

	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])

	return string(r)
}
