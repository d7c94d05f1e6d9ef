package typemap

import (
	"strings"

	"classbridge/internal/source"
)

// Mapped is the result of converting one C++ type reference.
type Mapped struct {
	// Java is the Java type spelling.
	Java string
	// Import is the required import ("" when none).
	Import string
	// Known is false when the type had no table entry and passed
	// through by name.
	Known bool
}

// primitives maps cleaned C++ scalar spellings to Java primitives.
var primitives = map[string]string{
	"int":                "int",
	"long":               "long",
	"short":              "short",
	"char":               "byte",
	"wchar_t":            "char",
	"bool":               "boolean",
	"float":              "float",
	"double":             "double",
	"void":               "void",
	"unsigned":           "int",
	"unsigned int":       "int",
	"unsigned long":      "long",
	"unsigned short":     "short",
	"unsigned char":      "byte",
	"signed char":        "byte",
	"long long":          "long",
	"unsigned long long": "long",
	"size_t":             "long",
	"int8_t":             "byte",
	"int16_t":            "short",
	"int32_t":            "int",
	"int64_t":            "long",
	"uint8_t":            "byte",
	"uint16_t":           "short",
	"uint32_t":           "int",
	"uint64_t":           "long",
}

// stdTypes maps C++ standard library types to Java equivalents.
var stdTypes = map[string]Mapped{
	"std::string":        {Java: "String", Known: true},
	"string":             {Java: "String", Known: true},
	"std::ostream":       {Java: "PrintStream", Import: "java.io.PrintStream", Known: true},
	"std::istream":       {Java: "InputStream", Import: "java.io.InputStream", Known: true},
	"std::optional":      {Java: "Optional", Import: "java.util.Optional", Known: true},
	"std::vector":        {Java: "List", Import: "java.util.List", Known: true},
	"std::map":           {Java: "Map", Import: "java.util.Map", Known: true},
	"std::unordered_map": {Java: "Map", Import: "java.util.Map", Known: true},
	"std::set":           {Java: "Set", Import: "java.util.Set", Known: true},
	"std::unordered_set": {Java: "Set", Import: "java.util.Set", Known: true},
}

// ToJava converts one source type reference to its Java spelling.
func ToJava(ref source.TypeRef) Mapped {
	spelling := Clean(ref.Spelling)

	// char* is textual data, not a byte array, matching the common
	// C-string idiom.
	if ref.IsPointer && (spelling == "char" || spelling == "const char") {
		return Mapped{Java: "String", Known: true}
	}

	if base, args, ok := splitTemplate(spelling); ok {
		return mapTemplate(base, args)
	}

	if m, ok := stdTypes[spelling]; ok {
		if ref.IsPointer {
			return Mapped{Java: m.Java + "[]", Import: m.Import, Known: true}
		}

		return m
	}

	if prim, ok := primitives[spelling]; ok {
		if ref.IsPointer {
			return Mapped{Java: prim + "[]", Known: true}
		}

		return Mapped{Java: prim, Known: true}
	}

	// User-defined type: pass the simple name through. References
	// erase to plain values; pointers become arrays.
	java := simpleName(spelling)
	if ref.IsPointer {
		java += "[]"
	}

	return Mapped{Java: java}
}

// mapTemplate converts a template instantiation such as
// std::vector<int> to its generic Java counterpart.
func mapTemplate(base string, args []string) Mapped {
	container, ok := stdTypes[base]
	if !ok {
		return Mapped{Java: simpleName(base)}
	}

	javaArgs := make([]string, len(args))

	for i, a := range args {
		arg := ToJava(source.TypeRef{Spelling: a})
		javaArgs[i] = boxed(arg.Java)
	}

	return Mapped{
		Java:   container.Java + "<" + strings.Join(javaArgs, ", ") + ">",
		Import: container.Import,
		Known:  true,
	}
}

// boxed returns the boxed wrapper for Java primitives used as generic
// type arguments.
func boxed(java string) string {
	switch java {
	case "int":
		return "Integer"
	case "long":
		return "Long"
	case "short":
		return "Short"
	case "byte":
		return "Byte"
	case "char":
		return "Character"
	case "boolean":
		return "Boolean"
	case "float":
		return "Float"
	case "double":
		return "Double"
	default:
		return java
	}
}

// IsNumeric reports whether the mapped Java type supports arithmetic
// operators, which gates arithmetic operator desugaring.
func IsNumeric(java string) bool {
	switch java {
	case "int", "long", "short", "byte", "float", "double":
		return true
	default:
		return false
	}
}

// Clean strips cv-qualifiers and elaborated-type keywords from a
// spelling.
func Clean(spelling string) string {
	s := spelling
	for _, kw := range []string{"const ", "volatile ", "mutable ", "struct ", "class "} {
		s = strings.ReplaceAll(s, kw, "")
	}

	s = strings.TrimSuffix(strings.TrimSpace(s), "&")

	return strings.TrimSpace(s)
}

// splitTemplate splits "std::vector<int>" into base "std::vector" and
// its comma-separated top-level arguments.
func splitTemplate(spelling string) (string, []string, bool) {
	open := strings.IndexByte(spelling, '<')
	if open < 0 || !strings.HasSuffix(spelling, ">") {
		return "", nil, false
	}

	base := strings.TrimSpace(spelling[:open])
	inner := spelling[open+1 : len(spelling)-1]

	var args []string

	depth := 0
	start := 0

	for i := range len(inner) {
		switch inner[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}

	args = append(args, strings.TrimSpace(inner[start:]))

	return base, args, true
}

// simpleName returns the last segment of a qualified spelling,
// e.g. "Geometry::Vector2D" -> "Vector2D".
func simpleName(spelling string) string {
	if idx := strings.LastIndex(spelling, "::"); idx >= 0 {
		return spelling[idx+2:]
	}

	return spelling
}
