package emit

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"classbridge/internal/common"
	"classbridge/internal/target"
)

const indent = "    "

// javaFileTemplate lays out one compilation unit. Member blocks arrive
// fully indented.
const javaFileTemplate = `{{if .Package}}package {{.Package}};

{{end}}{{range .Imports}}import {{.}};
{{end}}{{if .Imports}}
{{end}}{{.Header}} {
{{range $i, $b := .MemberBlocks}}{{if $i}}
{{end}}{{$b}}
{{end}}}
`

// fileData is the template payload for one generated file.
type fileData struct {
	Package      string
	Imports      []string
	Header       string
	MemberBlocks []string
}

// GeneratedFile represents a generated Java source file.
type GeneratedFile struct {
	// Path is the file path relative to the output root, e.g.
	// "geometry/shapes/Circle.java".
	Path string
	// Content is the rendered Java source.
	Content []byte
}

// Emitter renders declarations produced by the mapping engine.
type Emitter struct {
	tmpl *template.Template
}

// New creates an Emitter.
func New() *Emitter {
	return &Emitter{
		tmpl: template.Must(template.New("java").Parse(javaFileTemplate)),
	}
}

// Emit renders every declaration to its own file.
func (e *Emitter) Emit(decls []target.Declaration) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, len(decls))

	for i := range decls {
		f, err := e.emitOne(&decls[i])
		if err != nil {
			return nil, fmt.Errorf("emitting %s: %w", decls[i].Name, err)
		}

		files = append(files, *f)
	}

	return files, nil
}

// emitOne renders a single declaration.
func (e *Emitter) emitOne(d *target.Declaration) (*GeneratedFile, error) {
	imports := common.Dedup(append([]string{}, d.Imports...))
	sort.Strings(imports)

	data := fileData{
		Package:      d.PackageName(),
		Imports:      imports,
		Header:       header(d),
		MemberBlocks: memberBlocks(d),
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}

	dir := strings.ReplaceAll(data.Package, ".", "/")

	return &GeneratedFile{
		Path:    filepath.Join(dir, d.SimpleName+".java"),
		Content: buf.Bytes(),
	}, nil
}

// header builds the type declaration line, e.g.
// "public class FileHandler implements AutoCloseable".
func header(d *target.Declaration) string {
	var b strings.Builder

	b.WriteString("public ")

	switch d.Kind {
	case target.KindInterface:
		b.WriteString("interface ")
	case target.KindAbstractClass:
		b.WriteString("abstract class ")
	default:
		b.WriteString("class ")
	}

	b.WriteString(d.SimpleName)

	implements := common.Dedup(append([]string{}, d.Implements...))

	if d.Kind == target.KindInterface {
		// Interfaces extend their superinterfaces.
		if len(implements) > 0 {
			b.WriteString(" extends " + strings.Join(implements, ", "))
		}

		return b.String()
	}

	if d.Extends != "" {
		b.WriteString(" extends " + d.Extends)
	}

	if len(implements) > 0 {
		b.WriteString(" implements " + strings.Join(implements, ", "))
	}

	return b.String()
}

// memberBlocks renders every member as an indented block, fields
// first, then constructors, then methods, preserving relative order
// within each group.
func memberBlocks(d *target.Declaration) []string {
	ordered := make([]target.Member, 0, len(d.Members))
	for _, rank := range []int{0, 1, 2} {
		for _, m := range d.Members {
			if memberRank(m) == rank {
				ordered = append(ordered, m)
			}
		}
	}

	blocks := make([]string, 0, len(ordered))
	for i := range ordered {
		blocks = append(blocks, renderMember(d, &ordered[i]))
	}

	return blocks
}

// memberRank orders fields before constructors before methods.
func memberRank(m target.Member) int {
	switch m.Kind {
	case target.MemberField:
		return 0
	case target.MemberConstructor:
		return 1
	default:
		return 2
	}
}

// renderMember renders one member with a single level of indentation.
func renderMember(d *target.Declaration, m *target.Member) string {
	var lines []string

	for _, a := range m.Annotations {
		lines = append(lines, indent+a)
	}

	switch m.Kind {
	case target.MemberField:
		lines = append(lines, indent+strings.Join(m.Modifiers, " ")+" "+m.Type+" "+m.Name+";")
	case target.MemberAbstractMethod:
		lines = append(lines, indent+abstractSignature(d, m)+";")
	default:
		lines = append(lines, indent+signature(m)+" {")
		for _, stmt := range m.Body {
			lines = append(lines, indent+indent+stmt)
		}

		lines = append(lines, indent+"}")
	}

	return strings.Join(lines, "\n")
}

// signature builds a constructor or method signature without the
// trailing brace.
func signature(m *target.Member) string {
	var b strings.Builder

	if len(m.Modifiers) > 0 {
		b.WriteString(strings.Join(m.Modifiers, " ") + " ")
	}

	if m.Kind == target.MemberMethod {
		b.WriteString(m.Type + " ")
	}

	b.WriteString(m.Name + "(" + paramList(m.Params) + ")")

	return b.String()
}

// abstractSignature renders an abstract method: bare in interfaces,
// modifier-qualified in abstract classes.
func abstractSignature(d *target.Declaration, m *target.Member) string {
	sig := m.Type + " " + m.Name + "(" + paramList(m.Params) + ")"

	if d.Kind == target.KindInterface || len(m.Modifiers) == 0 {
		return sig
	}

	return strings.Join(m.Modifiers, " ") + " " + sig
}

// paramList renders "Type name, Type name".
func paramList(params []target.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type + " " + p.Name
	}

	return strings.Join(parts, ", ")
}
