package mesh

import (
	"bytes"
	"go/format"
	"go/token"
	"io"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"github.com/pkg/errors"

	"github.com/lixenwraith/tiny3d/vmath"
)

const vmathImport = "github.com/lixenwraith/tiny3d/vmath"

var goTemplate = template.Must(template.New("mesh").Parse(`// Code generated by stl2go. DO NOT EDIT.
{{- if .Command }}
// {{ .Command }}
{{- end }}

package {{ .Package }}

import "{{ .Import }}"

const (
	{{ .Name }}NodeCount = {{ len .Mesh.Nodes }}
	{{ .Name }}FaceCount = {{ len .Mesh.Faces }}
)

var {{ .Name }}Nodes = [{{ .Name }}NodeCount]vmath.Vector3{
{{- range .Mesh.Nodes }}
	{X: {{ .X }}, Y: {{ .Y }}, Z: {{ .Z }}},
{{- end }}
}

var {{ .Name }}Faces = [{{ .Name }}FaceCount][3]int{
{{- range .Mesh.Faces }}
	{ {{- index . 0 }}, {{ index . 1 }}, {{ index . 2 -}} },
{{- end }}
}
{{ if .Normals }}
var {{ .Name }}Normals = [{{ .Name }}FaceCount]vmath.Vector3{
{{- range .Mesh.Normals }}
	{X: {{ .X }}, Y: {{ .Y }}, Z: {{ .Z }}},
{{- end }}
}
{{ end }}`))

// GoOptions configure WriteGo
type GoOptions struct {
	Package string
	// Name prefixes the generated identifiers, e.g. Cube yields CubeNodes
	Name    string
	Normals bool
	// Command is recorded in the header comment
	Command string
	// Import overrides the vmath import path
	Import string
}

// WriteGo emits m as gofmt'd Go source declaring node, face and, optionally, normal
// tables as vmath literals.
func WriteGo(w io.Writer, m *Mesh, opts GoOptions) error {
	if !token.IsIdentifier(opts.Package) {
		return errors.Errorf("invalid package name %q", opts.Package)
	}
	if !token.IsIdentifier(opts.Name) {
		return errors.Errorf("invalid identifier prefix %q", opts.Name)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid mesh")
	}
	if opts.Normals && m.Normals == nil {
		mm := *m
		mm.Normals = make([]vmath.Vector3, len(m.Faces))
		for i := range m.Faces {
			mm.Normals[i] = m.FaceNormal(i)
		}
		m = &mm
	}
	if opts.Import == "" {
		opts.Import = vmathImport
	}

	var src bytes.Buffer
	err := goTemplate.Execute(&src, struct {
		GoOptions
		Mesh *Mesh
	}{opts, m})
	if err != nil {
		return errors.Wrap(err, "execute template")
	}

	formatted, err := format.Source(src.Bytes())
	if err != nil {
		return errors.Wrap(err, "format generated source")
	}
	_, err = w.Write(formatted)
	return errors.Wrap(err, "write generated source")
}

// Identifier derives an exported Go identifier from a file name:
// "models/low-poly_cube.stl" becomes "LowPolyCube".
func Identifier(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var sb strings.Builder
	upper := true
	for _, r := range base {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}
	id := sb.String()
	if id == "" || unicode.IsDigit(rune(id[0])) {
		id = "Mesh" + id
	}
	return id
}
