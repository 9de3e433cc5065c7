package driver

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"go/format"
	"text/template"

	"github.com/nihei9/ucdc/spec"
)

// GenTables renders a compiled table set as a Go source file declaring the
// tables as package-level data. order chooses the byte order of the flag
// words; the code points themselves are emitted as rune literals and are
// unaffected.
func GenTables(tables *spec.CompiledTables, pkgName string, order binary.ByteOrder) ([]byte, error) {
	err := tables.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid compiled tables: %w", err)
	}
	if pkgName == "" {
		return nil, fmt.Errorf("a package name is required")
	}

	data := &tablesTmplData{
		PackageName:    pkgName,
		UnicodeVersion: tables.UnicodeVersion,
		MaxCodePoints:  fmt.Sprintf("0x%06X", tables.MaxCodePoints),
	}
	for _, r := range tables.FlagRanges {
		data.FlagRanges = append(data.FlagRanges, [2]string{
			hexCodePoint(r.Start),
			fmt.Sprintf("0x%04X", r.Flags.Encode(order)),
		})
	}
	for _, cp := range tables.Whitespace {
		data.Whitespace = append(data.Whitespace, hexCodePoint(cp))
	}
	for _, m := range tables.Lowercase {
		data.Lowercase = append(data.Lowercase, [2]string{hexCodePoint(m.From), hexCodePoint(m.To)})
	}
	for _, m := range tables.Uppercase {
		data.Uppercase = append(data.Uppercase, [2]string{hexCodePoint(m.From), hexCodePoint(m.To)})
	}
	for _, r := range tables.NFDRanges {
		data.NFDRanges = append(data.NFDRanges, [3]string{hexCodePoint(r.First), hexCodePoint(r.Last), hexCodePoint(r.NFD)})
	}

	var b bytes.Buffer
	err = tablesTmpl.Execute(&b, data)
	if err != nil {
		return nil, err
	}
	src, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format the generated source: %w", err)
	}
	return src, nil
}

func hexCodePoint(cp rune) string {
	return fmt.Sprintf("0x%06X", cp)
}

type tablesTmplData struct {
	PackageName    string
	UnicodeVersion string
	MaxCodePoints  string
	FlagRanges     [][2]string
	Whitespace     []string
	Lowercase      [][2]string
	Uppercase      [][2]string
	NFDRanges      [][3]string
}

var tablesTmpl = template.Must(template.New("tables").Parse(`// Code generated by ucdc-go. DO NOT EDIT.

package {{ .PackageName }}

{{ if .UnicodeVersion -}}
// UnicodeVersion is the version of the Unicode database the tables were
// compiled from.
const UnicodeVersion = "{{ .UnicodeVersion }}"

{{ end -}}
const MaxCodePoints = {{ .MaxCodePoints }}

// FlagRanges holds one (start, flags) entry per maximal run of code points
// sharing a flag word. The next entry's start closes the run; the final
// entry is the zero-flag sentinel at MaxCodePoints.
var FlagRanges = [][2]uint32{
{{- range .FlagRanges }}
	{ {{ index . 0 }}, {{ index . 1 }} },
{{- end }}
}

// Whitespace lists the code points with the White_Space property.
var Whitespace = []rune{
{{- range .Whitespace }}
	{{ . }},
{{- end }}
}

// Lowercase maps code points to their lowercase forms. Self-mappings are
// omitted.
var Lowercase = [][2]rune{
{{- range .Lowercase }}
	{ {{ index . 0 }}, {{ index . 1 }} },
{{- end }}
}

// Uppercase maps code points to their uppercase forms. Self-mappings are
// omitted.
var Uppercase = [][2]rune{
{{- range .Uppercase }}
	{ {{ index . 0 }}, {{ index . 1 }} },
{{- end }}
}

// NFDRanges holds (first, last, nfd) runs: every code point in
// [first, last] has a full canonical decomposition starting with nfd.
var NFDRanges = [][3]rune{
{{- range .NFDRanges }}
	{ {{ index . 0 }}, {{ index . 1 }}, {{ index . 2 }} },
{{- end }}
}
`))
