// pkg/bindgen/render.go
package bindgen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"

	"github.com/arc-language/opusbind/pkg/env"
)

// DependPrefix marks the rebuild-trigger lines at the top of generated files
const DependPrefix = "//opusbind:depend "

// unit is everything render needs for one artifact
type unit struct {
	Package string
	Source  string // header name for the "Code generated" line
	Include string // what goes between the quotes of #include
	SrcDir  bool   // add -I${SRCDIR} for a header next to the output
	Flags   env.CompilerFlags
	Depends []string
	Decls   *Declarations
}

// render emits gofmt-formatted Go source for u. Macro kinds must already be
// resolved. Output depends only on u, so equal inputs give equal bytes.
func render(u unit) ([]byte, []string, error) {
	var body bytes.Buffer
	var skipped []string
	needUnsafe := false

	skip := func(name, why string) {
		skipped = append(skipped, name)
		fmt.Fprintf(&body, "// skipped: %s (%s)\n", name, why)
	}
	doc := func(text string) {
		for _, line := range strings.Split(text, "\n") {
			if line != "" {
				fmt.Fprintf(&body, "// %s\n", line)
			}
		}
	}

	d := u.Decls

	for _, t := range d.Typedefs {
		if !goSafeName(t.Name) {
			skip(t.Name, "name is reserved in Go")
			continue
		}
		if why, ok := typedefSupported(t.Type); !ok {
			skip(t.Name, why)
			continue
		}
		doc(t.Doc)
		fmt.Fprintf(&body, "type %s = C.%s\n\n", t.Name, t.Name)
	}

	for _, r := range d.Records {
		doc(r.Doc)
		fmt.Fprintf(&body, "type %s_%s = C.%s_%s\n\n", r.Tag, r.Name, r.Tag, r.Name)
	}

	for _, e := range d.Enums {
		if e.Name != "" {
			doc(e.Doc)
			fmt.Fprintf(&body, "type enum_%s = C.enum_%s\n\n", e.Name, e.Name)
		}
		if len(e.Constants) == 0 {
			continue
		}
		kind := enumKind(e)
		body.WriteString("const (\n")
		for _, c := range e.Constants {
			if !goSafeName(c.Name) {
				skip(c.Name, "name is reserved in Go")
				continue
			}
			fmt.Fprintf(&body, "\t%s %s = %d\n", c.Name, kind, c.Value)
		}
		body.WriteString(")\n\n")
	}

	if len(d.Macros) > 0 {
		body.WriteString("const (\n")
		for _, m := range d.Macros {
			if !goSafeName(m.Name) {
				skip(m.Name, "name is reserved in Go")
				continue
			}
			if m.Kind == KindDefault {
				return nil, nil, fmt.Errorf("macro %s has no resolved type", m.Name)
			}
			fmt.Fprintf(&body, "\t%s %s = %s\n", m.Name, m.Kind, m.ValueString())
		}
		body.WriteString(")\n\n")
	}

	for _, f := range d.Functions {
		src, unsafeUsed, err := renderFunction(f)
		if err != nil {
			skip(f.Name, err.Error())
			continue
		}
		needUnsafe = needUnsafe || unsafeUsed
		doc(f.Doc)
		body.WriteString(src)
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "// Code generated by opusbind from %s. DO NOT EDIT.\n\n", u.Source)
	for _, dep := range u.Depends {
		out.WriteString(DependPrefix + dep + "\n")
	}
	if len(u.Depends) > 0 {
		out.WriteString("\n")
	}
	fmt.Fprintf(&out, "package %s\n\n", u.Package)
	out.WriteString(preamble(u))
	out.WriteString("import \"C\"\n\n")
	if needUnsafe {
		out.WriteString("import \"unsafe\"\n\n")
	}
	out.Write(body.Bytes())

	src, err := format.Source(out.Bytes())
	if err != nil {
		return nil, nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return src, skipped, nil
}

// preamble is the cgo comment directly above import "C"
func preamble(u unit) string {
	var b strings.Builder
	b.WriteString("/*\n")

	var cflags []string
	if u.SrcDir {
		cflags = append(cflags, "-I${SRCDIR}")
	}
	cflags = append(cflags, u.Flags.IncludeFlags...)
	if len(cflags) > 0 {
		b.WriteString("#cgo CFLAGS: " + joinFlags(cflags) + "\n")
	}

	ldflags := append(append([]string{}, u.Flags.LibraryFlags...), u.Flags.LinkFlags...)
	if len(ldflags) > 0 {
		b.WriteString("#cgo LDFLAGS: " + joinFlags(ldflags) + "\n")
	}
	if len(u.Flags.PkgConfig) > 0 {
		b.WriteString("#cgo pkg-config: " + strings.Join(u.Flags.PkgConfig, " ") + "\n")
	}

	fmt.Fprintf(&b, "#include %q\n", u.Include)
	b.WriteString("*/\n")
	return b.String()
}

// joinFlags quotes flags containing spaces the way #cgo lines expect
func joinFlags(flags []string) string {
	quoted := make([]string, len(flags))
	for i, f := range flags {
		if strings.ContainsAny(f, " \t'") {
			quoted[i] = `"` + f + `"`
		} else {
			quoted[i] = f
		}
	}
	return strings.Join(quoted, " ")
}

func renderFunction(f Function) (string, bool, error) {
	if !goSafeName(f.Name) {
		return "", false, fmt.Errorf("name is reserved in Go")
	}
	if f.Variadic {
		return "", false, fmt.Errorf("variadic functions cannot be called from Go")
	}

	result, err := cgoType(f.Result)
	if err != nil {
		return "", false, err
	}
	unsafeUsed := usesUnsafe(result)

	used := make(map[string]bool)
	params := make([]string, 0, len(f.Params))
	args := make([]string, 0, len(f.Params))
	for i, p := range f.Params {
		typ, err := cgoType(p.Type)
		if err != nil {
			return "", false, err
		}
		if typ == "" {
			return "", false, fmt.Errorf("parameter %d is void", i)
		}
		unsafeUsed = unsafeUsed || usesUnsafe(typ)
		name := paramName(p.Name, i, used)
		params = append(params, name+" "+typ)
		args = append(args, name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "func %s(%s)", f.Name, strings.Join(params, ", "))
	if result != "" {
		fmt.Fprintf(&b, " %s {\n\treturn C.%s(%s)\n}\n\n", result, f.Name, strings.Join(args, ", "))
	} else {
		fmt.Fprintf(&b, " {\n\tC.%s(%s)\n}\n\n", f.Name, strings.Join(args, ", "))
	}
	return b.String(), unsafeUsed, nil
}

// typedefSupported reports whether cgo can alias a typedef of this type
func typedefSupported(qual string) (string, bool) {
	switch {
	case strings.Contains(qual, "long double"):
		return "long double has no Go equivalent", false
	case strings.Contains(qual, "__int128"), strings.Contains(qual, "_Complex"):
		return "unsupported arithmetic type", false
	case strings.Contains(qual, "va_list"):
		return "va_list cannot cross cgo", false
	case strings.Contains(qual, "(") && !strings.Contains(qual, "(*") &&
		!strings.Contains(qual, "(unnamed") && !strings.Contains(qual, "(anonymous"):
		return "function types cannot be aliased", false
	}
	return "", true
}
