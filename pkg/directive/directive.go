// pkg/directive/directive.go

// Package directive models the build-system side channel: rebuild triggers,
// link instructions and include announcements emitted alongside the
// generated bindings.
package directive

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prefix starts every directive line on the side stream
const Prefix = "opusbind:"

// Kind identifies a directive
type Kind string

const (
	RerunIfChanged Kind = "rerun-if-changed"
	LinkLib        Kind = "link-lib"
	LinkSearch     Kind = "link-search"
	Include        Kind = "include"
	Info           Kind = "info"
	PkgConfig      Kind = "pkg-config"
)

// Directive is a single side-channel instruction
type Directive struct {
	Kind  Kind
	Value string
}

// String renders the directive as "opusbind:<kind>=<value>"
func (d Directive) String() string {
	return Prefix + string(d.Kind) + "=" + d.Value
}

// LinkStatic asks the linker to link lib statically
func LinkStatic(lib string) Directive {
	return Directive{Kind: LinkLib, Value: "static=" + lib}
}

// Rerun marks path as an input of the generation step
func Rerun(path string) Directive {
	return Directive{Kind: RerunIfChanged, Value: path}
}

// Parse reads a directive back from its line form
func Parse(line string) (Directive, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, Prefix) {
		return Directive{}, false
	}
	kind, value, ok := strings.Cut(strings.TrimPrefix(line, Prefix), "=")
	if !ok || kind == "" {
		return Directive{}, false
	}
	return Directive{Kind: Kind(kind), Value: value}, true
}

// Filter returns the directives of the given kind, in order
func Filter(ds []Directive, kind Kind) []Directive {
	var out []Directive
	for _, d := range ds {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Emitter writes directives to the side stream
type Emitter struct {
	w *bufio.Writer
}

// NewEmitter creates an emitter writing to w
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: bufio.NewWriter(w)}
}

// Emit writes each directive on its own line and flushes
func (e *Emitter) Emit(ds ...Directive) error {
	for _, d := range ds {
		if _, err := fmt.Fprintln(e.w, d.String()); err != nil {
			return fmt.Errorf("writing directive: %w", err)
		}
	}
	return e.w.Flush()
}
