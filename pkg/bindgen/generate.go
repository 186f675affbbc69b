// pkg/bindgen/generate.go
package bindgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arc-language/opusbind/pkg/core"
	"github.com/arc-language/opusbind/pkg/directive"
	"github.com/arc-language/opusbind/pkg/env"
)

// Generator turns an umbrella header into a Go declaration file
type Generator struct {
	Parser     Parser
	MacroRules []MacroRule // DefaultMacroRules when nil
	Logger     zerolog.Logger
}

// Job describes one artifact
type Job struct {
	Header           string   // umbrella header
	IncludePaths     []string // include dirs from the locator
	Output           string   // path of the generated .go file
	Package          string   // Go package clause of the artifact
	Flags            env.CompilerFlags
	ClangArgs        []string // extra front end flags, e.g. -D defines
	GenerateComments bool
}

// Output describes a written artifact
type Output struct {
	Path       string
	Directives []directive.Directive // rebuild triggers
	Skipped    []string              // declarations cgo cannot express
	Decls      *Declarations
}

// Triggers are the rerun-if-changed directives for the job's inputs
func (j Job) Triggers() []directive.Directive {
	ds := []directive.Directive{directive.Rerun(j.Header)}
	for _, dir := range j.IncludePaths {
		ds = append(ds, directive.Rerun(dir))
	}
	return ds
}

// NewGenerator creates a generator with the default macro rules
func NewGenerator(parser Parser, logger zerolog.Logger) *Generator {
	return &Generator{Parser: parser, MacroRules: DefaultMacroRules, Logger: logger}
}

// Generate parses the header closure and writes the artifact. Nothing is
// left at job.Output if any step fails.
func (g *Generator) Generate(ctx context.Context, job Job) (*Output, error) {
	if g.Parser == nil {
		return nil, fmt.Errorf("generator has no parser")
	}
	if job.Package == "" {
		return nil, fmt.Errorf("package name is required")
	}

	header, err := filepath.Abs(job.Header)
	if err != nil {
		return nil, &core.Error{Kind: core.KindFilesystem, Op: "resolve header", Err: err}
	}
	if _, err := os.Stat(header); err != nil {
		return nil, &core.Error{
			Kind: core.KindFilesystem,
			Op:   "read header",
			Hint: "create the umbrella header or point the header setting at it",
			Err:  err,
		}
	}
	output, err := filepath.Abs(job.Output)
	if err != nil {
		return nil, &core.Error{Kind: core.KindFilesystem, Op: "resolve output", Err: err}
	}

	g.Logger.Debug().Str("header", header).Strs("include", job.IncludePaths).Msg("parsing header")

	decls, err := g.Parser.Parse(ctx, Request{
		Header:       header,
		IncludePaths: job.IncludePaths,
		KeepComments: job.GenerateComments,
		ExtraArgs:    job.ClangArgs,
	})
	if err != nil {
		return nil, &core.Error{Kind: core.KindParse, Op: "parse " + filepath.Base(header), Err: err}
	}
	if decls.Empty() {
		return nil, &core.Error{
			Kind: core.KindGenerate,
			Op:   "generate",
			Hint: "check that the header includes the library headers and the include paths are correct",
			Err:  fmt.Errorf("%w: %s", core.ErrNoDeclarations, job.Header),
		}
	}

	rules := g.MacroRules
	if rules == nil {
		rules = DefaultMacroRules
	}
	macros, err := ResolveMacroKinds(decls.Macros, rules)
	if err != nil {
		return nil, &core.Error{Kind: core.KindGenerate, Op: "resolve macros", Err: err}
	}
	decls.Macros = macros

	outDir := filepath.Dir(output)
	u := unit{
		Package: job.Package,
		Source:  filepath.Base(header),
		Flags:   job.Flags,
		Decls:   decls,
	}
	if filepath.Dir(header) == outDir {
		u.Include = filepath.Base(header)
		u.SrcDir = true
	} else {
		u.Include = header
	}

	u.Depends = append(u.Depends, dependPath(outDir, header))
	for _, dir := range job.IncludePaths {
		u.Depends = append(u.Depends, dependPath(outDir, dir))
	}

	src, skipped, err := render(u)
	if err != nil {
		return nil, &core.Error{Kind: core.KindGenerate, Op: "render", Err: err}
	}
	for _, name := range skipped {
		g.Logger.Debug().Str("decl", name).Msg("skipped declaration")
	}

	if err := writeAtomic(output, src); err != nil {
		return nil, &core.Error{Kind: core.KindFilesystem, Op: "write " + filepath.Base(output), Err: err}
	}

	g.Logger.Info().
		Str("output", output).
		Int("functions", len(decls.Functions)).
		Int("macros", len(decls.Macros)).
		Int("skipped", len(skipped)).
		Msg("wrote bindings")

	return &Output{Path: output, Directives: job.Triggers(), Skipped: skipped, Decls: decls}, nil
}

// dependPath records p relative to the artifact when it lives beneath it,
// so artifacts stay identical across checkouts
func dependPath(outDir, p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	rel, err := filepath.Rel(outDir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
