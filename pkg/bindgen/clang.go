// pkg/bindgen/clang.go
package bindgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arc-language/opusbind/pkg/core"
	"github.com/arc-language/opusbind/pkg/platform"
)

// ClangParser parses headers with the clang front end: the JSON AST dump
// supplies declarations, -dM preprocessing supplies macros
type ClangParser struct {
	Bin    string // clang executable, "clang" when empty
	Run    platform.Runner
	Logger zerolog.Logger
}

// NewClangParser creates a parser using the given clang binary
func NewClangParser(bin string, logger zerolog.Logger) *ClangParser {
	return &ClangParser{Bin: bin, Logger: logger}
}

// Parse implements Parser
func (c *ClangParser) Parse(ctx context.Context, req Request) (*Declarations, error) {
	bin := c.Bin
	if bin == "" {
		bin = "clang"
	}
	run := c.Run
	if run == nil {
		run = platform.ExecRunner
	}

	args := []string{"-x", "c"}
	for _, dir := range req.IncludePaths {
		args = append(args, "-I"+dir)
	}
	args = append(args, req.ExtraArgs...)

	astArgs := append(append([]string{}, args...), "-fsyntax-only", "-Xclang", "-ast-dump=json")
	if req.KeepComments {
		astArgs = append(astArgs, "-fparse-all-comments")
	}
	astArgs = append(astArgs, req.Header)

	c.Logger.Debug().Str("bin", bin).Strs("args", astArgs).Msg("dumping AST")

	out, err := run(ctx, bin, astArgs...)
	if err != nil {
		return nil, c.wrap(bin, "dumping AST", err)
	}

	var root astNode
	if err := json.Unmarshal(out, &root); err != nil {
		return nil, fmt.Errorf("decoding AST: %w", err)
	}

	decls := &Declarations{}
	collect(&root, decls, req.KeepComments)

	macros, err := c.macros(ctx, bin, run, args, req.Header)
	if err != nil {
		return nil, err
	}
	decls.Macros = macros

	c.Logger.Debug().
		Int("functions", len(decls.Functions)).
		Int("records", len(decls.Records)).
		Int("enums", len(decls.Enums)).
		Int("typedefs", len(decls.Typedefs)).
		Int("macros", len(decls.Macros)).
		Msg("parsed header closure")

	return decls, nil
}

// macros returns the integer macros defined by the header closure.
// Compiler-predefined macros are found by preprocessing an empty file and
// are only used to evaluate header macros that refer to them.
func (c *ClangParser) macros(ctx context.Context, bin string, run platform.Runner, args []string, header string) ([]Macro, error) {
	out, err := run(ctx, bin, append(append([]string{}, args...), "-E", "-dM", header)...)
	if err != nil {
		return nil, c.wrap(bin, "preprocessing", err)
	}

	empty, err := os.CreateTemp("", "opusbind-empty-*.h")
	if err != nil {
		return nil, fmt.Errorf("creating empty header: %w", err)
	}
	empty.Close()
	defer os.Remove(empty.Name())

	base, err := run(ctx, bin, append(append([]string{}, args...), "-E", "-dM", empty.Name())...)
	if err != nil {
		return nil, c.wrap(bin, "preprocessing", err)
	}

	predefined := make(map[string]string)
	for _, d := range parseDefines(string(base)) {
		predefined[d.name] = d.body
	}

	table := parseDefines(string(out))
	emit := make(map[string]bool)
	for _, d := range table {
		if body, ok := predefined[d.name]; ok && body == d.body {
			continue
		}
		if reserved(d.name) {
			continue
		}
		emit[d.name] = true
	}

	return evaluateMacros(table, emit), nil
}

func (c *ClangParser) wrap(bin, op string, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return &core.Error{
			Kind: core.KindParse,
			Op:   op,
			Hint: fmt.Sprintf("install clang or point the clang setting at it (looked for %q)", bin),
			Err:  fmt.Errorf("%w: %v", core.ErrToolNotFound, err),
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

type astType struct {
	QualType          string `json:"qualType"`
	DesugaredQualType string `json:"desugaredQualType"`
}

type astNode struct {
	Kind                string    `json:"kind"`
	Name                string    `json:"name"`
	IsImplicit          bool      `json:"isImplicit"`
	TagUsed             string    `json:"tagUsed"`
	CompleteDefinition  bool      `json:"completeDefinition"`
	Variadic            bool      `json:"variadic"`
	Type                *astType  `json:"type"`
	FixedUnderlyingType *astType  `json:"fixedUnderlyingType"`
	Value               string    `json:"value"`
	Text                string    `json:"text"`
	Inner               []astNode `json:"inner"`
}

func (n *astNode) qualType() string {
	if n.Type == nil {
		return ""
	}
	return n.Type.QualType
}

// collect walks the translation unit's top-level declarations
func collect(root *astNode, d *Declarations, docs bool) {
	seen := make(map[string]bool)
	once := func(key string) bool {
		if seen[key] {
			return false
		}
		seen[key] = true
		return true
	}

	for i := range root.Inner {
		n := &root.Inner[i]
		if n.IsImplicit {
			continue
		}

		switch n.Kind {
		case "FunctionDecl":
			if n.Name == "" || reserved(n.Name) || !once("func "+n.Name) {
				continue
			}
			d.Functions = append(d.Functions, functionOf(n, docs))

		case "RecordDecl":
			if n.Name == "" || reserved(n.Name) {
				continue
			}
			key := n.TagUsed + " " + n.Name
			if n.CompleteDefinition {
				// a definition after a forward declaration upgrades it
				for j := range d.Records {
					if d.Records[j].Tag == n.TagUsed && d.Records[j].Name == n.Name {
						d.Records[j].Complete = true
					}
				}
			}
			if !once(key) {
				continue
			}
			d.Records = append(d.Records, Record{
				Tag:      n.TagUsed,
				Name:     n.Name,
				Complete: n.CompleteDefinition,
				Doc:      docOf(n, docs),
			})

		case "EnumDecl":
			if n.Name != "" && (reserved(n.Name) || !once("enum "+n.Name)) {
				continue
			}
			e := enumOf(n, docs)
			if n.Name == "" && len(e.Constants) == 0 {
				continue
			}
			d.Enums = append(d.Enums, e)

		case "TypedefDecl":
			if n.Name == "" || reserved(n.Name) || !once("typedef "+n.Name) {
				continue
			}
			d.Typedefs = append(d.Typedefs, Typedef{
				Name: n.Name,
				Type: n.qualType(),
				Doc:  docOf(n, docs),
			})
		}
	}
}

func functionOf(n *astNode, docs bool) Function {
	f := Function{
		Name:     n.Name,
		Result:   resultType(n.qualType()),
		Variadic: n.Variadic,
		Doc:      docOf(n, docs),
	}
	for _, child := range n.Inner {
		if child.Kind == "ParmVarDecl" {
			f.Params = append(f.Params, Param{Name: child.Name, Type: child.qualType()})
		}
	}
	return f
}

// resultType cuts the parameter list off a function type spelling:
// "OpusEncoder *(opus_int32, int, int, int *)" -> "OpusEncoder *"
func resultType(fn string) string {
	fn = strings.TrimSpace(fn)
	if !strings.HasSuffix(fn, ")") {
		return fn
	}
	depth := 0
	for i := len(fn) - 1; i >= 0; i-- {
		switch fn[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				return strings.TrimSpace(fn[:i])
			}
		}
	}
	return fn
}

func enumOf(n *astNode, docs bool) Enum {
	e := Enum{Name: n.Name, Underlying: "int", Doc: docOf(n, docs)}
	if n.FixedUnderlyingType != nil {
		e.Underlying = n.FixedUnderlyingType.QualType
	}

	next := int64(0)
	for i := range n.Inner {
		c := &n.Inner[i]
		if c.Kind != "EnumConstantDecl" {
			continue
		}
		if v, ok := constantValue(c); ok {
			next = v
		}
		if !reserved(c.Name) {
			e.Constants = append(e.Constants, EnumConstant{Name: c.Name, Value: next})
		}
		next++
	}
	return e
}

// constantValue finds the folded value clang attaches to an initializer
func constantValue(n *astNode) (int64, bool) {
	for i := range n.Inner {
		c := &n.Inner[i]
		if c.Value != "" && (c.Kind == "ConstantExpr" || c.Kind == "IntegerLiteral") {
			if v, err := strconv.ParseInt(c.Value, 10, 64); err == nil {
				return v, true
			}
		}
		if v, ok := constantValue(c); ok {
			return v, true
		}
	}
	return 0, false
}

// docOf joins the text of a FullComment child, one line per paragraph
func docOf(n *astNode, docs bool) string {
	if !docs {
		return ""
	}
	for i := range n.Inner {
		if n.Inner[i].Kind != "FullComment" {
			continue
		}
		var paras []string
		for _, p := range n.Inner[i].Inner {
			if text := strings.Join(strings.Fields(commentText(&p)), " "); text != "" {
				paras = append(paras, text)
			}
		}
		return strings.Join(paras, "\n")
	}
	return ""
}

func commentText(n *astNode) string {
	var b strings.Builder
	if n.Kind == "TextComment" {
		b.WriteString(n.Text)
		b.WriteByte(' ')
	}
	for i := range n.Inner {
		b.WriteString(commentText(&n.Inner[i]))
	}
	return b.String()
}
