// pkg/bindgen/parser.go
package bindgen

import "context"

// Request describes one parse of the header closure
type Request struct {
	Header       string   // umbrella header path
	IncludePaths []string // passed to the front end as -I
	KeepComments bool     // attach doc comments to declarations
	ExtraArgs    []string // additional front end flags
}

// Parser turns a header and everything it includes into declarations.
// Macro kinds are left at KindDefault; the Generator resolves them.
type Parser interface {
	Parse(ctx context.Context, req Request) (*Declarations, error)
}

// ParserFunc adapts a function to the Parser interface
type ParserFunc func(ctx context.Context, req Request) (*Declarations, error)

// Parse calls f
func (f ParserFunc) Parse(ctx context.Context, req Request) (*Declarations, error) {
	return f(ctx, req)
}
