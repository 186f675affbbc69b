// pkg/bindgen/ctype.go
package bindgen

import (
	"fmt"
	"go/token"
	"strings"
)

// cBuiltins maps C arithmetic type spellings to their cgo names
var cBuiltins = map[string]string{
	"char":                   "C.char",
	"signed char":            "C.schar",
	"unsigned char":          "C.uchar",
	"short":                  "C.short",
	"short int":              "C.short",
	"signed short":           "C.short",
	"signed short int":       "C.short",
	"unsigned short":         "C.ushort",
	"unsigned short int":     "C.ushort",
	"int":                    "C.int",
	"signed":                 "C.int",
	"signed int":             "C.int",
	"unsigned":               "C.uint",
	"unsigned int":           "C.uint",
	"long":                   "C.long",
	"long int":               "C.long",
	"signed long":            "C.long",
	"signed long int":        "C.long",
	"unsigned long":          "C.ulong",
	"unsigned long int":      "C.ulong",
	"long long":              "C.longlong",
	"long long int":          "C.longlong",
	"signed long long":       "C.longlong",
	"signed long long int":   "C.longlong",
	"unsigned long long":     "C.ulonglong",
	"unsigned long long int": "C.ulonglong",
	"float":                  "C.float",
	"double":                 "C.double",
}

// Go integer kinds for enum underlying types
var cIntKinds = map[string]IntKind{
	"char":               Int8,
	"signed char":        Int8,
	"unsigned char":      Uint8,
	"short":              Int16,
	"unsigned short":     Uint16,
	"int":                Int32,
	"unsigned int":       Uint32,
	"long long":          Int64,
	"unsigned long long": Uint64,
}

var qualifiers = map[string]bool{
	"const": true, "volatile": true, "restrict": true, "__restrict": true,
	"__restrict__": true, "_Nonnull": true, "_Nullable": true, "__unaligned": true,
}

// predeclared Go identifiers a generated name must not shadow
var predeclared = map[string]bool{
	"any": true, "append": true, "bool": true, "byte": true, "cap": true, "clear": true,
	"close": true, "comparable": true, "complex": true, "complex64": true, "complex128": true,
	"copy": true, "delete": true, "error": true, "false": true, "float32": true, "float64": true,
	"imag": true, "int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"iota": true, "len": true, "make": true, "max": true, "min": true, "new": true, "nil": true,
	"panic": true, "print": true, "println": true, "real": true, "recover": true, "rune": true,
	"string": true, "true": true, "uint": true, "uint8": true, "uint16": true, "uint32": true,
	"uint64": true, "uintptr": true, "C": true, "unsafe": true,
}

// cgoType converts a C qualified type spelling into the Go type cgo exposes
// for it. The empty string means void.
func cgoType(qual string) (string, error) {
	q := strings.TrimSpace(qual)

	if strings.Contains(q, "(*") || strings.Contains(q, "(^") {
		return "unsafe.Pointer", nil
	}
	if strings.ContainsAny(q, "()") {
		return "", fmt.Errorf("unsupported type %q", qual)
	}

	// arrays decay to pointers in parameter position
	if i := strings.Index(q, "["); i >= 0 {
		q = q[:i] + " *"
	}

	var base []string
	stars := 0
	for _, f := range strings.Fields(strings.ReplaceAll(q, "*", " * ")) {
		switch {
		case f == "*":
			stars++
		case qualifiers[f]:
		case stars > 0:
			return "", fmt.Errorf("unsupported type %q", qual)
		default:
			base = append(base, f)
		}
	}
	if len(base) == 0 {
		return "", fmt.Errorf("unsupported type %q", qual)
	}

	name := strings.Join(base, " ")
	ptr := strings.Repeat("*", stars)

	if name == "void" {
		if stars == 0 {
			return "", nil
		}
		return strings.Repeat("*", stars-1) + "unsafe.Pointer", nil
	}
	if g, ok := cBuiltins[name]; ok {
		return ptr + g, nil
	}
	for _, tag := range []string{"struct", "union", "enum"} {
		if rest, ok := strings.CutPrefix(name, tag+" "); ok && isIdent(rest) {
			return ptr + "C." + tag + "_" + rest, nil
		}
	}
	if isIdent(name) && name != "_Bool" {
		return ptr + "C." + name, nil
	}
	return "", fmt.Errorf("unsupported type %q", qual)
}

// usesUnsafe reports whether a cgo type spelling needs the unsafe import
func usesUnsafe(goType string) bool {
	return strings.Contains(goType, "unsafe.")
}

// intKindOf maps an enum's underlying C type to a Go integer kind
func intKindOf(qual string) IntKind {
	if k, ok := cIntKinds[strings.TrimSpace(qual)]; ok {
		return k
	}
	return Int32
}

// enumKind is the kind of e's underlying type, widened when an enumerator
// does not fit it. Clang leaves plain C enums typed int even when a constant
// needs unsigned int or long.
func enumKind(e Enum) IntKind {
	kind := intKindOf(e.Underlying)
	if enumFits(e, kind) {
		return kind
	}
	for _, k := range []IntKind{Int32, Uint32} {
		if enumFits(e, k) {
			return k
		}
	}
	return Int64
}

func enumFits(e Enum, kind IntKind) bool {
	for _, c := range e.Constants {
		if !fits(Macro{Value: c.Value}, kind) {
			return false
		}
	}
	return true
}

func isIdent(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return true
}

// reserved reports names the C implementation owns (__x, _X)
func reserved(name string) bool {
	return strings.HasPrefix(name, "__") ||
		(len(name) > 1 && name[0] == '_' && name[1] >= 'A' && name[1] <= 'Z')
}

// goSafeName reports whether name can be declared at Go package scope
func goSafeName(name string) bool {
	return isIdent(name) && !token.IsKeyword(name) && !predeclared[name] && name != "_"
}

// paramName makes a C parameter name usable in Go
func paramName(name string, index int, used map[string]bool) string {
	if name == "" {
		name = fmt.Sprintf("p%d", index)
	}
	for token.IsKeyword(name) || name == "C" || name == "unsafe" || name == "_" || used[name] {
		name += "_"
	}
	used[name] = true
	return name
}
