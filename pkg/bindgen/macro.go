// pkg/bindgen/macro.go
package bindgen

import (
	"bufio"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"fortio.org/safecast"
)

// MacroRule forces the type of integer macros whose name starts with Prefix
type MacroRule struct {
	Prefix string
	Kind   IntKind
}

// DefaultMacroRules pins every OPUS_* constant to C int, matching the int
// arguments of opus_*_ctl requests
var DefaultMacroRules = []MacroRule{
	{Prefix: "OPUS", Kind: KindInt},
}

// ruleFor returns the kind forced for name, if any
func ruleFor(rules []MacroRule, name string) (IntKind, bool) {
	for _, r := range rules {
		if strings.HasPrefix(name, r.Prefix) {
			return r.Kind, true
		}
	}
	return KindDefault, false
}

// inferKind picks the narrowest of uint32/uint64 for non-negative values and
// int32/int64 for negative ones
func inferKind(m Macro) IntKind {
	if m.Unsigned {
		return Uint64
	}
	if m.Value < 0 {
		if _, err := safecast.Conv[int32](m.Value); err != nil {
			return Int64
		}
		return Int32
	}
	if _, err := safecast.Conv[uint32](m.Value); err != nil {
		return Uint64
	}
	return Uint32
}

// fits reports whether m's value is representable in kind
func fits(m Macro, kind IntKind) bool {
	if m.Unsigned {
		return kind == Uint64
	}
	var err error
	switch kind {
	case Int8:
		_, err = safecast.Conv[int8](m.Value)
	case Int16:
		_, err = safecast.Conv[int16](m.Value)
	case Int32:
		_, err = safecast.Conv[int32](m.Value)
	case Int64:
	case Uint8:
		_, err = safecast.Conv[uint8](m.Value)
	case Uint16:
		_, err = safecast.Conv[uint16](m.Value)
	case Uint32:
		_, err = safecast.Conv[uint32](m.Value)
	case Uint64:
		_, err = safecast.Conv[uint64](m.Value)
	default:
		return false
	}
	return err == nil
}

// ResolveMacroKinds assigns every macro its emitted type: the kind of the
// first matching rule, or the default inference
func ResolveMacroKinds(macros []Macro, rules []MacroRule) ([]Macro, error) {
	out := make([]Macro, 0, len(macros))
	for _, m := range macros {
		kind, forced := ruleFor(rules, m.Name)
		if !forced {
			kind = inferKind(m)
		}
		if !fits(m, kind) {
			return nil, fmt.Errorf("macro %s: value %s does not fit %s", m.Name, m.ValueString(), kind)
		}
		m.Kind = kind
		out = append(out, m)
	}
	return out, nil
}

// ValueString renders the value as a Go literal
func (m Macro) ValueString() string {
	if m.Unsigned {
		return new(big.Int).SetUint64(uint64(m.Value)).String()
	}
	return big.NewInt(m.Value).String()
}

// macroDef is one line of `#define NAME BODY` preprocessor output
type macroDef struct {
	name string
	body string
}

// parseDefines reads -dM output, skipping function-like macros
func parseDefines(out string) []macroDef {
	var defs []macroDef
	scanner := bufio.NewScanner(strings.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line, ok := strings.CutPrefix(strings.TrimSpace(scanner.Text()), "#define ")
		if !ok {
			continue
		}
		end := 0
		for end < len(line) && isIdentChar(line[end]) {
			end++
		}
		if end == 0 || (end < len(line) && line[end] == '(') {
			continue
		}
		defs = append(defs, macroDef{name: line[:end], body: strings.TrimSpace(line[end:])})
	}
	return defs
}

// evaluateMacros evaluates the defs named in emit against the full table
// (which includes compiler-predefined macros). Non-integer macros are
// dropped. The result is sorted by name.
func evaluateMacros(table []macroDef, emit map[string]bool) []Macro {
	bodies := make(map[string]string, len(table))
	for _, d := range table {
		bodies[d.name] = d.body
	}

	cache := make(map[string]*big.Int)
	failed := make(map[string]bool)
	active := make(map[string]bool)

	var lookup lookupFunc
	lookup = func(name string) (*big.Int, error) {
		if v, ok := cache[name]; ok {
			return v, nil
		}
		body, ok := bodies[name]
		if !ok || failed[name] || active[name] {
			return nil, fmt.Errorf("%w: %s", errNotInteger, name)
		}
		active[name] = true
		v, err := evalMacro(body, lookup)
		delete(active, name)
		if err != nil {
			failed[name] = true
			return nil, err
		}
		cache[name] = v
		return v, nil
	}

	var macros []Macro
	for _, d := range table {
		if !emit[d.name] {
			continue
		}
		v, err := lookup(d.name)
		if err != nil {
			continue
		}
		m := Macro{Name: d.name}
		switch {
		case v.IsInt64():
			m.Value = v.Int64()
		case v.IsUint64():
			m.Value = int64(v.Uint64())
			m.Unsigned = true
		default:
			continue
		}
		macros = append(macros, m)
	}

	sort.Slice(macros, func(i, j int) bool { return macros[i].Name < macros[j].Name })
	return macros
}
