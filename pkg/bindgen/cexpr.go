// pkg/bindgen/cexpr.go
package bindgen

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var errNotInteger = errors.New("not an integer constant expression")

type tokKind int

const (
	tokNum tokKind = iota
	tokIdent
	tokPunct
	tokEOF
)

type cToken struct {
	kind tokKind
	text string
	num  *big.Int
}

// typeWords may appear inside a cast
var typeWords = map[string]bool{
	"char": true, "short": true, "int": true, "long": true, "signed": true,
	"unsigned": true, "const": true, "volatile": true, "_Bool": true,
}

var punctuators = []string{
	"<<", ">>", "<=", ">=", "==", "!=", "&&", "||",
	"(", ")", "+", "-", "*", "/", "%", "<", ">", "&", "^", "|", "!", "~", "?", ":",
}

// lookupFunc resolves an identifier to the value of another macro
type lookupFunc func(name string) (*big.Int, error)

// evalMacro evaluates a macro replacement list as a C integer constant expression
func evalMacro(body string, lookup lookupFunc) (*big.Int, error) {
	toks, err := tokenize(body)
	if err != nil {
		return nil, err
	}
	if len(toks) == 1 {
		return nil, errNotInteger
	}
	p := &exprParser{toks: toks, lookup: lookup}
	v, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected %q", errNotInteger, p.peek().text)
	}
	return v, nil
}

func tokenize(s string) ([]cToken, error) {
	var toks []cToken
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c):
			j := i
			for j < len(s) && (isIdentChar(s[j]) || s[j] == '.') {
				j++
			}
			n, err := parseIntLiteral(s[i:j])
			if err != nil {
				return nil, err
			}
			toks = append(toks, cToken{kind: tokNum, text: s[i:j], num: n})
			i = j
		case isIdentStart(c):
			j := i
			for j < len(s) && isIdentChar(s[j]) {
				j++
			}
			toks = append(toks, cToken{kind: tokIdent, text: s[i:j]})
			i = j
		case c == '\'':
			n, width, err := parseCharLiteral(s[i:])
			if err != nil {
				return nil, err
			}
			toks = append(toks, cToken{kind: tokNum, text: s[i : i+width], num: n})
			i += width
		default:
			matched := false
			for _, p := range punctuators {
				if strings.HasPrefix(s[i:], p) {
					toks = append(toks, cToken{kind: tokPunct, text: p})
					i += len(p)
					matched = true
					break
				}
			}
			if !matched {
				return nil, fmt.Errorf("%w: unexpected character %q", errNotInteger, c)
			}
		}
	}
	return append(toks, cToken{kind: tokEOF}), nil
}

// parseIntLiteral handles decimal, hex, octal and binary literals with
// u/U/l/L suffixes
func parseIntLiteral(lit string) (*big.Int, error) {
	digits := strings.TrimRight(lit, "uUlL")
	base := 10
	switch {
	case strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X"):
		base, digits = 16, digits[2:]
	case strings.HasPrefix(digits, "0b") || strings.HasPrefix(digits, "0B"):
		base, digits = 2, digits[2:]
	case len(digits) > 1 && digits[0] == '0':
		base, digits = 8, digits[1:]
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok || digits == "" {
		return nil, fmt.Errorf("%w: bad literal %q", errNotInteger, lit)
	}
	return n, nil
}

func parseCharLiteral(s string) (*big.Int, int, error) {
	if len(s) >= 3 && s[1] != '\\' && s[2] == '\'' {
		return big.NewInt(int64(s[1])), 3, nil
	}
	if len(s) >= 4 && s[1] == '\\' && s[3] == '\'' {
		escapes := map[byte]int64{'n': '\n', 't': '\t', 'r': '\r', '0': 0, '\\': '\\', '\'': '\'', '"': '"', 'a': 7, 'b': 8, 'f': 12, 'v': 11}
		if v, ok := escapes[s[2]]; ok {
			return big.NewInt(v), 4, nil
		}
	}
	return nil, 0, fmt.Errorf("%w: unsupported character literal", errNotInteger)
}

func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool { return c == '_' || (c|0x20) >= 'a' && (c|0x20) <= 'z' }
func isIdentChar(c byte) bool  { return isIdentStart(c) || isDigit(c) }

type exprParser struct {
	toks   []cToken
	pos    int
	lookup lookupFunc
}

func (p *exprParser) peek() cToken { return p.toks[p.pos] }
func (p *exprParser) at(offset int) cToken {
	if p.pos+offset < len(p.toks) {
		return p.toks[p.pos+offset]
	}
	return cToken{kind: tokEOF}
}
func (p *exprParser) next() cToken {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *exprParser) accept(punct string) bool {
	if t := p.peek(); t.kind == tokPunct && t.text == punct {
		p.pos++
		return true
	}
	return false
}

func (p *exprParser) ternary() (*big.Int, error) {
	cond, err := p.binary(0)
	if err != nil {
		return nil, err
	}
	if !p.accept("?") {
		return cond, nil
	}
	a, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if !p.accept(":") {
		return nil, fmt.Errorf("%w: missing ':'", errNotInteger)
	}
	b, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if cond.Sign() != 0 {
		return a, nil
	}
	return b, nil
}

// binary operator precedence, loosest first
var precedence = map[string]int{
	"||": 1, "&&": 2, "|": 3, "^": 4, "&": 5,
	"==": 6, "!=": 6,
	"<": 7, ">": 7, "<=": 7, ">=": 7,
	"<<": 8, ">>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10,
}

func (p *exprParser) binary(minPrec int) (*big.Int, error) {
	lhs, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		prec, ok := precedence[t.text]
		if t.kind != tokPunct || !ok || prec <= minPrec {
			return lhs, nil
		}
		p.next()
		rhs, err := p.binary(prec)
		if err != nil {
			return nil, err
		}
		if lhs, err = apply(t.text, lhs, rhs); err != nil {
			return nil, err
		}
	}
}

func apply(op string, a, b *big.Int) (*big.Int, error) {
	r := new(big.Int)
	switch op {
	case "+":
		return r.Add(a, b), nil
	case "-":
		return r.Sub(a, b), nil
	case "*":
		return r.Mul(a, b), nil
	case "/", "%":
		if b.Sign() == 0 {
			return nil, fmt.Errorf("%w: division by zero", errNotInteger)
		}
		if op == "/" {
			return r.Quo(a, b), nil
		}
		return r.Rem(a, b), nil
	case "<<", ">>":
		if b.Sign() < 0 || b.Cmp(big.NewInt(64)) >= 0 {
			return nil, fmt.Errorf("%w: shift count %s", errNotInteger, b)
		}
		if op == "<<" {
			return r.Lsh(a, uint(b.Uint64())), nil
		}
		return r.Rsh(a, uint(b.Uint64())), nil
	case "&":
		return r.And(a, b), nil
	case "|":
		return r.Or(a, b), nil
	case "^":
		return r.Xor(a, b), nil
	case "&&":
		return boolInt(a.Sign() != 0 && b.Sign() != 0), nil
	case "||":
		return boolInt(a.Sign() != 0 || b.Sign() != 0), nil
	case "==":
		return boolInt(a.Cmp(b) == 0), nil
	case "!=":
		return boolInt(a.Cmp(b) != 0), nil
	case "<":
		return boolInt(a.Cmp(b) < 0), nil
	case ">":
		return boolInt(a.Cmp(b) > 0), nil
	case "<=":
		return boolInt(a.Cmp(b) <= 0), nil
	case ">=":
		return boolInt(a.Cmp(b) >= 0), nil
	}
	return nil, fmt.Errorf("%w: operator %s", errNotInteger, op)
}

func boolInt(b bool) *big.Int {
	if b {
		return big.NewInt(1)
	}
	return big.NewInt(0)
}

func (p *exprParser) unary() (*big.Int, error) {
	t := p.peek()
	if t.kind == tokPunct {
		switch t.text {
		case "+", "-", "~", "!":
			p.next()
			v, err := p.unary()
			if err != nil {
				return nil, err
			}
			switch t.text {
			case "-":
				return new(big.Int).Neg(v), nil
			case "~":
				return new(big.Int).Not(v), nil
			case "!":
				return boolInt(v.Sign() == 0), nil
			}
			return v, nil
		case "(":
			if p.isCast() {
				for !p.accept(")") {
					p.next()
				}
				return p.unary()
			}
		}
	}
	return p.primary()
}

// isCast reports whether the "(" at the cursor opens a cast to an integer
// type name, e.g. (opus_int32) or (unsigned long)
func (p *exprParser) isCast() bool {
	i := 1
	for ; p.at(i).kind == tokIdent; i++ {
		name := p.at(i).text
		if typeWords[name] {
			continue
		}
		// an identifier that is itself a macro is an operand, not a type
		if _, err := p.lookup(name); err == nil {
			return false
		}
	}
	if i == 1 {
		return false
	}
	closing := p.at(i)
	if closing.kind != tokPunct || closing.text != ")" {
		return false
	}
	after := p.at(i + 1)
	return after.kind == tokNum || after.kind == tokIdent ||
		(after.kind == tokPunct && (after.text == "(" || after.text == "-" || after.text == "~" || after.text == "!" || after.text == "+"))
}

func (p *exprParser) primary() (*big.Int, error) {
	t := p.next()
	switch t.kind {
	case tokNum:
		return new(big.Int).Set(t.num), nil
	case tokIdent:
		v, err := p.lookup(t.text)
		if err != nil {
			return nil, err
		}
		return new(big.Int).Set(v), nil
	case tokPunct:
		if t.text == "(" {
			v, err := p.ternary()
			if err != nil {
				return nil, err
			}
			if !p.accept(")") {
				return nil, fmt.Errorf("%w: missing ')'", errNotInteger)
			}
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: unexpected %q", errNotInteger, t.text)
}
