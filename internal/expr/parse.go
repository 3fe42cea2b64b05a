package expr

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// maxDepth caps parser recursion so hostile input cannot exhaust the stack.
const maxDepth = 200

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// Parser is a recursive-descent parser over the closed grammar:
//
//	sum     := product (('+' | '-') product)*
//	product := unary (('*' | '/') unary)*
//	unary   := ('-' | '+') unary | power
//	power   := primary (('^' | '**') unary)?
//	primary := number | name | name '(' sum ')' | '(' sum ')'
type Parser struct {
	src   string
	pos   int
	depth int
	vars  map[string]int
}

func newParser(src string, vars []string) *Parser {
	slots := make(map[string]int, len(vars))
	for i, v := range vars {
		slots[v] = i
	}
	return &Parser{src: src, vars: slots}
}

// Parse parses src with the given variable names and returns the tree root.
func Parse(src string, vars ...string) (Node, error) {
	p := newParser(src, vars)
	p.skipSpaces()
	if p.pos >= len(p.src) {
		return nil, &SyntaxError{Pos: 0, Msg: "empty expression"}
	}
	node, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.pos < len(p.src) {
		return nil, &SyntaxError{Pos: p.pos, Msg: "unexpected " + strconv.Quote(p.src[p.pos:p.pos+1])}
	}
	return node, nil
}

func (p *Parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *Parser) skipSpaces() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return &SyntaxError{Pos: p.pos, Msg: "expression nested too deeply"}
	}
	return nil
}

func (p *Parser) leave() { p.depth-- }

func (p *Parser) parseSum() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpaces()
		var op Op
		switch p.peek() {
		case '+':
			op = OpAdd
		case '-':
			op = OpSub
		default:
			return left, nil
		}
		p.pos++
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseProduct() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpaces()
		var op Op
		switch {
		case strings.HasPrefix(p.src[p.pos:], "**"):
			return left, nil
		case p.peek() == '*':
			op = OpMul
		case p.peek() == '/':
			op = OpDiv
		default:
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	p.skipSpaces()
	switch p.peek() {
	case '-':
		p.pos++
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryNode{Op: OpNeg, Child: child}, nil
	case '+':
		p.pos++
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *Parser) parsePower() (Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	switch {
	case strings.HasPrefix(p.src[p.pos:], "**"):
		p.pos += 2
	case p.peek() == '^':
		p.pos++
	default:
		return base, nil
	}
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &BinaryNode{Op: OpPow, Left: base, Right: exp}, nil
}

func (p *Parser) parsePrimary() (Node, error) {
	p.skipSpaces()
	if p.pos >= len(p.src) {
		return nil, &SyntaxError{Pos: p.pos, Msg: "unexpected end of input"}
	}

	c := p.peek()
	switch {
	case c == '(':
		p.pos++
		inner, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return inner, nil
	case isDigit(c) || c == '.':
		return p.parseNumber()
	case isIdentStart(c):
		return p.parseName()
	}
	return nil, &SyntaxError{Pos: p.pos, Msg: "unexpected " + strconv.Quote(string(c))}
}

func (p *Parser) expect(c byte) error {
	p.skipSpaces()
	if p.peek() != c {
		if p.pos >= len(p.src) {
			return &SyntaxError{Pos: p.pos, Msg: "expected " + strconv.Quote(string(c)) + ", got end of input"}
		}
		return &SyntaxError{Pos: p.pos, Msg: "expected " + strconv.Quote(string(c)) + ", got " + strconv.Quote(p.src[p.pos:p.pos+1])}
	}
	p.pos++
	return nil
}

func (p *Parser) parseNumber() (Node, error) {
	start := p.pos
	for p.pos < len(p.src) && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}
	// Exponent part: 1e-3, 2E5. Only consumed when digits follow.
	if p.pos < len(p.src) && (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') {
		q := p.pos + 1
		if q < len(p.src) && (p.src[q] == '+' || p.src[q] == '-') {
			q++
		}
		if q < len(p.src) && isDigit(p.src[q]) {
			for q < len(p.src) && isDigit(p.src[q]) {
				q++
			}
			p.pos = q
		}
	}
	lit := p.src[start:p.pos]
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil || math.IsInf(v, 0) {
		return nil, &SyntaxError{Pos: start, Msg: "invalid number " + strconv.Quote(lit)}
	}
	return &NumNode{Val: v}, nil
}

func (p *Parser) parseName() (Node, error) {
	start := p.pos
	for p.pos < len(p.src) && isIdentPart(p.src[p.pos]) {
		p.pos++
	}
	name := p.src[start:p.pos]

	p.skipSpaces()
	if p.peek() == '(' {
		if !IsFunction(name) {
			return nil, &UnknownSymbolError{Name: name, Pos: start, Func: true}
		}
		p.pos++
		arg, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return &CallNode{Fn: name, Arg: arg}, nil
	}

	if slot, ok := p.vars[name]; ok {
		return &VarNode{Name: name, Slot: slot}, nil
	}
	if IsFunction(name) {
		return nil, &SyntaxError{Pos: start, Msg: "function " + name + " requires a parenthesized argument"}
	}
	if v, ok := constants[name]; ok {
		return &NumNode{Val: v, Name: name}, nil
	}
	return nil, &UnknownSymbolError{Name: name, Pos: start}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool { return c == '_' || unicode.IsLetter(rune(c)) && c < 0x80 }

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }
