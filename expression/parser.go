package expression

import "fmt"

type node interface {
	eval(s *scope) (interface{}, error)
}

type literal struct {
	value interface{}
}

type identifier struct {
	name string
}

type assignment struct {
	name  string
	value node
}

type unary struct {
	op      string
	operand node
}

type binary struct {
	op          string
	left, right node
}

type logical struct {
	op          string
	left, right node
}

var precedence = map[string]int{
	"||":  1,
	"&&":  2,
	"==":  3,
	"!=":  3,
	"===": 3,
	"!==": 3,
	"<":   4,
	"<=":  4,
	">":   4,
	">=":  4,
	"+":   5,
	"-":   5,
	"*":   6,
	"/":   6,
	"%":   6,
}

type parser struct {
	tokens []token
	pos    int
}

func parse(src string) ([]node, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}

	var statements []node
	for p.peek().kind != tokenEOF {
		if p.acceptPunct(";") {
			continue
		}
		stmt, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)

		next := p.peek()
		if next.kind != tokenEOF && !p.isPunct(next, ";") {
			return nil, p.unexpected(next)
		}
	}
	if len(statements) == 0 {
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	}
	return statements, nil
}

func (p *parser) parseAssignment() (node, error) {
	left, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}
	if !p.isPunct(p.peek(), "=") {
		return left, nil
	}
	assign := p.next()
	target, ok := left.(identifier)
	if !ok || !isAccumulator(target.name) {
		return nil, fmt.Errorf("%w: only %s can be assigned (at %d)", ErrSyntax, accumulatorNames, assign.pos)
	}
	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return assignment{name: target.name, value: value}, nil
}

func (p *parser) parseBinary(minPrec int) (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		prec, ok := precedence[tok.text]
		if tok.kind != tokenPunct || !ok || prec < minPrec {
			return left, nil
		}
		p.next()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		if tok.text == "&&" || tok.text == "||" {
			left = logical{op: tok.text, left: left, right: right}
		} else {
			left = binary{op: tok.text, left: left, right: right}
		}
	}
}

func (p *parser) parseUnary() (node, error) {
	tok := p.peek()
	if tok.kind == tokenPunct && (tok.text == "!" || tok.text == "-" || tok.text == "+") {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unary{op: tok.text, operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.next()
	switch tok.kind {
	case tokenNumber:
		return literal{value: tok.num}, nil
	case tokenString:
		return literal{value: tok.text}, nil
	case tokenIdent:
		switch tok.text {
		case "true":
			return literal{value: true}, nil
		case "false":
			return literal{value: false}, nil
		case "null", "undefined":
			return literal{value: nil}, nil
		}
		if p.isPunct(p.peek(), "(") {
			return nil, fmt.Errorf("%w: function calls are not supported (%s at %d)", ErrSyntax, tok.text, tok.pos)
		}
		return identifier{name: tok.text}, nil
	case tokenPunct:
		if tok.text == "(" {
			inner, err := p.parseAssignment()
			if err != nil {
				return nil, err
			}
			if !p.acceptPunct(")") {
				return nil, p.unexpected(p.peek())
			}
			return inner, nil
		}
	}
	return nil, p.unexpected(tok)
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) isPunct(tok token, text string) bool {
	return tok.kind == tokenPunct && tok.text == text
}

func (p *parser) acceptPunct(text string) bool {
	if p.isPunct(p.peek(), text) {
		p.next()
		return true
	}
	return false
}

func (p *parser) unexpected(tok token) error {
	if tok.kind == tokenEOF {
		return fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	}
	return fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, tok.text, tok.pos)
}
