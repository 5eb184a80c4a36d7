package expression

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenNumber
	tokenString
	tokenPunct
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

// longest first
var puncts = []string{
	"===", "!==",
	"==", "!=", "<=", ">=", "&&", "||",
	"<", ">", "!", "=", "+", "-", "*", "/", "%", "(", ")", ";",
}

func lex(src string) ([]token, error) {
	var tokens []token
	for pos := 0; pos < len(src); {
		r, width := utf8.DecodeRuneInString(src[pos:])
		switch {
		case unicode.IsSpace(r):
			pos += width
		case isIdentStart(r):
			end := pos + width
			for end < len(src) {
				next, w := utf8.DecodeRuneInString(src[end:])
				if !isIdentPart(next) {
					break
				}
				end += w
			}
			tokens = append(tokens, token{kind: tokenIdent, text: src[pos:end], pos: pos})
			pos = end
		case isDigit(r) || (r == '.' && pos+1 < len(src) && isDigit(rune(src[pos+1]))):
			tok, err := lexNumber(src, pos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			pos += len(tok.text)
		case r == '\'' || r == '"':
			tok, end, err := lexString(src, pos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			pos = end
		default:
			matched := false
			for _, p := range puncts {
				if strings.HasPrefix(src[pos:], p) {
					tokens = append(tokens, token{kind: tokenPunct, text: p, pos: pos})
					pos += len(p)
					matched = true
					break
				}
			}
			if !matched {
				return nil, fmt.Errorf("%w: unexpected character %q at %d", ErrSyntax, r, pos)
			}
		}
	}
	return append(tokens, token{kind: tokenEOF, pos: len(src)}), nil
}

func lexNumber(src string, start int) (token, error) {
	end := start
	for end < len(src) && isDigit(rune(src[end])) {
		end++
	}
	if end < len(src) && src[end] == '.' {
		end++
		for end < len(src) && isDigit(rune(src[end])) {
			end++
		}
	}
	if end < len(src) && (src[end] == 'e' || src[end] == 'E') {
		exp := end + 1
		if exp < len(src) && (src[exp] == '+' || src[exp] == '-') {
			exp++
		}
		if exp < len(src) && isDigit(rune(src[exp])) {
			end = exp
			for end < len(src) && isDigit(rune(src[end])) {
				end++
			}
		}
	}
	text := src[start:end]
	num, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, fmt.Errorf("%w: invalid number %q at %d", ErrSyntax, text, start)
	}
	return token{kind: tokenNumber, text: text, num: num, pos: start}, nil
}

func lexString(src string, start int) (token, int, error) {
	quote := src[start]
	var b strings.Builder
	for pos := start + 1; pos < len(src); pos++ {
		c := src[pos]
		switch {
		case c == quote:
			return token{kind: tokenString, text: b.String(), pos: start}, pos + 1, nil
		case c == '\\' && pos+1 < len(src):
			pos++
			switch src[pos] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(src[pos])
			}
		default:
			b.WriteByte(c)
		}
	}
	return token{}, 0, fmt.Errorf("%w: unterminated string at %d", ErrSyntax, start)
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
