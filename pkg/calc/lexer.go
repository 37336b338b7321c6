// Package calc lexes, reorders, and evaluates the arithmetic/boolean
// formulas that appear on the right-hand side of a Formula sentence or
// inside an `if`/`while` guard.
package calc

import (
	"strings"
	"unicode"

	"github.com/mcpplang/mcpp/pkg/diagnostics"
	"github.com/mcpplang/mcpp/pkg/token"
)

// Lexer tokenizes a formula string char-by-char.
type Lexer struct {
	input   string
	pos     int
	readPos int
	ch      byte
}

// NewLexer returns a Lexer ready to tokenize input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// NextToken returns the next token in the stream, consuming it.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespace()

	pos := l.pos
	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, Pos: pos}, nil
	case l.ch == '+':
		l.readChar()
		return token.Token{Type: token.PLUS, Literal: "+", Pos: pos}, nil
	case l.ch == '-':
		l.readChar()
		return token.Token{Type: token.MINUS, Literal: "-", Pos: pos}, nil
	case l.ch == '*':
		l.readChar()
		return token.Token{Type: token.STAR, Literal: "*", Pos: pos}, nil
	case l.ch == '/':
		l.readChar()
		return token.Token{Type: token.SLASH, Literal: "/", Pos: pos}, nil
	case l.ch == '%':
		l.readChar()
		return token.Token{Type: token.PERCENT, Literal: "%", Pos: pos}, nil
	case l.ch == '^':
		l.readChar()
		return token.Token{Type: token.CARET, Literal: "^", Pos: pos}, nil
	case l.ch == '&':
		l.readChar()
		return token.Token{Type: token.AMP, Literal: "&", Pos: pos}, nil
	case l.ch == '|':
		l.readChar()
		return token.Token{Type: token.PIPE, Literal: "|", Pos: pos}, nil
	case l.ch == '(':
		l.readChar()
		return token.Token{Type: token.LPAREN, Literal: "(", Pos: pos}, nil
	case l.ch == ')':
		l.readChar()
		return token.Token{Type: token.RPAREN, Literal: ")", Pos: pos}, nil
	case l.ch == ',':
		l.readChar()
		return token.Token{Type: token.COMMA, Literal: ",", Pos: pos}, nil
	case l.ch == '=' && l.peekChar() == '=':
		l.readChar()
		l.readChar()
		return token.Token{Type: token.EQ, Literal: "==", Pos: pos}, nil
	case l.ch == '!' && l.peekChar() == '=':
		l.readChar()
		l.readChar()
		return token.Token{Type: token.NE, Literal: "!=", Pos: pos}, nil
	case l.ch == '<' && l.peekChar() == '=':
		l.readChar()
		l.readChar()
		return token.Token{Type: token.LE, Literal: "<=", Pos: pos}, nil
	case l.ch == '>' && l.peekChar() == '=':
		l.readChar()
		l.readChar()
		return token.Token{Type: token.GE, Literal: ">=", Pos: pos}, nil
	case l.ch == '<':
		l.readChar()
		return token.Token{Type: token.LT, Literal: "<", Pos: pos}, nil
	case l.ch == '>':
		l.readChar()
		return token.Token{Type: token.GT, Literal: ">", Pos: pos}, nil
	case isDigit(l.ch):
		return l.readNumber(pos)
	case l.ch == '.' && isDigit(l.peekChar()):
		return l.readNumber(pos)
	case isIdentStart(l.ch):
		return l.readIdentOrCall(pos)
	default:
		lit := string(l.ch)
		l.readChar()
		return token.Token{Type: token.ILLEGAL, Literal: lit, Pos: pos}, diagnostics.New(diagnostics.UnknownOperatorGiven, lit)
	}
}

// readNumber reads an INT or FLOAT literal. A literal becomes FLOAT as
// soon as a '.' is seen among its digits, including a leading dot with
// no integer part (".5").
func (l *Lexer) readNumber(start int) (token.Token, error) {
	isFloat := false
	for isDigit(l.ch) || (l.ch == '.' && !isFloat) {
		if l.ch == '.' {
			isFloat = true
		}
		l.readChar()
	}
	lit := l.input[start:l.pos]
	if isFloat {
		return token.Token{Type: token.FLOAT, Literal: lit, Pos: start}, nil
	}
	return token.Token{Type: token.INT, Literal: lit, Pos: start}, nil
}

// readIdentOrCall reads an identifier. If it is immediately followed by
// "(...)" it is lexed as a single FUNCCALL token whose literal is the
// full "name(args)" text, since function calls are opaque leaves to
// the shunting-yard reorderer.
func (l *Lexer) readIdentOrCall(start int) (token.Token, error) {
	for isIdentPart(l.ch) {
		l.readChar()
	}
	if l.ch != '(' {
		return token.Token{Type: token.IDENT, Literal: l.input[start:l.pos], Pos: start}, nil
	}

	depth := 0
	for {
		if l.ch == 0 {
			return token.Token{}, diagnostics.New(diagnostics.UnbalancedBrackets)
		}
		if l.ch == '(' {
			depth++
		}
		if l.ch == ')' {
			depth--
			l.readChar()
			if depth == 0 {
				break
			}
			continue
		}
		l.readChar()
	}
	return token.Token{Type: token.FUNCCALL, Literal: l.input[start:l.pos], Pos: start}, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return unicode.IsLetter(rune(b)) || b == '_'
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

// Tokenize lexes the entire formula into a slice of tokens, stopping at
// and excluding the trailing EOF marker.
func Tokenize(formula string) ([]token.Token, error) {
	formula = strings.TrimSpace(formula)
	l := NewLexer(formula)
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.EOF {
			break
		}
		toks = append(toks, tok)
	}
	return toks, nil
}
