package calc

import (
	"github.com/mcpplang/mcpp/pkg/diagnostics"
	"github.com/mcpplang/mcpp/pkg/token"
)

// ToRPN reorders an infix token stream into reverse Polish notation using
// the shunting-yard algorithm. The pop condition on the operator stack is
// the standard textbook one: an operator on the stack is popped to output while it
// has precedence strictly greater than, or equal-and-left-associative
// with, the incoming operator. Every operator handled here (+ - * / % ^
// & | and the comparisons) is left-associative, so the condition reduces
// to "pop while stack-top precedence >= incoming precedence".
func ToRPN(tokens []token.Token) ([]token.Token, error) {
	var output []token.Token
	var ops []token.Token

	for _, tok := range tokens {
		switch {
		case tok.Type == token.INT || tok.Type == token.FLOAT || tok.Type == token.IDENT || tok.Type == token.FUNCCALL:
			output = append(output, tok)
		case tok.Type == token.LPAREN:
			ops = append(ops, tok)
		case tok.Type == token.RPAREN:
			found := false
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.Type == token.LPAREN {
					found = true
					break
				}
				output = append(output, top)
			}
			if !found {
				return nil, diagnostics.New(diagnostics.UnbalancedBrackets)
			}
		case tok.Type.IsOperator():
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.Type == token.LPAREN {
					break
				}
				if top.Type.Precedence() < tok.Type.Precedence() {
					break
				}
				output = append(output, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, tok)
		default:
			return nil, diagnostics.New(diagnostics.InvalidFormula, tok.Literal)
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.Type == token.LPAREN {
			return nil, diagnostics.New(diagnostics.UnbalancedBrackets)
		}
		output = append(output, top)
	}

	return output, nil
}
