package calc

import (
	"strings"

	"github.com/mcpplang/mcpp/pkg/diagnostics"
	"github.com/mcpplang/mcpp/pkg/scoreboard"
	"github.com/mcpplang/mcpp/pkg/token"
)

// SplitAssignment splits a Formula line's text of the form
// "name[:type] = expression" into its three parts. The optional
// ":type" annotation fixes the destination variable's type; absent it,
// the caller infers the type from the formula's value.
func SplitAssignment(line string) (name, typeAnnotation, rhs string, err error) {
	eq := findTopLevelEquals(line)
	if eq < 0 {
		return "", "", "", diagnostics.New(diagnostics.InvalidFormula, line)
	}
	lhs := strings.TrimSpace(line[:eq])
	rhs = strings.TrimSpace(line[eq+1:])
	if rhs == "" {
		return "", "", "", diagnostics.New(diagnostics.InvalidFormula, line)
	}

	if colon := strings.IndexByte(lhs, ':'); colon >= 0 {
		name = strings.TrimSpace(lhs[:colon])
		typeAnnotation = strings.TrimSpace(lhs[colon+1:])
	} else {
		name = lhs
	}
	if name == "" {
		return "", "", "", diagnostics.New(diagnostics.InvalidFormula, line)
	}
	return name, typeAnnotation, rhs, nil
}

// findTopLevelEquals locates the single '=' that separates a Formula's
// destination from its expression, skipping over the two-character
// comparison operators that also contain '='.
func findTopLevelEquals(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] != '=' {
			continue
		}
		if i > 0 && (line[i-1] == '=' || line[i-1] == '!' || line[i-1] == '<' || line[i-1] == '>') {
			continue
		}
		if i+1 < len(line) && line[i+1] == '=' {
			continue
		}
		return i
	}
	return -1
}

// ParseType maps a type annotation's literal text to a scoreboard.Type.
func ParseType(annotation string) (scoreboard.Type, error) {
	switch annotation {
	case "int":
		return scoreboard.Int, nil
	case "float":
		return scoreboard.Float, nil
	case "bool":
		return scoreboard.Bool, nil
	default:
		return scoreboard.None, diagnostics.New(diagnostics.UnknownTypeAnnotation, annotation)
	}
}

// Formula lowers a Formula's right-hand-side expression and assigns its
// result into target, returning the full command sequence: evaluate,
// then assign the final Calcable into the destination scoreboard.
func Formula(target scoreboard.Scoreboard, rhs string, vars VariableResolver, funcs FunctionResolver) ([]string, error) {
	toks, err := Tokenize(rhs)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, diagnostics.New(diagnostics.InvalidFormula, rhs)
	}
	rpn, err := ToRPN(toks)
	if err != nil {
		return nil, err
	}
	result, err := Evaluate(rpn, vars, funcs)
	if err != nil {
		return nil, err
	}
	assignCmds, err := scoreboard.Assign(target, result.Value)
	if err != nil {
		return nil, err
	}
	return append(result.Commands, assignCmds...), nil
}

// InferType determines a Formula's destination type from its first
// operand token, used when no ":type" annotation is present. A
// leading '(' is skipped so a formula like "(a + b) * 2" still infers
// from "a". A function call in first position is not resolved: it
// yields InvalidFormula rather than the function's return-slot type.
func InferType(rhs string, vars VariableResolver) (scoreboard.Type, error) {
	toks, err := Tokenize(rhs)
	if err != nil {
		return scoreboard.None, err
	}
	for _, tok := range toks {
		switch tok.Type {
		case token.LPAREN:
			continue
		case token.INT:
			return scoreboard.Int, nil
		case token.FLOAT:
			return scoreboard.Float, nil
		case token.IDENT:
			if tok.Literal == "true" || tok.Literal == "false" {
				return scoreboard.Bool, nil
			}
			sb, ok := vars.ResolveVariable(tok.Literal)
			if !ok {
				return scoreboard.None, diagnostics.New(diagnostics.UndefinedVariableReferenced, tok.Literal)
			}
			return sb.Type, nil
		default:
			return scoreboard.None, diagnostics.New(diagnostics.InvalidFormula, rhs)
		}
	}
	return scoreboard.None, diagnostics.New(diagnostics.InvalidFormula, rhs)
}
