package calc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcpplang/mcpp/pkg/diagnostics"
	"github.com/mcpplang/mcpp/pkg/scoreboard"
	"github.com/mcpplang/mcpp/pkg/token"
)

// Guard is a lowered `if`/`while` condition: a preamble of commands that
// must run before testing, and the single execute-able predicate
// fragment the caller combines with "if"/"unless".
type Guard struct {
	Preamble  []string
	Predicate string
	// Want is true when the caller should test with `execute if`, false
	// when the predicate must be negated with `execute unless`.
	Want bool
	// Holder is set only when the guard fell back to the condition-holder
	// path, so the caller can emit a `reset` for it once the call site has
	// been built. The direct
	// comparison path needs no holder and leaves this nil.
	Holder *scoreboard.Scoreboard
}

// LowerGuard lowers a guard's text into a Guard. Two paths exist,
// because the plain arithmetic operator list omits comparison operators
// even though guards clearly need them:
//
//  1. If the guard text contains a top-level comparison operator
//     (==, !=, >=, <=, <, >), it is split into lhs/rhs and lowered
//     directly via scoreboard.Compare.
//  2. Otherwise the guard is evaluated as an ordinary arithmetic/boolean
//     formula into a holder scoreboard, and truthiness is tested with
//     `score <holder> MCPP.var matches 0` negated by `unless` (a bare
//     guard is "falsy" only at exactly zero).
func LowerGuard(holderName string, guardText string, vars VariableResolver, funcs FunctionResolver) (Guard, error) {
	guardText = strings.TrimSpace(guardText)

	if lhsText, op, rhsText, ok := splitTopLevelComparison(guardText); ok {
		lhsRes, err := evalOperand(lhsText, vars, funcs)
		if err != nil {
			return Guard{}, err
		}
		rhsRes, err := evalOperand(rhsText, vars, funcs)
		if err != nil {
			return Guard{}, err
		}
		pre, predicate, want, err := scoreboard.Compare(lhsRes.Value, op, rhsRes.Value)
		if err != nil {
			return Guard{}, err
		}
		pre = append(append(append([]string{}, lhsRes.Commands...), rhsRes.Commands...), pre...)
		return Guard{Preamble: pre, Predicate: predicate, Want: want}, nil
	}

	holder := scoreboard.ConditionHolder(holderName, scoreboard.Int)
	toks, err := Tokenize(guardText)
	if err != nil {
		return Guard{}, err
	}
	rpn, err := ToRPN(toks)
	if err != nil {
		return Guard{}, err
	}
	result, err := Evaluate(rpn, vars, funcs)
	if err != nil {
		return Guard{}, err
	}
	holder.Type = result.Value.Type()
	assignCmds, err := scoreboard.Assign(holder, result.Value)
	if err != nil {
		return Guard{}, err
	}
	pre := append(append([]string{}, result.Commands...), assignCmds...)
	predicate := fmt.Sprintf("score %s %s matches 0", holder.Mangled(), scoreboard.Objective)
	return Guard{Preamble: pre, Predicate: predicate, Want: false, Holder: &holder}, nil
}

// evalOperand resolves one side of a top-level comparison. A bare
// single-token operand (a literal, variable, or call) is resolved
// directly rather than through Evaluate, so a guard like "x >= 5" lowers
// to a predicate against the real #main.x scoreboard instead of a copy
// sitting in #Calc.TEMP (Evaluate's single-token rule exists for the
// Formula entry point, not for comparison operands).
func evalOperand(text string, vars VariableResolver, funcs FunctionResolver) (Result, error) {
	toks, err := Tokenize(text)
	if err != nil {
		return Result{}, err
	}
	if len(toks) == 1 {
		return resolveSingleToken(toks[0], vars, funcs)
	}
	rpn, err := ToRPN(toks)
	if err != nil {
		return Result{}, err
	}
	return Evaluate(rpn, vars, funcs)
}

func resolveSingleToken(tok token.Token, vars VariableResolver, funcs FunctionResolver) (Result, error) {
	switch tok.Type {
	case token.INT:
		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return Result{}, diagnostics.New(diagnostics.CouldntParseANumber, tok.Literal)
		}
		return Result{Value: scoreboard.IntLiteral(n)}, nil
	case token.FLOAT:
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return Result{}, diagnostics.New(diagnostics.CouldntParseANumber, tok.Literal)
		}
		return Result{Value: scoreboard.FloatLiteral(f)}, nil
	case token.IDENT:
		if tok.Literal == "true" {
			return Result{Value: scoreboard.BoolLiteral(true)}, nil
		}
		if tok.Literal == "false" {
			return Result{Value: scoreboard.BoolLiteral(false)}, nil
		}
		sb, ok := vars.ResolveVariable(tok.Literal)
		if !ok {
			return Result{}, diagnostics.New(diagnostics.UndefinedVariableReferenced, tok.Literal)
		}
		return Result{Value: scoreboard.ScoreboardRef(sb)}, nil
	case token.FUNCCALL:
		name := tok.Literal[:strings.IndexByte(tok.Literal, '(')]
		target, ok := funcs.ResolveFunction(name)
		if !ok {
			return Result{}, diagnostics.New(diagnostics.UndefinedFunctionCalled, name)
		}
		return Result{Commands: []string{target.CallCommand()}, Value: scoreboard.FunctionRef(target)}, nil
	default:
		return Result{}, diagnostics.New(diagnostics.InvalidFormula, tok.Literal)
	}
}

// splitTopLevelComparison finds a comparison operator that sits outside
// any parentheses and splits the guard text around it.
func splitTopLevelComparison(guard string) (lhs string, op scoreboard.CompareOp, rhs string, found bool) {
	depth := 0
	for i := 0; i < len(guard); i++ {
		switch guard[i] {
		case '(':
			depth++
			continue
		case ')':
			depth--
			continue
		}
		if depth != 0 {
			continue
		}
		if tok, width, ok := matchComparisonAt(guard, i); ok {
			return strings.TrimSpace(guard[:i]), tok, strings.TrimSpace(guard[i+width:]), true
		}
	}
	return "", "", "", false
}

func matchComparisonAt(s string, i int) (scoreboard.CompareOp, int, bool) {
	two := ""
	if i+1 < len(s) {
		two = s[i : i+2]
	}
	switch two {
	case "==":
		return scoreboard.Eq, 2, true
	case "!=":
		return scoreboard.Ne, 2, true
	case "<=":
		return scoreboard.Le, 2, true
	case ">=":
		return scoreboard.Ge, 2, true
	}
	switch s[i] {
	case '<':
		return scoreboard.Lt, 1, true
	case '>':
		return scoreboard.Gt, 1, true
	}
	return "", 0, false
}
