package calc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcpplang/mcpp/pkg/diagnostics"
	"github.com/mcpplang/mcpp/pkg/scoreboard"
	"github.com/mcpplang/mcpp/pkg/token"
)

// Result is what evaluating a formula's RPN stream produces: the command
// sequence that computes it, and the Calcable its final value lives in.
type Result struct {
	Commands []string
	Value    scoreboard.Calcable
}

// Evaluate lowers an RPN token stream into the command sequence that
// computes it. A value stack of Calcable
// values is maintained; on an operator, rhs then lhs are popped and the
// accumulator scoreboard ("target") is resolved from lhs: a scoreboard
// reference is reused (and mutated in place) as the target, a function
// reference's call command is emitted and its return slot used, and any
// other literal is first materialized into the shared #Calc.TEMP
// scoreboard via an assign command. target.calc(op, rhs) is then emitted
// and a reference to target is pushed back. If the whole expression is a
// single token, it is still assigned into #Calc.TEMP so callers always
// have a stable result slot to read from.
func Evaluate(rpn []token.Token, vars VariableResolver, funcs FunctionResolver) (Result, error) {
	var stack []scoreboard.Calcable
	var commands []string

	push := func(c scoreboard.Calcable) { stack = append(stack, c) }
	pop := func() (scoreboard.Calcable, error) {
		if len(stack) == 0 {
			return scoreboard.Calcable{}, diagnostics.New(diagnostics.InvalidFormula, "stack underflow")
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v, nil
	}

	for _, tok := range rpn {
		switch tok.Type {
		case token.INT:
			n, err := strconv.ParseInt(tok.Literal, 10, 64)
			if err != nil {
				return Result{}, diagnostics.New(diagnostics.CouldntParseANumber, tok.Literal)
			}
			push(scoreboard.IntLiteral(n))
		case token.FLOAT:
			f, err := strconv.ParseFloat(tok.Literal, 64)
			if err != nil {
				return Result{}, diagnostics.New(diagnostics.CouldntParseANumber, tok.Literal)
			}
			push(scoreboard.FloatLiteral(f))
		case token.IDENT:
			if tok.Literal == "true" {
				push(scoreboard.BoolLiteral(true))
				continue
			}
			if tok.Literal == "false" {
				push(scoreboard.BoolLiteral(false))
				continue
			}
			sb, ok := vars.ResolveVariable(tok.Literal)
			if !ok {
				return Result{}, diagnostics.New(diagnostics.UndefinedVariableReferenced, tok.Literal)
			}
			push(scoreboard.ScoreboardRef(sb))
		case token.FUNCCALL:
			name := tok.Literal[:strings.IndexByte(tok.Literal, '(')]
			target, ok := funcs.ResolveFunction(name)
			if !ok {
				return Result{}, diagnostics.New(diagnostics.UndefinedFunctionCalled, name)
			}
			push(scoreboard.FunctionRef(target))
		default:
			if !tok.Type.IsOperator() {
				return Result{}, diagnostics.New(diagnostics.UnknownOperatorGiven, tok.Literal)
			}
			rhs, err := pop()
			if err != nil {
				return Result{}, err
			}
			lhs, err := pop()
			if err != nil {
				return Result{}, err
			}
			combined, cmds, err := combine(lhs, tok.Type, rhs)
			if err != nil {
				return Result{}, err
			}
			commands = append(commands, cmds...)
			push(combined)
		}
	}

	final, err := pop()
	if err != nil {
		return Result{}, err
	}
	if len(stack) != 0 {
		return Result{}, diagnostics.New(diagnostics.InvalidFormula, "trailing operands")
	}

	if len(rpn) == 1 {
		temp := scoreboard.CalcTemp(final.Type())
		assignCmds, cmds, err := materializeCall(final, temp)
		if err != nil {
			return Result{}, err
		}
		commands = append(commands, cmds...)
		commands = append(commands, assignCmds...)
		final = scoreboard.ScoreboardRef(temp)
	}

	return Result{Commands: commands, Value: final}, nil
}

// materializeCall emits a function's call command (if final is a
// function reference) before assigning its value into temp.
func materializeCall(v scoreboard.Calcable, temp scoreboard.Scoreboard) (assignCmds, callCmds []string, err error) {
	if v.Kind == scoreboard.CalcFunction {
		callCmds = []string{v.FuncVal.CallCommand()}
	}
	assignCmds, err = scoreboard.Assign(temp, v)
	return assignCmds, callCmds, err
}

// combine resolves lhs into an accumulator target, then applies op
// against rhs.
func combine(lhs scoreboard.Calcable, op token.Type, rhs scoreboard.Calcable) (scoreboard.Calcable, []string, error) {
	if op.IsComparison() {
		return combineComparison(lhs, op, rhs)
	}

	var commands []string
	var target scoreboard.Scoreboard

	switch lhs.Kind {
	case scoreboard.CalcScoreboard:
		target = lhs.ScoreVal
	case scoreboard.CalcFunction:
		commands = append(commands, lhs.FuncVal.CallCommand())
		target = lhs.FuncVal.ReturnSlot()
	default:
		target = scoreboard.CalcTemp(lhs.Type())
		assignCmds, err := scoreboard.Assign(target, lhs)
		if err != nil {
			return scoreboard.Calcable{}, nil, err
		}
		commands = append(commands, assignCmds...)
	}

	calcOp, err := tokenToOp(op)
	if err != nil {
		return scoreboard.Calcable{}, nil, err
	}
	calcCmds, err := scoreboard.Calc(target, calcOp, rhs)
	if err != nil {
		return scoreboard.Calcable{}, nil, err
	}
	commands = append(commands, calcCmds...)
	return scoreboard.ScoreboardRef(target), commands, nil
}

// combineComparison lowers a comparison operator appearing inside a
// larger formula (e.g. nested under `&`/`|` in a guard) into a boolean
// result written to the shared #Calc.TEMP scoreboard.
func combineComparison(lhs scoreboard.Calcable, op token.Type, rhs scoreboard.Calcable) (scoreboard.Calcable, []string, error) {
	cmpOp, err := tokenToCompareOp(op)
	if err != nil {
		return scoreboard.Calcable{}, nil, err
	}
	pre, predicate, want, err := scoreboard.Compare(lhs, cmpOp, rhs)
	if err != nil {
		return scoreboard.Calcable{}, nil, err
	}
	target := scoreboard.CalcTemp(scoreboard.Bool)
	verb := "if"
	if !want {
		verb = "unless"
	}
	cmd := fmt.Sprintf("execute %s %s run scoreboard players set %s %s 1", verb, predicate, target.Mangled(), scoreboard.Objective)
	cmds := append(append([]string{}, pre...), scoreboard.Set(target, 0), cmd)
	return scoreboard.ScoreboardRef(target), cmds, nil
}

func tokenToOp(t token.Type) (scoreboard.Op, error) {
	switch t {
	case token.PLUS:
		return scoreboard.Add, nil
	case token.MINUS:
		return scoreboard.Sub, nil
	case token.STAR:
		return scoreboard.Mul, nil
	case token.SLASH:
		return scoreboard.Div, nil
	case token.PERCENT:
		return scoreboard.Mod, nil
	case token.CARET:
		return scoreboard.Pow, nil
	case token.AMP:
		return scoreboard.BitAnd, nil
	case token.PIPE:
		return scoreboard.BitOr, nil
	default:
		return "", diagnostics.New(diagnostics.UnknownOperatorGiven, t.String())
	}
}

func tokenToCompareOp(t token.Type) (scoreboard.CompareOp, error) {
	switch t {
	case token.EQ:
		return scoreboard.Eq, nil
	case token.NE:
		return scoreboard.Ne, nil
	case token.LT:
		return scoreboard.Lt, nil
	case token.LE:
		return scoreboard.Le, nil
	case token.GT:
		return scoreboard.Gt, nil
	case token.GE:
		return scoreboard.Ge, nil
	default:
		return "", diagnostics.New(diagnostics.UnknownOperatorGiven, t.String())
	}
}
