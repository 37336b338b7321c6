package scoreboard

import (
	"fmt"
	"math"

	"github.com/mcpplang/mcpp/pkg/diagnostics"
)

// Op is an arithmetic or boolean operator lexeme recognized by Calc.
type Op string

const (
	Add    Op = "+"
	Sub    Op = "-"
	Mul    Op = "*"
	Div    Op = "/"
	Mod    Op = "%"
	Pow    Op = "^"
	BitAnd Op = "&"
	BitOr  Op = "|"
)

func opSymbol(o Op) OpSymbol {
	switch o {
	case Add:
		return OpAdd
	case Sub:
		return OpSub
	case Mul, Pow:
		return OpMul
	case Div:
		return OpDiv
	case Mod:
		return OpMod
	default:
		return OpAssign
	}
}

// floatToScaled rounds a float to its fixed-point integer representation.
func floatToScaled(v float64) int64 {
	return int64(math.Round(v * float64(Magnification)))
}

// Calc lowers "target <op>= rhs" to a command sequence, target becoming
// the accumulator scoreboard of the RPN evaluator. Pow and
// Mod follow the same scoreboard-operation form as Mul/Div.
func Calc(target Scoreboard, op Op, rhs Calcable) ([]string, error) {
	switch op {
	case Add, Sub, Mul, Div, Mod, Pow:
		return calcArithmetic(target, op, rhs)
	case BitAnd, BitOr:
		return calcBoolean(target, op, rhs)
	default:
		return nil, diagnostics.New(diagnostics.UnknownOperatorGiven, string(op))
	}
}

func calcArithmetic(target Scoreboard, op Op, rhs Calcable) ([]string, error) {
	switch target.Type {
	case Int:
		return calcIntTarget(target, op, rhs)
	case Float:
		return calcFloatTarget(target, op, rhs)
	default:
		return nil, diagnostics.New(diagnostics.OperationOccuredBetweenUnsupportedTypes, target.Type.String(), rhs.Type().String())
	}
}

func calcIntTarget(target Scoreboard, op Op, rhs Calcable) ([]string, error) {
	switch rhs.Kind {
	case CalcInt:
		return directOrOperation(target, op, rhs.IntVal)
	case CalcFloat:
		// "encode then as int": scale the float operand by Magnification
		// the same way a float target would, then operate as a plain int.
		return directOrOperation(target, op, floatToScaled(rhs.FloatVal))
	case CalcScoreboard, CalcFunction:
		src := valueScoreboard(rhs)
		switch src.Type {
		case Int:
			return []string{Operation(target, opSymbol(op), src)}, nil
		case Float:
			// Copy rhs down, descale (÷mag), then operate.
			tmp := CalcTemp(Int)
			cmds := []string{Operation(tmp, OpAssign, src)}
			magConst, seed := SeedConstant(Magnification)
			cmds = append(cmds, seed, Operation(tmp, OpDiv, magConst))
			cmds = append(cmds, Operation(target, opSymbol(op), tmp))
			return cmds, nil
		default:
			return nil, diagnostics.New(diagnostics.OperationOccuredBetweenUnsupportedTypes, target.Type.String(), src.Type.String())
		}
	default:
		return nil, diagnostics.New(diagnostics.OperationOccuredBetweenUnsupportedTypes, target.Type.String(), rhs.Type().String())
	}
}

// directOrOperation implements the Int-target/int-operand row: +/- use
// the direct add/remove commands, */%/^ must seed a CONSTANT and use
// operation form.
func directOrOperation(target Scoreboard, op Op, v int64) ([]string, error) {
	switch op {
	case Add:
		return []string{Add(target, v)}, nil
	case Sub:
		return []string{Remove(target, v)}, nil
	case Mul, Div, Mod, Pow:
		c, seed := SeedConstant(v)
		return []string{seed, Operation(target, opSymbol(op), c)}, nil
	default:
		return nil, diagnostics.New(diagnostics.UnknownOperatorGiven, string(op))
	}
}

func calcFloatTarget(target Scoreboard, op Op, rhs Calcable) ([]string, error) {
	switch rhs.Kind {
	case CalcInt:
		return floatVsScaledLiteral(target, op, int64(rhs.IntVal), false)
	case CalcFloat:
		return floatVsScaledLiteral(target, op, floatToScaled(rhs.FloatVal), true)
	case CalcScoreboard, CalcFunction:
		src := valueScoreboard(rhs)
		switch src.Type {
		case Float:
			return floatVsScaledScore(target, op, src)
		case Int:
			// Scale rhs up (×mag) into a temp, then treat as already-scaled.
			tmp := CalcTemp(Float)
			magConst, seed := SeedConstant(Magnification)
			cmds := []string{Operation(tmp, OpAssign, src), seed, Operation(tmp, OpMul, magConst)}
			rest, err := floatVsScaledScore(target, op, tmp)
			if err != nil {
				return nil, err
			}
			return append(cmds, rest...), nil
		default:
			return nil, diagnostics.New(diagnostics.OperationOccuredBetweenUnsupportedTypes, target.Type.String(), src.Type.String())
		}
	default:
		return nil, diagnostics.New(diagnostics.OperationOccuredBetweenUnsupportedTypes, target.Type.String(), rhs.Type().String())
	}
}

// floatVsScaledLiteral handles a Float target against a literal operand.
// When scaled is false the operand is an int literal: +/- add v*mag,
// * and / operate by the raw value with no rescale correction (the
// "Float | int" row). When scaled is true the operand is a float
// literal already converted to its fixed-point integer: +/- add it
// directly, * multiplies then corrects by /mag², / multiplies by mag
// then divides by it.
func floatVsScaledLiteral(target Scoreboard, op Op, v int64, scaled bool) ([]string, error) {
	switch op {
	case Add:
		if scaled {
			return []string{Add(target, v)}, nil
		}
		return []string{Add(target, v*Magnification)}, nil
	case Sub:
		if scaled {
			return []string{Remove(target, v)}, nil
		}
		return []string{Remove(target, v*Magnification)}, nil
	case Mul:
		if !scaled {
			c, seed := SeedConstant(v)
			return []string{seed, Operation(target, OpMul, c)}, nil
		}
		c, seed := SeedConstant(v)
		magSq, seedSq := SeedConstant(Magnification * Magnification)
		return []string{seed, Operation(target, OpMul, c), seedSq, Operation(target, OpDiv, magSq)}, nil
	case Div, Mod, Pow:
		if !scaled {
			c, seed := SeedConstant(v)
			return []string{seed, Operation(target, opSymbol(op), c)}, nil
		}
		magConst, seedMag := SeedConstant(Magnification)
		c, seed := SeedConstant(v)
		return []string{seedMag, Operation(target, OpMul, magConst), seed, Operation(target, opSymbol(op), c)}, nil
	default:
		return nil, diagnostics.New(diagnostics.UnknownOperatorGiven, string(op))
	}
}

// floatVsScaledScore handles a Float target against a source scoreboard
// that already holds a fixed-point-scaled value.
func floatVsScaledScore(target Scoreboard, op Op, src Scoreboard) ([]string, error) {
	switch op {
	case Add, Sub:
		return []string{Operation(target, opSymbol(op), src)}, nil
	case Mul:
		magSq, seed := SeedConstant(Magnification * Magnification)
		return []string{Operation(target, OpMul, src), seed, Operation(target, OpDiv, magSq)}, nil
	case Div:
		magConst, seed := SeedConstant(Magnification)
		return []string{seed, Operation(target, OpMul, magConst), Operation(target, OpDiv, src)}, nil
	case Mod, Pow:
		return []string{Operation(target, opSymbol(op), src)}, nil
	default:
		return nil, diagnostics.New(diagnostics.UnknownOperatorGiven, string(op))
	}
}

// calcBoolean lowers & and | via execute if/unless predicates against 0
// or 1.
func calcBoolean(target Scoreboard, op Op, rhs Calcable) ([]string, error) {
	if target.Type != Bool {
		return nil, diagnostics.New(diagnostics.OperationOccuredBetweenUnsupportedTypes, target.Type.String(), string(op))
	}
	rhsFrag, pre, err := boolMatchFragment(rhs)
	if err != nil {
		return nil, err
	}
	tmp := target
	var cond string
	switch op {
	case BitAnd:
		cond = fmt.Sprintf("execute if score %s %s matches 1 unless %s run scoreboard players set %s %s 0",
			target.Mangled(), Objective, rhsFrag, tmp.Mangled(), Objective)
	case BitOr:
		cond = fmt.Sprintf("execute unless score %s %s matches 1 if %s run scoreboard players set %s %s 1",
			target.Mangled(), Objective, rhsFrag, tmp.Mangled(), Objective)
	}
	cmds := append([]string{}, pre...)
	cmds = append(cmds, cond)
	return cmds, nil
}

// boolMatchFragment returns the "score ... matches 1" style predicate
// fragment for a boolean operand, plus any preamble commands needed to
// materialize it.
func boolMatchFragment(v Calcable) (string, []string, error) {
	switch v.Kind {
	case CalcBool:
		n := 0
		if v.BoolVal {
			n = 1
		}
		return fmt.Sprintf("score %s %s matches %d", CalcTemp(Bool).Mangled(), Objective, n),
			[]string{Set(CalcTemp(Bool), int64(n))}, nil
	case CalcScoreboard, CalcFunction:
		src := valueScoreboard(v)
		if src.Type != Bool {
			return "", nil, diagnostics.New(diagnostics.OperationOccuredBetweenUnsupportedTypes, Bool.String(), src.Type.String())
		}
		return fmt.Sprintf("score %s %s matches 1", src.Mangled(), Objective), nil, nil
	default:
		return "", nil, diagnostics.New(diagnostics.OperationOccuredBetweenUnsupportedTypes, Bool.String(), v.Type().String())
	}
}

// valueScoreboard resolves a Calcable's scoreboard reference, emitting
// the call command is the caller's responsibility for CalcFunction
// values (RPN evaluation does this once, before Calc is invoked).
func valueScoreboard(v Calcable) Scoreboard {
	switch v.Kind {
	case CalcScoreboard:
		return v.ScoreVal
	case CalcFunction:
		return v.FuncVal.ReturnSlot()
	default:
		return Scoreboard{}
	}
}

// Assign lowers "dst = src" for the Boolean, int, and float rows
// implied by the Formula entry point.
func Assign(dst Scoreboard, src Calcable) ([]string, error) {
	switch dst.Type {
	case Bool:
		return assignBool(dst, src)
	case Int:
		return assignInt(dst, src)
	case Float:
		return assignFloat(dst, src)
	default:
		return nil, diagnostics.New(diagnostics.AssignOccuredBetweenUnsupportedTypes, src.Type().String(), dst.Type.String())
	}
}

func assignBool(dst Scoreboard, src Calcable) ([]string, error) {
	switch src.Kind {
	case CalcBool:
		n := int64(0)
		if src.BoolVal {
			n = 1
		}
		return []string{Set(dst, n)}, nil
	case CalcScoreboard, CalcFunction:
		s := valueScoreboard(src)
		if s.Type != Bool {
			return nil, diagnostics.New(diagnostics.AssignOccuredBetweenUnsupportedTypes, s.Type.String(), dst.Type.String())
		}
		return []string{Operation(dst, OpAssign, s)}, nil
	default:
		return nil, diagnostics.New(diagnostics.AssignOccuredBetweenUnsupportedTypes, src.Type().String(), dst.Type.String())
	}
}

func assignInt(dst Scoreboard, src Calcable) ([]string, error) {
	switch src.Kind {
	case CalcInt:
		return []string{Set(dst, src.IntVal)}, nil
	case CalcFloat:
		// Assigning a float literal into an int scoreboard truncates;
		// it does not multiply by the magnification.
		return []string{Set(dst, int64(src.FloatVal))}, nil
	case CalcScoreboard, CalcFunction:
		s := valueScoreboard(src)
		switch s.Type {
		case Int:
			return []string{Operation(dst, OpAssign, s)}, nil
		case Float:
			tmp := CalcTemp(Int)
			magConst, seed := SeedConstant(Magnification)
			return []string{
				Operation(tmp, OpAssign, s),
				seed,
				Operation(tmp, OpDiv, magConst),
				Operation(dst, OpAssign, tmp),
			}, nil
		default:
			return nil, diagnostics.New(diagnostics.AssignOccuredBetweenUnsupportedTypes, s.Type.String(), dst.Type.String())
		}
	default:
		return nil, diagnostics.New(diagnostics.AssignOccuredBetweenUnsupportedTypes, src.Type().String(), dst.Type.String())
	}
}

func assignFloat(dst Scoreboard, src Calcable) ([]string, error) {
	switch src.Kind {
	case CalcInt:
		return []string{Set(dst, src.IntVal*Magnification)}, nil
	case CalcFloat:
		return []string{Set(dst, floatToScaled(src.FloatVal))}, nil
	case CalcScoreboard, CalcFunction:
		s := valueScoreboard(src)
		switch s.Type {
		case Float:
			return []string{Operation(dst, OpAssign, s)}, nil
		case Int:
			tmp := CalcTemp(Float)
			magConst, seed := SeedConstant(Magnification)
			return []string{
				Operation(tmp, OpAssign, s),
				seed,
				Operation(tmp, OpMul, magConst),
				Operation(dst, OpAssign, tmp),
			}, nil
		default:
			return nil, diagnostics.New(diagnostics.AssignOccuredBetweenUnsupportedTypes, s.Type.String(), dst.Type.String())
		}
	default:
		return nil, diagnostics.New(diagnostics.AssignOccuredBetweenUnsupportedTypes, src.Type().String(), dst.Type.String())
	}
}

// CompareOp is one of the six comparison lexemes a guard can use.
type CompareOp string

const (
	Eq CompareOp = "=="
	Ne CompareOp = "!="
	Lt CompareOp = "<"
	Le CompareOp = "<="
	Gt CompareOp = ">"
	Ge CompareOp = ">="
)

// matchesRange turns a CompareOp plus a literal int rhs into the
// "matches" range form `execute if`/`unless` accepts (generalizing
// the `matches 0` zero-test to every relation).
func matchesRange(op CompareOp, v int64) (rng string, want bool) {
	switch op {
	case Eq:
		return fmt.Sprintf("%d", v), true
	case Ne:
		return fmt.Sprintf("%d", v), false
	case Lt:
		return fmt.Sprintf("..%d", v-1), true
	case Le:
		return fmt.Sprintf("..%d", v), true
	case Gt:
		return fmt.Sprintf("%d..", v+1), true
	case Ge:
		return fmt.Sprintf("%d..", v), true
	default:
		return "", true
	}
}

// Compare lowers "lhs <op> rhs" into a preamble of commands plus a
// single execute-able predicate fragment (e.g. "score #x MCPP.var matches
// 0" or "score #x MCPP.var >= #y MCPP.var") and whether that
// fragment should be used with `if` (want=true) or `unless` (want=false,
// e.g. `!=` lowered as the negation of `=`). Differing numeric types are
// reconciled by scaling the int side to float magnification (copied into
// Calc.TEMP first), so int/float comparisons compare like magnitudes.
func Compare(lhs Calcable, op CompareOp, rhs Calcable) (preamble []string, predicate string, want bool, err error) {
	if lhs.Type() == Bool || rhs.Type() == Bool {
		if op != Eq && op != Ne {
			return nil, "", false, diagnostics.New(diagnostics.ComparementOccuredBetweenUnsupportedTypes, lhs.Type().String(), rhs.Type().String())
		}
		return compareBool(lhs, op)
	}

	if !lhs.IsLiteral() && rhs.IsLiteral() && (rhs.Kind == CalcInt || rhs.Kind == CalcFloat) {
		src := valueScoreboard(lhs)
		scaled := literalScaledTo(rhs, src.Type)
		rng, want := matchesRange(op, scaled)
		frag := fmt.Sprintf("score %s %s matches %s", src.Mangled(), Objective, rng)
		return nil, frag, want, nil
	}

	lhsOperand, lhsPre, err := numericOperand(lhs, rhs.Type())
	if err != nil {
		return nil, "", false, err
	}
	rhsOperand, rhsPre, err := numericOperand(rhs, lhs.Type())
	if err != nil {
		return nil, "", false, err
	}
	pre := append(append([]string{}, lhsPre...), rhsPre...)

	if op == Ne {
		frag := fmt.Sprintf("score %s = %s", lhsOperand, rhsOperand)
		return pre, frag, false, nil
	}
	symbol := string(op)
	if op == Eq {
		symbol = "="
	}
	return pre, fmt.Sprintf("score %s %s %s", lhsOperand, symbol, rhsOperand), true, nil
}

// literalScaledTo converts a literal Calcable to the fixed-point scale
// used by a scoreboard of the given Type, so it can be compared against
// a live score via the "matches" predicate form.
func literalScaledTo(v Calcable, targetType Type) int64 {
	if targetType == Float {
		if v.Kind == CalcFloat {
			return floatToScaled(v.FloatVal)
		}
		return v.IntVal * Magnification
	}
	if v.Kind == CalcFloat {
		return int64(v.FloatVal)
	}
	return v.IntVal
}

// numericOperand materializes v as a "<mangled> MCPP.var" operand,
// copying literals into Calc.TEMP (scaled to fixed-point if v is a
// float literal) and passing live scoreboard references through as-is.
// When v is an int and the other side of the comparison is a float, v is
// scaled by Magnification (an int scoreboard via a copy in Calc.TEMP).
func numericOperand(v Calcable, other Type) (operand string, preamble []string, err error) {
	switch v.Kind {
	case CalcInt:
		tmp := CalcTemp(Int)
		n := v.IntVal
		if other == Float {
			n *= Magnification
		}
		return fmt.Sprintf("%s %s", tmp.Mangled(), Objective), []string{Set(tmp, n)}, nil
	case CalcFloat:
		tmp := CalcTemp(Float)
		return fmt.Sprintf("%s %s", tmp.Mangled(), Objective), []string{Set(tmp, floatToScaled(v.FloatVal))}, nil
	case CalcScoreboard, CalcFunction:
		s := valueScoreboard(v)
		if s.Type == Int && other == Float {
			tmp := CalcTemp(Float)
			magConst, seed := SeedConstant(Magnification)
			return fmt.Sprintf("%s %s", tmp.Mangled(), Objective),
				[]string{Operation(tmp, OpAssign, s), seed, Operation(tmp, OpMul, magConst)}, nil
		}
		return fmt.Sprintf("%s %s", s.Mangled(), Objective), nil, nil
	default:
		return "", nil, diagnostics.New(diagnostics.ComparementOccuredBetweenUnsupportedTypes, v.Type().String(), "numeric")
	}
}

// compareBool lowers a ==/!= comparison where one side is a Bool.
func compareBool(lhs Calcable, op CompareOp) ([]string, string, bool, error) {
	frag, pre, err := boolMatchFragment(lhs)
	if err != nil {
		return nil, "", false, err
	}
	return pre, frag, op == Eq, nil
}
