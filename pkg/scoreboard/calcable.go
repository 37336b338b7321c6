package scoreboard

// CallTarget is the minimal view of a compiled function a Calcable needs
// in order to be used as a value: its call command and its return slot.
// pkg/mcfunction.MCFunction implements this; scoreboard never imports
// mcfunction, avoiding an import cycle. A called function used as a
// value is treated as its return slot.
type CallTarget interface {
	CallCommand() string
	ReturnSlot() Scoreboard
}

// CalcableKind discriminates the Calcable tagged union.
type CalcableKind int

const (
	CalcInt CalcableKind = iota
	CalcFloat
	CalcBool
	CalcScoreboard
	CalcFunction
)

// Calcable is a tagged-union operand value flowing through the
// expression evaluator's stack.
type Calcable struct {
	Kind       CalcableKind
	IntVal     int64
	FloatVal   float64
	BoolVal    bool
	ScoreVal   Scoreboard
	FuncVal    CallTarget
}

func IntLiteral(v int64) Calcable       { return Calcable{Kind: CalcInt, IntVal: v} }
func FloatLiteral(v float64) Calcable   { return Calcable{Kind: CalcFloat, FloatVal: v} }
func BoolLiteral(v bool) Calcable       { return Calcable{Kind: CalcBool, BoolVal: v} }
func ScoreboardRef(s Scoreboard) Calcable { return Calcable{Kind: CalcScoreboard, ScoreVal: s} }
func FunctionRef(f CallTarget) Calcable { return Calcable{Kind: CalcFunction, FuncVal: f} }

// Type returns the Calcable's value type, consulting the referenced
// Scoreboard or MCFunction return slot where the kind itself doesn't fix
// the type.
func (c Calcable) Type() Type {
	switch c.Kind {
	case CalcInt:
		return Int
	case CalcFloat:
		return Float
	case CalcBool:
		return Bool
	case CalcScoreboard:
		return c.ScoreVal.Type
	case CalcFunction:
		return c.FuncVal.ReturnSlot().Type
	default:
		return None
	}
}

// IsLiteral reports whether c is an int, float, or bool literal rather
// than a reference to a scoreboard or function.
func (c Calcable) IsLiteral() bool {
	switch c.Kind {
	case CalcInt, CalcFloat, CalcBool:
		return true
	default:
		return false
	}
}
