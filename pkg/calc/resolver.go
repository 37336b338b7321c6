package calc

import "github.com/mcpplang/mcpp/pkg/scoreboard"

// VariableResolver looks up the scoreboard backing a variable name
// visible at the call site of an evaluated formula. Defined here, rather
// than imported from pkg/mcfunction, so calc never depends on the
// package that will eventually implement it (the same import-cycle
// avoidance used by scoreboard.CallTarget).
type VariableResolver interface {
	ResolveVariable(name string) (scoreboard.Scoreboard, bool)
}

// FunctionResolver looks up the callable backing a function name used in
// a FUNCCALL token ("name(...)").
type FunctionResolver interface {
	ResolveFunction(name string) (scoreboard.CallTarget, bool)
}
