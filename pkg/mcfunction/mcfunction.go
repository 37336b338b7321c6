// Package mcfunction implements the block compiler: it walks a parsed
// sentence tree and lowers each block into a compiled MCFunction, with
// its own scoreboard symbol table and call site.
package mcfunction

import (
	"fmt"
	"strings"

	"github.com/mcpplang/mcpp/pkg/datapack"
	"github.com/mcpplang/mcpp/pkg/scoreboard"
)

// MCFunction is one compiled callable unit: a body of scoreboard commands,
// its location in the datapack's function tree, and the children
// produced by any nested sentences in its body.
type MCFunction struct {
	Name       string
	Body       []string
	Namespace  string
	Scope      []string
	Children   []*MCFunction
	CallSite   []string
	returnSlot scoreboard.Scoreboard
}

// CallCommand returns the plain "function <namespace>:<path>" command
// used to invoke this function, with no conditional wrapping. This is
// what a Calcable function reference emits when the function is used as
// a value inside an expression — call sites that must be guarded (an
// `if` sentence's three-command form) use CallSite instead.
func (f *MCFunction) CallCommand() string {
	return fmt.Sprintf("function %s:%s", f.Namespace, f.path())
}

// ReturnSlot is the scoreboard an expression reads when this function is
// referenced as a value: "TEMP.RETURN_VALUE.<fn-name>", type None by
// default since nothing in this language writes to it — MCPP has no
// return statements.
func (f *MCFunction) ReturnSlot() scoreboard.Scoreboard {
	return f.returnSlot
}

func (f *MCFunction) path() string {
	if len(f.Scope) == 0 {
		return f.Name
	}
	return strings.Join(f.Scope, "/") + "/" + f.Name
}

// BodyText joins Body into the file contents written by pkg/datapack.
func (f *MCFunction) BodyText() string {
	return strings.Join(f.Body, "\n")
}

// FunctionName implements datapack.Function.
func (f *MCFunction) FunctionName() string { return f.Name }

// FunctionScope implements datapack.Function.
func (f *MCFunction) FunctionScope() []string { return f.Scope }

// ChildFunctions implements datapack.Function.
func (f *MCFunction) ChildFunctions() []datapack.Function {
	children := make([]datapack.Function, len(f.Children))
	for i, c := range f.Children {
		children[i] = c
	}
	return children
}
