package mcfunction

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"

	"github.com/mcpplang/mcpp/pkg/calc"
	"github.com/mcpplang/mcpp/pkg/scoreboard"
	"github.com/mcpplang/mcpp/pkg/sentence"
)

// identifierPattern is the variable-name shape compileFormula warns
// about deviations from, without rejecting them outright.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_]+$`)

// CompileTask is the compilation context for one scope level. It
// doubles as a calc.VariableResolver/calc.FunctionResolver for the
// formulas compiled within it.
type CompileTask struct {
	Namespace string
	Scope     []string

	InheritedVariables map[string]scoreboard.Scoreboard
	InheritedFunctions map[string]scoreboard.CallTarget
	LocalVariables     map[string]scoreboard.Scoreboard
	LocalFunctions     map[string]*MCFunction

	// Warnings accumulates non-fatal notices for the CLI to surface, in
	// source order.
	Warnings []string

	Logger *slog.Logger
}

// NewRootTask returns the CompileTask for a datapack's implicit main
// block: empty scope, empty symbol maps.
func NewRootTask(namespace string, logger *slog.Logger) *CompileTask {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompileTask{
		Namespace:          namespace,
		InheritedVariables: map[string]scoreboard.Scoreboard{},
		InheritedFunctions: map[string]scoreboard.CallTarget{},
		LocalVariables:     map[string]scoreboard.Scoreboard{},
		LocalFunctions:     map[string]*MCFunction{},
		Logger:             logger,
	}
}

// ResolveVariable implements calc.VariableResolver. Local symbols are
// checked before inherited ones, so a variable introduced in this block
// shadows one of the same name from an enclosing block.
func (t *CompileTask) ResolveVariable(name string) (scoreboard.Scoreboard, bool) {
	if v, ok := t.LocalVariables[name]; ok {
		return v, true
	}
	v, ok := t.InheritedVariables[name]
	return v, ok
}

// ResolveFunction implements calc.FunctionResolver, with the same
// local-before-inherited precedence as ResolveVariable.
func (t *CompileTask) ResolveFunction(name string) (scoreboard.CallTarget, bool) {
	if v, ok := t.LocalFunctions[name]; ok {
		return v, true
	}
	v, ok := t.InheritedFunctions[name]
	return v, ok
}

// descend clones t into the CompileTask for a directly nested sentence:
// inherited = t.inherited ⊕ t.local, local starts empty, scope is
// unchanged (nested blocks share their parent's directory).
func (t *CompileTask) descend() *CompileTask {
	inheritedVars := make(map[string]scoreboard.Scoreboard, len(t.InheritedVariables)+len(t.LocalVariables))
	for k, v := range t.InheritedVariables {
		inheritedVars[k] = v
	}
	for k, v := range t.LocalVariables {
		inheritedVars[k] = v
	}
	inheritedFuncs := make(map[string]scoreboard.CallTarget, len(t.InheritedFunctions)+len(t.LocalFunctions))
	for k, v := range t.InheritedFunctions {
		inheritedFuncs[k] = v
	}
	for k, v := range t.LocalFunctions {
		inheritedFuncs[k] = v
	}
	return &CompileTask{
		Namespace:          t.Namespace,
		Scope:              append([]string{}, t.Scope...),
		InheritedVariables: inheritedVars,
		InheritedFunctions: inheritedFuncs,
		LocalVariables:     map[string]scoreboard.Scoreboard{},
		LocalFunctions:     map[string]*MCFunction{},
		Logger:             t.Logger,
	}
}

func (t *CompileTask) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	t.Warnings = append(t.Warnings, msg)
	t.Logger.Warn(msg)
}

// Compile lowers one parsed sentence into an MCFunction within t. It
// never returns an error for line-level failures — those are recorded
// as skip comments in the body per the propagation policy — and only
// surfaces an error for conditions the compiler cannot recover from
// locally.
func (t *CompileTask) Compile(s *sentence.Sentence) (*MCFunction, error) {
	var body []string

	if len(s.Lines) == 0 {
		t.warn("sentence %q has an empty body", s.Name)
	}

	for _, line := range s.Lines {
		switch line.Kind {
		case sentence.LineComment:
			body = append(body, line.Text)
		case sentence.LineParseError:
			body = append(body, skipComment(line.Text))
		case sentence.LineFormula:
			cmds, err := t.compileFormula(line.Text)
			if err != nil {
				t.warn("skipped formula %q: %v", line.Text, err)
				body = append(body, skipComment(err.Error()))
				continue
			}
			body = append(body, cmds...)
		case sentence.LineSentence:
			child := t.descend()
			fn, err := child.Compile(line.Sentence)
			t.Warnings = append(t.Warnings, child.Warnings...)
			if err != nil {
				body = append(body, skipComment(err.Error()))
				continue
			}
			t.LocalFunctions[fn.Name] = fn
			body = append(body, fn.CallSite...)
		}
	}

	if len(t.LocalVariables) > 0 {
		body = append(body, "")
		for _, name := range sortedVarNames(t.LocalVariables) {
			body = append(body, scoreboard.Reset(t.LocalVariables[name]))
		}
	}

	fn := &MCFunction{
		Name:       s.Name,
		Body:       body,
		Namespace:  t.Namespace,
		Scope:      append([]string{}, t.Scope...),
		Children:   childList(t.LocalFunctions),
		returnSlot: scoreboard.ReturnSlot(s.Name),
	}
	fn.CallSite = t.buildCallSite(s, fn)
	return fn, nil
}

// compileFormula lowers one Formula line: an assignment `name[:type] =
// rhs` defines or updates a local variable; anything else is evaluated
// for its side effects alone.
func (t *CompileTask) compileFormula(text string) ([]string, error) {
	name, typeAnnotation, rhs, err := calc.SplitAssignment(text)
	if err != nil {
		toks, terr := calc.Tokenize(text)
		if terr != nil {
			return nil, terr
		}
		rpn, terr := calc.ToRPN(toks)
		if terr != nil {
			return nil, terr
		}
		result, terr := calc.Evaluate(rpn, t, t)
		if terr != nil {
			return nil, terr
		}
		return append([]string{"# " + text}, result.Commands...), nil
	}

	if !identifierPattern.MatchString(name) {
		t.warn("variable name %q does not match [A-Za-z_]+", name)
	}

	existing, hasExisting := t.ResolveVariable(name)
	var typ scoreboard.Type
	switch {
	case typeAnnotation != "":
		typ, err = calc.ParseType(typeAnnotation)
	case hasExisting:
		typ = existing.Type
	default:
		typ, err = calc.InferType(rhs, t)
	}
	if err != nil {
		return nil, err
	}

	target := scoreboard.Scoreboard{Name: name, Scope: t.Scope, Type: typ}
	if hasExisting && existing.Type == typ {
		target = existing
	}

	cmds, err := calc.Formula(target, rhs, t, t)
	if err != nil {
		return nil, err
	}
	t.LocalVariables[name] = target
	return append([]string{"# " + text}, cmds...), nil
}

// buildCallSite computes the command(s) a parent block splices in to
// invoke fn: a plain function call, or for an `if` sentence, the guard
// preamble plus a conditional call plus a reset of any condition
// holder the guard allocated.
func (t *CompileTask) buildCallSite(s *sentence.Sentence, fn *MCFunction) []string {
	if s.Kind != sentence.If {
		return []string{fn.CallCommand()}
	}

	guard, err := calc.LowerGuard(fn.Name, s.Guard(), t, t)
	if err != nil {
		return []string{skipComment(err.Error())}
	}

	verb := "if"
	if !guard.Want {
		verb = "unless"
	}
	exec := fmt.Sprintf("execute %s %s run %s", verb, guard.Predicate, fn.CallCommand())

	site := append(append([]string{}, guard.Preamble...), exec)
	if guard.Holder != nil {
		site = append(site, scoreboard.Reset(*guard.Holder))
	}
	return site
}

func skipComment(msg string) string {
	return fmt.Sprintf("### %s ###", msg)
}

func sortedVarNames(m map[string]scoreboard.Scoreboard) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func childList(m map[string]*MCFunction) []*MCFunction {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	children := make([]*MCFunction, 0, len(m))
	for _, name := range names {
		children = append(children, m[name])
	}
	return children
}
