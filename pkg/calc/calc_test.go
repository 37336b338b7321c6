package calc_test

import (
	"testing"

	"github.com/mcpplang/mcpp/pkg/calc"
	"github.com/mcpplang/mcpp/pkg/scoreboard"
	"github.com/mcpplang/mcpp/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	vars  map[string]scoreboard.Scoreboard
	funcs map[string]scoreboard.CallTarget
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{vars: map[string]scoreboard.Scoreboard{}, funcs: map[string]scoreboard.CallTarget{}}
}

func (f *fakeResolver) ResolveVariable(name string) (scoreboard.Scoreboard, bool) {
	v, ok := f.vars[name]
	return v, ok
}

func (f *fakeResolver) ResolveFunction(name string) (scoreboard.CallTarget, bool) {
	v, ok := f.funcs[name]
	return v, ok
}

func TestTokenizeRecognizesLiteralsAndOperators(t *testing.T) {
	toks, err := calc.Tokenize("1 + 2.5 * x")
	require.NoError(t, err)
	require.Len(t, toks, 5)
	assert.Equal(t, token.INT, toks[0].Type)
	assert.Equal(t, token.PLUS, toks[1].Type)
	assert.Equal(t, token.FLOAT, toks[2].Type)
	assert.Equal(t, token.STAR, toks[3].Type)
	assert.Equal(t, token.IDENT, toks[4].Type)
}

func TestTokenizeRecognizesLeadingDotFloat(t *testing.T) {
	toks, err := calc.Tokenize(".5 * 2")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, token.FLOAT, toks[0].Type)
	assert.Equal(t, ".5", toks[0].Literal)
	assert.Equal(t, token.STAR, toks[1].Type)
	assert.Equal(t, token.INT, toks[2].Type)
}

func TestTokenizeRecognizesFunctionCall(t *testing.T) {
	toks, err := calc.Tokenize("foo() + 1")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, token.FUNCCALL, toks[0].Type)
	assert.Equal(t, "foo()", toks[0].Literal)
}

func TestToRPNReordersByPrecedence(t *testing.T) {
	toks, err := calc.Tokenize("1 + 2 * 3")
	require.NoError(t, err)
	rpn, err := calc.ToRPN(toks)
	require.NoError(t, err)
	literals := make([]string, len(rpn))
	for i, tok := range rpn {
		literals[i] = tok.Literal
	}
	assert.Equal(t, []string{"1", "2", "3", "*", "+"}, literals)
}

func TestToRPNHandlesParentheses(t *testing.T) {
	toks, err := calc.Tokenize("(1 + 2) * 3")
	require.NoError(t, err)
	rpn, err := calc.ToRPN(toks)
	require.NoError(t, err)
	literals := make([]string, len(rpn))
	for i, tok := range rpn {
		literals[i] = tok.Literal
	}
	assert.Equal(t, []string{"1", "2", "+", "3", "*"}, literals)
}

func TestToRPNUnbalancedBracketsErrors(t *testing.T) {
	toks, err := calc.Tokenize("(1 + 2")
	require.NoError(t, err)
	_, err = calc.ToRPN(toks)
	require.Error(t, err)
}

func TestFormulaLowersIntAddition(t *testing.T) {
	r := newFakeResolver()
	target := scoreboard.Scoreboard{Name: "x", Scope: []string{"main"}, Type: scoreboard.Int}
	cmds, err := calc.Formula(target, "1 + 2", r, r)
	require.NoError(t, err)
	require.NotEmpty(t, cmds)
	assert.Equal(t, "scoreboard players operation #main.x MCPP.var = #Calc.TEMP MCPP.var", cmds[len(cmds)-1])
}

func TestFormulaResolvesVariableReference(t *testing.T) {
	r := newFakeResolver()
	r.vars["y"] = scoreboard.Scoreboard{Name: "y", Scope: []string{"main"}, Type: scoreboard.Int}
	target := scoreboard.Scoreboard{Name: "x", Scope: []string{"main"}, Type: scoreboard.Int}
	cmds, err := calc.Formula(target, "y + 1", r, r)
	require.NoError(t, err)
	require.NotEmpty(t, cmds)
}

func TestFormulaUndefinedVariableErrors(t *testing.T) {
	r := newFakeResolver()
	target := scoreboard.Scoreboard{Name: "x", Scope: []string{"main"}, Type: scoreboard.Int}
	_, err := calc.Formula(target, "missing + 1", r, r)
	require.Error(t, err)
}

func TestSplitAssignmentParsesTypeAnnotation(t *testing.T) {
	name, typ, rhs, err := calc.SplitAssignment("x:int = 1 + 2")
	require.NoError(t, err)
	assert.Equal(t, "x", name)
	assert.Equal(t, "int", typ)
	assert.Equal(t, "1 + 2", rhs)
}

func TestSplitAssignmentWithoutAnnotation(t *testing.T) {
	name, typ, rhs, err := calc.SplitAssignment("x = 1")
	require.NoError(t, err)
	assert.Equal(t, "x", name)
	assert.Empty(t, typ)
	assert.Equal(t, "1", rhs)
}

func TestSplitAssignmentIgnoresComparisonEquals(t *testing.T) {
	_, _, rhs, err := calc.SplitAssignment("x = y == 1")
	require.NoError(t, err)
	assert.Equal(t, "y == 1", rhs)
}

func TestInferTypeFromIntLiteral(t *testing.T) {
	r := newFakeResolver()
	typ, err := calc.InferType("1 + 2", r)
	require.NoError(t, err)
	assert.Equal(t, scoreboard.Int, typ)
}

func TestInferTypeFromFloatLiteral(t *testing.T) {
	r := newFakeResolver()
	typ, err := calc.InferType("1.5 + 2", r)
	require.NoError(t, err)
	assert.Equal(t, scoreboard.Float, typ)
}

func TestInferTypeFromVariable(t *testing.T) {
	r := newFakeResolver()
	r.vars["y"] = scoreboard.Scoreboard{Name: "y", Scope: []string{"main"}, Type: scoreboard.Float}
	typ, err := calc.InferType("y + 1", r)
	require.NoError(t, err)
	assert.Equal(t, scoreboard.Float, typ)
}

func TestLowerGuardWithComparisonOperator(t *testing.T) {
	r := newFakeResolver()
	r.vars["x"] = scoreboard.Scoreboard{Name: "x", Scope: []string{"main"}, Type: scoreboard.Int}
	g, err := calc.LowerGuard("guard0", "x >= 5", r, r)
	require.NoError(t, err)
	assert.Equal(t, "score #main.x MCPP.var matches 5..", g.Predicate)
	assert.True(t, g.Want)
}

func TestLowerGuardWithoutComparisonFallsBackToHolder(t *testing.T) {
	r := newFakeResolver()
	r.vars["x"] = scoreboard.Scoreboard{Name: "x", Scope: []string{"main"}, Type: scoreboard.Int}
	g, err := calc.LowerGuard("guard1", "x", r, r)
	require.NoError(t, err)
	assert.Contains(t, g.Predicate, "matches 0")
	assert.False(t, g.Want)
	assert.NotEmpty(t, g.Preamble)
}
