package mcfunction_test

import (
	"strings"
	"testing"

	"github.com/mcpplang/mcpp/pkg/mcfunction"
	"github.com/mcpplang/mcpp/pkg/sentence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileSource(t *testing.T, src string) *mcfunction.MCFunction {
	t.Helper()
	tree, err := sentence.Parse(src)
	require.NoError(t, err)
	task := mcfunction.NewRootTask("myproject", nil)
	fn, err := task.Compile(tree)
	require.NoError(t, err)
	return fn
}

func TestCompileArithmeticAssignment(t *testing.T) {
	fn := compileSource(t, "{ a = 10 * 5 + 7 }")
	body := fn.BodyText()
	assert.True(t, strings.HasPrefix(body, "# a = 10 * 5 + 7"))
	assert.Contains(t, body, "scoreboard players set #CONSTANT.5 MCPP.var 5")
	assert.Contains(t, body, "scoreboard players operation #Calc.TEMP MCPP.var *= #CONSTANT.5 MCPP.var")
	assert.Contains(t, body, "scoreboard players add #Calc.TEMP MCPP.var 7")
	assert.Contains(t, body, "scoreboard players operation #a MCPP.var = #Calc.TEMP MCPP.var")
	assert.True(t, strings.HasSuffix(body, "scoreboard players reset #a MCPP.var"))
}

func TestCompileFloatAssignmentScalesLiterals(t *testing.T) {
	fn := compileSource(t, "{ d:float = (0.03 * 0.2) + 0.05 }")
	body := fn.BodyText()
	assert.Contains(t, body, "scoreboard players set #CONSTANT.1000000 MCPP.var 1000000")
	assert.Contains(t, body, "scoreboard players add #Calc.TEMP MCPP.var 50")
	assert.Contains(t, body, "scoreboard players operation #d MCPP.var = #Calc.TEMP MCPP.var")
}

func TestCompileNestedIfProducesChildAndCallSite(t *testing.T) {
	fn := compileSource(t, "{ if (1 - 1) * 0 { a = 1 } }")
	require.Len(t, fn.Children, 1)
	child := fn.Children[0]

	body := fn.BodyText()
	assert.Contains(t, body, "execute unless score #TEMP.EVAL_CONDITION."+child.Name+" MCPP.var matches 0 run "+child.CallCommand())
	assert.Contains(t, body, "scoreboard players reset #TEMP.EVAL_CONDITION."+child.Name+" MCPP.var")

	childBody := child.BodyText()
	assert.Contains(t, childBody, "scoreboard players operation #a MCPP.var = #Calc.TEMP MCPP.var")
	assert.Contains(t, childBody, "scoreboard players reset #a MCPP.var")
}

func TestCompileNamedFunctionKeepsItsName(t *testing.T) {
	fn := compileSource(t, "{ fn double { a = 2; } double(); }")
	require.Len(t, fn.Children, 1)
	assert.Equal(t, "double", fn.Children[0].Name)
	assert.Contains(t, fn.BodyText(), fn.Children[0].CallCommand())
}

func TestCompileUndefinedFunctionCallEmitsSkipComment(t *testing.T) {
	fn := compileSource(t, "{ undefined_function() + 1; }")
	body := fn.BodyText()
	assert.Contains(t, body, "###")
	assert.Contains(t, body, "undefined_function")
}

func TestCompileScopeVisibilityAcrossNestedBlocks(t *testing.T) {
	fn := compileSource(t, "{ x:int = 1; if x { y = x + 1; } }")
	require.Len(t, fn.Children, 1)
	childBody := fn.Children[0].BodyText()
	assert.Contains(t, childBody, "#x")
	assert.NotContains(t, fn.BodyText(), "#y")
}

func TestCompilePlainExpressionLineHasNoAssignment(t *testing.T) {
	fn := compileSource(t, "{ b:int = 5; b + 1; }")
	body := fn.BodyText()
	assert.Contains(t, body, "# b + 1")
	_, expressionLines, _ := strings.Cut(body, "# b + 1")
	assert.NotContains(t, expressionLines, "operation #b MCPP.var = #Calc.TEMP")
}

func TestCompileLocalResetCountMatchesVariableCount(t *testing.T) {
	fn := compileSource(t, "{ a = 1; b = 2; c = 3; }")
	body := fn.Body
	resets := 0
	for _, line := range body {
		if strings.Contains(line, "scoreboard players reset") {
			resets++
		}
	}
	assert.Equal(t, 3, resets)
}

func TestCompileNestedParseFailureYieldsSkipComment(t *testing.T) {
	fn := compileSource(t, "{ if x { fn { a = 1; } } }")
	require.Len(t, fn.Children, 1)
	assert.Contains(t, fn.Children[0].BodyText(), "###")
}
