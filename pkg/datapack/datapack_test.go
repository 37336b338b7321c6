package datapack_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mcpplang/mcpp/pkg/datapack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFunction struct {
	name     string
	scope    []string
	body     string
	children []*fakeFunction
}

func (f *fakeFunction) FunctionName() string  { return f.name }
func (f *fakeFunction) FunctionScope() []string { return f.scope }
func (f *fakeFunction) BodyText() string      { return f.body }
func (f *fakeFunction) ChildFunctions() []datapack.Function {
	out := make([]datapack.Function, len(f.children))
	for i, c := range f.children {
		out[i] = c
	}
	return out
}

func TestWriteCreatesManifestAndFunctionFiles(t *testing.T) {
	dir := t.TempDir()
	root := &fakeFunction{
		name: "main",
		body: "scoreboard players set #a MCPP.var 1",
		children: []*fakeFunction{
			{name: "abc123", body: "scoreboard players set #b MCPP.var 2"},
		},
	}

	require.NoError(t, datapack.Write(dir, "myproject", "a test pack", root))

	packRoot := filepath.Join(dir, "myproject")
	manifestBytes, err := os.ReadFile(filepath.Join(packRoot, "pack.mcmeta"))
	require.NoError(t, err)

	var manifest datapack.Manifest
	require.NoError(t, json.Unmarshal(manifestBytes, &manifest))
	assert.Equal(t, "61", manifest.Pack.PackFormat)
	assert.Equal(t, "a test pack", manifest.Pack.Description)
	assert.Contains(t, string(manifestBytes), `"pack_format": "61"`)

	functionDir := filepath.Join(packRoot, "data", "myproject", "function")
	mainBody, err := os.ReadFile(filepath.Join(functionDir, "main.mcfunction"))
	require.NoError(t, err)
	assert.Contains(t, string(mainBody), "scoreboard players set #a MCPP.var 1")

	childBody, err := os.ReadFile(filepath.Join(functionDir, "abc123.mcfunction"))
	require.NoError(t, err)
	assert.Contains(t, string(childBody), "scoreboard players set #b MCPP.var 2")
}

func TestWriteNestsScopedFunctions(t *testing.T) {
	dir := t.TempDir()
	root := &fakeFunction{
		name: "main",
		body: "",
		children: []*fakeFunction{
			{name: "nested", scope: []string{"outerBlockName"}, body: "scoreboard players set #c MCPP.var 3"},
		},
	}

	require.NoError(t, datapack.Write(dir, "proj", "d", root))

	nestedPath := filepath.Join(dir, "proj", "data", "proj", "function", "outerBlockName", "nested.mcfunction")
	body, err := os.ReadFile(nestedPath)
	require.NoError(t, err)
	assert.Contains(t, string(body), "#c")
}

func TestWriteDestroysPreexistingTreeContents(t *testing.T) {
	dir := t.TempDir()
	root := &fakeFunction{name: "main", body: "# v1"}
	require.NoError(t, datapack.Write(dir, "proj", "d", root))

	stalePath := filepath.Join(dir, "proj", "data", "proj", "function", "stale.mcfunction")
	require.NoError(t, os.WriteFile(stalePath, []byte("# leftover"), 0o640))

	root2 := &fakeFunction{name: "main", body: "# v2"}
	require.NoError(t, datapack.Write(dir, "proj", "d", root2))

	_, err := os.Stat(stalePath)
	assert.True(t, os.IsNotExist(err), "stale function file from a previous build must be removed")

	body, err := os.ReadFile(filepath.Join(dir, "proj", "data", "proj", "function", "main.mcfunction"))
	require.NoError(t, err)
	assert.Contains(t, string(body), "# v2")
}

func TestWriteTreeHasOneFilePerFunctionPlusManifest(t *testing.T) {
	dir := t.TempDir()
	root := &fakeFunction{
		name: "main",
		children: []*fakeFunction{
			{name: "a"},
			{name: "b", children: []*fakeFunction{{name: "c"}}},
		},
	}
	require.NoError(t, datapack.Write(dir, "proj", "d", root))

	var mcfunctionFiles []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		require.NoError(t, err)
		if !info.IsDir() && filepath.Ext(path) == ".mcfunction" {
			mcfunctionFiles = append(mcfunctionFiles, path)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, mcfunctionFiles, 4)
}
