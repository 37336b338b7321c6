package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommandScaffoldsProject(t *testing.T) {
	dir := t.TempDir()
	projectDir := filepath.Join(dir, "my-project")

	cmd := NewNewCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{projectDir})

	require.NoError(t, cmd.Execute())

	configBytes, err := os.ReadFile(filepath.Join(projectDir, "MCPP.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(configBytes), `project_name = "my-project"`)

	_, err = os.Stat(filepath.Join(projectDir, "src", "main.mcpp"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(projectDir, ".gitignore"))
	require.NoError(t, err)
}

func TestNewCommandRefusesToOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()

	cmd := NewNewCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{dir})
	require.NoError(t, cmd.Execute())

	cmd2 := NewNewCommand()
	cmd2.SetOut(buf)
	cmd2.SetErr(buf)
	cmd2.SetArgs([]string{dir})
	assert.Error(t, cmd2.Execute())
}

func TestNewCommandForceOverwrites(t *testing.T) {
	dir := t.TempDir()

	cmd := NewNewCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{dir})
	require.NoError(t, cmd.Execute())

	cmd2 := NewNewCommand()
	cmd2.SetOut(buf)
	cmd2.SetErr(buf)
	cmd2.SetArgs([]string{dir, "--force"})
	require.NoError(t, cmd2.Execute())
}

func TestInitCommandUsesDirectoryNameAsProjectName(t *testing.T) {
	dir := t.TempDir()
	projectDir := filepath.Join(dir, "cool-project")
	require.NoError(t, os.MkdirAll(projectDir, 0750))

	wd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { require.NoError(t, os.Chdir(wd)) }()
	require.NoError(t, os.Chdir(projectDir))

	cmd := NewInitCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	require.NoError(t, cmd.Execute())

	configBytes, err := os.ReadFile("MCPP.toml")
	require.NoError(t, err)
	assert.Contains(t, string(configBytes), `project_name = "cool-project"`)
}
