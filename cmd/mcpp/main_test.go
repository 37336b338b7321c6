// Package main provides tests for the mcpp CLI entry point.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mcpplang/mcpp/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	err := cmd.Execute()
	require.NoError(t, err, "version command error")
	assert.Contains(t, buf.String(), "mcpp", "version output should contain 'mcpp'")
}

func TestHelpCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err, "help command error")

	output := buf.String()
	for _, expected := range []string{"build", "new", "init", "version"} {
		assert.Contains(t, output, expected, "help output should contain '%s'", expected)
	}
}

func TestNewThenBuildRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	projectDir := filepath.Join(tmpDir, "roundtrip")

	newCmd := cli.NewRootCmd()
	newBuf := new(bytes.Buffer)
	newCmd.SetOut(newBuf)
	newCmd.SetErr(newBuf)
	newCmd.SetArgs([]string{"new", projectDir})
	require.NoError(t, newCmd.Execute(), "new command error")

	wd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { require.NoError(t, os.Chdir(wd)) }()
	require.NoError(t, os.Chdir(projectDir))

	buildCmd := cli.NewRootCmd()
	buildBuf := new(bytes.Buffer)
	buildCmd.SetOut(buildBuf)
	buildCmd.SetErr(buildBuf)
	buildCmd.SetArgs([]string{"build"})
	require.NoError(t, buildCmd.Execute(), "build command error")

	manifest := filepath.Join(projectDir, "target", filepath.Base(projectDir), "pack.mcmeta")
	_, err = os.Stat(manifest)
	require.NoError(t, err, "expected pack.mcmeta to be written")
}

func TestUnknownCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"unknown-command"})

	err := cmd.Execute()
	assert.Error(t, err, "unknown command should return an error")
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}
