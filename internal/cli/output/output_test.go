package output_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mcpplang/mcpp/internal/cli/output"
	"github.com/stretchr/testify/assert"
)

func TestStatusLineReportsPathAndDetail(t *testing.T) {
	outBuf, errBuf := new(bytes.Buffer), new(bytes.Buffer)
	r := output.NewRenderer(outBuf, errBuf, output.ModeText)

	r.StatusLine("src/main.mcpp", "success", "5 lines")

	assert.Contains(t, outBuf.String(), "src/main.mcpp")
	assert.Contains(t, outBuf.String(), "5 lines")
	assert.Empty(t, errBuf.String())
}

func TestStatusLineFailureGoesToStdoutNotErr(t *testing.T) {
	outBuf, errBuf := new(bytes.Buffer), new(bytes.Buffer)
	r := output.NewRenderer(outBuf, errBuf, output.ModeText)

	r.StatusLine("bad.mcpp", "failure", "")

	assert.Contains(t, outBuf.String(), "bad.mcpp")
	assert.Empty(t, errBuf.String())
}

func TestWarningWritesToStderr(t *testing.T) {
	outBuf, errBuf := new(bytes.Buffer), new(bytes.Buffer)
	r := output.NewRenderer(outBuf, errBuf, output.ModeText)

	r.Warning("empty sentence body")

	assert.Empty(t, outBuf.String())
	assert.True(t, strings.Contains(errBuf.String(), "empty sentence body"))
}

func TestSuccessAndHeaderWriteToStdout(t *testing.T) {
	outBuf, errBuf := new(bytes.Buffer), new(bytes.Buffer)
	r := output.NewRenderer(outBuf, errBuf, output.ModeText)

	r.Header(1, "Build")
	r.Success("done")

	assert.Contains(t, outBuf.String(), "Build")
	assert.Contains(t, outBuf.String(), "done")
	assert.Empty(t, errBuf.String())
}
