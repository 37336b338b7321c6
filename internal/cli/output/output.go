// Package output renders CLI feedback — status lines, headers, and
// warnings — styled with lipgloss/termenv instead of bare fmt.Println.
package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode selects how the renderer formats output. MCPP is a single-shot batch
// compiler, so only plain text output is meaningful; Mode exists as an
// extension point for future output formats.
type Mode string

const (
	ModeAuto Mode = "auto"
	ModeText Mode = "text"
)

// Renderer writes status lines, headers, and diagnostics to out/err,
// colored when the output stream supports it.
type Renderer struct {
	out    io.Writer
	err    io.Writer
	color  bool
	styles styleSet
}

type styleSet struct {
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	header  lipgloss.Style
	dim     lipgloss.Style
}

// NewRenderer builds a Renderer writing to out/err under mode. Color is
// auto-detected from the output profile of the underlying terminal.
func NewRenderer(out, err io.Writer, mode Mode) *Renderer {
	profile := termenv.EnvColorProfile()
	color := profile != termenv.Ascii

	return &Renderer{
		out:   out,
		err:   err,
		color: color,
		styles: styleSet{
			success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
			warning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
			failure: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
			header:  lipgloss.NewStyle().Bold(true),
			dim:     lipgloss.NewStyle().Faint(true),
		},
	}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Println writes a plain line to stdout.
func (r *Renderer) Println(line string) {
	fmt.Fprintln(r.out, line)
}

// Header writes a section title at the given nesting level.
func (r *Renderer) Header(level int, title string) {
	prefix := ""
	for i := 1; i < level; i++ {
		prefix += "  "
	}
	fmt.Fprintln(r.out, prefix+r.style(r.styles.header, title))
}

// StatusLine reports one created/compiled artifact: a path, a status
// ("success" or "failure"), and an optional detail string.
func (r *Renderer) StatusLine(path, status, detail string) {
	mark := r.style(r.styles.success, "+")
	if status == "failure" {
		mark = r.style(r.styles.failure, "x")
	}
	line := fmt.Sprintf("  %s %s", mark, path)
	if detail != "" {
		line += " " + r.style(r.styles.dim, "("+detail+")")
	}
	fmt.Fprintln(r.out, line)
}

// Success writes a final success message to stdout.
func (r *Renderer) Success(msg string) {
	fmt.Fprintln(r.out, r.style(r.styles.success, msg))
}

// Warning writes a non-fatal diagnostic to stderr. Used for things like an
// empty sentence body or a malformed variable name that the compiler
// accepts but still wants surfaced to a human.
func (r *Renderer) Warning(msg string) {
	fmt.Fprintln(r.err, r.style(r.styles.warning, "warning: "+msg))
}

// Failure writes a fatal diagnostic to stderr.
func (r *Renderer) Failure(msg string) {
	fmt.Fprintln(r.err, r.style(r.styles.failure, "error: "+msg))
}
