// Package console renders styled text for the demo drivers and the orchestrator.
//
// Styles are bound to the destination writer, so colors are emitted only when
// the writer is a terminal. Buffers and pipes receive plain text.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const ruleWidth = 46

// Printer writes styled lines to a writer.
type Printer struct {
	w       io.Writer
	banner  lipgloss.Style
	section lipgloss.Style
	accent  lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		banner:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		section: r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		accent:  r.NewStyle().Foreground(lipgloss.Color("220")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("245")),
		success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
	}
}

// Banner prints a title followed by a heavy rule.
func (p *Printer) Banner(title string) {
	fmt.Fprintln(p.w, p.banner.Render(title))
	fmt.Fprintln(p.w, p.muted.Render(strings.Repeat("═", ruleWidth)))
}

// Section prints a blank line, a section title and a light rule.
func (p *Printer) Section(title string) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.section.Render("【"+title+"】"))
	fmt.Fprintln(p.w, p.muted.Render(strings.Repeat("─", ruleWidth-9)))
}

// Line prints a formatted line.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Blank prints an empty line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.w)
}

// Accent renders s in the accent style.
func (p *Printer) Accent(s string) string {
	return p.accent.Render(s)
}

// Muted renders s in the muted style.
func (p *Printer) Muted(s string) string {
	return p.muted.Render(s)
}

// Success prints a highlighted closing line.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.w, p.success.Render(fmt.Sprintf(format, args...)))
}
