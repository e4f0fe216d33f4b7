package ui

import (
	"cptask-tools/internal/utils"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes the report blocks of a run: banner, numbered steps,
// status lines and the final summary
type Printer struct {
	w      io.Writer
	styles Styles
}

// NewPrinter returns a printer writing to w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:      w,
		styles: NewStyles(lipgloss.NewRenderer(w)),
	}
}

func (p *Printer) println(s string) {
	fmt.Fprintln(p.w, s)
}

// Blank prints an empty line
func (p *Printer) Blank() {
	p.println("")
}

// Banner prints the run title between heavy separators
func (p *Printer) Banner(title string) {
	p.println(p.styles.Muted.Render(SeparatorHeavy))
	p.println(p.styles.Title.Render(title))
	p.println(p.styles.Muted.Render(SeparatorHeavy))
}

// Step prints a numbered step header
func (p *Printer) Step(n int, format string, args ...interface{}) {
	p.println("")
	p.println(p.styles.Accent.Render(fmt.Sprintf("Step %d:", n)) + " " + fmt.Sprintf(format, args...))
}

// Success prints a line with the pass marker
func (p *Printer) Success(format string, args ...interface{}) {
	p.println(p.styles.Pass.Render(IconPass) + " " + fmt.Sprintf(format, args...))
}

// Warn prints a line with the warning marker
func (p *Printer) Warn(format string, args ...interface{}) {
	p.println(p.styles.Warn.Render(IconWarn) + "  " + fmt.Sprintf(format, args...))
}

// Fail prints a line with the failure marker
func (p *Printer) Fail(format string, args ...interface{}) {
	p.println(p.styles.Fail.Render(IconFail) + " " + fmt.Sprintf(format, args...))
}

// Info prints an indented detail line
func (p *Printer) Info(format string, args ...interface{}) {
	p.println("  " + fmt.Sprintf(format, args...))
}

// Field prints an indented "label: value" line
func (p *Printer) Field(label string, value interface{}) {
	p.println("  " + p.styles.Label.Render(label+":") + " " + fmt.Sprint(value))
}

// Section prints a blank line and a section title
func (p *Printer) Section(title string) {
	p.println("")
	p.println(p.styles.Title.Render(title + ":"))
}

// Elapsed prints the total execution time of the run
func (p *Printer) Elapsed(d time.Duration) {
	p.println("")
	p.println(fmt.Sprintf("Total execution time: %s seconds", utils.FormatSeconds(d)))
}

// Result prints the closing status block
func (p *Printer) Result(ok bool, message string) {
	p.println("")
	p.println(p.styles.Muted.Render(SeparatorHeavy))
	if ok {
		p.Success("%s", message)
	} else {
		p.Fail("%s", message)
	}
	p.println(p.styles.Muted.Render(SeparatorHeavy))
}
