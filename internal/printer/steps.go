package printer

import (
	"fmt"
	"io"
	"os"
)

// Indent aligns detail lines under the title of a step.
const Indent = "       "

// CheckMark ends a completed step.
const CheckMark = "✔"

// StepPrinter writes numbered progress lines:
//
//	[1/5] 🔍 Analysing project ...
//	       Found git base path: /src/app
//	       ✔ Analysing project done
type StepPrinter struct {
	w     io.Writer
	total int
}

// NewStepPrinter creates a StepPrinter writing to w (stdout when nil).
func NewStepPrinter(w io.Writer, total int) *StepPrinter {
	if w == nil {
		w = os.Stdout
	}
	return &StepPrinter{w: w, total: total}
}

// Begin prints the header line of step n.
func (p *StepPrinter) Begin(n int, icon, title string) {
	fmt.Fprintf(p.w, "%s %s %s ...\n", Bold(fmt.Sprintf("[%d/%d]", n, p.total)), icon, title)
}

// Detail prints an indented information line.
func (p *StepPrinter) Detail(format string, args ...any) {
	fmt.Fprintf(p.w, "%s%s\n", Indent, fmt.Sprintf(format, args...))
}

// End prints the completion line of a step.
func (p *StepPrinter) End(title string) {
	fmt.Fprintf(p.w, "%s%s %s done\n", Indent, Success(CheckMark), title)
}
