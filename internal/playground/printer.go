package playground

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/xinjiayu/rxlite"
)

// Printer writes labelled example output. Colors are optional so that the
// output of an example can be compared verbatim in tests.
type Printer struct {
	w     io.Writer
	clock *rxlite.TestScheduler

	titleColor *color.Color
	labelColor *color.Color
	nextColor  *color.Color
	errorColor *color.Color
	doneColor  *color.Color
	infoColor  *color.Color
}

// NewPrinter returns a printer writing to w.
func NewPrinter(w io.Writer, colored bool) *Printer {
	p := &Printer{
		w:          w,
		titleColor: color.New(color.FgHiCyan, color.Bold),
		labelColor: color.New(color.FgHiMagenta),
		nextColor:  color.New(color.FgHiWhite),
		errorColor: color.New(color.FgHiRed),
		doneColor:  color.New(color.FgHiGreen),
		infoColor:  color.New(color.FgHiYellow),
	}
	for _, c := range p.palette() {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *Printer) palette() []*color.Color {
	return []*color.Color{p.titleColor, p.labelColor, p.nextColor, p.errorColor, p.doneColor, p.infoColor}
}

// WithClock returns a printer that prefixes every line with the virtual time of s.
func (p *Printer) WithClock(s *rxlite.TestScheduler) *Printer {
	clocked := *p
	clocked.clock = s
	return &clocked
}

// Header starts a new example.
func (p *Printer) Header(title string) {
	p.titleColor.Fprintf(p.w, "\n--- Example of: %s ---\n", title)
}

// Info writes a free-form line.
func (p *Printer) Info(format string, args ...interface{}) {
	p.prefix()
	p.infoColor.Fprintf(p.w, format+"\n", args...)
}

// Value writes a labelled value.
func (p *Printer) Value(label string, value interface{}) {
	p.prefix()
	if label != "" {
		p.labelColor.Fprintf(p.w, "%s ", label)
	}
	p.nextColor.Fprintf(p.w, "%v\n", value)
}

// Event writes a labelled event.
func (p *Printer) Event(label string, event rxlite.Event) {
	p.prefix()
	if label != "" {
		p.labelColor.Fprintf(p.w, "%s ", label)
	}
	switch event.Kind {
	case rxlite.KindNext:
		p.nextColor.Fprintf(p.w, "%s\n", event)
	case rxlite.KindError:
		p.errorColor.Fprintf(p.w, "%s\n", event)
	default:
		p.doneColor.Fprintf(p.w, "%s\n", event)
	}
}

// Observer returns an observer printing every event under label.
func (p *Printer) Observer(label string) rxlite.Observer {
	return func(event rxlite.Event) {
		p.Event(label, event)
	}
}

func (p *Printer) prefix() {
	if p.clock == nil {
		return
	}
	fmt.Fprintf(p.w, "[%5.1fs] ", p.clock.Clock().Seconds())
}
