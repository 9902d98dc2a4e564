package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Printer writes markup and remembers the first write error.
type Printer struct {
	w   io.Writer
	err error
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Printf writes formatted markup. Arguments are not escaped; wrap user data with Esc.
func (p *Printer) Printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Render writes a nested component.
func (p *Printer) Render(ctx context.Context, c templ.Component) {
	if p.err != nil || c == nil {
		return
	}
	p.err = c.Render(ctx, p.w)
}

func (p *Printer) Err() error {
	return p.err
}

// Esc escapes text for inclusion in HTML bodies and attribute values.
func Esc(value string) string {
	return templ.EscapeString(value)
}
