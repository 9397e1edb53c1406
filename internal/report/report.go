// Package report renders the per-(app, locale) report blocks: a header
// naming the app, its normalized identifier, and the locale, then the
// keyword string or the explicit no-keywords marker.
//
// Output is colored when stdout is a terminal; --no-color and the NO_COLOR
// environment variable force the plain form.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// EmptyMarker is printed in place of a keyword string when synthesis
// produced no candidates or the authoritative field is blank.
const EmptyMarker = "(no keywords)"

const ruleWidth = 40

// Block is one (app, locale) report.
type Block struct {
	AppName    string
	Identifier string
	Locale     string
	Keywords   string
	Empty      bool
}

// Printer writes report blocks to a single destination.
type Printer struct {
	out io.Writer
}

var (
	nameStyle   = color.New(color.FgCyan, color.Bold)
	idStyle     = color.New(color.FgMagenta)
	localeStyle = color.New(color.FgGreen)
	commaStyle  = color.New(color.Faint)
	emptyStyle  = color.New(color.Faint)

	// Alternating term styles keep long keyword lines readable.
	termStyles = []*color.Color{
		color.New(color.FgYellow),
		color.New(color.FgHiCyan),
		color.New(color.FgHiMagenta),
		color.New(color.FgHiGreen),
		color.New(color.FgHiBlue),
		color.New(color.FgHiYellow),
	}
)

// NewPrinter builds a printer writing to out. noColor forces plain output;
// the color package itself handles NO_COLOR and non-terminal destinations.
func NewPrinter(out io.Writer, noColor bool) *Printer {
	if noColor {
		color.NoColor = true
	}
	return &Printer{out: out}
}

func (p *Printer) Print(b Block) {
	name := b.AppName
	if name == "" {
		name = "Unknown App"
	}
	fmt.Fprintf(p.out, "Name: %s %s [%s]\n",
		nameStyle.Sprint(name),
		idStyle.Sprint(b.Identifier),
		localeStyle.Sprint(b.Locale))
	fmt.Fprintln(p.out, strings.Repeat("=", ruleWidth))

	kw := strings.TrimSpace(b.Keywords)
	if b.Empty || kw == "" {
		fmt.Fprintln(p.out, emptyStyle.Sprint(EmptyMarker))
		fmt.Fprintln(p.out)
		return
	}

	var line strings.Builder
	for i, term := range strings.Split(kw, ",") {
		if i > 0 {
			line.WriteString(commaStyle.Sprint(","))
		}
		line.WriteString(termStyles[i%len(termStyles)].Sprint(term))
	}
	fmt.Fprintln(p.out, line.String())
	fmt.Fprintln(p.out)
}
