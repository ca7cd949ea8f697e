package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/jsphweid/scorepad/layout"
)

// num formats coordinates without trailing zeros so output stays stable.
func num(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.3f", f), "0"), ".")
}

func curve(c [4]layout.Point) string {
	return fmt.Sprintf("M %s %s C %s %s, %s %s, %s %s",
		num(c[0].X), num(c[0].Y),
		num(c[1].X), num(c[1].Y),
		num(c[2].X), num(c[2].Y),
		num(c[3].X), num(c[3].Y))
}

// SVG renders a laid out sheet as a standalone SVG document.
func SVG(sheet layout.Sheet, theme Theme) string {
	var b strings.Builder
	w, h := num(sheet.Width), num(sheet.Height)

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`, w, h, w, h)
	b.WriteString("\n  <style>\n")
	fmt.Fprintf(&b, "    .staff-line { stroke: %s; stroke-width: 1; }\n", theme.Line)
	fmt.Fprintf(&b, "    .note { fill: %s; }\n", theme.Note)
	fmt.Fprintf(&b, "    .note-stroke { stroke: %s; stroke-width: 1; fill: none; }\n", theme.Note)
	fmt.Fprintf(&b, "    .bar-line { stroke: %s; stroke-width: 1; }\n", theme.Line)
	fmt.Fprintf(&b, "    .curve { stroke: %s; stroke-width: 1; fill: none; }\n", theme.Line)
	fmt.Fprintf(&b, "    .clef { font-family: serif; font-size: 40px; fill: %s; }\n", theme.Note)
	fmt.Fprintf(&b, "    .accidental { font-family: serif; font-size: 16px; fill: %s; }\n", theme.Note)
	fmt.Fprintf(&b, "    .tempo { font-family: sans-serif; font-size: 12px; fill: %s; }\n", theme.Text)
	b.WriteString("  </style>\n")
	fmt.Fprintf(&b, `  <rect width="%s" height="%s" fill="%s" />`+"\n", w, h, theme.Background)

	for _, p := range sheet.Primitives {
		b.WriteString("  ")
		b.WriteString(element(p))
		b.WriteString("\n")
	}

	b.WriteString("</svg>")
	return b.String()
}

func text(class string, p layout.Primitive) string {
	return fmt.Sprintf(`<text class="%s" x="%s" y="%s">%s</text>`, class, num(p.X), num(p.Y), html.EscapeString(p.Text))
}

func line(class string, p layout.Primitive) string {
	return fmt.Sprintf(`<line class="%s" x1="%s" y1="%s" x2="%s" y2="%s" />`, class, num(p.X), num(p.Y), num(p.X2), num(p.Y2))
}

func element(p layout.Primitive) string {
	switch p.Kind {
	case layout.StaffLine, layout.Stem:
		return line("staff-line", p)
	case layout.BarLine:
		return line("bar-line", p)
	case layout.Clef:
		return text("clef", p)
	case layout.TempoLabel, layout.KeyLabel:
		return text("tempo", p)
	case layout.TimeSignature, layout.Rest:
		return text("note", p)
	case layout.Accidental:
		return text("accidental", p)
	case layout.Notehead:
		class := "note-stroke"
		if p.Filled {
			class = "note"
		}
		return fmt.Sprintf(`<ellipse class="%s" cx="%s" cy="%s" rx="%s" ry="%s" />`, class, num(p.X), num(p.Y), num(p.RX), num(p.RY))
	case layout.Dot:
		return fmt.Sprintf(`<circle class="note" cx="%s" cy="%s" r="%s" />`, num(p.X), num(p.Y), num(p.RX))
	case layout.Flag, layout.Tie:
		return fmt.Sprintf(`<path class="curve" d="%s" />`, curve(p.Curve))
	}
	return ""
}
