package chart

import (
	"html"
	"math"
	"strconv"
	"strings"
)

// SVG renders s as an svg element, or as its placeholder text.
func SVG(s Scene) string {
	if s.Placeholder != "" {
		return s.Placeholder
	}

	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="100%" height="100%" viewBox="0 0 `)
	b.WriteString(num(s.Width))
	b.WriteByte(' ')
	b.WriteString(num(s.Height))
	b.WriteString(`">`)
	b.WriteByte('\n')
	for _, sh := range s.Shapes {
		writeShape(&b, sh, 1)
	}
	b.WriteString("</svg>")
	return b.String()
}

// num rounds v to two decimals and prints it without trailing zeros.
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

type attrs struct {
	b *strings.Builder
}

func (a attrs) str(name, value string) {
	if value == "" {
		return
	}
	a.b.WriteByte(' ')
	a.b.WriteString(name)
	a.b.WriteString(`="`)
	a.b.WriteString(html.EscapeString(value))
	a.b.WriteByte('"')
}

func (a attrs) num(name string, v float64) {
	a.b.WriteByte(' ')
	a.b.WriteString(name)
	a.b.WriteString(`="`)
	a.b.WriteString(num(v))
	a.b.WriteByte('"')
}

func (a attrs) optNum(name string, v float64) {
	if v != 0 {
		a.num(name, v)
	}
}

func writeShape(b *strings.Builder, sh Shape, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	a := attrs{b}

	switch v := sh.(type) {
	case Segment:
		b.WriteString("<line")
		a.num("x1", v.X1)
		a.num("y1", v.Y1)
		a.num("x2", v.X2)
		a.num("y2", v.Y2)
		a.str("stroke", v.Stroke)
		a.optNum("stroke-width", v.StrokeWidth)
		b.WriteString(" />\n")

	case Path:
		b.WriteString("<path")
		a.str("d", v.D)
		a.str("fill", v.Fill)
		a.str("stroke", v.Stroke)
		a.optNum("stroke-width", v.StrokeWidth)
		b.WriteString(" />\n")

	case Circle:
		b.WriteString("<circle")
		a.num("cx", v.CX)
		a.num("cy", v.CY)
		a.num("r", v.R)
		a.str("fill", v.Fill)
		a.str("stroke", v.Stroke)
		a.optNum("stroke-width", v.StrokeWidth)
		a.optNum("opacity", v.Opacity)
		a.str("class", v.Class)
		if v.Title == "" {
			b.WriteString(" />\n")
			return
		}
		b.WriteString("><title>")
		b.WriteString(html.EscapeString(v.Title))
		b.WriteString("</title></circle>\n")

	case Rect:
		b.WriteString("<rect")
		a.optNum("x", v.X)
		a.optNum("y", v.Y)
		a.num("width", v.Width)
		a.num("height", v.Height)
		a.str("fill", v.Fill)
		b.WriteString(" />\n")

	case Text:
		b.WriteString("<text")
		a.num("x", v.X)
		a.num("y", v.Y)
		a.str("text-anchor", v.Anchor)
		if v.FontSize > 0 {
			a.str("font-size", strconv.Itoa(v.FontSize))
		}
		if v.Bold {
			a.str("font-weight", "bold")
		}
		a.str("fill", v.Fill)
		a.str("transform", v.Transform)
		b.WriteByte('>')
		b.WriteString(html.EscapeString(v.Content))
		b.WriteString("</text>\n")

	case Group:
		b.WriteString("<g")
		a.str("transform", v.Transform)
		b.WriteString(">\n")
		for _, c := range v.Children {
			writeShape(b, c, depth+1)
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString("</g>\n")
	}
}
