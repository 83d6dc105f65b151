package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/timeline/pkg/fonts"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	embedFonts  bool
	transparent bool
}

// WithEmbeddedFonts inlines the fonts used by the scene as @font-face
// rules, so viewers draw exactly the glyphs that were measured.
func WithEmbeddedFonts() SVGOption { return func(r *svgRenderer) { r.embedFonts = true } }

// WithSVGTransparent omits the background rectangle.
func WithSVGTransparent() SVGOption { return func(r *svgRenderer) { r.transparent = true } }

// RenderSVG renders the scene as a standalone SVG document.
func RenderSVG(s *Scene, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)

	r.renderDefs(&buf, s)
	if !r.transparent && !strings.EqualFold(s.Background, "none") {
		fmt.Fprintf(&buf, `  <rect class="background" x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			s.Width, s.Height, escapeXML(s.Background))
	}

	for _, l := range s.Ticks {
		renderLine(&buf, "tick", l)
	}
	renderLine(&buf, "axis", s.Axis)
	for _, l := range s.Connectors {
		renderLine(&buf, "connector", l)
	}
	for i, m := range s.Markers {
		fmt.Fprintf(&buf, `  <circle class="marker" id="marker-%d" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="%.2f"/>`+"\n",
			s.Events[i].Index, m.CX, m.CY, m.R, escapeXML(m.Fill), escapeXML(m.Stroke), m.StrokeWidth)
	}
	for _, t := range s.Labels {
		renderText(&buf, "label", t)
	}
	for _, t := range s.Dates {
		renderText(&buf, "date", t)
	}
	for _, y := range s.Years {
		fmt.Fprintf(&buf, `  <rect class="year-box" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" ry="%.2f" fill="%s" stroke="%s" stroke-width="%.2f"/>`+"\n",
			y.X, y.Y, y.W, y.H, y.Radius, y.Radius, escapeXML(y.Fill), escapeXML(y.Stroke), y.StrokeWidth)
		renderText(&buf, "year", y.Label)
	}
	for _, t := range s.Months {
		renderText(&buf, "month", t)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderDefs(buf *bytes.Buffer, s *Scene) {
	family := fonts.FallbackFontFamily
	if s.Family != "" && s.Family != "sans-serif" {
		family = fmt.Sprintf("'%s', %s, %s", fonts.FontFamily, s.Family, "sans-serif")
	}

	buf.WriteString("  <style>\n")
	if r.embedFonts {
		for _, st := range usedStyles(s) {
			weight, style := "normal", "normal"
			if st.Bold {
				weight = "bold"
			}
			if st.Italic {
				style = "italic"
			}
			fmt.Fprintf(buf, "    @font-face { font-family: '%s'; font-weight: %s; font-style: %s; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
				fonts.FontFamily, weight, style, fonts.Base64(st))
		}
	}
	fmt.Fprintf(buf, "    text { font-family: %s; }\n", escapeXML(family))
	buf.WriteString("  </style>\n")
}

func usedStyles(s *Scene) []fonts.Style {
	seen := map[fonts.Style]bool{}
	var out []fonts.Style
	add := func(st fonts.Style) {
		if !seen[st] {
			seen[st] = true
			out = append(out, st)
		}
	}
	for _, group := range [][]Text{s.Labels, s.Dates, s.Months} {
		for _, t := range group {
			add(t.Style)
		}
	}
	for _, y := range s.Years {
		add(y.Label.Style)
	}
	return out
}

func renderLine(buf *bytes.Buffer, class string, l Line) {
	fmt.Fprintf(buf, `  <line class="%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"%s/>`+"\n",
		class, l.X1, l.Y1, l.X2, l.Y2, escapeXML(l.Color), l.Width, opacity("stroke-opacity", l.Alpha))
}

func renderText(buf *bytes.Buffer, class string, t Text) {
	attrs := fmt.Sprintf(`font-size="%.1f" fill="%s" text-anchor="%s"`, t.Size, escapeXML(t.Color), t.Anchor)
	if t.Style.Bold {
		attrs += ` font-weight="bold"`
	}
	if t.Style.Italic {
		attrs += ` font-style="italic"`
	}
	attrs += opacity("fill-opacity", t.Alpha)

	if len(t.Lines) == 1 {
		fmt.Fprintf(buf, `  <text class="%s" x="%.2f" y="%.2f" %s xml:space="preserve">%s</text>`+"\n",
			class, t.X, t.Baseline, attrs, escapeXML(t.Lines[0]))
		return
	}
	fmt.Fprintf(buf, `  <text class="%s" %s xml:space="preserve">`, class, attrs)
	for i, line := range t.Lines {
		fmt.Fprintf(buf, `<tspan x="%.2f" y="%.2f">%s</tspan>`, t.X, t.Baseline+float64(i)*t.LineHeight, escapeXML(line))
	}
	buf.WriteString("</text>\n")
}

func opacity(attr string, a float64) string {
	if a >= 1 {
		return ""
	}
	return fmt.Sprintf(` %s="%.2f"`, attr, a)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
