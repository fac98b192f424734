package svg

import (
	"bytes"
	"fmt"

	"github.com/auspexlabs/imager/pkg/chart/styles"
)

// Stateless element emitters. Every drawing stage funnels through these so
// the markup stays uniform: coordinates with two decimals, styling through
// CSS classes, explicit attributes only where a value varies per element.

func circle(buf *bytes.Buffer, cx, cy, r float64, class string) {
	fmt.Fprintf(buf, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" class=\"%s\"/>\n", cx, cy, r, class)
}

func line(buf *bytes.Buffer, x1, y1, x2, y2 float64, class string) {
	fmt.Fprintf(buf, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" class=\"%s\"/>\n",
		x1, y1, x2, y2, class)
}

// strokedLine draws a line with an explicit stroke color and, when opacity
// is non-zero, an opacity attribute. Aspect lines use this because their
// color varies per aspect type.
func strokedLine(buf *bytes.Buffer, x1, y1, x2, y2 float64, class, stroke string, opacity float64) {
	fmt.Fprintf(buf, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" class=\"%s\" stroke=\"%s\"",
		x1, y1, x2, y2, class, stroke)
	if opacity > 0 {
		fmt.Fprintf(buf, " opacity=\"%.1f\"", opacity)
	}
	buf.WriteString("/>\n")
}

// text draws a text node. An empty fill omits the attribute so the CSS
// class color applies.
func text(buf *bytes.Buffer, x, y float64, class, fill, content string) {
	fmt.Fprintf(buf, "<text x=\"%.2f\" y=\"%.2f\" class=\"%s\"", x, y, class)
	if fill != "" {
		fmt.Fprintf(buf, " fill=\"%s\"", fill)
	}
	fmt.Fprintf(buf, ">%s</text>\n", styles.EscapeXML(content))
}

func rect(buf *bytes.Buffer, x, y, w, h float64, class string) {
	fmt.Fprintf(buf, "<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" class=\"%s\"/>\n",
		x, y, w, h, class)
}
