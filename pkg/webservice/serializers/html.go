package serializers

import (
	"bytes"
	"html"
	"strings"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/tree"
)

// htmlWriter renders maps as <ul> and lists as <ol>. Every child is an <li>;
// map children carry a bold "key: " label.
type htmlWriter struct {
	buf bytes.Buffer
}

func newHTMLWriter() *htmlWriter {
	w := &htmlWriter{}
	w.buf.WriteString("<html>\n  <body>\n")
	return w
}

// Indent levels: html 0, body 1, the root list 2. A node at depth d has its
// <li> at 2d+1 and, if it is a container, its list at 2d+2.
func listIndent(depth int) int { return 2*depth + 2 }
func itemIndent(depth int) int { return 2*depth + 1 }

func listElement(container tree.Node) string {
	if _, ok := container.(tree.List); ok {
		return "ol"
	}
	return "ul"
}

func (w *htmlWriter) Enter(pos Position, container tree.Node) {
	if !pos.Root() {
		w.indent(itemIndent(pos.Depth))
		w.buf.WriteString("<li>" + label(pos) + "\n")
	}
	w.indent(listIndent(pos.Depth))
	w.buf.WriteString("<" + listElement(container) + ">\n")
}

func (w *htmlWriter) Leave(pos Position, container tree.Node) {
	w.indent(listIndent(pos.Depth))
	w.buf.WriteString("</" + listElement(container) + ">\n")
	if !pos.Root() {
		w.indent(itemIndent(pos.Depth))
		w.buf.WriteString("</li>\n")
	}
}

func (w *htmlWriter) Leaf(pos Position, value tree.Scalar) {
	if pos.Root() {
		w.indent(listIndent(0))
		w.buf.WriteString(html.EscapeString(value.Text()) + "\n")
		return
	}
	w.indent(itemIndent(pos.Depth))
	w.buf.WriteString("<li>" + label(pos) + html.EscapeString(value.Text()) + "</li>\n")
}

func label(pos Position) string {
	if pos.InList {
		return ""
	}
	return "<b>" + html.EscapeString(pos.Key) + ": </b>"
}

func (w *htmlWriter) indent(n int) {
	w.buf.WriteString(strings.Repeat("  ", n))
}

func (w *htmlWriter) Bytes() ([]byte, error) {
	w.buf.WriteString("  </body>\n</html>\n")
	return w.buf.Bytes(), nil
}
