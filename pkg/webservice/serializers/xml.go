package serializers

import (
	"bytes"
	"strings"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/tree"
)

const (
	xmlHeader  = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"
	xmlRootTag = "xml"
)

// xmlWriter wraps the tree in a single <xml> element. Map entries become
// elements named by their key. List elements have no name of their own and
// get one from their content; see listTag.
type xmlWriter struct {
	buf bytes.Buffer
}

func newXMLWriter() *xmlWriter {
	w := &xmlWriter{}
	w.buf.WriteString(xmlHeader)
	return w
}

// listTag names list elements: "message" for a map carrying a msgID,
// "bottle" for any other map and "entry" for everything else. This cannot
// be reversed, clients rely on the names.
func listTag(n tree.Node) string {
	m, ok := n.(*tree.Map)
	switch {
	case ok && m.Has("msgID"):
		return "message"
	case ok:
		return "bottle"
	default:
		return "entry"
	}
}

func (w *xmlWriter) tag(pos Position, n tree.Node) string {
	if pos.Root() {
		return xmlRootTag
	}
	if pos.InList {
		return listTag(n)
	}
	return pos.Key
}

func (w *xmlWriter) Enter(pos Position, container tree.Node) {
	w.indent(pos.Depth)
	tag := w.tag(pos, container)
	if isEmpty(container) {
		w.buf.WriteString("<" + tag + "/>\n")
		return
	}
	w.buf.WriteString("<" + tag + ">\n")
}

func (w *xmlWriter) Leave(pos Position, container tree.Node) {
	if isEmpty(container) {
		return
	}
	w.indent(pos.Depth)
	w.buf.WriteString("</" + w.tag(pos, container) + ">\n")
}

func (w *xmlWriter) Leaf(pos Position, value tree.Scalar) {
	w.indent(pos.Depth)
	tag := w.tag(pos, value)
	w.buf.WriteString("<" + tag + ">")
	w.buf.WriteString(cdata(value.Text()))
	w.buf.WriteString("</" + tag + ">\n")
}

func (w *xmlWriter) indent(depth int) {
	w.buf.WriteString(strings.Repeat("  ", depth))
}

func (w *xmlWriter) Bytes() ([]byte, error) {
	return w.buf.Bytes(), nil
}

// cdata wraps s in a CDATA section. A literal "]]>" is split over two
// sections.
func cdata(s string) string {
	return "<![CDATA[" + strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>") + "]]>"
}
