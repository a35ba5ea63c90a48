package serializers

import (
	"bytes"
	"strings"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/tree"
)

// textWriter prints one "key: value" line per entry. The children of a
// nested entry are indented by the width of "key: " so they line up under
// the value column, and the nested block is closed by an empty line.
type textWriter struct {
	buf     bytes.Buffer
	indents []int
}

func newTextWriter() *textWriter {
	return &textWriter{indents: []int{0}}
}

func (w *textWriter) current() int { return w.indents[len(w.indents)-1] }

func (w *textWriter) Enter(pos Position, container tree.Node) {
	if pos.Root() {
		return
	}
	w.line(pos.Key, "")
	w.indents = append(w.indents, w.current()+len(pos.Key)+2)
}

func (w *textWriter) Leave(pos Position, container tree.Node) {
	if pos.Root() {
		return
	}
	w.indents = w.indents[:len(w.indents)-1]
	w.buf.WriteByte('\n')
}

func (w *textWriter) Leaf(pos Position, value tree.Scalar) {
	if pos.Root() {
		w.buf.WriteString(value.Text() + "\n")
		return
	}
	w.line(pos.Key, value.Text())
}

func (w *textWriter) line(key, value string) {
	w.buf.WriteString(strings.Repeat(" ", w.current()))
	w.buf.WriteString(key + ": " + value + "\n")
}

func (w *textWriter) Bytes() ([]byte, error) {
	return w.buf.Bytes(), nil
}
