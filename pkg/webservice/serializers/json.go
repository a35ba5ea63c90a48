package serializers

import (
	"bytes"
	"encoding/json"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/tree"
)

// jsonWriter emits compact JSON with map keys in insertion order.
type jsonWriter struct {
	buf bytes.Buffer

	// first[i] is true until the container at depth i got its first child
	first []bool
	err   error
}

func newJSONWriter() *jsonWriter {
	return &jsonWriter{}
}

func (w *jsonWriter) Enter(pos Position, container tree.Node) {
	w.prefix(pos)
	if _, ok := container.(tree.List); ok {
		w.buf.WriteByte('[')
	} else {
		w.buf.WriteByte('{')
	}
	w.first = append(w.first, true)
}

func (w *jsonWriter) Leave(pos Position, container tree.Node) {
	w.first = w.first[:len(w.first)-1]
	if _, ok := container.(tree.List); ok {
		w.buf.WriteByte(']')
	} else {
		w.buf.WriteByte('}')
	}
}

func (w *jsonWriter) Leaf(pos Position, value tree.Scalar) {
	w.prefix(pos)
	w.encode(value.Value())
}

func (w *jsonWriter) prefix(pos Position) {
	if pos.Root() {
		return
	}
	top := len(w.first) - 1
	if !w.first[top] {
		w.buf.WriteByte(',')
	}
	w.first[top] = false
	if !pos.InList {
		w.encode(pos.Key)
		w.buf.WriteByte(':')
	}
}

func (w *jsonWriter) encode(v any) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		if w.err == nil {
			w.err = err
		}
		w.buf.WriteString("null")
		return
	}
	w.buf.Write(bytes.TrimSuffix(b.Bytes(), []byte("\n")))
}

func (w *jsonWriter) Bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.buf.Bytes(), nil
}
