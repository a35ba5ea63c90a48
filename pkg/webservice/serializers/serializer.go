// Package serializers renders a tree.Node as JSON, XML, HTML or plain text.
// All four formats share one traversal (Walk) and differ only in how they
// write a node.
package serializers

import (
	"strings"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/tree"
)

type Format int

const (
	JSON Format = iota
	XML
	HTML
	Text
)

// ForFormat maps a route extension to a Format. Unknown or empty
// extensions fall back to JSON.
func ForFormat(ext string) Format {
	switch strings.ToLower(ext) {
	case "htm", "html":
		return HTML
	case "txt":
		return Text
	case "xml":
		return XML
	default:
		return JSON
	}
}

func (f Format) ContentType() string {
	switch f {
	case XML:
		return "application/xml"
	case HTML:
		return "text/html"
	case Text:
		return "text/plain"
	default:
		return "application/json"
	}
}

func (f Format) String() string {
	switch f {
	case XML:
		return "xml"
	case HTML:
		return "html"
	case Text:
		return "txt"
	default:
		return "json"
	}
}

type writer interface {
	Visitor
	Bytes() ([]byte, error)
}

func newWriter(f Format) writer {
	switch f {
	case XML:
		return newXMLWriter()
	case HTML:
		return newHTMLWriter()
	case Text:
		return newTextWriter()
	default:
		return newJSONWriter()
	}
}

// Render serializes n in format f.
func Render(f Format, n tree.Node) ([]byte, error) {
	w := newWriter(f)
	Walk(w, n)
	return w.Bytes()
}
