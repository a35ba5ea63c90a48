package serializers

import (
	"strconv"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/tree"
)

// Position describes where a node sits in the tree being walked.
type Position struct {
	// Key is the map key, or the decimal index for list elements.
	Key string

	// Index is the position among the siblings.
	Index int

	// InList is set for elements of a tree.List.
	InList bool

	// Depth is 0 for the root.
	Depth int
}

func (p Position) Root() bool { return p.Depth == 0 }

// Visitor receives the nodes of a tree in document order. Enter and Leave
// are called for *tree.Map and tree.List nodes, Leaf for scalars.
type Visitor interface {
	Enter(pos Position, container tree.Node)
	Leave(pos Position, container tree.Node)
	Leaf(pos Position, value tree.Scalar)
}

// Walk visits root depth first, map entries in insertion order.
func Walk(v Visitor, root tree.Node) {
	walk(v, Position{}, root)
}

func walk(v Visitor, pos Position, n tree.Node) {
	switch n := n.(type) {
	case *tree.Map:
		v.Enter(pos, n)
		for i, e := range n.Entries() {
			walk(v, Position{Key: e.Key, Index: i, Depth: pos.Depth + 1}, e.Value)
		}
		v.Leave(pos, n)
	case tree.List:
		v.Enter(pos, n)
		for i, e := range n {
			walk(v, Position{Key: strconv.Itoa(i), Index: i, InList: true, Depth: pos.Depth + 1}, e)
		}
		v.Leave(pos, n)
	case tree.Scalar:
		v.Leaf(pos, n)
	default:
		v.Leaf(pos, tree.Null())
	}
}

func isEmpty(container tree.Node) bool {
	switch c := container.(type) {
	case *tree.Map:
		return c.Len() == 0
	case tree.List:
		return len(c) == 0
	}
	return true
}
