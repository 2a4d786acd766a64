package document

import (
	"errors"
	"strings"
)

// ItemName is the child name given to unnamed sequence elements.
const ItemName = "item"

var ErrUnbalanced = errors.New("document: unbalanced node scope")

// Reader is a cursor over a document tree. It starts positioned on the root
// node. MoveDown enters the next unvisited child of the current node and
// MoveUp returns to its parent; calls must be paired.
type Reader interface {
	HasMoreChildren() bool
	MoveDown()
	MoveUp()
	NodeName() string
	Value() string
}

// Writer is a sink that receives a document tree depth first.
type Writer interface {
	StartNode(name string)
	SetValue(value string)
	EndNode()
}

// Node is one element of a document tree.
type Node struct {
	Name     string  `cbor:"1,keyasint"`
	Value    string  `cbor:"2,keyasint,omitempty"`
	Children []*Node `cbor:"3,keyasint,omitempty"`
}

// Leaf returns a node without children.
func Leaf(name, value string) *Node {
	return &Node{Name: name, Value: value}
}

// Elem returns a node with the given children.
func Elem(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children}
}

// Child returns the first child with the given name.
func (n *Node) Child(name string) (*Node, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}

	return nil, false
}

// String renders the node in compact XML form, mostly for diagnostics.
func (n *Node) String() string {
	var b strings.Builder
	writeXML(&b, n, "", "")
	return b.String()
}

type frame struct {
	node *Node
	next int
}

type treeReader struct {
	stack []frame
}

// NewReader returns a Reader positioned on root.
func NewReader(root *Node) Reader {
	return &treeReader{stack: []frame{{node: root}}}
}

func (r *treeReader) top() *frame {
	return &r.stack[len(r.stack)-1]
}

func (r *treeReader) HasMoreChildren() bool {
	f := r.top()
	return f.next < len(f.node.Children)
}

func (r *treeReader) MoveDown() {
	f := r.top()
	if f.next >= len(f.node.Children) {
		panic("document: MoveDown without remaining children on " + f.node.Name)
	}
	child := f.node.Children[f.next]
	f.next++
	r.stack = append(r.stack, frame{node: child})
}

func (r *treeReader) MoveUp() {
	if len(r.stack) == 1 {
		panic(ErrUnbalanced)
	}
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *treeReader) NodeName() string { return r.top().node.Name }

func (r *treeReader) Value() string { return r.top().node.Value }

// TreeWriter is a Writer that collects the emitted nodes into a tree.
type TreeWriter struct {
	root  *Node
	stack []*Node
}

// NewTreeWriter returns an empty TreeWriter.
func NewTreeWriter() *TreeWriter {
	return &TreeWriter{}
}

// StartNode opens a child of the current node, or the root.
func (w *TreeWriter) StartNode(name string) {
	n := &Node{Name: name}
	if len(w.stack) == 0 {
		w.root = n
	} else {
		parent := w.stack[len(w.stack)-1]
		parent.Children = append(parent.Children, n)
	}
	w.stack = append(w.stack, n)
}

// SetValue sets the text of the open node.
func (w *TreeWriter) SetValue(value string) {
	if len(w.stack) == 0 {
		panic(ErrUnbalanced)
	}
	w.stack[len(w.stack)-1].Value = value
}

// EndNode closes the open node.
func (w *TreeWriter) EndNode() {
	if len(w.stack) == 0 {
		panic(ErrUnbalanced)
	}
	w.stack = w.stack[:len(w.stack)-1]
}

// Root returns the collected tree, or nil when nothing was written or a node
// is still open.
func (w *TreeWriter) Root() *Node {
	if len(w.stack) != 0 {
		return nil
	}

	return w.root
}
