// Package doctree resolves documentation outline trees ("toctrees"): the
// nested tables of contents a documentation generator assembles from
// per-document outlines and toctree directives.
//
// Resolution is a single synchronous pass. Missing documents and circular
// references are logged as warnings and their branches omitted; the
// overall tree degrades gracefully rather than failing.
package doctree

// Kind identifies the role of a Node in the outline tree. The shape
// mirrors the HTML a generator emits: bullet lists of list items, each
// holding a paragraph with a reference, with nested bullet lists for
// subsections.
type Kind int

const (
	KindBulletList Kind = iota
	KindListItem
	KindParagraph
	KindReference
	KindText
	KindLiteral // code-styled text
	KindCaption
	KindTocTree // unresolved toctree placeholder
)

func (k Kind) String() string {
	switch k {
	case KindBulletList:
		return "bullet_list"
	case KindListItem:
		return "list_item"
	case KindParagraph:
		return "paragraph"
	case KindReference:
		return "reference"
	case KindText:
		return "text"
	case KindLiteral:
		return "literal"
	case KindCaption:
		return "caption"
	case KindTocTree:
		return "toctree"
	default:
		return "unknown"
	}
}

// Node is one node of an outline tree. Nodes are mutated in place during
// resolution (classes appended, current flags set) and handed back to the
// generator.
type Node struct {
	Kind Kind

	// Text payload for text, literal, and caption nodes.
	Text string

	// Reference fields.
	RefURI   string
	Anchor   string // "#fragment", empty for the document itself
	Internal bool

	// Toc holds the directive for KindTocTree placeholders.
	Toc *TocTree

	Classes []string

	// OnCurrentPage marks the chain of nodes leading to the document being
	// rendered ("iscurrent").
	OnCurrentPage bool

	Parent   *Node
	Children []*Node
}

// NewNode creates a node of the given kind with the children attached.
func NewNode(kind Kind, children ...*Node) *Node {
	n := &Node{Kind: kind}
	n.Append(children...)
	return n
}

// Text creates a plain text node.
func Text(s string) *Node {
	return &Node{Kind: KindText, Text: s}
}

// Literal creates a code-styled text node.
func Literal(s string) *Node {
	return &Node{Kind: KindLiteral, Text: s}
}

// Reference creates a reference node wrapping the given children.
func Reference(refuri, anchor string, internal bool, children ...*Node) *Node {
	n := &Node{Kind: KindReference, RefURI: refuri, Anchor: anchor, Internal: internal}
	n.Append(children...)
	return n
}

// Append attaches children, setting their parent pointers.
func (n *Node) Append(children ...*Node) {
	for _, c := range children {
		c.Parent = n
		n.Children = append(n.Children, c)
	}
}

// InsertAt inserts child at index i among n's children.
func (n *Node) InsertAt(i int, child *Node) {
	child.Parent = n
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = child
}

// Index returns the position of child among n's children, or -1.
func (n *Node) Index(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// Remove detaches child from n.
func (n *Node) Remove(child *Node) {
	i := n.Index(child)
	if i < 0 {
		return
	}
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
	child.Parent = nil
}

// AddClass appends a CSS class if not already present.
func (n *Node) AddClass(class string) {
	for _, c := range n.Classes {
		if c == class {
			return
		}
	}
	n.Classes = append(n.Classes, class)
}

// HasClass reports whether the node carries the class.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// DeepCopy clones the subtree rooted at n. The copy's parent is nil and
// all internal parent pointers are rebuilt.
func (n *Node) DeepCopy() *Node {
	cp := &Node{
		Kind:          n.Kind,
		Text:          n.Text,
		RefURI:        n.RefURI,
		Anchor:        n.Anchor,
		Internal:      n.Internal,
		Toc:           n.Toc,
		OnCurrentPage: n.OnCurrentPage,
	}
	if len(n.Classes) > 0 {
		cp.Classes = append([]string(nil), n.Classes...)
	}
	for _, c := range n.Children {
		cp.Append(c.DeepCopy())
	}
	return cp
}

// Walk visits the subtree pre-order. Returning false from fn skips the
// node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	// Snapshot so fn may detach the node it is handed.
	children := append([]*Node(nil), n.Children...)
	for _, c := range children {
		c.Walk(fn)
	}
}

// FindAll returns all nodes of the given kind in the subtree, pre-order.
func (n *Node) FindAll(kind Kind) []*Node {
	var out []*Node
	n.Walk(func(m *Node) bool {
		if m.Kind == kind {
			out = append(out, m)
		}
		return true
	})
	return out
}

// AsText concatenates all text content in the subtree.
func (n *Node) AsText() string {
	var out string
	n.Walk(func(m *Node) bool {
		if m.Kind == KindText || m.Kind == KindLiteral || m.Kind == KindCaption {
			out += m.Text
		}
		return true
	})
	return out
}
