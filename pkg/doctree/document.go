package doctree

// Entry is one line of a toctree directive: a document reference with an
// optional explicit title, written "Some Title <refname>" in source.
type Entry struct {
	Title string // empty means use the referenced document's own title
	Ref   string // docname, external URL, or "self"
}

// TocTree holds the options of one toctree directive as parsed from a
// document.
type TocTree struct {
	Parent        string // docname of the document containing the directive
	Entries       []Entry
	MaxDepth      int // -1 means unlimited
	Caption       string
	Hidden        bool
	IncludeHidden bool
	TitlesOnly    bool

	// Numbered requests section numbering at collection time; resolution
	// itself ignores it.
	Numbered bool
}

// Placeholder wraps the directive in a node so it can sit inside a
// document outline and be expanded in place during resolution.
func (t *TocTree) Placeholder() *Node {
	return &Node{Kind: KindTocTree, Toc: t}
}

// Document is one documentation page: its title, its section outline, and
// any toctree directives it declares.
type Document struct {
	Docname string
	Title   string

	// TocDepth is per-document depth metadata; 0 means no limit.
	TocDepth int

	// Outline is the section tree of the document, a bullet list. It is
	// deep-copied on every resolution, never handed out directly.
	Outline *Node

	TocTrees []*TocTree
}

// DocSet is the collection of known documents, keyed by docname.
type DocSet struct {
	docs  map[string]*Document
	order []string
}

func NewDocSet() *DocSet {
	return &DocSet{docs: make(map[string]*Document)}
}

// Add registers a document, replacing any previous one with the same name.
func (s *DocSet) Add(doc *Document) {
	if _, ok := s.docs[doc.Docname]; !ok {
		s.order = append(s.order, doc.Docname)
	}
	s.docs[doc.Docname] = doc
}

// Get looks up a document by name.
func (s *DocSet) Get(docname string) (*Document, bool) {
	doc, ok := s.docs[docname]
	return doc, ok
}

// Docnames returns all registered names in insertion order.
func (s *DocSet) Docnames() []string {
	return append([]string(nil), s.order...)
}

// Ancestors returns the chain of documents that include docname through
// their toctrees, nearest parent first. A document's parent is the first
// document whose toctree lists it.
func (s *DocSet) Ancestors(docname string) []string {
	parent := make(map[string]string)
	for _, name := range s.order {
		doc := s.docs[name]
		for _, tt := range doc.TocTrees {
			for _, e := range tt.Entries {
				if e.Ref == "self" || urlRe.MatchString(e.Ref) {
					continue
				}
				if _, seen := parent[e.Ref]; !seen && e.Ref != name {
					parent[e.Ref] = name
				}
			}
		}
	}
	var chain []string
	seen := map[string]bool{docname: true}
	for {
		p, ok := parent[docname]
		if !ok || seen[p] {
			break
		}
		chain = append(chain, p)
		seen[p] = true
		docname = p
	}
	return chain
}
