package doctree

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/chromaplot/chromaplot/pkg/metrics"
)

// urlRe matches external references that pass through resolution
// untouched.
var urlRe = regexp.MustCompile(`^(https?|ftp)://|^mailto:`)

// Builder abstracts the output side of a documentation generator: it
// turns docnames into target URIs and knows which documents were
// excluded from the build.
type Builder interface {
	// RelativeURI returns the URI of document to, relative to from.
	RelativeURI(from, to string) string

	// IsExcluded reports whether docname was deliberately excluded, as
	// opposed to simply not existing. Only affects warning wording.
	IsExcluded(docname string) bool
}

// ResolveOptions control one resolution.
type ResolveOptions struct {
	// Prune limits the tree to MaxDepth levels; with MaxDepth 0 the
	// directive's own maxdepth applies.
	Prune    bool
	MaxDepth int

	// TitlesOnly keeps only top-level document titles and nested
	// toctrees.
	TitlesOnly bool

	// Collapse removes branches that do not contain the current document.
	Collapse bool

	// IncludeHidden resolves hidden toctrees instead of skipping them.
	IncludeHidden bool
}

// Resolver expands toctree directives against a set of parsed documents.
// Problems along the way (circular references, missing documents) are
// logged and the offending branches dropped; resolution itself never
// fails.
type Resolver struct {
	docs   *DocSet
	logger *log.Logger
}

// NewResolver creates a resolver over docs. A nil logger falls back to
// log.Default().
func NewResolver(docs *DocSet, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{docs: docs, logger: logger}
}

// Resolve expands the toctree directive into a paragraph of bullet lists
// ready for rendering on docname's page. It returns nil when the
// directive is hidden (and hidden trees are not requested) or when no
// titles survive resolution.
//
// The transformation runs in two passes, entry expansion then class
// marking and pruning, so that marking the current branch cannot
// interact with pruning.
func (r *Resolver) Resolve(docname string, builder Builder, toc *TocTree, opts ResolveOptions) *Node {
	defer metrics.Timer(metrics.TocResolve)()

	if toc.Hidden && !opts.IncludeHidden {
		return nil
	}

	ancestors := r.docs.Ancestors(docname)
	inAncestors := func(ref string) bool {
		for _, a := range ancestors {
			if a == ref {
				return true
			}
		}
		return false
	}

	maxdepth := opts.MaxDepth
	if maxdepth == 0 {
		maxdepth = toc.MaxDepth
	}
	titlesOnly := opts.TitlesOnly || toc.TitlesOnly
	includeHidden := opts.IncludeHidden || toc.IncludeHidden

	// Pass 1: expand directive entries into copied document outlines,
	// recursing into nested toctrees.
	var fromToctree func(t *TocTree, parents []string, subtree bool) []*Node
	fromToctree = func(t *TocTree, parents []string, subtree bool) []*Node {
		var entries []*Node
		for _, e := range t.Entries {
			title, ref := e.Title, e.Ref
			refdoc := ""
			var tocNode *Node

			switch {
			case urlRe.MatchString(ref):
				if title == "" {
					title = ref
				}
				tocNode = NewNode(KindBulletList,
					NewNode(KindListItem,
						NewNode(KindParagraph, Reference(ref, "", false, Text(title)))))

			case ref == "self":
				// Refers to the document holding the directive. No
				// subitems are shown.
				ref = t.Parent
				if title == "" {
					if doc, ok := r.docs.Get(ref); ok {
						title = doc.Title
					} else {
						title = ref
					}
				}
				tocNode = NewNode(KindBulletList,
					NewNode(KindListItem,
						NewNode(KindParagraph, Reference(ref, "", true, Text(title)))))

			default:
				if containsString(parents, ref) {
					r.logger.Warn("circular toctree references detected, ignoring",
						"ref", ref, "chain", strings.Join(parents, " <- "))
					continue
				}
				doc, ok := r.docs.Get(ref)
				if !ok {
					if builder.IsExcluded(ref) {
						r.logger.Warn("toctree contains reference to excluded document", "ref", ref)
					} else {
						r.logger.Warn("toctree contains reference to nonexisting document", "ref", ref)
					}
					continue
				}
				refdoc = ref
				tocNode = doc.Outline.DeepCopy()
				refDepth := doc.TocDepth
				if !inAncestors(ref) || (opts.Prune && refDepth > 0) {
					pruneTree(tocNode, 2, refDepth, opts.Collapse)
				}
				if title != "" && len(tocNode.Children) == 1 {
					applyTitleOverride(tocNode.Children[0], ref, title)
				}
				if len(tocNode.Children) == 0 {
					// Nothing will show up for this entry.
					r.logger.Warn("toctree contains reference to document without a title, no link will be generated",
						"ref", ref)
				}
			}

			if titlesOnly {
				collapseToTitles(tocNode)
			}

			// Expand nested toctrees in place.
			for _, sub := range tocNode.FindAll(KindTocTree) {
				parent := sub.Parent
				if parent == nil {
					continue
				}
				if sub.Toc.Hidden && !includeHidden {
					parent.Remove(sub)
					continue
				}
				i := parent.Index(sub) + 1
				for _, entry := range fromToctree(sub.Toc, append([]string{refdoc}, parents...), true) {
					parent.InsertAt(i, entry)
					i++
				}
				parent.Remove(sub)
			}

			entries = append(entries, tocNode.Children...)
		}
		if !subtree {
			ret := NewNode(KindBulletList)
			ret.Append(entries...)
			return []*Node{ret}
		}
		return entries
	}

	tocentries := fromToctree(toc, nil, false)
	if len(tocentries) == 0 {
		return nil
	}

	newnode := NewNode(KindParagraph)
	newnode.AddClass("toctree-wrapper")
	if toc.Caption != "" {
		newnode.Append(&Node{Kind: KindCaption, Text: toc.Caption})
	}
	newnode.Append(tocentries...)

	// Pass 2: depth classes and current marking, then pruning.
	addClasses(newnode, 1, docname)
	pruneDepth := 0
	if opts.Prune {
		pruneDepth = maxdepth
	}
	pruneTree(newnode, 1, pruneDepth, opts.Collapse)

	if last := newnode.Children[len(newnode.Children)-1]; len(last.Children) == 0 {
		// No titles survived.
		return nil
	}

	// Target paths are only known now, with the rendering page fixed.
	for _, refnode := range newnode.FindAll(KindReference) {
		if !urlRe.MatchString(refnode.RefURI) {
			refnode.RefURI = builder.RelativeURI(docname, refnode.RefURI) + refnode.Anchor
		}
	}
	return newnode
}

// applyTitleOverride replaces the document's own title with the one given
// in the directive entry. Titles wrapped in double backticks become
// code-styled literals.
func applyTitleOverride(item *Node, ref, title string) {
	for _, refnode := range item.FindAll(KindReference) {
		if refnode.RefURI != ref || refnode.Anchor != "" {
			continue
		}
		if strings.HasPrefix(title, "``") && strings.HasSuffix(title, "``") {
			inner := ""
			if len(title) > 4 {
				inner = title[2 : len(title)-2]
			}
			refnode.Children = []*Node{Literal(inner)}
		} else {
			refnode.Children = []*Node{Text(title)}
		}
		for _, c := range refnode.Children {
			c.Parent = refnode
		}
	}
}

// collapseToTitles deletes everything below the top-level title of each
// entry, keeping nested toctrees so they can still be expanded.
func collapseToTitles(tocNode *Node) {
	for _, toplevel := range tocNode.Children {
		if len(toplevel.Children) <= 1 {
			continue
		}
		subtrees := toplevel.FindAll(KindTocTree)
		if len(subtrees) > 0 {
			for _, st := range subtrees {
				if st.Parent != nil {
					st.Parent.Remove(st)
				}
			}
			second := toplevel.Children[1]
			second.Children = nil
			second.Append(subtrees...)
		} else {
			toplevel.Remove(toplevel.Children[1])
		}
	}
}

// addClasses walks the resolved tree adding toctree-l%d depth classes and
// marking the branch that leads to the current document.
func addClasses(node *Node, depth int, docname string) {
	for _, sub := range node.Children {
		switch sub.Kind {
		case KindParagraph, KindListItem:
			sub.AddClass(fmt.Sprintf("toctree-l%d", depth-1))
			addClasses(sub, depth, docname)
		case KindBulletList:
			addClasses(sub, depth+1, docname)
		case KindReference:
			if sub.RefURI != docname {
				continue
			}
			if sub.Anchor == "" {
				// The whole branch gets 'current' for styling.
				for branch := sub; branch != nil; branch = branch.Parent {
					branch.AddClass("current")
				}
			}
			// Mark the list item as on the current page, once.
			if sub.Parent != nil && sub.Parent.Parent != nil && sub.Parent.Parent.OnCurrentPage {
				return
			}
			for m := sub; m != nil; m = m.Parent {
				m.OnCurrentPage = true
			}
		}
	}
}

// pruneTree removes bullet lists deeper than maxdepth (0 means no limit)
// and, when collapse is set, lists under items not on the current branch.
func pruneTree(node *Node, depth, maxdepth int, collapse bool) {
	for _, sub := range append([]*Node(nil), node.Children...) {
		switch sub.Kind {
		case KindParagraph, KindListItem:
			pruneTree(sub, depth, maxdepth, collapse)
		case KindBulletList:
			switch {
			case maxdepth > 0 && depth > maxdepth:
				node.Remove(sub)
			case collapse && depth > 1 && !node.OnCurrentPage:
				node.Remove(sub)
			default:
				pruneTree(sub, depth+1, maxdepth, collapse)
			}
		}
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ResolveFunc is the signature of the tree-resolution entry point a
// generator exposes for overriding.
type ResolveFunc func(docname string, builder Builder, toc *TocTree, opts ResolveOptions) *Node

// Generator is any documentation generator whose toctree resolution can
// be swapped out at setup time.
type Generator interface {
	SetTocResolver(ResolveFunc)
}

// Install replaces gen's toctree resolution with a Resolver over docs and
// returns it.
func Install(gen Generator, docs *DocSet, logger *log.Logger) *Resolver {
	r := NewResolver(docs, logger)
	gen.SetTocResolver(r.Resolve)
	return r
}
