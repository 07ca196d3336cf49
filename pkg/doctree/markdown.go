package doctree

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// frontMatter is the optional YAML block at the top of a document,
// delimited by "---" lines.
type frontMatter struct {
	Title    string   `yaml:"title"`
	TocDepth int      `yaml:"tocdepth"`
	Toc      *tocSpec `yaml:"toc"`
}

type tocSpec struct {
	MaxDepth      *int     `yaml:"maxdepth"`
	Caption       string   `yaml:"caption"`
	Hidden        bool     `yaml:"hidden"`
	IncludeHidden bool     `yaml:"includehidden"`
	TitlesOnly    bool     `yaml:"titlesonly"`
	Numbered      bool     `yaml:"numbered"`
	Entries       []string `yaml:"entries"`
}

// entryRe matches the "Some Title <refname>" explicit-title form.
var entryRe = regexp.MustCompile(`^(.*?)\s*<([^<>]*)>$`)

// ParseEntry splits a toctree entry line into title and reference. A bare
// line is a reference with no explicit title.
func ParseEntry(line string) Entry {
	line = strings.TrimSpace(line)
	if m := entryRe.FindStringSubmatch(line); m != nil {
		return Entry{Title: strings.TrimSpace(m[1]), Ref: m[2]}
	}
	return Entry{Ref: line}
}

// ParseMarkdown reads one markdown document and builds its Document:
// title, section outline, and any toctree declared in the front matter.
func ParseMarkdown(r io.Reader, docname string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", docname, err)
	}

	var fm frontMatter
	body, err := splitFrontMatter(src, &fm)
	if err != nil {
		return nil, fmt.Errorf("front matter of %s: %w", docname, err)
	}

	doc := &Document{Docname: docname, Title: fm.Title, TocDepth: fm.TocDepth}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	var headings []sectionHeading
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			headings = append(headings, sectionHeading{level: h.Level, title: headingText(h, body)})
		}
	}

	if doc.Title == "" {
		if len(headings) > 0 {
			doc.Title = headings[0].title
		} else {
			doc.Title = docname
		}
	}

	var toc *TocTree
	if fm.Toc != nil {
		toc = &TocTree{
			Parent:        docname,
			MaxDepth:      -1,
			Caption:       fm.Toc.Caption,
			Hidden:        fm.Toc.Hidden,
			IncludeHidden: fm.Toc.IncludeHidden,
			TitlesOnly:    fm.Toc.TitlesOnly,
			Numbered:      fm.Toc.Numbered,
		}
		if fm.Toc.MaxDepth != nil {
			toc.MaxDepth = *fm.Toc.MaxDepth
		}
		for _, line := range fm.Toc.Entries {
			toc.Entries = append(toc.Entries, ParseEntry(line))
		}
		doc.TocTrees = append(doc.TocTrees, toc)
	}

	doc.Outline = buildOutline(docname, doc.Title, headings, toc)
	return doc, nil
}

type sectionHeading struct {
	level int
	title string
}

// buildOutline assembles the document's section tree: a bullet list with
// one item for the document title, nested bullet lists for subsections,
// and the toctree placeholder (if any) attached under the title item.
func buildOutline(docname, title string, headings []sectionHeading, toc *TocTree) *Node {
	root := NewNode(KindBulletList)
	titleItem := NewNode(KindListItem,
		NewNode(KindParagraph, Reference(docname, "", true, Text(title))))
	root.Append(titleItem)

	type frame struct {
		item  *Node
		level int
	}
	stack := []frame{{item: titleItem, level: 1}}

	for i, h := range headings {
		if i == 0 && h.level == 1 {
			// The leading h1 is the document title itself.
			continue
		}
		for len(stack) > 1 && stack[len(stack)-1].level >= h.level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].item
		var list *Node
		if n := len(parent.Children); n > 0 && parent.Children[n-1].Kind == KindBulletList {
			list = parent.Children[n-1]
		} else {
			list = NewNode(KindBulletList)
			parent.Append(list)
		}
		item := NewNode(KindListItem,
			NewNode(KindParagraph, Reference(docname, "#"+slugify(h.title), true, Text(h.title))))
		list.Append(item)
		stack = append(stack, frame{item: item, level: h.level})
	}

	if toc != nil {
		titleItem.Append(toc.Placeholder())
	}
	return root
}

func headingText(h *ast.Heading, src []byte) string {
	var buf bytes.Buffer
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		switch n := c.(type) {
		case *ast.Text:
			buf.Write(n.Value(src))
		case *ast.CodeSpan:
			// Keep code spans marked so titles render as literals.
			buf.WriteString("``")
			for t := n.FirstChild(); t != nil; t = t.NextSibling() {
				if txt, ok := t.(*ast.Text); ok {
					buf.Write(txt.Value(src))
				}
			}
			buf.WriteString("``")
		default:
			buf.Write(c.Text(src))
		}
	}
	return strings.TrimSpace(buf.String())
}

var slugStrip = regexp.MustCompile(`[^a-z0-9 -]`)

func slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStrip.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), "-")
	return s
}

// splitFrontMatter separates a leading "---" YAML block from the body.
func splitFrontMatter(src []byte, fm *frontMatter) ([]byte, error) {
	const delim = "---"
	if !bytes.HasPrefix(src, []byte(delim+"\n")) && !bytes.HasPrefix(src, []byte(delim+"\r\n")) {
		return src, nil
	}
	rest := src[len(delim):]
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[i+1:]
	}
	end := bytes.Index(rest, []byte("\n"+delim))
	if end < 0 {
		return src, nil
	}
	block := rest[:end]
	body := rest[end+1+len(delim):]
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}
	if err := yaml.Unmarshal(block, fm); err != nil {
		return nil, err
	}
	return body, nil
}
