package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// page is the engine's view of a rendered document: element nodes in
// document order for the structural strategies, trimmed text nodes and the
// flattened page text for the fallback strategies.
type page struct {
	elements  []*html.Node
	textNodes []string
	flat      string
}

func newPage(doc *goquery.Document) *page {
	p := &page{}
	for _, root := range doc.Nodes {
		p.collect(root)
	}
	p.flat = strings.Join(p.textNodes, "\n")
	return p
}

// collect walks the tree depth-first, recording element nodes and
// non-empty text nodes. Script and style subtrees are skipped; their
// contents are code, not page text.
func (p *page) collect(n *html.Node) {
	if n.Type == html.ElementNode {
		if n.Data == "script" || n.Data == "style" {
			return
		}
		p.elements = append(p.elements, n)
	}
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			p.textNodes = append(p.textNodes, t)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.collect(c)
	}
}

// ownText returns the text directly inside an element, excluding
// descendants. Matching labels against own text keeps a label match
// anchored to the node that renders it instead of every ancestor.
func ownText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(b.String())
}

// subtreeText returns all text under a node, space-joined and trimmed.
func subtreeText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}

// followingElement returns the first element after n's subtree in document
// order: the label's value usually renders in the next sibling (or the
// next element further up when the label closes its parent).
func followingElement(n *html.Node) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		for sib := cur.NextSibling; sib != nil; sib = sib.NextSibling {
			if el := firstElement(sib); el != nil {
				return el
			}
		}
	}
	return nil
}

func firstElement(n *html.Node) *html.Node {
	if n.Type == html.ElementNode {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if el := firstElement(c); el != nil {
			return el
		}
	}
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
